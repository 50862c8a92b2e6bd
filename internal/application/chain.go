package application

import (
	"context"
	"fmt"
)

// ChainMismatchError is returned when an endpoint serves a different chain
// than the deployments it is queried for.
type ChainMismatchError struct {
	Want uint64
	Got  uint64
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("rpc endpoint serves chain %d, expected %d", e.Got, e.Want)
}

// chainHead checks the endpoint's chain id and returns its latest block.
func chainHead(ctx context.Context, source ChainSource, chainID uint64) (uint64, error) {
	got, err := source.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("chain id: %w", err)
	}
	if got != chainID {
		return 0, &ChainMismatchError{Want: chainID, Got: got}
	}
	head, err := source.LatestBlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest block: %w", err)
	}
	return head, nil
}
