package ethrpc

import (
	"context"
	"errors"
	"math/big"

	"vaultaudit/internal/domain"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

type Client struct {
	eth *ethclient.Client
}

type Config struct {
	URL string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("rpc url is required")
	}
	eth, err := ethclient.DialContext(ctx, cfg.URL)
	if err != nil {
		return nil, err
	}
	return &Client{eth: eth}, nil
}

func (c *Client) Close() {
	c.eth.Close()
}

func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.eth.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (c *Client) LatestBlockNumber(ctx context.Context) (uint64, error) {
	return c.eth.BlockNumber(ctx)
}

// FetchLogs returns every log emitted by address in the inclusive block range.
func (c *Client) FetchLogs(ctx context.Context, address string, fromBlock, toBlock uint64) ([]domain.LogEntry, error) {
	if !common.IsHexAddress(address) {
		return nil, errors.New("invalid contract address " + address)
	}
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{common.HexToAddress(address)},
	}
	result, err := c.eth.FilterLogs(ctx, query)
	if err != nil {
		return nil, err
	}

	logs := make([]domain.LogEntry, 0, len(result))
	for _, log := range result {
		logs = append(logs, toLogEntry(log))
	}
	return logs, nil
}

func toLogEntry(log types.Log) domain.LogEntry {
	topics := make([]string, 0, len(log.Topics))
	for _, topic := range log.Topics {
		topics = append(topics, topic.Hex())
	}
	return domain.LogEntry{
		Emitter:     log.Address.Hex(),
		Topics:      topics,
		Data:        hexutil.Encode(log.Data),
		BlockNumber: log.BlockNumber,
		TxHash:      log.TxHash.Hex(),
		LogIndex:    uint64(log.Index),
	}
}
