package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"vaultaudit/internal/domain"
)

type fetchCall struct {
	address   string
	fromBlock uint64
	toBlock   uint64
}

// fakeChain serves logs keyed by lowercase address, filtered by block range.
type fakeChain struct {
	chainID uint64
	head    uint64
	logs    map[string][]domain.LogEntry
	failAt  *fetchCall
	calls   []fetchCall
}

func (f *fakeChain) ChainID(ctx context.Context) (uint64, error) {
	return f.chainID, nil
}

func (f *fakeChain) LatestBlockNumber(ctx context.Context) (uint64, error) {
	return f.head, nil
}

func (f *fakeChain) FetchLogs(ctx context.Context, address string, fromBlock, toBlock uint64) ([]domain.LogEntry, error) {
	call := fetchCall{address: address, fromBlock: fromBlock, toBlock: toBlock}
	f.calls = append(f.calls, call)
	if f.failAt != nil && *f.failAt == call {
		return nil, errors.New("upstream unavailable")
	}
	var out []domain.LogEntry
	for _, log := range f.logs[strings.ToLower(address)] {
		if log.BlockNumber >= fromBlock && log.BlockNumber <= toBlock {
			out = append(out, log)
		}
	}
	return out, nil
}

type memoryStore struct {
	docs map[string]any
}

func (m *memoryStore) WriteJSON(name string, v any) (string, error) {
	if m.docs == nil {
		m.docs = make(map[string]any)
	}
	m.docs[name] = v
	return "mem://" + name, nil
}

type recordingPublisher struct {
	events    map[string][]domain.LogEntry
	addresses map[string][]string
}

func (r *recordingPublisher) PublishEvents(ctx context.Context, chainID uint64, vault string, events []domain.LogEntry) error {
	if r.events == nil {
		r.events = make(map[string][]domain.LogEntry)
	}
	r.events[fmt.Sprintf("%d/%s", chainID, vault)] = events
	return nil
}

func (r *recordingPublisher) PublishAddresses(ctx context.Context, chainID uint64, vault string, addresses []string) error {
	if r.addresses == nil {
		r.addresses = make(map[string][]string)
	}
	r.addresses[fmt.Sprintf("%d/%s", chainID, vault)] = addresses
	return nil
}

func (s RawValueSet) sorted() []string {
	values := make([]string, 0, len(s))
	for value := range s {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
