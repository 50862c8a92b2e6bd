package application

import (
	"strings"
	"sync"
	"time"
)

// Stats tallies collector progress for the end-of-run summary.
type Stats struct {
	mu             sync.Mutex
	startTime      time.Time
	windows        uint64
	logs           uint64
	lastWindowFrom uint64
	lastWindowTo   uint64
	contracts      map[string]struct{}
}

type StatsSnapshot struct {
	Windows        uint64
	Logs           uint64
	Contracts      int
	LastWindowFrom uint64
	LastWindowTo   uint64
	Elapsed        time.Duration
}

func NewStats() *Stats {
	return &Stats{
		startTime: time.Now(),
		contracts: make(map[string]struct{}),
	}
}

func (s *Stats) OnWindowFetched(address string, fromBlock, toBlock uint64, logCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows++
	s.logs += uint64(logCount)
	s.lastWindowFrom = fromBlock
	s.lastWindowTo = toBlock
	s.contracts[strings.ToLower(address)] = struct{}{}
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		Windows:        s.windows,
		Logs:           s.logs,
		Contracts:      len(s.contracts),
		LastWindowFrom: s.lastWindowFrom,
		LastWindowTo:   s.lastWindowTo,
		Elapsed:        time.Since(s.startTime),
	}
}
