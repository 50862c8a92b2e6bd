package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vaultaudit/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type LogSource interface {
	FetchLogs(ctx context.Context, address string, fromBlock, toBlock uint64) ([]domain.LogEntry, error)
}

// ChainSource is a LogSource bound to a single chain.
type ChainSource interface {
	LogSource
	ChainID(ctx context.Context) (uint64, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
}

type CollectorObserver interface {
	OnWindowFetched(address string, fromBlock, toBlock uint64, logCount int)
}

type CollectorConfig struct {
	WindowSize uint64
}

// LogCollector pages through a contract's logs in fixed block windows. Window
// i covers [start+i*w, min(start+(i+1)*w, end)], so consecutive windows share
// their boundary block.
type LogCollector struct {
	source   LogSource
	observer CollectorObserver
	window   uint64
}

func NewLogCollector(source LogSource, observer CollectorObserver, cfg CollectorConfig) (*LogCollector, error) {
	if source == nil {
		return nil, errors.New("log source is required")
	}
	if cfg.WindowSize == 0 {
		return nil, errors.New("window size must be positive")
	}
	return &LogCollector{source: source, observer: observer, window: cfg.WindowSize}, nil
}

// Collect returns every log address emitted in [startBlock, endBlock], in
// fetch order. An empty range makes no RPC call.
func (c *LogCollector) Collect(ctx context.Context, address string, startBlock, endBlock uint64) ([]domain.LogEntry, error) {
	var logs []domain.LogEntry
	err := c.forEachWindow(ctx, address, startBlock, endBlock, func(batch []domain.LogEntry) {
		logs = append(logs, batch...)
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// CollectRawValues gathers the hex of every topic and data field address
// emitted in [startBlock, endBlock].
func (c *LogCollector) CollectRawValues(ctx context.Context, address string, startBlock, endBlock uint64) (RawValueSet, error) {
	values := make(RawValueSet)
	err := c.forEachWindow(ctx, address, startBlock, endBlock, func(batch []domain.LogEntry) {
		for _, log := range batch {
			values.Add(log.Topics...)
			values.Add(log.Data)
		}
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (c *LogCollector) forEachWindow(ctx context.Context, address string, startBlock, endBlock uint64, fn func([]domain.LogEntry)) error {
	if startBlock > endBlock {
		return nil
	}
	tracer := otel.Tracer("vaultaudit/collector")
	for current := startBlock; ; current += c.window {
		toBlock := endBlock
		if endBlock-current >= c.window {
			toBlock = current + c.window
		}

		windowCtx, span := tracer.Start(ctx, "collector.fetch_window")
		span.SetAttributes(
			attribute.String("contract.address", address),
			attribute.Int64("block.from", int64(current)),
			attribute.Int64("block.to", int64(toBlock)),
		)
		logs, err := c.source.FetchLogs(windowCtx, address, current, toBlock)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return fmt.Errorf("fetch logs %s [%d, %d]: %w", address, current, toBlock, err)
		}
		span.SetAttributes(attribute.Int("log.count", len(logs)))
		span.End()

		slog.Debug("fetched log window", "address", address, "from", current, "to", toBlock, "logs", len(logs))
		if c.observer != nil {
			c.observer.OnWindowFetched(address, current, toBlock, len(logs))
		}
		fn(logs)

		if endBlock-current < c.window {
			return nil
		}
	}
}
