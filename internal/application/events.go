package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"vaultaudit/internal/deployments"
	"vaultaudit/internal/domain"
)

type DocumentStore interface {
	WriteJSON(name string, v any) (string, error)
}

type EventPublisher interface {
	PublishEvents(ctx context.Context, chainID uint64, vault string, events []domain.LogEntry) error
}

type EventsConfig struct {
	ChainID uint64
	// DataPrefixWords zero words are prepended to every exported data field.
	DataPrefixWords int
}

// EventsExporter dumps the raw logs of every contract in a vault group into
// one JSON file per vault.
type EventsExporter struct {
	source    ChainSource
	collector *LogCollector
	store     DocumentStore
	publisher EventPublisher
	cfg       EventsConfig
}

type EventsReport struct {
	Vault  string
	Path   string
	Events int
}

func NewEventsExporter(source ChainSource, collector *LogCollector, store DocumentStore, publisher EventPublisher, cfg EventsConfig) (*EventsExporter, error) {
	if source == nil || collector == nil || store == nil {
		return nil, errors.New("events exporter dependencies must not be nil")
	}
	if cfg.ChainID == 0 {
		return nil, errors.New("chain id is required")
	}
	if cfg.DataPrefixWords < 0 {
		return nil, errors.New("data prefix words must not be negative")
	}
	return &EventsExporter{source: source, collector: collector, store: store, publisher: publisher, cfg: cfg}, nil
}

// Export reads the chain head once and exports each group from its contracts'
// creation blocks up to that head.
func (e *EventsExporter) Export(ctx context.Context, groups []deployments.VaultGroup) ([]EventsReport, error) {
	head, err := chainHead(ctx, e.source, e.cfg.ChainID)
	if err != nil {
		return nil, err
	}
	slog.Info("exporting vault events", "chain", e.cfg.ChainID, "head", head, "vaults", len(groups))

	reports := make([]EventsReport, 0, len(groups))
	for _, group := range groups {
		report, err := e.exportGroup(ctx, group, head)
		if err != nil {
			return nil, fmt.Errorf("vault group %s: %w", group.Label, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (e *EventsExporter) exportGroup(ctx context.Context, group deployments.VaultGroup, head uint64) (EventsReport, error) {
	vault, ok := group.Vault()
	if !ok {
		return EventsReport{}, errors.New("group has no Vault contract")
	}

	events := make([]domain.LogEntry, 0)
	for _, contract := range group.Contracts {
		logs, err := e.collector.Collect(ctx, contract.Address, contract.CreationBlock, head)
		if err != nil {
			return EventsReport{}, fmt.Errorf("%s: %w", contract.Name, err)
		}
		for _, log := range logs {
			events = append(events, domain.LogEntry{
				Emitter:     contract.Address,
				Topics:      log.Topics,
				Data:        padData(log.Data, e.cfg.DataPrefixWords),
				BlockNumber: log.BlockNumber,
				TxHash:      log.TxHash,
				LogIndex:    log.LogIndex,
			})
		}
		slog.Info("collected contract events", "vault", vault.Address, "contract", contract.Name, "address", contract.Address, "events", len(logs))
	}

	name := strings.ToLower(fmt.Sprintf("events_%s.json", vault.Address))
	path, err := e.store.WriteJSON(name, events)
	if err != nil {
		return EventsReport{}, err
	}
	if e.publisher != nil {
		if err := e.publisher.PublishEvents(ctx, e.cfg.ChainID, vault.Address, events); err != nil {
			return EventsReport{}, fmt.Errorf("publish events: %w", err)
		}
	}
	slog.Info("wrote vault events", "vault", vault.Address, "path", path, "events", len(events))
	return EventsReport{Vault: vault.Address, Path: path, Events: len(events)}, nil
}

func padData(data string, words int) string {
	return "0x" + strings.Repeat("0", words*wordHexLen) + strings.TrimPrefix(data, "0x")
}
