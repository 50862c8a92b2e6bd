package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vaultaudit/internal/deployments"
)

type AddressPublisher interface {
	PublishAddresses(ctx context.Context, chainID uint64, vault string, addresses []string) error
}

// PermissionsCollector lists every address referenced by the logs of a
// vault's ManagedValidator and VaultConfigurator contracts.
type PermissionsCollector struct {
	source    ChainSource
	collector *LogCollector
	store     DocumentStore
	publisher AddressPublisher
	chainID   uint64
}

type PermissionsReport struct {
	Vault     string
	Path      string
	Addresses []string
}

func NewPermissionsCollector(source ChainSource, collector *LogCollector, store DocumentStore, publisher AddressPublisher, chainID uint64) (*PermissionsCollector, error) {
	if source == nil || collector == nil || store == nil {
		return nil, errors.New("permissions collector dependencies must not be nil")
	}
	if chainID == 0 {
		return nil, errors.New("chain id is required")
	}
	return &PermissionsCollector{source: source, collector: collector, store: store, publisher: publisher, chainID: chainID}, nil
}

func (p *PermissionsCollector) Run(ctx context.Context, targets []deployments.PermissionTarget) ([]PermissionsReport, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	head, err := chainHead(ctx, p.source, p.chainID)
	if err != nil {
		return nil, err
	}
	slog.Info("collecting permissions", "chain", p.chainID, "head", head, "vaults", len(targets))

	reports := make([]PermissionsReport, 0, len(targets))
	for _, target := range targets {
		report, err := p.collectVault(ctx, target, head)
		if err != nil {
			return nil, fmt.Errorf("vault %s: %w", target.Vault, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (p *PermissionsCollector) collectVault(ctx context.Context, target deployments.PermissionTarget, head uint64) (PermissionsReport, error) {
	validator, configurator := target.ManagedValidator, target.VaultConfigurator

	validatorValues, err := p.collector.CollectRawValues(ctx, validator.Address, validator.CreationBlock, head)
	if err != nil {
		return PermissionsReport{}, fmt.Errorf("ManagedValidator: %w", err)
	}
	configuratorValues, err := p.collector.CollectRawValues(ctx, configurator.Address, configurator.CreationBlock, head)
	if err != nil {
		return PermissionsReport{}, fmt.Errorf("VaultConfigurator: %w", err)
	}

	set, err := ExtractAddresses(validatorValues.Union(configuratorValues), validator.Address, configurator.Address)
	if err != nil {
		return PermissionsReport{}, err
	}
	addresses := set.Sorted()

	path, err := p.store.WriteJSON(target.Vault+".json", addresses)
	if err != nil {
		return PermissionsReport{}, err
	}
	if p.publisher != nil {
		if err := p.publisher.PublishAddresses(ctx, p.chainID, target.Vault, addresses); err != nil {
			return PermissionsReport{}, fmt.Errorf("publish addresses: %w", err)
		}
	}
	slog.Info("wrote permission addresses", "vault", target.Vault, "path", path, "addresses", len(addresses))
	return PermissionsReport{Vault: target.Vault, Path: path, Addresses: addresses}, nil
}
