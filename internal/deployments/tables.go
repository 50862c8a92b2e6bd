package deployments

import (
	"errors"
	"fmt"
	"sort"

	"vaultaudit/internal/domain"

	"github.com/ethereum/go-ethereum/common"
)

const (
	ChainMainnet uint64 = 1
	ChainHolesky uint64 = 17000
)

// Chain maps a chain id to the environment variable holding its RPC URL.
type Chain struct {
	ID     uint64 `yaml:"id"`
	RPCEnv string `yaml:"rpc_env"`
}

// VaultGroup is the ordered set of contracts deployed together for one vault.
type VaultGroup struct {
	Label     string                      `yaml:"label"`
	Contracts []domain.ContractDeployment `yaml:"contracts"`
}

// Vault returns the group's "Vault" contract.
func (g VaultGroup) Vault() (domain.ContractDeployment, bool) {
	for _, contract := range g.Contracts {
		if contract.Name == "Vault" {
			return contract, true
		}
	}
	return domain.ContractDeployment{}, false
}

// PermissionTarget lists the contracts whose logs feed a vault's permission audit.
type PermissionTarget struct {
	Vault             string                    `yaml:"vault"`
	ManagedValidator  domain.ContractDeployment `yaml:"managed_validator"`
	VaultConfigurator domain.ContractDeployment `yaml:"vault_configurator"`
}

type Tables struct {
	Chains        []Chain                       `yaml:"chains"`
	EventsChainID uint64                        `yaml:"events_chain_id"`
	Events        []VaultGroup                  `yaml:"events"`
	Permissions   map[uint64][]PermissionTarget `yaml:"permissions"`
}

func (t Tables) RPCEnvKey(chainID uint64) (string, bool) {
	for _, chain := range t.Chains {
		if chain.ID == chainID {
			return chain.RPCEnv, chain.RPCEnv != ""
		}
	}
	return "", false
}

// PermissionChains returns the chain ids that have at least one target, ascending.
func (t Tables) PermissionChains() []uint64 {
	chains := make([]uint64, 0, len(t.Permissions))
	for chainID, targets := range t.Permissions {
		if len(targets) > 0 {
			chains = append(chains, chainID)
		}
	}
	sort.Slice(chains, func(a, b int) bool { return chains[a] < chains[b] })
	return chains
}

func (t Tables) Validate() error {
	if len(t.Events) > 0 {
		if _, ok := t.RPCEnvKey(t.EventsChainID); !ok {
			return fmt.Errorf("events chain %d has no rpc env key", t.EventsChainID)
		}
	}
	for i, group := range t.Events {
		if _, ok := group.Vault(); !ok {
			return fmt.Errorf("events group %d (%s) has no Vault contract", i, group.Label)
		}
		for _, contract := range group.Contracts {
			if err := validateContract(contract); err != nil {
				return fmt.Errorf("events group %d (%s): %w", i, group.Label, err)
			}
		}
	}
	for chainID, targets := range t.Permissions {
		if len(targets) == 0 {
			continue
		}
		if _, ok := t.RPCEnvKey(chainID); !ok {
			return fmt.Errorf("permissions chain %d has no rpc env key", chainID)
		}
		for _, target := range targets {
			if !common.IsHexAddress(target.Vault) {
				return fmt.Errorf("chain %d: invalid vault address %q", chainID, target.Vault)
			}
			if err := validateContract(target.ManagedValidator); err != nil {
				return fmt.Errorf("chain %d vault %s: %w", chainID, target.Vault, err)
			}
			if err := validateContract(target.VaultConfigurator); err != nil {
				return fmt.Errorf("chain %d vault %s: %w", chainID, target.Vault, err)
			}
		}
	}
	return nil
}

func validateContract(contract domain.ContractDeployment) error {
	if contract.Address == "" {
		return errors.New("contract address is required")
	}
	if !common.IsHexAddress(contract.Address) {
		return fmt.Errorf("invalid address %q for %s", contract.Address, contract.Name)
	}
	return nil
}
