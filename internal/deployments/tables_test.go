package deployments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTablesAreValid(t *testing.T) {
	tables := Default()
	if err := tables.Validate(); err != nil {
		t.Fatalf("default tables invalid: %v", err)
	}
	if len(tables.Events) != 4 {
		t.Errorf("expected 4 vault groups, got %d", len(tables.Events))
	}
	for _, group := range tables.Events {
		if len(group.Contracts) != 6 {
			t.Errorf("group %s: expected 6 contracts, got %d", group.Label, len(group.Contracts))
		}
		if group.Contracts[0].Name != "Vault" {
			t.Errorf("group %s: expected Vault first, got %s", group.Label, group.Contracts[0].Name)
		}
	}
}

func TestPermissionChainsSkipsEmpty(t *testing.T) {
	chains := Default().PermissionChains()
	if len(chains) != 1 || chains[0] != ChainHolesky {
		t.Fatalf("expected only holesky, got %v", chains)
	}
}

func TestRPCEnvKey(t *testing.T) {
	tables := Default()
	if key, ok := tables.RPCEnvKey(ChainHolesky); !ok || key != "HOLESKY_RPC" {
		t.Errorf("unexpected key %q ok=%v", key, ok)
	}
	if _, ok := tables.RPCEnvKey(5); ok {
		t.Errorf("expected unknown chain to have no key")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deployments.yaml")
	doc := `
events:
  - label: sample
    contracts:
      - name: Vault
        address: "0xBEEF69Ac7870777598A04B2bd4771c71212E6aBc"
        creation_block: 20045981
permissions:
  17000:
    - vault: "0x2d3086b7d3a2a14e121c0fce651f9e1a819a1e84"
      managed_validator:
        name: ManagedValidator
        address: "0xe659ab3de7ca8f6ac4d52a0b7ce0dcaabd07946a"
        creation_block: 1902723
      vault_configurator:
        name: VaultConfigurator
        address: "0xa81e199e01350e7d7ee6be846329b20e43eee735"
        creation_block: 1902724
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if tables.EventsChainID != ChainMainnet {
		t.Errorf("expected events chain to default to mainnet, got %d", tables.EventsChainID)
	}
	if len(tables.Chains) != 2 {
		t.Errorf("expected built-in chains, got %v", tables.Chains)
	}
	targets := tables.Permissions[ChainHolesky]
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	if targets[0].VaultConfigurator.CreationBlock != 1902724 {
		t.Errorf("unexpected creation block %d", targets[0].VaultConfigurator.CreationBlock)
	}
}

func TestLoadFileRejectsBadAddress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deployments.yaml")
	doc := `
events:
  - label: broken
    contracts:
      - name: Vault
        address: "0x1234"
        creation_block: 1
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "invalid address") {
		t.Fatalf("expected invalid address error, got %v", err)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	tables, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(tables.Events) != len(Default().Events) {
		t.Errorf("expected default tables")
	}
}
