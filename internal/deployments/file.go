package deployments

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads deployment tables from a YAML document. A file without a chains
// section inherits the built-in chain table.
func LoadFile(path string) (Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, err
	}
	var tables Tables
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return Tables{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(tables.Chains) == 0 {
		tables.Chains = Default().Chains
	}
	if tables.EventsChainID == 0 {
		tables.EventsChainID = ChainMainnet
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// Load returns the tables from path, or the built-in tables when path is empty.
func Load(path string) (Tables, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
