package domain

// ContractDeployment is a tracked contract and the block it was created in.
type ContractDeployment struct {
	Name          string `yaml:"name"`
	Address       string `yaml:"address"`
	CreationBlock uint64 `yaml:"creation_block"`
}
