package deployments

import "vaultaudit/internal/domain"

// Default returns the deployments tracked when no DEPLOYMENTS_FILE is set.
func Default() Tables {
	return Tables{
		Chains: []Chain{
			{ID: ChainMainnet, RPCEnv: "MAINNET_RPC"},
			{ID: ChainHolesky, RPCEnv: "HOLESKY_RPC"},
		},
		EventsChainID: ChainMainnet,
		Events: []VaultGroup{
			vaultGroup("steakhouse",
				contract("Vault", "0xBEEF69Ac7870777598A04B2bd4771c71212E6aBc", 20045981),
				contract("ProxyAdmin", "0xed792a3fDEB9044C70c951260AaAe974Fb3dB38F", 20015536),
				contract("VaultConfigurator", "0xe6180599432767081beA7deB76057Ce5883e73Be", 20045982),
				contract("ManagedValidator", "0xdB66693845a3f72e932631080Efb1A86536D0EA7", 20046025),
				contract("DefaultBondStrategy", "0x7a14b34a9a8EA235C66528dc3bF3aeFC36DFc268", 20046017),
				contract("DepositWrapper", "0x24fee15BC11fF617c042283B58A3Bda6441Da145", 20046039),
			),
			vaultGroup("re7",
				contract("Vault", "0x84631c0d0081FDe56DeB72F6DE77abBbF6A9f93a", 20046215),
				contract("ProxyAdmin", "0xF076CF343DCfD01BBA57dFEB5C74F7B015951fcF", 20046215),
				contract("VaultConfigurator", "0x214d66d110060dA2848038CA0F7573486363cAe4", 20046216),
				contract("ManagedValidator", "0x0483B89F632596B24426703E540e373083928a6A", 20046254),
				contract("DefaultBondStrategy", "0xcE3A8820265AD186E8C1CeAED16ae97176D020bA", 20046246),
				contract("DepositWrapper", "0x70cD3464A41B6692413a1Ba563b9D53955D5DE0d", 20046274),
			),
			vaultGroup("p2p",
				contract("Vault", "0x7a4EffD87C2f3C55CA251080b1343b605f327E3a", 20046493),
				contract("ProxyAdmin", "0x17AC6A90eD880F9cE54bB63DAb071F2BD3FE3772", 20046493),
				contract("VaultConfigurator", "0x84b240E99d4C473b5E3dF1256300E2871412dDfe", 20046494),
				contract("ManagedValidator", "0x6AB116ac709c89D90Cc1F8cD0323617A9996bA7c", 20046522),
				contract("DefaultBondStrategy", "0xA0ea6d4fe369104eD4cc18951B95C3a43573C0F6", 20046515),
				contract("DepositWrapper", "0x41A1FBEa7Ace3C3a6B66a73e96E5ED07CDB2A34d", 20046547),
			),
			vaultGroup("amphor",
				contract("Vault", "0x5fD13359Ba15A84B76f7F87568309040176167cd", 20046849),
				contract("ProxyAdmin", "0xc24891B75ef55fedC377c5e6Ec59A850b12E23ac", 20046849),
				contract("VaultConfigurator", "0x2dEc4fDC225C1f71161Ea481E23D66fEaAAE2391", 20046850),
				contract("ManagedValidator", "0xD2635fa0635126bAfdD430b9614c0280d37a76CA", 20046892),
				contract("DefaultBondStrategy", "0xc3A149b5Ca3f4A5F17F5d865c14AA9DBb570F10A", 20046885),
				contract("DepositWrapper", "0xdC1741f9bD33DD791942CC9435A90B0983DE8665", 20046903),
			),
		},
		Permissions: map[uint64][]PermissionTarget{
			ChainMainnet: {},
			ChainHolesky: {
				// test obol deployment
				{
					Vault:             "0x2d3086b7d3a2a14e121c0fce651f9e1a819a1e84",
					ManagedValidator:  contract("ManagedValidator", "0xe659ab3de7ca8f6ac4d52a0b7ce0dcaabd07946a", 1902723),
					VaultConfigurator: contract("VaultConfigurator", "0xa81e199e01350e7d7ee6be846329b20e43eee735", 1902723),
				},
			},
		},
	}
}

func vaultGroup(label string, contracts ...domain.ContractDeployment) VaultGroup {
	return VaultGroup{Label: label, Contracts: contracts}
}

func contract(name, address string, creationBlock uint64) domain.ContractDeployment {
	return domain.ContractDeployment{Name: name, Address: address, CreationBlock: creationBlock}
}
