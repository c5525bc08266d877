package params

import "github.com/ethereum/go-ethereum/common"

const (
	// MainnetName is the config name of the Ethereum mainnet deployment.
	MainnetName = "mainnet"
	// SepoliaName is the config name of the Sepolia testnet deployment.
	SepoliaName = "sepolia"
	// DevName is the config name used against local development chains.
	DevName = "dev"
)

const (
	defaultDomainName         = "EAS"
	defaultDomainVersion      = "0.26"
	defaultOffchainDomainName = "EAS Attestation"
	defaultSchemaCacheSize    = 256
)

// MainnetConfig returns the config of the Ethereum mainnet deployment.
func MainnetConfig() *ServiceConfig {
	return &ServiceConfig{
		ConfigName:             MainnetName,
		ChainID:                1,
		EASContract:            common.HexToAddress("0xA7b39296258348C78294F95B872b282326A97BDF"),
		SchemaRegistryContract: common.HexToAddress("0x0a7E2Ff54e76B8E6659aedc9103FB21c038050D0"),
		DomainName:             defaultDomainName,
		DomainVersion:          defaultDomainVersion,
		OffchainDomainName:     defaultOffchainDomainName,
		SchemaCacheSize:        defaultSchemaCacheSize,
	}
}

// SepoliaConfig returns the config of the Sepolia testnet deployment.
func SepoliaConfig() *ServiceConfig {
	return &ServiceConfig{
		ConfigName:             SepoliaName,
		ChainID:                11155111,
		EASContract:            common.HexToAddress("0xC2679fBD37d54388Ce493F1DB75320D236e1815e"),
		SchemaRegistryContract: common.HexToAddress("0x0a7E2Ff54e76B8E6659aedc9103FB21c038050D0"),
		DomainName:             defaultDomainName,
		DomainVersion:          defaultDomainVersion,
		OffchainDomainName:     defaultOffchainDomainName,
		SchemaCacheSize:        defaultSchemaCacheSize,
	}
}

// DevConfig returns a config matching the deterministic deployment order
// of the contracts on a fresh local chain: registry, attestation contract,
// then verifier, all from the first dev account.
func DevConfig() *ServiceConfig {
	return &ServiceConfig{
		ConfigName:             DevName,
		ChainID:                31337,
		SchemaRegistryContract: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		EASContract:            common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"),
		EIP712VerifierContract: common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"),
		DomainName:             defaultDomainName,
		DomainVersion:          defaultDomainVersion,
		OffchainDomainName:     defaultOffchainDomainName,
		SchemaCacheSize:        defaultSchemaCacheSize,
	}
}

// UseMainnetConfig sets the mainnet deployment as the active config.
func UseMainnetConfig() {
	OverrideEASConfig(MainnetConfig())
}

// UseSepoliaConfig sets the Sepolia deployment as the active config.
func UseSepoliaConfig() {
	OverrideEASConfig(SepoliaConfig())
}

// UseDevConfig sets the local development deployment as the active config.
func UseDevConfig() {
	OverrideEASConfig(DevConfig())
}
