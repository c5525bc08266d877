// Package params holds the deployment configuration of the attestation
// service: chain id, contract addresses and the EIP-712 signing domains.
// An active config is kept at the package level and can be overridden,
// mirroring how the rest of the SDK consumes it.
package params

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// ServiceConfig describes one deployment of the attestation service.
type ServiceConfig struct {
	// ConfigName is the canonical name of the deployment, e.g. "mainnet".
	ConfigName string `json:"configName"`
	// ChainID of the network the contracts are deployed on.
	ChainID uint64 `json:"chainId"`

	// EASContract is the address of the attestation contract.
	EASContract common.Address `json:"easContract"`
	// SchemaRegistryContract is the address of the schema registry.
	SchemaRegistryContract common.Address `json:"schemaRegistryContract"`
	// EIP712VerifierContract is the address of the standalone verifier used
	// for delegated attestations and revocations.
	EIP712VerifierContract common.Address `json:"eip712VerifierContract"`

	// DomainName and DomainVersion form the EIP-712 domain of delegated
	// requests, verified onchain by the verifier contract.
	DomainName    string `json:"domainName"`
	DomainVersion string `json:"domainVersion"`
	// OffchainDomainName is the EIP-712 domain name of offchain
	// attestations. The version, chain id and verifying contract are shared
	// with the onchain deployment.
	OffchainDomainName string `json:"offchainDomainName"`

	// SchemaCacheSize bounds the client-side LRU of schema records.
	SchemaCacheSize int `json:"schemaCacheSize"`
}

var (
	activeConfig = MainnetConfig()
	cfgLock      sync.RWMutex
)

// EASConfig retrieves the active service configuration.
func EASConfig() *ServiceConfig {
	cfgLock.RLock()
	defer cfgLock.RUnlock()
	return activeConfig
}

// OverrideEASConfig replaces the active configuration.
func OverrideEASConfig(c *ServiceConfig) {
	cfgLock.Lock()
	defer cfgLock.Unlock()
	activeConfig = c
}

// SetActiveWithUndo replaces the active configuration and returns a
// function restoring the previous one.
func SetActiveWithUndo(c *ServiceConfig) func() {
	cfgLock.Lock()
	prev := activeConfig
	activeConfig = c
	cfgLock.Unlock()
	return func() {
		OverrideEASConfig(prev)
	}
}

// Copy returns a deep copy of the config.
func (c *ServiceConfig) Copy() *ServiceConfig {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
