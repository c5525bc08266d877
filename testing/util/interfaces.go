// Package util contains helpers driving attestation workflows end to end in
// tests: submitting requests in direct, delegated and offchain form and
// asserting the post-conditions. Helpers run against anything satisfying the
// small interfaces below, a simulated chain or live contract clients alike.
package util

import (
	"context"
	"math/big"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum-attestation-service/sdk/offchain"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum/go-ethereum/common"
)

// AttestationClient is the attestation surface the helpers drive.
type AttestationClient interface {
	Attest(ctx context.Context, from *keys.Account, req *eas.AttestationRequest) ([32]byte, error)
	AttestByDelegation(ctx context.Context, from *keys.Account, req *eas.DelegatedAttestationRequest) ([32]byte, error)
	MultiAttest(ctx context.Context, from *keys.Account, multi []*eas.MultiAttestationRequest) ([][32]byte, error)
	MultiAttestByDelegation(ctx context.Context, from *keys.Account, multi []*eas.MultiDelegatedAttestationRequest) ([][32]byte, error)
	Revoke(ctx context.Context, from *keys.Account, req *eas.RevocationRequest) error
	RevokeByDelegation(ctx context.Context, from *keys.Account, req *eas.DelegatedRevocationRequest) error
	MultiRevoke(ctx context.Context, from *keys.Account, multi []*eas.MultiRevocationRequest) error
	MultiRevokeByDelegation(ctx context.Context, from *keys.Account, multi []*eas.MultiDelegatedRevocationRequest) error
	GetAttestation(ctx context.Context, uuid [32]byte) (*eas.Attestation, error)
	IsAttestationValid(ctx context.Context, uuid [32]byte) (bool, error)
	IsAttestationRevoked(ctx context.Context, uuid [32]byte) (bool, error)
}

// NonceSource returns the next unused delegation nonce of an account.
type NonceSource interface {
	Nonce(ctx context.Context, account common.Address) (*big.Int, error)
}

// BalanceSource reports account balances.
type BalanceSource interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// SchemaRegistry is the schema surface the helpers drive.
type SchemaRegistry interface {
	Register(ctx context.Context, from *keys.Account, schema string, resolver common.Address, revocable bool) ([32]byte, error)
	GetSchema(ctx context.Context, uuid [32]byte) (*registry.SchemaRecord, error)
}

// RequestContracts bundles the collaborators a helper may need. EAS is
// always required, Verifier and EIP712 only for delegated requests,
// Offchain only for offchain ones. A nil Balances skips balance checks.
type RequestContracts struct {
	EAS      AttestationClient
	Verifier NonceSource
	EIP712   *eip712.Utils
	Offchain *offchain.Offchain
	Balances BalanceSource
}
