// Package eip712 hashes and signs the typed data of delegated attestation
// requests. The domain is shared with the onchain verifier, which checks
// the signatures against per-signer incrementing nonces.
package eip712

import (
	"math/big"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/encoding/bytesutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// Utils hashes typed data under one EIP-712 domain.
type Utils struct {
	name     string
	version  string
	chainID  *big.Int
	contract common.Address
}

// NewUtils creates a typed data hasher for the given domain.
func NewUtils(name, version string, chainID *big.Int, contract common.Address) *Utils {
	return &Utils{
		name:     name,
		version:  version,
		chainID:  chainID,
		contract: contract,
	}
}

// FromConfig creates the hasher for delegated requests, bound to the
// config's verifier contract.
func FromConfig(cfg *params.ServiceConfig) *Utils {
	return NewUtils(cfg.DomainName, cfg.DomainVersion, new(big.Int).SetUint64(cfg.ChainID), cfg.EIP712VerifierContract)
}

// ChainID returns the domain's chain id.
func (u *Utils) ChainID() *big.Int {
	return u.chainID
}

// Contract returns the domain's verifying contract.
func (u *Utils) Contract() common.Address {
	return u.contract
}

// HashTypedData returns the EIP-712 digest of the given message under the
// utils' domain.
func (u *Utils) HashTypedData(primaryType string, dataType []apitypes.Type, message apitypes.TypedDataMessage) ([32]byte, error) {
	data := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			primaryType:    dataType,
		},
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              u.name,
			Version:           u.version,
			ChainId:           (*math.HexOrDecimal256)(u.chainID),
			VerifyingContract: u.contract.Hex(),
		},
		Message: message,
	}
	digest, _, err := apitypes.TypedDataAndHash(data)
	if err != nil {
		return [32]byte{}, errors.Wrapf(err, "could not hash %s typed data", primaryType)
	}
	return bytesutil.ToBytes32(digest), nil
}
