package eas

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// VerifierMetaData holds the hand-maintained ABI of the standalone EIP-712
// verifier contract.
var VerifierMetaData = &bind.MetaData{ABI: verifierABI}

const verifierABI = `[
  {"type":"function","name":"VERSION","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"getDomainSeparator","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bytes32"}]},
  {"type":"function","name":"getNonce","stateMutability":"view","inputs":[
    {"name":"account","type":"address"}
  ],"outputs":[{"name":"","type":"uint256"}]}
]`

// VerifierClient reads from the EIP-712 verifier contract, which tracks the
// per-signer nonces consumed by delegated requests.
type VerifierClient struct {
	addr     common.Address
	contract *bind.BoundContract
}

// NewVerifierClient creates a read-only client for the verifier at the given
// address.
func NewVerifierClient(address common.Address, caller bind.ContractCaller) (*VerifierClient, error) {
	if address == (common.Address{}) {
		return nil, errors.New("verifier contract address is required")
	}
	parsed, err := VerifierMetaData.GetAbi()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse verifier abi")
	}
	return &VerifierClient{
		addr:     address,
		contract: bind.NewBoundContract(address, *parsed, caller, nil, nil),
	}, nil
}

// Address returns the verifier contract address.
func (v *VerifierClient) Address() common.Address {
	return v.addr
}

// Nonce returns the next unused delegation nonce of the given account.
func (v *VerifierClient) Nonce(ctx context.Context, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := v.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getNonce", account); err != nil {
		return nil, errors.Wrap(err, "could not get nonce")
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

// DomainSeparator returns the EIP-712 domain separator the verifier checks
// delegated signatures against.
func (v *VerifierClient) DomainSeparator(ctx context.Context) ([32]byte, error) {
	var out []interface{}
	if err := v.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getDomainSeparator"); err != nil {
		return [32]byte{}, errors.Wrap(err, "could not get domain separator")
	}
	return *abi.ConvertType(out[0], new([32]byte)).(*[32]byte), nil
}

// Version returns the deployed verifier version.
func (v *VerifierClient) Version(ctx context.Context) (string, error) {
	var out []interface{}
	if err := v.contract.Call(&bind.CallOpts{Context: ctx}, &out, "VERSION"); err != nil {
		return "", errors.Wrap(err, "could not get verifier version")
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}
