// Package keys wraps secp256k1 private keys with the signing surface the
// SDK needs: digest signing for EIP-712 payloads and transactor
// construction for onchain submissions.
package keys

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Signer signs 32 byte digests on behalf of a single address. Hardware
// or remote signers can satisfy this without exposing key material.
type Signer interface {
	Address() common.Address
	SignDigest(digest [32]byte) ([]byte, error)
}

// Account is an in-memory secp256k1 account.
type Account struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewAccount generates a fresh account with a random key.
func NewAccount() (*Account, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate secp256k1 key")
	}
	return FromECDSA(key), nil
}

// FromECDSA wraps an existing private key.
func FromECDSA(key *ecdsa.PrivateKey) *Account {
	return &Account{
		key:  key,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// FromHex parses a hex-encoded private key, with or without the 0x prefix.
func FromHex(hexkey string) (*Account, error) {
	hexkey = strings.TrimPrefix(strings.TrimSpace(hexkey), "0x")
	key, err := crypto.HexToECDSA(hexkey)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}
	return FromECDSA(key), nil
}

// Address returns the account address.
func (a *Account) Address() common.Address {
	return a.addr
}

// SignDigest signs the digest and returns a 65 byte [R || S || V]
// signature with V in {0, 1}.
func (a *Account) SignDigest(digest [32]byte) ([]byte, error) {
	sig, err := crypto.Sign(digest[:], a.key)
	if err != nil {
		return nil, errors.Wrap(err, "sign digest")
	}
	return sig, nil
}

// TransactOpts builds authenticated transaction options for the given chain.
func (a *Account) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	if chainID == nil {
		return nil, errors.New("chain id is required")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(a.key, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "build transactor")
	}
	return opts, nil
}
