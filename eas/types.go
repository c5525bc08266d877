// Package eas provides the core types of the attestation service and a
// contract-backed client for attesting, revoking and querying onchain.
package eas

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// ZeroUUID is the zero-valued attestation identifier.
var ZeroUUID = [32]byte{}

// Attestation is a single attestation record as stored by the contract.
type Attestation struct {
	UUID           [32]byte
	Schema         [32]byte
	Time           uint64
	ExpirationTime uint64
	RevocationTime uint64
	RefUUID        [32]byte
	Recipient      common.Address
	Attester       common.Address
	Revocable      bool
	Data           []byte
}

// AttestationRequestData carries the arguments of a single attestation.
// ExpirationTime is a unix timestamp, zero means the attestation never
// expires. Value is the amount of wei forwarded to the schema resolver.
type AttestationRequestData struct {
	Recipient      common.Address
	ExpirationTime uint64
	Revocable      bool
	RefUUID        [32]byte
	Data           []byte
	Value          *big.Int
}

// normalized returns a copy that is safe to abi-pack, a nil Value becomes
// zero.
func (d AttestationRequestData) normalized() AttestationRequestData {
	if d.Value == nil {
		d.Value = new(big.Int)
	}
	return d
}

// AttestationRequest is a single attestation against one schema.
type AttestationRequest struct {
	Schema [32]byte
	Data   AttestationRequestData
}

// MultiAttestationRequest groups attestations sharing one schema.
type MultiAttestationRequest struct {
	Schema [32]byte
	Data   []AttestationRequestData
}

// DelegatedAttestationRequest is an attestation signed by the attester and
// submitted by an arbitrary sender.
type DelegatedAttestationRequest struct {
	Schema    [32]byte
	Data      AttestationRequestData
	Signature Signature
	Attester  common.Address
}

// MultiDelegatedAttestationRequest groups delegated attestations sharing one
// schema and attester. Signatures are one per data item, over consecutive
// verifier nonces.
type MultiDelegatedAttestationRequest struct {
	Schema     [32]byte
	Data       []AttestationRequestData
	Signatures []Signature
	Attester   common.Address
}

// RevocationRequestData identifies the attestation to revoke. Value is the
// amount of wei forwarded to the schema resolver.
type RevocationRequestData struct {
	UUID  [32]byte `abi:"uuid"`
	Value *big.Int
}

func (d RevocationRequestData) normalized() RevocationRequestData {
	if d.Value == nil {
		d.Value = new(big.Int)
	}
	return d
}

// RevocationRequest is a single revocation against one schema.
type RevocationRequest struct {
	Schema [32]byte
	Data   RevocationRequestData
}

// MultiRevocationRequest groups revocations sharing one schema.
type MultiRevocationRequest struct {
	Schema [32]byte
	Data   []RevocationRequestData
}

// DelegatedRevocationRequest is a revocation signed by the original attester
// and submitted by an arbitrary sender.
type DelegatedRevocationRequest struct {
	Schema    [32]byte
	Data      RevocationRequestData
	Signature Signature
	Revoker   common.Address
}

// MultiDelegatedRevocationRequest groups delegated revocations sharing one
// schema and revoker.
type MultiDelegatedRevocationRequest struct {
	Schema     [32]byte
	Data       []RevocationRequestData
	Signatures []Signature
	Revoker    common.Address
}

// Signature is a secp256k1 signature in contract form, V is 27 or 28.
type Signature struct {
	V uint8
	R [32]byte
	S [32]byte
}

// NewSignature converts a compact [R || S || V] signature, as produced by
// keys.Signer, into contract form. A recovery id below 27 is shifted up.
func NewSignature(sig []byte) (Signature, error) {
	if len(sig) != 65 {
		return Signature{}, errors.Errorf("expected 65 byte signature, got %d bytes", len(sig))
	}
	var s Signature
	copy(s.R[:], sig[:32])
	copy(s.S[:], sig[32:64])
	s.V = sig[64]
	if s.V < 27 {
		s.V += 27
	}
	return s, nil
}

// Bytes returns the compact [R || S || V] form with the recovery id in
// {0, 1}, as expected by signature recovery.
func (s Signature) Bytes() []byte {
	out := make([]byte, 65)
	copy(out[:32], s.R[:])
	copy(out[32:64], s.S[:])
	v := s.V
	if v >= 27 {
		v -= 27
	}
	out[64] = v
	return out
}

// RecoverSigner returns the address that signed the given digest.
func (s Signature) RecoverSigner(digest [32]byte) (common.Address, error) {
	pub, err := crypto.SigToPub(digest[:], s.Bytes())
	if err != nil {
		return common.Address{}, errors.Wrap(err, "could not recover public key")
	}
	return crypto.PubkeyToAddress(*pub), nil
}
