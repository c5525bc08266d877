package eip712

import (
	"math/big"
	"strconv"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

var (
	attestType = []apitypes.Type{
		{Name: "schema", Type: "bytes32"},
		{Name: "recipient", Type: "address"},
		{Name: "expirationTime", Type: "uint64"},
		{Name: "revocable", Type: "bool"},
		{Name: "refUUID", Type: "bytes32"},
		{Name: "data", Type: "bytes"},
		{Name: "nonce", Type: "uint256"},
	}
	revokeType = []apitypes.Type{
		{Name: "schema", Type: "bytes32"},
		{Name: "uuid", Type: "bytes32"},
		{Name: "nonce", Type: "uint256"},
	}
)

// DelegatedAttestation is the typed message an attester signs to let another
// sender submit the attestation. Nonce must be the attester's current
// verifier nonce.
type DelegatedAttestation struct {
	Schema         [32]byte
	Recipient      common.Address
	ExpirationTime uint64
	Revocable      bool
	RefUUID        [32]byte
	Data           []byte
	Nonce          *big.Int
}

// DelegatedRevocation is the typed message an attester signs to let another
// sender revoke their attestation.
type DelegatedRevocation struct {
	Schema [32]byte
	UUID   [32]byte
	Nonce  *big.Int
}

// AttestDigest returns the EIP-712 digest of a delegated attestation.
func (u *Utils) AttestDigest(req *DelegatedAttestation) ([32]byte, error) {
	nonce := req.Nonce
	if nonce == nil {
		nonce = new(big.Int)
	}
	return u.HashTypedData("Attest", attestType, apitypes.TypedDataMessage{
		"schema":         hexutil.Encode(req.Schema[:]),
		"recipient":      req.Recipient.Hex(),
		"expirationTime": strconv.FormatUint(req.ExpirationTime, 10),
		"revocable":      req.Revocable,
		"refUUID":        hexutil.Encode(req.RefUUID[:]),
		"data":           hexutil.Encode(req.Data),
		"nonce":          nonce,
	})
}

// RevokeDigest returns the EIP-712 digest of a delegated revocation.
func (u *Utils) RevokeDigest(req *DelegatedRevocation) ([32]byte, error) {
	nonce := req.Nonce
	if nonce == nil {
		nonce = new(big.Int)
	}
	return u.HashTypedData("Revoke", revokeType, apitypes.TypedDataMessage{
		"schema": hexutil.Encode(req.Schema[:]),
		"uuid":   hexutil.Encode(req.UUID[:]),
		"nonce":  nonce,
	})
}

// SignDelegatedAttestation signs a delegated attestation message.
func (u *Utils) SignDelegatedAttestation(signer keys.Signer, req *DelegatedAttestation) (eas.Signature, error) {
	digest, err := u.AttestDigest(req)
	if err != nil {
		return eas.Signature{}, err
	}
	sig, err := signer.SignDigest(digest)
	if err != nil {
		return eas.Signature{}, errors.Wrap(err, "could not sign delegated attestation")
	}
	return eas.NewSignature(sig)
}

// VerifyDelegatedAttestation checks that the signature over the message was
// produced by the attester.
func (u *Utils) VerifyDelegatedAttestation(attester common.Address, req *DelegatedAttestation, sig eas.Signature) error {
	digest, err := u.AttestDigest(req)
	if err != nil {
		return err
	}
	recovered, err := sig.RecoverSigner(digest)
	if err != nil {
		return err
	}
	if recovered != attester {
		return errors.Wrapf(eas.ErrInvalidSignature, "recovered %s, want attester %s", recovered.Hex(), attester.Hex())
	}
	return nil
}

// SignDelegatedRevocation signs a delegated revocation message.
func (u *Utils) SignDelegatedRevocation(signer keys.Signer, req *DelegatedRevocation) (eas.Signature, error) {
	digest, err := u.RevokeDigest(req)
	if err != nil {
		return eas.Signature{}, err
	}
	sig, err := signer.SignDigest(digest)
	if err != nil {
		return eas.Signature{}, errors.Wrap(err, "could not sign delegated revocation")
	}
	return eas.NewSignature(sig)
}

// VerifyDelegatedRevocation checks that the signature over the message was
// produced by the revoker.
func (u *Utils) VerifyDelegatedRevocation(revoker common.Address, req *DelegatedRevocation, sig eas.Signature) error {
	digest, err := u.RevokeDigest(req)
	if err != nil {
		return err
	}
	recovered, err := sig.RecoverSigner(digest)
	if err != nil {
		return err
	}
	if recovered != revoker {
		return errors.Wrapf(eas.ErrInvalidSignature, "recovered %s, want revoker %s", recovered.Hex(), revoker.Hex())
	}
	return nil
}
