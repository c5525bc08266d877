// Package offchain signs and verifies attestations that never touch the
// chain. A signed offchain attestation carries its own identifier, derived
// from the attested parameters, and an EIP-712 signature binding it to the
// attester.
package offchain

import (
	"math/big"
	"strconv"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

// ErrInvalidUUID is returned when a signed attestation carries an identifier
// that does not match its parameters.
var ErrInvalidUUID = errors.New("invalid attestation uuid")

var attestationType = []apitypes.Type{
	{Name: "schema", Type: "bytes32"},
	{Name: "recipient", Type: "address"},
	{Name: "time", Type: "uint64"},
	{Name: "expirationTime", Type: "uint64"},
	{Name: "revocable", Type: "bool"},
	{Name: "refUUID", Type: "bytes32"},
	{Name: "data", Type: "bytes"},
}

// AttestationParams are the attested values. Time is the unix time the
// attestation was made at.
type AttestationParams struct {
	Schema         [32]byte
	Recipient      common.Address
	Time           uint64
	ExpirationTime uint64
	Revocable      bool
	RefUUID        [32]byte
	Data           []byte
}

// SignedAttestation is a complete offchain attestation: the attested
// parameters, their derived identifier, the attester and their signature.
type SignedAttestation struct {
	AttestationParams
	UUID      [32]byte
	Attester  common.Address
	Signature eas.Signature
}

// Offchain signs and verifies offchain attestations under its own EIP-712
// domain.
type Offchain struct {
	typed *eip712.Utils
}

// New creates an offchain signer over the given typed data domain.
func New(typed *eip712.Utils) *Offchain {
	return &Offchain{typed: typed}
}

// FromConfig creates the offchain signer for a deployment. The domain is
// bound to the attestation contract with the offchain domain name.
func FromConfig(cfg *params.ServiceConfig) *Offchain {
	return New(eip712.NewUtils(cfg.OffchainDomainName, cfg.DomainVersion, new(big.Int).SetUint64(cfg.ChainID), cfg.EASContract))
}

// Digest returns the EIP-712 digest of the attestation parameters.
func (o *Offchain) Digest(p *AttestationParams) ([32]byte, error) {
	return o.typed.HashTypedData("Attestation", attestationType, apitypes.TypedDataMessage{
		"schema":         hexutil.Encode(p.Schema[:]),
		"recipient":      p.Recipient.Hex(),
		"time":           strconv.FormatUint(p.Time, 10),
		"expirationTime": strconv.FormatUint(p.ExpirationTime, 10),
		"revocable":      p.Revocable,
		"refUUID":        hexutil.Encode(p.RefUUID[:]),
		"data":           hexutil.Encode(p.Data),
	})
}

// SignAttestation signs the given parameters and returns the complete
// offchain attestation.
func (o *Offchain) SignAttestation(signer keys.Signer, p *AttestationParams) (*SignedAttestation, error) {
	digest, err := o.Digest(p)
	if err != nil {
		return nil, err
	}
	raw, err := signer.SignDigest(digest)
	if err != nil {
		return nil, errors.Wrap(err, "could not sign attestation")
	}
	sig, err := eas.NewSignature(raw)
	if err != nil {
		return nil, err
	}
	return &SignedAttestation{
		AttestationParams: *p,
		UUID:              eas.NewOffchainUUID(p.Schema, p.Recipient, p.Time, p.ExpirationTime, p.Revocable, p.RefUUID, p.Data),
		Attester:          signer.Address(),
		Signature:         sig,
	}, nil
}

// VerifyAttestation checks that the identifier matches the attested
// parameters and that the signature was produced by the claimed attester.
func (o *Offchain) VerifyAttestation(att *SignedAttestation) error {
	expected := eas.NewOffchainUUID(att.Schema, att.Recipient, att.Time, att.ExpirationTime, att.Revocable, att.RefUUID, att.Data)
	if att.UUID != expected {
		return errors.Wrapf(ErrInvalidUUID, "got %#x, want %#x", att.UUID, expected)
	}
	digest, err := o.Digest(&att.AttestationParams)
	if err != nil {
		return err
	}
	recovered, err := att.Signature.RecoverSigner(digest)
	if err != nil {
		return err
	}
	if recovered != att.Attester {
		return errors.Wrapf(eas.ErrInvalidSignature, "recovered %s, want attester %s", recovered.Hex(), att.Attester.Hex())
	}
	return nil
}
