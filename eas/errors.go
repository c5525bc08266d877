package eas

import "github.com/pkg/errors"

// Failure modes of the attestation and schema registry contracts. The
// simulated chain returns these directly, the contract client surfaces
// onchain failures as receipt errors.
var (
	ErrInvalidSchema          = errors.New("invalid schema")
	ErrInvalidExpirationTime  = errors.New("invalid expiration time")
	ErrIrrevocable            = errors.New("irrevocable")
	ErrNotPayable             = errors.New("not payable")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrNotFound               = errors.New("not found")
	ErrAccessDenied           = errors.New("access denied")
	ErrAlreadyRevoked         = errors.New("already revoked")
	ErrAlreadyExists          = errors.New("already exists")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrAlreadyTimestamped     = errors.New("already timestamped")
	ErrAlreadyRevokedOffchain = errors.New("already revoked offchain")
)
