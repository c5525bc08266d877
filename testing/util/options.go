package util

import (
	"math/big"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/pkg/errors"
)

// SignatureType selects how a helper submits a request.
type SignatureType string

const (
	// Direct submits a plain transaction from the attesting account.
	Direct SignatureType = "direct"
	// Delegated signs the request with EIP-712 and submits it through a
	// sender account.
	Delegated SignatureType = "delegated"
	// Offchain signs the attestation without touching the chain.
	Offchain SignatureType = "offchain"
)

// AttestationOptions controls how the attestation helpers submit and check
// a request. Attached value rides in the request data.
type AttestationOptions struct {
	SignatureType SignatureType
	// From attests. In delegated mode it signs and Sender submits.
	From *keys.Account
	// Sender submits delegated transactions. Defaults to From.
	Sender *keys.Account
	// Bump is the collision counter expected in the stored UUID.
	Bump uint32
	// SkipBalanceCheck disables the value accounting assertion even when
	// a balance source is configured.
	SkipBalanceCheck bool
}

func (o *AttestationOptions) sender() *keys.Account {
	if o.Sender != nil {
		return o.Sender
	}
	return o.From
}

// RevocationOptions controls how the revocation helpers submit a request.
type RevocationOptions struct {
	SignatureType SignatureType
	// From revokes. In delegated mode it signs and Sender submits.
	From *keys.Account
	// Sender submits delegated transactions. Defaults to From.
	Sender *keys.Account
}

func (o *RevocationOptions) sender() *keys.Account {
	if o.Sender != nil {
		return o.Sender
	}
	return o.From
}

// checkCollaborators fails fast when the contracts bundle is missing a
// collaborator the signature type needs.
func checkCollaborators(st SignatureType, contracts *RequestContracts) error {
	if contracts.EAS == nil {
		return errors.New("an attestation client is required")
	}
	switch st {
	case Direct:
		return nil
	case Delegated:
		if contracts.Verifier == nil || contracts.EIP712 == nil {
			return errors.New("delegated requests require a verifier nonce source and eip712 utils")
		}
		return nil
	case Offchain:
		if contracts.Offchain == nil {
			return errors.New("offchain requests require offchain signing utils")
		}
		return nil
	default:
		return errors.Errorf("unknown signature type %q", st)
	}
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
