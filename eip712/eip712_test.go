package eip712_test

import (
	"math/big"
	"testing"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum/go-ethereum/common"
)

func testUtils() *eip712.Utils {
	return eip712.NewUtils("EAS", "0.26", big.NewInt(31337), common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"))
}

func testAttestation(nonce int64) *eip712.DelegatedAttestation {
	return &eip712.DelegatedAttestation{
		Schema:    registry.NewSchemaUUID("bool like", common.Address{}, true),
		Recipient: common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		Revocable: true,
		Data:      []byte{1},
		Nonce:     big.NewInt(nonce),
	}
}

func TestFromConfig(t *testing.T) {
	cfg := params.DevConfig()
	typed := eip712.FromConfig(cfg)
	require.Equal(t, cfg.ChainID, typed.ChainID().Uint64())
	require.Equal(t, cfg.EIP712VerifierContract, typed.Contract())
}

func TestAttestDigest_Deterministic(t *testing.T) {
	typed := testUtils()
	first, err := typed.AttestDigest(testAttestation(0))
	require.NoError(t, err)
	second, err := typed.AttestDigest(testAttestation(0))
	require.NoError(t, err)
	require.Equal(t, first, second)

	// A nil nonce hashes like an explicit zero.
	req := testAttestation(0)
	req.Nonce = nil
	third, err := typed.AttestDigest(req)
	require.NoError(t, err)
	require.Equal(t, first, third)
}

func TestAttestDigest_FieldSensitivity(t *testing.T) {
	typed := testUtils()
	base, err := typed.AttestDigest(testAttestation(0))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*eip712.DelegatedAttestation)
	}{
		{name: "schema", mutate: func(r *eip712.DelegatedAttestation) { r.Schema[0] ^= 1 }},
		{name: "recipient", mutate: func(r *eip712.DelegatedAttestation) { r.Recipient = common.Address{} }},
		{name: "expiration time", mutate: func(r *eip712.DelegatedAttestation) { r.ExpirationTime = 1 }},
		{name: "revocable", mutate: func(r *eip712.DelegatedAttestation) { r.Revocable = false }},
		{name: "ref uuid", mutate: func(r *eip712.DelegatedAttestation) { r.RefUUID[31] = 1 }},
		{name: "data", mutate: func(r *eip712.DelegatedAttestation) { r.Data = []byte{2} }},
		{name: "nonce", mutate: func(r *eip712.DelegatedAttestation) { r.Nonce = big.NewInt(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testAttestation(0)
			tt.mutate(req)
			digest, err := typed.AttestDigest(req)
			require.NoError(t, err)
			require.NotEqual(t, base, digest)
		})
	}
}

func TestAttestDigest_DomainSeparation(t *testing.T) {
	base, err := testUtils().AttestDigest(testAttestation(0))
	require.NoError(t, err)

	otherChain := eip712.NewUtils("EAS", "0.26", big.NewInt(1), common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"))
	digest, err := otherChain.AttestDigest(testAttestation(0))
	require.NoError(t, err)
	require.NotEqual(t, base, digest, "chain id must separate domains")

	otherContract := eip712.NewUtils("EAS", "0.26", big.NewInt(31337), common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"))
	digest, err = otherContract.AttestDigest(testAttestation(0))
	require.NoError(t, err)
	require.NotEqual(t, base, digest, "verifying contract must separate domains")
}

func TestSignDelegatedAttestation_Roundtrip(t *testing.T) {
	typed := testUtils()
	attester, err := keys.NewAccount()
	require.NoError(t, err)

	req := testAttestation(0)
	sig, err := typed.SignDelegatedAttestation(attester, req)
	require.NoError(t, err)
	require.NoError(t, typed.VerifyDelegatedAttestation(attester.Address(), req, sig))
}

func TestVerifyDelegatedAttestation_WrongSigner(t *testing.T) {
	typed := testUtils()
	attester, err := keys.NewAccount()
	require.NoError(t, err)
	other, err := keys.NewAccount()
	require.NoError(t, err)

	req := testAttestation(0)
	sig, err := typed.SignDelegatedAttestation(other, req)
	require.NoError(t, err)
	require.ErrorIs(t, typed.VerifyDelegatedAttestation(attester.Address(), req, sig), eas.ErrInvalidSignature)
}

func TestVerifyDelegatedAttestation_TamperedMessage(t *testing.T) {
	typed := testUtils()
	attester, err := keys.NewAccount()
	require.NoError(t, err)

	req := testAttestation(0)
	sig, err := typed.SignDelegatedAttestation(attester, req)
	require.NoError(t, err)

	req.Recipient = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	err = typed.VerifyDelegatedAttestation(attester.Address(), req, sig)
	require.ErrorIs(t, err, eas.ErrInvalidSignature)
}

func TestVerifyDelegatedAttestation_StaleNonce(t *testing.T) {
	typed := testUtils()
	attester, err := keys.NewAccount()
	require.NoError(t, err)

	sig, err := typed.SignDelegatedAttestation(attester, testAttestation(0))
	require.NoError(t, err)

	// The verifier hashes the signer's current nonce into the digest, so a
	// signature over a consumed nonce no longer verifies.
	err = typed.VerifyDelegatedAttestation(attester.Address(), testAttestation(1), sig)
	require.ErrorIs(t, err, eas.ErrInvalidSignature)
}

func TestRevokeDigest_FieldSensitivity(t *testing.T) {
	typed := testUtils()
	req := &eip712.DelegatedRevocation{
		Schema: registry.NewSchemaUUID("bool like", common.Address{}, true),
		UUID:   [32]byte{1},
		Nonce:  big.NewInt(0),
	}
	base, err := typed.RevokeDigest(req)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*eip712.DelegatedRevocation)
	}{
		{name: "schema", mutate: func(r *eip712.DelegatedRevocation) { r.Schema[0] ^= 1 }},
		{name: "uuid", mutate: func(r *eip712.DelegatedRevocation) { r.UUID[0] = 2 }},
		{name: "nonce", mutate: func(r *eip712.DelegatedRevocation) { r.Nonce = big.NewInt(7) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := *req
			tt.mutate(&mutated)
			digest, err := typed.RevokeDigest(&mutated)
			require.NoError(t, err)
			require.NotEqual(t, base, digest)
		})
	}
}

func TestSignDelegatedRevocation_Roundtrip(t *testing.T) {
	typed := testUtils()
	revoker, err := keys.NewAccount()
	require.NoError(t, err)

	req := &eip712.DelegatedRevocation{
		Schema: registry.NewSchemaUUID("bool like", common.Address{}, true),
		UUID:   [32]byte{1},
		Nonce:  big.NewInt(3),
	}
	sig, err := typed.SignDelegatedRevocation(revoker, req)
	require.NoError(t, err)
	require.NoError(t, typed.VerifyDelegatedRevocation(revoker.Address(), req, sig))

	other, err := keys.NewAccount()
	require.NoError(t, err)
	err = typed.VerifyDelegatedRevocation(other.Address(), req, sig)
	require.ErrorIs(t, err, eas.ErrInvalidSignature)
}
