package logging

import (
	"testing"

	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum/go-ethereum/common"
)

func TestAttestationFields(t *testing.T) {
	att := &eas.Attestation{
		UUID:           [32]byte{0xab, 0xcd},
		Schema:         [32]byte{0x12},
		Attester:       common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		Recipient:      common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"),
		Time:           1700000000,
		Revocable:      true,
		RevocationTime: 1700000100,
	}
	fields := AttestationFields(att)
	require.Equal(t, "0xabcd0000", fields["uuid"])
	require.Equal(t, att.Attester.Hex(), fields["attester"])
	require.Equal(t, uint64(1700000000), fields["time"])
	require.Equal(t, true, fields["revoked"])
}

func TestSchemaFields(t *testing.T) {
	rec := &registry.SchemaRecord{
		UUID:      registry.NewSchemaUUID("bool like", common.Address{}, true),
		Revocable: true,
		Schema:    "bool like",
	}
	fields := SchemaFields(rec)
	require.Equal(t, "bool like", fields["schema"])
	require.Equal(t, true, fields["revocable"])
	require.Equal(t, common.Address{}.Hex(), fields["resolver"])
}
