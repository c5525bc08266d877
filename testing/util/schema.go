package util

import (
	"context"
	"testing"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum/go-ethereum/common"
)

// RegisterSchema registers a schema and asserts the returned UUID matches
// the derivation and the stored record round-trips.
func RegisterSchema(t testing.TB, ctx context.Context, reg SchemaRegistry, from *keys.Account, schema string, resolver common.Address, revocable bool) [32]byte {
	uuid, err := reg.Register(ctx, from, schema, resolver, revocable)
	require.NoError(t, err)
	require.Equal(t, registry.NewSchemaUUID(schema, resolver, revocable), uuid, "schema uuid does not match its derivation")

	rec, err := reg.GetSchema(ctx, uuid)
	require.NoError(t, err)
	require.Equal(t, uuid, rec.UUID)
	require.Equal(t, schema, rec.Schema)
	require.Equal(t, resolver, rec.Resolver)
	require.Equal(t, revocable, rec.Revocable)
	return uuid
}
