package util_test

import (
	"context"
	"testing"

	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum-attestation-service/sdk/testing/util"
	"github.com/ethereum/go-ethereum/common"
)

func TestRegisterSchema(t *testing.T) {
	ctx := context.Background()
	chain, _, acct := setupContracts(t)
	resolver := common.HexToAddress("0x9999999999999999999999999999999999999999")

	uuid := util.RegisterSchema(t, ctx, chain, acct, "uint256 score, bool verified", resolver, true)
	require.Equal(t, registry.NewSchemaUUID("uint256 score, bool verified", resolver, true), uuid)

	other := util.RegisterSchema(t, ctx, chain, acct, "uint256 score, bool verified", resolver, false)
	require.NotEqual(t, uuid, other)
}
