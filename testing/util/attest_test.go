package util_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/offchain"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum-attestation-service/sdk/testing/simulated"
	"github.com/ethereum-attestation-service/sdk/testing/util"
	"github.com/ethereum/go-ethereum/common"
)

func setupContracts(t *testing.T, opts ...simulated.Option) (*simulated.Chain, *util.RequestContracts, *keys.Account) {
	chain := simulated.New(opts...)
	acct, err := chain.NewFundedAccount()
	require.NoError(t, err)
	contracts := &util.RequestContracts{
		EAS:      chain,
		Verifier: chain,
		EIP712:   chain.EIP712(),
		Offchain: offchain.FromConfig(params.DevConfig()),
		Balances: chain,
	}
	return chain, contracts, acct
}

func TestExpectAttestation(t *testing.T) {
	ctx := context.Background()
	recipient := common.HexToAddress("0x1111111111111111111111111111111111111111")
	for _, st := range []util.SignatureType{util.Direct, util.Delegated, util.Offchain} {
		t.Run(string(st), func(t *testing.T) {
			chain, contracts, acct := setupContracts(t)
			schema := util.RegisterSchema(t, ctx, chain, acct, "bool like", common.Address{}, true)

			uuid := util.ExpectAttestation(t, ctx, contracts, schema, &eas.AttestationRequestData{
				Recipient: recipient,
				Revocable: true,
				Data:      []byte{1},
			}, &util.AttestationOptions{SignatureType: st, From: acct})
			require.NotEqual(t, eas.ZeroUUID, uuid)
		})
	}
}

func TestExpectAttestation_DelegatedSender(t *testing.T) {
	ctx := context.Background()
	chain, contracts, acct := setupContracts(t)
	sender, err := chain.NewFundedAccount()
	require.NoError(t, err)
	schema := util.RegisterSchema(t, ctx, chain, acct, "bool like", common.Address{}, true)

	uuid := util.ExpectAttestation(t, ctx, contracts, schema, &eas.AttestationRequestData{
		Revocable: true,
		Data:      []byte{1},
	}, &util.AttestationOptions{SignatureType: util.Delegated, From: acct, Sender: sender})

	// The attester is the signer, not the submitting sender.
	att, err := chain.GetAttestation(ctx, uuid)
	require.NoError(t, err)
	require.Equal(t, acct.Address(), att.Attester)

	nonce, err := chain.Nonce(ctx, acct.Address())
	require.NoError(t, err)
	require.Equal(t, "1", nonce.String())
}

func TestExpectAttestation_ValueAccounting(t *testing.T) {
	ctx := context.Background()
	chain, contracts, acct := setupContracts(t)
	resolver := common.HexToAddress("0x2222222222222222222222222222222222222222")
	schema := util.RegisterSchema(t, ctx, chain, acct, "bool paid", resolver, true)

	util.ExpectAttestation(t, ctx, contracts, schema, &eas.AttestationRequestData{
		Revocable: true,
		Value:     big.NewInt(12345),
	}, &util.AttestationOptions{SignatureType: util.Direct, From: acct})

	require.Equal(t, "12345", chain.Balance(resolver).ToBig().String())
}

func TestExpectAttestation_BumpOnCollision(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	chain, contracts, acct := setupContracts(t, simulated.WithClock(func() time.Time { return now }))
	schema := util.RegisterSchema(t, ctx, chain, acct, "bool like", common.Address{}, true)

	data := &eas.AttestationRequestData{Revocable: true, Data: []byte{9}}
	first := util.ExpectAttestation(t, ctx, contracts, schema, data,
		&util.AttestationOptions{SignatureType: util.Direct, From: acct})
	second := util.ExpectAttestation(t, ctx, contracts, schema, data,
		&util.AttestationOptions{SignatureType: util.Direct, From: acct, Bump: 1})
	require.NotEqual(t, first, second)
}

func TestExpectFailedAttestation(t *testing.T) {
	ctx := context.Background()
	chain, contracts, acct := setupContracts(t)
	schema := util.RegisterSchema(t, ctx, chain, acct, "bool like", common.Address{}, true)
	frozen := util.RegisterSchema(t, ctx, chain, acct, "bool frozen", common.Address{}, false)

	tests := []struct {
		name      string
		contracts *util.RequestContracts
		schema    [32]byte
		data      *eas.AttestationRequestData
		opts      *util.AttestationOptions
		wantErr   string
	}{
		{
			name:      "unregistered schema",
			contracts: contracts,
			schema:    [32]byte{1},
			data:      &eas.AttestationRequestData{Revocable: true},
			opts:      &util.AttestationOptions{SignatureType: util.Direct, From: acct},
			wantErr:   "invalid schema",
		},
		{
			name:      "revocable on irrevocable schema",
			contracts: contracts,
			schema:    frozen,
			data:      &eas.AttestationRequestData{Revocable: true},
			opts:      &util.AttestationOptions{SignatureType: util.Direct, From: acct},
			wantErr:   "irrevocable",
		},
		{
			name:      "expiration in the past",
			contracts: contracts,
			schema:    schema,
			data:      &eas.AttestationRequestData{Revocable: true, ExpirationTime: 1},
			opts:      &util.AttestationOptions{SignatureType: util.Direct, From: acct},
			wantErr:   "invalid expiration time",
		},
		{
			name:      "delegated without verifier",
			contracts: &util.RequestContracts{EAS: chain, EIP712: chain.EIP712()},
			schema:    schema,
			data:      &eas.AttestationRequestData{Revocable: true},
			opts:      &util.AttestationOptions{SignatureType: util.Delegated, From: acct},
			wantErr:   "delegated requests require a verifier nonce source and eip712 utils",
		},
		{
			name:      "delegated without eip712 utils",
			contracts: &util.RequestContracts{EAS: chain, Verifier: chain},
			schema:    schema,
			data:      &eas.AttestationRequestData{Revocable: true},
			opts:      &util.AttestationOptions{SignatureType: util.Delegated, From: acct},
			wantErr:   "delegated requests require a verifier nonce source and eip712 utils",
		},
		{
			name:      "offchain without signing utils",
			contracts: &util.RequestContracts{EAS: chain},
			schema:    schema,
			data:      &eas.AttestationRequestData{Revocable: true},
			opts:      &util.AttestationOptions{SignatureType: util.Offchain, From: acct},
			wantErr:   "offchain requests require offchain signing utils",
		},
		{
			name:      "missing attestation client",
			contracts: &util.RequestContracts{},
			schema:    schema,
			data:      &eas.AttestationRequestData{Revocable: true},
			opts:      &util.AttestationOptions{SignatureType: util.Direct, From: acct},
			wantErr:   "an attestation client is required",
		},
		{
			name:      "missing account",
			contracts: contracts,
			schema:    schema,
			data:      &eas.AttestationRequestData{Revocable: true},
			opts:      &util.AttestationOptions{SignatureType: util.Direct},
			wantErr:   "an attesting account is required",
		},
		{
			name:      "unknown signature type",
			contracts: contracts,
			schema:    schema,
			data:      &eas.AttestationRequestData{Revocable: true},
			opts:      &util.AttestationOptions{SignatureType: "carrier-pigeon", From: acct},
			wantErr:   "unknown signature type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			util.ExpectFailedAttestation(t, ctx, tt.contracts, tt.schema, tt.data, tt.opts, tt.wantErr)
		})
	}
}

func TestExpectMultiAttestations(t *testing.T) {
	ctx := context.Background()
	recipient := common.HexToAddress("0x3333333333333333333333333333333333333333")
	for _, st := range []util.SignatureType{util.Direct, util.Delegated} {
		t.Run(string(st), func(t *testing.T) {
			chain, contracts, acct := setupContracts(t)
			resolver := common.HexToAddress("0x4444444444444444444444444444444444444444")
			likes := util.RegisterSchema(t, ctx, chain, acct, "bool like", common.Address{}, true)
			paid := util.RegisterSchema(t, ctx, chain, acct, "bool paid", resolver, true)

			uuids := util.ExpectMultiAttestations(t, ctx, contracts, []*eas.MultiAttestationRequest{
				{
					Schema: likes,
					Data: []eas.AttestationRequestData{
						{Recipient: recipient, Revocable: true, Data: []byte{1}},
						{Recipient: recipient, Revocable: true, Data: []byte{2}},
					},
				},
				{
					Schema: paid,
					Data: []eas.AttestationRequestData{
						{Recipient: recipient, Revocable: true, Value: big.NewInt(500)},
					},
				},
			}, &util.AttestationOptions{SignatureType: st, From: acct})
			require.Equal(t, 3, len(uuids))
			require.Equal(t, "500", chain.Balance(resolver).ToBig().String())

			if st == util.Delegated {
				nonce, err := chain.Nonce(ctx, acct.Address())
				require.NoError(t, err)
				require.Equal(t, "3", nonce.String())
			}
		})
	}
}

func TestExpectFailedMultiAttestations(t *testing.T) {
	ctx := context.Background()
	chain, contracts, acct := setupContracts(t)
	schema := util.RegisterSchema(t, ctx, chain, acct, "bool like", common.Address{}, true)

	t.Run("offchain batch unsupported", func(t *testing.T) {
		util.ExpectFailedMultiAttestations(t, ctx, contracts, []*eas.MultiAttestationRequest{{
			Schema: schema,
			Data:   []eas.AttestationRequestData{{Revocable: true}},
		}}, &util.AttestationOptions{SignatureType: util.Offchain, From: acct}, "offchain attestations cannot be batched")
	})

	t.Run("batch aborts on bad item", func(t *testing.T) {
		util.ExpectFailedMultiAttestations(t, ctx, contracts, []*eas.MultiAttestationRequest{{
			Schema: schema,
			Data: []eas.AttestationRequestData{
				{Revocable: true},
				{Revocable: true, ExpirationTime: 1},
			},
		}}, &util.AttestationOptions{SignatureType: util.Direct, From: acct}, "invalid expiration time")
	})
}
