package eas_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/encoding/bytesutil"
	"github.com/ethereum-attestation-service/sdk/testing/mock"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
	logTest "github.com/sirupsen/logrus/hooks/test"
)

var testContractAddr = common.HexToAddress("0xC2679fBD37d54388Ce493F1DB75320D236e1815e")

func newTestClient(t *testing.T) (*eas.Client, *mock.Backend, *keys.Account) {
	backend := mock.NewBackend()
	client, err := eas.NewClient(testContractAddr, backend, eas.WithChainID(big.NewInt(31337)))
	require.NoError(t, err)
	acct, err := keys.NewAccount()
	require.NoError(t, err)
	return client, backend, acct
}

func contractABI(t *testing.T) *abi.ABI {
	parsed, err := eas.ContractMetaData.GetAbi()
	require.NoError(t, err)
	return parsed
}

func attestedLog(parsed *abi.ABI, recipient, attester common.Address, schema, uuid [32]byte) *types.Log {
	return &types.Log{
		Address: testContractAddr,
		Topics: []common.Hash{
			parsed.Events["Attested"].ID,
			common.BytesToHash(recipient.Bytes()),
			common.BytesToHash(attester.Bytes()),
			common.Hash(schema),
		},
		Data: uuid[:],
	}
}

func TestClient_Attest(t *testing.T) {
	logrus.SetLevel(logrus.DebugLevel)
	hook := logTest.NewGlobal()
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	schema := bytesutil.ToBytes32([]byte("bool like"))
	recipient := common.HexToAddress("0x1111111111111111111111111111111111111111")
	uuid := bytesutil.ToBytes32([]byte("uuid-1"))
	backend.StageLogs(attestedLog(parsed, recipient, acct.Address(), schema, uuid))

	got, err := client.Attest(ctx, acct, &eas.AttestationRequest{
		Schema: schema,
		Data: eas.AttestationRequestData{
			Recipient: recipient,
			Revocable: true,
			Data:      []byte{1},
			Value:     big.NewInt(55),
		},
	})
	require.NoError(t, err)
	require.Equal(t, uuid, got)

	tx := backend.LastTx()
	require.NotNil(t, tx)
	require.Equal(t, "55", tx.Value().String())
	require.DeepEqual(t, parsed.Methods["attest"].ID, tx.Data()[:4])
	require.LogsContain(t, hook, "Submitted attestation")
}

func TestClient_Attest_NoEvent(t *testing.T) {
	ctx := context.Background()
	client, _, acct := newTestClient(t)

	_, err := client.Attest(ctx, acct, &eas.AttestationRequest{
		Schema: bytesutil.ToBytes32([]byte("bool like")),
		Data:   eas.AttestationRequestData{Revocable: true},
	})
	require.ErrorContains(t, "expected 1 attestation events, got 0", err)
}

func TestClient_Attest_Reverted(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	backend.StageRevert()

	_, err := client.Attest(ctx, acct, &eas.AttestationRequest{
		Schema: bytesutil.ToBytes32([]byte("bool like")),
		Data:   eas.AttestationRequestData{Revocable: true},
	})
	require.ErrorContains(t, "reverted", err)
}

func TestClient_AttestByDelegation(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	attester := common.HexToAddress("0x2222222222222222222222222222222222222222")
	schema := bytesutil.ToBytes32([]byte("bool like"))
	uuid := bytesutil.ToBytes32([]byte("uuid-2"))
	backend.StageLogs(attestedLog(parsed, common.Address{}, attester, schema, uuid))

	got, err := client.AttestByDelegation(ctx, acct, &eas.DelegatedAttestationRequest{
		Schema:    schema,
		Data:      eas.AttestationRequestData{Revocable: true},
		Signature: eas.Signature{V: 27},
		Attester:  attester,
	})
	require.NoError(t, err)
	require.Equal(t, uuid, got)
	require.DeepEqual(t, parsed.Methods["attestByDelegation"].ID, backend.LastTx().Data()[:4])
}

func TestClient_MultiAttest(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	schema := bytesutil.ToBytes32([]byte("bool like"))
	first := bytesutil.ToBytes32([]byte("uuid-3"))
	second := bytesutil.ToBytes32([]byte("uuid-4"))
	backend.StageLogs(
		attestedLog(parsed, common.Address{}, acct.Address(), schema, first),
		attestedLog(parsed, common.Address{}, acct.Address(), schema, second),
	)

	uuids, err := client.MultiAttest(ctx, acct, []*eas.MultiAttestationRequest{{
		Schema: schema,
		Data: []eas.AttestationRequestData{
			{Revocable: true, Value: big.NewInt(10)},
			{Revocable: true, Value: big.NewInt(32)},
		},
	}})
	require.NoError(t, err)
	require.Equal(t, 2, len(uuids))
	require.Equal(t, first, uuids[0])
	require.Equal(t, second, uuids[1])

	// The batch rides a single transaction carrying the summed value.
	require.Equal(t, 1, len(backend.SentTxs()))
	require.Equal(t, "42", backend.LastTx().Value().String())
}

func TestClient_MultiAttest_EventCountMismatch(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	schema := bytesutil.ToBytes32([]byte("bool like"))
	backend.StageLogs(attestedLog(parsed, common.Address{}, acct.Address(), schema, bytesutil.ToBytes32([]byte("u"))))

	_, err := client.MultiAttest(ctx, acct, []*eas.MultiAttestationRequest{{
		Schema: schema,
		Data:   []eas.AttestationRequestData{{Revocable: true}, {Revocable: true}},
	}})
	require.ErrorContains(t, "expected 2 attestation events, got 1", err)
}

func TestClient_MultiAttestByDelegation_SignatureCountMismatch(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)

	_, err := client.MultiAttestByDelegation(ctx, acct, []*eas.MultiDelegatedAttestationRequest{{
		Schema:     bytesutil.ToBytes32([]byte("bool like")),
		Data:       []eas.AttestationRequestData{{Revocable: true}, {Revocable: true}},
		Signatures: []eas.Signature{{V: 27}},
		Attester:   acct.Address(),
	}})
	require.ErrorContains(t, "request 0 has 1 signatures for 2 attestations", err)
	require.Equal(t, 0, len(backend.SentTxs()))
}

func TestClient_Revoke(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	err := client.Revoke(ctx, acct, &eas.RevocationRequest{
		Schema: bytesutil.ToBytes32([]byte("bool like")),
		Data:   eas.RevocationRequestData{UUID: bytesutil.ToBytes32([]byte("uuid-5"))},
	})
	require.NoError(t, err)
	require.DeepEqual(t, parsed.Methods["revoke"].ID, backend.LastTx().Data()[:4])
}

func TestClient_Revoke_Reverted(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	backend.StageRevert()

	err := client.Revoke(ctx, acct, &eas.RevocationRequest{
		Schema: bytesutil.ToBytes32([]byte("bool like")),
		Data:   eas.RevocationRequestData{UUID: bytesutil.ToBytes32([]byte("uuid-6"))},
	})
	require.ErrorContains(t, "reverted", err)
}

func TestClient_GetAttestation(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	uuid := bytesutil.ToBytes32([]byte("uuid-7"))
	schema := bytesutil.ToBytes32([]byte("bool like"))
	recipient := common.HexToAddress("0x1111111111111111111111111111111111111111")
	ret, err := parsed.Methods["getAttestation"].Outputs.Pack(struct {
		Uuid           [32]byte
		Schema         [32]byte
		Time           uint64
		ExpirationTime uint64
		RevocationTime uint64
		RefUUID        [32]byte
		Recipient      common.Address
		Attester       common.Address
		Revocable      bool
		Data           []byte
	}{
		Uuid:           uuid,
		Schema:         schema,
		Time:           1000,
		ExpirationTime: 2000,
		RevocationTime: 0,
		Recipient:      recipient,
		Attester:       acct.Address(),
		Revocable:      true,
		Data:           []byte{1, 2},
	})
	require.NoError(t, err)
	backend.StageCall(parsed.Methods["getAttestation"].ID, ret)

	att, err := client.GetAttestation(ctx, uuid)
	require.NoError(t, err)
	require.Equal(t, uuid, att.UUID)
	require.Equal(t, schema, att.Schema)
	require.Equal(t, uint64(1000), att.Time)
	require.Equal(t, uint64(2000), att.ExpirationTime)
	require.Equal(t, uint64(0), att.RevocationTime)
	require.Equal(t, recipient, att.Recipient)
	require.Equal(t, acct.Address(), att.Attester)
	require.Equal(t, true, att.Revocable)
	require.DeepEqual(t, []byte{1, 2}, att.Data)
}

func TestClient_GetAttestation_NotFound(t *testing.T) {
	ctx := context.Background()
	client, backend, _ := newTestClient(t)
	parsed := contractABI(t)

	ret, err := parsed.Methods["getAttestation"].Outputs.Pack(struct {
		Uuid           [32]byte
		Schema         [32]byte
		Time           uint64
		ExpirationTime uint64
		RevocationTime uint64
		RefUUID        [32]byte
		Recipient      common.Address
		Attester       common.Address
		Revocable      bool
		Data           []byte
	}{})
	require.NoError(t, err)
	backend.StageCall(parsed.Methods["getAttestation"].ID, ret)

	_, err = client.GetAttestation(ctx, bytesutil.ToBytes32([]byte("missing")))
	require.ErrorIs(t, err, eas.ErrNotFound)
}

func TestClient_GetAttestation_CallError(t *testing.T) {
	ctx := context.Background()
	client, _, _ := newTestClient(t)

	// Nothing staged for the selector.
	_, err := client.GetAttestation(ctx, bytesutil.ToBytes32([]byte("x")))
	require.ErrorContains(t, "could not get attestation", err)
}

func TestClient_IsAttestationValid(t *testing.T) {
	ctx := context.Background()
	client, backend, _ := newTestClient(t)
	parsed := contractABI(t)

	ret, err := parsed.Methods["isAttestationValid"].Outputs.Pack(true)
	require.NoError(t, err)
	backend.StageCall(parsed.Methods["isAttestationValid"].ID, ret)

	valid, err := client.IsAttestationValid(ctx, bytesutil.ToBytes32([]byte("u")))
	require.NoError(t, err)
	require.Equal(t, true, valid)
}

func TestClient_IsAttestationRevoked(t *testing.T) {
	ctx := context.Background()
	client, backend, _ := newTestClient(t)
	parsed := contractABI(t)

	ret, err := parsed.Methods["isAttestationRevoked"].Outputs.Pack(false)
	require.NoError(t, err)
	backend.StageCall(parsed.Methods["isAttestationRevoked"].ID, ret)

	revoked, err := client.IsAttestationRevoked(ctx, bytesutil.ToBytes32([]byte("u")))
	require.NoError(t, err)
	require.Equal(t, false, revoked)
}

func TestClient_Timestamp(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	data := bytesutil.ToBytes32([]byte("payload"))
	backend.StageLogs(&types.Log{
		Address: testContractAddr,
		Topics: []common.Hash{
			parsed.Events["Timestamped"].ID,
			common.Hash(data),
			common.BigToHash(big.NewInt(1234)),
		},
	})

	ts, err := client.Timestamp(ctx, acct, data)
	require.NoError(t, err)
	require.Equal(t, uint64(1234), ts)
}

func TestClient_Timestamp_NoEvent(t *testing.T) {
	ctx := context.Background()
	client, _, acct := newTestClient(t)

	_, err := client.Timestamp(ctx, acct, bytesutil.ToBytes32([]byte("payload")))
	require.ErrorContains(t, "no Timestamped event in receipt", err)
}

func TestClient_GetTimestamp(t *testing.T) {
	ctx := context.Background()
	client, backend, _ := newTestClient(t)
	parsed := contractABI(t)

	ret, err := parsed.Methods["getTimestamp"].Outputs.Pack(uint64(777))
	require.NoError(t, err)
	backend.StageCall(parsed.Methods["getTimestamp"].ID, ret)

	ts, err := client.GetTimestamp(ctx, bytesutil.ToBytes32([]byte("payload")))
	require.NoError(t, err)
	require.Equal(t, uint64(777), ts)
}

func TestClient_RevokeOffchain(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	data := bytesutil.ToBytes32([]byte("offchain-uuid"))
	backend.StageLogs(&types.Log{
		Address: testContractAddr,
		Topics: []common.Hash{
			parsed.Events["RevokedOffchain"].ID,
			common.BytesToHash(acct.Address().Bytes()),
			common.Hash(data),
			common.BigToHash(big.NewInt(4321)),
		},
	})

	ts, err := client.RevokeOffchain(ctx, acct, data)
	require.NoError(t, err)
	require.Equal(t, uint64(4321), ts)
}

func TestClient_GetRevokeOffchain(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	ret, err := parsed.Methods["getRevokeOffchain"].Outputs.Pack(uint64(99))
	require.NoError(t, err)
	backend.StageCall(parsed.Methods["getRevokeOffchain"].ID, ret)

	ts, err := client.GetRevokeOffchain(ctx, acct.Address(), bytesutil.ToBytes32([]byte("x")))
	require.NoError(t, err)
	require.Equal(t, uint64(99), ts)
}

func TestClient_Version(t *testing.T) {
	ctx := context.Background()
	client, backend, _ := newTestClient(t)
	parsed := contractABI(t)

	ret, err := parsed.Methods["VERSION"].Outputs.Pack("0.26")
	require.NoError(t, err)
	backend.StageCall(parsed.Methods["VERSION"].ID, ret)

	version, err := client.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, "0.26", version)
}

func TestClient_FilterAttested(t *testing.T) {
	ctx := context.Background()
	client, backend, acct := newTestClient(t)
	parsed := contractABI(t)

	schema := bytesutil.ToBytes32([]byte("bool like"))
	kept := attestedLog(parsed, common.Address{}, acct.Address(), schema, bytesutil.ToBytes32([]byte("kept")))
	removed := attestedLog(parsed, common.Address{}, acct.Address(), schema, bytesutil.ToBytes32([]byte("gone")))
	removed.Removed = true
	backend.FilterResults(*kept, *removed)

	events, err := client.FilterAttested(ctx, nil, nil, [][32]byte{schema})
	require.NoError(t, err)
	require.Equal(t, 1, len(events))
	require.Equal(t, bytesutil.ToBytes32([]byte("kept")), events[0].UUID)
	require.Equal(t, schema, events[0].Schema)
	require.Equal(t, acct.Address(), events[0].Attester)
}
