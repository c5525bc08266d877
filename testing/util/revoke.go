package util

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// revoke dispatches one revocation request by signature type.
func revoke(ctx context.Context, contracts *RequestContracts, schema [32]byte, data *eas.RevocationRequestData, opts *RevocationOptions) error {
	if opts.From == nil {
		return errors.New("a revoking account is required")
	}
	if opts.SignatureType == Offchain {
		return errors.New("offchain attestations are not revoked onchain")
	}
	if err := checkCollaborators(opts.SignatureType, contracts); err != nil {
		return err
	}
	switch opts.SignatureType {
	case Direct:
		return contracts.EAS.Revoke(ctx, opts.From, &eas.RevocationRequest{Schema: schema, Data: *data})
	case Delegated:
		nonce, err := contracts.Verifier.Nonce(ctx, opts.From.Address())
		if err != nil {
			return err
		}
		msg := &eip712.DelegatedRevocation{Schema: schema, UUID: data.UUID, Nonce: nonce}
		sig, err := contracts.EIP712.SignDelegatedRevocation(opts.From, msg)
		if err != nil {
			return err
		}
		if err := contracts.EIP712.VerifyDelegatedRevocation(opts.From.Address(), msg, sig); err != nil {
			return err
		}
		req := &eas.DelegatedRevocationRequest{
			Schema:    schema,
			Data:      *data,
			Signature: sig,
			Revoker:   opts.From.Address(),
		}
		return contracts.EAS.RevokeByDelegation(ctx, opts.sender(), req)
	default:
		return errors.Errorf("unknown signature type %q", opts.SignatureType)
	}
}

// multiRevoke dispatches a revocation batch. Delegated batches are signed
// with the revoker's consecutive nonces in item order.
func multiRevoke(ctx context.Context, contracts *RequestContracts, multi []*eas.MultiRevocationRequest, opts *RevocationOptions) error {
	if opts.From == nil {
		return errors.New("a revoking account is required")
	}
	if opts.SignatureType == Offchain {
		return errors.New("offchain attestations are not revoked onchain")
	}
	if err := checkCollaborators(opts.SignatureType, contracts); err != nil {
		return err
	}
	switch opts.SignatureType {
	case Direct:
		return contracts.EAS.MultiRevoke(ctx, opts.From, multi)
	case Delegated:
		nonce, err := contracts.Verifier.Nonce(ctx, opts.From.Address())
		if err != nil {
			return err
		}
		next := new(big.Int).Set(nonce)
		delegated := make([]*eas.MultiDelegatedRevocationRequest, 0, len(multi))
		for _, m := range multi {
			sigs := make([]eas.Signature, 0, len(m.Data))
			for i := range m.Data {
				msg := &eip712.DelegatedRevocation{
					Schema: m.Schema,
					UUID:   m.Data[i].UUID,
					Nonce:  new(big.Int).Set(next),
				}
				sig, err := contracts.EIP712.SignDelegatedRevocation(opts.From, msg)
				if err != nil {
					return err
				}
				if err := contracts.EIP712.VerifyDelegatedRevocation(opts.From.Address(), msg, sig); err != nil {
					return err
				}
				sigs = append(sigs, sig)
				next.Add(next, big.NewInt(1))
			}
			delegated = append(delegated, &eas.MultiDelegatedRevocationRequest{
				Schema:     m.Schema,
				Data:       m.Data,
				Signatures: sigs,
				Revoker:    opts.From.Address(),
			})
		}
		return contracts.EAS.MultiRevokeByDelegation(ctx, opts.sender(), delegated)
	default:
		return errors.Errorf("unknown signature type %q", opts.SignatureType)
	}
}

// ExpectRevocation revokes an attestation and asserts the post-conditions:
// the attestation stays valid, reports revoked, carries a revocation time
// and keeps its attester.
func ExpectRevocation(t testing.TB, ctx context.Context, contracts *RequestContracts, schema [32]byte, data *eas.RevocationRequestData, opts *RevocationOptions) {
	before, err := contracts.EAS.GetAttestation(ctx, data.UUID)
	require.NoError(t, err)

	require.NoError(t, revoke(ctx, contracts, schema, data, opts))
	checkRevoked(t, ctx, contracts, data.UUID, before.Attester)
}

// ExpectFailedRevocation submits a revocation expected to fail and asserts
// the error.
func ExpectFailedRevocation(t testing.TB, ctx context.Context, contracts *RequestContracts, schema [32]byte, data *eas.RevocationRequestData, opts *RevocationOptions, wantErr string) {
	err := revoke(ctx, contracts, schema, data, opts)
	require.ErrorContains(t, wantErr, err)
}

// ExpectMultiRevocations revokes a batch and asserts the post-conditions on
// every item.
func ExpectMultiRevocations(t testing.TB, ctx context.Context, contracts *RequestContracts, multi []*eas.MultiRevocationRequest, opts *RevocationOptions) {
	type beforeState struct {
		uuid     [32]byte
		attester common.Address
	}
	var before []beforeState
	for _, m := range multi {
		for i := range m.Data {
			att, err := contracts.EAS.GetAttestation(ctx, m.Data[i].UUID)
			require.NoError(t, err)
			before = append(before, beforeState{uuid: m.Data[i].UUID, attester: att.Attester})
		}
	}

	require.NoError(t, multiRevoke(ctx, contracts, multi, opts))
	for _, b := range before {
		checkRevoked(t, ctx, contracts, b.uuid, b.attester)
	}
}

// ExpectFailedMultiRevocations submits a batch expected to fail and asserts
// the error.
func ExpectFailedMultiRevocations(t testing.TB, ctx context.Context, contracts *RequestContracts, multi []*eas.MultiRevocationRequest, opts *RevocationOptions, wantErr string) {
	err := multiRevoke(ctx, contracts, multi, opts)
	require.ErrorContains(t, wantErr, err)
}

func checkRevoked(t testing.TB, ctx context.Context, contracts *RequestContracts, uuid [32]byte, attester common.Address) {
	valid, err := contracts.EAS.IsAttestationValid(ctx, uuid)
	require.NoError(t, err)
	require.Equal(t, true, valid, "revoked attestation no longer valid")

	revoked, err := contracts.EAS.IsAttestationRevoked(ctx, uuid)
	require.NoError(t, err)
	require.Equal(t, true, revoked, "attestation not revoked")

	att, err := contracts.EAS.GetAttestation(ctx, uuid)
	require.NoError(t, err)
	require.Equal(t, true, att.RevocationTime > 0, "revocation time not set")
	require.Equal(t, attester, att.Attester, "attester changed by revocation")
}
