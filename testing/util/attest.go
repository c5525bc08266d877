package util

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum-attestation-service/sdk/offchain"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// attest dispatches one attestation request by signature type. Offchain
// requests are signed and verified without touching the chain.
func attest(ctx context.Context, contracts *RequestContracts, schema [32]byte, data *eas.AttestationRequestData, opts *AttestationOptions) ([32]byte, error) {
	if opts.From == nil {
		return eas.ZeroUUID, errors.New("an attesting account is required")
	}
	if err := checkCollaborators(opts.SignatureType, contracts); err != nil {
		return eas.ZeroUUID, err
	}
	switch opts.SignatureType {
	case Direct:
		return contracts.EAS.Attest(ctx, opts.From, &eas.AttestationRequest{Schema: schema, Data: *data})
	case Delegated:
		nonce, err := contracts.Verifier.Nonce(ctx, opts.From.Address())
		if err != nil {
			return eas.ZeroUUID, err
		}
		msg := &eip712.DelegatedAttestation{
			Schema:         schema,
			Recipient:      data.Recipient,
			ExpirationTime: data.ExpirationTime,
			Revocable:      data.Revocable,
			RefUUID:        data.RefUUID,
			Data:           data.Data,
			Nonce:          nonce,
		}
		sig, err := contracts.EIP712.SignDelegatedAttestation(opts.From, msg)
		if err != nil {
			return eas.ZeroUUID, err
		}
		if err := contracts.EIP712.VerifyDelegatedAttestation(opts.From.Address(), msg, sig); err != nil {
			return eas.ZeroUUID, err
		}
		req := &eas.DelegatedAttestationRequest{
			Schema:    schema,
			Data:      *data,
			Signature: sig,
			Attester:  opts.From.Address(),
		}
		return contracts.EAS.AttestByDelegation(ctx, opts.sender(), req)
	case Offchain:
		p := &offchain.AttestationParams{
			Schema:         schema,
			Recipient:      data.Recipient,
			Time:           uint64(time.Now().Unix()),
			ExpirationTime: data.ExpirationTime,
			Revocable:      data.Revocable,
			RefUUID:        data.RefUUID,
			Data:           data.Data,
		}
		signed, err := contracts.Offchain.SignAttestation(opts.From, p)
		if err != nil {
			return eas.ZeroUUID, err
		}
		if err := contracts.Offchain.VerifyAttestation(signed); err != nil {
			return eas.ZeroUUID, err
		}
		return signed.UUID, nil
	default:
		return eas.ZeroUUID, errors.Errorf("unknown signature type %q", opts.SignatureType)
	}
}

// multiAttest dispatches a batch. Offchain attestations cannot be batched.
// Delegated batches are signed with the attester's consecutive nonces in
// item order.
func multiAttest(ctx context.Context, contracts *RequestContracts, multi []*eas.MultiAttestationRequest, opts *AttestationOptions) ([][32]byte, error) {
	if opts.SignatureType == Offchain {
		return nil, errors.New("offchain attestations cannot be batched")
	}
	if opts.From == nil {
		return nil, errors.New("an attesting account is required")
	}
	if err := checkCollaborators(opts.SignatureType, contracts); err != nil {
		return nil, err
	}
	switch opts.SignatureType {
	case Direct:
		return contracts.EAS.MultiAttest(ctx, opts.From, multi)
	case Delegated:
		nonce, err := contracts.Verifier.Nonce(ctx, opts.From.Address())
		if err != nil {
			return nil, err
		}
		next := new(big.Int).Set(nonce)
		delegated := make([]*eas.MultiDelegatedAttestationRequest, 0, len(multi))
		for _, m := range multi {
			sigs := make([]eas.Signature, 0, len(m.Data))
			for i := range m.Data {
				msg := &eip712.DelegatedAttestation{
					Schema:         m.Schema,
					Recipient:      m.Data[i].Recipient,
					ExpirationTime: m.Data[i].ExpirationTime,
					Revocable:      m.Data[i].Revocable,
					RefUUID:        m.Data[i].RefUUID,
					Data:           m.Data[i].Data,
					Nonce:          new(big.Int).Set(next),
				}
				sig, err := contracts.EIP712.SignDelegatedAttestation(opts.From, msg)
				if err != nil {
					return nil, err
				}
				if err := contracts.EIP712.VerifyDelegatedAttestation(opts.From.Address(), msg, sig); err != nil {
					return nil, err
				}
				sigs = append(sigs, sig)
				next.Add(next, big.NewInt(1))
			}
			delegated = append(delegated, &eas.MultiDelegatedAttestationRequest{
				Schema:     m.Schema,
				Data:       m.Data,
				Signatures: sigs,
				Attester:   opts.From.Address(),
			})
		}
		return contracts.EAS.MultiAttestByDelegation(ctx, opts.sender(), delegated)
	default:
		return nil, errors.Errorf("unknown signature type %q", opts.SignatureType)
	}
}

// ExpectAttestation submits an attestation and asserts the post-conditions:
// the returned UUID matches the derivation, the stored record mirrors the
// request and any attached value left the payer. Offchain requests assert
// the signature instead and leave the chain untouched.
func ExpectAttestation(t testing.TB, ctx context.Context, contracts *RequestContracts, schema [32]byte, data *eas.AttestationRequestData, opts *AttestationOptions) [32]byte {
	payer := opts.sender()
	var balanceBefore *big.Int
	if contracts.Balances != nil && !opts.SkipBalanceCheck && opts.SignatureType != Offchain {
		var err error
		balanceBefore, err = contracts.Balances.BalanceAt(ctx, payer.Address(), nil)
		require.NoError(t, err)
	}

	uuid, err := attest(ctx, contracts, schema, data, opts)
	require.NoError(t, err)
	require.NotEqual(t, eas.ZeroUUID, uuid, "attestation uuid is zero")

	if opts.SignatureType == Offchain {
		if contracts.EAS != nil {
			valid, err := contracts.EAS.IsAttestationValid(ctx, uuid)
			require.NoError(t, err)
			require.Equal(t, false, valid, "offchain attestation landed onchain")
		}
		return uuid
	}

	valid, err := contracts.EAS.IsAttestationValid(ctx, uuid)
	require.NoError(t, err)
	require.Equal(t, true, valid, "attestation not valid after attest")

	att, err := contracts.EAS.GetAttestation(ctx, uuid)
	require.NoError(t, err)
	require.Equal(t, uuid, att.UUID)
	checkStoredAttestation(t, att, schema, data, opts.From.Address())

	expected := eas.NewUUID(schema, data.Recipient, opts.From.Address(), att.Time, data.ExpirationTime, data.Revocable, data.RefUUID, data.Data, opts.Bump)
	require.Equal(t, expected, uuid, "uuid does not match its derivation")

	if balanceBefore != nil {
		balanceAfter, err := contracts.Balances.BalanceAt(ctx, payer.Address(), nil)
		require.NoError(t, err)
		spent := new(big.Int).Sub(balanceBefore, balanceAfter)
		require.Equal(t, valueOrZero(data.Value).String(), spent.String(), "unexpected value spent")
	}
	return uuid
}

// ExpectFailedAttestation submits an attestation expected to fail and
// asserts the error.
func ExpectFailedAttestation(t testing.TB, ctx context.Context, contracts *RequestContracts, schema [32]byte, data *eas.AttestationRequestData, opts *AttestationOptions, wantErr string) {
	_, err := attest(ctx, contracts, schema, data, opts)
	require.ErrorContains(t, wantErr, err)
}

// ExpectMultiAttestations submits a batch and asserts every item landed
// with the requested contents and the summed value left the payer.
func ExpectMultiAttestations(t testing.TB, ctx context.Context, contracts *RequestContracts, multi []*eas.MultiAttestationRequest, opts *AttestationOptions) [][32]byte {
	payer := opts.sender()
	var balanceBefore *big.Int
	if contracts.Balances != nil && !opts.SkipBalanceCheck {
		var err error
		balanceBefore, err = contracts.Balances.BalanceAt(ctx, payer.Address(), nil)
		require.NoError(t, err)
	}

	uuids, err := multiAttest(ctx, contracts, multi, opts)
	require.NoError(t, err)

	total := 0
	for _, m := range multi {
		total += len(m.Data)
	}
	require.Equal(t, total, len(uuids), "unexpected attestation count")

	i := 0
	for _, m := range multi {
		for j := range m.Data {
			require.NotEqual(t, eas.ZeroUUID, uuids[i], "attestation uuid is zero")
			att, err := contracts.EAS.GetAttestation(ctx, uuids[i])
			require.NoError(t, err)
			require.Equal(t, uuids[i], att.UUID)
			checkStoredAttestation(t, att, m.Schema, &m.Data[j], opts.From.Address())
			i++
		}
	}

	if balanceBefore != nil {
		balanceAfter, err := contracts.Balances.BalanceAt(ctx, payer.Address(), nil)
		require.NoError(t, err)
		spent := new(big.Int).Sub(balanceBefore, balanceAfter)
		want := new(big.Int)
		for _, m := range multi {
			for j := range m.Data {
				want.Add(want, valueOrZero(m.Data[j].Value))
			}
		}
		require.Equal(t, want.String(), spent.String(), "unexpected value spent")
	}
	return uuids
}

// ExpectFailedMultiAttestations submits a batch expected to fail and
// asserts the error.
func ExpectFailedMultiAttestations(t testing.TB, ctx context.Context, contracts *RequestContracts, multi []*eas.MultiAttestationRequest, opts *AttestationOptions, wantErr string) {
	_, err := multiAttest(ctx, contracts, multi, opts)
	require.ErrorContains(t, wantErr, err)
}

// checkStoredAttestation asserts the stored record against the request it
// came from.
func checkStoredAttestation(t testing.TB, att *eas.Attestation, schema [32]byte, data *eas.AttestationRequestData, attester common.Address) {
	require.Equal(t, schema, att.Schema)
	require.Equal(t, data.Recipient, att.Recipient)
	require.Equal(t, attester, att.Attester)
	require.Equal(t, data.ExpirationTime, att.ExpirationTime)
	require.Equal(t, data.Revocable, att.Revocable)
	require.Equal(t, data.RefUUID, att.RefUUID)
	if len(data.Data) > 0 || len(att.Data) > 0 {
		require.DeepEqual(t, data.Data, att.Data)
	}
	require.Equal(t, true, att.Time > 0, "attestation time not set")
	require.Equal(t, uint64(0), att.RevocationTime, "fresh attestation already revoked")
}
