package simulated

import (
	"context"
	"math/big"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum-attestation-service/sdk/encoding/bytesutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Attest validates and stores a single attestation, returning its UUID.
func (c *Chain) Attest(_ context.Context, from *keys.Account, req *eas.AttestationRequest) ([32]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attestOne(from.Address(), from.Address(), req.Schema, &req.Data, c.timestamp())
}

// AttestByDelegation stores an attestation on behalf of the signed attester.
// The sending account pays any attached value, the attester's delegation
// nonce is consumed on success.
func (c *Chain) AttestByDelegation(_ context.Context, from *keys.Account, req *eas.DelegatedAttestationRequest) ([32]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.verifyDelegatedAttestation(req); err != nil {
		return eas.ZeroUUID, err
	}
	uuid, err := c.attestOne(req.Attester, from.Address(), req.Schema, &req.Data, c.timestamp())
	if err != nil {
		return eas.ZeroUUID, err
	}
	c.nonces[req.Attester]++
	return uuid, nil
}

// MultiAttest stores a batch of attestations atomically. Either every item
// in every request lands or none do.
func (c *Chain) MultiAttest(_ context.Context, from *keys.Account, multi []*eas.MultiAttestationRequest) ([][32]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshot()
	ts := c.timestamp()
	var uuids [][32]byte
	for _, m := range multi {
		for i := range m.Data {
			uuid, err := c.attestOne(from.Address(), from.Address(), m.Schema, &m.Data[i], ts)
			if err != nil {
				c.restore(snap)
				return nil, err
			}
			uuids = append(uuids, uuid)
		}
	}
	return uuids, nil
}

// MultiAttestByDelegation stores a batch of delegated attestations
// atomically. Signatures within a request must use the attester's
// consecutive nonces in item order.
func (c *Chain) MultiAttestByDelegation(_ context.Context, from *keys.Account, multi []*eas.MultiDelegatedAttestationRequest) ([][32]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshot()
	ts := c.timestamp()
	var uuids [][32]byte
	for _, m := range multi {
		if len(m.Signatures) != len(m.Data) {
			c.restore(snap)
			return nil, errors.Errorf("%d signatures for %d attestations", len(m.Signatures), len(m.Data))
		}
		for i := range m.Data {
			req := &eas.DelegatedAttestationRequest{
				Schema:    m.Schema,
				Data:      m.Data[i],
				Signature: m.Signatures[i],
				Attester:  m.Attester,
			}
			if err := c.verifyDelegatedAttestation(req); err != nil {
				c.restore(snap)
				return nil, err
			}
			uuid, err := c.attestOne(m.Attester, from.Address(), m.Schema, &m.Data[i], ts)
			if err != nil {
				c.restore(snap)
				return nil, err
			}
			c.nonces[m.Attester]++
			uuids = append(uuids, uuid)
		}
	}
	return uuids, nil
}

// verifyDelegatedAttestation checks the request signature against the
// attester's current nonce. Callers hold the lock.
func (c *Chain) verifyDelegatedAttestation(req *eas.DelegatedAttestationRequest) error {
	msg := &eip712.DelegatedAttestation{
		Schema:         req.Schema,
		Recipient:      req.Data.Recipient,
		ExpirationTime: req.Data.ExpirationTime,
		Revocable:      req.Data.Revocable,
		RefUUID:        req.Data.RefUUID,
		Data:           req.Data.Data,
		Nonce:          new(big.Int).SetUint64(c.nonces[req.Attester]),
	}
	return c.typed.VerifyDelegatedAttestation(req.Attester, msg, req.Signature)
}

// attestOne applies the attestation transition rules and stores the result.
// Callers hold the lock. No state is mutated on error.
func (c *Chain) attestOne(attester, sender common.Address, schema [32]byte, d *eas.AttestationRequestData, ts uint64) ([32]byte, error) {
	rec, ok := c.schemas[schema]
	if !ok {
		return eas.ZeroUUID, eas.ErrInvalidSchema
	}
	if d.ExpirationTime != 0 && d.ExpirationTime <= ts {
		return eas.ZeroUUID, eas.ErrInvalidExpirationTime
	}
	if d.Revocable && !rec.Revocable {
		return eas.ZeroUUID, eas.ErrIrrevocable
	}
	if d.RefUUID != eas.ZeroUUID {
		if _, ok := c.attestations[d.RefUUID]; !ok {
			return eas.ZeroUUID, errors.Wrap(eas.ErrNotFound, "referenced attestation")
		}
	}
	value, err := toWei(d.Value)
	if err != nil {
		return eas.ZeroUUID, err
	}
	if !value.IsZero() {
		if rec.Resolver == (common.Address{}) {
			return eas.ZeroUUID, eas.ErrNotPayable
		}
		if err := c.transfer(sender, rec.Resolver, value); err != nil {
			return eas.ZeroUUID, err
		}
	}
	var uuid [32]byte
	for bump := uint32(0); ; bump++ {
		uuid = eas.NewUUID(schema, d.Recipient, attester, ts, d.ExpirationTime, d.Revocable, d.RefUUID, d.Data, bump)
		if _, taken := c.attestations[uuid]; !taken {
			break
		}
	}
	c.attestations[uuid] = &eas.Attestation{
		UUID:           uuid,
		Schema:         schema,
		Time:           ts,
		ExpirationTime: d.ExpirationTime,
		RefUUID:        d.RefUUID,
		Recipient:      d.Recipient,
		Attester:       attester,
		Revocable:      d.Revocable,
		Data:           bytesutil.SafeCopyBytes(d.Data),
	}
	c.events = append(c.events, &eas.AttestedEvent{
		Recipient: d.Recipient,
		Attester:  attester,
		UUID:      uuid,
		Schema:    schema,
	})
	return uuid, nil
}

// GetAttestation returns a copy of the stored attestation.
func (c *Chain) GetAttestation(_ context.Context, uuid [32]byte) (*eas.Attestation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	att, ok := c.attestations[uuid]
	if !ok {
		return nil, errors.Wrapf(eas.ErrNotFound, "attestation %#x", uuid)
	}
	cp := *att
	cp.Data = bytesutil.SafeCopyBytes(att.Data)
	return &cp, nil
}

// IsAttestationValid reports whether an attestation with the given UUID
// exists.
func (c *Chain) IsAttestationValid(_ context.Context, uuid [32]byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.attestations[uuid]
	return ok, nil
}

// IsAttestationRevoked reports whether the attestation exists and has been
// revoked.
func (c *Chain) IsAttestationRevoked(_ context.Context, uuid [32]byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	att, ok := c.attestations[uuid]
	return ok && att.RevocationTime != 0, nil
}
