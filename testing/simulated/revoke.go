package simulated

import (
	"context"
	"math/big"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Revoke marks an attestation revoked at the current chain time.
func (c *Chain) Revoke(_ context.Context, from *keys.Account, req *eas.RevocationRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revokeOne(from.Address(), from.Address(), req.Schema, &req.Data, c.timestamp())
}

// RevokeByDelegation revokes on behalf of the signed revoker. The sending
// account pays any attached value, the revoker's delegation nonce is
// consumed on success.
func (c *Chain) RevokeByDelegation(_ context.Context, from *keys.Account, req *eas.DelegatedRevocationRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.verifyDelegatedRevocation(req); err != nil {
		return err
	}
	if err := c.revokeOne(req.Revoker, from.Address(), req.Schema, &req.Data, c.timestamp()); err != nil {
		return err
	}
	c.nonces[req.Revoker]++
	return nil
}

// MultiRevoke revokes a batch atomically. Either every item in every
// request is revoked or none are.
func (c *Chain) MultiRevoke(_ context.Context, from *keys.Account, multi []*eas.MultiRevocationRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshot()
	ts := c.timestamp()
	for _, m := range multi {
		for i := range m.Data {
			if err := c.revokeOne(from.Address(), from.Address(), m.Schema, &m.Data[i], ts); err != nil {
				c.restore(snap)
				return err
			}
		}
	}
	return nil
}

// MultiRevokeByDelegation revokes a batch of delegated revocations
// atomically. Signatures within a request must use the revoker's
// consecutive nonces in item order.
func (c *Chain) MultiRevokeByDelegation(_ context.Context, from *keys.Account, multi []*eas.MultiDelegatedRevocationRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshot()
	ts := c.timestamp()
	for _, m := range multi {
		if len(m.Signatures) != len(m.Data) {
			c.restore(snap)
			return errors.Errorf("%d signatures for %d revocations", len(m.Signatures), len(m.Data))
		}
		for i := range m.Data {
			req := &eas.DelegatedRevocationRequest{
				Schema:    m.Schema,
				Data:      m.Data[i],
				Signature: m.Signatures[i],
				Revoker:   m.Revoker,
			}
			if err := c.verifyDelegatedRevocation(req); err != nil {
				c.restore(snap)
				return err
			}
			if err := c.revokeOne(m.Revoker, from.Address(), m.Schema, &m.Data[i], ts); err != nil {
				c.restore(snap)
				return err
			}
			c.nonces[m.Revoker]++
		}
	}
	return nil
}

// verifyDelegatedRevocation checks the request signature against the
// revoker's current nonce. Callers hold the lock.
func (c *Chain) verifyDelegatedRevocation(req *eas.DelegatedRevocationRequest) error {
	msg := &eip712.DelegatedRevocation{
		Schema: req.Schema,
		UUID:   req.Data.UUID,
		Nonce:  new(big.Int).SetUint64(c.nonces[req.Revoker]),
	}
	return c.typed.VerifyDelegatedRevocation(req.Revoker, msg, req.Signature)
}

// revokeOne applies the revocation transition rules. Callers hold the lock.
// No state is mutated on error.
func (c *Chain) revokeOne(revoker, sender common.Address, schema [32]byte, d *eas.RevocationRequestData, ts uint64) error {
	att, ok := c.attestations[d.UUID]
	if !ok {
		return errors.Wrapf(eas.ErrNotFound, "attestation %#x", d.UUID)
	}
	if att.Schema != schema {
		return errors.Wrap(eas.ErrInvalidSchema, "schema does not match attestation")
	}
	if att.Attester != revoker {
		return eas.ErrAccessDenied
	}
	if !att.Revocable {
		return eas.ErrIrrevocable
	}
	if att.RevocationTime != 0 {
		return eas.ErrAlreadyRevoked
	}
	value, err := toWei(d.Value)
	if err != nil {
		return err
	}
	if !value.IsZero() {
		rec := c.schemas[schema]
		if rec.Resolver == (common.Address{}) {
			return eas.ErrNotPayable
		}
		if err := c.transfer(sender, rec.Resolver, value); err != nil {
			return err
		}
	}
	att.RevocationTime = ts
	c.events = append(c.events, &eas.RevokedEvent{
		Recipient: att.Recipient,
		Attester:  att.Attester,
		UUID:      att.UUID,
		Schema:    schema,
	})
	return nil
}

// Timestamp records the current chain time for a piece of data, once.
func (c *Chain) Timestamp(_ context.Context, _ *keys.Account, data [32]byte) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.timestamps[data]; ok {
		return 0, eas.ErrAlreadyTimestamped
	}
	ts := c.timestamp()
	c.timestamps[data] = ts
	c.events = append(c.events, &eas.TimestampedEvent{Data: data, Timestamp: ts})
	return ts, nil
}

// GetTimestamp returns when the data was timestamped, zero if never.
func (c *Chain) GetTimestamp(_ context.Context, data [32]byte) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timestamps[data], nil
}

// RevokeOffchain records the current chain time as the sender's revocation
// of offchain data, once per sender and data.
func (c *Chain) RevokeOffchain(_ context.Context, from *keys.Account, data [32]byte) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	revoker := from.Address()
	byData, ok := c.offchainRevocations[revoker]
	if !ok {
		byData = make(map[[32]byte]uint64)
		c.offchainRevocations[revoker] = byData
	}
	if _, ok := byData[data]; ok {
		return 0, eas.ErrAlreadyRevokedOffchain
	}
	ts := c.timestamp()
	byData[data] = ts
	c.events = append(c.events, &eas.RevokedOffchainEvent{Revoker: revoker, Data: data, Timestamp: ts})
	return ts, nil
}

// GetRevokeOffchain returns when the revoker revoked the offchain data,
// zero if never.
func (c *Chain) GetRevokeOffchain(_ context.Context, revoker common.Address, data [32]byte) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offchainRevocations[revoker][data], nil
}
