package simulated

import (
	"context"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Register stores a schema record under its derived UUID. Registering the
// same schema, resolver and revocability twice fails.
func (c *Chain) Register(_ context.Context, from *keys.Account, schema string, resolver common.Address, revocable bool) ([32]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	uuid := registry.NewSchemaUUID(schema, resolver, revocable)
	if _, ok := c.schemas[uuid]; ok {
		return eas.ZeroUUID, errors.Wrapf(eas.ErrAlreadyExists, "schema %#x", uuid)
	}
	c.schemas[uuid] = &registry.SchemaRecord{
		UUID:      uuid,
		Resolver:  resolver,
		Revocable: revocable,
		Schema:    schema,
	}
	c.events = append(c.events, &registry.RegisteredEvent{UUID: uuid, Registerer: from.Address()})
	return uuid, nil
}

// GetSchema returns a copy of the registered schema record.
func (c *Chain) GetSchema(_ context.Context, uuid [32]byte) (*registry.SchemaRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.schemas[uuid]
	if !ok {
		return nil, errors.Wrapf(eas.ErrNotFound, "schema %#x", uuid)
	}
	cp := *rec
	return &cp, nil
}
