// Package registry provides the schema registry types and a contract-backed
// client. Schema records are immutable once registered, so reads are cached.
package registry

import (
	"context"
	"math/big"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/encoding/bytesutil"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// ContractMetaData holds the hand-maintained ABI of the schema registry.
var ContractMetaData = &bind.MetaData{ABI: contractABI}

const contractABI = `[
  {"type":"function","name":"register","stateMutability":"nonpayable","inputs":[
    {"name":"schema","type":"string"},
    {"name":"resolver","type":"address"},
    {"name":"revocable","type":"bool"}
  ],"outputs":[{"name":"","type":"bytes32"}]},
  {"type":"function","name":"getSchema","stateMutability":"view","inputs":[
    {"name":"uuid","type":"bytes32"}
  ],"outputs":[
    {"name":"","type":"tuple","components":[
      {"name":"uuid","type":"bytes32"},
      {"name":"resolver","type":"address"},
      {"name":"revocable","type":"bool"},
      {"name":"schema","type":"string"}
    ]}
  ]},
  {"type":"event","name":"Registered","inputs":[
    {"name":"uuid","type":"bytes32","indexed":true},
    {"name":"registerer","type":"address","indexed":false}
  ]}
]`

// SchemaRecord describes a registered schema. Resolver is the optional
// contract receiving attestation values, the zero address when unset.
type SchemaRecord struct {
	UUID      [32]byte
	Resolver  common.Address
	Revocable bool
	Schema    string
}

// RegisteredEvent is emitted for every newly registered schema.
type RegisteredEvent struct {
	UUID       [32]byte
	Registerer common.Address
	Raw        types.Log
}

// NewSchemaUUID derives the identifier of a schema from its definition,
// resolver and revocability.
func NewSchemaUUID(schema string, resolver common.Address, revocable bool) [32]byte {
	buf := make([]byte, 0, len(schema)+20+1)
	buf = append(buf, schema...)
	buf = append(buf, resolver.Bytes()...)
	if revocable {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return bytesutil.ToBytes32(crypto.Keccak256(buf))
}

// Backend is the subset of an Ethereum client the registry client needs.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type Option func(*Client)

// WithChainID overrides the chain id used for transaction signing.
func WithChainID(id *big.Int) Option {
	return func(c *Client) {
		c.chainID = id
	}
}

// WithCacheSize overrides the schema record cache size from the active
// service config.
func WithCacheSize(size int) Option {
	return func(c *Client) {
		c.cacheSize = size
	}
}

// Client talks to the schema registry contract.
type Client struct {
	addr      common.Address
	abi       *abi.ABI
	contract  *bind.BoundContract
	backend   Backend
	chainID   *big.Int
	cacheSize int
	cache     *lru.Cache
	group     singleflight.Group
}

// NewClient creates a client bound to the schema registry at the given
// address.
func NewClient(address common.Address, backend Backend, opts ...Option) (*Client, error) {
	parsed, err := ContractMetaData.GetAbi()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse registry abi")
	}
	c := &Client{
		addr:      address,
		abi:       parsed,
		contract:  bind.NewBoundContract(address, *parsed, backend, backend, backend),
		backend:   backend,
		chainID:   new(big.Int).SetUint64(params.EASConfig().ChainID),
		cacheSize: params.EASConfig().SchemaCacheSize,
	}
	for _, o := range opts {
		o(c)
	}
	c.cache, err = lru.New(c.cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create schema cache")
	}
	return c, nil
}

// Address returns the registry contract address.
func (c *Client) Address() common.Address {
	return c.addr
}

// Register registers a new schema and returns its identifier.
func (c *Client) Register(ctx context.Context, from *keys.Account, schema string, resolver common.Address, revocable bool) ([32]byte, error) {
	opts, err := from.TransactOpts(c.chainID)
	if err != nil {
		return eas.ZeroUUID, err
	}
	opts.Context = ctx
	tx, err := c.contract.Transact(opts, "register", schema, resolver, revocable)
	if err != nil {
		return eas.ZeroUUID, errors.Wrap(err, "could not submit schema registration")
	}
	schemasRegistered.Inc()
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return eas.ZeroUUID, errors.Wrapf(err, "could not wait for transaction %s", tx.Hash().Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return eas.ZeroUUID, errors.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	eventID := c.abi.Events["Registered"].ID
	for _, lg := range receipt.Logs {
		if lg.Address != c.addr || len(lg.Topics) < 2 || lg.Topics[0] != eventID {
			continue
		}
		return [32]byte(lg.Topics[1]), nil
	}
	return eas.ZeroUUID, errors.New("no Registered event in receipt")
}

// schemaTuple mirrors the field names the abi unpacker generates for the
// getSchema return value.
type schemaTuple struct {
	Uuid      [32]byte
	Resolver  common.Address
	Revocable bool
	Schema    string
}

// GetSchema returns the record registered under the given identifier, or
// eas.ErrNotFound. Records are cached, concurrent fetches of one identifier
// are deduplicated.
func (c *Client) GetSchema(ctx context.Context, uuid [32]byte) (*SchemaRecord, error) {
	if cached, ok := c.cache.Get(uuid); ok {
		schemaCacheHits.Inc()
		return cached.(*SchemaRecord), nil
	}
	schemaCacheMisses.Inc()
	rec, err, _ := c.group.Do(string(uuid[:]), func() (interface{}, error) {
		var out []interface{}
		if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getSchema", uuid); err != nil {
			return nil, errors.Wrap(err, "could not get schema")
		}
		t := *abi.ConvertType(out[0], new(schemaTuple)).(*schemaTuple)
		if t.Uuid == eas.ZeroUUID {
			return nil, eas.ErrNotFound
		}
		record := &SchemaRecord{UUID: t.Uuid, Resolver: t.Resolver, Revocable: t.Revocable, Schema: t.Schema}
		c.cache.Add(uuid, record)
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return rec.(*SchemaRecord), nil
}

// FilterRegistered returns the Registered events between the given blocks,
// optionally restricted to a set of schema identifiers.
func (c *Client) FilterRegistered(ctx context.Context, fromBlock, toBlock *big.Int, uuids [][32]byte) ([]*RegisteredEvent, error) {
	var uuidRule []interface{}
	for _, id := range uuids {
		uuidRule = append(uuidRule, id)
	}
	topics, err := abi.MakeTopics([]interface{}{c.abi.Events["Registered"].ID}, uuidRule)
	if err != nil {
		return nil, errors.Wrap(err, "could not build topic filter")
	}
	logs, err := c.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Addresses: []common.Address{c.addr},
		Topics:    topics,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not filter logs")
	}
	events := make([]*RegisteredEvent, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed || len(lg.Topics) < 2 {
			continue
		}
		ev := new(RegisteredEvent)
		if len(lg.Data) > 0 {
			if err := c.abi.UnpackIntoInterface(ev, "Registered", lg.Data); err != nil {
				return nil, errors.Wrap(err, "could not unpack Registered log")
			}
		}
		ev.UUID = [32]byte(lg.Topics[1])
		ev.Raw = lg
		events = append(events, ev)
	}
	return events, nil
}
