package eas

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/encoding/bytesutil"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Backend is the subset of an Ethereum client the attestation client needs.
// Both ethclient.Client and the in-memory test backend satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type Option func(*Client)

// WithChainID overrides the chain id used for transaction signing. The
// default comes from the active service config.
func WithChainID(id *big.Int) Option {
	return func(c *Client) {
		c.chainID = id
	}
}

// Client talks to the attestation contract.
type Client struct {
	addr     common.Address
	abi      *abi.ABI
	contract *bind.BoundContract
	backend  Backend
	chainID  *big.Int
}

// NewClient creates a client bound to the attestation contract at the given
// address.
func NewClient(address common.Address, backend Backend, opts ...Option) (*Client, error) {
	parsed, err := ContractMetaData.GetAbi()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse contract abi")
	}
	c := &Client{
		addr:     address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
		backend:  backend,
		chainID:  new(big.Int).SetUint64(params.EASConfig().ChainID),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Address returns the attestation contract address.
func (c *Client) Address() common.Address {
	return c.addr
}

// Attest submits a single attestation and returns its identifier.
func (c *Client) Attest(ctx context.Context, from *keys.Account, req *AttestationRequest) ([32]byte, error) {
	r := *req
	r.Data = r.Data.normalized()
	opts, err := c.txOpts(ctx, from, r.Data.Value)
	if err != nil {
		return ZeroUUID, err
	}
	tx, err := c.contract.Transact(opts, "attest", r)
	if err != nil {
		return ZeroUUID, errors.Wrap(err, "could not submit attestation")
	}
	attestationsSubmitted.Inc()
	log.WithFields(logrus.Fields{
		"tx":     tx.Hash().Hex(),
		"schema": fmt.Sprintf("%#x", bytesutil.Trunc(r.Schema[:])),
	}).Debug("Submitted attestation")
	uuids, err := c.minedAttestations(ctx, tx, 1)
	if err != nil {
		return ZeroUUID, err
	}
	return uuids[0], nil
}

// AttestByDelegation submits an attestation signed by req.Attester on behalf
// of that attester. The sender pays for gas and any attached value.
func (c *Client) AttestByDelegation(ctx context.Context, from *keys.Account, req *DelegatedAttestationRequest) ([32]byte, error) {
	r := *req
	r.Data = r.Data.normalized()
	opts, err := c.txOpts(ctx, from, r.Data.Value)
	if err != nil {
		return ZeroUUID, err
	}
	tx, err := c.contract.Transact(opts, "attestByDelegation", r)
	if err != nil {
		return ZeroUUID, errors.Wrap(err, "could not submit delegated attestation")
	}
	attestationsSubmitted.Inc()
	log.WithFields(logrus.Fields{
		"tx":       tx.Hash().Hex(),
		"attester": r.Attester.Hex(),
	}).Debug("Submitted delegated attestation")
	uuids, err := c.minedAttestations(ctx, tx, 1)
	if err != nil {
		return ZeroUUID, err
	}
	return uuids[0], nil
}

// MultiAttest submits a batch of attestations in one transaction and returns
// their identifiers in request order. The batch is atomic.
func (c *Client) MultiAttest(ctx context.Context, from *keys.Account, multi []*MultiAttestationRequest) ([][32]byte, error) {
	reqs := make([]MultiAttestationRequest, len(multi))
	total := 0
	value := new(big.Int)
	for i, m := range multi {
		data := make([]AttestationRequestData, len(m.Data))
		for j, d := range m.Data {
			data[j] = d.normalized()
			value.Add(value, data[j].Value)
		}
		reqs[i] = MultiAttestationRequest{Schema: m.Schema, Data: data}
		total += len(data)
	}
	opts, err := c.txOpts(ctx, from, value)
	if err != nil {
		return nil, err
	}
	tx, err := c.contract.Transact(opts, "multiAttest", reqs)
	if err != nil {
		return nil, errors.Wrap(err, "could not submit attestation batch")
	}
	attestationsSubmitted.Inc()
	log.WithFields(logrus.Fields{
		"tx":           tx.Hash().Hex(),
		"attestations": total,
	}).Debug("Submitted attestation batch")
	return c.minedAttestations(ctx, tx, total)
}

// MultiAttestByDelegation submits a batch of delegated attestations in one
// transaction and returns their identifiers in request order.
func (c *Client) MultiAttestByDelegation(ctx context.Context, from *keys.Account, multi []*MultiDelegatedAttestationRequest) ([][32]byte, error) {
	reqs := make([]MultiDelegatedAttestationRequest, len(multi))
	total := 0
	value := new(big.Int)
	for i, m := range multi {
		if len(m.Signatures) != len(m.Data) {
			return nil, errors.Errorf("request %d has %d signatures for %d attestations", i, len(m.Signatures), len(m.Data))
		}
		data := make([]AttestationRequestData, len(m.Data))
		for j, d := range m.Data {
			data[j] = d.normalized()
			value.Add(value, data[j].Value)
		}
		reqs[i] = MultiDelegatedAttestationRequest{Schema: m.Schema, Data: data, Signatures: m.Signatures, Attester: m.Attester}
		total += len(data)
	}
	opts, err := c.txOpts(ctx, from, value)
	if err != nil {
		return nil, err
	}
	tx, err := c.contract.Transact(opts, "multiAttestByDelegation", reqs)
	if err != nil {
		return nil, errors.Wrap(err, "could not submit delegated attestation batch")
	}
	attestationsSubmitted.Inc()
	log.WithFields(logrus.Fields{
		"tx":           tx.Hash().Hex(),
		"attestations": total,
	}).Debug("Submitted delegated attestation batch")
	return c.minedAttestations(ctx, tx, total)
}

// Revoke revokes a previously issued attestation.
func (c *Client) Revoke(ctx context.Context, from *keys.Account, req *RevocationRequest) error {
	r := *req
	r.Data = r.Data.normalized()
	opts, err := c.txOpts(ctx, from, r.Data.Value)
	if err != nil {
		return err
	}
	tx, err := c.contract.Transact(opts, "revoke", r)
	if err != nil {
		return errors.Wrap(err, "could not submit revocation")
	}
	revocationsSubmitted.Inc()
	log.WithFields(logrus.Fields{
		"tx":   tx.Hash().Hex(),
		"uuid": fmt.Sprintf("%#x", bytesutil.Trunc(r.Data.UUID[:])),
	}).Debug("Submitted revocation")
	_, err = c.waitMined(ctx, tx)
	return err
}

// RevokeByDelegation revokes an attestation on behalf of its attester.
func (c *Client) RevokeByDelegation(ctx context.Context, from *keys.Account, req *DelegatedRevocationRequest) error {
	r := *req
	r.Data = r.Data.normalized()
	opts, err := c.txOpts(ctx, from, r.Data.Value)
	if err != nil {
		return err
	}
	tx, err := c.contract.Transact(opts, "revokeByDelegation", r)
	if err != nil {
		return errors.Wrap(err, "could not submit delegated revocation")
	}
	revocationsSubmitted.Inc()
	_, err = c.waitMined(ctx, tx)
	return err
}

// MultiRevoke revokes a batch of attestations in one transaction. The batch
// is atomic.
func (c *Client) MultiRevoke(ctx context.Context, from *keys.Account, multi []*MultiRevocationRequest) error {
	reqs := make([]MultiRevocationRequest, len(multi))
	value := new(big.Int)
	for i, m := range multi {
		data := make([]RevocationRequestData, len(m.Data))
		for j, d := range m.Data {
			data[j] = d.normalized()
			value.Add(value, data[j].Value)
		}
		reqs[i] = MultiRevocationRequest{Schema: m.Schema, Data: data}
	}
	opts, err := c.txOpts(ctx, from, value)
	if err != nil {
		return err
	}
	tx, err := c.contract.Transact(opts, "multiRevoke", reqs)
	if err != nil {
		return errors.Wrap(err, "could not submit revocation batch")
	}
	revocationsSubmitted.Inc()
	_, err = c.waitMined(ctx, tx)
	return err
}

// MultiRevokeByDelegation revokes a batch of attestations on behalf of their
// attesters in one transaction.
func (c *Client) MultiRevokeByDelegation(ctx context.Context, from *keys.Account, multi []*MultiDelegatedRevocationRequest) error {
	reqs := make([]MultiDelegatedRevocationRequest, len(multi))
	value := new(big.Int)
	for i, m := range multi {
		if len(m.Signatures) != len(m.Data) {
			return errors.Errorf("request %d has %d signatures for %d revocations", i, len(m.Signatures), len(m.Data))
		}
		data := make([]RevocationRequestData, len(m.Data))
		for j, d := range m.Data {
			data[j] = d.normalized()
			value.Add(value, data[j].Value)
		}
		reqs[i] = MultiDelegatedRevocationRequest{Schema: m.Schema, Data: data, Signatures: m.Signatures, Revoker: m.Revoker}
	}
	opts, err := c.txOpts(ctx, from, value)
	if err != nil {
		return err
	}
	tx, err := c.contract.Transact(opts, "multiRevokeByDelegation", reqs)
	if err != nil {
		return errors.Wrap(err, "could not submit delegated revocation batch")
	}
	revocationsSubmitted.Inc()
	_, err = c.waitMined(ctx, tx)
	return err
}

// attestationTuple mirrors the field names the abi unpacker generates for
// the getAttestation return value.
type attestationTuple struct {
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
}

// GetAttestation returns the attestation stored under the given identifier,
// or ErrNotFound.
func (c *Client) GetAttestation(ctx context.Context, uuid [32]byte) (*Attestation, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAttestation", uuid); err != nil {
		return nil, errors.Wrap(err, "could not get attestation")
	}
	t := *abi.ConvertType(out[0], new(attestationTuple)).(*attestationTuple)
	if t.Uuid == ZeroUUID {
		return nil, ErrNotFound
	}
	return &Attestation{
		UUID:           t.Uuid,
		Schema:         t.Schema,
		Time:           t.Time,
		ExpirationTime: t.ExpirationTime,
		RevocationTime: t.RevocationTime,
		RefUUID:        t.RefUUID,
		Recipient:      t.Recipient,
		Attester:       t.Attester,
		Revocable:      t.Revocable,
		Data:           t.Data,
	}, nil
}

// IsAttestationValid reports whether an attestation exists for the given
// identifier.
func (c *Client) IsAttestationValid(ctx context.Context, uuid [32]byte) (bool, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isAttestationValid", uuid); err != nil {
		return false, errors.Wrap(err, "could not check attestation validity")
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// IsAttestationRevoked reports whether the attestation under the given
// identifier has been revoked. Unknown identifiers report false.
func (c *Client) IsAttestationRevoked(ctx context.Context, uuid [32]byte) (bool, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isAttestationRevoked", uuid); err != nil {
		return false, errors.Wrap(err, "could not check attestation revocation")
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// Timestamp records the given data onchain and returns the recorded unix
// time. Each value can be timestamped once.
func (c *Client) Timestamp(ctx context.Context, from *keys.Account, data [32]byte) (uint64, error) {
	opts, err := c.txOpts(ctx, from, nil)
	if err != nil {
		return 0, err
	}
	tx, err := c.contract.Transact(opts, "timestamp", data)
	if err != nil {
		return 0, errors.Wrap(err, "could not submit timestamp")
	}
	receipt, err := c.waitMined(ctx, tx)
	if err != nil {
		return 0, err
	}
	for _, lg := range receipt.Logs {
		if !c.logMatches(lg, "Timestamped") {
			continue
		}
		ev := new(TimestampedEvent)
		if err := c.contract.UnpackLog(ev, "Timestamped", *lg); err != nil {
			return 0, errors.Wrap(err, "could not unpack Timestamped log")
		}
		return ev.Timestamp, nil
	}
	return 0, errors.New("no Timestamped event in receipt")
}

// GetTimestamp returns the unix time the data was timestamped at, zero if it
// never was.
func (c *Client) GetTimestamp(ctx context.Context, data [32]byte) (uint64, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getTimestamp", data); err != nil {
		return 0, errors.Wrap(err, "could not get timestamp")
	}
	return *abi.ConvertType(out[0], new(uint64)).(*uint64), nil
}

// RevokeOffchain records the revocation of an offchain attestation
// identifier for the sender and returns the recorded unix time.
func (c *Client) RevokeOffchain(ctx context.Context, from *keys.Account, data [32]byte) (uint64, error) {
	opts, err := c.txOpts(ctx, from, nil)
	if err != nil {
		return 0, err
	}
	tx, err := c.contract.Transact(opts, "revokeOffchain", data)
	if err != nil {
		return 0, errors.Wrap(err, "could not submit offchain revocation")
	}
	receipt, err := c.waitMined(ctx, tx)
	if err != nil {
		return 0, err
	}
	for _, lg := range receipt.Logs {
		if !c.logMatches(lg, "RevokedOffchain") {
			continue
		}
		ev := new(RevokedOffchainEvent)
		if err := c.contract.UnpackLog(ev, "RevokedOffchain", *lg); err != nil {
			return 0, errors.Wrap(err, "could not unpack RevokedOffchain log")
		}
		return ev.Timestamp, nil
	}
	return 0, errors.New("no RevokedOffchain event in receipt")
}

// GetRevokeOffchain returns the unix time the revoker revoked the given
// offchain attestation identifier, zero if they never did.
func (c *Client) GetRevokeOffchain(ctx context.Context, revoker common.Address, data [32]byte) (uint64, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getRevokeOffchain", revoker, data); err != nil {
		return 0, errors.Wrap(err, "could not get offchain revocation")
	}
	return *abi.ConvertType(out[0], new(uint64)).(*uint64), nil
}

// Version returns the deployed contract version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "VERSION"); err != nil {
		return "", errors.Wrap(err, "could not get contract version")
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (c *Client) txOpts(ctx context.Context, from *keys.Account, value *big.Int) (*bind.TransactOpts, error) {
	opts, err := from.TransactOpts(c.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.Value = value
	return opts, nil
}

func (c *Client) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	start := time.Now()
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not wait for transaction %s", tx.Hash().Hex())
	}
	receiptLatency.Observe(time.Since(start).Seconds())
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, errors.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

// minedAttestations waits for the transaction and collects the identifiers
// from its Attested events, verifying the expected count.
func (c *Client) minedAttestations(ctx context.Context, tx *types.Transaction, want int) ([][32]byte, error) {
	receipt, err := c.waitMined(ctx, tx)
	if err != nil {
		return nil, err
	}
	var uuids [][32]byte
	for _, lg := range receipt.Logs {
		if !c.logMatches(lg, "Attested") {
			continue
		}
		ev := new(AttestedEvent)
		if err := c.contract.UnpackLog(ev, "Attested", *lg); err != nil {
			return nil, errors.Wrap(err, "could not unpack Attested log")
		}
		uuids = append(uuids, ev.UUID)
	}
	if len(uuids) != want {
		return nil, errors.Errorf("expected %d attestation events, got %d", want, len(uuids))
	}
	return uuids, nil
}

func (c *Client) logMatches(lg *types.Log, event string) bool {
	return lg.Address == c.addr && len(lg.Topics) > 0 && lg.Topics[0] == c.abi.Events[event].ID
}
