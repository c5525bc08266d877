// Package simulated implements the attestation service surface in memory
// with contract-faithful semantics: schema registration, attestation and
// revocation in direct and delegated form, value transfer to resolvers,
// timestamping and offchain revocation. Test helpers drive it in place of a
// live chain.
package simulated

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// chainVersion is reported by Version, matching the contract deployments
// the client targets.
const chainVersion = "0.26"

// defaultFunding is the balance of accounts created by NewFundedAccount,
// 100 ether.
var defaultFunding = new(uint256.Int).Mul(uint256.NewInt(100), uint256.NewInt(1000000000000000000))

// Chain is an in-memory attestation chain. All operations are sequential
// under one lock.
type Chain struct {
	mu    sync.Mutex
	now   func() time.Time
	typed *eip712.Utils

	attestations        map[[32]byte]*eas.Attestation
	schemas             map[[32]byte]*registry.SchemaRecord
	nonces              map[common.Address]uint64
	timestamps          map[[32]byte]uint64
	offchainRevocations map[common.Address]map[[32]byte]uint64
	balances            map[common.Address]*uint256.Int
	events              []interface{}
}

type Option func(*Chain)

// WithClock injects the time source used for attestation and revocation
// times.
func WithClock(now func() time.Time) Option {
	return func(c *Chain) {
		c.now = now
	}
}

// WithEIP712 overrides the typed data domain delegated signatures are
// verified against.
func WithEIP712(typed *eip712.Utils) Option {
	return func(c *Chain) {
		c.typed = typed
	}
}

// New creates an empty chain. Delegated signatures verify against the dev
// config domain unless overridden.
func New(opts ...Option) *Chain {
	c := &Chain{
		now:                 time.Now,
		typed:               eip712.FromConfig(params.DevConfig()),
		attestations:        make(map[[32]byte]*eas.Attestation),
		schemas:             make(map[[32]byte]*registry.SchemaRecord),
		nonces:              make(map[common.Address]uint64),
		timestamps:          make(map[[32]byte]uint64),
		offchainRevocations: make(map[common.Address]map[[32]byte]uint64),
		balances:            make(map[common.Address]*uint256.Int),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// EIP712 returns the typed data domain the chain verifies delegated
// signatures against. Signers must share it.
func (c *Chain) EIP712() *eip712.Utils {
	return c.typed
}

// NewFundedAccount creates a fresh account holding the default balance.
func (c *Chain) NewFundedAccount() (*keys.Account, error) {
	acct, err := keys.NewAccount()
	if err != nil {
		return nil, err
	}
	c.Fund(acct.Address(), defaultFunding)
	return acct, nil
}

// Fund adds to an account's balance.
func (c *Chain) Fund(account common.Address, amount *uint256.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bal, ok := c.balances[account]
	if !ok {
		bal = new(uint256.Int)
		c.balances[account] = bal
	}
	bal.Add(bal, amount)
}

// Balance returns a copy of the account's balance.
func (c *Chain) Balance(account common.Address) *uint256.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	bal, ok := c.balances[account]
	if !ok {
		return new(uint256.Int)
	}
	return bal.Clone()
}

// BalanceAt returns the account balance. The block number is ignored, the
// signature matches what live clients expose.
func (c *Chain) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	return c.Balance(account).ToBig(), nil
}

// Nonce returns the next unused delegation nonce of the given account.
func (c *Chain) Nonce(_ context.Context, account common.Address) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).SetUint64(c.nonces[account]), nil
}

// Version reports the simulated contract version.
func (c *Chain) Version(_ context.Context) (string, error) {
	return chainVersion, nil
}

// Events returns a copy of the event log in emission order. Entries are
// *eas.AttestedEvent, *eas.RevokedEvent, *eas.TimestampedEvent,
// *eas.RevokedOffchainEvent and *registry.RegisteredEvent.
func (c *Chain) Events() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]interface{}(nil), c.events...)
}

func (c *Chain) timestamp() uint64 {
	return uint64(c.now().Unix())
}

// transfer moves value between accounts, failing without mutation when the
// source is underfunded. Callers hold the lock.
func (c *Chain) transfer(from, to common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	bal, ok := c.balances[from]
	if !ok || bal.Lt(amount) {
		return errors.Wrapf(eas.ErrInsufficientBalance, "account %s", from.Hex())
	}
	bal.Sub(bal, amount)
	toBal, ok := c.balances[to]
	if !ok {
		toBal = new(uint256.Int)
		c.balances[to] = toBal
	}
	toBal.Add(toBal, amount)
	return nil
}

func toWei(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	if v.Sign() < 0 {
		return nil, errors.New("negative value")
	}
	w, overflow := uint256.FromBig(v)
	if overflow {
		return nil, errors.New("value overflows uint256")
	}
	return w, nil
}

// chainState holds the state multi operations can touch, for rollback when
// an item fails partway through a batch.
type chainState struct {
	attestations map[[32]byte]*eas.Attestation
	nonces       map[common.Address]uint64
	balances     map[common.Address]*uint256.Int
	events       []interface{}
}

func (c *Chain) snapshot() *chainState {
	attestations := make(map[[32]byte]*eas.Attestation, len(c.attestations))
	for k, v := range c.attestations {
		cp := *v
		attestations[k] = &cp
	}
	nonces := make(map[common.Address]uint64, len(c.nonces))
	for k, v := range c.nonces {
		nonces[k] = v
	}
	balances := make(map[common.Address]*uint256.Int, len(c.balances))
	for k, v := range c.balances {
		balances[k] = v.Clone()
	}
	return &chainState{
		attestations: attestations,
		nonces:       nonces,
		balances:     balances,
		events:       append([]interface{}(nil), c.events...),
	}
}

func (c *Chain) restore(s *chainState) {
	c.attestations = s.attestations
	c.nonces = s.nonces
	c.balances = s.balances
	c.events = s.events
}
