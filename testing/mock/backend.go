// Package mock provides an in-memory Ethereum backend for client tests.
// Read calls are answered from canned return data keyed by method selector,
// transactions mine instantly with whatever logs were staged beforehand.
package mock

import (
	"context"
	"encoding/hex"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// Backend satisfies the contract client's Backend interface.
type Backend struct {
	mu          sync.Mutex
	results     map[string][]byte
	receipts    map[common.Hash]*types.Receipt
	nextLogs    []*types.Log
	nextStatus  uint64
	sentTxs     []*types.Transaction
	filterLogs  []types.Log
	nonce       uint64
	blockNumber uint64

	// CallErr fails every CallContract when set.
	CallErr error
	// SendErr fails every SendTransaction when set.
	SendErr error
}

// NewBackend returns an empty backend.
func NewBackend() *Backend {
	return &Backend{
		results:    make(map[string][]byte),
		receipts:   make(map[common.Hash]*types.Receipt),
		nextStatus: types.ReceiptStatusSuccessful,
	}
}

// StageCall cans the return data of every contract call with the given
// method selector.
func (b *Backend) StageCall(selector, ret []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results[hex.EncodeToString(selector)] = ret
}

// StageLogs attaches the given logs to the receipt of the next transaction.
func (b *Backend) StageLogs(logs ...*types.Log) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextLogs = logs
}

// StageRevert makes the next transaction mine with a failed status.
func (b *Backend) StageRevert() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextStatus = types.ReceiptStatusFailed
}

// FilterResults cans the logs returned by FilterLogs.
func (b *Backend) FilterResults(logs ...types.Log) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filterLogs = logs
}

// SentTxs returns the transactions submitted so far.
func (b *Backend) SentTxs() []*types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*types.Transaction(nil), b.sentTxs...)
}

// LastTx returns the most recently submitted transaction.
func (b *Backend) LastTx() *types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sentTxs) == 0 {
		return nil
	}
	return b.sentTxs[len(b.sentTxs)-1]
}

func (b *Backend) CodeAt(_ context.Context, _ common.Address, _ *big.Int) ([]byte, error) {
	return []byte{1}, nil
}

func (b *Backend) PendingCodeAt(_ context.Context, _ common.Address) ([]byte, error) {
	return []byte{1}, nil
}

func (b *Backend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CallErr != nil {
		return nil, b.CallErr
	}
	if len(call.Data) < 4 {
		return nil, errors.New("call data has no method selector")
	}
	ret, ok := b.results[hex.EncodeToString(call.Data[:4])]
	if !ok {
		return nil, errors.Errorf("no canned result for selector 0x%x", call.Data[:4])
	}
	return ret, nil
}

func (b *Backend) PendingNonceAt(_ context.Context, _ common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonce, nil
}

func (b *Backend) HeaderByNumber(_ context.Context, _ *big.Int) (*types.Header, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &types.Header{
		Number:  new(big.Int).SetUint64(b.blockNumber),
		BaseFee: big.NewInt(1000000000),
	}, nil
}

func (b *Backend) SuggestGasPrice(_ context.Context) (*big.Int, error) {
	return big.NewInt(1000000000), nil
}

func (b *Backend) SuggestGasTipCap(_ context.Context) (*big.Int, error) {
	return big.NewInt(1000000000), nil
}

func (b *Backend) EstimateGas(_ context.Context, _ ethereum.CallMsg) (uint64, error) {
	return 210000, nil
}

func (b *Backend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SendErr != nil {
		return b.SendErr
	}
	b.blockNumber++
	b.nonce++
	receipt := &types.Receipt{
		TxHash:      tx.Hash(),
		Status:      b.nextStatus,
		Logs:        b.nextLogs,
		BlockNumber: new(big.Int).SetUint64(b.blockNumber),
	}
	b.receipts[tx.Hash()] = receipt
	b.sentTxs = append(b.sentTxs, tx)
	b.nextLogs = nil
	b.nextStatus = types.ReceiptStatusSuccessful
	return nil
}

func (b *Backend) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	receipt, ok := b.receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (b *Backend) FilterLogs(_ context.Context, _ ethereum.FilterQuery) ([]types.Log, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]types.Log(nil), b.filterLogs...), nil
}

func (b *Backend) SubscribeFilterLogs(_ context.Context, _ ethereum.FilterQuery, _ chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("subscriptions are not supported")
}
