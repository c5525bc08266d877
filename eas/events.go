package eas

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// AttestedEvent is emitted for every new attestation.
type AttestedEvent struct {
	Recipient common.Address
	Attester  common.Address
	UUID      [32]byte `abi:"uuid"`
	Schema    [32]byte
	Raw       types.Log
}

// RevokedEvent is emitted for every revoked attestation.
type RevokedEvent struct {
	Recipient common.Address
	Attester  common.Address
	UUID      [32]byte `abi:"uuid"`
	Schema    [32]byte
	Raw       types.Log
}

// TimestampedEvent is emitted when a piece of data is timestamped.
type TimestampedEvent struct {
	Data      [32]byte
	Timestamp uint64
	Raw       types.Log
}

// RevokedOffchainEvent is emitted when an offchain attestation is revoked.
type RevokedOffchainEvent struct {
	Revoker   common.Address
	Data      [32]byte
	Timestamp uint64
	Raw       types.Log
}

// FilterAttested returns the Attested events between the given blocks,
// optionally restricted to a set of schemas. A nil toBlock means latest.
func (c *Client) FilterAttested(ctx context.Context, fromBlock, toBlock *big.Int, schemas [][32]byte) ([]*AttestedEvent, error) {
	var schemaRule []interface{}
	for _, s := range schemas {
		schemaRule = append(schemaRule, s)
	}
	topics, err := abi.MakeTopics([]interface{}{c.abi.Events["Attested"].ID}, nil, nil, schemaRule)
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
	events := make([]*AttestedEvent, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed {
			continue
		}
		ev := new(AttestedEvent)
		if err := c.contract.UnpackLog(ev, "Attested", lg); err != nil {
			return nil, errors.Wrap(err, "could not unpack Attested log")
		}
		ev.Raw = lg
		events = append(events, ev)
	}
	return events, nil
}
