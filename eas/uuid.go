package eas

import (
	"encoding/binary"

	"github.com/ethereum-attestation-service/sdk/encoding/bytesutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// NewUUID derives the identifier of an onchain attestation. It is the
// keccak256 hash of the tightly packed attestation parameters. The contract
// increments bump until the derived identifier is unused.
func NewUUID(schema [32]byte, recipient, attester common.Address, time, expirationTime uint64, revocable bool, refUUID [32]byte, data []byte, bump uint32) [32]byte {
	buf := make([]byte, 0, 32+20+20+8+8+1+32+len(data)+4)
	buf = append(buf, schema[:]...)
	buf = append(buf, recipient.Bytes()...)
	buf = append(buf, attester.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, time)
	buf = binary.BigEndian.AppendUint64(buf, expirationTime)
	if revocable {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = append(buf, refUUID[:]...)
	buf = append(buf, data...)
	buf = binary.BigEndian.AppendUint32(buf, bump)
	return bytesutil.ToBytes32(crypto.Keccak256(buf))
}

// NewOffchainUUID derives the identifier of an offchain attestation. The
// attester is not part of the preimage, binding to the signer happens
// through the signature instead.
func NewOffchainUUID(schema [32]byte, recipient common.Address, time, expirationTime uint64, revocable bool, refUUID [32]byte, data []byte) [32]byte {
	return NewUUID(schema, recipient, common.Address{}, time, expirationTime, revocable, refUUID, data, 0)
}
