package offchain

import (
	"encoding/json"

	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/encoding/bytesutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// wireAttestation is the json encoding of a signed offchain attestation.
// Byte fields are 0x-prefixed hex.
type wireAttestation struct {
	UUID           string        `json:"uuid"`
	Schema         string        `json:"schema"`
	Recipient      string        `json:"recipient"`
	Time           uint64        `json:"time"`
	ExpirationTime uint64        `json:"expirationTime"`
	Revocable      bool          `json:"revocable"`
	RefUUID        string        `json:"refUUID"`
	Data           string        `json:"data"`
	Attester       string        `json:"attester"`
	Signature      wireSignature `json:"signature"`
}

type wireSignature struct {
	V uint8  `json:"v"`
	R string `json:"r"`
	S string `json:"s"`
}

// MarshalJSON implements json.Marshaler.
func (a *SignedAttestation) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireAttestation{
		UUID:           hexutil.Encode(a.UUID[:]),
		Schema:         hexutil.Encode(a.Schema[:]),
		Recipient:      a.Recipient.Hex(),
		Time:           a.Time,
		ExpirationTime: a.ExpirationTime,
		Revocable:      a.Revocable,
		RefUUID:        hexutil.Encode(a.RefUUID[:]),
		Data:           hexutil.Encode(a.Data),
		Attester:       a.Attester.Hex(),
		Signature: wireSignature{
			V: a.Signature.V,
			R: hexutil.Encode(a.Signature.R[:]),
			S: hexutil.Encode(a.Signature.S[:]),
		},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *SignedAttestation) UnmarshalJSON(b []byte) error {
	var w wireAttestation
	if err := json.Unmarshal(b, &w); err != nil {
		return errors.Wrap(err, "could not unmarshal attestation json")
	}
	uuid, err := bytesutil.DecodeHex32(w.UUID)
	if err != nil {
		return errors.Wrap(err, "uuid")
	}
	schema, err := bytesutil.DecodeHex32(w.Schema)
	if err != nil {
		return errors.Wrap(err, "schema")
	}
	refUUID, err := bytesutil.DecodeHex32(w.RefUUID)
	if err != nil {
		return errors.Wrap(err, "refUUID")
	}
	r, err := bytesutil.DecodeHex32(w.Signature.R)
	if err != nil {
		return errors.Wrap(err, "signature r")
	}
	s, err := bytesutil.DecodeHex32(w.Signature.S)
	if err != nil {
		return errors.Wrap(err, "signature s")
	}
	if !common.IsHexAddress(w.Recipient) {
		return errors.Errorf("invalid recipient address %q", w.Recipient)
	}
	if !common.IsHexAddress(w.Attester) {
		return errors.Errorf("invalid attester address %q", w.Attester)
	}
	data, err := hexutil.Decode(w.Data)
	if err != nil {
		return errors.Wrap(err, "data")
	}
	*a = SignedAttestation{
		AttestationParams: AttestationParams{
			Schema:         schema,
			Recipient:      common.HexToAddress(w.Recipient),
			Time:           w.Time,
			ExpirationTime: w.ExpirationTime,
			Revocable:      w.Revocable,
			RefUUID:        refUUID,
			Data:           data,
		},
		UUID:      uuid,
		Attester:  common.HexToAddress(w.Attester),
		Signature: eas.Signature{V: w.Signature.V, R: r, S: s},
	}
	return nil
}
