package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/encoding/bytesutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// parseUUID reads a 32-byte hex flag.
func parseUUID(cliCtx *cli.Context, flag *cli.StringFlag) ([32]byte, error) {
	uuid, err := bytesutil.DecodeHex32(cliCtx.String(flag.Name))
	if err != nil {
		return eas.ZeroUUID, errors.Wrapf(err, "--%s", flag.Name)
	}
	return uuid, nil
}

// parseOptionalUUID returns the zero uuid when the flag is unset.
func parseOptionalUUID(cliCtx *cli.Context, flag *cli.StringFlag) ([32]byte, error) {
	if cliCtx.String(flag.Name) == "" {
		return eas.ZeroUUID, nil
	}
	return parseUUID(cliCtx, flag)
}

// parseAddress reads an address flag, the zero address when unset.
func parseAddress(cliCtx *cli.Context, flag *cli.StringFlag) (common.Address, error) {
	s := cliCtx.String(flag.Name)
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("--%s: invalid address %q", flag.Name, s)
	}
	return common.HexToAddress(s), nil
}

// parseValue reads a decimal wei amount, nil when unset.
func parseValue(cliCtx *cli.Context) (*big.Int, error) {
	s := cliCtx.String(valueFlag.Name)
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("--%s: invalid wei amount %q", valueFlag.Name, s)
	}
	return v, nil
}

// readData resolves the attested data from --data or --data-file.
func readData(cliCtx *cli.Context) ([]byte, error) {
	if cliCtx.IsSet(dataFlag.Name) && cliCtx.IsSet(dataFileFlag.Name) {
		return nil, errors.Errorf("--%s and --%s are mutually exclusive", dataFlag.Name, dataFileFlag.Name)
	}
	if path := cliCtx.String(dataFileFlag.Name); path != "" {
		b, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read data file %s", path)
		}
		return b, nil
	}
	s := cliCtx.String(dataFlag.Name)
	if s == "" {
		return nil, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", dataFlag.Name)
	}
	return b, nil
}

// parseBytes32OrHash interprets the input as a 32-byte hex value, anything
// else is keccak256 hashed into one.
func parseBytes32OrHash(s string) ([32]byte, error) {
	if s == "" {
		return [32]byte{}, errors.New("data is required")
	}
	if strings.HasPrefix(s, "0x") && len(s) == 66 {
		return bytesutil.DecodeHex32(s)
	}
	return bytesutil.ToBytes32(crypto.Keccak256([]byte(s))), nil
}

func printAttestation(w io.Writer, att *eas.Attestation) {
	fmt.Fprintf(w, "uuid:            %#x\n", att.UUID)
	fmt.Fprintf(w, "schema:          %#x\n", att.Schema)
	fmt.Fprintf(w, "attester:        %s\n", att.Attester.Hex())
	fmt.Fprintf(w, "recipient:       %s\n", att.Recipient.Hex())
	fmt.Fprintf(w, "time:            %d\n", att.Time)
	fmt.Fprintf(w, "expiration time: %d\n", att.ExpirationTime)
	fmt.Fprintf(w, "revocation time: %d\n", att.RevocationTime)
	fmt.Fprintf(w, "revocable:       %t\n", att.Revocable)
	fmt.Fprintf(w, "ref uuid:        %#x\n", att.RefUUID)
	fmt.Fprintf(w, "data:            %#x\n", att.Data)
}
