package main

import "github.com/urfave/cli/v2"

var (
	rpcEndpointFlag = &cli.StringFlag{
		Name:  "rpc-endpoint",
		Usage: "JSON-RPC endpoint of an execution node",
		Value: "http://localhost:8545",
	}
	rpcHeaderFlag = &cli.StringSliceFlag{
		Name:  "rpc-header",
		Usage: "Name=Value header attached to every RPC request, repeatable",
	}
	configFileFlag = &cli.StringFlag{
		Name:  "config-file",
		Usage: "Path to a yaml file overriding the service config",
	}
	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "Named deployment preset: mainnet, sepolia or dev",
	}
	privateKeyFlag = &cli.StringFlag{
		Name:  "private-key",
		Usage: "Hex-encoded private key of the signing account",
	}
	keyFileFlag = &cli.StringFlag{
		Name:  "key-file",
		Usage: "Path to a file holding the hex-encoded private key",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: trace, debug, info, warn, error, fatal",
		Value: "info",
	}

	schemaFlag = &cli.StringFlag{
		Name:     "schema",
		Usage:    "Schema uuid as 0x-prefixed hex",
		Required: true,
	}
	recipientFlag = &cli.StringFlag{
		Name:  "recipient",
		Usage: "Recipient address of the attestation",
	}
	dataFlag = &cli.StringFlag{
		Name:  "data",
		Usage: "Attested data as 0x-prefixed hex",
	}
	dataFileFlag = &cli.StringFlag{
		Name:  "data-file",
		Usage: "Path to a file holding the raw attested data",
	}
	expirationFlag = &cli.Uint64Flag{
		Name:  "expiration",
		Usage: "Unix time the attestation expires at, 0 means never",
	}
	revocableFlag = &cli.BoolFlag{
		Name:  "revocable",
		Usage: "Whether the attestation can be revoked later",
		Value: true,
	}
	refUUIDFlag = &cli.StringFlag{
		Name:  "ref-uuid",
		Usage: "UUID of the attestation this one refers to",
	}
	valueFlag = &cli.StringFlag{
		Name:  "value",
		Usage: "Wei sent along to the schema resolver",
	}
	delegatedFlag = &cli.BoolFlag{
		Name:  "delegated",
		Usage: "Sign the request offline and submit it through the verifier",
	}
	senderKeyFlag = &cli.StringFlag{
		Name:  "sender-key",
		Usage: "Hex-encoded private key submitting a delegated request, defaults to the signing key",
	}
	uuidFlag = &cli.StringFlag{
		Name:     "uuid",
		Usage:    "Attestation uuid as 0x-prefixed hex",
		Required: true,
	}
	definitionFlag = &cli.StringFlag{
		Name:     "definition",
		Usage:    "Schema definition string, e.g. \"uint256 score, address player\"",
		Required: true,
	}
	resolverFlag = &cli.StringFlag{
		Name:  "resolver",
		Usage: "Resolver contract receiving attestation values",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "File the signed attestation is written to, prints to stdout when unset",
	}
	baseURLFlag = &cli.StringFlag{
		Name:  "base-url",
		Usage: "Base url the attestation fragment is appended to",
		Value: "https://easscan.org/offchain/url",
	}
	checkFlag = &cli.BoolFlag{
		Name:  "check",
		Usage: "Only read the stored timestamp instead of submitting one",
	}
	addressFlag = &cli.StringFlag{
		Name:  "address",
		Usage: "Account address, defaults to the loaded key's address",
	}
)

var appFlags = []cli.Flag{
	rpcEndpointFlag,
	rpcHeaderFlag,
	configFileFlag,
	networkFlag,
	privateKeyFlag,
	keyFileFlag,
	verbosityFlag,
}
