package main

import (
	"net/http"

	"github.com/ethereum-attestation-service/sdk/api/client"
	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/ethereum-attestation-service/sdk/offchain"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// fs is swapped for an in-memory filesystem in tests.
var fs = afero.NewOsFs()

// loadServiceConfig activates the config selected by --config-file or
// --network before any command runs.
func loadServiceConfig(cliCtx *cli.Context) error {
	if cliCtx.IsSet(configFileFlag.Name) && cliCtx.IsSet(networkFlag.Name) {
		return errors.Errorf("--%s and --%s are mutually exclusive", configFileFlag.Name, networkFlag.Name)
	}
	if path := cliCtx.String(configFileFlag.Name); path != "" {
		cfg, err := params.LoadConfigFile(fs, path)
		if err != nil {
			return err
		}
		params.OverrideEASConfig(cfg)
		log.WithField("config", cfg.ConfigName).Info("Loaded service config from file")
		return nil
	}
	if name := cliCtx.String(networkFlag.Name); name != "" {
		cfg, err := params.ByName(name)
		if err != nil {
			return err
		}
		params.OverrideEASConfig(cfg)
	}
	return nil
}

// loadAccount builds the signing account from --private-key or --key-file.
func loadAccount(cliCtx *cli.Context) (*keys.Account, error) {
	if key := cliCtx.String(privateKeyFlag.Name); key != "" {
		return keys.FromHex(key)
	}
	if path := cliCtx.String(keyFileFlag.Name); path != "" {
		b, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read key file %s", path)
		}
		return keys.FromHex(string(b))
	}
	return nil, errors.Errorf("a signing key is required, set --%s or --%s", privateKeyFlag.Name, keyFileFlag.Name)
}

// dialBackend connects to the configured execution node.
func dialBackend(cliCtx *cli.Context) (*ethclient.Client, error) {
	headers, err := client.ParseHeaders(cliCtx.StringSlice(rpcHeaderFlag.Name))
	if err != nil {
		return nil, err
	}
	endpoint := cliCtx.String(rpcEndpointFlag.Name)
	var opts []rpc.ClientOption
	if len(headers) > 0 {
		opts = append(opts, rpc.WithHTTPClient(&http.Client{
			Transport: client.NewCustomHeadersTransport(nil, headers),
		}))
	}
	rpcClient, err := rpc.DialOptions(cliCtx.Context, endpoint, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "could not dial %s", endpoint)
	}
	return ethclient.NewClient(rpcClient), nil
}

// contracts bundles the clients a command may need. The verifier is nil when
// the active config has no verifier contract.
type contracts struct {
	backend  *ethclient.Client
	eas      *eas.Client
	registry *registry.Client
	verifier *eas.VerifierClient
	typed    *eip712.Utils
	offchain *offchain.Offchain
}

func dialContracts(cliCtx *cli.Context) (*contracts, error) {
	backend, err := dialBackend(cliCtx)
	if err != nil {
		return nil, err
	}
	cfg := params.EASConfig()
	easClient, err := eas.NewClient(cfg.EASContract, backend)
	if err != nil {
		return nil, err
	}
	regClient, err := registry.NewClient(cfg.SchemaRegistryContract, backend)
	if err != nil {
		return nil, err
	}
	c := &contracts{
		backend:  backend,
		eas:      easClient,
		registry: regClient,
		typed:    eip712.FromConfig(cfg),
		offchain: offchain.FromConfig(cfg),
	}
	if cfg.EIP712VerifierContract != (common.Address{}) {
		c.verifier, err = eas.NewVerifierClient(cfg.EIP712VerifierContract, backend)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *contracts) requireVerifier() (*eas.VerifierClient, error) {
	if c.verifier == nil {
		return nil, errors.New("the active config has no verifier contract, delegated requests are unavailable")
	}
	return c.verifier, nil
}
