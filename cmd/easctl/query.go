package main

import (
	"fmt"

	"github.com/ethereum-attestation-service/sdk/runtime/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
)

var attestationCommand = &cli.Command{
	Name:  "attestation",
	Usage: "read attestations from the contract",
	Subcommands: []*cli.Command{
		{
			Name:   "get",
			Usage:  "fetch an attestation by uuid",
			Flags:  []cli.Flag{uuidFlag},
			Action: attestationGetAction,
		},
		{
			Name:   "valid",
			Usage:  "check whether an attestation exists",
			Flags:  []cli.Flag{uuidFlag},
			Action: attestationValidAction,
		},
		{
			Name:   "revoked",
			Usage:  "check whether an attestation was revoked",
			Flags:  []cli.Flag{uuidFlag},
			Action: attestationRevokedAction,
		},
	},
}

func attestationGetAction(cliCtx *cli.Context) error {
	uuid, err := parseUUID(cliCtx, uuidFlag)
	if err != nil {
		return err
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	att, err := c.eas.GetAttestation(cliCtx.Context, uuid)
	if err != nil {
		return err
	}
	log.WithFields(logging.AttestationFields(att)).Debug("Fetched attestation")
	printAttestation(cliCtx.App.Writer, att)
	return nil
}

func attestationValidAction(cliCtx *cli.Context) error {
	uuid, err := parseUUID(cliCtx, uuidFlag)
	if err != nil {
		return err
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	valid, err := c.eas.IsAttestationValid(cliCtx.Context, uuid)
	if err != nil {
		return err
	}
	fmt.Fprintln(cliCtx.App.Writer, valid)
	return nil
}

func attestationRevokedAction(cliCtx *cli.Context) error {
	uuid, err := parseUUID(cliCtx, uuidFlag)
	if err != nil {
		return err
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	revoked, err := c.eas.IsAttestationRevoked(cliCtx.Context, uuid)
	if err != nil {
		return err
	}
	fmt.Fprintln(cliCtx.App.Writer, revoked)
	return nil
}

var nonceCommand = &cli.Command{
	Name:   "nonce",
	Usage:  "print the verifier nonce of an account",
	Flags:  []cli.Flag{addressFlag},
	Action: nonceAction,
}

func nonceAction(cliCtx *cli.Context) error {
	address, err := parseAddress(cliCtx, addressFlag)
	if err != nil {
		return err
	}
	if address == (common.Address{}) {
		account, err := loadAccount(cliCtx)
		if err != nil {
			return err
		}
		address = account.Address()
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	verifier, err := c.requireVerifier()
	if err != nil {
		return err
	}
	nonce, err := verifier.Nonce(cliCtx.Context, address)
	if err != nil {
		return err
	}
	fmt.Fprintln(cliCtx.App.Writer, nonce.String())
	return nil
}
