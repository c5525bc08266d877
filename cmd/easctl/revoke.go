package main

import (
	"fmt"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/urfave/cli/v2"
)

var revokeCommand = &cli.Command{
	Name:   "revoke",
	Usage:  "revoke an attestation",
	Flags:  []cli.Flag{schemaFlag, uuidFlag, valueFlag, delegatedFlag, senderKeyFlag},
	Action: revokeAction,
}

func revokeAction(cliCtx *cli.Context) error {
	account, err := loadAccount(cliCtx)
	if err != nil {
		return err
	}
	schema, err := parseUUID(cliCtx, schemaFlag)
	if err != nil {
		return err
	}
	uuid, err := parseUUID(cliCtx, uuidFlag)
	if err != nil {
		return err
	}
	value, err := parseValue(cliCtx)
	if err != nil {
		return err
	}
	d := eas.RevocationRequestData{UUID: uuid, Value: value}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	if cliCtx.Bool(delegatedFlag.Name) {
		err = revokeByDelegation(cliCtx, c, account, schema, d)
	} else {
		err = c.eas.Revoke(cliCtx.Context, account, &eas.RevocationRequest{Schema: schema, Data: d})
	}
	if err != nil {
		return err
	}
	log.WithField("uuid", fmt.Sprintf("%#x", uuid)[:10]).Info("Attestation revoked")
	return nil
}

func revokeByDelegation(cliCtx *cli.Context, c *contracts, revoker *keys.Account, schema [32]byte, d eas.RevocationRequestData) error {
	verifier, err := c.requireVerifier()
	if err != nil {
		return err
	}
	sender := revoker
	if key := cliCtx.String(senderKeyFlag.Name); key != "" {
		if sender, err = keys.FromHex(key); err != nil {
			return err
		}
	}
	ctx := cliCtx.Context
	nonce, err := verifier.Nonce(ctx, revoker.Address())
	if err != nil {
		return err
	}
	sig, err := c.typed.SignDelegatedRevocation(revoker, &eip712.DelegatedRevocation{
		Schema: schema,
		UUID:   d.UUID,
		Nonce:  nonce,
	})
	if err != nil {
		return err
	}
	return c.eas.RevokeByDelegation(ctx, sender, &eas.DelegatedRevocationRequest{
		Schema:    schema,
		Data:      d,
		Signature: sig,
		Revoker:   revoker.Address(),
	})
}
