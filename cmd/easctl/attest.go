package main

import (
	"fmt"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/eas"
	"github.com/ethereum-attestation-service/sdk/eip712"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var attestCommand = &cli.Command{
	Name:   "attest",
	Usage:  "submit an attestation under a registered schema",
	Flags:  []cli.Flag{schemaFlag, recipientFlag, dataFlag, dataFileFlag, expirationFlag, revocableFlag, refUUIDFlag, valueFlag, delegatedFlag, senderKeyFlag},
	Action: attestAction,
}

func attestAction(cliCtx *cli.Context) error {
	account, err := loadAccount(cliCtx)
	if err != nil {
		return err
	}
	schema, err := parseUUID(cliCtx, schemaFlag)
	if err != nil {
		return err
	}
	recipient, err := parseAddress(cliCtx, recipientFlag)
	if err != nil {
		return err
	}
	refUUID, err := parseOptionalUUID(cliCtx, refUUIDFlag)
	if err != nil {
		return err
	}
	data, err := readData(cliCtx)
	if err != nil {
		return err
	}
	value, err := parseValue(cliCtx)
	if err != nil {
		return err
	}
	d := eas.AttestationRequestData{
		Recipient:      recipient,
		ExpirationTime: cliCtx.Uint64(expirationFlag.Name),
		Revocable:      cliCtx.Bool(revocableFlag.Name),
		RefUUID:        refUUID,
		Data:           data,
		Value:          value,
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	var uuid [32]byte
	if cliCtx.Bool(delegatedFlag.Name) {
		uuid, err = attestByDelegation(cliCtx, c, account, schema, d)
	} else {
		uuid, err = c.eas.Attest(cliCtx.Context, account, &eas.AttestationRequest{Schema: schema, Data: d})
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cliCtx.App.Writer, "%#x\n", uuid)
	return nil
}

func attestByDelegation(cliCtx *cli.Context, c *contracts, attester *keys.Account, schema [32]byte, d eas.AttestationRequestData) ([32]byte, error) {
	verifier, err := c.requireVerifier()
	if err != nil {
		return eas.ZeroUUID, err
	}
	sender := attester
	if key := cliCtx.String(senderKeyFlag.Name); key != "" {
		if sender, err = keys.FromHex(key); err != nil {
			return eas.ZeroUUID, err
		}
	}
	ctx := cliCtx.Context
	nonce, err := verifier.Nonce(ctx, attester.Address())
	if err != nil {
		return eas.ZeroUUID, err
	}
	message := &eip712.DelegatedAttestation{
		Schema:         schema,
		Recipient:      d.Recipient,
		ExpirationTime: d.ExpirationTime,
		Revocable:      d.Revocable,
		RefUUID:        d.RefUUID,
		Data:           d.Data,
		Nonce:          nonce,
	}
	sig, err := c.typed.SignDelegatedAttestation(attester, message)
	if err != nil {
		return eas.ZeroUUID, err
	}
	log.WithFields(logrus.Fields{
		"attester": attester.Address().Hex(),
		"sender":   sender.Address().Hex(),
		"nonce":    nonce.String(),
	}).Info("Signed delegated attestation")
	return c.eas.AttestByDelegation(ctx, sender, &eas.DelegatedAttestationRequest{
		Schema:    schema,
		Data:      d,
		Signature: sig,
		Attester:  attester.Address(),
	})
}
