package main

import (
	"fmt"

	"github.com/ethereum-attestation-service/sdk/runtime/logging"
	"github.com/urfave/cli/v2"
)

var schemaCommand = &cli.Command{
	Name:  "schema",
	Usage: "register and read schemas",
	Subcommands: []*cli.Command{
		{
			Name:   "register",
			Usage:  "register a new schema",
			Flags:  []cli.Flag{definitionFlag, resolverFlag, revocableFlag},
			Action: schemaRegisterAction,
		},
		{
			Name:   "get",
			Usage:  "fetch a schema record by uuid",
			Flags:  []cli.Flag{uuidFlag},
			Action: schemaGetAction,
		},
	},
}

func schemaRegisterAction(cliCtx *cli.Context) error {
	account, err := loadAccount(cliCtx)
	if err != nil {
		return err
	}
	resolver, err := parseAddress(cliCtx, resolverFlag)
	if err != nil {
		return err
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	uuid, err := c.registry.Register(cliCtx.Context, account, cliCtx.String(definitionFlag.Name), resolver, cliCtx.Bool(revocableFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintf(cliCtx.App.Writer, "%#x\n", uuid)
	return nil
}

func schemaGetAction(cliCtx *cli.Context) error {
	uuid, err := parseUUID(cliCtx, uuidFlag)
	if err != nil {
		return err
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	rec, err := c.registry.GetSchema(cliCtx.Context, uuid)
	if err != nil {
		return err
	}
	log.WithFields(logging.SchemaFields(rec)).Debug("Fetched schema")
	fmt.Fprintf(cliCtx.App.Writer, "uuid:      %#x\n", rec.UUID)
	fmt.Fprintf(cliCtx.App.Writer, "schema:    %s\n", rec.Schema)
	fmt.Fprintf(cliCtx.App.Writer, "resolver:  %s\n", rec.Resolver.Hex())
	fmt.Fprintf(cliCtx.App.Writer, "revocable: %t\n", rec.Revocable)
	return nil
}
