package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var timestampCommand = &cli.Command{
	Name:      "timestamp",
	Usage:     "timestamp data onchain, pass a 32-byte hex value or any string to hash",
	ArgsUsage: "<data>",
	Flags:     []cli.Flag{checkFlag},
	Action:    timestampAction,
}

func timestampAction(cliCtx *cli.Context) error {
	data, err := parseBytes32OrHash(cliCtx.Args().First())
	if err != nil {
		return err
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	if cliCtx.Bool(checkFlag.Name) {
		at, err := c.eas.GetTimestamp(cliCtx.Context, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(cliCtx.App.Writer, at)
		return nil
	}
	account, err := loadAccount(cliCtx)
	if err != nil {
		return err
	}
	at, err := c.eas.Timestamp(cliCtx.Context, account, data)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"data": fmt.Sprintf("%#x", data)[:10],
		"time": at,
	}).Info("Data timestamped")
	return nil
}
