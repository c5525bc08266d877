// easctl is a command-line client for the attestation service contracts:
// submitting and revoking attestations, registering schemas and working
// with signed offchain attestations.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum-attestation-service/sdk/runtime/version"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "easctl")

func newApp() *cli.App {
	return &cli.App{
		Name:  "easctl",
		Usage: "command-line client for the attestation service contracts",
		Flags: appFlags,
		Before: func(cliCtx *cli.Context) error {
			level, err := logrus.ParseLevel(cliCtx.String(verbosityFlag.Name))
			if err != nil {
				return errors.Wrapf(err, "invalid verbosity %q", cliCtx.String(verbosityFlag.Name))
			}
			logrus.SetLevel(level)
			return loadServiceConfig(cliCtx)
		},
		Commands: []*cli.Command{
			attestCommand,
			revokeCommand,
			attestationCommand,
			schemaCommand,
			offchainCommand,
			timestampCommand,
			nonceCommand,
			versionCommand,
		},
	}
}

var versionCommand = &cli.Command{
	Name:   "version",
	Usage:  "print the build version, with --rpc-endpoint also the deployed contract version",
	Action: versionAction,
}

func versionAction(cliCtx *cli.Context) error {
	fmt.Fprintln(cliCtx.App.Writer, version.Version())
	if !cliCtx.IsSet(rpcEndpointFlag.Name) {
		return nil
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	v, err := c.eas.Version(cliCtx.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(cliCtx.App.Writer, "eas contract: %s\n", v)
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("easctl failed")
	}
}
