package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/offchain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var offchainCommand = &cli.Command{
	Name:  "offchain",
	Usage: "sign, verify and share offchain attestations",
	Subcommands: []*cli.Command{
		{
			Name:   "sign",
			Usage:  "sign an offchain attestation",
			Flags:  []cli.Flag{schemaFlag, recipientFlag, dataFlag, dataFileFlag, expirationFlag, revocableFlag, refUUIDFlag, outFlag},
			Action: offchainSignAction,
		},
		{
			Name:      "verify",
			Usage:     "verify signed attestations from files or share urls",
			ArgsUsage: "<file|url>...",
			Action:    offchainVerifyAction,
		},
		{
			Name:      "url",
			Usage:     "render a signed attestation as a shareable url",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{baseURLFlag},
			Action:    offchainURLAction,
		},
		{
			Name:   "revoke",
			Usage:  "revoke an offchain attestation onchain by its uuid",
			Flags:  []cli.Flag{uuidFlag},
			Action: offchainRevokeAction,
		},
	},
}

func offchainSignAction(cliCtx *cli.Context) error {
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
	oc := offchain.FromConfig(params.EASConfig())
	signed, err := oc.SignAttestation(account, &offchain.AttestationParams{
		Schema:         schema,
		Recipient:      recipient,
		Time:           uint64(time.Now().Unix()),
		ExpirationTime: cliCtx.Uint64(expirationFlag.Name),
		Revocable:      cliCtx.Bool(revocableFlag.Name),
		RefUUID:        refUUID,
		Data:           data,
	})
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(signed, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal attestation")
	}
	if out := cliCtx.String(outFlag.Name); out != "" {
		if err := afero.WriteFile(fs, out, raw, 0600); err != nil {
			return errors.Wrapf(err, "could not write %s", out)
		}
		log.WithFields(logrus.Fields{
			"file": out,
			"uuid": fmt.Sprintf("%#x", signed.UUID)[:10],
		}).Info("Wrote signed attestation")
		return nil
	}
	fmt.Fprintln(cliCtx.App.Writer, string(raw))
	return nil
}

func offchainVerifyAction(cliCtx *cli.Context) error {
	args := cliCtx.Args().Slice()
	if len(args) == 0 {
		return errors.New("at least one attestation file or url is required")
	}
	oc := offchain.FromConfig(params.EASConfig())
	g, _ := errgroup.WithContext(cliCtx.Context)
	for _, source := range args {
		g.Go(func() error {
			att, err := readSignedAttestation(source)
			if err != nil {
				return err
			}
			if err := oc.VerifyAttestation(att); err != nil {
				return errors.Wrap(err, source)
			}
			log.WithFields(logrus.Fields{
				"source":   source,
				"uuid":     fmt.Sprintf("%#x", att.UUID)[:10],
				"attester": att.Attester.Hex(),
			}).Info("Attestation verified")
			return nil
		})
	}
	return g.Wait()
}

func offchainURLAction(cliCtx *cli.Context) error {
	if cliCtx.Args().Len() != 1 {
		return errors.New("exactly one attestation file is required")
	}
	att, err := readSignedAttestation(cliCtx.Args().First())
	if err != nil {
		return err
	}
	oc := offchain.FromConfig(params.EASConfig())
	if err := oc.VerifyAttestation(att); err != nil {
		return err
	}
	u, err := offchain.EncodeURL(cliCtx.String(baseURLFlag.Name), att)
	if err != nil {
		return err
	}
	fmt.Fprintln(cliCtx.App.Writer, u)
	return nil
}

func offchainRevokeAction(cliCtx *cli.Context) error {
	account, err := loadAccount(cliCtx)
	if err != nil {
		return err
	}
	uuid, err := parseUUID(cliCtx, uuidFlag)
	if err != nil {
		return err
	}
	c, err := dialContracts(cliCtx)
	if err != nil {
		return err
	}
	at, err := c.eas.RevokeOffchain(cliCtx.Context, account, uuid)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"uuid": fmt.Sprintf("%#x", uuid)[:10],
		"time": at,
	}).Info("Offchain attestation revoked")
	return nil
}

// readSignedAttestation loads an attestation from a json file or, when the
// source carries the share fragment, from a url.
func readSignedAttestation(source string) (*offchain.SignedAttestation, error) {
	if strings.Contains(source, "#attestation=") {
		return offchain.DecodeURL(source)
	}
	raw, err := afero.ReadFile(fs, source)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", source)
	}
	att := new(offchain.SignedAttestation)
	if err := json.Unmarshal(raw, att); err != nil {
		return nil, errors.Wrap(err, source)
	}
	return att, nil
}
