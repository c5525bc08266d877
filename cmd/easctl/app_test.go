package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/ethereum-attestation-service/sdk/config/params"
	"github.com/ethereum-attestation-service/sdk/offchain"
	"github.com/ethereum-attestation-service/sdk/registry"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/afero"
)

// runApp runs one easctl invocation against the given output buffer.
func runApp(out *bytes.Buffer, args ...string) error {
	app := newApp()
	app.Writer = out
	return app.Run(append([]string{"easctl"}, args...))
}

func TestOffchainWorkflow(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	fs = afero.NewMemMapFs()
	defer func() { fs = afero.NewOsFs() }()

	schema := registry.NewSchemaUUID("bool like", common.Address{}, true)
	schemaHex := fmt.Sprintf("%#x", schema)
	var out bytes.Buffer

	err := runApp(&out, "--network", "dev", "--private-key", testKeyHex,
		"offchain", "sign",
		"--schema", schemaHex,
		"--recipient", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"--data", "0x01",
		"--out", "/att.json")
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, "/att.json")
	require.NoError(t, err)
	signed := new(offchain.SignedAttestation)
	require.NoError(t, json.Unmarshal(raw, signed))
	require.Equal(t, testKeyAddress, signed.Attester.Hex())
	require.Equal(t, schema, signed.Schema)

	require.NoError(t, runApp(&out, "--network", "dev", "offchain", "verify", "/att.json"))

	out.Reset()
	require.NoError(t, runApp(&out, "--network", "dev", "offchain", "url", "/att.json"))
	shareURL := strings.TrimSpace(out.String())
	require.StringContains(t, "#attestation=", shareURL)

	// The share url is itself a verifiable source.
	require.NoError(t, runApp(&out, "--network", "dev", "offchain", "verify", shareURL))
}

func TestOffchainSign_Stdout(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	fs = afero.NewMemMapFs()
	defer func() { fs = afero.NewOsFs() }()

	schemaHex := fmt.Sprintf("%#x", registry.NewSchemaUUID("bool like", common.Address{}, true))
	var out bytes.Buffer
	err := runApp(&out, "--network", "dev", "--private-key", testKeyHex,
		"offchain", "sign", "--schema", schemaHex, "--data", "0x01")
	require.NoError(t, err)

	signed := new(offchain.SignedAttestation)
	require.NoError(t, json.Unmarshal(out.Bytes(), signed))
	require.NoError(t, offchain.FromConfig(params.DevConfig()).VerifyAttestation(signed))
}

func TestOffchainVerify_Tampered(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	fs = afero.NewMemMapFs()
	defer func() { fs = afero.NewOsFs() }()

	schemaHex := fmt.Sprintf("%#x", registry.NewSchemaUUID("bool like", common.Address{}, true))
	var out bytes.Buffer
	err := runApp(&out, "--network", "dev", "--private-key", testKeyHex,
		"offchain", "sign", "--schema", schemaHex, "--data", "0x01", "--out", "/att.json")
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, "/att.json")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	doc["revocable"] = false
	tampered, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/tampered.json", tampered, 0600))

	err = runApp(&out, "--network", "dev", "offchain", "verify", "/att.json", "/tampered.json")
	require.ErrorContains(t, "invalid attestation uuid", err)
}

func TestOffchainVerify_NoSources(t *testing.T) {
	var out bytes.Buffer
	err := runApp(&out, "offchain", "verify")
	require.ErrorContains(t, "at least one attestation file or url is required", err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runApp(&out, "version"))
	require.StringContains(t, "eas-sdk/", out.String())
}
