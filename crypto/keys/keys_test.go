package keys_test

import (
	"math/big"
	"testing"

	"github.com/ethereum-attestation-service/sdk/crypto/keys"
	"github.com/ethereum-attestation-service/sdk/testing/assert"
	"github.com/ethereum-attestation-service/sdk/testing/require"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func TestFromHex(t *testing.T) {
	// Well-known anvil/hardhat dev key #0.
	const hexkey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	want := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	a, err := keys.FromHex(hexkey)
	require.NoError(t, err)
	assert.Equal(t, want, a.Address())

	a, err = keys.FromHex("0x" + hexkey)
	require.NoError(t, err)
	assert.Equal(t, want, a.Address())

	_, err = keys.FromHex("not-a-key")
	require.NotNil(t, err)
}

func TestSignDigestRecovers(t *testing.T) {
	a, err := keys.NewAccount()
	require.NoError(t, err)

	var digest [32]byte
	copy(digest[:], crypto.Keccak256([]byte("attestation digest")))

	sig, err := a.SignDigest(digest)
	require.NoError(t, err)
	require.Equal(t, 65, len(sig))

	pub, err := crypto.SigToPub(digest[:], sig)
	require.NoError(t, err)
	assert.Equal(t, a.Address(), crypto.PubkeyToAddress(*pub))
}

func TestTransactOpts(t *testing.T) {
	a, err := keys.NewAccount()
	require.NoError(t, err)

	opts, err := a.TransactOpts(big.NewInt(31337))
	require.NoError(t, err)
	assert.Equal(t, a.Address(), opts.From)

	_, err = a.TransactOpts(nil)
	require.ErrorContains(t, "chain id is required", err)
}
