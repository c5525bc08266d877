package offchain

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// urlFragment marks the encoded attestation in a share url.
const urlFragment = "#attestation="

// EncodeURL renders a signed attestation as a shareable url: the json
// encoding, zlib compressed and base64url encoded, appended to base as a
// fragment.
func EncodeURL(base string, att *SignedAttestation) (string, error) {
	raw, err := json.Marshal(att)
	if err != nil {
		return "", errors.Wrap(err, "could not marshal attestation")
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", errors.Wrap(err, "could not compress attestation")
	}
	if err := zw.Close(); err != nil {
		return "", errors.Wrap(err, "could not compress attestation")
	}
	return base + urlFragment + base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeURL parses a signed attestation out of a share url produced by
// EncodeURL.
func DecodeURL(u string) (*SignedAttestation, error) {
	i := strings.Index(u, urlFragment)
	if i < 0 {
		return nil, errors.New("url has no attestation fragment")
	}
	compressed, err := base64.RawURLEncoding.DecodeString(u[i+len(urlFragment):])
	if err != nil {
		return nil, errors.Wrap(err, "could not decode attestation fragment")
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, errors.Wrap(err, "could not decompress attestation")
	}
	defer func() {
		_ = zr.Close()
	}()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "could not decompress attestation")
	}
	att := new(SignedAttestation)
	if err := json.Unmarshal(raw, att); err != nil {
		return nil, err
	}
	return att, nil
}
