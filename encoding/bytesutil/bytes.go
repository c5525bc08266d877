// Package bytesutil defines helper methods for converting byte slices to
// fixed-size arrays and rendering them for logs.
package bytesutil

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// ToBytes32 is a convenience method for converting a byte slice to a fix
// sized 32 byte array. This method will truncate the input if it is larger
// than 32 bytes.
func ToBytes32(x []byte) [32]byte {
	var y [32]byte
	copy(y[:], x)
	return y
}

// DecodeHex32 decodes a 0x-prefixed hex string into a 32 byte array. The
// input must decode to exactly 32 bytes.
func DecodeHex32(s string) ([32]byte, error) {
	var y [32]byte
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return y, errors.Wrap(err, "decode hex")
	}
	if len(b) != 32 {
		return y, errors.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(y[:], b)
	return y, nil
}

// SafeCopyBytes will copy and return a non-nil byte slice, otherwise it returns nil.
func SafeCopyBytes(cp []byte) []byte {
	if cp != nil {
		copied := make([]byte, len(cp))
		copy(copied, cp)
		return copied
	}
	return nil
}

// Trunc truncates the byte slices to 6 bytes.
func Trunc(x []byte) []byte {
	if len(x) > 6 {
		return x[:6]
	}
	return x
}

// IsZero32 reports whether every byte of the array is zero.
func IsZero32(x [32]byte) bool {
	return x == [32]byte{}
}
