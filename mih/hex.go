package mih

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ToHex encodes bits (H/8 bytes) as a lowercased hex string of length
// H/4, per the bit-order contract: hex char k's nibble occupies bit
// positions [4k, 4k+4) of the overall sequence, most significant bit
// first. This is exactly the byte layout encoding/hex already uses.
func ToHex(bits []byte) string {
	return hex.EncodeToString(bits)
}

// FromHex decodes a hex string into its packed bit representation.
// Decoding is case-insensitive; the result is H/8 bytes for an
// H/4-character input.
func FromHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: hex string %q has odd length", ErrInputInvalid, s)
	}
	b, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not valid hex: %s", ErrInputInvalid, s, err)
	}
	return b, nil
}
