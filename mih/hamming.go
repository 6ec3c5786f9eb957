package mih

import (
	"fmt"
	"math/bits"
)

// GetHamming returns the Hamming distance between two equal-length hex
// hashes. If maxDistance is given and the running distance exceeds it,
// GetHamming short-circuits and returns -1. Without maxDistance, the
// full exact distance is returned. Mismatched lengths are an
// input-invalid error.
func GetHamming(a, b string, maxDistance ...int) (int, error) {
	aBits, err := FromHex(a)
	if err != nil {
		return -1, err
	}
	bBits, err := FromHex(b)
	if err != nil {
		return -1, err
	}
	if len(aBits) != len(bBits) {
		return -1, fmt.Errorf("%w: hash lengths differ (%d vs %d bytes)", ErrInputInvalid, len(aBits), len(bBits))
	}

	max := len(aBits) * 8
	if len(maxDistance) > 0 {
		max = maxDistance[0]
	}
	return hammingBits(aBits, bBits, max), nil
}

// hammingBits counts the differing bits between two equal-length byte
// slices, short-circuiting to -1 as soon as the count exceeds
// maxDistance.
func hammingBits(a, b []byte, maxDistance int) int {
	count := 0
	for i := range a {
		count += bits.OnesCount8(a[i] ^ b[i])
		if count > maxDistance {
			return -1
		}
	}
	return count
}
