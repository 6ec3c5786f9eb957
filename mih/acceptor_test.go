package mih

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcceptorMatch(t *testing.T) {
	a := newAcceptor(256)
	require.Equal(t, 64, a.Length)

	valid := make([]byte, 64)
	for i := range valid {
		valid[i] = "0123456789abcdef"[i%16]
	}
	require.True(t, a.Match(string(valid)))
}

func TestAcceptorRejectsWrongLength(t *testing.T) {
	a := newAcceptor(256)
	require.False(t, a.Match("ab"))
}

func TestAcceptorRejectsNonHex(t *testing.T) {
	a := newAcceptor(8)
	require.False(t, a.Match("zz"))
}

func TestAcceptorString(t *testing.T) {
	a := newAcceptor(256)
	require.Equal(t, "^[0-9a-fA-F]{64}$", a.String())
}
