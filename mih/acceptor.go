package mih

import "fmt"

// Acceptor validates that a string is exactly Length hex characters.
// It is a hand-rolled scanner rather than a compiled *regexp.Regexp:
// spec requires only a length check plus a character-class test, not
// a general regular-expression engine.
type Acceptor struct {
	Length int
}

func newAcceptor(hashSize int) *Acceptor {
	return &Acceptor{Length: hashSize / 4}
}

// Match reports whether s is exactly Length characters of [0-9a-fA-F].
func (a *Acceptor) Match(s string) bool {
	if len(s) != a.Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexByte(s[i]) {
			return false
		}
	}
	return true
}

// String renders the acceptor as the regular expression it models, for
// use in error messages.
func (a *Acceptor) String() string {
	return fmt.Sprintf("^[0-9a-fA-F]{%d}$", a.Length)
}

func isHexByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}
