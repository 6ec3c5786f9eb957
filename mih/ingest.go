package mih

import (
	"fmt"
	"strings"
)

// Update ingests hashes under category, appending category to the
// category table if it is new. Hashes are validated against the
// index's acceptor and normalized to lowercase; the final category set
// for a hash is the union across every Update call that named it.
//
// Update fails on the first invalid hash in the batch. Hashes staged
// earlier in the same call remain staged — Update is not atomic across
// a single batch, only per-hash.
func (ix *Index) Update(hashes []string, category string) error {
	if ix.trained {
		return fmt.Errorf("%w: cannot Update a trained index", ErrStateViolation)
	}

	catID := ix.categories.idFor(category)
	for _, h := range hashes {
		if !ix.acceptor.Match(h) {
			return fmt.Errorf("%w: hash %q does not match expected syntax %s", ErrInputInvalid, h, ix.acceptor.String())
		}
		norm := strings.ToLower(h)
		set, ok := ix.staging[norm]
		if !ok {
			set = make(map[int]struct{})
			ix.staging[norm] = set
		}
		set[catID] = struct{}{}
	}
	return nil
}
