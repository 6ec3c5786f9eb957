package mih

// Index is an in-memory multi-index-hashing similarity index over
// fixed-length binary fingerprints. It is mutable (Update) until
// Train freezes it; afterward only Query, ListCategories and Count are
// valid.
//
// Mutating calls (Update, Train) require exclusive access from the
// caller: the index does not synchronize against itself, matching the
// teacher's own Writer types (e.g. bucketteer.Writer), which document
// "cannot be called concurrently" rather than taking internal locks.
// Once frozen, Query/ListCategories/Count are safe for unbounded
// concurrent use, since the record table and slot indexes are never
// mutated again.
type Index struct {
	hashSize       int
	wordLength     int
	matchThreshold int

	acceptor   *Acceptor
	categories *categoryTable

	trained bool

	// staging holds hash -> set of category ids during the Open
	// phase. Cleared the moment Train runs.
	staging map[string]map[int]struct{}

	records []record
	slots   []*slotIndex
}

// HashSize returns H, the configured hash size in bits.
func (ix *Index) HashSize() int { return ix.hashSize }

// WordLength returns W, the configured word size in bits.
func (ix *Index) WordLength() int { return ix.wordLength }

// MatchThreshold returns T, the configured MIH/linear dispatch
// threshold in bits.
func (ix *Index) MatchThreshold() int { return ix.matchThreshold }

// WindowSize returns T/W, the match threshold measured in whole words.
func (ix *Index) WindowSize() int { return ix.matchThreshold / ix.wordLength }

// NumSlots returns S = H/W, the number of per-word inverted indexes.
func (ix *Index) NumSlots() int { return ix.hashSize / ix.wordLength }

// Trained reports whether the index has been frozen by Train.
func (ix *Index) Trained() bool { return ix.trained }

// Acceptor returns the compiled input-hash syntax acceptor for this
// index's configured hash size.
func (ix *Index) Acceptor() *Acceptor { return ix.acceptor }

// Count returns the number of frozen records. It is 0 before Train.
func (ix *Index) Count() int { return len(ix.records) }

// ListCategories returns category labels, in id order. If ids is
// non-nil, the result is restricted to (and ordered by) those ids.
func (ix *Index) ListCategories(ids []int) []string {
	return ix.categories.list(ids)
}
