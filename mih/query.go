package mih

import (
	"fmt"
	"iter"
	"time"

	"k8s.io/klog/v2"
)

// Query returns a lazy sequence of every frozen record within
// maxDistance of hash. Order is unspecified; every qualifying record
// appears exactly once. The index must be trained.
//
// When maxDistance <= MatchThreshold, Query uses the MIH candidate
// path: the union, over all S slots, of records whose word at that
// slot is within maxDistance/S bits (rounded down) of the query's word
// there. Pigeon-hole guarantees completeness: a record within
// maxDistance cannot differ by more than that in every one of its S
// words. When maxDistance > MatchThreshold, Query falls back to a
// bounded linear scan of every frozen record.
//
// The candidate list is gathered when ranging starts. The returned
// sequence supports early termination (stop ranging over it) without
// computing distances or building results for the remaining
// candidates.
func (ix *Index) Query(hash string, maxDistance int) (iter.Seq[Result], error) {
	if !ix.trained {
		return nil, fmt.Errorf("%w: cannot Query before Train", ErrStateViolation)
	}
	if !ix.acceptor.Match(hash) {
		return nil, fmt.Errorf("%w: hash %q does not match expected syntax %s", ErrInputInvalid, hash, ix.acceptor.String())
	}

	queryBits, err := FromHex(hash)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	path := "mih"
	if maxDistance > ix.matchThreshold {
		path = "linear"
	}

	return func(yield func(Result) bool) {
		defer func() {
			observeQuery(path, time.Since(start))
		}()

		var candidates []uint32
		if path == "linear" {
			candidates = allRecordIDs(len(ix.records))
		} else {
			candidates = ix.mihCandidates(queryBits, maxDistance)
		}
		observeCandidates(path, len(candidates))

		klog.V(3).Infof("mih: query %s maxDistance=%d path=%s candidates=%d", hash, maxDistance, path, len(candidates))

		for _, id := range candidates {
			rec := ix.records[id]
			dist := hammingBits(queryBits, rec.bits, maxDistance)
			if dist < 0 {
				continue
			}
			result := Result{
				Hash:       rec.hash,
				Distance:   dist,
				Categories: ix.categories.labelsFor(rec.categories),
			}
			if !yield(result) {
				return
			}
		}
	}, nil
}

// mihCandidates returns the deduplicated union, over every slot, of
// records whose word at that slot is within maxDistance/S bits of the
// query's word at that slot.
func (ix *Index) mihCandidates(queryBits []byte, maxDistance int) []uint32 {
	seen := make(map[uint32]struct{})
	var out []uint32
	radius := maxDistance / len(ix.slots)
	for slot, idx := range ix.slots {
		word := extractWord(queryBits, slot*ix.wordLength, ix.wordLength)
		for k := 0; k <= radius; k++ {
			for _, positions := range combinations(ix.wordLength, k) {
				probe := word
				for _, p := range positions {
					probe ^= 1 << uint(p)
				}
				for _, id := range idx.get(probe) {
					if _, ok := seen[id]; ok {
						continue
					}
					seen[id] = struct{}{}
					out = append(out, id)
				}
			}
		}
	}
	return out
}

func allRecordIDs(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
