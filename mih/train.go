package mih

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Train freezes the index: ingest staging is materialized into the
// record table and cleared, and the S per-slot inverted indexes are
// built. It returns the number of distinct frozen records.
//
// Calling Train on an already-trained index is a no-op and returns 0.
//
// The per-record slot fill is embarrassingly parallel (spec §4.3): the
// record table is split into shards, one goroutine per shard, each
// goroutine filling every slot for its own records. The slot indexes
// tolerate this because slotIndex.add shards and locks internally by
// word, not by record.
func (ix *Index) Train() (int, error) {
	if ix.trained {
		return 0, nil
	}

	ix.records = make([]record, 0, len(ix.staging))
	for hash, catSet := range ix.staging {
		bits, err := FromHex(hash)
		if err != nil {
			return 0, err
		}
		cats := make([]int, 0, len(catSet))
		for id := range catSet {
			cats = append(cats, id)
		}
		sort.Ints(cats)
		ix.records = append(ix.records, record{hash: hash, bits: bits, categories: cats})
	}
	ix.staging = nil

	numSlots := ix.NumSlots()
	ix.slots = make([]*slotIndex, numSlots)
	for i := range ix.slots {
		ix.slots[i] = newSlotIndex()
	}

	if err := ix.fillSlotsParallel(); err != nil {
		return 0, err
	}

	ix.trained = true
	observeTrained(len(ix.records))
	klog.V(2).Infof("mih: trained %d records into %d slots (word length %d bits)", len(ix.records), numSlots, ix.wordLength)
	return len(ix.records), nil
}

func (ix *Index) fillSlotsParallel() error {
	total := len(ix.records)
	if total == 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	shardSize := (total + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < total; start += shardSize {
		end := start + shardSize
		if end > total {
			end = total
		}
		start, end := start, end
		g.Go(func() error {
			for ri := start; ri < end; ri++ {
				rec := ix.records[ri]
				for slot := 0; slot < len(ix.slots); slot++ {
					word := extractWord(rec.bits, slot*ix.wordLength, ix.wordLength)
					ix.slots[slot].add(word, uint32(ri))
				}
			}
			return nil
		})
	}
	return g.Wait()
}
