package mih

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/hashmap"
)

// slotShardBits controls how many independent shards a slotIndex is
// split into. Each shard owns its own mutex and its own word->records
// map, so concurrent training fill (one goroutine per record shard,
// see train.go) only contends with other goroutines landing on the
// same word shard rather than the whole slot. This mirrors the
// prefixToHashes sharding the teacher's bucketteer writer uses to keep
// concurrent Put cheap.
const slotShardBits = 6

// slotIndex is the per-slot inverted index: word value -> record ids
// whose word at this slot equals that value.
type slotIndex struct {
	shards [1 << slotShardBits]slotShard
}

type slotShard struct {
	mu sync.Mutex
	m  *hashmap.Map[uint64, []uint32]
}

func newSlotIndex() *slotIndex {
	s := &slotIndex{}
	for i := range s.shards {
		s.shards[i].m = hashmap.New[uint64, []uint32](0)
	}
	return s
}

func (s *slotIndex) shardFor(word uint64) *slotShard {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], word)
	h := xxhash.Sum64(buf[:])
	return &s.shards[h&((1<<slotShardBits)-1)]
}

// add records that recordID's word at this slot is word. Safe for
// concurrent use, including concurrent adds of the same word: each
// word shard is guarded by its own mutex.
func (s *slotIndex) add(word uint64, recordID uint32) {
	shard := s.shardFor(word)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	existing, _ := shard.m.Get(word)
	shard.m.Set(word, append(existing, recordID))
}

// get returns the record ids previously added under word, or nil.
func (s *slotIndex) get(word uint64) []uint32 {
	shard := s.shardFor(word)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	records, _ := shard.m.Get(word)
	return records
}
