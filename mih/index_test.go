package mih

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestIndex builds a small index (64-bit hash, 16-bit words, 32-bit
// threshold) so the window/MIH machinery runs the same code path as
// the PDQ preset without needing 256-bit fixtures everywhere.
func newTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := New(64, 16, 32)
	require.NoError(t, err)
	return ix
}

func collect(t *testing.T, ix *Index, hash string, maxDistance int) []Result {
	t.Helper()
	seq, err := ix.Query(hash, maxDistance)
	require.NoError(t, err)
	var out []Result
	for r := range seq {
		out = append(out, r)
	}
	return out
}

func TestNewRejectsBadHashSize(t *testing.T) {
	_, err := New(254, 16, 32)
	require.ErrorIs(t, err, ErrInputInvalid)

	_, err = New(0, 16, 32)
	require.ErrorIs(t, err, ErrInputInvalid)
}

func TestNewRejectsWordNotDividingHash(t *testing.T) {
	_, err := New(64, 24, 32)
	require.ErrorIs(t, err, ErrInputInvalid)
}

func TestNewRejectsBadThreshold(t *testing.T) {
	_, err := New(64, 16, 65)
	require.ErrorIs(t, err, ErrInputInvalid)

	_, err = New(64, 16, 3)
	require.ErrorIs(t, err, ErrInputInvalid)
}

func TestNewFromPresetPDQ(t *testing.T) {
	ix, err := NewFromPreset(PDQ)
	require.NoError(t, err)
	require.Equal(t, 256, ix.HashSize())
	require.Equal(t, 16, ix.WordLength())
	require.Equal(t, 32, ix.MatchThreshold())
	require.Equal(t, 16, ix.NumSlots())
}

func TestNewFromPresetUnknown(t *testing.T) {
	_, err := NewFromPreset(Preset("bogus"))
	require.ErrorIs(t, err, ErrInputInvalid)
}

func TestUpdateAndTrainBasic(t *testing.T) {
	ix := newTestIndex(t)
	hash := "00112233aabbccdd"
	require.NoError(t, ix.Update([]string{hash}, "catA"))

	n, err := ix.Train()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, ix.Trained())
	require.Equal(t, 1, ix.Count())
}

func TestEmptyIngestTrainsToZero(t *testing.T) {
	ix := newTestIndex(t)
	require.NoError(t, ix.Update(nil, "catA"))

	n, err := ix.Train()
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, 0, ix.Count())
}

func TestDuplicateHashAcrossCategoriesMerges(t *testing.T) {
	ix := newTestIndex(t)
	hash := "00112233aabbccdd"
	require.NoError(t, ix.Update([]string{hash}, "catA"))
	require.NoError(t, ix.Update([]string{hash}, "catB"))

	n, err := ix.Train()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	results := collect(t, ix, hash, 0)
	require.Len(t, results, 1)
	require.ElementsMatch(t, []string{"catA", "catB"}, results[0].Categories)
}

func TestDuplicateHashSameCategoryIsNoOp(t *testing.T) {
	ix := newTestIndex(t)
	hash := "00112233aabbccdd"
	require.NoError(t, ix.Update([]string{hash}, "catA"))
	require.NoError(t, ix.Update([]string{hash}, "catA"))

	n, err := ix.Train()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	results := collect(t, ix, hash, 0)
	require.Len(t, results, 1)
	require.Equal(t, []string{"catA"}, results[0].Categories)
}

func TestUpdateRejectsMalformedHash(t *testing.T) {
	ix := newTestIndex(t)
	err := ix.Update([]string{"zz"}, "catA")
	require.ErrorIs(t, err, ErrInputInvalid)
}

func TestUpdatePartialBatchStagesPriorHashes(t *testing.T) {
	ix := newTestIndex(t)
	good := "00112233aabbccdd"
	err := ix.Update([]string{good, "not-hex"}, "catA")
	require.ErrorIs(t, err, ErrInputInvalid)

	n, err := ix.Train()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	results := collect(t, ix, good, 0)
	require.Len(t, results, 1)
}

func TestUpdateAfterTrainFails(t *testing.T) {
	ix := newTestIndex(t)
	require.NoError(t, ix.Update([]string{"00112233aabbccdd"}, "catA"))
	_, err := ix.Train()
	require.NoError(t, err)

	err = ix.Update([]string{"1122334455667788"}, "catB")
	require.ErrorIs(t, err, ErrStateViolation)
}

func TestQueryBeforeTrainFails(t *testing.T) {
	ix := newTestIndex(t)
	_, err := ix.Query("00112233aabbccdd", 0)
	require.ErrorIs(t, err, ErrStateViolation)
}

func TestQueryRejectsMalformedHash(t *testing.T) {
	ix := newTestIndex(t)
	require.NoError(t, ix.Update([]string{"00112233aabbccdd"}, "catA"))
	_, err := ix.Train()
	require.NoError(t, err)

	_, err = ix.Query("bogus", 0)
	require.ErrorIs(t, err, ErrInputInvalid)
}

func TestTrainIsIdempotent(t *testing.T) {
	ix := newTestIndex(t)
	require.NoError(t, ix.Update([]string{"00112233aabbccdd"}, "catA"))

	first, err := ix.Train()
	require.NoError(t, err)
	require.Equal(t, 1, first)

	second, err := ix.Train()
	require.NoError(t, err)
	require.Equal(t, 0, second)
	require.Equal(t, 1, ix.Count())
}

func TestQueryExactMatchOnly(t *testing.T) {
	ix := newTestIndex(t)
	a := "0000000000000000"
	b := "0000000000000001"
	require.NoError(t, ix.Update([]string{a, b}, "catA"))
	_, err := ix.Train()
	require.NoError(t, err)

	results := collect(t, ix, a, 0)
	require.Len(t, results, 1)
	require.Equal(t, a, results[0].Hash)
}

func TestQueryAtAndAboveMatchThresholdDispatch(t *testing.T) {
	ix := newTestIndex(t)
	target := "0000000000000000"
	// differs from target in exactly one bit per populated word, well
	// within both the MIH path (<=32) and the linear path (>32).
	near := "0000000000000001"
	require.NoError(t, ix.Update([]string{target, near}, "catA"))
	_, err := ix.Train()
	require.NoError(t, err)

	atThreshold := collect(t, ix, target, 32)
	require.Len(t, atThreshold, 2)

	aboveThreshold := collect(t, ix, target, 33)
	require.Len(t, aboveThreshold, 2)
}

func TestQueryEarlyTermination(t *testing.T) {
	ix := newTestIndex(t)
	for i := 0; i < 10; i++ {
		hash := fmt.Sprintf("%016x", i)
		require.NoError(t, ix.Update([]string{hash}, "catA"))
	}
	_, err := ix.Train()
	require.NoError(t, err)

	seq, err := ix.Query(fmt.Sprintf("%016x", 0), 64)
	require.NoError(t, err)

	var n int
	for range seq {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestListCategoriesAndCount(t *testing.T) {
	ix := newTestIndex(t)
	require.NoError(t, ix.Update([]string{"00112233aabbccdd"}, "catA"))
	require.NoError(t, ix.Update([]string{"1122334455667788"}, "catB"))
	_, err := ix.Train()
	require.NoError(t, err)

	require.Equal(t, []string{"catA", "catB"}, ix.ListCategories(nil))
	require.Equal(t, []string{"catB"}, ix.ListCategories([]int{1}))
	require.Equal(t, 2, ix.Count())
}
