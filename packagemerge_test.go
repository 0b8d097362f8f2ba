package nemesis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kraftSum(lengths LengthAssignment) float64 {
	sum := 0.0
	for _, length := range lengths {
		sum += 1.0 / float64(uint(1)<<length)
	}
	return sum
}

func TestBaseCoins__ExcludesSingletonsAndSorts(t *testing.T) {
	counts := FrequencyTable{
		{Nibble: 1, Count: 1}: 1,
		{Nibble: 2, Count: 1}: 5,
		{Nibble: 0, Count: 8}: 5,
		{Nibble: 3, Count: 2}: 9,
		{Nibble: 4, Count: 1}: 2,
	}

	assert.Equal(
		t,
		[]weightedRun{
			{Run: NibbleRun{Nibble: 3, Count: 2}, Weight: 9},
			{Run: NibbleRun{Nibble: 0, Count: 8}, Weight: 5},
			{Run: NibbleRun{Nibble: 2, Count: 1}, Weight: 5},
			{Run: NibbleRun{Nibble: 4, Count: 1}, Weight: 2},
		},
		baseCoins(counts),
	)
}

func TestSolveLengths__TooFewLeaves(t *testing.T) {
	assert.Nil(t, solveLengths(nil))
	assert.Nil(t, solveLengths([]weightedRun{{Run: NibbleRun{Nibble: 1, Count: 1}, Weight: 7}}))
}

func TestSolveLengths__Small(t *testing.T) {
	a := NibbleRun{Nibble: 0, Count: 1}
	b := NibbleRun{Nibble: 1, Count: 1}
	c := NibbleRun{Nibble: 2, Count: 1}

	lengths := solveLengths([]weightedRun{{a, 5}, {b, 3}, {c, 2}})
	assert.Equal(t, LengthAssignment{a: 1, b: 2, c: 2}, lengths)

	lengths = solveLengths([]weightedRun{{a, 100}, {b, 2}})
	assert.Equal(t, LengthAssignment{a: 1, b: 1}, lengths)
}

func TestSolveLengths__LengthLimited(t *testing.T) {
	// Fibonacci weights give an unrestricted Huffman code longer than 8 bits.
	var leaves []weightedRun
	weights := []int64{2, 3}
	for len(weights) < 12 {
		weights = append(weights, weights[len(weights)-1]+weights[len(weights)-2])
	}
	for i := len(weights) - 1; i >= 0; i-- {
		leaves = append(
			leaves,
			weightedRun{Run: NibbleRun{Nibble: byte(i), Count: 1}, Weight: weights[i]},
		)
	}

	lengths := solveLengths(leaves)
	require.Len(t, lengths, len(leaves))
	for run, length := range lengths {
		assert.GreaterOrEqual(t, length, uint8(1), "length of %s", run)
		assert.LessOrEqual(t, length, uint8(MaxCodeLength), "length of %s", run)
	}
	assert.InDelta(t, 1.0, kraftSum(lengths), 1e-9, "code is not complete")
}

func TestSolveLengths__RandomWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for n := 2; n <= 16*MaxRunLength; n++ {
		leaves := make([]weightedRun, n)
		for i := range leaves {
			leaves[i] = weightedRun{
				Run:    NibbleRun{Nibble: byte(i % 16), Count: byte(i/16) + 1},
				Weight: 2 + rng.Int63n(1000),
			}
		}
		arena := newCoinArena(0)
		handles := make([]coinHandle, n)
		for i, leaf := range leaves {
			handles[i] = arena.newLeaf(leaf.Run, leaf.Weight)
		}
		arena.sortByWeight(handles)
		for i, handle := range handles {
			leaves[i] = weightedRun{Run: arena.coins[handle].run, Weight: arena.coins[handle].weight}
		}

		lengths := solveLengths(leaves)
		require.Len(t, lengths, n, "%d leaves", n)
		assert.InDelta(t, 1.0, kraftSum(lengths), 1e-9, "%d leaves", n)

		// Heavier runs never get longer codes than lighter ones.
		for i := 1; i < n; i++ {
			if leaves[i-1].Weight == leaves[i].Weight {
				continue
			}
			assert.LessOrEqual(
				t,
				lengths[leaves[i-1].Run],
				lengths[leaves[i].Run],
				"%d leaves, index %d",
				n,
				i,
			)
		}
	}
}
