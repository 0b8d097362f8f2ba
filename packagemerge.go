package nemesis

import "sort"

// The optimal length-limited prefix code is found by mapping the problem onto
// the Coin Collector's problem and solving that with the package-merge
// algorithm. Every nibble run is a coin whose numismatic value is the number of
// times the run occurs. There is one copy of each coin per allowed code length.

// coinHandle identifies a coin in a coinArena.
type coinHandle int32

const noCoin coinHandle = -1

// coin is either a leaf holding a nibble run, or a package of two other coins.
type coin struct {
	run    NibbleRun
	weight int64
	clear  coinHandle
	set    coinHandle
}

func (c *coin) isLeaf() bool {
	return c.clear == noCoin && c.set == noCoin
}

// coinArena owns every coin created while solving a single trial.
type coinArena struct {
	coins []coin
}

func newCoinArena(sizeHint int) *coinArena {
	return &coinArena{coins: make([]coin, 0, sizeHint)}
}

func (arena *coinArena) newLeaf(run NibbleRun, weight int64) coinHandle {
	arena.coins = append(
		arena.coins, coin{run: run, weight: weight, clear: noCoin, set: noCoin})
	return coinHandle(len(arena.coins) - 1)
}

func (arena *coinArena) newPackage(clear, set coinHandle) coinHandle {
	arena.coins = append(
		arena.coins,
		coin{
			weight: arena.coins[clear].weight + arena.coins[set].weight,
			clear:  clear,
			set:    set,
		},
	)
	return coinHandle(len(arena.coins) - 1)
}

// sortByWeight sorts coins heaviest first. Coins of equal weight keep their
// relative order so the result is deterministic.
func (arena *coinArena) sortByWeight(handles []coinHandle) {
	sort.SliceStable(handles, func(i, j int) bool {
		return arena.coins[handles[i]].weight > arena.coins[handles[j]].weight
	})
}

// tally adds one to the length of every leaf reachable from `root`.
func (arena *coinArena) tally(root coinHandle, lengths LengthAssignment) {
	stack := []coinHandle{root}
	for len(stack) > 0 {
		handle := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		current := &arena.coins[handle]
		if current.isLeaf() {
			lengths[current.run]++
			continue
		}
		if current.set != noCoin {
			stack = append(stack, current.set)
		}
		if current.clear != noCoin {
			stack = append(stack, current.clear)
		}
	}
}

// weightedRun is a nibble run along with the number of times it occurs.
type weightedRun struct {
	Run    NibbleRun
	Weight int64
}

// LengthAssignment maps nibble runs to the bit length of their code.
type LengthAssignment map[NibbleRun]uint8

// baseCoins returns the runs worth considering for a code of their own, sorted
// by descending frequency. Runs that occur only once are excluded, as giving
// them a code would only make the output bigger.
func baseCoins(counts FrequencyTable) []weightedRun {
	coins := make([]weightedRun, 0, len(counts))
	for _, run := range counts.SortedRuns() {
		if weight := counts[run]; weight > 1 {
			coins = append(coins, weightedRun{Run: run, Weight: weight})
		}
	}

	sort.SliceStable(coins, func(i, j int) bool {
		return coins[i].Weight > coins[j].Weight
	})
	return coins
}

// solveLengths computes the optimal code length of each of `leaves`, none of
// which will exceed [MaxCodeLength]. `leaves` must be sorted by descending
// weight. Fewer than two leaves can't form a code; nil is returned for those.
func solveLengths(leaves []weightedRun) LengthAssignment {
	if len(leaves) < 2 {
		return nil
	}

	arena := newCoinArena(4 * MaxCodeLength * len(leaves))
	base := make([]coinHandle, len(leaves))
	for i, leaf := range leaves {
		base[i] = arena.newLeaf(leaf.Run, leaf.Weight)
	}

	// The total face value of the coins we need is n-1, expressed in units of
	// the smallest denomination.
	target := (len(base) - 1) << MaxCodeLength
	solution := make([]coinHandle, 0, MaxCodeLength)
	current := append([]coinHandle(nil), base...)

	for denomination := 0; target != 0; denomination++ {
		lowestBit := target & -target

		// If the current denomination is needed to reach the target, take the
		// cheapest coin of this denomination.
		if 1<<denomination == lowestBit {
			solution = append(solution, current[len(current)-1])
			current = current[:len(current)-1]
			target -= lowestBit
		}

		// Coins of every code length 1 to 8 exist, so a fresh copy of the leaves
		// is mixed in with the packages for all but the last length.
		next := make([]coinHandle, 0, len(base)+len(current)/2)
		if denomination < MaxCodeLength-1 {
			next = append(next, base...)
		}

		// Package the remaining coins in pairs, cheapest first.
		for len(current) > 1 {
			set := current[len(current)-1]
			clear := current[len(current)-2]
			current = current[:len(current)-2]
			next = append(next, arena.newPackage(clear, set))
		}

		arena.sortByWeight(next)
		current = next
	}

	// A run's code length is the number of times its coin was used.
	lengths := LengthAssignment{}
	for _, handle := range solution {
		arena.tally(handle, lengths)
	}
	return lengths
}
