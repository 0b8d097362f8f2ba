package nemesis

import (
	"fmt"
	"sort"
)

// NibbleRun is a run of between 1 and [MaxRunLength] identical nibbles.
type NibbleRun struct {
	// Nibble is the value of the nibble, 0-15.
	Nibble byte
	// Count is the number of times the nibble occurs in the run (not the number
	// of times it's repeated).
	Count byte
}

// InvalidNibbleRun is returned by [NibbleGrouper.GetNextRun] once the input is
// exhausted.
var InvalidNibbleRun = NibbleRun{Nibble: 0, Count: 0}

// Compare orders runs by nibble value, then by count. It returns a negative
// number if run sorts before other, a positive number if it sorts after, and 0
// if the two are equal.
func (run NibbleRun) Compare(other NibbleRun) int {
	if run.Nibble != other.Nibble {
		return int(run.Nibble) - int(other.Nibble)
	}
	return int(run.Count) - int(other.Count)
}

func (run NibbleRun) String() string {
	return fmt.Sprintf("%d×%X", run.Count, run.Nibble)
}

// FrequencyTable gives the number of times each run occurs in a run model.
type FrequencyTable map[NibbleRun]int64

// SortedRuns returns the runs in the table in ascending order.
func (table FrequencyTable) SortedRuns() []NibbleRun {
	runs := make([]NibbleRun, 0, len(table))
	for run := range table {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Compare(runs[j]) < 0 })
	return runs
}
