package nemesis

import (
	"fmt"
	"sort"
)

// Code is a single prefix code, right-aligned in Bits.
type Code struct {
	Bits   byte
	Length uint8
}

func (code Code) String() string {
	return fmt.Sprintf("%0*b", int(code.Length), code.Bits)
}

// TableEntry associates a nibble run with its code.
type TableEntry struct {
	Run  NibbleRun
	Code Code
}

// CodeTable maps nibble runs to their codes. Runs that aren't in the table are
// written inline, after the reserved escape code.
type CodeTable map[NibbleRun]Code

// Entries returns the table's entries sorted by nibble run. This is the order
// they're stored in the header.
func (table CodeTable) Entries() []TableEntry {
	entries := make([]TableEntry, 0, len(table))
	for run, code := range table {
		entries = append(entries, TableEntry{Run: run, Code: code})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Run.Compare(entries[j].Run) < 0
	})
	return entries
}

// sizedRun is sorted by code length, then frequency, then nibble run, and in
// that order is matched up with the canonical codes.
type sizedRun struct {
	length    uint8
	frequency int64
	run       NibbleRun
}

// assignCanonical builds a canonical prefix code from the code lengths. Codes
// that would fall in the reserved escape space are pushed to the next length,
// and any runs left without a code once all lengths are used up are dropped
// from the table.
func assignCanonical(lengths LengthAssignment, counts FrequencyTable) CodeTable {
	sized := make([]sizedRun, 0, len(lengths))
	var countByLength [MaxCodeLength + 1]int
	for run, length := range lengths {
		sized = append(sized, sizedRun{length: length, frequency: counts[run], run: run})
		countByLength[length]++
	}
	sort.Slice(sized, func(i, j int) bool {
		a, b := sized[i], sized[j]
		if a.length != b.length {
			return a.length < b.length
		}
		if a.frequency != b.frequency {
			return a.frequency < b.frequency
		}
		return a.run.Compare(b.run) < 0
	})

	// baseCode is the code of the first run with a given length. carry is the
	// number of runs demoted from the previous length.
	codes := make([]Code, 0, len(sized))
	baseCode := byte(0)
	carry := 0
	for length := uint8(1); length <= MaxCodeLength; length++ {
		count := countByLength[length] + carry
		carry = 0

		for k := 0; k < count; k++ {
			code := baseCode + byte(k)
			if IsReserved(code, length) {
				carry = count - k
				count = k
				break
			}
			codes = append(codes, Code{Bits: code, Length: length})
		}
		baseCode = (baseCode + byte(count)) << 1
	}

	table := make(CodeTable, len(codes))
	for i := 0; i < len(sized) && i < len(codes); i++ {
		table[sized[i].run] = codes[i]
	}
	return table
}

// EstimateSize returns the exact number of bytes the header, code table, and
// bitstream take up if `counts` is encoded with `table`. This doesn't include
// padding the output to [OutputAlign].
func EstimateSize(table CodeTable, counts FrequencyTable) int64 {
	// Two header bytes and the table terminator.
	bits := int64(3 * 8)

	lastNibble := -1
	for _, entry := range table.Entries() {
		// Each new nibble needs a marker byte.
		if int(entry.Run.Nibble) != lastNibble {
			bits += 8
			lastNibble = int(entry.Run.Nibble)
		}
		bits += 2*8 + counts[entry.Run]*int64(entry.Code.Length)
	}

	for run, frequency := range counts {
		if _, ok := table[run]; !ok {
			bits += escapeBits * frequency
		}
	}
	return (bits + 7) / 8
}

// BuildCodeTable finds the code table that gives the smallest output for the
// given run frequencies, and returns it along with its estimated size.
//
// The length solver is run repeatedly, each time leaving out the least frequent
// run that's still in the candidate set. Every trial is independent; the one
// with the strictly smallest size wins, so ties go to the larger table. If no
// trial beats writing every run inline, the table is empty.
//
// Only runs that occur more than once are candidates, as giving a code to a run
// occurring once can never make the output smaller.
func BuildCodeTable(counts FrequencyTable) (CodeTable, int64) {
	bestTable := CodeTable{}
	bestSize := EstimateSize(bestTable, counts)

	candidates := baseCoins(counts)
	for ; len(candidates) > 0; candidates = candidates[:len(candidates)-1] {
		var table CodeTable
		if len(candidates) == 1 {
			// Package-merge needs at least two coins. A lone run gets a one-bit
			// code, which is optimal.
			table = CodeTable{candidates[0].Run: Code{Bits: 0, Length: 1}}
		} else {
			table = assignCanonical(solveLengths(candidates), counts)
		}

		size := EstimateSize(table, counts)
		if size < bestSize {
			bestTable = table
			bestSize = size
		}
	}
	return bestTable, bestSize
}
