package nemesis

import (
	"bufio"
	"errors"
	"io"
)

// NibbleGrouper splits a byte stream into nibbles, high nibble first, and
// groups consecutive identical nibbles into runs of at most [MaxRunLength].
//
// The segmentation is greedy: a run is closed as soon as the next nibble
// differs or the run is full.
type NibbleGrouper struct {
	rd io.ByteReader
	// pending is the nibble that has been read but not yet put into a run, or
	// -1 if there is none.
	pending int
	// lowNibble holds the low half of the last byte read, or -1 if the next
	// nibble requires reading another byte.
	lowNibble int
	done      bool
}

// NewNibbleGrouper creates a grouper reading from `rd`. If `rd` doesn't
// implement [io.ByteReader] it's wrapped in a [bufio.Reader].
func NewNibbleGrouper(rd io.Reader) *NibbleGrouper {
	byteReader, ok := rd.(io.ByteReader)
	if !ok {
		byteReader = bufio.NewReader(rd)
	}
	return &NibbleGrouper{rd: byteReader, pending: -1, lowNibble: -1}
}

// nextNibble returns the next nibble of the input. When the input is exhausted
// it returns the sentinel [endOfInput] once, so the final run is always closed.
func (grouper *NibbleGrouper) nextNibble() (int, error) {
	if grouper.lowNibble >= 0 {
		nibble := grouper.lowNibble
		grouper.lowNibble = -1
		return nibble, nil
	}

	currentByte, err := grouper.rd.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return endOfInput, nil
		}
		return 0, err
	}

	grouper.lowNibble = int(currentByte & 0x0f)
	return int(currentByte >> 4), nil
}

// GetNextRun returns the next [NibbleRun] in the stream. Once the input is
// exhausted it returns [InvalidNibbleRun] and [io.EOF].
func (grouper *NibbleGrouper) GetNextRun() (NibbleRun, error) {
	if grouper.done {
		return InvalidNibbleRun, io.EOF
	}

	first := grouper.pending
	if first < 0 {
		var err error
		first, err = grouper.nextNibble()
		if err != nil {
			return InvalidNibbleRun, err
		}
	}
	if first == endOfInput {
		grouper.done = true
		return InvalidNibbleRun, io.EOF
	}

	run := NibbleRun{Nibble: byte(first), Count: 1}
	for {
		next, err := grouper.nextNibble()
		if err != nil {
			return InvalidNibbleRun, err
		}
		if next != first || run.Count >= MaxRunLength {
			// Hit a different nibble or the run is full; keep the nibble for the
			// next call.
			grouper.pending = next
			return run, nil
		}
		run.Count++
	}
}

// RunModel is the result of run-length modeling an input: the sequence of runs
// that reconstructs the input, and how often each run occurs.
type RunModel struct {
	Source []NibbleRun
	Counts FrequencyTable
}

// BuildRunModel groups all of the input into nibble runs.
func BuildRunModel(input io.Reader) (RunModel, error) {
	grouper := NewNibbleGrouper(input)
	model := RunModel{Counts: FrequencyTable{}}

	for {
		run, err := grouper.GetNextRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return model, nil
			}
			return model, err
		}
		model.Source = append(model.Source, run)
		model.Counts[run]++
	}
}

// EscapeOnlySize returns the size in bits of the model's bitstream if no run had
// its own code, i.e. if every run were written inline.
func (model RunModel) EscapeOnlySize() int64 {
	return int64(len(model.Source)) * escapeBits
}
