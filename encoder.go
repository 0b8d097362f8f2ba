package nemesis

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// encodeInternal compresses the entire (padded) input with a single encoding.
// `xor` only sets the header flag; the caller is responsible for transforming
// the input. `inputLength` is the unpadded input size, used for the tile count.
func encodeInternal(input io.Reader, output io.Writer, xor bool, inputLength int64) error {
	model, err := BuildRunModel(input)
	if err != nil {
		return wrapIOError(err, "reading input")
	}

	table, _ := BuildCodeTable(model.Counts)

	header := Header{Xor: xor, Tiles: int(inputLength / TileSize)}
	if err = writeHeader(output, header); err != nil {
		return wrapIOError(err, "writing header")
	}
	if err = writeCodeTable(output, table); err != nil {
		return wrapIOError(err, "writing code table")
	}
	if err = writeBitstream(output, model.Source, table); err != nil {
		return wrapIOError(err, "writing bitstream")
	}
	return nil
}

// writeBitstream writes the code of each run in `source`, or the escape code
// followed by the run itself for runs that aren't in the table. The last byte is
// padded with zero bits.
func writeBitstream(output io.Writer, source []NibbleRun, table CodeTable) error {
	bits := bitio.NewWriter(output)

	for _, run := range source {
		if code, ok := table[run]; ok {
			if err := bits.WriteBits(uint64(code.Bits), code.Length); err != nil {
				return err
			}
			continue
		}

		inline := uint64(escapeCode)<<7 | uint64(run.Count-1)<<4 | uint64(run.Nibble)
		if err := bits.WriteBits(inline, escapeBits); err != nil {
			return err
		}
	}
	return bits.Close()
}

// encodeCandidate runs one complete encoding of `padded` into a new buffer.
func encodeCandidate(source io.Reader, xor bool, inputLength int64) (*bytes.Buffer, error) {
	if xor {
		source = NewXorReader(source)
	}

	output := &bytes.Buffer{}
	err := encodeInternal(source, output, xor, inputLength)
	return output, err
}
