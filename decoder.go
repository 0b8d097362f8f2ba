package nemesis

import (
	"io"

	"github.com/icza/bitio"
)

// nibblePacker packs decoded nibbles into bytes. It stops accepting nibbles once
// the expected amount of output has been written.
type nibblePacker struct {
	bits      *bitio.Writer
	remaining int64
}

func newNibblePacker(output io.Writer, totalBytes int64) *nibblePacker {
	return &nibblePacker{
		bits:      bitio.NewWriter(output),
		remaining: 2 * totalBytes,
	}
}

func (packer *nibblePacker) done() bool {
	return packer.remaining <= 0
}

func (packer *nibblePacker) writeRun(run NibbleRun) error {
	count := int64(run.Count)
	if count > packer.remaining {
		count = packer.remaining
	}
	packer.remaining -= count

	// Write a single nibble if needed to get the remainder on a byte boundary,
	// then whole bytes.
	if count&1 != 0 {
		if err := packer.bits.WriteBits(uint64(run.Nibble), 4); err != nil {
			return err
		}
	}

	pair := uint64(run.Nibble)<<4 | uint64(run.Nibble)
	for count >>= 1; count > 0; count-- {
		if err := packer.bits.WriteBits(pair, 8); err != nil {
			return err
		}
	}
	return nil
}

func (packer *nibblePacker) Close() error {
	return packer.bits.Close()
}

// decodeHeader reads the header and code table of a compressed stream.
func decodeHeader(input io.ByteReader) (Header, *decodeTrie, []TableEntry, error) {
	header, err := readHeader(input)
	if err != nil {
		return header, nil, nil, err
	}

	entries, err := readCodeTable(input)
	if err != nil {
		return header, nil, nil, err
	}

	trie, err := buildDecodeTrie(entries)
	if err != nil {
		return header, nil, nil, err
	}
	return header, trie, entries, nil
}

// decodeInternal decodes the bitstream following the code table, writing
// exactly `header.DecompressedSize()` bytes to `output` on success.
func decodeInternal(
	input *bitio.Reader,
	output io.Writer,
	header Header,
	trie *decodeTrie,
) (int64, error) {
	counter := &countingWriter{w: output}
	var sink io.Writer = counter
	if header.Xor {
		sink = NewXorWriter(counter)
	}

	packer := newNibblePacker(sink, header.DecompressedSize())
	for !packer.done() {
		run, err := trie.readRun(input)
		if err != nil {
			return counter.n, err
		}
		if err = packer.writeRun(run); err != nil {
			return counter.n, wrapIOError(err, "writing output")
		}
	}

	if err := packer.Close(); err != nil {
		return counter.n, wrapIOError(err, "writing output")
	}
	return counter.n, nil
}

// countingWriter counts the bytes successfully written to the wrapped writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (writer *countingWriter) Write(p []byte) (int, error) {
	n, err := writer.w.Write(p)
	writer.n += int64(n)
	return n, err
}
