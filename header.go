package nemesis

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Header is the two-byte header at the start of every compressed stream.
type Header struct {
	// Xor is true if the decompressed data must be run through [UndiffLanes].
	Xor bool
	// Tiles is the size of the decompressed data, in units of [TileSize] bytes.
	Tiles int
}

// DecompressedSize returns the size of the decompressed data, in bytes.
func (header Header) DecompressedSize() int64 {
	return int64(header.Tiles) * TileSize
}

func (header Header) encode() [2]byte {
	value := uint16(header.Tiles) & MaxTiles
	if header.Xor {
		value |= xorFlag
	}

	var raw [2]byte
	binary.BigEndian.PutUint16(raw[:], value)
	return raw
}

func writeHeader(output io.Writer, header Header) error {
	raw := header.encode()
	_, err := output.Write(raw[:])
	return err
}

func readHeader(input io.ByteReader) (Header, error) {
	var raw [2]byte
	for i := range raw {
		b, err := input.ReadByte()
		if err != nil {
			return Header{}, wrapIOError(err, "reading header")
		}
		raw[i] = b
	}

	value := binary.BigEndian.Uint16(raw[:])
	return Header{
		Xor:   value&xorFlag != 0,
		Tiles: int(value & MaxTiles),
	}, nil
}

// writeCodeTable writes the table's entries followed by the terminator. A
// nibble marker byte is only written when the nibble differs from the previous
// entry's.
func writeCodeTable(output io.Writer, table CodeTable) error {
	entries := table.Entries()
	buffer := make([]byte, 0, 3*len(entries)+1)

	lastNibble := -1
	for _, entry := range entries {
		if int(entry.Run.Nibble) != lastNibble {
			buffer = append(buffer, nibbleMarker|entry.Run.Nibble)
			lastNibble = int(entry.Run.Nibble)
		}
		buffer = append(
			buffer,
			(entry.Run.Count-1)<<4|entry.Code.Length,
			entry.Code.Bits,
		)
	}
	buffer = append(buffer, tableEnd)

	_, err := output.Write(buffer)
	return err
}

// readCodeTable reads table entries up to and including the terminator. The
// entries aren't validated; that happens when they're inserted into the decode
// trie.
func readCodeTable(input io.ByteReader) ([]TableEntry, error) {
	var entries []TableEntry
	nibble := byte(0)

	for {
		spec, err := input.ReadByte()
		if err != nil {
			return nil, wrapIOError(err, "reading code table")
		}
		if spec == tableEnd {
			return entries, nil
		}

		if spec&nibbleMarker != 0 {
			nibble = spec & 0x0f
			spec, err = input.ReadByte()
			if err != nil {
				return nil, wrapIOError(
					err, fmt.Sprintf("reading code table entry for nibble %X", nibble))
			}
		}

		code, err := input.ReadByte()
		if err != nil {
			return nil, wrapIOError(
				err, fmt.Sprintf("reading code for nibble %X", nibble))
		}

		entries = append(
			entries,
			TableEntry{
				Run:  NibbleRun{Nibble: nibble, Count: (spec&0x70)>>4 + 1},
				Code: Code{Bits: code, Length: spec & 0x0f},
			},
		)
	}
}
