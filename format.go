package nemesis

// Nemesis format constants.
const (
	TileSize       = 32 // Bytes per tile; inputs are padded to a multiple of this.
	TileBits       = 8 * TileSize
	MaxTiles       = 0x7fff // Largest tile count the header can hold.
	MaxRunLength   = 8      // Longest run of identical nibbles a single code covers.
	MaxCodeLength  = 8      // Longest code the table can describe.
	OutputAlign    = 2      // Compressed streams are padded to a multiple of this.
	xorFlag        = 0x8000 // Header bit set when the XOR transform was applied.
	nibbleMarker   = 0x80   // Table byte that introduces a new nibble value.
	tableEnd       = 0xff   // Terminates the code table.
	escapeCode     = 0x3f   // 0b111111, followed by 3 bits of count-1 and a nibble.
	escapeLength   = 6
	escapeBits     = escapeLength + 3 + 4
	endOfInput     = 0xff // Synthetic nibble that closes the final run.
	escapeRunCount = 0xff // Run count marking the escape leaf of the decode trie.
)

// IsReserved reports whether the code of the given length falls into the space
// reserved for inline runs, i.e. whether its first six bits are all ones. Codes
// shorter than six bits are reserved if they consist entirely of ones.
func IsReserved(code byte, length uint8) bool {
	mask := uint(1)<<length - 1
	if length <= escapeLength {
		return uint(code) == mask
	}
	prefixMask := mask &^ (uint(1)<<(length-escapeLength) - 1)
	return uint(code)&prefixMask == prefixMask
}
