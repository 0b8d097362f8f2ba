// Package nemesis compresses and decompresses 4bpp tile graphics in the Nemesis
// format used by many Sega Mega Drive games.
//
// Tiles are 8x8 pixels with four bits per pixel, so one tile is 32 bytes. Tile
// art tends to have long horizontal runs of the same color, so the data is
// first split into runs of identical nibbles (at most 8 long), and each run is
// then given a variable-length prefix code of up to 8 bits. Runs that didn't
// get a code are written inline after a six-bit escape code:
//
//		111111 ccc nnnn
//
// where ccc is the run length minus one, and nnnn is the nibble.
//
// A compressed stream looks like this:
//
//   - A two-byte big-endian header. The top bit is set if the XOR transform was
//     used, and the remaining bits give the number of tiles.
//   - The code table. A byte 0x80|N switches to nibble N. It's followed by one
//     or more pairs of bytes, each giving (count-1)<<4|length and then the code
//     itself right-aligned in the byte. The table ends with 0xFF.
//   - The bitstream, most significant bit first, zero-padded to a byte.
//
// The XOR transform replaces every byte with itself XORed with the byte four
// positions earlier, i.e. every row of a tile is XORed with the row above it.
// Vertically repetitive art turns into long runs of zeros this way. The encoder
// tries both and keeps whichever is smaller, preferring the plain encoding on a
// tie.
//
// Code lengths come from package-merge, which finds the optimal length-limited
// prefix code for a set of run frequencies. Because the table itself costs
// space, the encoder repeats this with fewer and fewer runs and keeps the
// table that gives the smallest output overall.

package nemesis
