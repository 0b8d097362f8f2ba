// Package streams provides stream wrappers that pad data to a block boundary.
//
// Compressed tile data is always a whole number of tiles, so encoders read
// their input through a [PaddedReader], which appends null bytes after the end
// of the real input. Compressed output is likewise padded to an even number of
// bytes with a [PaddedWriter] so it can be stored at a word-aligned address.

package streams
