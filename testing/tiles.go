package testing

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/dargueta/nemesis"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// CreateRandomTiles returns `totalTiles` tiles of random bytes. It is guaranteed
// to either return a valid slice or fail the test and abort.
func CreateRandomTiles(t *testing.T, totalTiles uint) []byte {
	data := make([]byte, totalTiles*nemesis.TileSize)

	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to initialize %d tiles with random bytes", totalTiles)
	return data
}

// CreateSparseTiles returns `totalTiles` tiles that look like typical tile art:
// mostly a background color, with short runs of a few other colors. Each nibble
// is one pixel.
func CreateSparseTiles(t *testing.T, totalTiles uint) []byte {
	noise := CreateRandomTiles(t, totalTiles)
	data := make([]byte, len(noise))

	palette := []byte{0x0, 0x0, 0x0, 0x1, 0x2, 0xf}
	color := byte(0)
	for i, r := range noise {
		// Change color roughly every fourth pixel pair.
		if r&3 == 0 {
			color = palette[int(r>>2)%len(palette)]
		}
		data[i] = color<<4 | color
		if r&0x80 != 0 {
			data[i] = color<<4 | palette[int(r>>3)%len(palette)]
		}
	}
	return data
}

// LoadCompressedTiles takes a compressed stream and returns a stream to access
// the decompressed data.
//
//   - Writes to the stream do not affect `compressed`.
//   - The decompressed data must be exactly `totalTiles` tiles long, or the test
//     fails.
func LoadCompressedTiles(t *testing.T, compressed []byte, totalTiles uint) io.ReadWriteSeeker {
	require.Greater(t, len(compressed), 0, "compressed data is empty")

	tiles, err := nemesis.DecodeBytes(compressed)
	require.NoError(t, err)

	require.Equal(
		t,
		totalTiles*nemesis.TileSize,
		uint(len(tiles)),
		"decompressed data is wrong size",
	)
	return bytesextra.NewReadWriteSeeker(tiles)
}

// EncodeToBytes compresses `data` with the given options and fails the test if
// compression fails. The returned slice is always a copy.
func EncodeToBytes(t *testing.T, data []byte, opts *nemesis.Options) []byte {
	buffer := bytes.Buffer{}
	n, err := nemesis.EncodeWithOptions(bytes.NewReader(data), &buffer, opts)
	require.NoError(t, err, "unexpected error while compressing")
	require.EqualValues(t, buffer.Len(), n, "returned size doesn't match output")
	require.Zero(t, n%nemesis.OutputAlign, "output isn't padded")

	output := make([]byte, buffer.Len())
	copy(output, buffer.Bytes())
	return output
}
