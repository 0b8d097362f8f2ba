package nemesis_test

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/dargueta/nemesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffLanes__XorsWithFourBytesEarlier(t *testing.T) {
	in := []byte{1, 2, 3, 4, 1, 2, 3, 5, 0xff, 0, 0, 0}
	out := make([]byte, len(in))

	nemesis.DiffLanes(nemesis.LaneState{}, 0, in, out)
	assert.Equal(
		t,
		[]byte{1, 2, 3, 4, 0, 0, 0, 1, 0xfe, 2, 3, 5},
		out,
	)
}

func TestDiffLanes__DoesNotModifyState(t *testing.T) {
	state := nemesis.LaneState{9, 9, 9, 9}
	out := make([]byte, 2)
	newState := nemesis.DiffLanes(state, 2, []byte{1, 2}, out)

	assert.Equal(t, nemesis.LaneState{9, 9, 9, 9}, state)
	assert.Equal(t, nemesis.LaneState{9, 9, 1, 2}, newState)
	assert.Equal(t, []byte{8, 11}, out)
}

func TestUndiffLanes__InvertsDiffLanes(t *testing.T) {
	original := make([]byte, 203)
	_, err := rand.Read(original)
	require.NoError(t, err)

	diffed := make([]byte, len(original))
	nemesis.DiffLanes(nemesis.LaneState{}, 0, original, diffed)

	// Undo the transform in uneven chunks to make sure the lane position is
	// carried across calls.
	restored := make([]byte, len(original))
	state := nemesis.LaneState{}
	for start := 0; start < len(diffed); start += 7 {
		end := start + 7
		if end > len(diffed) {
			end = len(diffed)
		}
		state = nemesis.UndiffLanes(state, int64(start), diffed[start:end], restored[start:end])
	}
	assert.Equal(t, original, restored)
}

func TestXorReaderWriterRoundTrip(t *testing.T) {
	original := make([]byte, 1000)
	_, err := rand.Read(original)
	require.NoError(t, err)

	diffed, err := io.ReadAll(nemesis.NewXorReader(bytes.NewReader(original)))
	require.NoError(t, err)
	assert.Equal(t, original[:4], diffed[:4], "first four bytes must be unchanged")

	restored := bytes.Buffer{}
	writer := nemesis.NewXorWriter(&restored)
	for i := 0; i < len(diffed); {
		// Mix single-byte and bulk writes.
		if i%3 == 0 {
			require.NoError(t, writer.WriteByte(diffed[i]))
			i++
			continue
		}
		end := i + 13
		if end > len(diffed) {
			end = len(diffed)
		}
		n, err := writer.Write(diffed[i:end])
		require.NoError(t, err)
		require.Equal(t, end-i, n)
		i = end
	}

	assert.Equal(t, original, restored.Bytes())
}
