package nemesis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dargueta/nemesis/utilities/streams"
	"github.com/icza/bitio"
	"github.com/noxer/bytewriter"
	"github.com/xaionaro-go/bytesextra"
	"golang.org/x/sync/errgroup"
)

// Encode compresses all of `input` using the default options and writes the
// result to `output`. See [EncodeWithOptions].
func Encode(input io.Reader, output io.Writer) (int64, error) {
	return EncodeWithOptions(input, output, nil)
}

// EncodeWithOptions compresses all of `input` and writes the result to `output`.
// Options nil means [DefaultOptions].
//
// The input is padded with null bytes to a multiple of [TileSize]. The header
// records the unpadded size rounded down to a whole tile, so only inputs that
// are already a multiple of [TileSize] decompress to exactly the original data.
//
// The returned int64 gives the number of bytes written to the output stream,
// including padding to [OutputAlign]. If an error occurred, the value is
// undefined and should not be used.
func EncodeWithOptions(input io.Reader, output io.Writer, opts *Options) (int64, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	paddedInput, err := streams.NewPaddedReader(input, TileSize)
	if err != nil {
		return 0, ErrInvalidArgument.Wrap(err)
	}

	// Both encodings replay the input from the beginning, so it has to be
	// buffered in its entirety.
	padded, err := io.ReadAll(paddedInput)
	if err != nil {
		return 0, wrapIOError(err, "reading input")
	}

	inputLength := paddedInput.UnpaddedLength()
	if inputLength/TileSize > MaxTiles {
		return 0, ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"input is %d bytes, can't compress more than %d",
				inputLength,
				MaxTiles*TileSize,
			),
		)
	}

	chosen, err := selectEncoding(padded, inputLength, opts)
	if err != nil {
		return 0, err
	}

	paddedOutput, err := streams.NewPaddedWriter(output, OutputAlign)
	if err != nil {
		return 0, ErrInvalidArgument.Wrap(err)
	}
	if _, err = chosen.WriteTo(paddedOutput); err != nil {
		return paddedOutput.BytesWritten(), wrapIOError(err, "writing output")
	}
	if err = paddedOutput.Close(); err != nil {
		return paddedOutput.BytesWritten(), wrapIOError(err, "writing output")
	}
	return paddedOutput.BytesWritten(), nil
}

// selectEncoding runs the encodings allowed by `opts` and returns the smallest
// result. If both are the same size, the normal encoding is preferred.
func selectEncoding(padded []byte, inputLength int64, opts *Options) (*bytes.Buffer, error) {
	switch opts.Mode {
	case ModeNormal:
		return encodeCandidate(bytesextra.NewReadWriteSeeker(padded), false, inputLength)
	case ModeXor:
		return encodeCandidate(bytesextra.NewReadWriteSeeker(padded), true, inputLength)
	case ModeAuto:
	default:
		return nil, ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown encoding mode %d", int(opts.Mode)))
	}

	var normalOutput, xorOutput *bytes.Buffer
	if opts.Parallel {
		group := errgroup.Group{}
		group.Go(func() error {
			var err error
			normalOutput, err = encodeCandidate(
				bytesextra.NewReadWriteSeeker(padded), false, inputLength)
			return err
		})
		group.Go(func() error {
			var err error
			xorOutput, err = encodeCandidate(
				bytesextra.NewReadWriteSeeker(padded), true, inputLength)
			return err
		})
		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		source := bytesextra.NewReadWriteSeeker(padded)

		var err error
		normalOutput, err = encodeCandidate(source, false, inputLength)
		if err != nil {
			return nil, err
		}

		// Rewind the input and compress it again using the XOR encoding.
		if _, err = source.Seek(0, io.SeekStart); err != nil {
			return nil, wrapIOError(err, "rewinding input")
		}
		xorOutput, err = encodeCandidate(source, true, inputLength)
		if err != nil {
			return nil, err
		}
	}

	if normalOutput.Len() <= xorOutput.Len() {
		return normalOutput, nil
	}
	return xorOutput, nil
}

// EncodeBytes is a convenience function wrapping [Encode]. It functions
// identically, except it returns the compressed data in a new byte slice.
func EncodeBytes(data []byte) ([]byte, error) {
	output := bytes.Buffer{}
	_, err := Encode(bytes.NewReader(data), &output)
	if err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

// Decode decompresses a single compressed stream from `input` and writes the
// result to `output`. Only as much of `input` is used as the stream requires,
// though more may be buffered from it.
//
// The returned int64 gives the number of bytes written to the output, i.e. the
// decompressed size. On failure the output may have received part of the data;
// use [DecodeBytes] to get all-or-nothing behavior.
func Decode(input io.Reader, output io.Writer) (int64, error) {
	bits := bitio.NewReader(input)

	header, trie, _, err := decodeHeader(bits)
	if err != nil {
		return 0, err
	}
	return decodeInternal(bits, output, header, trie)
}

// DecodeBytes decompresses `data` and returns the decompressed bytes. On failure
// no data is returned.
func DecodeBytes(data []byte) ([]byte, error) {
	bits := bitio.NewReader(bytes.NewReader(data))

	header, trie, _, err := decodeHeader(bits)
	if err != nil {
		return nil, err
	}

	decompressed := make([]byte, header.DecompressedSize())
	_, err = decodeInternal(bits, bytewriter.New(decompressed), header, trie)
	if err != nil {
		return nil, err
	}
	return decompressed, nil
}

// ReadCodeTable reads the header and code table of a compressed stream without
// decoding the bitstream. The table is validated the same way [Decode]
// validates it.
func ReadCodeTable(input io.Reader) (Header, CodeTable, error) {
	bits := bitio.NewReader(input)

	header, _, entries, err := decodeHeader(bits)
	if err != nil {
		return header, nil, err
	}

	table := make(CodeTable, len(entries))
	for _, entry := range entries {
		table[entry.Run] = entry.Code
	}
	return header, table, nil
}
