package streams

import (
	"errors"
	"fmt"
	"io"
)

// PaddingFor returns the number of bytes that need to be added to `length` to
// make it a multiple of `blockSize`.
func PaddingFor(length, blockSize int64) int64 {
	return (blockSize - length%blockSize) % blockSize
}

// PaddedReader reads from an underlying reader until EOF, then returns null
// bytes until the total amount read is a multiple of the block size.
type PaddedReader struct {
	rd               io.Reader
	blockSize        int64
	unpaddedLength   int64
	remainingPadding int64
	sourceExhausted  bool
}

// NewPaddedReader returns a reader padding the data from `rd` to a multiple of
// `blockSize` bytes.
func NewPaddedReader(rd io.Reader, blockSize int) (*PaddedReader, error) {
	if blockSize < 1 {
		return nil, fmt.Errorf("invalid block size: %d is not positive", blockSize)
	}
	return &PaddedReader{rd: rd, blockSize: int64(blockSize)}, nil
}

func (reader *PaddedReader) Read(p []byte) (int, error) {
	numBytesRead := 0

	if !reader.sourceExhausted {
		n, err := reader.rd.Read(p)
		reader.unpaddedLength += int64(n)
		numBytesRead = n

		if err == nil {
			return numBytesRead, nil
		} else if !errors.Is(err, io.EOF) {
			// Didn't hit EOF, must've been an I/O error.
			return numBytesRead, err
		}

		reader.sourceExhausted = true
		reader.remainingPadding = PaddingFor(reader.unpaddedLength, reader.blockSize)
	}

	fillSize := int64(len(p) - numBytesRead)
	if fillSize > reader.remainingPadding {
		fillSize = reader.remainingPadding
	}
	for i := int64(0); i < fillSize; i++ {
		p[int64(numBytesRead)+i] = 0
	}
	numBytesRead += int(fillSize)
	reader.remainingPadding -= fillSize

	if reader.remainingPadding == 0 {
		return numBytesRead, io.EOF
	}
	return numBytesRead, nil
}

// UnpaddedLength returns the number of bytes read from the underlying reader so
// far, excluding padding.
func (reader *PaddedReader) UnpaddedLength() int64 {
	return reader.unpaddedLength
}

// PaddedWriter passes writes through to an underlying writer. When closed, it
// writes null bytes until the total size written is a multiple of the block
// size.
type PaddedWriter struct {
	stream       io.Writer
	blockSize    int64
	bytesWritten int64
}

// NewPaddedWriter returns a writer padding its output to a multiple of
// `blockSize` bytes.
func NewPaddedWriter(stream io.Writer, blockSize int) (*PaddedWriter, error) {
	if blockSize < 1 {
		return nil, fmt.Errorf("invalid block size: %d is not positive", blockSize)
	}
	return &PaddedWriter{stream: stream, blockSize: int64(blockSize)}, nil
}

func (writer *PaddedWriter) Write(p []byte) (int, error) {
	n, err := writer.stream.Write(p)
	writer.bytesWritten += int64(n)
	return n, err
}

// BytesWritten returns the total number of bytes written to the underlying
// stream, including any padding.
func (writer *PaddedWriter) BytesWritten() int64 {
	return writer.bytesWritten
}

// Close writes out the padding. It doesn't close the underlying stream.
func (writer *PaddedWriter) Close() error {
	padding := PaddingFor(writer.bytesWritten, writer.blockSize)
	if padding == 0 {
		return nil
	}
	_, err := writer.Write(make([]byte, padding))
	return err
}
