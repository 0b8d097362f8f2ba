package nemesis

import "io"

// LaneState holds the running state of the four interleaved XOR lanes. Byte i
// of a stream belongs to lane i % 4. The zero value is the initial state.
type LaneState [4]byte

// DiffLanes applies the forward transform to `in`, writing the result to `out`,
// which must be at least as long as `in`. Each output byte is the input byte
// XORed with the input byte four positions earlier. `pos` is the stream offset
// of in[0]. The updated state is returned; the argument isn't modified.
func DiffLanes(state LaneState, pos int64, in, out []byte) LaneState {
	for i, b := range in {
		lane := (pos + int64(i)) & 3
		out[i] = b ^ state[lane]
		state[lane] = b
	}
	return state
}

// UndiffLanes inverts [DiffLanes]: each input byte is XORed into its lane and
// the new lane value is emitted.
func UndiffLanes(state LaneState, pos int64, in, out []byte) LaneState {
	for i, b := range in {
		lane := (pos + int64(i)) & 3
		state[lane] ^= b
		out[i] = state[lane]
	}
	return state
}

// XorReader applies [DiffLanes] to everything read from the wrapped reader.
type XorReader struct {
	rd    io.Reader
	state LaneState
	pos   int64
}

func NewXorReader(rd io.Reader) *XorReader {
	return &XorReader{rd: rd}
}

func (reader *XorReader) Read(p []byte) (int, error) {
	n, err := reader.rd.Read(p)
	reader.state = DiffLanes(reader.state, reader.pos, p[:n], p[:n])
	reader.pos += int64(n)
	return n, err
}

// XorWriter applies [UndiffLanes] to everything written to it before passing
// it on to the wrapped writer.
type XorWriter struct {
	w     io.Writer
	state LaneState
	pos   int64
	buf   []byte
}

func NewXorWriter(w io.Writer) *XorWriter {
	return &XorWriter{w: w}
}

func (writer *XorWriter) Write(p []byte) (int, error) {
	if cap(writer.buf) < len(p) {
		writer.buf = make([]byte, len(p))
	}
	out := writer.buf[:len(p)]

	// The lane state only advances over bytes the wrapped writer accepted.
	newState := UndiffLanes(writer.state, writer.pos, p, out)
	n, err := writer.w.Write(out)
	if n == len(p) {
		writer.state = newState
	} else {
		writer.state = UndiffLanes(writer.state, writer.pos, p[:n], out[:n])
	}
	writer.pos += int64(n)
	return n, err
}

// WriteByte lets bit-level writers emit bytes without an intermediate buffer.
func (writer *XorWriter) WriteByte(b byte) error {
	var out [1]byte
	newState := UndiffLanes(writer.state, writer.pos, []byte{b}, out[:])
	if _, err := writer.w.Write(out[:]); err != nil {
		return err
	}
	writer.state = newState
	writer.pos++
	return nil
}
