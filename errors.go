package nemesis

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type returned by all decoding failures. Every error
// created from one of the package-level kinds below matches that kind with
// [errors.Is], and wrapped errors additionally match the error they wrap.
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

// ErrMalformedHeader is returned when the code table of a compressed stream
// can't be turned into a prefix-free code.
var ErrMalformedHeader = rootError.WithMessage("Malformed header")

// ErrInvalidCode is returned when the bitstream contains a bit sequence that
// isn't a valid code, including when the stream ends in the middle of a code.
var ErrInvalidCode = rootError.WithMessage("Invalid code")

// ErrIOFailed wraps errors from the underlying input or output streams.
var ErrIOFailed = rootError.WithMessage("Input/output error")

var ErrInvalidArgument = rootError.WithMessage("Invalid argument")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}

// wrapIOError converts an error from one of the underlying streams into an
// [ErrIOFailed]. A premature EOF is reported as [io.ErrUnexpectedEOF] since
// every read the codec makes is for data the format requires.
func wrapIOError(err error, what string) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return ErrIOFailed.WithMessage(what).Wrap(err)
}
