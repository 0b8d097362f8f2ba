package nemesis_test

import (
	"errors"
	"io"
	"testing"

	"github.com/dargueta/nemesis"
	"github.com/stretchr/testify/assert"
)

func TestCodecErrorWithMessage(t *testing.T) {
	newErr := nemesis.ErrMalformedHeader.WithMessage("asdfqwerty")
	assert.Equal(
		t, "Malformed header: asdfqwerty", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, nemesis.ErrMalformedHeader)
	assert.NotErrorIs(t, newErr, nemesis.ErrInvalidCode)
}

func TestCodecErrorWrap(t *testing.T) {
	originalErr := errors.New("original error")
	newErr := nemesis.ErrIOFailed.Wrap(originalErr)
	expectedMessage := "Input/output error: original error"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, nemesis.ErrIOFailed, "codec error not set as parent")
}

func TestCodecErrorKindsAreDistinct(t *testing.T) {
	kinds := []nemesis.CodecError{
		nemesis.ErrMalformedHeader,
		nemesis.ErrInvalidCode,
		nemesis.ErrIOFailed,
		nemesis.ErrInvalidArgument,
	}

	for i, kind := range kinds {
		for j, other := range kinds {
			if i == j {
				assert.ErrorIs(t, kind, other)
			} else {
				assert.NotErrorIs(t, kind, other, "%q matches %q", kind, other)
			}
		}
	}
}

func TestCodecErrorWrapUnexpectedEOF(t *testing.T) {
	err := nemesis.ErrInvalidCode.WithMessage("bitstream ended").Wrap(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, nemesis.ErrInvalidCode)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
