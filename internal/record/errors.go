package record

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnsupportedIntSize = errors.New("unsupported tag size")
	ErrUnknownTag         = errors.New("unrecognized tag")
	ErrTruncated          = errors.New("truncated stream")
	ErrInvalidLength      = errors.New("invalid length")
	ErrInconsistentLength = errors.New("element count does not match dimensions")
)

// Error reports the stream offset at which decoding failed.
type Error struct {
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// fail attaches an offset to err. Errors that already carry one pass through,
// and short reads become ErrTruncated.
func fail(offset int64, err error) error {
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return &Error{Offset: offset, Err: err}
}
