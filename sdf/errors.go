package sdf

import (
	"errors"
	"fmt"

	"github.com/juanjosegarciaripoll/tensor/internal/record"
)

// Decode errors; reported wrapped in a *DecodeError.
var (
	ErrUnsupportedIntSize = record.ErrUnsupportedIntSize
	ErrUnknownTag         = record.ErrUnknownTag
	ErrTruncated          = record.ErrTruncated
	ErrInvalidLength      = record.ErrInvalidLength
	ErrInconsistentLength = record.ErrInconsistentLength
	ErrDuplicateField     = errors.New("duplicate field")
)

// Common errors
var (
	ErrFieldNotFound    = errors.New("field not found")
	ErrNotTensor        = errors.New("field is not a tensor")
	ErrNotList          = errors.New("field is not a list")
	ErrEmptyTensor      = errors.New("tensor has no elements")
	ErrNotScalar        = errors.New("tensor is not a scalar")
	ErrNotInteger       = errors.New("value is not an integer")
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrKeyMismatch      = errors.New("key mismatch")
	ErrUnexpectedRecord = errors.New("unexpected record")
	ErrClosed           = errors.New("file is closed")
	ErrInvalidOption    = errors.New("invalid option")
)

// DecodeError reports a malformed container.
type DecodeError struct {
	Path   string
	Offset int64 // stream offset of the failing read, -1 if unknown
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decodeError attaches path to an error from the record layer.
func decodeError(path string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	var re *record.Error
	if errors.As(err, &re) {
		return &DecodeError{Path: path, Offset: re.Offset, Err: re.Err}
	}
	return &DecodeError{Path: path, Offset: -1, Err: err}
}

// ShapeMismatchError reports a field that cannot be stacked because its
// shape or kind differs from the first dataset's.
type ShapeMismatchError struct {
	Field  string
	Source string // path of the offending dataset
	Index  int    // position of the offending dataset
	Want   string
	Got    string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("field %q: %s (dataset %d) has %s, expected %s", e.Field, e.Source, e.Index, e.Got, e.Want)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }

// KeyMismatchError reports datasets whose field names differ.
type KeyMismatchError struct {
	Key     string
	Source  string // path of the offending dataset
	Index   int    // position of the offending dataset
	Missing bool   // Key is missing from Source; otherwise it is extra
}

func (e *KeyMismatchError) Error() string {
	if e.Missing {
		return fmt.Sprintf("field %q missing from %s (dataset %d)", e.Key, e.Source, e.Index)
	}
	return fmt.Sprintf("unexpected field %q in %s (dataset %d)", e.Key, e.Source, e.Index)
}

func (e *KeyMismatchError) Is(target error) bool { return target == ErrKeyMismatch }
