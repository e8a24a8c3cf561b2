package record

import (
	"fmt"
	"math"

	"github.com/juanjosegarciaripoll/tensor/ndarray"
)

// maxPrealloc caps the capacity reserved up front for a list whose length
// comes from the stream.
const maxPrealloc = 1024

// Decode reads the payload introduced by tag. With skip set the payload is
// walked, element buffers are seeked over, and the returned value is nil.
func (s *Session) Decode(tag Tag, skip bool) (Value, error) {
	switch tag.Code {
	case CodeRealTensor, CodeComplexTensor:
		t, err := s.DecodeTensor(tag.Code == CodeComplexTensor, skip)
		if err != nil || t == nil {
			return nil, err
		}
		return t, nil
	case CodeRealList, CodeComplexList:
		l, err := s.DecodeList(tag.Code == CodeComplexList, skip)
		if err != nil || skip {
			return nil, err
		}
		return l, nil
	default:
		return nil, fail(tag.Offset, fmt.Errorf("%w: code %d for %q", ErrUnknownTag, int64(tag.Code), tag.Name))
	}
}

// readCount reads a non-negative integer.
func (s *Session) readCount(what string) (int64, error) {
	at := s.r.Pos()
	n, err := s.r.ReadInt()
	if err != nil {
		return 0, fail(at, err)
	}
	if n < 0 {
		return 0, fail(at, fmt.Errorf("%w: %s %d", ErrInvalidLength, what, n))
	}
	return n, nil
}

// DecodeTensor reads a tensor payload. The element count is taken from the
// stream; it and the dimensions are only checked when the tensor is
// materialized.
func (s *Session) DecodeTensor(isComplex, skip bool) (*Tensor, error) {
	rank, err := s.readCount("rank")
	if err != nil {
		return nil, err
	}
	dimsAt := s.r.Pos()
	raw := make([]int64, 0, min(rank, maxPrealloc))
	for i := int64(0); i < rank; i++ {
		d, err := s.readCount("dimension")
		if err != nil {
			return nil, err
		}
		raw = append(raw, d)
	}

	at := s.r.Pos()
	length, err := s.readCount("element count")
	if err != nil {
		return nil, err
	}
	elemSize := int64(8)
	if isComplex {
		elemSize = 16
	}
	if length > math.MaxInt64/elemSize || length > math.MaxInt {
		return nil, fail(at, fmt.Errorf("%w: element count %d", ErrInvalidLength, length))
	}

	if skip {
		if err := s.r.Skip(length * elemSize); err != nil {
			return nil, fail(at, err)
		}
		return nil, nil
	}

	dims := make([]int, len(raw))
	for i, d := range raw {
		if d > math.MaxInt32 {
			return nil, fail(dimsAt, fmt.Errorf("%w: dimension %d", ErrInvalidLength, d))
		}
		dims[i] = int(d)
	}

	var a *ndarray.Array
	if isComplex {
		data, err := s.r.ReadComplex128s(int(length))
		if err != nil {
			return nil, fail(at, err)
		}
		a, err = ndarray.FromColumnMajorComplex(dims, data)
		if err != nil {
			return nil, fail(at, fmt.Errorf("%w: %w", ErrInconsistentLength, err))
		}
	} else {
		data, err := s.r.ReadFloat64s(int(length))
		if err != nil {
			return nil, fail(at, err)
		}
		a, err = ndarray.FromColumnMajor(dims, data)
		if err != nil {
			return nil, fail(at, fmt.Errorf("%w: %w", ErrInconsistentLength, err))
		}
	}
	return NewTensor(a), nil
}

// DecodeList reads a list payload. isComplex is the element kind declared by
// the list's tag; every nested record carries its own tag, which is what the
// elements are decoded by. With skip set every element is still parsed.
func (s *Session) DecodeList(isComplex, skip bool) (List, error) {
	n, err := s.readCount("list length")
	if err != nil {
		return nil, err
	}
	var out List
	if !skip {
		out = make(List, 0, min(n, maxPrealloc))
	}
	for i := int64(0); i < n; i++ {
		tag, err := s.ReadTag()
		if err != nil {
			return nil, err
		}
		if tag.IsEnd() {
			return nil, fail(tag.Offset, fmt.Errorf("%w: %s ended after %d of %d elements",
				ErrTruncated, listCode(isComplex), i, n))
		}
		v, err := s.Decode(tag, skip)
		if err != nil {
			return nil, err
		}
		if !skip {
			out = append(out, v)
		}
	}
	if skip {
		return nil, nil
	}
	return out, nil
}

func listCode(isComplex bool) Code {
	if isComplex {
		return CodeComplexList
	}
	return CodeRealList
}
