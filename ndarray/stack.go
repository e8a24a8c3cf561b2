package ndarray

import (
	"errors"
	"fmt"
)

// Stack joins equally shaped arrays along a new trailing axis. The result has
// dims (d0, ..., dk, len(arrays)) and arrays[i] is found at trailing index i.
// If any input is complex the result is complex.
func Stack(arrays []*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, errors.New("no arrays to stack")
	}
	first := arrays[0]
	anyComplex := false
	for i, a := range arrays {
		if !a.SameDims(first) {
			return nil, fmt.Errorf("%w: array %d has dims %v, want %v", ErrStack, i, a.dims, first.dims)
		}
		anyComplex = anyComplex || a.complex
	}

	dims := append(first.Dims(), len(arrays))
	n := Size(first.dims)
	if anyComplex {
		data := make([]complex128, 0, n*len(arrays))
		for _, a := range arrays {
			data = append(data, a.Complex128s()...)
		}
		return FromColumnMajorComplex(dims, data)
	}
	data := make([]float64, 0, n*len(arrays))
	for _, a := range arrays {
		data = append(data, a.real...)
	}
	return FromColumnMajor(dims, data)
}
