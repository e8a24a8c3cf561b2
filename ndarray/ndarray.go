// Package ndarray implements dense N-dimensional arrays of float64 or
// complex128 values stored in column-major (Fortran) order.
//
// The first index varies fastest: element (i0, i1, ..., ik) lives at flat
// offset i0*s0 + i1*s1 + ... + ik*sk with s0 = 1 and sj = s(j-1) * d(j-1).
// Because the trailing axis is the slowest one, stacking equally shaped
// arrays along a new trailing axis is a concatenation of their buffers.
package ndarray

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrShape is returned when a buffer does not hold product(dims) elements.
	ErrShape = errors.New("data length does not match dimensions")

	// ErrNegativeDim is returned for dimensions below zero.
	ErrNegativeDim = errors.New("negative dimension")

	// ErrStack is returned when arrays with different dimensions are stacked.
	ErrStack = errors.New("cannot stack arrays with different dimensions")
)

// Array is an N-dimensional array of real or complex doubles.
// An Array is immutable once built.
type Array struct {
	dims    []int
	strides []int
	real    []float64
	cplx    []complex128
	complex bool
}

// Size returns the number of elements described by dims. The empty shape is a
// scalar and has size 1. Size returns -1 if a dimension is negative or the
// product does not fit in an int.
func Size(dims []int) int {
	empty := false
	for _, d := range dims {
		if d < 0 {
			return -1
		}
		empty = empty || d == 0
	}
	if empty {
		return 0
	}
	n := 1
	for _, d := range dims {
		if n > math.MaxInt/d {
			return -1
		}
		n *= d
	}
	return n
}

// ColumnMajorStrides returns the element strides for dims in Fortran order.
func ColumnMajorStrides(dims []int) []int {
	strides := make([]int, len(dims))
	s := 1
	for i, d := range dims {
		strides[i] = s
		s *= d
	}
	return strides
}

func checkDims(dims []int, n int) error {
	for i, d := range dims {
		if d < 0 {
			return fmt.Errorf("%w: dims[%d] = %d", ErrNegativeDim, i, d)
		}
	}
	size := Size(dims)
	if size < 0 {
		return fmt.Errorf("%w: dims %v overflow the element count", ErrShape, dims)
	}
	if size != n {
		return fmt.Errorf("%w: dims %v need %d elements, got %d", ErrShape, dims, size, n)
	}
	return nil
}

// FromColumnMajor views data as an array with the given dimensions, placing
// the flat buffer in column-major order. The slices are retained, not copied.
func FromColumnMajor(dims []int, data []float64) (*Array, error) {
	if err := checkDims(dims, len(data)); err != nil {
		return nil, err
	}
	d := append([]int(nil), dims...)
	return &Array{
		dims:    d,
		strides: ColumnMajorStrides(d),
		real:    data,
	}, nil
}

// FromColumnMajorComplex is the complex counterpart of FromColumnMajor.
func FromColumnMajorComplex(dims []int, data []complex128) (*Array, error) {
	if err := checkDims(dims, len(data)); err != nil {
		return nil, err
	}
	d := append([]int(nil), dims...)
	return &Array{
		dims:    d,
		strides: ColumnMajorStrides(d),
		cplx:    data,
		complex: true,
	}, nil
}

// Vector builds a rank-1 real array holding values.
func Vector(values ...float64) *Array {
	a, _ := FromColumnMajor([]int{len(values)}, values)
	return a
}

// Scalar builds a rank-1 array with a single element, the shape the SDF
// producer uses for scalars.
func Scalar(v float64) *Array {
	return Vector(v)
}

// ComplexScalar builds a rank-1 complex array with a single element.
func ComplexScalar(v complex128) *Array {
	a, _ := FromColumnMajorComplex([]int{1}, []complex128{v})
	return a
}

// Dims returns a copy of the array dimensions.
func (a *Array) Dims() []int {
	return append([]int(nil), a.dims...)
}

// Strides returns a copy of the column-major element strides.
func (a *Array) Strides() []int {
	return append([]int(nil), a.strides...)
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.dims)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a.complex {
		return len(a.cplx)
	}
	return len(a.real)
}

// IsComplex reports whether the array holds complex values.
func (a *Array) IsComplex() bool {
	return a.complex
}

// Float64s returns the column-major buffer of a real array, or nil for a
// complex one. The slice aliases the array storage.
func (a *Array) Float64s() []float64 {
	if a.complex {
		return nil
	}
	return a.real
}

// Complex128s returns the column-major buffer as complex values. For complex
// arrays the slice aliases the storage; real arrays are converted.
func (a *Array) Complex128s() []complex128 {
	if a.complex {
		return a.cplx
	}
	out := make([]complex128, len(a.real))
	for i, v := range a.real {
		out[i] = complex(v, 0)
	}
	return out
}

// Offset returns the flat buffer offset of the element at idx.
func (a *Array) Offset(idx ...int) (int, error) {
	if len(idx) != len(a.dims) {
		return 0, fmt.Errorf("index rank %d does not match array rank %d", len(idx), len(a.dims))
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.dims[k] {
			return 0, fmt.Errorf("index %d out of range for axis %d of size %d", i, k, a.dims[k])
		}
		off += i * a.strides[k]
	}
	return off, nil
}

// At returns the element at idx. Complex arrays return their real part.
// It panics if idx is out of range.
func (a *Array) At(idx ...int) float64 {
	off, err := a.Offset(idx...)
	if err != nil {
		panic(err)
	}
	if a.complex {
		return real(a.cplx[off])
	}
	return a.real[off]
}

// ComplexAt returns the element at idx as a complex number.
// It panics if idx is out of range.
func (a *Array) ComplexAt(idx ...int) complex128 {
	off, err := a.Offset(idx...)
	if err != nil {
		panic(err)
	}
	if a.complex {
		return a.cplx[off]
	}
	return complex(a.real[off], 0)
}

// First returns the first element in storage order. ok is false for empty arrays.
func (a *Array) First() (v complex128, ok bool) {
	if a.Len() == 0 {
		return 0, false
	}
	if a.complex {
		return a.cplx[0], true
	}
	return complex(a.real[0], 0), true
}

// Take returns the sub-array at index i of the trailing axis. The result
// shares storage with a.
func (a *Array) Take(i int) (*Array, error) {
	if len(a.dims) == 0 {
		return nil, errors.New("cannot take from a scalar array")
	}
	last := len(a.dims) - 1
	if i < 0 || i >= a.dims[last] {
		return nil, fmt.Errorf("index %d out of range for trailing axis of size %d", i, a.dims[last])
	}
	dims := a.dims[:last]
	n := Size(dims)
	if a.complex {
		return FromColumnMajorComplex(dims, a.cplx[i*n:(i+1)*n])
	}
	return FromColumnMajor(dims, a.real[i*n:(i+1)*n])
}

// SameDims reports whether a and b have identical dimensions.
func (a *Array) SameDims(b *Array) bool {
	if len(a.dims) != len(b.dims) {
		return false
	}
	for i := range a.dims {
		if a.dims[i] != b.dims[i] {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same dimensions, element type and
// bit-identical values.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.complex != b.complex || !a.SameDims(b) {
		return false
	}
	if a.complex {
		for i, v := range a.cplx {
			w := b.cplx[i]
			if math.Float64bits(real(v)) != math.Float64bits(real(w)) ||
				math.Float64bits(imag(v)) != math.Float64bits(imag(w)) {
				return false
			}
		}
		return true
	}
	for i, v := range a.real {
		if math.Float64bits(v) != math.Float64bits(b.real[i]) {
			return false
		}
	}
	return true
}

// String renders the shape and element type, e.g. "float64[3 4]".
func (a *Array) String() string {
	var sb strings.Builder
	if a.complex {
		sb.WriteString("complex128")
	} else {
		sb.WriteString("float64")
	}
	fmt.Fprintf(&sb, "%v", a.dims)
	return sb.String()
}
