package record

import (
	"github.com/juanjosegarciaripoll/tensor/ndarray"
)

// Kind distinguishes the variants of Value.
type Kind int

const (
	KindTensor Kind = iota
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindTensor:
		return "tensor"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a decoded record payload: either a *Tensor or a List.
// The set of implementations is closed.
type Value interface {
	Kind() Kind
	isValue()
}

// Tensor is a real or complex N-dimensional array.
type Tensor struct {
	*ndarray.Array
}

// NewTensor wraps an array as a record value.
func NewTensor(a *ndarray.Array) *Tensor {
	return &Tensor{Array: a}
}

// Kind returns KindTensor.
func (*Tensor) Kind() Kind { return KindTensor }

func (*Tensor) isValue() {}

// Code returns the type code used to store t.
func (t *Tensor) Code() Code {
	if t.IsComplex() {
		return CodeComplexTensor
	}
	return CodeRealTensor
}

// List is an ordered sequence of nested values.
type List []Value

// Kind returns KindList.
func (List) Kind() Kind { return KindList }

func (List) isValue() {}

// Code returns the type code used to store l: complex if any element is.
func (l List) Code() Code {
	for _, v := range l {
		if CodeOf(v).IsComplex() {
			return CodeComplexList
		}
	}
	return CodeRealList
}

// CodeOf returns the type code for v.
func CodeOf(v Value) Code {
	switch v := v.(type) {
	case *Tensor:
		return v.Code()
	case List:
		return v.Code()
	default:
		return CodeEnd
	}
}
