package sdf

import (
	"fmt"

	"github.com/juanjosegarciaripoll/tensor/internal/record"
	"github.com/juanjosegarciaripoll/tensor/ndarray"
)

// Value is a field value: either a *Tensor or a List.
type Value = record.Value

// Tensor is a real or complex column-major array.
type Tensor = record.Tensor

// List is an ordered sequence of values.
type List = record.List

// Kind distinguishes Tensor and List values.
type Kind = record.Kind

const (
	KindTensor = record.KindTensor
	KindList   = record.KindList
)

// NewTensor wraps an array as a field value.
func NewTensor(a *ndarray.Array) *Tensor {
	return record.NewTensor(a)
}

// describe returns a short description of v for error messages.
func describe(v Value) string {
	switch v := v.(type) {
	case *Tensor:
		return v.Array.String()
	case List:
		return fmt.Sprintf("list[%d]", len(v))
	default:
		return "nothing"
	}
}
