package sdf

import (
	"fmt"
	"slices"
)

// fields is an insertion-ordered name to value mapping.
type fields struct {
	names  []string
	values map[string]Value
}

func newFields() fields {
	return fields{values: make(map[string]Value)}
}

// set inserts or replaces a value. A replaced value keeps its position.
func (f *fields) set(name string, v Value) {
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = v
}

// Names returns the field names in insertion order.
func (f *fields) Names() []string {
	return slices.Clone(f.names)
}

// Len returns the number of fields.
func (f *fields) Len() int {
	return len(f.names)
}

// Has reports whether the field exists.
func (f *fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Get returns the value of a field.
func (f *fields) Get(name string) (Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Tensor returns a tensor-valued field.
func (f *fields) Tensor(name string) (*Tensor, error) {
	v, ok := f.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	t, ok := v.(*Tensor)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %s", ErrNotTensor, name, v.Kind())
	}
	return t, nil
}

// List returns a list-valued field.
func (f *fields) List(name string) (List, error) {
	v, ok := f.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	l, ok := v.(List)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %s", ErrNotList, name, v.Kind())
	}
	return l, nil
}

// Float64 returns the value of a real one-element tensor field.
func (f *fields) Float64(name string) (float64, error) {
	t, err := f.scalar(name)
	if err != nil {
		return 0, err
	}
	if t.IsComplex() {
		return 0, fmt.Errorf("%w: %q is complex", ErrNotScalar, name)
	}
	return t.Float64s()[0], nil
}

// Complex128 returns the value of a one-element tensor field. Real values
// are promoted.
func (f *fields) Complex128(name string) (complex128, error) {
	t, err := f.scalar(name)
	if err != nil {
		return 0, err
	}
	v, _ := t.First()
	return v, nil
}

func (f *fields) scalar(name string) (*Tensor, error) {
	t, err := f.Tensor(name)
	if err != nil {
		return nil, err
	}
	if t.Len() != 1 {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotScalar, name, t.Array)
	}
	return t, nil
}

// Dataset holds the fields of one container in record order.
type Dataset struct {
	fields

	// Path is the container the fields were read from.
	Path string
}

// NewDataset creates an empty dataset.
func NewDataset(path string) *Dataset {
	return &Dataset{fields: newFields(), Path: path}
}

// Set adds or replaces a field.
func (d *Dataset) Set(name string, v Value) {
	d.set(name, v)
}

// CombinedDataset holds fields stacked across several datasets.
type CombinedDataset struct {
	fields

	// Sources lists the combined datasets' paths in stacking order.
	Sources []string

	// Dropped lists fields left out by a lenient combine.
	Dropped []string
}
