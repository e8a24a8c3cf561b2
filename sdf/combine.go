package sdf

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/juanjosegarciaripoll/tensor/ndarray"
)

// Combine merges datasets with identical field names. Tensor fields, which
// must have the same dimensions everywhere, are stacked along a new trailing
// axis whose index i holds datasets[i]'s value; mixing real and complex
// tensors gives a complex result. List fields become a List holding each
// dataset's list in order. Fields keep the first dataset's order.
//
// Combining no datasets gives an empty result.
func Combine(datasets []*Dataset, opts ...Option) (*CombinedDataset, error) {
	o := newOptions(opts)
	ctx := context.Background()

	out := &CombinedDataset{fields: newFields()}
	for _, d := range datasets {
		out.Sources = append(out.Sources, d.Path)
	}
	if len(datasets) == 0 {
		return out, nil
	}
	if err := checkKeys(datasets); err != nil {
		return nil, err
	}

	for _, name := range datasets[0].names {
		v, err := combineField(name, datasets)
		if err != nil {
			if o.lenient && errors.Is(err, ErrShapeMismatch) {
				o.logger.LogDrop(ctx, name, err)
				out.Dropped = append(out.Dropped, name)
				continue
			}
			return nil, err
		}
		out.set(name, v)
	}
	o.logger.LogCombine(ctx, len(datasets), out.Len(), len(out.Dropped))
	return out, nil
}

// checkKeys verifies that every dataset has the first one's field names.
func checkKeys(datasets []*Dataset) error {
	first := datasets[0]
	for i, d := range datasets[1:] {
		for _, name := range first.names {
			if !d.Has(name) {
				return &KeyMismatchError{Key: name, Source: d.Path, Index: i + 1, Missing: true}
			}
		}
		for _, name := range d.names {
			if !first.Has(name) {
				return &KeyMismatchError{Key: name, Source: d.Path, Index: i + 1}
			}
		}
	}
	return nil
}

func combineField(name string, datasets []*Dataset) (Value, error) {
	first := datasets[0].values[name]
	mismatch := func(i int, got Value) error {
		return &ShapeMismatchError{
			Field:  name,
			Source: datasets[i].Path,
			Index:  i,
			Want:   describe(first),
			Got:    describe(got),
		}
	}

	switch first := first.(type) {
	case *Tensor:
		arrays := make([]*ndarray.Array, len(datasets))
		for i, d := range datasets {
			t, ok := d.values[name].(*Tensor)
			if !ok || !t.SameDims(first.Array) {
				return nil, mismatch(i, d.values[name])
			}
			arrays[i] = t.Array
		}
		stacked, err := ndarray.Stack(arrays)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		return NewTensor(stacked), nil
	case List:
		out := make(List, len(datasets))
		for i, d := range datasets {
			l, ok := d.values[name].(List)
			if !ok {
				return nil, mismatch(i, d.values[name])
			}
			out[i] = l
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q: unsupported value %T", name, first)
	}
}

// CombineSorted orders datasets by the real part of the first element of
// field, ascending and stable, then combines them.
func CombineSorted(datasets []*Dataset, field string, opts ...Option) (*CombinedDataset, error) {
	keys := make([]float64, len(datasets))
	for i, d := range datasets {
		t, err := d.Tensor(field)
		if err != nil {
			return nil, fmt.Errorf("sort key in %s: %w", d.Path, err)
		}
		v, ok := t.First()
		if !ok {
			return nil, fmt.Errorf("sort key in %s: %w: %q", d.Path, ErrEmptyTensor, field)
		}
		keys[i] = real(v)
	}

	order := make([]int, len(datasets))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(keys[a], keys[b])
	})

	sorted := make([]*Dataset, len(datasets))
	for i, j := range order {
		sorted[i] = datasets[j]
	}
	return Combine(sorted, opts...)
}
