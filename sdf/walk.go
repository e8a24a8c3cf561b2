package sdf

import (
	"errors"
	"fmt"
)

// ErrStopWalk may be returned by a WalkFunc to end the walk early. Walk then
// returns nil.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is called for each value during traversal. path is the field name
// followed by one [i] per list level, e.g. "states[0][2]".
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path string, v Value) error

// Walk visits every field depth-first in field order, calling fn for each
// list before its elements.
//
// Example:
//
//	ds.Walk(func(path string, v sdf.Value) error {
//	    switch v := v.(type) {
//	    case *sdf.Tensor:
//	        fmt.Println(path, v.Dims())
//	    case sdf.List:
//	        fmt.Println(path, "list of", len(v))
//	    }
//	    return nil
//	})
func (f *fields) Walk(fn WalkFunc) error {
	for _, name := range f.names {
		if err := walkValue(name, f.values[name], fn); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

func walkValue(path string, v Value, fn WalkFunc) error {
	if err := fn(path, v); err != nil {
		return err
	}
	l, ok := v.(List)
	if !ok {
		return nil
	}
	for i, elem := range l {
		if err := walkValue(fmt.Sprintf("%s[%d]", path, i), elem, fn); err != nil {
			return err
		}
	}
	return nil
}
