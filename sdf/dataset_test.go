package sdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetAccessors(t *testing.T) {
	d := dataset("a",
		field{"n", vec(4)},
		field{"z", complexTensor(t, []int{1}, []complex128{complex(1, 2)})},
		field{"v", vec(1, 2)},
		field{"l", List{vec(1)}},
	)

	assert.Equal(t, []string{"n", "z", "v", "l"}, d.Names())
	d.Names()[0] = "changed"
	assert.Equal(t, "n", d.Names()[0])

	n, err := d.Float64("n")
	require.NoError(t, err)
	assert.Equal(t, 4.0, n)
	nc, err := d.Complex128("n")
	require.NoError(t, err)
	assert.Equal(t, complex(4, 0), nc)
	z, err := d.Complex128("z")
	require.NoError(t, err)
	assert.Equal(t, complex(1, 2), z)

	_, err = d.Float64("z")
	assert.ErrorIs(t, err, ErrNotScalar)
	_, err = d.Float64("v")
	assert.ErrorIs(t, err, ErrNotScalar)
	_, err = d.Float64("missing")
	assert.ErrorIs(t, err, ErrFieldNotFound)
	_, err = d.Tensor("l")
	assert.ErrorIs(t, err, ErrNotTensor)
	_, err = d.List("v")
	assert.ErrorIs(t, err, ErrNotList)

	l, err := d.List("l")
	require.NoError(t, err)
	assert.Len(t, l, 1)

	d.Set("n", vec(5))
	assert.Equal(t, []string{"n", "z", "v", "l"}, d.Names())
	n, _ = d.Float64("n")
	assert.Equal(t, 5.0, n)
}

func TestWalk(t *testing.T) {
	d := dataset("a",
		field{"x", vec(1)},
		field{"states", List{vec(1), List{vec(2), vec(3)}}},
		field{"y", vec(2)},
	)

	var paths []string
	require.NoError(t, d.Walk(func(path string, v Value) error {
		paths = append(paths, path)
		return nil
	}))
	assert.Equal(t, []string{"x", "states", "states[0]", "states[1]", "states[1][0]", "states[1][1]", "y"}, paths)

	paths = nil
	require.NoError(t, d.Walk(func(path string, v Value) error {
		paths = append(paths, path)
		if path == "states[0]" {
			return ErrStopWalk
		}
		return nil
	}))
	assert.Equal(t, []string{"x", "states", "states[0]"}, paths)

	boom := errors.New("boom")
	err := d.Walk(func(path string, v Value) error {
		if v.Kind() == KindList {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
