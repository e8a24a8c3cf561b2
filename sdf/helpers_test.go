package sdf

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sdfbinary "github.com/juanjosegarciaripoll/tensor/internal/binary"
	"github.com/juanjosegarciaripoll/tensor/internal/record"
	"github.com/juanjosegarciaripoll/tensor/ndarray"
)

type field struct {
	name  string
	value Value
}

func vec(xs ...float64) *Tensor {
	return NewTensor(ndarray.Vector(xs...))
}

func realTensor(t *testing.T, dims []int, data []float64) *Tensor {
	t.Helper()
	a, err := ndarray.FromColumnMajor(dims, data)
	require.NoError(t, err)
	return NewTensor(a)
}

func complexTensor(t *testing.T, dims []int, data []complex128) *Tensor {
	t.Helper()
	a, err := ndarray.FromColumnMajorComplex(dims, data)
	require.NoError(t, err)
	return NewTensor(a)
}

func le64() sdfbinary.Config {
	return sdfbinary.Config{ByteOrder: binary.LittleEndian, IntSize: 8}
}

// encodeContainer returns a container holding fields, with a header for cfg.
func encodeContainer(t *testing.T, cfg sdfbinary.Config, fields ...field) []byte {
	t.Helper()
	var buf sdfbinary.Buffer
	enc := record.NewEncoder(sdfbinary.NewWriter(&buf, cfg))
	require.NoError(t, enc.WriteHeader())
	for _, f := range fields {
		require.NoError(t, enc.Encode(f.name, f.value))
	}
	return buf.Bytes()
}

// writeContainer writes a little-endian 64-bit container into dir.
func writeContainer(t *testing.T, dir, name string, fields ...field) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, encodeContainer(t, le64(), fields...), 0o644))
	return path
}

func requireEqualValue(t *testing.T, want, got Value) {
	t.Helper()
	switch want := want.(type) {
	case *Tensor:
		g, ok := got.(*Tensor)
		require.True(t, ok, "expected tensor, got %T", got)
		require.True(t, want.Equal(g.Array), "want %s %v, got %s %v", want.Array, want.Complex128s(), g.Array, g.Complex128s())
	case List:
		g, ok := got.(List)
		require.True(t, ok, "expected list, got %T", got)
		require.Len(t, g, len(want))
		for i := range want {
			requireEqualValue(t, want[i], g[i])
		}
	default:
		t.Fatalf("unexpected value %T", want)
	}
}
