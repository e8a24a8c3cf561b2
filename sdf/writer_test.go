package sdf

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdfbinary "github.com/juanjosegarciaripoll/tensor/internal/binary"
)

func TestWriterSharedAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.sdf")

	w, err := Create(path, WithIntSize(4), WithByteOrder(binary.BigEndian))
	require.NoError(t, err)
	assert.FileExists(t, path+".lck")
	require.NoError(t, w.WriteFloat64("a", 1))
	require.NoError(t, w.Close())
	assert.NoFileExists(t, path+".lck")

	// A second writer keeps the existing header's layout.
	w, err = Create(path, WithIntSize(8), WithByteOrder(binary.LittleEndian))
	require.NoError(t, err)
	require.NoError(t, w.WriteTensor("b", realTensor(t, []int{2, 1}, []float64{2, 3})))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sdf440", string(raw[:6]))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Names())
	b, err := ds.Tensor("b")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, b.Dims())
	assert.Equal(t, []float64{2, 3}, b.Float64s())
}

func TestWriterAppendHeaderless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.sdf")
	legacy := encodeContainer(t, sdfbinary.DefaultConfig(), field{"a", vec(1)})
	require.NoError(t, os.WriteFile(path, legacy[64:], 0o644))

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteFloat64("b", 2))
	require.NoError(t, w.Close())

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Names())
}

func TestWriterOverwrite(t *testing.T) {
	path := writeContainer(t, t.TempDir(), "o.sdf", field{"old", vec(1)})

	w, err := Create(path, WithMode(ModeOverwrite))
	require.NoError(t, err)
	require.NoError(t, w.WriteFloat64("new", 2))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.NoFileExists(t, path+".lck")

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ds.Names())

	assert.ErrorIs(t, w.WriteFloat64("late", 3), ErrClosed)
}

func TestWriterParanoid(t *testing.T) {
	path := writeContainer(t, t.TempDir(), "p.sdf", field{"old", vec(1)})

	w, err := Create(path, WithMode(ModeParanoid))
	require.NoError(t, err)
	require.NoError(t, w.WriteFloat64("new", 2))
	assert.FileExists(t, path+".tmp")

	// Readers still see the previous container.
	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, ds.Names())

	require.NoError(t, w.Close())
	assert.NoFileExists(t, path+".tmp")
	ds, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ds.Names())
}

func TestWriterCompression(t *testing.T) {
	for _, c := range []Compression{CompressionGzip, CompressionZstd, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.sdf")
			w, err := Create(path, WithMode(ModeParanoid), WithCompression(c))
			require.NoError(t, err)
			require.NoError(t, w.WriteTensor("z", complexTensor(t, []int{2}, []complex128{1i, 2})))
			require.NoError(t, w.WriteList("l", List{vec(1)}))
			require.NoError(t, w.Close())

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotEqual(t, "sdf", string(raw[:3]))

			ds, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, []string{"z", "l"}, ds.Names())

			_, err = Create(path, WithMode(ModeShared))
			assert.ErrorIs(t, err, ErrInvalidOption)
			assert.NoFileExists(t, path+".lck")
		})
	}

	_, err := Create(filepath.Join(t.TempDir(), "x.sdf"), WithCompression(CompressionGzip))
	assert.ErrorIs(t, err, ErrInvalidOption)
	_, err = Create(filepath.Join(t.TempDir(), "x.sdf"), WithMode(ModeOverwrite), WithCompression(Compression(99)))
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestWriterModeString(t *testing.T) {
	assert.Equal(t, "shared", ModeShared.String())
	assert.Equal(t, "overwrite", ModeOverwrite.String())
	assert.Equal(t, "paranoid", ModeParanoid.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
}
