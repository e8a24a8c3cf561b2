package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.sdf":     "bravo",
		"a.sdf":     "alpha",
		"c.sdf.lck": "",
		"d.sdf.tmp": "partial",
		"other.txt": "x",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.sdf"), 0o755))

	ctx := context.Background()
	s := NewLocalStore(dir)
	assert.Equal(t, dir, s.Root())

	names, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sdf", "b.sdf", "other.txt"}, names)

	names, err = s.List(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.sdf"}, names)

	b, err := s.Open(ctx, "a.sdf")
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, int64(5), b.Size())

	buf := make([]byte, 3)
	n, err := b.ReadAt(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "pha", string(buf))

	n, err = b.ReadAt(make([]byte, 4), 3)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	data, err := ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	_, err = s.Open(ctx, "missing.sdf")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewLocalStore(filepath.Join(dir, "nope")).List(ctx, "")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte("payload")
	require.NoError(t, s.Put(ctx, "run/2.sdf", data))
	require.NoError(t, s.Put(ctx, "run/1.sdf", []byte("one")))
	require.NoError(t, s.Put(ctx, "run/1.sdf.lck", nil))
	require.NoError(t, s.Put(ctx, "other/1.sdf", nil))
	data[0] = 'X'

	names, err := s.List(ctx, "run/")
	require.NoError(t, err)
	assert.Equal(t, []string{"run/1.sdf", "run/2.sdf"}, names)

	b, err := s.Open(ctx, "run/2.sdf")
	require.NoError(t, err)
	got, err := ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
	require.NoError(t, b.Close())

	require.NoError(t, s.Delete(ctx, "run/2.sdf"))
	_, err = s.Open(ctx, "run/2.sdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

// readerOnly hides Mappable from ReadAll.
type readerOnly struct {
	Blob
}

func TestReadAllWithoutMapping(t *testing.T) {
	b := readerOnly{NewBytesBlob([]byte("0123456789"))}
	_, ok := Blob(b).(Mappable)
	require.False(t, ok)

	data, err := ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	data, err = ReadAll(readerOnly{NewBytesBlob(nil)})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestIsArtifact(t *testing.T) {
	assert.True(t, IsArtifact("x.sdf.lck"))
	assert.True(t, IsArtifact("x.sdf.tmp"))
	assert.False(t, IsArtifact("x.sdf"))
	assert.False(t, IsArtifact("lck"))
}

func TestThrottled(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	require.NoError(t, mem.Put(ctx, "a", []byte("abcdefgh")))

	assert.Same(t, Store(mem), Throttled(mem, 0))

	s := Throttled(mem, 64)
	names, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)

	b, err := s.Open(ctx, "a")
	require.NoError(t, err)
	buf := make([]byte, 3)
	n, err := b.ReadAt(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "bcd", string(buf))

	data, err := ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh", string(data))

	_, err = s.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThrottledCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mem := NewMemoryStore()
	require.NoError(t, mem.Put(ctx, "a", []byte("abcdefgh")))

	b, err := Throttled(mem, 1<<20).Open(ctx, "a")
	require.NoError(t, err)
	cancel()

	_, err = b.ReadAt(make([]byte, 4), 0)
	assert.ErrorIs(t, err, context.Canceled)
}
