package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanjosegarciaripoll/tensor/ndarray"
	"github.com/juanjosegarciaripoll/tensor/sdf"
)

func writeRun(t *testing.T, dir, name string, temp float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	w, err := sdf.Create(path, sdf.WithMode(sdf.ModeOverwrite))
	require.NoError(t, err)
	require.NoError(t, w.WriteFloat64("T", temp))
	require.NoError(t, w.WriteArray("psi", ndarray.Vector(1, 2, 3)))
	require.NoError(t, w.WriteList("states", sdf.List{sdf.NewTensor(ndarray.Vector(temp))}))
	require.NoError(t, w.Close())
	return path
}

func TestRunFile(t *testing.T) {
	path := writeRun(t, t.TempDir(), "a.sdf", 0.5)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, path, config{}))
	assert.Contains(t, out.String(), "T: float64[1] = 0.5")
	assert.Contains(t, out.String(), "psi: float64[3]")
	assert.Contains(t, out.String(), "states: list of 1")
	assert.Contains(t, out.String(), "  states[0]: float64[1]")
}

func TestRunCombineJSON(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, "a.sdf", 2)
	writeRun(t, dir, "b.sdf", 1)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, dir, config{sortBy: "T", asJSON: true, workers: 2, ignore: stringList{"states"}}))

	var s summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, []string{filepath.Join(dir, "b.sdf"), filepath.Join(dir, "a.sdf")}, s.Sources)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, "T", s.Fields[0].Path)
	assert.Equal(t, []int{1, 2}, s.Fields[0].Dims)
	assert.Equal(t, []int{3, 2}, s.Fields[1].Dims)
}

func TestRunDirectory(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, "a.sdf", 1)
	writeRun(t, dir, "b.sdf", 2)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, dir, config{}))
	assert.Contains(t, out.String(), "=== "+filepath.Join(dir, "a.sdf")+" ===")
	assert.Contains(t, out.String(), "=== "+filepath.Join(dir, "b.sdf")+" ===")
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), &out, "ftp://host/x", config{})
	assert.ErrorContains(t, err, "unsupported source scheme")

	err = run(context.Background(), &out, "minio://host", config{})
	assert.ErrorContains(t, err, "minio://host/bucket/prefix")

	err = run(context.Background(), &out, filepath.Join(t.TempDir(), "missing.sdf"), config{})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, ok := newLogger(config{asJSON: true}).Handler().(*slog.JSONHandler)
	assert.True(t, ok)
	_, ok = newLogger(config{}).Handler().(*slog.TextHandler)
	assert.True(t, ok)

	path := writeRun(t, t.TempDir(), "a.sdf", 1)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, path, config{asJSON: true, verbose: true}))
	var s []summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	require.Len(t, s, 1)
}

func TestStringList(t *testing.T) {
	var l stringList
	require.NoError(t, l.Set("a,b"))
	require.NoError(t, l.Set("c"))
	assert.Equal(t, stringList{"a", "b", "c"}, l)
	assert.Equal(t, "a,b,c", l.String())
}
