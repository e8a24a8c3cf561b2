package binary

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bytesReaderAt wraps a byte slice to implement io.ReaderAt.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func leConfig(intSize int) Config {
	return Config{ByteOrder: binary.LittleEndian, IntSize: intSize, Size: -1}
}

func TestReaderReadInt(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		data     []byte
		expected int64
	}{
		{"le32", leConfig(4), []byte{0x78, 0x56, 0x34, 0x12}, 0x12345678},
		{"le32 negative", leConfig(4), []byte{0xFF, 0xFF, 0xFF, 0xFF}, -1},
		{"be32", Config{ByteOrder: binary.BigEndian, IntSize: 4}, []byte{0x12, 0x34, 0x56, 0x78}, 0x12345678},
		{"le64", leConfig(8), []byte{0xF0, 0xDE, 0xBC, 0x9A, 0x78, 0x56, 0x34, 0x12}, 0x123456789ABCDEF0},
		{"le64 negative", leConfig(8), bytes.Repeat([]byte{0xFF}, 8), -1},
		{"be64", Config{ByteOrder: binary.BigEndian, IntSize: 8}, []byte{0, 0, 0, 0, 0, 0, 0, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytesReaderAt(tt.data), tt.cfg)
			v, err := r.ReadInt()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
			assert.Equal(t, int64(tt.cfg.IntSize), r.Pos())
		})
	}
}

func TestReaderReadFloat64s(t *testing.T) {
	var buf bytes.Buffer
	want := []float64{1.0, -2.5, math.Pi, math.Inf(1)}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, want))

	r := NewReader(bytesReaderAt(buf.Bytes()), Config{ByteOrder: binary.BigEndian, IntSize: 4, Size: int64(buf.Len())})
	got, err := r.ReadFloat64s(len(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, int64(0), r.Remaining())
}

func TestReaderReadFloat64sLarge(t *testing.T) {
	// Spans several scratch chunks.
	n := 3*chunkSize/8 + 5
	want := make([]float64, n)
	for i := range want {
		want[i] = float64(i) * 0.5
	}
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, want))

	r := NewReader(bytesReaderAt(buf.Bytes()), leConfig(4))
	got, err := r.ReadFloat64s(n)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReaderReadComplex128s(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, []float64{1, 2, 3, -4}))

	r := NewReader(bytesReaderAt(buf.Bytes()), leConfig(4))
	got, err := r.ReadComplex128s(2)
	require.NoError(t, err)
	assert.Equal(t, []complex128{complex(1, 2), complex(3, -4)}, got)
}

func TestReaderTruncated(t *testing.T) {
	data := bytesReaderAt{1, 2, 3}

	t.Run("unknown size", func(t *testing.T) {
		r := NewReader(data, leConfig(4))
		_, err := r.ReadInt()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Equal(t, int64(0), r.Pos())
	})

	t.Run("known size fails before reading", func(t *testing.T) {
		r := NewReader(data, Config{ByteOrder: binary.LittleEndian, IntSize: 4, Size: 3})
		_, err := r.ReadFloat64s(1 << 40)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestReaderReadBlock(t *testing.T) {
	data := bytesReaderAt(bytes.Repeat([]byte{'a'}, 10))
	r := NewReader(data, DefaultConfig())

	block, err := r.ReadBlock(8)
	require.NoError(t, err)
	assert.Len(t, block, 8)
	assert.Equal(t, int64(8), r.Pos())

	_, err = r.ReadBlock(8)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, int64(8), r.Pos(), "short block must not move the cursor")
}

func TestReaderSkip(t *testing.T) {
	data := bytesReaderAt{0, 1, 2, 3, 4, 5}

	r := NewReader(data, Config{ByteOrder: binary.LittleEndian, IntSize: 4, Size: 6})
	require.NoError(t, r.Skip(4))
	v, err := r.ReadBytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{4}, v)

	assert.ErrorIs(t, r.Skip(2), io.ErrUnexpectedEOF)
	assert.ErrorIs(t, r.Skip(-1), ErrNegativeSkip)

	// Without a known size the skip is pure cursor arithmetic.
	u := NewReader(data, leConfig(4))
	require.NoError(t, u.Skip(100))
	assert.Equal(t, int64(100), u.Pos())
}

func TestReaderAt(t *testing.T) {
	data := bytesReaderAt{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data, DefaultConfig())

	r2 := r.At(3)
	v, err := r2.ReadBytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, v)

	// Original reader should be unaffected
	v, err = r.ReadBytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, v)
}

func TestReaderWithLayout(t *testing.T) {
	data := bytesReaderAt{0xAA, 0, 0, 0, 0, 0, 0, 0, 1}
	r := NewReader(data, leConfig(4))
	require.NoError(t, r.Skip(1))

	be, err := r.WithLayout(8, binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, int64(1), be.Pos())
	v, err := be.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, err = r.WithLayout(2, binary.BigEndian)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestNativeOrder(t *testing.T) {
	assert.True(t, IsNative(NativeOrder()))
	if NativeOrder() == binary.LittleEndian {
		assert.False(t, IsNative(binary.BigEndian))
	} else {
		assert.False(t, IsNative(binary.LittleEndian))
	}
}
