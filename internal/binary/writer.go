package binary

import (
	"encoding/binary"
	"math"
)

// Writer is the encoding counterpart of Reader: integers are written with a
// fixed width and byte order at an explicit position of an io.WriterAt.
type Writer struct {
	w       WriterAt
	order   binary.ByteOrder
	intSize int
	pos     int64
}

// WriterAt is the subset of io.WriterAt the encoder needs.
type WriterAt interface {
	WriteAt(p []byte, off int64) (n int, err error)
}

// NewWriter creates a binary writer with the given configuration.
func NewWriter(w WriterAt, cfg Config) *Writer {
	order := cfg.ByteOrder
	if order == nil {
		order = nativeOrder
	}
	intSize := cfg.IntSize
	if intSize == 0 {
		intSize = 4
	}
	return &Writer{
		w:       w,
		order:   order,
		intSize: intSize,
		pos:     0,
	}
}

// At returns a new writer positioned at the given offset.
// The new writer shares the underlying WriterAt but has independent position.
func (w *Writer) At(offset int64) *Writer {
	return &Writer{
		w:       w.w,
		order:   w.order,
		intSize: w.intSize,
		pos:     offset,
	}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	buf := make([]byte, 4)
	w.order.PutUint32(buf, v)
	return w.WriteBytes(buf)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	buf := make([]byte, 8)
	w.order.PutUint64(buf, v)
	return w.WriteBytes(buf)
}

// WriteInt writes a signed integer using the configured width.
func (w *Writer) WriteInt(v int64) error {
	switch w.intSize {
	case 4:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return ErrInvalidSize
		}
		return w.WriteUint32(uint32(int32(v)))
	case 8:
		return w.WriteUint64(uint64(v))
	default:
		return ErrInvalidSize
	}
}

// WriteFloat64s writes a sequence of IEEE-754 doubles.
func (w *Writer) WriteFloat64s(values []float64) error {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		w.order.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return w.WriteBytes(buf)
}

// WriteComplex128s writes complex doubles as consecutive real and imaginary parts.
func (w *Writer) WriteComplex128s(values []complex128) error {
	buf := make([]byte, 16*len(values))
	for i, v := range values {
		w.order.PutUint64(buf[16*i:], math.Float64bits(real(v)))
		w.order.PutUint64(buf[16*i+8:], math.Float64bits(imag(v)))
	}
	return w.WriteBytes(buf)
}

// IntSize returns the configured integer width in bytes.
func (w *Writer) IntSize() int {
	return w.intSize
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}

// Buffer is a growable in-memory WriterAt.
type Buffer struct {
	buf []byte
}

// WriteAt implements io.WriterAt, growing the buffer as needed.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	end := int(off) + len(p)
	if end > len(b.buf) {
		if end > cap(b.buf) {
			grown := make([]byte, end, 2*end)
			copy(grown, b.buf)
			b.buf = grown
		} else {
			b.buf = b.buf[:end]
		}
	}
	return copy(b.buf[off:], p), nil
}

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.buf)
}
