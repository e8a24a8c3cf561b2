// Package binary provides the low-level cursor used to decode and encode SDF streams.
package binary

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// ErrInvalidSize is returned when an unsupported integer width is configured.
var ErrInvalidSize = errors.New("invalid integer size: must be 4 or 8")

// ErrNegativeSkip is returned when Skip is asked to move the cursor backwards.
var ErrNegativeSkip = errors.New("negative skip")

// chunkSize bounds the scratch buffer used by the bulk float readers.
const chunkSize = 64 * 1024

// Reader is a positioned cursor over an io.ReaderAt. Integers are read with a
// pinned width and byte order, both of which can be replaced mid-stream.
type Reader struct {
	r       io.ReaderAt
	order   binary.ByteOrder
	intSize int
	size    int64
	pos     int64
}

// Config holds reader configuration.
type Config struct {
	ByteOrder binary.ByteOrder
	IntSize   int   // 4 or 8 bytes
	Size      int64 // total bytes available, or -1 if unknown
}

var nativeOrder binary.ByteOrder = func() binary.ByteOrder {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()

// NativeOrder returns the byte order of the host.
func NativeOrder() binary.ByteOrder {
	return nativeOrder
}

// IsNative reports whether order matches the host byte order.
func IsNative(order binary.ByteOrder) bool {
	return order == nativeOrder
}

// DefaultConfig returns the configuration used before a stream declares its
// own layout: 32-bit integers in host byte order, unknown size.
func DefaultConfig() Config {
	return Config{
		ByteOrder: nativeOrder,
		IntSize:   4,
		Size:      -1,
	}
}

// NewReader creates a binary reader with the given configuration.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	order := cfg.ByteOrder
	if order == nil {
		order = nativeOrder
	}
	intSize := cfg.IntSize
	if intSize == 0 {
		intSize = 4
	}
	return &Reader{
		r:       r,
		order:   order,
		intSize: intSize,
		size:    cfg.Size,
		pos:     0,
	}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		r:       r.r,
		order:   r.order,
		intSize: r.intSize,
		size:    r.size,
		pos:     offset,
	}
}

// WithLayout returns a new reader at the same position that decodes integers
// with the given width and byte order.
func (r *Reader) WithLayout(intSize int, order binary.ByteOrder) (*Reader, error) {
	if intSize != 4 && intSize != 8 {
		return nil, ErrInvalidSize
	}
	nr := r.At(r.pos)
	nr.order = order
	nr.intSize = intSize
	return nr, nil
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Size returns the total number of bytes in the source, or -1 if unknown.
func (r *Reader) Size() int64 {
	return r.size
}

// Remaining returns the number of bytes after the cursor, or -1 if the size
// is unknown.
func (r *Reader) Remaining() int64 {
	if r.size < 0 {
		return -1
	}
	if r.pos >= r.size {
		return 0
	}
	return r.size - r.pos
}

// need fails with io.ErrUnexpectedEOF when n bytes are known not to be available.
func (r *Reader) need(n int64) error {
	if rem := r.Remaining(); rem >= 0 && n > rem {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// ReadBytes reads exactly n bytes from the current position.
// A short read is reported as io.ErrUnexpectedEOF.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := r.need(int64(n)); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.readAt(buf); err != nil {
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadBlock reads exactly n bytes. Unlike ReadBytes, fewer than n available
// bytes is reported as io.EOF and the position is left unchanged.
func (r *Reader) ReadBlock(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if rem := r.Remaining(); rem >= 0 && int64(n) > rem {
		return nil, io.EOF
	}
	buf := make([]byte, n)
	got, err := r.r.ReadAt(buf, r.pos)
	if got < n {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

func (r *Reader) readAt(buf []byte) error {
	n, err := r.r.ReadAt(buf, r.pos)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// ReadInt reads a signed integer using the configured width.
func (r *Reader) ReadInt() (int64, error) {
	switch r.intSize {
	case 4:
		v, err := r.ReadUint32()
		return int64(int32(v)), err
	case 8:
		v, err := r.ReadUint64()
		return int64(v), err
	default:
		return 0, ErrInvalidSize
	}
}

// ReadInts reads n signed integers using the configured width.
func (r *Reader) ReadInts(n int) ([]int64, error) {
	out := make([]int64, n)
	for i := range out {
		v, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadFloat64s reads n IEEE-754 doubles.
func (r *Reader) ReadFloat64s(n int) ([]float64, error) {
	if n < 0 || int64(n) > math.MaxInt64/8 {
		return nil, ErrInvalidSize
	}
	if err := r.need(int64(n) * 8); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	err := r.readChunked(int64(n)*8, func(i int, chunk []byte) {
		for j := 0; j+8 <= len(chunk); j += 8 {
			out[i+j/8] = math.Float64frombits(r.order.Uint64(chunk[j:]))
		}
	}, 8)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadComplex128s reads n complex doubles stored as consecutive real and
// imaginary parts.
func (r *Reader) ReadComplex128s(n int) ([]complex128, error) {
	if n < 0 || int64(n) > math.MaxInt64/16 {
		return nil, ErrInvalidSize
	}
	if err := r.need(int64(n) * 16); err != nil {
		return nil, err
	}
	out := make([]complex128, n)
	err := r.readChunked(int64(n)*16, func(i int, chunk []byte) {
		for j := 0; j+16 <= len(chunk); j += 16 {
			re := math.Float64frombits(r.order.Uint64(chunk[j:]))
			im := math.Float64frombits(r.order.Uint64(chunk[j+8:]))
			out[i+j/16] = complex(re, im)
		}
	}, 16)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// readChunked reads total bytes through a bounded scratch buffer. fn receives
// the element index of the chunk's first element and the chunk itself.
func (r *Reader) readChunked(total int64, fn func(int, []byte), elem int) error {
	step := int64(chunkSize - chunkSize%elem)
	if total < step {
		step = total
	}
	buf := make([]byte, step)
	var done int64
	for done < total {
		n := step
		if total-done < n {
			n = total - done
		}
		chunk := buf[:n]
		if err := r.readAt(chunk); err != nil {
			return err
		}
		fn(int(done/int64(elem)), chunk)
		r.pos += n
		done += n
	}
	return nil
}

// Skip advances the position by n bytes without reading them.
func (r *Reader) Skip(n int64) error {
	if n < 0 {
		return ErrNegativeSkip
	}
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// IntSize returns the configured integer width in bytes.
func (r *Reader) IntSize() int {
	return r.intSize
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}
