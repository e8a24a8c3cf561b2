package sdf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	sdfbinary "github.com/juanjosegarciaripoll/tensor/internal/binary"
	"github.com/juanjosegarciaripoll/tensor/internal/filter"
	"github.com/juanjosegarciaripoll/tensor/internal/record"
	"github.com/juanjosegarciaripoll/tensor/ndarray"
)

// Mode selects how Create treats an existing file.
type Mode int

const (
	// ModeShared appends to the file, holding an exclusive lock on
	// "<path>.lck" until Close. Records go after the existing ones, in the
	// existing file's integer width and byte order.
	ModeShared Mode = iota
	// ModeOverwrite replaces the file.
	ModeOverwrite
	// ModeParanoid writes "<path>.tmp" and renames it over the file on Close,
	// so readers never observe a partial container.
	ModeParanoid
)

func (m Mode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModeOverwrite:
		return "overwrite"
	case ModeParanoid:
		return "paranoid"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Compression selects the whole-file compression of a new container.
type Compression = filter.ID

const (
	CompressionNone = filter.None
	CompressionGzip = filter.Gzip
	CompressionZstd = filter.Zstd
	CompressionLZ4  = filter.LZ4
)

// WriterOption configures Create.
type WriterOption func(*writerOptions)

type writerOptions struct {
	mode        Mode
	intSize     int
	order       binary.ByteOrder
	compression Compression
}

func defaultWriterOptions() *writerOptions {
	return &writerOptions{
		mode:    ModeShared,
		intSize: 8,
		order:   sdfbinary.NativeOrder(),
	}
}

// WithMode sets how an existing file is treated.
func WithMode(m Mode) WriterOption {
	return func(o *writerOptions) {
		o.mode = m
	}
}

// WithIntSize sets the integer width in bytes (4 or 8) of a new file.
func WithIntSize(size int) WriterOption {
	return func(o *writerOptions) {
		if size == 4 || size == 8 {
			o.intSize = size
		}
	}
}

// WithByteOrder sets the byte order of a new file.
func WithByteOrder(order binary.ByteOrder) WriterOption {
	return func(o *writerOptions) {
		if order != nil {
			o.order = order
		}
	}
}

// WithCompression compresses the whole file on Close. It cannot be combined
// with ModeShared.
func WithCompression(c Compression) WriterOption {
	return func(o *writerOptions) {
		o.compression = c
	}
}

// Writer appends records to a container.
type Writer struct {
	path   string // final location
	target string // file being written
	mode   Mode
	file   *os.File
	lock   *os.File
	buf    *sdfbinary.Buffer
	codec  filter.Filter
	enc    *record.Encoder
	closed bool
}

// Create opens path for writing according to the writer options.
func Create(path string, opts ...WriterOption) (*Writer, error) {
	o := defaultWriterOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.compression != CompressionNone && o.mode == ModeShared {
		return nil, fmt.Errorf("%w: compression cannot be used in %s mode", ErrInvalidOption, o.mode)
	}

	w := &Writer{path: path, target: path, mode: o.mode}
	switch o.mode {
	case ModeShared:
		lock, err := acquireLock(path + ".lck")
		if err != nil {
			return nil, fmt.Errorf("locking %s: %w", path, err)
		}
		w.lock = lock
	case ModeOverwrite:
	case ModeParanoid:
		w.target = path + ".tmp"
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidOption, int(o.mode))
	}

	if err := w.open(o); err != nil {
		w.releaseLock()
		return nil, err
	}
	return w, nil
}

func (w *Writer) open(o *writerOptions) error {
	cfg := sdfbinary.Config{ByteOrder: o.order, IntSize: o.intSize}

	if o.compression != CompressionNone {
		codec, err := filter.New(o.compression)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
		w.codec = codec
		w.buf = &sdfbinary.Buffer{}
		w.enc = record.NewEncoder(sdfbinary.NewWriter(w.buf, cfg))
		return w.enc.WriteHeader()
	}

	flags := os.O_RDWR | os.O_CREATE
	if w.mode != ModeShared {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(w.target, flags, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", w.target, err)
	}
	w.file = f

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("creating %s: %w", w.target, err)
	}
	if info.Size() == 0 {
		w.enc = record.NewEncoder(sdfbinary.NewWriter(f, cfg))
		if err := w.enc.WriteHeader(); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing header of %s: %w", w.target, err)
		}
		return nil
	}

	cfg, err = existingLayout(f)
	if err != nil {
		_ = f.Close()
		return &DecodeError{Path: w.target, Offset: 0, Err: err}
	}
	w.enc = record.NewEncoder(sdfbinary.NewWriter(f, cfg).At(info.Size()))
	return nil
}

// existingLayout returns the integer width and byte order records appended
// to f must use.
func existingLayout(f *os.File) (sdfbinary.Config, error) {
	block := make([]byte, record.BlockSize)
	n, err := f.ReadAt(block, 0)
	if err != nil && err != io.EOF {
		return sdfbinary.Config{}, err
	}
	if c, ok := filter.Detect(block[:n]); ok {
		return sdfbinary.Config{}, fmt.Errorf("%w: cannot append to a %s-compressed container", ErrInvalidOption, c.Name())
	}
	if n == record.BlockSize && record.IsHeader(block) {
		h, err := record.ParseHeader(block)
		if err != nil {
			return sdfbinary.Config{}, err
		}
		return sdfbinary.Config{ByteOrder: h.ByteOrder, IntSize: h.IntSize}, nil
	}
	return sdfbinary.DefaultConfig(), nil
}

// Path returns the path of the container being written.
func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) write(name string, v Value) error {
	if w.closed {
		return ErrClosed
	}
	if err := w.enc.Encode(name, v); err != nil {
		return fmt.Errorf("writing %q to %s: %w", name, w.target, err)
	}
	return nil
}

// WriteTensor appends a tensor record.
func (w *Writer) WriteTensor(name string, t *Tensor) error {
	return w.write(name, t)
}

// WriteArray appends an array as a tensor record.
func (w *Writer) WriteArray(name string, a *ndarray.Array) error {
	return w.write(name, NewTensor(a))
}

// WriteList appends a list record. Elements are written without names.
func (w *Writer) WriteList(name string, l List) error {
	return w.write(name, l)
}

// WriteFloat64 appends a one-element real tensor.
func (w *Writer) WriteFloat64(name string, v float64) error {
	return w.write(name, NewTensor(ndarray.Vector(v)))
}

// WriteInt appends an integer as a one-element real tensor.
func (w *Writer) WriteInt(name string, v int) error {
	return w.WriteFloat64(name, float64(v))
}

// WriteComplex128 appends a one-element complex tensor.
func (w *Writer) WriteComplex128(name string, v complex128) error {
	a, err := ndarray.FromColumnMajorComplex([]int{1}, []complex128{v})
	if err != nil {
		return err
	}
	return w.write(name, NewTensor(a))
}

// Close flushes the container and releases the lock. In ModeParanoid the
// finished file replaces the target. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	defer w.releaseLock()

	if w.codec != nil {
		data, err := w.codec.Encode(w.buf.Bytes())
		if err != nil {
			return fmt.Errorf("compressing %s: %w", w.target, err)
		}
		if err := os.WriteFile(w.target, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", w.target, err)
		}
	} else {
		err := w.file.Sync()
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("closing %s: %w", w.target, err)
		}
	}

	if w.mode == ModeParanoid {
		if err := os.Rename(w.target, w.path); err != nil {
			return fmt.Errorf("replacing %s: %w", w.path, err)
		}
	}
	return nil
}

func (w *Writer) releaseLock() {
	if w.lock == nil {
		return
	}
	_ = os.Remove(w.lock.Name())
	_ = unlockFile(w.lock)
	_ = w.lock.Close()
	w.lock = nil
}

func acquireLock(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil && !errors.Is(err, errLockUnsupported) {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}
