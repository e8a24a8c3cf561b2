package sdf

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/juanjosegarciaripoll/tensor/blobstore"
	"github.com/juanjosegarciaripoll/tensor/internal/filter"
	"github.com/juanjosegarciaripoll/tensor/internal/record"
)

// Record is one named value read from a container.
type Record struct {
	Name   string
	Value  Value
	Offset int64 // stream offset of the record's name block
}

// File is an open container positioned at its next record.
type File struct {
	path    string
	blob    blobstore.Blob
	session *record.Session
	opts    *options
	log     *Logger
	ctx     context.Context
	err     error // first failure that left the cursor mid-record
	closed  bool
	done    bool
	skipped int
}

// Open opens a container for reading.
func Open(path string, opts ...Option) (*File, error) {
	o := newOptions(opts)
	store, name := o.locate(path)
	return openFile(context.Background(), store, name, path, o)
}

// locate resolves path against the configured store.
func (o *options) locate(path string) (blobstore.Store, string) {
	if o.store != nil {
		return o.store, path
	}
	return blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path)
}

func openFile(ctx context.Context, store blobstore.Store, name, path string, o *options) (*File, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	blob, err = decompress(blob)
	if err != nil {
		return nil, decodeError(path, err)
	}
	return &File{
		path:    path,
		blob:    blob,
		session: record.NewSession(blob, blob.Size()),
		opts:    o,
		log:     o.logger.WithPath(path),
		ctx:     ctx,
	}, nil
}

// decompress replaces a compressed blob by its decoded contents. The
// original blob is closed in that case.
func decompress(blob blobstore.Blob) (blobstore.Blob, error) {
	magic := make([]byte, filter.MagicLen)
	n, err := blob.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		_ = blob.Close()
		return nil, err
	}
	f, ok := filter.Detect(magic[:n])
	if !ok {
		return blob, nil
	}

	data, err := blobstore.ReadAll(blob)
	if err == nil {
		data, err = f.Decode(data)
	}
	if cerr := blob.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("%s container: %w", f.Name(), err)
	}
	return blobstore.NewBytesBlob(data), nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string {
	return f.path
}

// Pos returns the stream offset of the next unread byte.
func (f *File) Pos() int64 {
	return f.session.Pos()
}

// Close releases the underlying blob. It is idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.blob.Close()
}

// readTag reads the next tag, reporting io.EOF once the stream has ended.
func (f *File) readTag() (record.Tag, error) {
	if f.closed {
		return record.Tag{}, ErrClosed
	}
	if f.err != nil {
		return record.Tag{}, f.err
	}
	if f.done {
		return record.Tag{}, io.EOF
	}
	tag, err := f.session.ReadTag()
	if err != nil {
		return record.Tag{}, f.fail(decodeError(f.path, err))
	}
	if tag.IsEnd() {
		f.done = true
		return record.Tag{}, io.EOF
	}
	return tag, nil
}

// Next decodes the next record that is not ignored. It returns io.EOF at the
// end of the stream.
func (f *File) Next() (Record, error) {
	for {
		tag, err := f.readTag()
		if err != nil {
			return Record{}, err
		}
		skip := f.opts.ignored(tag.Name)
		v, err := f.session.Decode(tag, skip)
		if err != nil {
			return Record{}, f.fail(decodeError(f.path, err))
		}
		if skip {
			f.skipped++
			f.log.LogSkip(f.ctx, tag.Name)
			continue
		}
		return Record{Name: tag.Name, Value: v, Offset: tag.Offset}, nil
	}
}

// fail records err as the result of every later read.
func (f *File) fail(err error) error {
	f.err = err
	return err
}

// expect reads the next tag and checks it against name (if not empty) and
// the accepted codes.
func (f *File) expect(name string, codes ...record.Code) (record.Tag, error) {
	tag, err := f.readTag()
	if err == io.EOF {
		return record.Tag{}, &DecodeError{Path: f.path, Offset: f.Pos(),
			Err: fmt.Errorf("%w: end of stream, expected %q", ErrUnexpectedRecord, name)}
	}
	if err != nil {
		return record.Tag{}, err
	}
	if name != "" && tag.Name != name {
		return record.Tag{}, f.fail(&DecodeError{Path: f.path, Offset: tag.Offset,
			Err: fmt.Errorf("%w: found %q, expected %q", ErrUnexpectedRecord, tag.Name, name)})
	}
	for _, c := range codes {
		if tag.Code == c {
			return tag, nil
		}
	}
	return record.Tag{}, f.fail(&DecodeError{Path: f.path, Offset: tag.Offset,
		Err: fmt.Errorf("%w: %q is a %s", ErrUnexpectedRecord, tag.Name, tag.Code)})
}

// ReadTensor decodes the next record, which must be a tensor named name. An
// empty name accepts any record name.
func (f *File) ReadTensor(name string) (*Tensor, error) {
	tag, err := f.expect(name, record.CodeRealTensor, record.CodeComplexTensor)
	if err != nil {
		return nil, err
	}
	t, err := f.session.DecodeTensor(tag.Code.IsComplex(), false)
	if err != nil {
		return nil, f.fail(decodeError(f.path, err))
	}
	return t, nil
}

// ReadList decodes the next record, which must be a list named name.
func (f *File) ReadList(name string) (List, error) {
	tag, err := f.expect(name, record.CodeRealList, record.CodeComplexList)
	if err != nil {
		return nil, err
	}
	l, err := f.session.DecodeList(tag.Code.IsComplex(), false)
	if err != nil {
		return nil, f.fail(decodeError(f.path, err))
	}
	return l, nil
}

// ReadFloat64 decodes the next record, which must be a real one-element
// tensor named name.
func (f *File) ReadFloat64(name string) (float64, error) {
	tag, err := f.expect(name, record.CodeRealTensor)
	if err != nil {
		return 0, err
	}
	t, err := f.session.DecodeTensor(false, false)
	if err != nil {
		return 0, f.fail(decodeError(f.path, err))
	}
	if t.Len() != 1 {
		return 0, fmt.Errorf("%w: %q is %s", ErrNotScalar, tag.Name, t.Array)
	}
	return t.Float64s()[0], nil
}

// ReadInt decodes the next record, which must be a real one-element tensor
// holding an integral value.
func (f *File) ReadInt(name string) (int, error) {
	v, err := f.ReadFloat64(name)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v < math.MinInt || v >= math.MaxInt {
		return 0, fmt.Errorf("%w: %q is %g", ErrNotInteger, name, v)
	}
	return int(v), nil
}

// ReadComplex128 decodes the next record, which must be a one-element tensor
// named name. Real values are promoted.
func (f *File) ReadComplex128(name string) (complex128, error) {
	t, err := f.ReadTensor(name)
	if err != nil {
		return 0, err
	}
	v, ok := t.First()
	if !ok || t.Len() != 1 {
		return 0, fmt.Errorf("%w: %q is %s", ErrNotScalar, name, t.Array)
	}
	return v, nil
}
