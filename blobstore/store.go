package blobstore

import (
	"context"
	"io"
	"os"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
var ErrNotFound = os.ErrNotExist

// Store gives read access to the SDF containers of one location.
type Store interface {
	// Open opens a blob for reading. The context bounds every read made
	// through the returned blob.
	Open(ctx context.Context, name string) (Blob, error)

	// List returns the names of all blobs starting with prefix, in the
	// order a directory load visits them.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs that can hand out their whole
// contents at once.
type Mappable interface {
	// Bytes returns the blob contents.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll returns the contents of b, using Mappable when available.
func ReadAll(b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		return m.Bytes()
	}
	buf := make([]byte, b.Size())
	n, err := b.ReadAt(buf, 0)
	if err == io.EOF && int64(n) == b.Size() {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// IsArtifact reports whether name is a lock or temporary file left by a
// writer. Such files are never listed.
func IsArtifact(name string) bool {
	return strings.HasSuffix(name, ".lck") || strings.HasSuffix(name, ".tmp")
}

// bytesBlob serves a blob from a byte slice.
type bytesBlob struct {
	data []byte
}

// NewBytesBlob returns a Blob reading from data.
func NewBytesBlob(data []byte) Blob {
	return &bytesBlob{data: data}
}

func (b *bytesBlob) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *bytesBlob) Close() error {
	return nil
}

func (b *bytesBlob) Size() int64 {
	return int64(len(b.data))
}

func (b *bytesBlob) Bytes() ([]byte, error) {
	return b.data, nil
}
