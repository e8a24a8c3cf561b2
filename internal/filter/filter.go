package filter

import (
	"bytes"
	"fmt"
)

// ID identifies a compression filter.
type ID uint16

const (
	None ID = iota
	Gzip
	Zstd
	LZ4
)

func (id ID) String() string {
	switch id {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("filter(%d)", uint16(id))
	}
}

// Filter is the interface implemented by all compression filters.
type Filter interface {
	// ID returns the filter identifier.
	ID() ID

	// Name returns a short name for messages.
	Name() string

	// Magic returns the leading bytes of every encoded stream.
	Magic() []byte

	// Decode transforms encoded data to decoded form.
	Decode(input []byte) ([]byte, error)

	// Encode transforms raw data to encoded form.
	Encode(input []byte) ([]byte, error)
}

// Registry maps filter IDs to filter constructors.
var Registry = map[ID]func() Filter{
	Gzip: func() Filter { return NewGzip(DefaultGzipLevel) },
	Zstd: func() Filter { return NewZstd() },
	LZ4:  func() Filter { return NewLZ4() },
}

// MagicLen is the number of leading bytes Detect needs to recognize every
// registered filter.
const MagicLen = 4

// New creates the filter registered under id.
func New(id ID) (Filter, error) {
	constructor, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unsupported filter ID: %d", uint16(id))
	}
	return constructor(), nil
}

// Detect returns the filter whose magic prefixes data. Uncompressed data
// yields ok == false.
func Detect(data []byte) (f Filter, ok bool) {
	for _, id := range []ID{Gzip, Zstd, LZ4} {
		f := Registry[id]()
		if bytes.HasPrefix(data, f.Magic()) {
			return f, true
		}
	}
	return nil, false
}
