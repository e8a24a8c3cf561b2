package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// DefaultGzipLevel is the level used by the registered gzip filter.
const DefaultGzipLevel = 6

var gzipMagic = []byte{0x1f, 0x8b}

// GzipFilter implements gzip compression.
type GzipFilter struct {
	level int
}

// NewGzip creates a gzip filter writing at the given level (1-9).
func NewGzip(level int) *GzipFilter {
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = DefaultGzipLevel
	}
	return &GzipFilter{level: level}
}

func (f *GzipFilter) ID() ID { return Gzip }
func (f *GzipFilter) Name() string { return "gzip" }
func (f *GzipFilter) Magic() []byte { return gzipMagic }

func (f *GzipFilter) Decode(input []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer r.Close()

	output, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	return output, nil
}

func (f *GzipFilter) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, f.level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}
	if _, err := w.Write(input); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	return buf.Bytes(), nil
}
