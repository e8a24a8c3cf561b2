package filter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

// LZ4Filter implements LZ4 frame compression. The frame format is used rather
// than raw blocks so that encoded files are self-delimiting and carry a magic.
type LZ4Filter struct{}

// NewLZ4 creates an LZ4 filter.
func NewLZ4() *LZ4Filter {
	return &LZ4Filter{}
}

func (f *LZ4Filter) ID() ID { return LZ4 }
func (f *LZ4Filter) Name() string { return "lz4" }
func (f *LZ4Filter) Magic() []byte { return lz4Magic }

func (f *LZ4Filter) Decode(input []byte) ([]byte, error) {
	output, err := io.ReadAll(lz4.NewReader(bytes.NewReader(input)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return output, nil
}

func (f *LZ4Filter) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(input); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}
