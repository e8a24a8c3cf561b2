package filter

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Encoder/decoder pools; both are expensive to construct.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// ZstdFilter implements Zstandard frame compression.
type ZstdFilter struct{}

// NewZstd creates a zstd filter.
func NewZstd() *ZstdFilter {
	return &ZstdFilter{}
}

func (f *ZstdFilter) ID() ID { return Zstd }
func (f *ZstdFilter) Name() string { return "zstd" }
func (f *ZstdFilter) Magic() []byte { return zstdMagic }

func (f *ZstdFilter) Decode(input []byte) ([]byte, error) {
	dec, err := getZstdDecoder()
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer putZstdDecoder(dec)

	output, err := dec.DecodeAll(input, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return output, nil
}

func (f *ZstdFilter) Encode(input []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	defer putZstdEncoder(enc)

	return enc.EncodeAll(input, nil), nil
}
