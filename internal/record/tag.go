package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// BlockSize is the size of a name or header block.
const BlockSize = 64

var headerMagic = []byte("sdf")

// Code is a record type code.
type Code int64

const (
	CodeEnd           Code = -1
	CodeRealTensor    Code = 0
	CodeComplexTensor Code = 1
	CodeRealList      Code = 2
	CodeComplexList   Code = 3
)

// Valid reports whether c is one of the known codes.
func (c Code) Valid() bool {
	return c >= CodeEnd && c <= CodeComplexList
}

// IsComplex reports whether c describes complex data.
func (c Code) IsComplex() bool {
	return c == CodeComplexTensor || c == CodeComplexList
}

func (c Code) String() string {
	switch c {
	case CodeEnd:
		return "end"
	case CodeRealTensor:
		return "real tensor"
	case CodeComplexTensor:
		return "complex tensor"
	case CodeRealList:
		return "real list"
	case CodeComplexList:
		return "complex list"
	default:
		return fmt.Sprintf("code(%d)", int64(c))
	}
}

// Tag introduces a record.
type Tag struct {
	Name   string
	Code   Code
	Offset int64 // stream offset of the name block
}

// IsEnd reports whether t is the end-of-stream sentinel.
func (t Tag) IsEnd() bool {
	return t.Code == CodeEnd
}

// Header is the decoded format header block.
type Header struct {
	IntSize   int
	ByteOrder binary.ByteOrder
}

// IsHeader reports whether block is a format header block.
func IsHeader(block []byte) bool {
	return bytes.HasPrefix(block, headerMagic)
}

// ParseHeader decodes a format header block.
func ParseHeader(block []byte) (Header, error) {
	if len(block) < 6 || !IsHeader(block) {
		return Header{}, errors.New("not a header block")
	}
	var h Header
	switch block[4] {
	case '4':
		h.IntSize = 4
	case '8':
		h.IntSize = 8
	default:
		return Header{}, fmt.Errorf("%w: %q", ErrUnsupportedIntSize, block[4])
	}
	if block[5] == '1' {
		h.ByteOrder = binary.LittleEndian
	} else {
		h.ByteOrder = binary.BigEndian
	}
	return h, nil
}

// Encode returns the 64-byte header block for h.
func (h Header) Encode() []byte {
	block := make([]byte, BlockSize)
	copy(block, headerMagic)
	block[3] = '4'
	block[4] = byte('0' + h.IntSize)
	if h.ByteOrder == binary.LittleEndian {
		block[5] = '1'
	} else {
		block[5] = '0'
	}
	return block
}

// decodeName returns the NUL-terminated name held in block.
func decodeName(block []byte) string {
	if i := bytes.IndexByte(block, 0); i >= 0 {
		block = block[:i]
	}
	return strings.ToValidUTF8(string(block), "\uFFFD")
}

// encodeName returns the NUL-padded name block for name. Names are truncated
// to BlockSize-1 bytes without splitting a UTF-8 sequence.
func encodeName(name string) []byte {
	block := make([]byte, BlockSize)
	b := []byte(name)
	if len(b) > BlockSize-1 {
		n := BlockSize - 1
		for n > 0 && !utf8.RuneStart(b[n]) {
			n--
		}
		b = b[:n]
	}
	copy(block, b)
	return block
}

// ReadTag reads the next tag. A stream that cannot supply a full name block
// yields the end sentinel and a nil error. The format header is only
// recognized in the first block of the stream.
func (s *Session) ReadTag() (Tag, error) {
	start := s.r.Pos()
	block, err := s.r.ReadBlock(BlockSize)
	if errors.Is(err, io.EOF) {
		s.started = true
		return Tag{Code: CodeEnd, Offset: start}, nil
	}
	if err != nil {
		return Tag{}, fail(start, err)
	}

	if !s.started {
		s.started = true
		if IsHeader(block) {
			if err := s.applyHeader(block); err != nil {
				return Tag{}, fail(start, err)
			}
			start = s.r.Pos()
			block, err = s.r.ReadBlock(BlockSize)
			if errors.Is(err, io.EOF) {
				return Tag{Code: CodeEnd, Offset: start}, nil
			}
			if err != nil {
				return Tag{}, fail(start, err)
			}
		}
	}

	name := decodeName(block)
	codeAt := s.r.Pos()
	code, err := s.r.ReadInt()
	if err != nil {
		return Tag{}, fail(codeAt, err)
	}
	if Code(code) == CodeEnd {
		return Tag{Code: CodeEnd, Offset: start}, nil
	}
	return Tag{Name: name, Code: Code(code), Offset: start}, nil
}
