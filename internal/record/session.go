package record

import (
	"encoding/binary"
	"io"

	sdfbinary "github.com/juanjosegarciaripoll/tensor/internal/binary"
)

// Session is the decode state of one stream: the cursor plus the integer
// width and byte order pinned by the stream's header.
type Session struct {
	r       *sdfbinary.Reader
	header  *Header
	started bool
}

// NewSession starts decoding r from offset zero. size is the number of bytes
// in r, or -1 if unknown; a known size lets truncated payloads fail before
// any allocation. Until a header is seen, integers are 32-bit in host order.
func NewSession(r io.ReaderAt, size int64) *Session {
	cfg := sdfbinary.DefaultConfig()
	cfg.Size = size
	return &Session{r: sdfbinary.NewReader(r, cfg)}
}

func (s *Session) applyHeader(block []byte) error {
	h, err := ParseHeader(block)
	if err != nil {
		return err
	}
	r, err := s.r.WithLayout(h.IntSize, h.ByteOrder)
	if err != nil {
		return err
	}
	s.r = r
	s.header = &h
	return nil
}

// Pos returns the current stream offset.
func (s *Session) Pos() int64 {
	return s.r.Pos()
}

// Header returns the stream header, or nil if the stream has none or it has
// not been read yet.
func (s *Session) Header() *Header {
	return s.header
}

// IntSize returns the current integer width in bytes.
func (s *Session) IntSize() int {
	return s.r.IntSize()
}

// ByteOrder returns the current byte order.
func (s *Session) ByteOrder() binary.ByteOrder {
	return s.r.ByteOrder()
}

// Swapped reports whether the stream byte order differs from the host's.
func (s *Session) Swapped() bool {
	return !sdfbinary.IsNative(s.r.ByteOrder())
}
