package record

import (
	"fmt"

	sdfbinary "github.com/juanjosegarciaripoll/tensor/internal/binary"
)

// Encoder writes records in the layout read by Session.
type Encoder struct {
	w *sdfbinary.Writer
}

// NewEncoder creates an encoder that writes through w. The integer width and
// byte order of w are the ones declared by WriteHeader.
func NewEncoder(w *sdfbinary.Writer) *Encoder {
	return &Encoder{w: w}
}

// Pos returns the current write position.
func (e *Encoder) Pos() int64 {
	return e.w.Pos()
}

// WriteHeader writes the format header block.
func (e *Encoder) WriteHeader() error {
	h := Header{IntSize: e.w.IntSize(), ByteOrder: e.w.ByteOrder()}
	return e.w.WriteBytes(h.Encode())
}

// WriteTag writes a name block and a type code.
func (e *Encoder) WriteTag(name string, code Code) error {
	if err := e.w.WriteBytes(encodeName(name)); err != nil {
		return err
	}
	return e.w.WriteInt(int64(code))
}

// Encode writes a complete record for v under name.
func (e *Encoder) Encode(name string, v Value) error {
	switch v := v.(type) {
	case *Tensor:
		if err := e.WriteTag(name, v.Code()); err != nil {
			return err
		}
		return e.EncodeTensor(v)
	case List:
		if err := e.WriteTag(name, v.Code()); err != nil {
			return err
		}
		return e.EncodeList(v)
	default:
		return fmt.Errorf("cannot encode %T", v)
	}
}

// EncodeTensor writes a tensor payload.
func (e *Encoder) EncodeTensor(t *Tensor) error {
	dims := t.Dims()
	if err := e.w.WriteInt(int64(len(dims))); err != nil {
		return err
	}
	for _, d := range dims {
		if err := e.w.WriteInt(int64(d)); err != nil {
			return err
		}
	}
	if err := e.w.WriteInt(int64(t.Len())); err != nil {
		return err
	}
	if t.IsComplex() {
		return e.w.WriteComplex128s(t.Complex128s())
	}
	return e.w.WriteFloat64s(t.Float64s())
}

// EncodeList writes a list payload; elements are written as unnamed records.
func (e *Encoder) EncodeList(l List) error {
	if err := e.w.WriteInt(int64(len(l))); err != nil {
		return err
	}
	for i, v := range l {
		if err := e.Encode("", v); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
	}
	return nil
}

// WriteEnd writes an explicit end-of-stream record.
func (e *Encoder) WriteEnd() error {
	return e.WriteTag("", CodeEnd)
}
