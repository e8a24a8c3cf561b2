// Package record decodes and encodes the tagged records of an SDF stream.
//
// An SDF stream is a sequence of records. Every record starts with a tag: a
// 64-byte NUL-padded name block followed by one integer type code. The very
// first block of a stream may instead be a format header, which pins the
// integer width and byte order for the rest of the stream:
//
//	offset  0..2   "sdf"
//	offset  3      width of the producer's int type ('4')
//	offset  4      width of every integer in the stream: '4' or '8'
//	offset  5      byte order: '1' little-endian, anything else big-endian
//	offset  6..63  NUL padding
//
// # Record Payloads
//
//	Code  Kind            Payload
//	----  --------------  ----------------------------------------------------
//	 -1   end sentinel    none
//	  0   real tensor     rank, dims[rank], L, L doubles
//	  1   complex tensor  rank, dims[rank], L, 2L doubles (re, im interleaved)
//	  2   real list       L, L nested records (tag + payload)
//	  3   complex list    L, L nested records (tag + payload)
//
// Tensor buffers are laid out in column-major order. The end of a stream is
// structural: a name block that cannot be read in full ends the stream.
//
// # Sessions
//
// A [Session] carries the per-stream decode state. It is created for one
// byte source, is not safe for concurrent use, and must not be shared between
// streams:
//
//	s := record.NewSession(r, size)
//	for {
//	    tag, err := s.ReadTag()
//	    if err != nil || tag.IsEnd() {
//	        break
//	    }
//	    v, err := s.Decode(tag, false)
//	    ...
//	}
//
// Passing skip=true to [Session.Decode] walks the same decode path but seeks
// over element buffers instead of materializing them, so the cursor ends at
// exactly the same offset.
package record
