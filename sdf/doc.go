// Package sdf reads and writes SDF containers: streams of named real or
// complex tensors, and lists of them, as written by the tensor library.
//
// # Reading
//
// [Load] decodes one file into a [Dataset]. Fields named by [WithIgnore] are
// parsed but never materialized:
//
//	ds, err := sdf.Load("run-01.sdf", sdf.WithIgnore("wavefunction"))
//	energy, err := ds.Tensor("energy")
//
// [Open] gives record-at-a-time access, including the strict loads
// ([File.ReadTensor], [File.ReadFloat64], ...) that expect a given record
// next.
//
// # Combining
//
// [LoadDirectory] loads every file of a directory and stacks same-named
// tensors along a new trailing axis, one slot per file in listing order:
//
//	runs, err := sdf.LoadSortedDirectory("results/", "t")
//	x, err := runs.Tensor("x") // dims of one x, plus one axis per file
//
// List fields are collected into an outer list instead. By default any shape
// or key disagreement between files is an error; [WithLenientCombine] drops
// the offending tensor fields instead.
//
// Directories may also live in object storage: see [ReadStore], [LoadStore]
// and the blobstore packages.
//
// # Writing
//
// [Create] opens a file for writing. The default [ModeShared] appends to an
// existing file under an exclusive lock, so several processes can record
// results into the same container.
//
// # Format
//
// A stream is a sequence of 64-byte NUL-padded name blocks, each followed by
// an integer type code and a payload. An optional first block starting with
// "sdf" declares the integer width (4 or 8 bytes) and byte order; without it
// integers are 32-bit in host order. Tensors are stored as rank, dimensions,
// element count and column-major doubles (interleaved real and imaginary
// parts for complex data). Lists store a count followed by unnamed records.
// Files compressed with gzip, zstd or lz4 are recognized by their magic and
// decompressed transparently.
package sdf
