// Package filter implements whole-file compression for SDF containers.
//
// A compressed container is an ordinary SDF stream passed through one of the
// filters below. Readers recognize the filter from the leading bytes of the
// file and decode the whole blob into memory before parsing; none of the
// magics can begin a valid name block.
//
// # Supported Filters
//
//   - gzip (ID 1): [GzipFilter], via github.com/klauspost/compress/gzip.
//     Magic 1f 8b.
//
//   - zstd (ID 2): [ZstdFilter], via github.com/klauspost/compress/zstd.
//     Magic 28 b5 2f fd. Encoders and decoders are pooled.
//
//   - lz4 (ID 3): [LZ4Filter], LZ4 frame format via github.com/pierrec/lz4/v4.
//     Magic 04 22 4d 18.
//
// # Key Functions
//
//   - [New]: construct a filter by ID
//   - [Detect]: find the filter whose magic prefixes a buffer
package filter
