// Package blobstore abstracts where SDF containers live.
//
// A [Store] opens named blobs and lists them by prefix. Blobs are read
// through io.ReaderAt, so the record decoder can skip payloads without
// fetching them; blobs that can produce their whole contents cheaply also
// implement [Mappable].
//
// Implementations:
//
//   - [LocalStore]: files in one directory, memory-mapped
//   - [MemoryStore]: in-memory blobs, for tests
//   - [Throttled]: a bandwidth-limited wrapper around any Store
//   - blobstore/s3 and blobstore/minio: object storage
//
// Listing order is the order in which a directory is loaded and combined.
// Lock and temporary files left by writers (*.lck, *.tmp) are never listed.
package blobstore
