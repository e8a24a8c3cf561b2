// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", s3.WithPrefix("runs/2024"))
//	combined, err := sdf.LoadStore(ctx, store, "")
//
// # Features
//
//   - Range reads, so skipped payloads are never fetched
//   - Concurrent whole-object downloads for compressed containers
//   - Automatic pagination for listing
package s3
