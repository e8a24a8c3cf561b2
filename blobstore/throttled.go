package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// throttledStore limits the read bandwidth of every blob it opens. All blobs
// share one limiter.
type throttledStore struct {
	store   Store
	limiter *rate.Limiter
}

// Throttled wraps store so that reads through its blobs proceed at no more
// than bytesPerSecond. A non-positive rate returns store unchanged.
func Throttled(store Store, bytesPerSecond int) Store {
	if bytesPerSecond <= 0 {
		return store
	}
	return &throttledStore{
		store:   store,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), bytesPerSecond),
	}
}

func (s *throttledStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledBlob{Blob: b, ctx: ctx, limiter: s.limiter}, nil
}

func (s *throttledStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.store.List(ctx, prefix)
}

type throttledBlob struct {
	Blob
	ctx     context.Context
	limiter *rate.Limiter
}

// wait blocks until n bytes may be read. Requests larger than the burst are
// split.
func (b *throttledBlob) wait(n int64) error {
	burst := int64(b.limiter.Burst())
	for n > 0 {
		chunk := min(n, burst)
		if err := b.limiter.WaitN(b.ctx, int(chunk)); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

func (b *throttledBlob) ReadAt(p []byte, off int64) (int, error) {
	want := min(int64(len(p)), max(b.Size()-off, 0))
	if err := b.wait(want); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(p, off)
}

func (b *throttledBlob) Bytes() ([]byte, error) {
	if err := b.wait(b.Size()); err != nil {
		return nil, err
	}
	return ReadAll(b.Blob)
}
