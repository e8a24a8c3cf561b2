package minio

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanjosegarciaripoll/tensor/blobstore"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-sdf"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "b.sdf", data))
	require.NoError(t, store.Put(ctx, "a.sdf", data[:5]))
	require.NoError(t, store.Put(ctx, "a.sdf.lck", nil))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sdf", "b.sdf"}, names)

	blob, err := store.Open(ctx, "b.sdf")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "minio", string(buf))

	tail := make([]byte, 10)
	n, err = blob.ReadAt(tail, 12)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "world", string(tail[:n]))

	all, err := blobstore.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, data, all)

	_, err = store.Open(ctx, "missing.sdf")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestDial(t *testing.T) {
	store, err := Dial("localhost:9000", "bucket", "runs", false)
	require.NoError(t, err)
	assert.Equal(t, "runs/a.sdf", store.key("a.sdf"))
}
