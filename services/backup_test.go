package services

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reco-review/storage"
)

type fakeBucket struct {
	data     map[string][]byte
	modified map[string]time.Time
	clock    time.Time
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{
		data:     map[string][]byte{},
		modified: map[string]time.Time{},
		clock:    time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeBucket) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.data[aws.ToString(in.Key)]))}, nil
}

func (f *fakeBucket) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.clock = f.clock.Add(time.Minute)
	f.data[aws.ToString(in.Key)] = body
	f.modified[aws.ToString(in.Key)] = f.clock
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeBucket) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var contents []types.Object
	for key := range f.data {
		contents = append(contents, types.Object{Key: aws.String(key), LastModified: aws.Time(f.modified[key])})
	}
	return &s3.ListObjectsV2Output{Contents: contents}, nil
}

func (f *fakeBucket) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.data, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestBackupService_SnapshotUploadsGzippedCatalog(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.Save(context.Background(), testCatalog()))
	bucket := newFakeBucket()

	svc := NewBackupService(store, bucket, "backups", 4, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 11, 4, 12, 30, 0, 0, time.UTC) }

	key, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "catalog-2024-11-04T12-30-00Z.json.gz", key)

	gz, err := gzip.NewReader(bytes.NewReader(bucket.data[key]))
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)

	books, err := storage.DecodeCatalog(raw)
	require.NoError(t, err)
	assert.Equal(t, testCatalog(), books)
}

func TestBackupService_RotatesOldSnapshots(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.Save(context.Background(), testCatalog()))
	bucket := newFakeBucket()

	svc := NewBackupService(store, bucket, "backups", 2, zap.NewNop())
	n := 0
	svc.now = func() time.Time {
		n++
		return time.Date(2024, 11, 4, n, 0, 0, 0, time.UTC)
	}

	var keys []string
	for i := 0; i < 4; i++ {
		key, err := svc.Snapshot(context.Background())
		require.NoError(t, err)
		keys = append(keys, key)
	}

	assert.Len(t, bucket.data, 2)
	for _, key := range keys[:2] {
		assert.NotContains(t, bucket.data, key, fmt.Sprintf("%s should be rotated", key))
	}
	for _, key := range keys[2:] {
		assert.Contains(t, bucket.data, key)
	}
}

func TestBackupService_RejectsKeepBelowOne(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.Save(context.Background(), testCatalog()))

	for _, keep := range []int{0, -1} {
		bucket := newFakeBucket()
		svc := NewBackupService(store, bucket, "backups", keep, zap.NewNop())

		_, err := svc.Snapshot(context.Background())
		assert.Error(t, err)
		assert.Empty(t, bucket.data, "no snapshot is uploaded")
	}
}

func TestBackupService_SnapshotFromSessionIgnoresStore(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	session := newTestSession(t, testCatalog(), store)
	require.Error(t, session.Commit(context.Background(), 1, map[int]bool{2: true}))

	bucket := newFakeBucket()
	svc := NewBackupService(session, bucket, "backups", 2, zap.NewNop())
	key, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	gz, err := gzip.NewReader(bytes.NewReader(bucket.data[key]))
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)
	books, err := storage.DecodeCatalog(raw)
	require.NoError(t, err)
	assert.True(t, books[0].Recommendations[1].IsCorrect)
}
