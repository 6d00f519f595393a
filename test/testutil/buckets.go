package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/storage"
	"github.com/minio/minio-go/v7"
)

type TestBucket struct {
	Name    string
	Backend *storage.MinioChunkBackend
	Cleanup func() error
}

// SetupTestBucket creates a fresh chunk bucket so tests never see each other's chunks.
func SetupTestBucket(strg *storage.Strg) (*TestBucket, error) {
	ctx := context.Background()
	name := fmt.Sprintf("chunks-%d", time.Now().UnixNano())

	backend, err := strg.WithBucket(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not create bucket %q: %w", name, err)
	}

	cleanup := func() error {
		for obj := range strg.Client.ListObjects(ctx, name, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				return fmt.Errorf("list bucket %q: %w", name, obj.Err)
			}
			if err := strg.Client.RemoveObject(ctx, name, obj.Key, minio.RemoveObjectOptions{}); err != nil {
				return fmt.Errorf("remove %q: %w", obj.Key, err)
			}
		}
		return nil
	}

	return &TestBucket{Name: name, Backend: backend, Cleanup: cleanup}, nil
}

// CountObjects returns how many keys the bucket holds.
func CountObjects(strg *storage.Strg, bucket string) (int, error) {
	n := 0
	for obj := range strg.Client.ListObjects(context.Background(), bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return 0, obj.Err
		}
		n++
	}
	return n, nil
}
