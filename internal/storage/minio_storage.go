package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioChunkBackend stores every chunk as its own object, keyed "<object id>/<chunk index>".
type MinioChunkBackend struct {
	client     minioClient
	bucketName string
}

// Strg wraps a connected MinIO client. TLS is fixed when the client is built.
type Strg struct {
	Client minioClient
}

// compile-time check: *MinioChunkBackend must satisfy port.ChunkBackend
var _ port.ChunkBackend = (*MinioChunkBackend)(nil)

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*Strg, error) {
	logger.Infof(context.Background(), "initialising minio client for %s...", endpoint)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &Strg{Client: client}, nil
}

// WithBucket returns a chunk backend writing into bucket, creating the bucket when missing.
func (c *Strg) WithBucket(ctx context.Context, bucket string) (*MinioChunkBackend, error) {
	ok, err := c.Client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", bucket)
		if err := c.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, mapMinioErr(err)
		}
	}
	return &MinioChunkBackend{client: c.Client, bucketName: bucket}, nil
}

// Ping checks that the chunk bucket is reachable.
func (s *MinioChunkBackend) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucketName)
	}
	return nil
}

func (s *MinioChunkBackend) PutChunk(ctx context.Context, ref model.ChunkRef, data []byte) error {
	logger.Debugf(ctx, "saving chunk %d of object #%s into bucket %q...", ref.Index, ref.ObjectID, s.bucketName)

	_, err := s.client.PutObject(ctx, s.bucketName, chunkKey(ref.ObjectID, ref.Index), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		UserMetadata: map[string]string{
			"object-id":    ref.ObjectID.String(),
			"chunk-index":  strconv.FormatInt(ref.Index, 10),
			"chunk-offset": strconv.FormatInt(ref.Offset, 10),
		},
	})
	return mapMinioErr(err)
}

func (s *MinioChunkBackend) ReadChunk(ctx context.Context, ref model.ChunkRef, offset, length int64) ([]byte, error) {
	if length <= 0 {
		return []byte{}, nil
	}
	logger.Debugf(ctx, "reading bytes %d-%d of chunk %d of object #%s...", offset, offset+length-1, ref.Index, ref.ObjectID)

	opts := minio.GetObjectOptions{}
	// a range covering the whole chunk is left out so MinIO answers with a plain GET
	if offset > 0 || length < ref.Size {
		if err := opts.SetRange(offset, offset+length-1); err != nil {
			return nil, fmt.Errorf("set range on chunk %d: %w", ref.Index, err)
		}
	}

	obj, err := s.client.GetObject(ctx, s.bucketName, chunkKey(ref.ObjectID, ref.Index), opts)
	if err != nil {
		return nil, mapMinioErr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, length))
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return data, nil
}

func (s *MinioChunkBackend) RemoveChunks(ctx context.Context, objectID uuid.UUID) error {
	logger.Debugf(ctx, "removing chunks of object #%s from bucket %q...", objectID, s.bucketName)

	for info := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{Prefix: chunkPrefix(objectID), Recursive: true}) {
		if info.Err != nil {
			return mapMinioErr(info.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucketName, info.Key, minio.RemoveObjectOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func chunkPrefix(id uuid.UUID) string {
	return id.String() + "/"
}

func chunkKey(id uuid.UUID, index int64) string {
	return fmt.Sprintf("%s%010d", chunkPrefix(id), index)
}
