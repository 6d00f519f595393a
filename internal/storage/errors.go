package storage

import (
	"fmt"

	"github.com/SharmaTechie/video-stream-platform/internal/chunkstore"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return chunkstore.ErrNotFound
	case "NoSuchBucket":
		return fmt.Errorf("%w: %v", chunkstore.ErrAllocation, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return chunkstore.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", chunkstore.ErrIO, err)
	}
}
