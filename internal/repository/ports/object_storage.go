package ports

import (
	"context"
	"io"
)

type StoredObject struct {
	Key  string
	Size int64
}

type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error)
	Download(ctx context.Context, bucket, objectName string) (io.ReadCloser, error)
	List(ctx context.Context, bucket, prefix string) ([]StoredObject, error)
}
