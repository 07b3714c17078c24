package minio

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sandsky/travel-backend/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage adapts the minio client to the object storage port. The public base
// URL is what uploaded objects are addressed by in stored image URLs.
type Storage struct {
	client        *minio.Client
	publicBaseURL string
}

func NewStorage(client *minio.Client, publicBaseURL string) *Storage {
	return &Storage{
		client:        client,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.publicBaseURL + "/" + strings.TrimLeft(objectName, "/"), nil
}

func (s *Storage) Download(ctx context.Context, bucket, objectName string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy, a Stat surfaces missing keys before the caller reads.
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, err
	}
	return obj, nil
}

func (s *Storage) List(ctx context.Context, bucket, prefix string) ([]ports.StoredObject, error) {
	objects := make([]ports.StoredObject, 0)
	for info := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, info.Err
		}
		objects = append(objects, ports.StoredObject{Key: info.Key, Size: info.Size})
	}
	return objects, nil
}

var _ ports.ObjectStorage = (*Storage)(nil)
