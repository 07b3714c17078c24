package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/media"
	"github.com/sandsky/travel-backend/internal/repository/ports"
)

var ErrGalleryValidation = errors.New("gallery upload validation failed")

var allowedGalleryMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type GalleryServiceConfig struct {
	Bucket       string
	MaxBytes     int64
	MaxDimension int
}

type GalleryUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
	Caption     *string
	Position    int
}

type GalleryService struct {
	destinations ports.DestinationRepository
	storage      ports.ObjectStorage

	bucket       string
	maxBytes     int64
	maxDimension int
	now          func() time.Time
}

func NewGalleryService(destinationRepo ports.DestinationRepository, storage ports.ObjectStorage, cfg GalleryServiceConfig) *GalleryService {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = media.DefaultMaxBytes
	}
	maxDimension := cfg.MaxDimension
	if maxDimension <= 0 {
		maxDimension = media.DefaultMaxDimension
	}
	return &GalleryService{
		destinations: destinationRepo,
		storage:      storage,
		bucket:       strings.TrimSpace(cfg.Bucket),
		maxBytes:     maxBytes,
		maxDimension: maxDimension,
		now:          time.Now,
	}
}

// Upload validates the image, stores it and records a gallery row with its
// probed dimensions.
func (s *GalleryService) Upload(ctx context.Context, destinationID uuid.UUID, upload GalleryUpload) (*domain.DestinationGalleryImage, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: object storage not configured", ErrGalleryValidation)
	}
	dest, err := s.destinations.FindByID(ctx, destinationID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	if upload.Size <= 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrGalleryValidation)
	}
	if upload.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrGalleryValidation, s.maxBytes)
	}
	contentType := media.NormalizeContentType(upload.ContentType, upload.FileName)
	if _, ok := allowedGalleryMIMEs[contentType]; !ok {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrGalleryValidation, contentType)
	}

	data, info, err := media.Inspect(upload.Reader, upload.FileName, contentType, s.maxDimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGalleryValidation, err)
	}

	objectKey := fmt.Sprintf("destinations/%s/gallery/%s%s",
		dest.Slug, s.now().UTC().Format("20060102T150405"), extensionFor(info.ContentType))
	url, err := s.storage.Upload(ctx, s.bucket, objectKey, info.ContentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	return s.destinations.AddGalleryImage(ctx, &domain.DestinationGalleryImage{
		DestinationID: dest.ID,
		ImageURL:      url,
		Caption:       upload.Caption,
		Position:      upload.Position,
		Width:         &info.Width,
		Height:        &info.Height,
	})
}

// ProbeMissingDimensions backfills width/height for gallery rows that predate
// dimension tracking, reading each object back from storage.
func (s *GalleryService) ProbeMissingDimensions(ctx context.Context) (int, int, error) {
	if s.storage == nil {
		return 0, 0, fmt.Errorf("%w: object storage not configured", ErrGalleryValidation)
	}
	images, err := s.destinations.ListGalleryImagesMissingDimensions(ctx)
	if err != nil {
		return 0, 0, err
	}

	updated, failed := 0, 0
	for _, img := range images {
		key := objectKeyFromURL(img.ImageURL)
		if key == "" {
			failed++
			continue
		}
		reader, err := s.storage.Download(ctx, s.bucket, key)
		if err != nil {
			failed++
			continue
		}
		width, height, err := media.DecodeDimensions(reader)
		_ = reader.Close()
		if err != nil {
			failed++
			continue
		}
		if err = s.destinations.SetGalleryImageDimensions(ctx, img.ID, width, height); err != nil {
			failed++
			continue
		}
		updated++
	}
	return updated, failed, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// objectKeyFromURL strips the scheme and host from a stored public URL.
func objectKeyFromURL(url string) string {
	trimmed := url
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(trimmed, prefix) {
			trimmed = trimmed[len(prefix):]
			if idx := strings.Index(trimmed, "/"); idx >= 0 {
				return strings.TrimLeft(trimmed[idx:], "/")
			}
			return ""
		}
	}
	return strings.TrimLeft(trimmed, "/")
}
