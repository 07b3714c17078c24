package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxBytes     = int64(10 * 1024 * 1024)
	DefaultMaxDimension = 3840
)

// Info is what gets probed from an uploaded or stored image.
type Info struct {
	Width       int
	Height      int
	ContentType string
}

// Inspect reads the image header, enforces the per-side dimension limit and
// hands back the raw bytes so callers can still upload them.
func Inspect(reader io.Reader, fileName, contentType string, maxDimension int) ([]byte, *Info, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("media: empty image data")
	}

	width, height, err := DecodeDimensions(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("media: decode dimensions: %w", err)
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if width > maxDimension || height > maxDimension {
		return nil, nil, fmt.Errorf("media: image is %dx%d, exceeds %dpx per side", width, height, maxDimension)
	}

	return data, &Info{
		Width:       width,
		Height:      height,
		ContentType: NormalizeContentType(contentType, fileName),
	}, nil
}

func DecodeDimensions(r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}

func NormalizeContentType(value, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	if ct != "" {
		if ct == "image/jpg" {
			return "image/jpeg"
		}
		return ct
	}
	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName)))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return strings.ToLower(mt)
		}
	}
	return "image/jpeg"
}
