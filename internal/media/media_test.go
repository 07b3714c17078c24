package media

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInspectAcceptsTypicalUpload(t *testing.T) {
	data := pngBytes(t, 200, 200)

	out, info, err := Inspect(bytes.NewReader(data), "photo.png", "image/png", 3840)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Width != 200 || info.Height != 200 {
		t.Errorf("dimensions = %dx%d, want 200x200", info.Width, info.Height)
	}
	if info.ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", info.ContentType)
	}
	if !bytes.Equal(out, data) {
		t.Error("Inspect should hand back the original bytes")
	}
}

func TestInspectRejectsOversizedSide(t *testing.T) {
	// Narrow strip: tiny pixel count but one side over the limit.
	data := pngBytes(t, 4000, 10)

	if _, _, err := Inspect(bytes.NewReader(data), "strip.png", "image/png", 3840); err == nil {
		t.Fatal("expected error for a 4000px wide image with a 3840px limit")
	}
}

func TestInspectDefaultsDimensionLimit(t *testing.T) {
	data := pngBytes(t, 64, 64)
	if _, _, err := Inspect(bytes.NewReader(data), "icon.png", "image/png", 0); err != nil {
		t.Fatalf("Inspect with zero limit: %v", err)
	}

	data = pngBytes(t, 10, DefaultMaxDimension+1)
	if _, _, err := Inspect(bytes.NewReader(data), "tall.png", "image/png", 0); err == nil {
		t.Fatal("expected the default limit to apply when none is given")
	}
}

func TestInspectRejectsEmptyAndBogusData(t *testing.T) {
	if _, _, err := Inspect(bytes.NewReader(nil), "empty.png", "image/png", 3840); err == nil {
		t.Error("expected error for empty data")
	}
	if _, _, err := Inspect(strings.NewReader("not an image"), "bad.png", "image/png", 3840); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestNormalizeContentType(t *testing.T) {
	cases := []struct {
		value    string
		fileName string
		want     string
	}{
		{"image/png", "x.png", "image/png"},
		{"image/jpg", "x.jpg", "image/jpeg"},
		{"IMAGE/WEBP ", "x.webp", "image/webp"},
		{"", "photo.JPG", "image/jpeg"},
		{"", "photo.png", "image/png"},
		{"", "photo.webp", "image/webp"},
		{"", "photo", "image/jpeg"},
	}
	for _, tc := range cases {
		if got := NormalizeContentType(tc.value, tc.fileName); got != tc.want {
			t.Errorf("NormalizeContentType(%q, %q) = %q, want %q", tc.value, tc.fileName, got, tc.want)
		}
	}
}
