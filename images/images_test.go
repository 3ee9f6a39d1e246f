package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFileRegistry_Load(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t, 144, 72)
	if err := os.WriteFile(filepath.Join(dir, "a.png"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20"/>`
	if err := os.WriteFile(filepath.Join(dir, "v.svg"), []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(dir, 144, zaptest.NewLogger(t))

	tests := []struct {
		name         string
		uri          string
		wantMime     string
		wantW, wantH int
	}{
		{"relative png", "a.png", "image/png", 72000, 36000},
		{"file uri", "file://" + filepath.Join(dir, "a.png"), "image/png", 72000, 36000},
		{"data uri", "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), "image/png", 72000, 36000},
		{"svg", "v.svg", "image/svg+xml", 40000, 20000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := r.Load(tt.uri)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if img.MimeType != tt.wantMime {
				t.Errorf("MimeType = %q, want %q", img.MimeType, tt.wantMime)
			}
			if w, h := img.SizeMpt(); w != tt.wantW || h != tt.wantH {
				t.Errorf("SizeMpt() = %d x %d, want %d x %d", w, h, tt.wantW, tt.wantH)
			}
			px, err := img.Rasterize(20, 10)
			if err != nil || px.Bounds().Dx() != 20 || px.Bounds().Dy() != 10 {
				t.Errorf("Rasterize() = %v, %v", px.Bounds(), err)
			}
		})
	}

	first, _ := r.Load("a.png")
	second, _ := r.Load("a.png")
	if first != second {
		t.Error("registry does not cache")
	}
}

func TestFileRegistry_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not an image at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewRegistry(dir, 72, zaptest.NewLogger(t))

	if _, err := r.Load("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want ErrNotFound", err)
	}
	if _, err := r.Load("https://example.com/x.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("remote error = %v, want ErrNotFound", err)
	}
	if _, err := r.Load("junk.png"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("junk error = %v, want decode error", err)
	}
	if _, err := r.Load("data:image/png;base64,%%%"); err == nil {
		t.Error("malformed data uri accepted")
	}
}

func TestPlaceholder(t *testing.T) {
	img := Placeholder(10, 5)
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 5 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}
