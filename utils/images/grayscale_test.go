package images

import (
	"image"
	"image/color"
	"testing"
)

func TestIsGrayscale(t *testing.T) {
	gray := image.NewRGBA(image.Rect(0, 0, 2, 2))
	gray.Set(0, 0, color.RGBA{10, 10, 10, 255})
	if !IsGrayscale(gray) {
		t.Error("IsGrayscale() = false for gray pixels")
	}
	gray.Set(1, 1, color.RGBA{10, 20, 10, 255})
	if IsGrayscale(gray) {
		t.Error("IsGrayscale() = true for colored pixel")
	}
	if !IsGrayscale(image.NewGray(image.Rect(0, 0, 1, 1))) {
		t.Error("IsGrayscale() = false for *image.Gray")
	}
}

func TestMonochrome(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := range 4 {
		src.Set(x, 0, color.Black)
		src.Set(x, 1, color.White)
	}

	m := Monochrome(src, 0, 0)
	if m.Bounds().Dx() != 4 || m.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", m.Bounds())
	}
	for x := range 4 {
		if m.ColorIndexAt(x, 0) != 0 || m.ColorIndexAt(x, 1) != 1 {
			t.Errorf("column %d: %d %d", x, m.ColorIndexAt(x, 0), m.ColorIndexAt(x, 1))
		}
	}

	if r := Monochrome(src, 8, 4); r.Bounds().Dx() != 8 || r.Bounds().Dy() != 4 {
		t.Errorf("resized bounds = %v", r.Bounds())
	}
}

func TestFlatten(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 6, 6))
	out := Flatten(src)
	if out.Bounds().Min != (image.Point{}) || out.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Flatten() = %v %v", out.Bounds(), out.RGBAAt(0, 0))
	}
}
