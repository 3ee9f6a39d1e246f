package images

import (
	"image/color"
	"testing"
)

var testSVG = []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50" fill="#000000"/></svg>`)

func TestRasterizeSVGToImage(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"intrinsic", 0, 0, 100, 50},
		{"scale_by_width", 200, 0, 200, 100},
		{"scale_by_height", 0, 200, 400, 200},
		{"stretch", 150, 150, 150, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVGToImage(testSVG, tt.w, tt.h, color.White)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Fatalf("unexpected bounds: %v", img.Bounds())
			}
		})
	}
}

func TestRasterizeSVGToImage_Transparent(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect x="5" width="5" height="10" fill="#000000"/></svg>`)
	img, err := RasterizeSVGToImage(svg, 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a := img.RGBAAt(1, 5).A; a != 0 {
		t.Errorf("unpainted pixel alpha = %d, want 0", a)
	}
	if a := img.RGBAAt(8, 5).A; a != 255 {
		t.Errorf("painted pixel alpha = %d, want 255", a)
	}
}

func TestSVGSize(t *testing.T) {
	w, h, err := SVGSize(testSVG)
	if err != nil || w != 100 || h != 50 {
		t.Errorf("SVGSize() = %v, %v, %v", w, h, err)
	}
}
