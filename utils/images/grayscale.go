package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// IsGrayscale reports whether img is grayscale (all pixels have R==G==B).
// NOTE: This function may be slow for large images, if speed is a problem it
// could be optimized.
func IsGrayscale(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R != c.G || c.G != c.B {
				return false
			}
		}
	}
	return true
}

// Flatten composes img over white, dropping transparency.
func Flatten(img image.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

var monochrome = color.Palette{color.Black, color.White}

// Monochrome scales img to w x h pixels (when both are positive) and dithers
// it to black and white with Floyd-Steinberg error diffusion. Index 0 of the
// result is black.
func Monochrome(img image.Image, w, h int) *image.Paletted {
	src := image.Image(Flatten(img))
	if w > 0 && h > 0 && (w != src.Bounds().Dx() || h != src.Bounds().Dy()) {
		src = imaging.Resize(src, w, h, imaging.Lanczos)
	}
	gray := imaging.Grayscale(src)
	out := image.NewPaletted(gray.Bounds(), monochrome)
	draw.FloydSteinberg.Draw(out, out.Bounds(), gray, gray.Bounds().Min)
	return out
}
