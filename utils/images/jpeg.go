package images

import (
	"bytes"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// IsJPEG checks SOI marker.
func IsJPEG(data []byte) bool {
	return len(data) > 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
}

// EncodeJPEG encodes img dropping transparency, used to embed raster images
// with DCT compression.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, Flatten(img), imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
