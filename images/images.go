// Package images loads images referenced from the area tree. Painters ask the
// registry for an image by URI and never decode anything themselves.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	imgutil "arender/utils/images"
)

// ErrNotFound is returned when image data could not be located.
var ErrNotFound = errors.New("image not found")

const svgMime = "image/svg+xml"

// Image is a loaded image. Raster images have Raster set, vector images
// keep their source in SVG and are rasterized on demand.
type Image struct {
	URI      string
	MimeType string
	Width    int // pixels
	Height   int // pixels
	DPI      float64
	Raster   image.Image
	SVG      []byte
	// Data holds the original encoded bytes.
	Data []byte
}

// IsVector reports whether the image keeps vector data.
func (i *Image) IsVector() bool {
	return i.SVG != nil
}

// SizeMpt returns the intrinsic size in millipoints. SVG user units are
// points.
func (i *Image) SizeMpt() (int, int) {
	if i.IsVector() {
		return i.Width * 1000, i.Height * 1000
	}
	dpi := i.DPI
	if dpi <= 0 {
		dpi = 72
	}
	return int(float64(i.Width) * 72000 / dpi), int(float64(i.Height) * 72000 / dpi)
}

// Rasterize returns pixels of the requested size, zero size keeps intrinsic
// dimensions.
func (i *Image) Rasterize(w, h int) (image.Image, error) {
	if i.IsVector() {
		return imgutil.RasterizeSVGToImage(i.SVG, w, h, color.White)
	}
	if i.Raster == nil {
		return nil, fmt.Errorf("image %s has no pixels", i.URI)
	}
	if w <= 0 || h <= 0 || (w == i.Width && h == i.Height) {
		return i.Raster, nil
	}
	return imaging.Resize(i.Raster, w, h, imaging.Lanczos), nil
}

// Registry resolves image URIs.
type Registry interface {
	Load(uri string) (*Image, error)
}

// FileRegistry loads local files and data URIs, caching results per URI.
// Failed loads are cached as well.
type FileRegistry struct {
	baseDir string
	dpi     float64
	log     *zap.Logger

	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	img *Image
	err error
}

// NewRegistry creates registry resolving relative paths against baseDir.
// dpi is the resolution assumed for raster images.
func NewRegistry(baseDir string, dpi float64, log *zap.Logger) *FileRegistry {
	return &FileRegistry{
		baseDir: baseDir,
		dpi:     dpi,
		log:     log.Named("images"),
		cache:   make(map[string]cached),
	}
}

func (r *FileRegistry) Load(uri string) (*Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache[uri]; ok {
		return c.img, c.err
	}
	img, err := r.load(uri)
	r.cache[uri] = cached{img: img, err: err}
	if err != nil {
		r.log.Debug("Unable to load image", zap.String("uri", uri), zap.Error(err))
	}
	return img, err
}

func (r *FileRegistry) load(uri string) (*Image, error) {
	data, err := r.read(uri)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("unable to decode image %s: %w", uri, err)
	}
	img.URI = uri
	return img, nil
}

func (r *FileRegistry) read(uri string) ([]byte, error) {
	switch {
	case strings.HasPrefix(uri, "data:"):
		return decodeDataURI(uri)
	case strings.HasPrefix(uri, "file:"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("malformed image uri %q: %w", uri, err)
		}
		return readFile(u.Path)
	case strings.Contains(uri, "://"):
		return nil, fmt.Errorf("%w: unsupported scheme in %q", ErrNotFound, uri)
	}
	path := uri
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	return readFile(path)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return data, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data uri: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data uri: %w", err)
	}
	return []byte(s), nil
}

// Decode sniffs and decodes image data.
func Decode(data []byte, dpi float64) (*Image, error) {
	if isSVG(data) {
		w, h, err := imgutil.SVGSize(data)
		if err != nil {
			return nil, err
		}
		return &Image{MimeType: svgMime, Width: int(w), Height: int(h), SVG: data, Data: data}, nil
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, err
	}
	if kind == filetype.Unknown {
		return nil, errors.New("unknown image type")
	}
	raster, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Image{
		MimeType: kind.MIME.Value,
		Width:    raster.Bounds().Dx(),
		Height:   raster.Bounds().Dy(),
		DPI:      dpi,
		Raster:   raster,
		Data:     data,
	}, nil
}

func isSVG(data []byte) bool {
	head := data[:min(len(data), 1024)]
	return bytes.Contains(head, []byte("<svg")) && !bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'})
}

// Placeholder is drawn instead of missing images when configured.
func Placeholder(w, h int) image.Image {
	w, h = max(w, 2), max(h, 2)
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := uint8(230)
			if x == 0 || y == 0 || x == w-1 || y == h-1 || x*h/w == y || (w-1-x)*h/w == y {
				c = 64
			}
			img.SetGray(x, y, color.Gray{Y: c})
		}
	}
	return img
}
