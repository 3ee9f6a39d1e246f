package pcl

import (
	"fmt"
	"image"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"arender/events"
	"arender/fonts"
)

type faceKey struct {
	font string
	// pixel size in 1/64
	size int
}

// resources caches font faces and reports each problem once.
type resources struct {
	h         *DocumentHandler
	keys      map[fonts.Triplet]string
	faces     map[faceKey]font.Face
	missing   map[string]bool
	notFound  map[string]bool
	fallbacks map[string]bool
}

func newResources(h *DocumentHandler) *resources {
	return &resources{
		h:         h,
		keys:      make(map[fonts.Triplet]string),
		faces:     make(map[faceKey]font.Face),
		missing:   make(map[string]bool),
		notFound:  make(map[string]bool),
		fallbacks: make(map[string]bool),
	}
}

func (r *resources) fontKey(t fonts.Triplet) string {
	key, ok := r.keys[t]
	if !ok {
		key, _ = r.h.opts.Fonts.Lookup(t)
		r.keys[t] = key
	}
	return key
}

// face returns a face of font key with em size px pixels.
func (r *resources) face(key string, px float64) (font.Face, error) {
	fk := faceKey{font: key, size: int(px * 64)}
	if f, ok := r.faces[fk]; ok {
		return f, nil
	}
	desc := r.h.opts.Fonts.Descriptor(key)
	if desc.Face == nil {
		return nil, fmt.Errorf("font %s has no outlines", key)
	}
	f, err := opentype.NewFace(desc.Face, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("unable to create face for %s: %w", key, err)
	}
	r.faces[fk] = f
	return f, nil
}

func (r *resources) glyphMissing(key string, ch rune) {
	id := fmt.Sprintf("%s/%U", key, ch)
	if r.missing[id] {
		return
	}
	r.missing[id] = true
	r.h.events.Broadcast(events.New(events.SeverityWarning, events.GlyphNotAvailable,
		"Glyph not available", "font", r.h.opts.Fonts.Descriptor(key).PostScriptName, "char", string(ch)))
}

// bitmapFallback reports rasterization of content for a reason once.
func (r *resources) bitmapFallback(reason string) {
	if r.fallbacks[reason] {
		return
	}
	r.fallbacks[reason] = true
	r.h.events.Broadcast(events.New(events.SeverityInfo, events.BitmapFallback,
		"Content printed as bitmap", "reason", reason))
}

// loadImage returns pixels for uri, vector images are rasterized to cover
// w x h dots.
func (r *resources) loadImage(uri string, w, h int) image.Image {
	if r.h.opts.Images == nil {
		r.imageNotFound(uri, "no image registry")
		return nil
	}
	img, err := r.h.opts.Images.Load(uri)
	if err != nil {
		r.imageNotFound(uri, err.Error())
		return nil
	}
	pw, ph := 0, 0
	if img.IsVector() {
		pw, ph = max(w, 1), max(h, 1)
	}
	px, err := img.Rasterize(pw, ph)
	if err != nil {
		r.imageNotFound(uri, err.Error())
		return nil
	}
	return px
}

func (r *resources) imageNotFound(uri, reason string) {
	if r.notFound[uri] {
		return
	}
	r.notFound[uri] = true
	r.h.log.Debug("Image skipped", zap.String("uri", uri))
	r.h.events.Broadcast(events.New(events.SeverityWarning, events.ImageNotFound,
		"Image skipped", "uri", uri, "reason", reason))
}
