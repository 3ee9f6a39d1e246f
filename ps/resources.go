package ps

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"arender/events"
	"arender/fonts"
	imgutil "arender/utils/images"
)

// encodedImage is image data ready to be written, either DCT compressed
// color or raw gray samples.
type encodedImage struct {
	width, height int
	gray          bool
	data          []byte
}

// operator paints the image reading samples from src.
func (e *encodedImage) operator(src string) string {
	head := fmt.Sprintf("%d %d 8 [%d 0 0 %d 0 0]", e.width, e.height, e.width, e.height)
	if e.gray {
		return head + " " + src + " image"
	}
	return head + " " + src + " /DCTDecode filter false 3 colorimage"
}

// form is an image defined once in setup and painted with execform.
type form struct {
	name string
	img  *encodedImage
}

// resources tracks fonts and images used by pages.
type resources struct {
	h        *DocumentHandler
	fonts    map[string]bool
	keys     map[fonts.Triplet]string
	forms    []*form
	byURI    map[string]*form
	missing  map[string]bool
	notFound map[string]bool
}

func newResources(h *DocumentHandler) *resources {
	return &resources{
		h:        h,
		fonts:    make(map[string]bool),
		keys:     make(map[fonts.Triplet]string),
		byURI:    make(map[string]*form),
		missing:  make(map[string]bool),
		notFound: make(map[string]bool),
	}
}

// fontKey resolves the registry key of a triplet and records its use.
func (r *resources) fontKey(t fonts.Triplet) string {
	key, ok := r.keys[t]
	if !ok {
		key, _ = r.h.opts.Fonts.Lookup(t)
		r.keys[t] = key
	}
	r.fonts[key] = true
	return key
}

// usedFonts returns used keys in registry order.
func (r *resources) usedFonts() []string {
	var out []string
	for _, k := range r.h.opts.Fonts.Keys() {
		if r.fonts[k] {
			out = append(out, k)
		}
	}
	return out
}

// glyphMissing reports a glyph once per font.
func (r *resources) glyphMissing(key string, ch rune) {
	id := fmt.Sprintf("%s/%U", key, ch)
	if r.missing[id] {
		return
	}
	r.missing[id] = true
	r.h.events.Broadcast(events.New(events.SeverityWarning, events.GlyphNotAvailable,
		"Glyph not available, using substitute",
		"font", r.h.opts.Fonts.Descriptor(key).PostScriptName, "char", string(ch)))
}

// loadImage returns pixels for uri sized for a w x h millipoint box. Failures
// are reported once per uri and yield nil.
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
		pw = max(int(float64(w)/72000*r.h.opts.ImageDPI), 1)
		ph = max(int(float64(h)/72000*r.h.opts.ImageDPI), 1)
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
	r.h.events.Broadcast(events.New(events.SeverityWarning, events.ImageNotFound,
		"Image skipped", "uri", uri, "reason", reason))
}

// encode prepares pixels for embedding.
func (r *resources) encode(img image.Image) (*encodedImage, error) {
	b := img.Bounds()
	e := &encodedImage{width: b.Dx(), height: b.Dy()}
	if imgutil.IsGrayscale(img) {
		flat := imgutil.Flatten(img)
		e.gray = true
		e.data = make([]byte, 0, e.width*e.height)
		for y := 0; y < e.height; y++ {
			for x := 0; x < e.width; x++ {
				e.data = append(e.data, flat.RGBAAt(x, y).R)
			}
		}
		return e, nil
	}
	data, err := imgutil.EncodeJPEG(img, r.h.opts.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("unable to encode image: %w", err)
	}
	e.data = data
	return e, nil
}

// formFor returns the form of uri, defining it on first use. Forms are only
// used for optimized level 3 output.
func (r *resources) formFor(uri string, img image.Image) (*form, error) {
	if f, ok := r.byURI[uri]; ok {
		return f, nil
	}
	enc, err := r.encode(img)
	if err != nil {
		return nil, err
	}
	f := &form{name: fmt.Sprintf("Form%d", len(r.forms)+1), img: enc}
	r.forms = append(r.forms, f)
	r.byURI[uri] = f
	r.h.log.Debug("Image form defined", zap.String("uri", uri), zap.String("form", f.name))
	return f, nil
}

func (r *resources) useForms() bool {
	return r.h.opts.OptimizeResources && r.h.opts.LanguageLevel >= 3
}

// writeForm defines form f with its data in a reusable stream.
func (r *resources) writeForm(g *Generator, f *form) error {
	data := f.name + ":Data"
	g.Comment("BeginResource", "form", f.name)
	g.Writeln("/"+data, "currentfile /ASCII85Decode filter /ReusableStreamDecode filter")
	g.ASCII85(f.img.data)
	g.Writeln("def")
	g.Writeln("/"+f.name, "<< /FormType 1 /BBox [0 0 1 1] /Matrix [1 0 0 1 0 0]")
	g.Writeln("/PaintProc { pop", f.img.operator(data+" dup 0 setfileposition"), "} bind >> def")
	g.Comment("EndResource")
	return g.Err()
}
