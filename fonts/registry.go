package fonts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

type genericFamily int

const (
	familySans genericFamily = iota
	familySerif
	familyMono
)

var familyAliases = map[string]genericFamily{
	"sans-serif":      familySans,
	"sans":            familySans,
	"helvetica":       familySans,
	"arial":           familySans,
	"go":              familySans,
	"serif":           familySerif,
	"times":           familySerif,
	"times-roman":     familySerif,
	"times roman":     familySerif,
	"times new roman": familySerif,
	"monospace":       familyMono,
	"courier":         familyMono,
	"courier new":     familyMono,
	"go mono":         familyMono,
}

type faceDef struct {
	family genericFamily
	italic bool
	bold   bool
	ps     string
	ttf    []byte
}

// PCL typeface numbers: Arial, Times New and Courier.
var pclTypefaces = map[genericFamily]int{
	familySans:  16602,
	familySerif: 16901,
	familyMono:  4099,
}

// Go fonts carry no serif face, Times is backed by Go metrics and only
// differs in the name given to the output device.
var defaultFaces = []faceDef{
	{familySans, false, false, "Helvetica", goregular.TTF},
	{familySans, false, true, "Helvetica-Bold", gobold.TTF},
	{familySans, true, false, "Helvetica-Oblique", goitalic.TTF},
	{familySans, true, true, "Helvetica-BoldOblique", gobolditalic.TTF},
	{familySerif, false, false, "Times-Roman", goregular.TTF},
	{familySerif, false, true, "Times-Bold", gobold.TTF},
	{familySerif, true, false, "Times-Italic", goitalic.TTF},
	{familySerif, true, true, "Times-BoldItalic", gobolditalic.TTF},
	{familyMono, false, false, "Courier", gomono.TTF},
	{familyMono, false, true, "Courier-Bold", gomonobold.TTF},
	{familyMono, true, false, "Courier-Oblique", gomonoitalic.TTF},
	{familyMono, true, true, "Courier-BoldOblique", gomonobolditalic.TTF},
}

type entry struct {
	desc    Descriptor
	metrics *sfntMetrics
}

// DefaultRegistry serves the Go font family under standard PostScript names.
type DefaultRegistry struct {
	keys    []string
	entries map[string]*entry
	index   map[faceKey]string
}

type faceKey struct {
	family genericFamily
	italic bool
	bold   bool
}

// NewDefaultRegistry parses embedded Go fonts. Keys are F1..F12 in the order
// sans, serif, monospace with regular, bold, italic, bold italic variants.
func NewDefaultRegistry() (*DefaultRegistry, error) {
	r := &DefaultRegistry{
		entries: make(map[string]*entry),
		index:   make(map[faceKey]string),
	}
	parsed := make(map[*byte]*sfnt.Font)
	for i, fd := range defaultFaces {
		f, ok := parsed[&fd.ttf[0]]
		if !ok {
			var err error
			if f, err = sfnt.Parse(fd.ttf); err != nil {
				return nil, fmt.Errorf("unable to parse font %s: %w", fd.ps, err)
			}
			parsed[&fd.ttf[0]] = f
		}
		key := fmt.Sprintf("F%d", i+1)
		t := Triplet{Family: familyName(fd.family), Style: "normal", Weight: 400}
		if fd.italic {
			t.Style = "italic"
		}
		if fd.bold {
			t.Weight = 700
		}
		d := Descriptor{
			Key:            key,
			Triplet:        t,
			PostScriptName: fd.ps,
			PCLTypeface:    pclTypefaces[fd.family],
			Face:           f,
		}
		if fd.italic {
			d.PCLStyle = 1
		}
		if fd.bold {
			d.PCLStrokeWeight = 3
		}
		r.keys = append(r.keys, key)
		r.entries[key] = &entry{desc: d, metrics: newSfntMetrics(f)}
		r.index[faceKey{fd.family, fd.italic, fd.bold}] = key
	}
	return r, nil
}

func familyName(f genericFamily) string {
	switch f {
	case familySerif:
		return "serif"
	case familyMono:
		return "monospace"
	default:
		return "sans-serif"
	}
}

// Lookup resolves first known family of a comma separated list.
func (r *DefaultRegistry) Lookup(t Triplet) (string, bool) {
	exact := true
	family, found := familySans, false
	for name := range strings.SplitSeq(t.Family, ",") {
		name = strings.ToLower(strings.Trim(strings.TrimSpace(name), `"'`))
		if f, ok := familyAliases[name]; ok {
			family, found = f, true
			break
		}
	}
	if !found {
		exact = false
	}
	italic := false
	switch strings.ToLower(t.Style) {
	case "italic", "oblique", "backslant":
		italic = true
	case "", "normal":
	default:
		exact = false
	}
	bold := t.Weight >= 600
	if t.Weight%100 != 0 || t.Weight < 100 || t.Weight > 900 {
		exact = false
	}
	return r.index[faceKey{family, italic, bold}], exact
}

// Metrics returns metrics for the key, unknown keys get the first font.
func (r *DefaultRegistry) Metrics(key string) Metrics {
	return r.entry(key).metrics
}

func (r *DefaultRegistry) Descriptor(key string) Descriptor {
	return r.entry(key).desc
}

func (r *DefaultRegistry) Keys() []string {
	return r.keys
}

func (r *DefaultRegistry) entry(key string) *entry {
	if e, ok := r.entries[key]; ok {
		return e
	}
	return r.entries[r.keys[0]]
}

// sfntMetrics caches advances in font units, widths scale linearly with size.
type sfntMetrics struct {
	font      *sfnt.Font
	upem      int
	ascender  int
	descender int

	mu       sync.Mutex
	buf      sfnt.Buffer
	advances map[rune]int
}

func newSfntMetrics(f *sfnt.Font) *sfntMetrics {
	m := &sfntMetrics{
		font:     f,
		upem:     int(f.UnitsPerEm()),
		advances: make(map[rune]int),
	}
	// at ppem == upem one pixel is one font unit
	if fm, err := f.Metrics(&m.buf, fixed.I(m.upem), font.HintingNone); err == nil {
		m.ascender = fm.Ascent.Round()
		m.descender = -fm.Descent.Round()
	}
	return m
}

func (m *sfntMetrics) units(r rune) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.advances[r]; ok {
		return a, a >= 0
	}
	idx, err := m.font.GlyphIndex(&m.buf, r)
	if err != nil || idx == 0 {
		m.advances[r] = -1
		return -1, false
	}
	adv, err := m.font.GlyphAdvance(&m.buf, idx, fixed.I(m.upem), font.HintingNone)
	if err != nil {
		m.advances[r] = -1
		return -1, false
	}
	m.advances[r] = adv.Round()
	return m.advances[r], true
}

// Width of a missing glyph is the width of '?'.
func (m *sfntMetrics) Width(r rune, size int) int {
	a, ok := m.units(r)
	if !ok {
		if a, ok = m.units('?'); !ok {
			return 0
		}
	}
	return a * size / m.upem
}

func (m *sfntMetrics) HasGlyph(r rune) bool {
	_, ok := m.units(r)
	return ok
}

func (m *sfntMetrics) Ascender(size int) int {
	return m.ascender * size / m.upem
}

// Descender is negative, below the baseline.
func (m *sfntMetrics) Descender(size int) int {
	return m.descender * size / m.upem
}
