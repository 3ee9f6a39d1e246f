// Package fonts provides font metrics and descriptors to painters. Painters
// never load fonts themselves, they query a Registry by font key.
package fonts

import (
	"strconv"
	"strings"

	"golang.org/x/image/font/sfnt"
)

// Triplet selects a font the way area tree traits do.
type Triplet struct {
	Family string
	Style  string
	Weight int
}

// DefaultTriplet is used whenever nothing better could be found.
var DefaultTriplet = Triplet{Family: "sans-serif", Style: "normal", Weight: 400}

func (t Triplet) String() string {
	return t.Family + "," + t.Style + "," + strconv.Itoa(t.Weight)
}

// ParseTriplet reads "family,style,weight", missing parts take default values.
func ParseTriplet(s string) Triplet {
	t := DefaultTriplet
	parts := strings.Split(s, ",")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		t.Family = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		t.Style = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		if w, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			t.Weight = w
		}
	}
	return t
}

// Metrics answers glyph level questions. All results are in millipoints for
// the requested font size, which is also in millipoints.
type Metrics interface {
	Width(r rune, size int) int
	HasGlyph(r rune) bool
	Ascender(size int) int
	Descender(size int) int
}

// Descriptor describes the real font behind a key.
type Descriptor struct {
	Key            string
	Triplet        Triplet
	PostScriptName string
	// PCL font selection values
	PCLTypeface     int
	PCLStyle        int
	PCLStrokeWeight int
	Face            *sfnt.Font
}

// Registry maps font triplets to keys and keys to metrics.
type Registry interface {
	// Lookup always returns a usable key, exact is false when a substitution
	// took place.
	Lookup(t Triplet) (key string, exact bool)
	Metrics(key string) Metrics
	Descriptor(key string) Descriptor
	// Keys lists all keys in registration order.
	Keys() []string
}

// TextWidth sums glyph widths of s.
func TextWidth(m Metrics, s string, size int) int {
	w := 0
	for _, r := range s {
		w += m.Width(r, size)
	}
	return w
}
