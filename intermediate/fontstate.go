package intermediate

import (
	"fmt"
	"strconv"

	"arender/area"
)

// Attr is a single serialized font attribute.
type Attr struct {
	Name  string
	Value string
}

// FontState tracks the last font known to an output so only changed
// attributes need to be written. Zero value has nothing set, so the first
// Changes call reports every attribute.
type FontState struct {
	cur   Font
	valid bool
}

func (s *FontState) Reset() {
	*s = FontState{}
}

// Current returns the font built so far.
func (s *FontState) Current() Font {
	return s.cur
}

// Changes records f and returns attributes differing from the previous font.
func (s *FontState) Changes(f Font) []Attr {
	var out []Attr
	if !s.valid || s.cur.Family != f.Family {
		out = append(out, Attr{"family", f.Family})
	}
	if !s.valid || s.cur.Style != f.Style {
		out = append(out, Attr{"style", f.Style})
	}
	if !s.valid || s.cur.Weight != f.Weight {
		out = append(out, Attr{"weight", strconv.Itoa(f.Weight)})
	}
	if !s.valid || s.cur.Variant != f.Variant {
		out = append(out, Attr{"variant", f.Variant})
	}
	if !s.valid || s.cur.Size != f.Size {
		out = append(out, Attr{"size", strconv.Itoa(f.Size)})
	}
	if !s.valid || s.cur.Color != f.Color {
		out = append(out, Attr{"color", area.FormatColor(f.Color)})
	}
	s.cur, s.valid = f, true
	return out
}

// Apply merges one serialized attribute into the current font.
func (s *FontState) Apply(a Attr) error {
	var err error
	switch a.Name {
	case "family":
		s.cur.Family = a.Value
	case "style":
		s.cur.Style = a.Value
	case "weight":
		s.cur.Weight, err = strconv.Atoi(a.Value)
	case "variant":
		s.cur.Variant = a.Value
	case "size":
		s.cur.Size, err = strconv.Atoi(a.Value)
	case "color":
		s.cur.Color, err = area.ParseColor(a.Value)
	default:
		return fmt.Errorf("unknown font attribute %q", a.Name)
	}
	if err != nil {
		return fmt.Errorf("malformed font %s %q: %w", a.Name, a.Value, err)
	}
	s.valid = true
	return nil
}
