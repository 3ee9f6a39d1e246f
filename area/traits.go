package area

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"arender/fonts"
)

// Trait identifies an optional attribute attached to an area.
type Trait int

const (
	TraitBorderBefore Trait = iota + 1
	TraitBorderAfter
	TraitBorderStart
	TraitBorderEnd
	TraitPaddingBefore
	TraitPaddingAfter
	TraitPaddingStart
	TraitPaddingEnd
	TraitSpaceBefore
	TraitSpaceAfter
	TraitStartIndent
	TraitEndIndent
	TraitBackground
	TraitColor
	TraitFont
	TraitFontSize
	TraitID
	TraitInternalLink
	TraitExternalLink
	TraitUnderline
	TraitOverline
	TraitLineThrough
	TraitStructurePointer
)

var traitNames = map[Trait]string{
	TraitBorderBefore:     "border-before",
	TraitBorderAfter:      "border-after",
	TraitBorderStart:      "border-start",
	TraitBorderEnd:        "border-end",
	TraitPaddingBefore:    "padding-before",
	TraitPaddingAfter:     "padding-after",
	TraitPaddingStart:     "padding-start",
	TraitPaddingEnd:       "padding-end",
	TraitSpaceBefore:      "space-before",
	TraitSpaceAfter:       "space-after",
	TraitStartIndent:      "start-indent",
	TraitEndIndent:        "end-indent",
	TraitBackground:       "background",
	TraitColor:            "color",
	TraitFont:             "font",
	TraitFontSize:         "font-size",
	TraitID:               "id",
	TraitInternalLink:     "internal-link",
	TraitExternalLink:     "external-link",
	TraitUnderline:        "underline",
	TraitOverline:         "overline",
	TraitLineThrough:      "line-through",
	TraitStructurePointer: "structure-pointer",
}

func (t Trait) String() string {
	if s, ok := traitNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Trait(%d)", int(t))
}

// Traits is a sparse set of area attributes. A missing key means the trait is
// not set, getters return zero values (nil for pointers) in that case.
type Traits map[Trait]any

func (t Traits) Has(k Trait) bool {
	_, ok := t[k]
	return ok
}

// Set stores value, a nil Traits map is not allowed here.
func (t Traits) Set(k Trait, v any) {
	t[k] = v
}

func (t Traits) Int(k Trait) int {
	if v, ok := t[k].(int); ok {
		return v
	}
	return 0
}

func (t Traits) Bool(k Trait) bool {
	if v, ok := t[k].(bool); ok {
		return v
	}
	return false
}

func (t Traits) Text(k Trait) string {
	if v, ok := t[k].(string); ok {
		return v
	}
	return ""
}

func (t Traits) Border(k Trait) *BorderProps {
	if v, ok := t[k].(*BorderProps); ok {
		return v
	}
	return nil
}

func (t Traits) Background() *Background {
	if v, ok := t[TraitBackground].(*Background); ok {
		return v
	}
	return nil
}

// Color returns the color trait and whether it was set.
func (t Traits) Color() (color.RGBA, bool) {
	v, ok := t[TraitColor].(color.RGBA)
	return v, ok
}

func (t Traits) Font() (fonts.Triplet, bool) {
	v, ok := t[TraitFont].(fonts.Triplet)
	return v, ok
}

// BorderProps describes one border edge.
type BorderProps struct {
	Style BorderStyle
	Width int
	Color color.RGBA
	Mode  BorderMode
}

// ClippedWidth is the part of the border lying outside of the border
// rectangle: half the width for collapse-outer borders, zero otherwise.
func (b *BorderProps) ClippedWidth() int {
	if b == nil || b.Mode != BorderModeCollapseOuter {
		return 0
	}
	return b.Width / 2
}

// EffectiveWidth is zero for absent or invisible borders.
func (b *BorderProps) EffectiveWidth() int {
	if b == nil || !b.Style.Visible() {
		return 0
	}
	return b.Width
}

// String returns "(style,#rrggbb,width[,mode])".
func (b *BorderProps) String() string {
	if b == nil {
		return ""
	}
	s := "(" + b.Style.String() + "," + FormatColor(b.Color) + "," + strconv.Itoa(b.Width)
	if b.Mode != BorderModeSeparate {
		s += "," + b.Mode.String()
	}
	return s + ")"
}

// ParseBorderProps parses the textual form produced by String.
func ParseBorderProps(s string) (*BorderProps, error) {
	v := strings.TrimSpace(s)
	if !strings.HasPrefix(v, "(") || !strings.HasSuffix(v, ")") {
		return nil, fmt.Errorf("malformed border specification %q", s)
	}
	parts := splitTopLevel(v[1 : len(v)-1])
	if len(parts) < 3 || len(parts) > 4 {
		return nil, fmt.Errorf("malformed border specification %q", s)
	}
	style, err := ParseBorderStyle(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("malformed border specification %q: %w", s, err)
	}
	c, err := ParseColor(parts[1])
	if err != nil {
		return nil, fmt.Errorf("malformed border specification %q: %w", s, err)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, fmt.Errorf("malformed border specification %q: %w", s, err)
	}
	bp := &BorderProps{Style: style, Color: c, Width: w}
	if len(parts) == 4 {
		if bp.Mode, err = ParseBorderMode(strings.TrimSpace(parts[3])); err != nil {
			return nil, fmt.Errorf("malformed border specification %q: %w", s, err)
		}
	}
	return bp, nil
}

// splitTopLevel splits on commas outside of parentheses.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// Background describes background color and image of an area.
type Background struct {
	Color         *color.RGBA
	URI           string
	Repeat        BackgroundRepeat
	HorizontalPos int
	VerticalPos   int
}

// String returns "color=#rrggbb;url=...;repeat=...;horiz=n;vert=n" with
// unset parts omitted.
func (b *Background) String() string {
	if b == nil {
		return ""
	}
	var parts []string
	if b.Color != nil {
		parts = append(parts, "color="+FormatColor(*b.Color))
	}
	if b.URI != "" {
		parts = append(parts, "url="+b.URI, "repeat="+b.Repeat.String())
		parts = append(parts, "horiz="+strconv.Itoa(b.HorizontalPos), "vert="+strconv.Itoa(b.VerticalPos))
	}
	return strings.Join(parts, ";")
}

// ParseBackground parses the form produced by Background.String.
func ParseBackground(s string) (*Background, error) {
	bg := &Background{}
	for part := range strings.SplitSeq(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("malformed background %q", s)
		}
		var err error
		switch strings.TrimSpace(k) {
		case "color":
			var c color.RGBA
			if c, err = ParseColor(v); err == nil {
				bg.Color = &c
			}
		case "url":
			bg.URI = strings.TrimSpace(v)
		case "repeat":
			bg.Repeat, err = ParseBackgroundRepeat(strings.TrimSpace(v))
		case "horiz":
			bg.HorizontalPos, err = strconv.Atoi(strings.TrimSpace(v))
		case "vert":
			bg.VerticalPos, err = strconv.Atoi(strings.TrimSpace(v))
		default:
			err = fmt.Errorf("unknown key %q", k)
		}
		if err != nil {
			return nil, fmt.Errorf("malformed background %q: %w", s, err)
		}
	}
	return bg, nil
}
