package area

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var namedColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"aqua":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"fuchsia": {255, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"silver":  {192, 192, 192, 255},
	"maroon":  {128, 0, 0, 255},
	"olive":   {128, 128, 0, 255},
	"navy":    {0, 0, 128, 255},
	"purple":  {128, 0, 128, 255},
	"teal":    {0, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
}

// Black is the default text and border color.
var Black = color.RGBA{A: 255}

// ParseColor understands "#rgb", "#rrggbb", "rgb(r,g,b)" (numbers or
// percentages) and basic named colors.
func ParseColor(s string) (color.RGBA, error) {
	lexer := css.NewLexer(parse.NewInputString(strings.TrimSpace(s)))

	var (
		fn   string
		args []float64
	)
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if fn == "" {
				return color.RGBA{}, fmt.Errorf("malformed color %q", s)
			}
			return color.RGBA{}, fmt.Errorf("unterminated color function %q", s)
		case css.WhitespaceToken, css.CommaToken:
			continue
		case css.HashToken:
			return parseHex(string(data[1:]), s)
		case css.IdentToken:
			if c, ok := namedColors[strings.ToLower(string(data))]; ok {
				return c, nil
			}
			return color.RGBA{}, fmt.Errorf("unknown color name %q", s)
		case css.FunctionToken:
			fn = strings.ToLower(strings.TrimSuffix(string(data), "("))
			if fn != "rgb" && fn != "rgba" {
				return color.RGBA{}, fmt.Errorf("unsupported color function %q", s)
			}
		case css.NumberToken:
			v, err := strconv.ParseFloat(string(data), 64)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("malformed color %q: %w", s, err)
			}
			args = append(args, v)
		case css.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(string(data), "%"), 64)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("malformed color %q: %w", s, err)
			}
			args = append(args, v*255/100)
		case css.RightParenthesisToken:
			if len(args) < 3 {
				return color.RGBA{}, fmt.Errorf("color function needs 3 components %q", s)
			}
			return color.RGBA{R: clamp8(args[0]), G: clamp8(args[1]), B: clamp8(args[2]), A: 255}, nil
		default:
			return color.RGBA{}, fmt.Errorf("malformed color %q", s)
		}
	}
}

func parseHex(h, orig string) (color.RGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("malformed hex color %q", orig)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("malformed hex color %q: %w", orig, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// FormatColor returns "#rrggbb".
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Gray returns luminance of the color in range 0 (black) - 255 (white).
func Gray(c color.RGBA) uint8 {
	return uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000)
}

// Lighten shifts the color towards white (factor > 0) or black (factor < 0),
// factor in range -1..1.
func Lighten(c color.RGBA, factor float64) color.RGBA {
	adj := func(v uint8) uint8 {
		f := float64(v)
		if factor >= 0 {
			f += (255 - f) * factor
		} else {
			f += f * factor
		}
		return clamp8(f)
	}
	return color.RGBA{R: adj(c.R), G: adj(c.G), B: adj(c.B), A: c.A}
}
