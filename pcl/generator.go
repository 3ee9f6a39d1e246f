package pcl

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"

	"arender/geom"
)

const (
	esc = "\x1b"
	// UEL is the universal exit language sequence separating PJL and PCL.
	UEL = esc + "%-12345X"
)

// Generator writes PCL5 commands. Lengths are passed in millipoints and
// converted to decipoints (cursor and rectangles) or device dots (raster
// graphics). Write errors are sticky.
type Generator struct {
	w          *bufio.Writer
	resolution int
	err        error
}

func NewGenerator(w io.Writer, resolution int) *Generator {
	return &Generator{w: bufio.NewWriter(w), resolution: resolution}
}

func (g *Generator) Err() error {
	return g.err
}

func (g *Generator) Flush() error {
	if g.err != nil {
		return g.err
	}
	g.err = g.w.Flush()
	return g.err
}

// Write writes raw data.
func (g *Generator) Write(p []byte) (int, error) {
	if g.err != nil {
		return 0, g.err
	}
	var n int
	n, g.err = g.w.Write(p)
	return n, g.err
}

// Command writes parts as is.
func (g *Generator) Command(parts ...string) error {
	for _, p := range parts {
		if g.err != nil {
			break
		}
		_, g.err = g.w.WriteString(p)
	}
	return g.err
}

// Escape writes ESC followed by seq.
func (g *Generator) Escape(seq string) error {
	return g.Command(esc, seq)
}

// Reset restores printer defaults, ends the current page when something was
// printed on it.
func (g *Generator) Reset() error {
	return g.Escape("E")
}

// PJL writes a single PJL command line.
func (g *Generator) PJL(format string, args ...any) error {
	return g.Command("@PJL ", fmt.Sprintf(format, args...), "\r\n")
}

// FormFeed ejects the page.
func (g *Generator) FormFeed() error {
	return g.Command("\f")
}

// Decipoints converts millipoints to decipoints (1/720 inch).
func Decipoints(mpt int) string {
	return formatDecimal(float64(mpt)/100, 1)
}

// Dots converts millipoints to device dots at resolution.
func Dots(mpt, resolution int) int {
	return int(math.Round(float64(mpt) * float64(resolution) / 72000))
}

func formatDecimal(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	for prec > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// SetUnitOfMeasure sets PCL units to the device resolution.
func (g *Generator) SetUnitOfMeasure() error {
	return g.Escape("&u" + strconv.Itoa(g.resolution) + "D")
}

// PageSetup selects page size and orientation and zeroes margins.
func (g *Generator) PageSetup(size PageSize, landscape bool) error {
	orientation := "0"
	if landscape {
		orientation = "1"
	}
	g.Escape("&l" + strconv.Itoa(size.Code) + "A")
	g.Escape("&l" + orientation + "O")
	g.Escape("&l0E")
	g.Escape("&a0L")
	return g.Escape("&l0L")
}

// MoveTo positions the cursor, (0, 0) is the top left corner of the logical
// page.
func (g *Generator) MoveTo(x, y int) error {
	return g.Escape("&a" + Decipoints(x) + "h" + Decipoints(y) + "V")
}

// FillRect fills r (page millipoints) with the gray approximation of c.
func (g *Generator) FillRect(r geom.Rect, c color.RGBA) error {
	if r.Empty() {
		return nil
	}
	g.MoveTo(r.X, r.Y)
	g.Escape("*c" + Decipoints(r.W) + "h" + Decipoints(r.H) + "V")
	switch shade := Shade(c); shade {
	case 0:
		return g.Escape("*c1P")
	case 100:
		return g.Escape("*c0P")
	default:
		return g.Escape("*c" + strconv.Itoa(shade) + "g2P")
	}
}

// Shade returns c as percentage of black, 0 is white.
func Shade(c color.RGBA) int {
	gray := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	return int(math.Round(float64(255-gray) * 100 / 255))
}

// SelectFont selects a Latin-1 encoded scalable font.
func (g *Generator) SelectFont(typeface, style, strokeWeight int, sizeMpt int) error {
	return g.Escape(fmt.Sprintf("(0N%s(s1p%sv%ds%db%dT", esc,
		formatDecimal(float64(sizeMpt)/1000, 2), style, strokeWeight, typeface))
}

// Text prints Latin-1 encoded data at the cursor, the cursor is on the
// baseline.
func (g *Generator) Text(data []byte) error {
	_, err := g.Write(data)
	return err
}

// Raster prints a bitmap with its top left corner at (x, y). Pixels with
// palette index 0 are black, others are left untouched.
func (g *Generator) Raster(x, y int, img *image.Paletted) error {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	g.MoveTo(x, y)
	g.Escape("*t" + strconv.Itoa(g.resolution) + "R")
	g.Escape("*r" + strconv.Itoa(b.Dx()) + "s" + strconv.Itoa(b.Dy()) + "T")
	g.Escape("*r1A")
	g.Escape("*b2M")
	row := make([]byte, (b.Dx()+7)/8)
	var packed []byte
	for py := b.Min.Y; py < b.Max.Y; py++ {
		clear(row)
		for px := b.Min.X; px < b.Max.X; px++ {
			if img.ColorIndexAt(px, py) == 0 {
				i := px - b.Min.X
				row[i/8] |= 0x80 >> (i % 8)
			}
		}
		packed = PackBits(packed[:0], row)
		g.Escape("*b" + strconv.Itoa(len(packed)) + "W")
		g.Write(packed)
	}
	return g.Escape("*rC")
}

// PictureFrame anchors the HP-GL/2 picture frame at the top left corner of
// the logical page and sizes it.
func (g *Generator) PictureFrame(w, h int) error {
	g.MoveTo(0, 0)
	g.Escape("*c0T")
	return g.Escape("*c" + Decipoints(w) + "x" + Decipoints(h) + "Y")
}

// HPGL writes HP-GL/2 commands, entering and leaving the language around
// them. The PCL cursor is restored afterwards.
func (g *Generator) HPGL(commands string) error {
	if commands == "" {
		return nil
	}
	g.Escape("%1B")
	g.Command(commands)
	return g.Escape("%1A")
}
