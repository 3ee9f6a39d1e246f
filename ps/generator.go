package ps

import (
	"bufio"
	"encoding/ascii85"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"unicode/utf16"

	"arender/geom"
)

// deviceState is what the interpreter currently uses, it is saved and
// restored together with gsave and grestore.
type deviceState struct {
	font     string
	size     int
	color    color.RGBA
	hasColor bool
}

// Generator writes PostScript operators. Lengths are passed in millipoints
// and written in points. Write errors are sticky, the first one is returned
// by Err and Flush and every later call is a no-op.
type Generator struct {
	w     *bufio.Writer
	cur   deviceState
	saved []deviceState
	err   error
}

func NewGenerator(w io.Writer) *Generator {
	return &Generator{w: bufio.NewWriter(w)}
}

func (g *Generator) Err() error {
	return g.err
}

// Flush pushes buffered output to the underlying writer.
func (g *Generator) Flush() error {
	if g.err != nil {
		return g.err
	}
	g.err = g.w.Flush()
	return g.err
}

// Writeln writes parts separated by spaces and ends the line.
func (g *Generator) Writeln(parts ...string) error {
	if g.err != nil {
		return g.err
	}
	for i, p := range parts {
		if i > 0 {
			g.w.WriteByte(' ')
		}
		g.w.WriteString(p)
	}
	_, g.err = g.w.WriteString("\n")
	return g.err
}

func (g *Generator) Printf(format string, args ...any) error {
	if g.err != nil {
		return g.err
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
	return g.err
}

// Comment writes DSC comment "%%name: args" or "%%name" without args.
func (g *Generator) Comment(name string, args ...string) error {
	if len(args) == 0 {
		return g.Writeln("%%" + name)
	}
	return g.Writeln("%%"+name+":", strings.Join(args, " "))
}

// Depth is the number of unmatched gsave calls.
func (g *Generator) Depth() int {
	return len(g.saved)
}

func (g *Generator) SaveGraphicsState() error {
	g.saved = append(g.saved, g.cur)
	return g.Writeln("gsave")
}

func (g *Generator) RestoreGraphicsState() error {
	if len(g.saved) == 0 {
		panic("ps: grestore without matching gsave")
	}
	g.cur = g.saved[len(g.saved)-1]
	g.saved = g.saved[:len(g.saved)-1]
	return g.Writeln("grestore")
}

// Reset forgets device state, used when the interpreter resets it (showpage).
func (g *Generator) Reset() {
	if len(g.saved) != 0 {
		panic(fmt.Sprintf("ps: %d unmatched gsave at page end", len(g.saved)))
	}
	g.cur = deviceState{}
}

// Concat applies m, translation is in millipoints.
func (g *Generator) Concat(m geom.Matrix) error {
	if m.IsIdentity() {
		return nil
	}
	return g.Writeln(FormatMatrix(m), "concat")
}

// SetColor changes the current color when it differs from the device one.
func (g *Generator) SetColor(c color.RGBA) error {
	if g.cur.hasColor && g.cur.color == c {
		return nil
	}
	g.cur.color, g.cur.hasColor = c, true
	if c.R == c.G && c.G == c.B {
		return g.Writeln(colorComponent(c.R), "setgray")
	}
	return g.Writeln(colorComponent(c.R), colorComponent(c.G), colorComponent(c.B), "setrgbcolor")
}

// SelectFont makes font key of size (millipoints) current. The font matrix
// mirrors y since page content runs top down.
func (g *Generator) SelectFont(key string, size int) error {
	if g.cur.font == key && g.cur.size == size {
		return nil
	}
	g.cur.font, g.cur.size = key, size
	s := Pt(size)
	return g.Writeln("/"+key, "["+s, "0 0", "-"+s, "0 0]", "selectfont")
}

// Rect writes "x y w h op".
func (g *Generator) Rect(r geom.Rect, op string) error {
	return g.Writeln(Pt(r.X), Pt(r.Y), Pt(r.W), Pt(r.H), op)
}

// ASCII85 writes data encoded and terminated with "~>", wrapped at 72
// columns.
func (g *Generator) ASCII85(data []byte) error {
	if g.err != nil {
		return g.err
	}
	buf := make([]byte, ascii85.MaxEncodedLen(len(data)))
	buf = buf[:ascii85.Encode(buf, data)]
	for len(buf) > 72 {
		g.w.Write(buf[:72])
		g.w.WriteByte('\n')
		buf = buf[72:]
	}
	g.w.Write(buf)
	return g.Writeln("~>")
}

// Pt formats millipoints as points.
func Pt(v int) string {
	return geom.FormatPt(v)
}

// FormatMatrix returns "[a b c d e f]" with translation in points.
func FormatMatrix(m geom.Matrix) string {
	return "[" + strings.Join([]string{
		geom.FormatFloat(m.A), geom.FormatFloat(m.B),
		geom.FormatFloat(m.C), geom.FormatFloat(m.D),
		geom.FormatFloat(m.E / 1000), geom.FormatFloat(m.F / 1000),
	}, " ") + "]"
}

func colorComponent(v uint8) string {
	return geom.FormatFloat(math.Round(float64(v)/255*1000) / 1000)
}

// EscapeBytes returns a literal string for 8 bit data.
func EscapeBytes(data []byte) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, b := range data {
		switch {
		case b == '(' || b == ')' || b == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b < 32 || b > 126:
			sb.WriteString(fmt.Sprintf("\\%03o", b))
		default:
			sb.WriteByte(b)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// TextString returns s as a string pdfmark understands: literal for ASCII,
// UTF-16BE with byte order mark otherwise.
func TextString(s string) string {
	ascii := true
	for _, r := range s {
		if r > 126 || (r < 32 && r != '\t') {
			ascii = false
			break
		}
	}
	if ascii {
		return EscapeBytes([]byte(s))
	}
	var sb strings.Builder
	sb.WriteString("<FEFF")
	for _, u := range utf16.Encode([]rune(s)) {
		sb.WriteString(fmt.Sprintf("%04X", u))
	}
	sb.WriteByte('>')
	return sb.String()
}

// Name returns a PostScript name literal, delimiters are hex escaped.
func Name(s string) string {
	var sb strings.Builder
	sb.WriteByte('/')
	for _, b := range []byte(s) {
		if b <= 32 || b >= 127 || strings.IndexByte("()<>[]{}/%#", b) >= 0 {
			sb.WriteString(fmt.Sprintf("#%02x", b))
			continue
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
