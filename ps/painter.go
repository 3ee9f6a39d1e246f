package ps

import (
	"image/color"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"arender/area"
	"arender/border"
	"arender/fonts"
	"arender/geom"
	"arender/intermediate"
	imgutil "arender/utils/images"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// substitute is painted instead of glyphs the font can not show.
const substitute = '#'

// painter paints page content. The font requested by SetFont is only made
// current when text is drawn, so grestore never leaves a stale font behind.
type painter struct {
	h    *DocumentHandler
	font intermediate.Font
	// borders paints mitered border edges through this painter
	borders *border.Painter
}

func (p *painter) reset() {
	p.font = intermediate.Font{}
	if p.borders == nil {
		p.borders = border.NewPainter(p)
	}
}

func (p *painter) g() *Generator {
	return p.h.body
}

func (p *painter) StartViewport(transform geom.Matrix, width, height int, clip *geom.Rect) error {
	g := p.g()
	g.SaveGraphicsState()
	g.Concat(transform)
	if clip != nil {
		g.Rect(*clip, "rectclip")
	}
	return g.Err()
}

func (p *painter) EndViewport() error {
	return p.g().RestoreGraphicsState()
}

func (p *painter) StartGroup(transform geom.Matrix) error {
	g := p.g()
	g.SaveGraphicsState()
	g.Concat(transform)
	return g.Err()
}

func (p *painter) EndGroup() error {
	return p.g().RestoreGraphicsState()
}

func (p *painter) ClipRect(r geom.Rect) error {
	return p.g().Rect(r, "rectclip")
}

func (p *painter) FillRect(r geom.Rect, c color.RGBA) error {
	if r.Empty() {
		return nil
	}
	g := p.g()
	g.SetColor(c)
	return g.Rect(r, "rectfill")
}

func (p *painter) DrawBorderRect(r geom.Rect, top, bottom, left, right *area.BorderProps) error {
	return p.borders.DrawBorders(r, top, bottom, left, right)
}

// DrawLine paints axis aligned lines as border segments so styles look the
// same as in borders, other lines are stroked.
func (p *painter) DrawLine(start, end geom.Point, width int, c color.RGBA, style area.BorderStyle) error {
	if !style.Visible() || width <= 0 {
		return nil
	}
	switch {
	case start.Y == end.Y:
		r := geom.Rect{X: min(start.X, end.X), Y: start.Y - width/2, W: abs(end.X - start.X), H: width}
		return p.DrawBorderLine(r, true, true, style, c)
	case start.X == end.X:
		r := geom.Rect{X: start.X - width/2, Y: min(start.Y, end.Y), W: width, H: abs(end.Y - start.Y)}
		return p.DrawBorderLine(r, false, true, style, c)
	}
	g := p.g()
	g.SetColor(c)
	g.Writeln(Pt(width), "setlinewidth")
	g.Writeln(Pt(start.X), Pt(start.Y), "M", Pt(end.X), Pt(end.Y), "L stroke")
	return g.Err()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (p *painter) DrawImage(uri string, r geom.Rect) error {
	img := p.h.res.loadImage(uri, r.W, r.H)
	if img == nil {
		return nil
	}
	g := p.g()
	if p.h.res.useForms() {
		f, err := p.h.res.formFor(uri, img)
		if err != nil {
			return err
		}
		g.SaveGraphicsState()
		g.Writeln(Pt(r.X), Pt(r.Y), "translate", Pt(r.W), Pt(r.H), "scale")
		g.Writeln(f.name, "execform")
		return g.RestoreGraphicsState()
	}
	enc, err := p.h.res.encode(img)
	if err != nil {
		return err
	}
	return p.inlineImage(enc, r)
}

func (p *painter) inlineImage(enc *encodedImage, r geom.Rect) error {
	g := p.g()
	g.SaveGraphicsState()
	g.Writeln(Pt(r.X), Pt(r.Y), "translate", Pt(r.W), Pt(r.H), "scale")
	g.Writeln(enc.operator("currentfile /ASCII85Decode filter"))
	g.ASCII85(enc.data)
	return g.RestoreGraphicsState()
}

// DrawForeignObject paints SVG rasterized at the configured resolution,
// other content is skipped.
func (p *painter) DrawForeignObject(ns string, content []byte, r geom.Rect) error {
	if ns != svgNamespace {
		p.h.log.Debug("Foreign object skipped", zap.String("namespace", ns))
		return nil
	}
	dpi := p.h.opts.ImageDPI
	w := max(int(float64(r.W)/72000*dpi), 1)
	h := max(int(float64(r.H)/72000*dpi), 1)
	img, err := imgutil.RasterizeSVGToImage(content, w, h, color.White)
	if err != nil {
		p.h.log.Warn("Unable to rasterize foreign object", zap.Error(err))
		return nil
	}
	enc, err := p.h.res.encode(img)
	if err != nil {
		return err
	}
	return p.inlineImage(enc, r)
}

func (p *painter) SetFont(f intermediate.Font) error {
	p.font = f
	return nil
}

// DrawText shows text in ISO Latin-1, glyphs outside of it or missing from
// the font are replaced. Adjusted text is positioned glyph by glyph with
// xshow.
func (p *painter) DrawText(x, y, letterSpacing, wordSpacing int, dx []int, text string) error {
	if text == "" {
		return nil
	}
	f := p.font
	size := f.Size
	if size <= 0 {
		size = 12000
	}
	key := p.h.res.fontKey(fonts.Triplet{Family: f.Family, Style: f.Style, Weight: f.Weight})
	m := p.h.opts.Fonts.Metrics(key)

	var (
		encoded []byte
		shown   strings.Builder
	)
	for _, ch := range text {
		b, ok := charmap.ISO8859_1.EncodeRune(ch)
		if !ok || (!m.HasGlyph(ch) && ch != ' ') {
			p.h.res.glyphMissing(key, ch)
			b, ch = substitute, substitute
		}
		encoded = append(encoded, b)
		shown.WriteRune(ch)
	}

	g := p.g()
	g.SelectFont(key, size)
	g.SetColor(f.Color)
	if !intermediate.Adjusted(letterSpacing, wordSpacing, dx) {
		g.Writeln(Pt(x), Pt(y), "M", EscapeBytes(encoded), "show")
		return g.Err()
	}
	start, adv := intermediate.Advances(m, size, shown.String(), letterSpacing, wordSpacing, dx)
	widths := make([]string, len(adv))
	for i, a := range adv {
		widths[i] = Pt(a)
	}
	g.Writeln(Pt(x+start), Pt(y), "M", EscapeBytes(encoded))
	g.Writeln("["+strings.Join(widths, " ")+"]", "xshow")
	return g.Err()
}

// path level operations used for mitered borders

func (p *painter) MoveTo(x, y int) error {
	return p.g().Writeln(Pt(x), Pt(y), "M")
}

func (p *painter) LineTo(x, y int) error {
	return p.g().Writeln(Pt(x), Pt(y), "L")
}

func (p *painter) ClosePath() error {
	return p.g().Writeln("CP")
}

func (p *painter) Clip() error {
	return p.g().Writeln("clip newpath")
}

func (p *painter) SaveGraphicsState() error {
	return p.g().SaveGraphicsState()
}

func (p *painter) RestoreGraphicsState() error {
	return p.g().RestoreGraphicsState()
}

func (p *painter) DrawBorderLine(r geom.Rect, horizontal, startOrBefore bool, style area.BorderStyle, c color.RGBA) error {
	for _, f := range border.Segments(r, horizontal, startOrBefore, style, c) {
		if err := p.FillRect(f.Rect, f.Color); err != nil {
			return err
		}
	}
	return nil
}
