package pcl

import (
	"image"
	"image/color"
	"math"

	"go.uber.org/zap"

	"arender/area"
	"arender/border"
	"arender/common"
	"arender/fonts"
	"arender/geom"
	"arender/intermediate"
	imgutil "arender/utils/images"
)

const svgNamespace = "http://www.w3.org/2000/svg"

const (
	reasonTransform = "transformation is not translate/scale"
	reasonClipped   = "content crosses clip boundary"
	reasonGlyphs    = "glyphs outside ISO-8859-1"
	reasonBitmap    = "bitmap text requested"
)

// gstate is the painter state saved by groups and viewports. PCL has no
// graphics state of its own.
type gstate struct {
	// m maps current coordinates to page millipoints
	m geom.Matrix
	// clip in page millipoints, bounding box for rotated clips
	clip geom.Rect
}

type painter struct {
	h     *DocumentHandler
	state gstate
	stack []gstate
	font  intermediate.Font
}

func (p *painter) reset() {
	p.state = gstate{m: geom.Identity(), clip: geom.Rect{W: p.h.page.width, H: p.h.page.height}}
	p.stack = p.stack[:0]
	p.font = intermediate.Font{}
}

func (p *painter) push(m geom.Matrix) {
	p.stack = append(p.stack, p.state)
	p.state.m = p.state.m.Multiply(m)
}

func (p *painter) pop() error {
	if len(p.stack) == 0 {
		panic("pcl: end of group without start")
	}
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *painter) StartViewport(transform geom.Matrix, width, height int, clip *geom.Rect) error {
	p.push(transform)
	if clip != nil {
		return p.ClipRect(*clip)
	}
	return nil
}

func (p *painter) EndViewport() error {
	return p.pop()
}

func (p *painter) StartGroup(transform geom.Matrix) error {
	p.push(transform)
	return nil
}

func (p *painter) EndGroup() error {
	return p.pop()
}

func (p *painter) ClipRect(r geom.Rect) error {
	p.state.clip = p.state.clip.Intersect(p.state.m.TransformRect(r))
	return nil
}

// visible returns the clipped page area of r in current coordinates.
func (p *painter) visible(r geom.Rect) (geom.Rect, bool) {
	d := p.state.m.TransformRect(r).Intersect(p.state.clip)
	return d, !d.Empty()
}

// fallback paints through a bitmap covering r (current coordinates).
func (p *painter) fallback(r geom.Rect, reason string, paint func(c *canvas) error) error {
	d, ok := p.visible(r)
	if !ok {
		return nil
	}
	c := newCanvas(d, p.h.opts.Resolution, p.state.m)
	if err := paint(c); err != nil {
		return err
	}
	p.h.res.bitmapFallback(reason)
	p.h.log.Debug("Bitmap fallback", zap.String("reason", reason), zap.Stringer("area", d))
	return p.h.gen.Raster(d.X, d.Y, imgutil.Monochrome(c.img, 0, 0))
}

func (p *painter) FillRect(r geom.Rect, c color.RGBA) error {
	if r.Empty() {
		return nil
	}
	if !native(p.state.m) {
		return p.fallback(r, reasonTransform, func(cv *canvas) error {
			return cv.FillRect(r, c)
		})
	}
	if d, ok := p.visible(r); ok {
		return p.h.gen.FillRect(d, c)
	}
	return nil
}

// DrawBorderRect paints plain rectangles in speed mode. In quality mode
// mitered edges are tried in HP-GL/2 first and rasterized when that fails.
func (p *painter) DrawBorderRect(r geom.Rect, top, bottom, left, right *area.BorderProps) error {
	if p.h.opts.Quality == common.PCLRenderingModeSpeed {
		for _, e := range border.RectangularEdges(r, top, bottom, left, right) {
			if err := p.FillRect(e.Rect, e.Color); err != nil {
				return err
			}
		}
		return nil
	}
	clip := p.state.clip
	rec := newHPGL(p.state.m, p.h.page.height, &clip)
	if err := border.NewPainter(rec).DrawBorders(r, top, bottom, left, right); err != nil {
		return err
	}
	commands, res := rec.Commands()
	if res.IsOk() {
		return p.h.hpgl(commands + "IW;")
	}
	return p.fallback(r, res.Reason(), func(cv *canvas) error {
		return border.NewPainter(cv).DrawBorders(r, top, bottom, left, right)
	})
}

func (p *painter) DrawLine(start, end geom.Point, width int, c color.RGBA, style area.BorderStyle) error {
	if !style.Visible() || width <= 0 {
		return nil
	}
	if start.Y == end.Y || start.X == end.X {
		horizontal := start.Y == end.Y
		r := geom.Rect{X: min(start.X, end.X), Y: start.Y - width/2, W: abs(end.X - start.X), H: width}
		if !horizontal {
			r = geom.Rect{X: start.X - width/2, Y: min(start.Y, end.Y), W: width, H: abs(end.Y - start.Y)}
		}
		if !native(p.state.m) {
			return p.fallback(r, reasonTransform, func(cv *canvas) error {
				return cv.DrawBorderLine(r, horizontal, true, style, c)
			})
		}
		for _, f := range border.Segments(r, horizontal, true, style, c) {
			if err := p.FillRect(f.Rect, f.Color); err != nil {
				return err
			}
		}
		return nil
	}

	clip := p.state.clip
	rec := newHPGL(p.state.m, p.h.page.height, &clip)
	rec.Line(start, end, width, c, style)
	commands, res := rec.Commands()
	if res.IsOk() {
		return p.h.hpgl(commands + "IW;")
	}
	bounds := geom.Rect{
		X: min(start.X, end.X) - width, Y: min(start.Y, end.Y) - width,
		W: abs(end.X-start.X) + 2*width, H: abs(end.Y-start.Y) + 2*width,
	}
	return p.fallback(bounds, res.Reason(), func(cv *canvas) error {
		cv.line(start, end, width, c)
		return nil
	})
}

func (p *painter) DrawImage(uri string, r geom.Rect) error {
	d := p.state.m.TransformRect(r)
	res := p.h.opts.Resolution
	img := p.h.res.loadImage(uri, Dots(d.W, res), Dots(d.H, res))
	if img == nil {
		return nil
	}
	return p.drawPixels(img, r)
}

// drawPixels prints img stretched over r, directly when upright and fully
// visible, through the bitmap canvas otherwise.
func (p *painter) drawPixels(img image.Image, r geom.Rect) error {
	d := p.state.m.TransformRect(r)
	if !native(p.state.m) || !p.state.clip.Contains(d) {
		reason := reasonTransform
		if native(p.state.m) {
			reason = reasonClipped
		}
		return p.fallback(r, reason, func(cv *canvas) error {
			cv.image(img, r)
			return nil
		})
	}
	res := p.h.opts.Resolution
	mono := imgutil.Monochrome(img, max(Dots(d.W, res), 1), max(Dots(d.H, res), 1))
	return p.h.gen.Raster(d.X, d.Y, mono)
}

// DrawForeignObject prints SVG content as bitmap, other content is skipped.
func (p *painter) DrawForeignObject(ns string, content []byte, r geom.Rect) error {
	if ns != svgNamespace {
		p.h.log.Debug("Foreign object skipped", zap.String("namespace", ns))
		return nil
	}
	d := p.state.m.TransformRect(r)
	res := p.h.opts.Resolution
	img, err := imgutil.RasterizeSVGToImage(content, max(Dots(d.W, res), 1), max(Dots(d.H, res), 1), color.White)
	if err != nil {
		p.h.log.Warn("Unable to rasterize foreign object", zap.Error(err))
		return nil
	}
	return p.drawPixels(img, r)
}

func (p *painter) SetFont(f intermediate.Font) error {
	p.font = f
	return nil
}

// latin1 returns text encoded for symbol set 0N, ok is false when any
// character is outside of it.
func latin1(text string) ([]byte, bool) {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if r < 32 || (r >= 127 && r < 160) || r > 255 {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}

// DrawText prints text with a printer font when the text, the font size and
// the transformation allow it, otherwise the glyphs are rasterized.
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
	start, adv := intermediate.Advances(m, size, text, letterSpacing, wordSpacing, dx)
	total := 0
	for _, a := range adv {
		total += a
	}
	asc, desc := m.Ascender(size), m.Descender(size)
	bounds := geom.Rect{X: x + start, Y: y - asc, W: max(total, 1), H: asc - desc}

	data, encodable := latin1(text)
	reason := ""
	switch {
	case p.h.opts.Text == common.PCLTextRenderingBitmap:
		reason = reasonBitmap
	case !native(p.state.m) || p.state.m.A != p.state.m.D:
		reason = reasonTransform
	case !encodable:
		reason = reasonGlyphs
	case !p.state.clip.Contains(p.state.m.TransformRect(bounds)):
		reason = reasonClipped
	}
	if reason == "" {
		return p.nativeText(key, size, x, y, start, adv, data, intermediate.Adjusted(letterSpacing, wordSpacing, dx))
	}

	scale := math.Sqrt(math.Abs(p.state.m.A*p.state.m.D - p.state.m.B*p.state.m.C))
	k := float64(p.h.opts.Resolution) / 72000 * scale
	face, err := p.h.res.face(key, float64(size)*k)
	if err != nil {
		return err
	}
	for _, r := range text {
		if _, ok := face.GlyphAdvance(r); !ok {
			p.h.res.glyphMissing(key, r)
		}
	}
	return p.fallback(bounds, reason, func(cv *canvas) error {
		cv.text(face, k, x+start, y, text, adv, f.Color)
		return nil
	})
}

func (p *painter) nativeText(key string, size, x, y, start int, adv []int, data []byte, adjusted bool) error {
	g := p.h.gen
	scaled := int(math.Round(float64(size) * p.state.m.D))
	if id := key + "/" + Decipoints(scaled); id != p.h.fontUsed {
		desc := p.h.opts.Fonts.Descriptor(key)
		g.SelectFont(desc.PCLTypeface, desc.PCLStyle, desc.PCLStrokeWeight, scaled)
		p.h.fontUsed = id
	}
	origin := p.state.m.Transform(geom.Point{X: x + start, Y: y})
	if !adjusted {
		g.MoveTo(origin.X, origin.Y)
		return g.Text(data)
	}
	pos := x + start
	for i, b := range data {
		pt := p.state.m.Transform(geom.Point{X: pos, Y: y})
		g.MoveTo(pt.X, pt.Y)
		g.Text([]byte{b})
		pos += adv[i]
	}
	return g.Err()
}
