package pcl

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"arender/area"
	"arender/border"
	"arender/geom"
)

// canvas paints operations PCL can not express into a bitmap later printed
// as raster graphics. Coordinates are transformed to canvas pixels by m,
// clipping uses coverage masks.
type canvas struct {
	img   *image.RGBA
	m     geom.Matrix
	mask  *image.Alpha
	saved []*image.Alpha
	path  []geom.Point
}

// newCanvas creates canvas covering page rectangle r (millipoints) at
// resolution, cur maps operation coordinates to page millipoints.
func newCanvas(r geom.Rect, resolution int, cur geom.Matrix) *canvas {
	k := float64(resolution) / 72000
	w, h := max(Dots(r.W, resolution), 1), max(Dots(r.H, resolution), 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	m := geom.Scale(k, k).Multiply(geom.Translate(-float64(r.X), -float64(r.Y))).Multiply(cur)
	return &canvas{img: img, m: m}
}

func toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// coverage rasterizes polygon pts (canvas pixels) intersected with the
// current clip.
func (c *canvas) coverage(pts [][2]float64) *image.Alpha {
	b := c.img.Bounds()
	cov := image.NewAlpha(b)
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), cov, b)
	scanner.SetColor(color.Opaque)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.Start(toFixed(pts[0][0], pts[0][1]))
	for _, p := range pts[1:] {
		filler.Line(toFixed(p[0], p[1]))
	}
	filler.Stop(true)
	filler.Draw()
	if c.mask != nil {
		for i := range cov.Pix {
			cov.Pix[i] = uint8(uint16(cov.Pix[i]) * uint16(c.mask.Pix[i]) / 255)
		}
	}
	return cov
}

func (c *canvas) transformed(path []geom.Point) [][2]float64 {
	pts := make([][2]float64, len(path))
	for i, p := range path {
		pts[i][0], pts[i][1] = c.m.TransformXY(float64(p.X), float64(p.Y))
	}
	return pts
}

func (c *canvas) MoveTo(x, y int) error {
	c.path = append(c.path[:0], geom.Point{X: x, Y: y})
	return nil
}

func (c *canvas) LineTo(x, y int) error {
	c.path = append(c.path, geom.Point{X: x, Y: y})
	return nil
}

func (c *canvas) ClosePath() error {
	return nil
}

func (c *canvas) Clip() error {
	if len(c.path) < 3 {
		c.path = c.path[:0]
		return nil
	}
	c.mask = c.coverage(c.transformed(c.path))
	c.path = c.path[:0]
	return nil
}

func (c *canvas) SaveGraphicsState() error {
	c.saved = append(c.saved, c.mask)
	return nil
}

func (c *canvas) RestoreGraphicsState() error {
	if len(c.saved) == 0 {
		panic("pcl: restore without matching save")
	}
	c.mask = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
	return nil
}

func (c *canvas) fill(path []geom.Point, col color.RGBA) {
	cov := c.coverage(c.transformed(path))
	draw.DrawMask(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, cov, image.Point{}, draw.Over)
}

func (c *canvas) FillRect(r geom.Rect, col color.RGBA) error {
	if r.Empty() {
		return nil
	}
	c.fill([]geom.Point{
		{X: r.X, Y: r.Y}, {X: r.MaxX(), Y: r.Y},
		{X: r.MaxX(), Y: r.MaxY()}, {X: r.X, Y: r.MaxY()},
	}, col)
	return nil
}

func (c *canvas) DrawBorderLine(r geom.Rect, horizontal, startOrBefore bool, style area.BorderStyle, col color.RGBA) error {
	for _, f := range border.Segments(r, horizontal, startOrBefore, style, col) {
		if err := c.FillRect(f.Rect, f.Color); err != nil {
			return err
		}
	}
	return nil
}

// line paints a line of any direction as a filled quadrilateral, non solid
// styles are painted solid.
func (c *canvas) line(start, end geom.Point, width int, col color.RGBA) {
	dx, dy := float64(end.X-start.X), float64(end.Y-start.Y)
	l := max(math.Hypot(dx, dy), 1)
	nx, ny := -dy/l*float64(width)/2, dx/l*float64(width)/2
	pt := func(p geom.Point, sx, sy float64) geom.Point {
		return geom.Point{X: p.X + int(sx), Y: p.Y + int(sy)}
	}
	c.fill([]geom.Point{pt(start, nx, ny), pt(end, nx, ny), pt(end, -nx, -ny), pt(start, -nx, -ny)}, col)
}

// image paints src stretched over r.
func (c *canvas) image(src image.Image, r geom.Rect) {
	sb := src.Bounds()
	if sb.Empty() || r.Empty() {
		return
	}
	place := geom.Matrix{
		A: float64(r.W) / float64(sb.Dx()), D: float64(r.H) / float64(sb.Dy()),
		E: float64(r.X) - float64(sb.Min.X)*float64(r.W)/float64(sb.Dx()),
		F: float64(r.Y) - float64(sb.Min.Y)*float64(r.H)/float64(sb.Dy()),
	}
	c.transform(src, c.m.Multiply(place))
}

// transform draws src mapped to the canvas by m.
func (c *canvas) transform(src image.Image, m geom.Matrix) {
	aff := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	opts := &draw.Options{}
	if c.mask != nil {
		opts.DstMask = c.mask
	}
	draw.BiLinear.Transform(c.img, aff, src, src.Bounds(), draw.Over, opts)
}

// text draws glyphs of text starting at (x, y) on the baseline advancing by
// adv. Glyphs are drawn at scale k pixels per millipoint then mapped to the
// canvas.
func (c *canvas) text(face font.Face, k float64, x, y int, text string, adv []int, col color.RGBA) {
	runes := []rune(text)
	total := 0
	for _, a := range adv {
		total += max(a, 0)
	}
	m := face.Metrics()
	asc, desc := m.Ascent.Ceil(), m.Descent.Ceil()
	w := int(float64(total)*k) + m.Height.Ceil()
	h := asc + desc
	if w <= 0 || h <= 0 {
		return
	}
	layer := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{Dst: layer, Src: image.NewUniform(col), Face: face}
	pos := 0
	for i, r := range runes {
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(float64(pos) * k * 64), Y: fixed.I(asc)}
		d.DrawString(string(r))
		if i < len(adv) {
			pos += adv[i]
		}
	}
	// layer pixel -> operation coordinates -> canvas
	place := geom.Matrix{A: 1 / k, D: 1 / k, E: float64(x), F: float64(y) - float64(asc)/k}
	c.transform(layer, c.m.Multiply(place))
}
