// Package border computes border and background geometry shared by all
// vector output formats.
package border

import (
	"image/color"

	"arender/area"
	"arender/geom"
)

// Side of a rectangle, in the order borders are painted.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

func (s Side) String() string {
	return [...]string{"top", "right", "bottom", "left"}[s]
}

// GraphicsPainter is the path level surface a format provides to paint
// mitered borders.
type GraphicsPainter interface {
	MoveTo(x, y int) error
	LineTo(x, y int) error
	ClosePath() error
	Clip() error
	SaveGraphicsState() error
	RestoreGraphicsState() error
	FillRect(r geom.Rect, c color.RGBA) error
	DrawBorderLine(r geom.Rect, horizontal, startOrBefore bool, style area.BorderStyle, c color.RGBA) error
}

// Quad is the clip polygon of one border edge and the rectangle its line is
// painted into.
type Quad struct {
	Points []geom.Point
	Line   geom.Rect
}

// normalize drops borders that paint nothing.
func normalize(bp *area.BorderProps) *area.BorderProps {
	if bp == nil || !bp.Style.Visible() || bp.Width <= 0 {
		return nil
	}
	return bp
}

func collapseOuter(bp *area.BorderProps) bool {
	return bp != nil && bp.Mode == area.BorderModeCollapseOuter
}

// Quads computes mitered edge geometry for rect. Entries for absent borders
// are nil. Corners are slanted only where both meeting edges are present,
// collapse-outer edges reach into the corner of collapse-outer neighbours by
// the neighbour's clipped width.
func Quads(rect geom.Rect, top, bottom, left, right *area.BorderProps) [4]*Quad {
	bps := [4]*area.BorderProps{normalize(top), normalize(right), normalize(bottom), normalize(left)}

	var bw, clip [4]int
	var present [4]bool
	for i, bp := range bps {
		present[i] = bp != nil
		if bp != nil {
			bw[i] = bp.Width
			clip[i] = bp.ClippedWidth()
		}
	}

	startx := rect.X + clip[Left]
	starty := rect.Y + clip[Top]
	width := rect.W - clip[Left] - clip[Right]
	height := rect.H - clip[Top] - clip[Bottom]

	slantTL := present[Left] && present[Top]
	slantTR := present[Top] && present[Right]
	slantBR := present[Right] && present[Bottom]
	slantBL := present[Bottom] && present[Left]

	pick := func(cond bool, a, b int) int {
		if cond {
			return a
		}
		return b
	}

	var quads [4]*Quad
	if bp := bps[Top]; bp != nil {
		sx1 := startx
		sx2 := pick(slantTL, sx1+bw[Left]-clip[Left], sx1)
		ex1 := startx + width
		ex2 := pick(slantTR, ex1-bw[Right]+clip[Right], ex1)
		outery := starty - clip[Top]
		clipy := outery + clip[Top]
		innery := outery + bw[Top]

		q := &Quad{Points: []geom.Point{{X: sx1, Y: clipy}}}
		sx1a, ex1a := sx1, ex1
		if collapseOuter(bp) {
			if collapseOuter(bps[Left]) {
				sx1a -= clip[Left]
			}
			if collapseOuter(bps[Right]) {
				ex1a += clip[Right]
			}
			q.Points = append(q.Points, geom.Point{X: sx1a, Y: outery}, geom.Point{X: ex1a, Y: outery})
		}
		q.Points = append(q.Points, geom.Point{X: ex1, Y: clipy}, geom.Point{X: ex2, Y: innery}, geom.Point{X: sx2, Y: innery})
		q.Line = geom.Rect{X: sx1a, Y: outery, W: ex1a - sx1a, H: innery - outery}
		quads[Top] = q
	}
	if bp := bps[Right]; bp != nil {
		sy1 := starty
		sy2 := pick(slantTR, sy1+bw[Top]-clip[Top], sy1)
		ey1 := starty + height
		ey2 := pick(slantBR, ey1-bw[Bottom]+clip[Bottom], ey1)
		outerx := startx + width + clip[Right]
		clipx := outerx - clip[Right]
		innerx := outerx - bw[Right]

		q := &Quad{Points: []geom.Point{{X: clipx, Y: sy1}}}
		sy1a, ey1a := sy1, ey1
		if collapseOuter(bp) {
			if collapseOuter(bps[Top]) {
				sy1a -= clip[Top]
			}
			if collapseOuter(bps[Bottom]) {
				ey1a += clip[Bottom]
			}
			q.Points = append(q.Points, geom.Point{X: outerx, Y: sy1a}, geom.Point{X: outerx, Y: ey1a})
		}
		q.Points = append(q.Points, geom.Point{X: clipx, Y: ey1}, geom.Point{X: innerx, Y: ey2}, geom.Point{X: innerx, Y: sy2})
		q.Line = geom.Rect{X: innerx, Y: sy1a, W: outerx - innerx, H: ey1a - sy1a}
		quads[Right] = q
	}
	if bp := bps[Bottom]; bp != nil {
		sx1 := startx
		sx2 := pick(slantBL, sx1+bw[Left]-clip[Left], sx1)
		ex1 := startx + width
		ex2 := pick(slantBR, ex1-bw[Right]+clip[Right], ex1)
		outery := starty + height + clip[Bottom]
		clipy := outery - clip[Bottom]
		innery := outery - bw[Bottom]

		q := &Quad{Points: []geom.Point{{X: ex1, Y: clipy}}}
		sx1a, ex1a := sx1, ex1
		if collapseOuter(bp) {
			if collapseOuter(bps[Left]) {
				sx1a -= clip[Left]
			}
			if collapseOuter(bps[Right]) {
				ex1a += clip[Right]
			}
			q.Points = append(q.Points, geom.Point{X: ex1a, Y: outery}, geom.Point{X: sx1a, Y: outery})
		}
		q.Points = append(q.Points, geom.Point{X: sx1, Y: clipy}, geom.Point{X: sx2, Y: innery}, geom.Point{X: ex2, Y: innery})
		q.Line = geom.Rect{X: sx1a, Y: innery, W: ex1a - sx1a, H: outery - innery}
		quads[Bottom] = q
	}
	if bp := bps[Left]; bp != nil {
		sy1 := starty
		sy2 := pick(slantTL, sy1+bw[Top]-clip[Top], sy1)
		ey1 := sy1 + height
		ey2 := pick(slantBL, ey1-bw[Bottom]+clip[Bottom], ey1)
		outerx := startx - clip[Left]
		clipx := outerx + clip[Left]
		innerx := outerx + bw[Left]

		q := &Quad{Points: []geom.Point{{X: clipx, Y: ey1}}}
		sy1a, ey1a := sy1, ey1
		if collapseOuter(bp) {
			if collapseOuter(bps[Top]) {
				sy1a -= clip[Top]
			}
			if collapseOuter(bps[Bottom]) {
				ey1a += clip[Bottom]
			}
			q.Points = append(q.Points, geom.Point{X: outerx, Y: ey1a}, geom.Point{X: outerx, Y: sy1a})
		}
		q.Points = append(q.Points, geom.Point{X: clipx, Y: sy1}, geom.Point{X: innerx, Y: sy2}, geom.Point{X: innerx, Y: ey2})
		q.Line = geom.Rect{X: outerx, Y: sy1a, W: innerx - outerx, H: ey1a - sy1a}
		quads[Left] = q
	}
	return quads
}

// Painter paints borders through a GraphicsPainter.
type Painter struct {
	gp GraphicsPainter
}

func NewPainter(gp GraphicsPainter) *Painter {
	return &Painter{gp: gp}
}

// DrawBorders paints up to four mitered edges. Each edge is clipped to its
// quadrilateral inside its own saved graphics state.
func (p *Painter) DrawBorders(rect geom.Rect, top, bottom, left, right *area.BorderProps) error {
	quads := Quads(rect, top, bottom, left, right)
	bps := [4]*area.BorderProps{top, right, bottom, left}
	for side, q := range quads {
		if q == nil {
			continue
		}
		if err := p.drawEdge(Side(side), q, bps[side]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Painter) drawEdge(side Side, q *Quad, bp *area.BorderProps) (err error) {
	if err := p.gp.SaveGraphicsState(); err != nil {
		return err
	}
	defer func() {
		if rerr := p.gp.RestoreGraphicsState(); err == nil {
			err = rerr
		}
	}()

	if err := p.gp.MoveTo(q.Points[0].X, q.Points[0].Y); err != nil {
		return err
	}
	for _, pt := range q.Points[1:] {
		if err := p.gp.LineTo(pt.X, pt.Y); err != nil {
			return err
		}
	}
	if err := p.gp.ClosePath(); err != nil {
		return err
	}
	if err := p.gp.Clip(); err != nil {
		return err
	}
	horizontal := side == Top || side == Bottom
	startOrBefore := side == Top || side == Left
	return p.gp.DrawBorderLine(q.Line, horizontal, startOrBefore, bp.Style, bp.Color)
}

// DrawRectangularBorders paints each edge as a plain rectangle inside rect,
// corners overlap. Used when speed matters more than corner quality.
func (p *Painter) DrawRectangularBorders(rect geom.Rect, top, bottom, left, right *area.BorderProps) error {
	for _, r := range RectangularEdges(rect, top, bottom, left, right) {
		if err := p.gp.FillRect(r.Rect, r.Color); err != nil {
			return err
		}
	}
	return nil
}

// RectangularEdges returns the non mitered edge rectangles of rect.
func RectangularEdges(rect geom.Rect, top, bottom, left, right *area.BorderProps) []Fill {
	var out []Fill
	if bp := normalize(top); bp != nil {
		out = append(out, Fill{geom.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: bp.Width}, bp.Color})
	}
	if bp := normalize(bottom); bp != nil {
		out = append(out, Fill{geom.Rect{X: rect.X, Y: rect.MaxY() - bp.Width, W: rect.W, H: bp.Width}, bp.Color})
	}
	if bp := normalize(left); bp != nil {
		out = append(out, Fill{geom.Rect{X: rect.X, Y: rect.Y, W: bp.Width, H: rect.H}, bp.Color})
	}
	if bp := normalize(right); bp != nil {
		out = append(out, Fill{geom.Rect{X: rect.MaxX() - bp.Width, Y: rect.Y, W: bp.Width, H: rect.H}, bp.Color})
	}
	return out
}

// HasVisible reports whether any of the borders paints anything.
func HasVisible(bps ...*area.BorderProps) bool {
	for _, bp := range bps {
		if normalize(bp) != nil {
			return true
		}
	}
	return false
}
