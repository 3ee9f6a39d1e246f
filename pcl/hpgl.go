package pcl

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"arender/area"
	"arender/border"
	"arender/geom"
)

// NativeResult tells whether an operation can be expressed natively.
type NativeResult struct {
	reason string
}

// Ok is the result of operations rendered natively.
func Ok() NativeResult {
	return NativeResult{}
}

// Unsupported is the result of operations needing a bitmap fallback.
func Unsupported(reason string) NativeResult {
	return NativeResult{reason: reason}
}

func (r NativeResult) IsOk() bool {
	return r.reason == ""
}

func (r NativeResult) Reason() string {
	return r.reason
}

func (r NativeResult) String() string {
	if r.IsOk() {
		return "ok"
	}
	return "unsupported: " + r.reason
}

// hpgl records HP-GL/2 commands for a single painting operation. Once
// anything unsupported is met the result turns Unsupported and the rest is
// ignored, recorded commands must then be discarded.
type hpgl struct {
	// m maps operation coordinates to page millipoints
	m      geom.Matrix
	pageH  int
	buf    strings.Builder
	path   []geom.Point
	window *geom.Rect
	saved  []*geom.Rect
	result NativeResult
}

func newHPGL(m geom.Matrix, pageH int, clip *geom.Rect) *hpgl {
	h := &hpgl{m: m, pageH: pageH, result: Ok()}
	if !native(m) {
		h.result = Unsupported(reasonTransform)
		return h
	}
	h.setWindow(clip)
	return h
}

// Commands returns recorded HP-GL/2 and the recording result.
func (h *hpgl) Commands() (string, NativeResult) {
	if !h.result.IsOk() {
		return "", h.result
	}
	return h.buf.String(), h.result
}

func (h *hpgl) failed() bool {
	return !h.result.IsOk()
}

// plu converts page millipoints to plotter units, y grows upwards.
func (h *hpgl) plu(p geom.Point) string {
	x := int(math.Round(float64(p.X) * 1016 / 72000))
	y := int(math.Round(float64(h.pageH-p.Y) * 1016 / 72000))
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}

func (h *hpgl) setWindow(r *geom.Rect) {
	h.window = r
	if r == nil {
		h.buf.WriteString("IW;")
		return
	}
	h.buf.WriteString("IW" + h.plu(geom.Point{X: r.X, Y: r.MaxY()}) + "," + h.plu(geom.Point{X: r.MaxX(), Y: r.Y}) + ";")
}

func fillType(c color.RGBA) string {
	switch s := Shade(c); s {
	case 100:
		return "FT1;"
	default:
		return "FT10," + strconv.Itoa(s) + ";"
	}
}

func (h *hpgl) MoveTo(x, y int) error {
	h.path = append(h.path[:0], h.m.Transform(geom.Point{X: x, Y: y}))
	return nil
}

func (h *hpgl) LineTo(x, y int) error {
	h.path = append(h.path, h.m.Transform(geom.Point{X: x, Y: y}))
	return nil
}

func (h *hpgl) ClosePath() error {
	return nil
}

// Clip supports axis aligned rectangles only, the input window is the only
// clipping HP-GL/2 has.
func (h *hpgl) Clip() error {
	if h.failed() {
		return nil
	}
	r, ok := pathRect(h.path)
	h.path = h.path[:0]
	if !ok {
		h.result = Unsupported("clip path is not a rectangle")
		return nil
	}
	if h.window != nil {
		r = r.Intersect(*h.window)
	}
	h.setWindow(&r)
	return nil
}

// pathRect returns the rectangle described by path when it is one.
func pathRect(path []geom.Point) (geom.Rect, bool) {
	if len(path) != 4 {
		return geom.Rect{}, false
	}
	xs, ys := map[int]bool{}, map[int]bool{}
	for _, p := range path {
		xs[p.X], ys[p.Y] = true, true
	}
	if len(xs) > 2 || len(ys) > 2 {
		return geom.Rect{}, false
	}
	minX, minY := path[0].X, path[0].Y
	maxX, maxY := minX, minY
	for _, p := range path[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	// each corner must be present
	for _, p := range path {
		if (p.X != minX && p.X != maxX) || (p.Y != minY && p.Y != maxY) {
			return geom.Rect{}, false
		}
	}
	return geom.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

func (h *hpgl) SaveGraphicsState() error {
	h.saved = append(h.saved, h.window)
	return nil
}

func (h *hpgl) RestoreGraphicsState() error {
	if len(h.saved) == 0 {
		panic("pcl: restore without matching save")
	}
	w := h.saved[len(h.saved)-1]
	h.saved = h.saved[:len(h.saved)-1]
	if !h.failed() && w != h.window {
		h.setWindow(w)
	}
	return nil
}

func (h *hpgl) FillRect(r geom.Rect, c color.RGBA) error {
	if h.failed() || r.Empty() {
		return nil
	}
	d := h.m.TransformRect(r)
	h.buf.WriteString(fillType(c))
	h.buf.WriteString("PU" + h.plu(geom.Point{X: d.X, Y: d.MaxY()}) + ";")
	h.buf.WriteString("RA" + h.plu(geom.Point{X: d.MaxX(), Y: d.Y}) + ";")
	return nil
}

func (h *hpgl) DrawBorderLine(r geom.Rect, horizontal, startOrBefore bool, style area.BorderStyle, c color.RGBA) error {
	for _, f := range border.Segments(r, horizontal, startOrBefore, style, c) {
		if err := h.FillRect(f.Rect, f.Color); err != nil {
			return err
		}
	}
	return nil
}

// Line strokes a solid line, other styles are not supported.
func (h *hpgl) Line(start, end geom.Point, width int, c color.RGBA, style area.BorderStyle) {
	if h.failed() {
		return
	}
	if style != area.BorderStyleSolid {
		h.result = Unsupported(fmt.Sprintf("%s diagonal line", style))
		return
	}
	scale := math.Sqrt(math.Abs(h.m.A * h.m.D))
	mm := float64(width) * scale / 72000 * 25.4
	h.buf.WriteString("SP1;PW" + formatDecimal(mm, 3) + ";")
	if s := Shade(c); s < 100 {
		h.buf.WriteString("SV1," + strconv.Itoa(s) + ";")
	} else {
		h.buf.WriteString("SV0;")
	}
	h.buf.WriteString("PU" + h.plu(h.m.Transform(start)) + ";PD" + h.plu(h.m.Transform(end)) + ";PU;")
}

// native reports whether m maps rectangles to upright rectangles.
func native(m geom.Matrix) bool {
	return m.IsTranslateScale() && m.A > 0 && m.D > 0
}
