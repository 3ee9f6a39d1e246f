// Package geom provides coordinate primitives shared by the area tree, the
// render walker and all format painters. All lengths are integer millipoints
// (1/1000 pt) unless stated otherwise.
package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a position in millipoints.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d %d", p.X, p.Y)
}

// Rect is an axis aligned rectangle in millipoints, (X,Y) is the top-left
// corner in a y-down coordinate system.
type Rect struct {
	X, Y, W, H int
}

// R is a shortcut constructor.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) MaxX() int { return r.X + r.W }
func (r Rect) MaxY() int { return r.Y + r.H }

// Intersect returns the common part of two rectangles, zero Rect if there is
// none.
func (r Rect) Intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.MaxX(), o.MaxX()), min(r.MaxY(), o.MaxY())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Union returns the smallest rectangle containing both. Empty rectangles are
// ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x1, y1 := min(r.X, o.X), min(r.Y, o.Y)
	x2, y2 := max(r.MaxX(), o.MaxX()), max(r.MaxY(), o.MaxY())
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Contains reports whether o lies completely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// String returns "x y w h", the form used by both XML dialects.
func (r Rect) String() string {
	return fmt.Sprintf("%d %d %d %d", r.X, r.Y, r.W, r.H)
}

// ParseRect parses "x y w h" (whitespace or comma separated).
func ParseRect(s string) (Rect, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return Rect{}, fmt.Errorf("malformed rectangle %q", s)
	}
	var v [4]int
	for i, f := range fields {
		n, err := parseLength(f)
		if err != nil {
			return Rect{}, fmt.Errorf("malformed rectangle %q: %w", s, err)
		}
		v[i] = n
	}
	return Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

// ParsePoint parses "x y".
func ParsePoint(s string) (Point, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("malformed point %q", s)
	}
	x, err := parseLength(fields[0])
	if err != nil {
		return Point{}, err
	}
	y, err := parseLength(fields[1])
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// parseLength accepts integer millipoints, tolerating a fractional part
// produced by other tools.
func parseLength(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// MptToPt converts millipoints to points.
func MptToPt(v int) float64 {
	return float64(v) / 1000
}

// FormatPt formats millipoints as points with at most 3 decimals and no
// trailing zeros.
func FormatPt(v int) string {
	return FormatFloat(float64(v) / 1000)
}

// FormatFloat formats with at most 3 decimals, trimming trailing zeros.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
