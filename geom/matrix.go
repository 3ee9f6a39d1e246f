package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Matrix is a 2D affine transformation in PostScript order [a b c d e f]:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// Translation components are in millipoints.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, E: x, F: y}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate creates a rotation matrix, angle in degrees.
func Rotate(deg float64) Matrix {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	// keep quarter turns exact
	if deg == math.Trunc(deg) && int(deg)%90 == 0 {
		cos, sin = math.Round(cos), math.Round(sin)
	}
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Multiply returns m·n: the resulting transform applies n first, then m. This
// is how a nested coordinate system (n) is concatenated onto its parent (m).
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Transform applies the matrix to a point, rounding to millipoints.
func (m Matrix) Transform(p Point) Point {
	x, y := m.TransformXY(float64(p.X), float64(p.Y))
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// TransformXY applies the matrix to float coordinates.
func (m Matrix) TransformXY(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TransformRect returns the bounding box of the transformed rectangle.
func (m Matrix) TransformRect(r Rect) Rect {
	xs := [4]float64{float64(r.X), float64(r.MaxX()), float64(r.X), float64(r.MaxX())}
	ys := [4]float64{float64(r.Y), float64(r.Y), float64(r.MaxY()), float64(r.MaxY())}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range 4 {
		x, y := m.TransformXY(xs[i], ys[i])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	x1, y1 := int(math.Round(minX)), int(math.Round(minY))
	return Rect{X: x1, Y: y1, W: int(math.Round(maxX)) - x1, H: int(math.Round(maxY)) - y1}
}

// Invert returns the inverse transformation, ok is false for singular
// matrices.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.D - m.B*m.C
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	return Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}, true
}

func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslateScale reports whether the matrix keeps axis alignment without
// mirroring the x axis.
func (m Matrix) IsTranslateScale() bool {
	return m.B == 0 && m.C == 0 && m.A > 0 && m.D != 0
}

// String returns the transform in the textual form understood by
// ParseTransform. Values round-trip exactly.
func (m Matrix) String() string {
	if m.A == 1 && m.B == 0 && m.C == 0 && m.D == 1 {
		return "translate(" + ftoa(m.E) + "," + ftoa(m.F) + ")"
	}
	return "matrix(" + strings.Join([]string{ftoa(m.A), ftoa(m.B), ftoa(m.C), ftoa(m.D), ftoa(m.E), ftoa(m.F)}, ",") + ")"
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ParseTransform parses a whitespace separated list of
// matrix(a,b,c,d,e,f), translate(x[,y]), scale(x[,y]) and rotate(deg)
// operations. The operations are concatenated left to right, each one
// nested into the previous.
func ParseTransform(s string) (Matrix, error) {
	res := Identity()
	rest := strings.TrimSpace(s)
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open <= 0 || closing < open {
			return Identity(), fmt.Errorf("malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseArgs(rest[open+1 : closing])
		if err != nil {
			return Identity(), fmt.Errorf("malformed transform %q: %w", s, err)
		}
		var op Matrix
		switch {
		case name == "matrix" && len(args) == 6:
			op = Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}
		case name == "translate" && len(args) == 1:
			op = Translate(args[0], 0)
		case name == "translate" && len(args) == 2:
			op = Translate(args[0], args[1])
		case name == "scale" && len(args) == 1:
			op = Scale(args[0], args[0])
		case name == "scale" && len(args) == 2:
			op = Scale(args[0], args[1])
		case name == "rotate" && len(args) == 1:
			op = Rotate(args[0])
		default:
			return Identity(), fmt.Errorf("unsupported transform operation %q in %q", name, s)
		}
		res = res.Multiply(op)
		rest = strings.TrimLeft(rest[closing+1:], " \t\n,")
	}
	return res, nil
}

func parseArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
