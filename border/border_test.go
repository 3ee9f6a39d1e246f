package border

import (
	"fmt"
	"image/color"
	"testing"

	"arender/area"
	"arender/geom"
)

// recorder logs calls and checks save/restore balance.
type recorder struct {
	calls []string
	lines []geom.Rect
	fills []Fill
	depth int
}

func (r *recorder) MoveTo(x, y int) error {
	r.calls = append(r.calls, fmt.Sprintf("M %d %d", x, y))
	return nil
}

func (r *recorder) LineTo(x, y int) error {
	r.calls = append(r.calls, fmt.Sprintf("L %d %d", x, y))
	return nil
}

func (r *recorder) ClosePath() error {
	r.calls = append(r.calls, "Z")
	return nil
}

func (r *recorder) Clip() error {
	r.calls = append(r.calls, "clip")
	return nil
}

func (r *recorder) SaveGraphicsState() error {
	r.depth++
	r.calls = append(r.calls, "save")
	return nil
}

func (r *recorder) RestoreGraphicsState() error {
	r.depth--
	r.calls = append(r.calls, "restore")
	return nil
}

func (r *recorder) FillRect(rect geom.Rect, c color.RGBA) error {
	r.fills = append(r.fills, Fill{rect, c})
	return nil
}

func (r *recorder) DrawBorderLine(rect geom.Rect, horizontal, startOrBefore bool, style area.BorderStyle, c color.RGBA) error {
	r.lines = append(r.lines, rect)
	r.calls = append(r.calls, "line")
	return nil
}

func solid(w int, mode area.BorderMode) *area.BorderProps {
	return &area.BorderProps{Style: area.BorderStyleSolid, Width: w, Color: area.Black, Mode: mode}
}

// polygonArea is twice the signed area.
func polygonArea(pts []geom.Point) int {
	a := 0
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if a < 0 {
		a = -a
	}
	return a
}

func contains(pts []geom.Point, p geom.Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}

func TestQuads_MiterSymmetry(t *testing.T) {
	const w = 2000
	rect := geom.R(0, 0, 100000, 50000)

	for _, mode := range []area.BorderMode{area.BorderModeSeparate, area.BorderModeCollapseOuter} {
		t.Run(mode.String(), func(t *testing.T) {
			bp := solid(w, mode)
			q := Quads(rect, bp, bp, bp, bp)

			inner := geom.R(rect.X+w, rect.Y+w, rect.W-2*w, rect.H-2*w)
			want := 2 * (rect.W*rect.H - inner.W*inner.H)
			got := 0
			for _, side := range []Side{Top, Right, Bottom, Left} {
				if q[side] == nil {
					t.Fatalf("%s quad missing", side)
				}
				got += polygonArea(q[side].Points)
			}
			if got != want {
				t.Errorf("quads cover %d, ring is %d: gap or overlap", got/2, want/2)
			}

			corners := []struct {
				a, b  Side
				outer geom.Point
				inner geom.Point
			}{
				{Top, Left, geom.Point{X: rect.X, Y: rect.Y}, geom.Point{X: inner.X, Y: inner.Y}},
				{Top, Right, geom.Point{X: rect.MaxX(), Y: rect.Y}, geom.Point{X: inner.MaxX(), Y: inner.Y}},
				{Bottom, Right, geom.Point{X: rect.MaxX(), Y: rect.MaxY()}, geom.Point{X: inner.MaxX(), Y: inner.MaxY()}},
				{Bottom, Left, geom.Point{X: rect.X, Y: rect.MaxY()}, geom.Point{X: inner.X, Y: inner.MaxY()}},
			}
			for _, c := range corners {
				for _, p := range []geom.Point{c.outer, c.inner} {
					if !contains(q[c.a].Points, p) || !contains(q[c.b].Points, p) {
						t.Errorf("corner %s/%s: point %v not shared (%v / %v)", c.a, c.b, p, q[c.a].Points, q[c.b].Points)
					}
				}
			}
		})
	}
}

func TestQuads_CollapseOuterNeighbourOnly(t *testing.T) {
	rect := geom.R(0, 0, 10000, 10000)
	outer := solid(2000, area.BorderModeCollapseOuter)
	sep := solid(2000, area.BorderModeSeparate)

	q := Quads(rect, outer, nil, sep, outer)
	top := q[Top]
	// left is separate: no reach into the left corner
	if top.Line.X != 0 {
		t.Errorf("top line starts at %d, want 0", top.Line.X)
	}
	// right is collapse-outer with clipped width 1000
	if top.Line.MaxX() != 10000 {
		t.Errorf("top line ends at %d, want 10000", top.Line.MaxX())
	}
	if q[Bottom] != nil {
		t.Error("absent bottom border produced geometry")
	}
	// bottom absent: right edge corner not slanted
	right := q[Right]
	last := right.Points[len(right.Points)-3]
	if last.Y != 10000 {
		t.Errorf("right edge does not reach the bottom: %v", right.Points)
	}
}

func TestDrawBorders_SingleBefore(t *testing.T) {
	rec := &recorder{}
	rect := geom.R(5000, 7000, 200000, 100000)
	if err := NewPainter(rec).DrawBorders(rect, solid(1000, area.BorderModeSeparate), nil, nil, nil); err != nil {
		t.Fatalf("DrawBorders() error = %v", err)
	}
	if len(rec.lines) != 1 {
		t.Fatalf("border lines = %d, want 1", len(rec.lines))
	}
	if want := geom.R(5000, 7000, 200000, 1000); rec.lines[0] != want {
		t.Errorf("line = %v, want %v", rec.lines[0], want)
	}
	want := []string{"save", "M 5000 7000", "L 205000 7000", "L 205000 8000", "L 5000 8000", "Z", "clip", "line", "restore"}
	if fmt.Sprint(rec.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v\nwant %v", rec.calls, want)
	}
}

func TestDrawBorders_Balanced(t *testing.T) {
	rec := &recorder{}
	bp := solid(500, area.BorderModeCollapseOuter)
	hidden := &area.BorderProps{Style: area.BorderStyleHidden, Width: 500}
	if err := NewPainter(rec).DrawBorders(geom.R(0, 0, 1000, 1000), bp, hidden, bp, nil); err != nil {
		t.Fatalf("DrawBorders() error = %v", err)
	}
	if rec.depth != 0 {
		t.Errorf("unbalanced save/restore: %d", rec.depth)
	}
	if len(rec.lines) != 2 {
		t.Errorf("lines = %d, want 2", len(rec.lines))
	}
}

func TestDrawRectangularBorders(t *testing.T) {
	rec := &recorder{}
	red := color.RGBA{255, 0, 0, 255}
	bp := &area.BorderProps{Style: area.BorderStyleDashed, Width: 1000, Color: red}
	if err := NewPainter(rec).DrawRectangularBorders(geom.R(0, 0, 10000, 5000), bp, bp, nil, bp); err != nil {
		t.Fatal(err)
	}
	want := []geom.Rect{geom.R(0, 0, 10000, 1000), geom.R(0, 4000, 10000, 1000), geom.R(9000, 0, 1000, 5000)}
	if len(rec.fills) != len(want) {
		t.Fatalf("fills = %v", rec.fills)
	}
	for i, f := range rec.fills {
		if f.Rect != want[i] || f.Color != red {
			t.Errorf("fill %d = %v, want %v", i, f, want[i])
		}
	}
	if len(rec.calls) != 0 {
		t.Errorf("speed mode must not use paths: %v", rec.calls)
	}
}

func TestSegments(t *testing.T) {
	c := color.RGBA{100, 100, 100, 255}
	tests := []struct {
		name       string
		r          geom.Rect
		horizontal bool
		style      area.BorderStyle
		wantN      int
		check      func(t *testing.T, f []Fill)
	}{
		{"solid", geom.R(0, 0, 100, 10), true, area.BorderStyleSolid, 1, nil},
		{"none", geom.R(0, 0, 100, 10), true, area.BorderStyleNone, 0, nil},
		{"dashed ends painted", geom.R(0, 0, 100, 10), true, area.BorderStyleDashed, 3, func(t *testing.T, f []Fill) {
			if f[0].Rect.X != 0 || f[len(f)-1].Rect.MaxX() != 100 {
				t.Errorf("dashes = %v", f)
			}
		}},
		{"dotted vertical", geom.R(0, 0, 10, 100), false, area.BorderStyleDotted, 6, func(t *testing.T, f []Fill) {
			for _, d := range f {
				if d.Rect.W != 10 || d.Rect.H < 9 {
					t.Errorf("dot = %v", d.Rect)
				}
			}
		}},
		{"double", geom.R(0, 0, 100, 9), true, area.BorderStyleDouble, 2, func(t *testing.T, f []Fill) {
			if f[0].Rect != geom.R(0, 0, 100, 3) || f[1].Rect != geom.R(0, 6, 100, 3) {
				t.Errorf("double = %v", f)
			}
		}},
		{"groove shades", geom.R(0, 0, 100, 9), true, area.BorderStyleGroove, 3, func(t *testing.T, f []Fill) {
			if area.Gray(f[0].Color) >= area.Gray(f[1].Color) || area.Gray(f[2].Color) <= area.Gray(f[1].Color) {
				t.Errorf("groove colors = %v %v %v", f[0].Color, f[1].Color, f[2].Color)
			}
		}},
		{"thin groove", geom.R(0, 0, 100, 2), true, area.BorderStyleRidge, 1, nil},
		{"inset before darker", geom.R(0, 0, 100, 9), true, area.BorderStyleInset, 1, func(t *testing.T, f []Fill) {
			if area.Gray(f[0].Color) >= area.Gray(c) {
				t.Errorf("inset color = %v", f[0].Color)
			}
		}},
		{"empty", geom.R(0, 0, 0, 9), true, area.BorderStyleSolid, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segments(tt.r, tt.horizontal, true, tt.style, c)
			if len(got) != tt.wantN {
				t.Fatalf("Segments() = %d fills %v, want %d", len(got), got, tt.wantN)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestTiles(t *testing.T) {
	padding := geom.R(1000, 2000, 25000, 12000)
	tests := []struct {
		name   string
		repeat area.BackgroundRepeat
		want   int
		first  geom.Rect
	}{
		{"repeat", area.BackgroundRepeatRepeat, 3 * 2, geom.R(1000, 2000, 10000, 10000)},
		{"repeat-x", area.BackgroundRepeatRepeatX, 3, geom.R(1000, 2500, 10000, 10000)},
		{"repeat-y", area.BackgroundRepeatRepeatY, 2, geom.R(1300, 2000, 10000, 10000)},
		{"no-repeat", area.BackgroundRepeatNoRepeat, 1, geom.R(1300, 2500, 10000, 10000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := &area.Background{URI: "x.png", Repeat: tt.repeat, HorizontalPos: 300, VerticalPos: 500}
			got := Tiles(padding, bg, 10000, 10000)
			if len(got) != tt.want || got[0] != tt.first {
				t.Errorf("Tiles() = %v", got)
			}
		})
	}

	if Tiles(geom.R(0, 0, 0, 0), &area.Background{URI: "x"}, 10, 10) != nil {
		t.Error("empty padding rectangle produced tiles")
	}
	if Tiles(padding, &area.Background{}, 10, 10) != nil {
		t.Error("background without image produced tiles")
	}
}
