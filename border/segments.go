package border

import (
	"image/color"

	"arender/area"
	"arender/geom"
)

// Fill is a solid rectangle.
type Fill struct {
	Rect  geom.Rect
	Color color.RGBA
}

const shadeFactor = 0.4

// Segments decomposes a border line of any style into solid rectangles, so
// every format paints styles the same way. r is the whole line area,
// horizontal lines run along X with thickness r.H.
func Segments(r geom.Rect, horizontal, startOrBefore bool, style area.BorderStyle, c color.RGBA) []Fill {
	fills := segments(r, horizontal, startOrBefore, style, c)
	out := fills[:0]
	for _, f := range fills {
		if !f.Rect.Empty() {
			out = append(out, f)
		}
	}
	return out
}

func segments(r geom.Rect, horizontal, startOrBefore bool, style area.BorderStyle, c color.RGBA) []Fill {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}
	length, thickness := r.W, r.H
	if !horizontal {
		length, thickness = r.H, r.W
	}

	// along builds a rectangle from offsets along the line and across it
	along := func(from, to, across0, across1 int, col color.RGBA) Fill {
		if horizontal {
			return Fill{geom.Rect{X: r.X + from, Y: r.Y + across0, W: to - from, H: across1 - across0}, col}
		}
		return Fill{geom.Rect{X: r.X + across0, Y: r.Y + from, W: across1 - across0, H: to - from}, col}
	}

	switch style {
	case area.BorderStyleNone, area.BorderStyleHidden:
		return nil
	case area.BorderStyleDashed:
		return pattern(length, 2*thickness, func(from, to int) Fill { return along(from, to, 0, thickness, c) })
	case area.BorderStyleDotted:
		return pattern(length, thickness, func(from, to int) Fill { return along(from, to, 0, thickness, c) })
	case area.BorderStyleDouble:
		third := thickness / 3
		if third == 0 {
			return []Fill{along(0, length, 0, thickness, c)}
		}
		return []Fill{
			along(0, length, 0, third, c),
			along(0, length, thickness-third, thickness, c),
		}
	case area.BorderStyleGroove, area.BorderStyleRidge:
		f := shadeFactor
		if style == area.BorderStyleRidge {
			f = -shadeFactor
		}
		third := thickness / 3
		return []Fill{
			along(0, length, 0, third, area.Lighten(c, -f)),
			along(0, length, third, thickness-third, c),
			along(0, length, thickness-third, thickness, area.Lighten(c, f)),
		}
	case area.BorderStyleInset, area.BorderStyleOutset:
		f := shadeFactor
		if style == area.BorderStyleInset {
			f = -shadeFactor
		}
		if !startOrBefore {
			f = -f
		}
		return []Fill{along(0, length, 0, thickness, area.Lighten(c, f))}
	default:
		return []Fill{along(0, length, 0, thickness, c)}
	}
}

// pattern splits length into an odd number of equal units, painting every
// other one starting with the first, so both ends are painted.
func pattern(length, unit int, mk func(from, to int) Fill) []Fill {
	if unit <= 0 {
		return []Fill{mk(0, length)}
	}
	rep := length / unit
	if rep%2 == 0 {
		rep++
	}
	out := make([]Fill, 0, rep/2+1)
	for i := 0; i < rep; i += 2 {
		from := i * length / rep
		to := (i + 1) * length / rep
		if to > from {
			out = append(out, mk(from, to))
		}
	}
	return out
}

// Tiles returns the positions background image tiles are drawn at. padding is
// the padding rectangle the tiles are clipped to, img sizes are in
// millipoints. Without repetition the single tile is shifted by the
// background position.
func Tiles(padding geom.Rect, bg *area.Background, imgW, imgH int) []geom.Rect {
	if bg == nil || bg.URI == "" || imgW <= 0 || imgH <= 0 || padding.W <= 0 || padding.H <= 0 {
		return nil
	}
	horz := padding.W/imgW + 1
	vert := padding.H/imgH + 1
	switch bg.Repeat {
	case area.BackgroundRepeatNoRepeat:
		horz, vert = 1, 1
	case area.BackgroundRepeatRepeatX:
		vert = 1
	case area.BackgroundRepeatRepeatY:
		horz = 1
	}
	sx, sy := padding.X, padding.Y
	if horz == 1 {
		sx += bg.HorizontalPos
	}
	if vert == 1 {
		sy += bg.VerticalPos
	}
	out := make([]geom.Rect, 0, horz*vert)
	for x := range horz {
		for y := range vert {
			out = append(out, geom.Rect{X: sx + x*imgW, Y: sy + y*imgH, W: imgW, H: imgH})
		}
	}
	return out
}
