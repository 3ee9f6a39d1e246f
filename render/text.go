package render

import (
	"strings"

	"arender/intermediate"
)

// adjustment is extra inline displacement before the glyph at index.
type adjustment struct {
	index int
	dx    int
}

// textRun collects glyphs painted with the same font, position and spacing.
// Adjustments are kept sparse since most runs have none.
type textRun struct {
	x, y   int
	ls, ws int
	text   strings.Builder
	n      int
	adj    []adjustment
}

func (t *textRun) empty() bool {
	return t.n == 0
}

// start begins a run at (x, y). A pending run with different origin or
// spacing is flushed first.
func (t *textRun) start(p intermediate.Painter, x, y, ls, ws int) error {
	if !t.empty() && (t.x != x || t.y != y || t.ls != ls || t.ws != ws) {
		if err := t.flush(p); err != nil {
			return err
		}
	}
	if t.empty() {
		t.x, t.y, t.ls, t.ws = x, y, ls, ws
	}
	return nil
}

func (t *textRun) addChar(r rune) {
	t.text.WriteRune(r)
	t.n++
}

// adjust shifts the next glyph added.
func (t *textRun) adjust(dx int) {
	if dx == 0 {
		return
	}
	if l := len(t.adj); l > 0 && t.adj[l-1].index == t.n {
		t.adj[l-1].dx += dx
		return
	}
	t.adj = append(t.adj, adjustment{index: t.n, dx: dx})
}

// dx expands adjustments into one entry per glyph, nil when there are none.
// Adjustment past the last glyph has nothing to move and is dropped.
func (t *textRun) dx() []int {
	var out []int
	for _, a := range t.adj {
		if a.index >= t.n {
			continue
		}
		if out == nil {
			out = make([]int, t.n)
		}
		out[a.index] += a.dx
	}
	return out
}

func (t *textRun) reset() {
	t.text.Reset()
	t.n = 0
	t.adj = t.adj[:0]
}

func (t *textRun) flush(p intermediate.Painter) error {
	if t.empty() {
		t.reset()
		return nil
	}
	dx, text := t.dx(), t.text.String()
	t.reset()
	return p.DrawText(t.x, t.y, t.ls, t.ws, dx, text)
}
