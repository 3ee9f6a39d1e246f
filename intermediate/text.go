package intermediate

import (
	"arender/fonts"
)

// Advances computes glyph placement for a DrawText call: the offset of the
// first glyph from (x, y) and the advance after every glyph. dx[i] moves
// glyph i, so it is folded into the advance of the glyph before it.
func Advances(m fonts.Metrics, size int, text string, letterSpacing, wordSpacing int, dx []int) (int, []int) {
	runes := []rune(text)
	adv := make([]int, len(runes))
	start := 0
	if len(dx) > 0 {
		start = dx[0]
	}
	for i, r := range runes {
		a := m.Width(r, size) + letterSpacing
		if r == ' ' {
			a += wordSpacing
		}
		if i+1 < len(dx) {
			a += dx[i+1]
		}
		adv[i] = a
	}
	return start, adv
}

// Adjusted reports whether text needs per glyph positioning.
func Adjusted(letterSpacing, wordSpacing int, dx []int) bool {
	if letterSpacing != 0 || wordSpacing != 0 {
		return true
	}
	for _, d := range dx {
		if d != 0 {
			return true
		}
	}
	return false
}
