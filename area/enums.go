package area

// Border and rule styles.
// ENUM(none, hidden, dotted, dashed, solid, double, groove, ridge, inset, outset)
type BorderStyle int

// Visible reports whether the style paints anything.
func (s BorderStyle) Visible() bool {
	return s != BorderStyleNone && s != BorderStyleHidden
}

// How a border joins its neighbours.
// ENUM(separate, collapse-inner, collapse-outer)
type BorderMode int

// Block positioning scheme.
// ENUM(static, relative, absolute, fixed)
type Positioning int

// Background image repetition policy.
// ENUM(repeat, repeat-x, repeat-y, no-repeat)
type BackgroundRepeat int

// Page regions in render order.
// ENUM(before, start, body, end, after)
type RegionClass int
