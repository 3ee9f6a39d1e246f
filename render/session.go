package render

import (
	"fmt"
	"image/color"

	"go.uber.org/multierr"

	"arender/area"
	"arender/geom"
	"arender/intermediate"
	"arender/nav"
)

type groupKind int

const (
	kindGroup groupKind = iota
	kindViewport
)

// groupState is one open painter bracket. It holds everything needed to
// open it again after a break-out.
type groupState struct {
	kind      groupKind
	transform geom.Matrix
	width     int
	height    int
	clip      *geom.Rect
}

// session is the mutable state of rendering one page. It is created per page
// and passed by pointer through the traversal.
type session struct {
	painter   intermediate.Painter
	pageIndex int

	// cursor, millipoints in the current coordinate system
	ip, bp int
	// containing block position used for absolutely positioned areas
	containingIP, containingBP int

	groups []groupState
	// starts and ends count brackets handed to the painter
	starts, ends int

	run     textRun
	font    intermediate.Font
	hasFont bool

	links []*nav.Link
}

func newSession(p intermediate.Painter, pageIndex int) *session {
	return &session{painter: p, pageIndex: pageIndex}
}

// ctm maps the current coordinate system to page content coordinates.
func (s *session) ctm() geom.Matrix {
	m := geom.Identity()
	for _, g := range s.groups {
		m = m.Multiply(g.transform)
	}
	return m
}

// open hands g to the painter and records it. The record is kept even when
// the painter fails: painters track their own nesting before writing, so the
// session has to stay in step with them for unwinding to balance.
func (s *session) open(g groupState) error {
	err := s.flush()
	switch g.kind {
	case kindViewport:
		err = multierr.Append(err, s.painter.StartViewport(g.transform, g.width, g.height, g.clip))
	default:
		err = multierr.Append(err, s.painter.StartGroup(g.transform))
	}
	s.starts++
	s.groups = append(s.groups, g)
	return err
}

func (s *session) close() error {
	if len(s.groups) == 0 {
		panic("render: closing group on empty stack")
	}
	err := s.flush()
	g := s.groups[len(s.groups)-1]
	s.groups = s.groups[:len(s.groups)-1]
	s.ends++
	if g.kind == kindViewport {
		return multierr.Append(err, s.painter.EndViewport())
	}
	return multierr.Append(err, s.painter.EndGroup())
}

// mark returns the current stack depth for closeTo.
func (s *session) mark() int {
	return len(s.groups)
}

// closeTo ends every bracket opened after mark. The stack is always unwound
// even when the painter fails, all errors are returned combined.
func (s *session) closeTo(mark int) error {
	if len(s.groups) < mark {
		panic(fmt.Sprintf("render: stack depth %d below saved mark %d", len(s.groups), mark))
	}
	var err error
	for len(s.groups) > mark {
		err = multierr.Append(err, s.close())
	}
	return err
}

// scoped runs f and closes everything it opened, on every path.
func (s *session) scoped(f func() error) (err error) {
	m := s.mark()
	defer func() {
		err = multierr.Append(err, s.closeTo(m))
	}()
	return f()
}

func (s *session) startViewport(m geom.Matrix, w, h int, clip *geom.Rect) error {
	return s.open(groupState{kind: kindViewport, transform: m, width: w, height: h, clip: clip})
}

func (s *session) startGroup(m geom.Matrix) error {
	return s.open(groupState{kind: kindGroup, transform: m})
}

// breakOut closes every open bracket back to the page root and returns them
// in the order they were opened. The captured brackets are returned even
// with an error so the caller can always restore them.
func (s *session) breakOut() ([]groupState, error) {
	saved := append([]groupState(nil), s.groups...)
	return saved, s.closeTo(0)
}

// restore reopens brackets captured by breakOut in original order. All of
// them are reopened even after a painter error.
func (s *session) restore(saved []groupState) error {
	var err error
	for _, g := range saved {
		err = multierr.Append(err, s.open(g))
	}
	return err
}

// painting, every call ends a pending text run first

func (s *session) flush() error {
	return s.run.flush(s.painter)
}

func (s *session) clipRect(r geom.Rect) error {
	if err := s.flush(); err != nil {
		return err
	}
	return s.painter.ClipRect(r)
}

func (s *session) fillRect(r geom.Rect, c color.RGBA) error {
	if err := s.flush(); err != nil {
		return err
	}
	return s.painter.FillRect(r, c)
}

func (s *session) drawBorderRect(r geom.Rect, top, bottom, left, right *area.BorderProps) error {
	if err := s.flush(); err != nil {
		return err
	}
	return s.painter.DrawBorderRect(r, top, bottom, left, right)
}

func (s *session) drawLine(start, end geom.Point, width int, c color.RGBA, style area.BorderStyle) error {
	if err := s.flush(); err != nil {
		return err
	}
	return s.painter.DrawLine(start, end, width, c, style)
}

func (s *session) drawImage(uri string, r geom.Rect) error {
	if err := s.flush(); err != nil {
		return err
	}
	return s.painter.DrawImage(uri, r)
}

func (s *session) drawForeignObject(ns string, content []byte, r geom.Rect) error {
	if err := s.flush(); err != nil {
		return err
	}
	return s.painter.DrawForeignObject(ns, content, r)
}

// setFont only talks to the painter when something changed.
func (s *session) setFont(f intermediate.Font) error {
	if s.hasFont && s.font == f {
		return nil
	}
	if err := s.flush(); err != nil {
		return err
	}
	s.font, s.hasFont = f, true
	return s.painter.SetFont(f)
}
