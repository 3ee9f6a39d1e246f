// Package nav tracks document navigation: internal links, bookmarks and named
// destinations whose targets may only be discovered later in traversal.
package nav

import (
	"arender/geom"
)

// Action lifecycle.
// ENUM(incomplete, complete, emitted)
type State int

// Action is something a link or bookmark triggers.
type Action interface {
	ActionID() string
	IsComplete() bool
}

// GoTo jumps to a point on a page. PageIndex is -1 until known.
type GoTo struct {
	ID        string
	TargetID  string
	PageIndex int
	Point     geom.Point
	state     State
}

// NewGoTo creates an already resolved action, used when reading actions back
// from serialized form.
func NewGoTo(id string, pageIndex int, pt geom.Point) *GoTo {
	return &GoTo{ID: id, PageIndex: pageIndex, Point: pt, state: StateComplete}
}

// Placeholder creates an unresolved action known only by id.
func Placeholder(id string) *GoTo {
	return &GoTo{ID: id, PageIndex: -1}
}

func (g *GoTo) ActionID() string { return g.ID }
func (g *GoTo) State() State     { return g.state }

// IsComplete is true once page and point are known, emitted actions are
// complete as well.
func (g *GoTo) IsComplete() bool { return g.state != StateIncomplete }

// Resolve fills in the target and completes an incomplete action.
func (g *GoTo) Resolve(pageIndex int, pt geom.Point) {
	g.PageIndex = pageIndex
	g.Point = pt
	if g.state == StateIncomplete {
		g.state = StateComplete
	}
}

// URI opens an external resource.
type URI struct {
	ID        string
	Target    string
	NewWindow bool
}

func (u *URI) ActionID() string { return u.ID }
func (u *URI) IsComplete() bool { return true }

// Link is a clickable page area.
type Link struct {
	Rect   geom.Rect
	Action Action
}

type Bookmark struct {
	Title    string
	Show     bool
	Action   *GoTo
	Children []*Bookmark
}

type BookmarkTree struct {
	Bookmarks []*Bookmark
}

type NamedDestination struct {
	Name   string
	Action *GoTo
}
