package nav

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"arender/geom"
	"arender/utils/debug"
)

type target struct {
	pageIndex int
	point     geom.Point
}

// Resolver owns all navigation actions of one document. One action exists per
// target id, every reference to the same id shares it.
type Resolver struct {
	targets map[string]target
	gotos   map[string]*GoTo
	order   []*GoTo
	uris    map[string]*URI
	seq     int
}

func NewResolver() *Resolver {
	return &Resolver{
		targets: make(map[string]target),
		gotos:   make(map[string]*GoTo),
		uris:    make(map[string]*URI),
	}
}

func (r *Resolver) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s%d", prefix, r.seq)
}

// Reference returns the action for targetID, complete if the target was
// already seen.
func (r *Resolver) Reference(targetID string) *GoTo {
	if g, ok := r.gotos[targetID]; ok {
		return g
	}
	g := &GoTo{ID: r.nextID("goto"), TargetID: targetID, PageIndex: -1}
	if t, ok := r.targets[targetID]; ok {
		g.Resolve(t.pageIndex, t.point)
	}
	r.gotos[targetID] = g
	r.order = append(r.order, g)
	return g
}

// Target records the position of an area carrying id. Only the first
// occurrence counts, false is returned for the rest.
func (r *Resolver) Target(id string, pageIndex int, pt geom.Point) bool {
	if id == "" {
		return false
	}
	if _, ok := r.targets[id]; ok {
		return false
	}
	r.targets[id] = target{pageIndex: pageIndex, point: pt}
	if g, ok := r.gotos[id]; ok && g.state == StateIncomplete {
		g.Resolve(pageIndex, pt)
	}
	return true
}

// Known reports whether the target was seen.
func (r *Resolver) Known(id string) bool {
	_, ok := r.targets[id]
	return ok
}

// Pending returns complete but not yet emitted actions in creation order.
func (r *Resolver) Pending() []*GoTo {
	var out []*GoTo
	for _, g := range r.order {
		if g.state == StateComplete {
			out = append(out, g)
		}
	}
	return out
}

// MarkEmitted records that the action was written to output. Incomplete
// actions cannot be emitted.
func (r *Resolver) MarkEmitted(g *GoTo) {
	if g.state == StateIncomplete {
		panic(fmt.Sprintf("nav: emitting incomplete action %s for target %q", g.ID, g.TargetID))
	}
	g.state = StateEmitted
}

// Incomplete lists target ids still unresolved, naturally sorted.
func (r *Resolver) Incomplete() []string {
	var ids []string
	for _, g := range r.order {
		if g.state == StateIncomplete {
			ids = append(ids, g.TargetID)
		}
	}
	sort.Sort(natural.StringSlice(ids))
	return ids
}

// Finish resolves everything still incomplete to the top left corner of the
// known page, or of the first page, and returns how many such actions there
// were.
func (r *Resolver) Finish() int {
	n := 0
	for _, g := range r.order {
		if g.state != StateIncomplete {
			continue
		}
		g.Resolve(max(g.PageIndex, 0), geom.Point{})
		n++
	}
	return n
}

// ExternalLink returns the action for uri, one per distinct uri.
func (r *Resolver) ExternalLink(uri string, newWindow bool) *URI {
	key := fmt.Sprintf("%t|%s", newWindow, uri)
	if u, ok := r.uris[key]; ok {
		return u
	}
	u := &URI{ID: r.nextID("uri"), Target: uri, NewWindow: newWindow}
	r.uris[key] = u
	return u
}

// Actions returns all goto actions in creation order.
func (r *Resolver) Actions() []*GoTo {
	return r.order
}

func (r *Resolver) String() string {
	tw := debug.NewTreeWriter()

	ids := make([]string, 0, len(r.targets))
	for id := range r.targets {
		ids = append(ids, id)
	}
	sort.Sort(natural.StringSlice(ids))
	tw.Line(0, "targets: %d", len(ids))
	for _, id := range ids {
		t := r.targets[id]
		tw.Line(1, "%s -> page %d at %s", id, t.pageIndex, t.point)
	}

	refs := make([]string, 0, len(r.gotos))
	for id := range r.gotos {
		refs = append(refs, id)
	}
	sort.Sort(natural.StringSlice(refs))
	tw.Line(0, "actions: %d", len(refs))
	for _, id := range refs {
		g := r.gotos[id]
		tw.Line(1, "%s %s -> %s page %d at %s", g.ID, id, g.state, g.PageIndex, g.Point)
	}
	return tw.String()
}
