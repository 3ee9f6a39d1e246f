package ps

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"arender/geom"
	"arender/intermediate"
	"arender/nav"
)

// deferredLink waits for its target to be resolved, it is written later
// with /SrcPg pointing back to the page it belongs to.
type deferredLink struct {
	page int
	rect string
}

// navigation writes pdfmark operators. Links to targets not known yet are
// kept until the resolved action is committed.
type navigation struct {
	h        *DocumentHandler
	deferred map[string][]deferredLink
	ready    []*nav.GoTo
}

// rectOnPage converts page content rectangle to default user space.
func (n *navigation) rectOnPage(p *pageInfo, r geom.Rect) string {
	b := p.baseTransform().TransformRect(r)
	return "[" + Pt(b.X) + " " + Pt(b.Y) + " " + Pt(b.MaxX()) + " " + Pt(b.MaxY()) + "]"
}

// destination returns "/Page n /View [...]" for a complete action.
func (n *navigation) destination(g *nav.GoTo) (string, bool) {
	p, ok := n.h.pages[g.PageIndex]
	if !ok {
		n.h.log.Warn("Navigation target on unknown page", zap.String("action", g.ID), zap.Int("page", g.PageIndex))
		return "", false
	}
	pt := p.baseTransform().Transform(g.Point)
	return fmt.Sprintf("/Page %d /View [/XYZ %s %s null]", p.ordinal, Pt(pt.X), Pt(pt.Y)), true
}

func (n *navigation) RenderNamedDestination(d *nav.NamedDestination) error {
	n.h.Expect("RenderNamedDestination", intermediate.PhaseDocumentTrailer)
	if d.Action == nil || !d.Action.IsComplete() {
		return nil
	}
	dest, ok := n.destination(d.Action)
	if !ok {
		return nil
	}
	return n.h.body.Writeln("[ /Dest", Name(d.Name), dest, "/DEST pdfmark")
}

func (n *navigation) RenderBookmarkTree(t *nav.BookmarkTree) error {
	n.h.Expect("RenderBookmarkTree", intermediate.PhaseDocumentTrailer)
	if len(t.Bookmarks) == 0 {
		return nil
	}
	for _, b := range t.Bookmarks {
		n.bookmark(b)
	}
	n.h.body.Writeln("[ /PageMode /UseOutlines /DOCVIEW pdfmark")
	return n.h.body.Err()
}

func (n *navigation) bookmark(b *nav.Bookmark) {
	args := []string{"[ /Title", TextString(b.Title)}
	if c := len(b.Children); c > 0 {
		if !b.Show {
			c = -c
		}
		args = append(args, "/Count", strconv.Itoa(c))
	}
	if b.Action != nil && b.Action.IsComplete() {
		if dest, ok := n.destination(b.Action); ok {
			args = append(args, dest)
		}
	}
	args = append(args, "/OUT pdfmark")
	n.h.body.Writeln(args...)
	for _, c := range b.Children {
		n.bookmark(c)
	}
}

func (n *navigation) RenderLink(l *nav.Link) error {
	n.h.ExpectLinks("RenderLink")
	if n.h.Phase() != intermediate.PhasePageTrailer {
		n.h.log.Debug("Link outside of page ignored")
		return nil
	}
	rect := n.rectOnPage(n.h.page, l.Rect)
	switch a := l.Action.(type) {
	case *nav.GoTo:
		if !a.IsComplete() {
			n.deferred[a.ID] = append(n.deferred[a.ID], deferredLink{page: n.h.page.ordinal, rect: rect})
			return nil
		}
		return n.writeGoToLink(rect, a, 0)
	case *nav.URI:
		action := "<< /Subtype /URI /URI " + TextString(a.Target) + " >>"
		if a.NewWindow {
			action = "<< /Subtype /Launch /F " + TextString(a.Target) + " /NewWindow true >>"
		}
		return n.h.body.Writeln("[ /Rect", rect, "/Border [0 0 0] /Action", action, "/Subtype /Link /ANN pdfmark")
	}
	return nil
}

func (n *navigation) writeGoToLink(rect string, a *nav.GoTo, srcPage int) error {
	dest, ok := n.destination(a)
	if !ok {
		return nil
	}
	args := []string{"["}
	if srcPage > 0 {
		args = append(args, "/SrcPg", strconv.Itoa(srcPage))
	}
	args = append(args, "/Rect", rect, "/Border [0 0 0]", dest, "/Subtype /Link /ANN pdfmark")
	return n.h.body.Writeln(args...)
}

// AddResolvedAction queues links waiting for a, actions without waiting
// links need nothing.
func (n *navigation) AddResolvedAction(a *nav.GoTo) error {
	n.h.ExpectLinks("AddResolvedAction")
	if _, ok := n.deferred[a.ID]; ok {
		n.ready = append(n.ready, a)
	}
	return nil
}

// Commit writes deferred links of queued actions.
func (n *navigation) Commit() error {
	n.h.ExpectLinks("Commit")
	for _, a := range n.ready {
		for _, l := range n.deferred[a.ID] {
			if err := n.writeGoToLink(l.rect, a, l.page); err != nil {
				return err
			}
		}
		delete(n.deferred, a.ID)
	}
	n.ready = n.ready[:0]
	return n.h.body.Err()
}
