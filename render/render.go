// Package render walks an area tree and drives a DocumentHandler. The walker
// knows nothing about output formats, it translates area geometry into
// painter calls with correct coordinates and resolves navigation.
package render

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"arender/area"
	"arender/events"
	"arender/fonts"
	"arender/images"
	"arender/intermediate"
	"arender/nav"
)

// ErrPageOutOfOrder is returned when pages arrive out of order and the
// handler cannot deal with it.
var ErrPageOutOfOrder = errors.New("page out of order")

// Options carries collaborators of the walker.
type Options struct {
	Fonts  fonts.Registry
	Images images.Registry
	Events events.Broadcaster
}

// Renderer renders one document. It is not safe for concurrent use.
type Renderer struct {
	h   intermediate.DocumentHandler
	nh  intermediate.NavigationHandler
	log *zap.Logger

	fonts  fonts.Registry
	images images.Registry
	events events.Broadcaster

	resolver    *nav.Resolver
	lastPage    int
	substituted map[fonts.Triplet]bool
}

// New creates renderer driving h.
func New(h intermediate.DocumentHandler, opts Options, log *zap.Logger) *Renderer {
	r := &Renderer{
		h:           h,
		nh:          h.NavigationHandler(),
		log:         log.Named("render"),
		fonts:       opts.Fonts,
		images:      opts.Images,
		events:      opts.Events,
		resolver:    nav.NewResolver(),
		lastPage:    -1,
		substituted: make(map[fonts.Triplet]bool),
	}
	if r.events == nil {
		r.events = events.Discard
	}
	return r
}

// Resolver exposes navigation state, mostly for diagnostics.
func (r *Renderer) Resolver() *nav.Resolver {
	return r.resolver
}

// Render drives the complete call sequence for doc. Cancellation is checked
// between pages only.
func (r *Renderer) Render(ctx context.Context, doc *area.Document) error {
	if err := r.h.StartDocument(); err != nil {
		return err
	}
	if err := r.h.StartDocumentHeader(); err != nil {
		return err
	}
	for _, ext := range doc.Extensions {
		if err := r.h.HandleExtension(ext); err != nil {
			return err
		}
	}
	if err := r.h.EndDocumentHeader(); err != nil {
		return err
	}

	for _, seq := range doc.Sequences {
		r.checkLanguage(seq.Language)
		if err := r.h.StartPageSequence(intermediate.PageSequence{Language: seq.Language}); err != nil {
			return err
		}
		for _, pv := range seq.Pages {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.RenderPage(pv); err != nil {
				return fmt.Errorf("page %d: %w", pv.Index, err)
			}
		}
		if err := r.h.EndPageSequence(); err != nil {
			return err
		}
	}

	if err := r.h.StartDocumentTrailer(); err != nil {
		return err
	}
	if err := r.documentNavigation(doc); err != nil {
		return err
	}
	if err := r.h.EndDocumentTrailer(); err != nil {
		return err
	}
	return r.h.EndDocument()
}

// checkLanguage reports language tags which do not parse, the tag is still
// passed on as is.
func (r *Renderer) checkLanguage(lang string) {
	if lang == "" {
		return
	}
	if _, err := language.Parse(lang); err != nil {
		r.events.Broadcast(events.New(events.SeverityWarning, events.InvalidLanguage,
			"Invalid page sequence language", "language", lang, "error", err.Error()))
	}
}

// RenderPage renders a single page. Pages must come in increasing index
// order unless the handler supports any order.
func (r *Renderer) RenderPage(pv *area.PageViewport) error {
	if !r.h.SupportsPagesOutOfOrder() && pv.Index <= r.lastPage {
		return fmt.Errorf("%w: %d after %d", ErrPageOutOfOrder, pv.Index, r.lastPage)
	}
	r.lastPage = max(r.lastPage, pv.Index)

	if err := r.h.StartPage(intermediate.Page{
		Index:  pv.Index,
		Name:   pv.Name,
		Width:  pv.Bounds.W,
		Height: pv.Bounds.H,
	}); err != nil {
		return err
	}
	if err := r.h.StartPageHeader(); err != nil {
		return err
	}
	for _, ext := range pv.Extensions {
		if err := r.h.HandleExtension(ext); err != nil {
			return err
		}
	}
	if err := r.h.EndPageHeader(); err != nil {
		return err
	}

	painter, err := r.h.StartPageContent()
	if err != nil {
		return err
	}
	s := newSession(painter, pv.Index)
	if pv.Page != nil {
		if err := r.renderPageAreas(s, pv.Page); err != nil {
			return err
		}
	}
	if err := s.flush(); err != nil {
		return err
	}
	if len(s.groups) != 0 || s.starts != s.ends {
		panic(fmt.Sprintf("render: unbalanced graphics state on page %d: %d opened, %d closed", pv.Index, s.starts, s.ends))
	}
	if err := r.h.EndPageContent(); err != nil {
		return err
	}

	if err := r.h.StartPageTrailer(); err != nil {
		return err
	}
	if r.nh != nil {
		for _, l := range s.links {
			if err := r.nh.RenderLink(l); err != nil {
				return err
			}
		}
	}
	if err := r.emitResolved(); err != nil {
		return err
	}
	if err := r.h.EndPageTrailer(); err != nil {
		return err
	}
	return r.h.EndPage()
}

// emitResolved hands newly completed actions to the navigation handler.
func (r *Renderer) emitResolved() error {
	pending := r.resolver.Pending()
	if len(pending) == 0 {
		return nil
	}
	for _, g := range pending {
		if r.nh != nil {
			if err := r.nh.AddResolvedAction(g); err != nil {
				return err
			}
		}
		r.resolver.MarkEmitted(g)
	}
	if r.nh == nil {
		return nil
	}
	return r.nh.Commit()
}

// documentNavigation emits everything left in the document trailer.
// Unresolved targets fall back to the top of the first page.
func (r *Renderer) documentNavigation(doc *area.Document) error {
	var bookmarks *nav.BookmarkTree
	if doc.Bookmarks != nil {
		bookmarks = &nav.BookmarkTree{Bookmarks: r.bookmarks(doc.Bookmarks.Bookmarks)}
	}
	var dests []*nav.NamedDestination
	for _, d := range doc.Destinations {
		if d.IDRef == "" {
			continue
		}
		dests = append(dests, &nav.NamedDestination{Name: d.IDRef, Action: r.resolver.Reference(d.IDRef)})
	}

	missing := r.resolver.Incomplete()
	if n := r.resolver.Finish(); n > 0 {
		r.events.Broadcast(events.New(events.SeverityWarning, events.UnresolvedTargets,
			"Some link targets were never found, pointing them to the first page",
			"count", n, "ids", missing))
	}
	if err := r.emitResolved(); err != nil {
		return err
	}
	if r.nh == nil {
		return nil
	}
	for _, d := range dests {
		if err := r.nh.RenderNamedDestination(d); err != nil {
			return err
		}
	}
	if bookmarks != nil && len(bookmarks.Bookmarks) > 0 {
		if err := r.nh.RenderBookmarkTree(bookmarks); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) bookmarks(in []*area.Bookmark) []*nav.Bookmark {
	out := make([]*nav.Bookmark, 0, len(in))
	for _, b := range in {
		nb := &nav.Bookmark{Title: b.Title, Show: b.Show, Children: r.bookmarks(b.Children)}
		if b.IDRef != "" {
			nb.Action = r.resolver.Reference(b.IDRef)
		}
		out = append(out, nb)
	}
	return out
}
