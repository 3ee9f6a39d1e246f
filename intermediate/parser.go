package intermediate

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"arender/area"
	"arender/geom"
	"arender/nav"
)

// RootElement is the tag of the intermediate format root.
const RootElement = "document"

// Parse reads intermediate format from r and replays it into h.
func Parse(r io.Reader, h DocumentHandler, log *zap.Logger) error {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return fmt.Errorf("unable to read intermediate format: %w", err)
	}
	return Replay(doc, h, log)
}

// Replay drives h with the content of an already parsed IF document.
func Replay(doc *etree.Document, h DocumentHandler, log *zap.Logger) error {
	root := doc.Root()
	if root == nil {
		return errors.New("document has no root element")
	}
	if root.Tag != RootElement || root.NamespaceURI() != Namespace {
		return fmt.Errorf("unexpected root element %q (%s)", root.Tag, root.NamespaceURI())
	}
	p := &replayer{
		h:       h,
		nh:      h.NavigationHandler(),
		log:     log.Named("if"),
		actions: make(map[string]nav.Action),
	}
	return p.document(root)
}

type replayer struct {
	h       DocumentHandler
	nh      NavigationHandler
	log     *zap.Logger
	actions map[string]nav.Action
	font    FontState
}

func (p *replayer) unexpected(parent, el *etree.Element) {
	p.log.Warn("Unexpected tag in intermediate format, ignoring", zap.String("parent", parent.Tag), zap.String("tag", el.FullTag()))
}

func isNav(el *etree.Element) bool {
	return el.NamespaceURI() == NavNamespace
}

func (p *replayer) document(root *etree.Element) error {
	if err := p.h.StartDocument(); err != nil {
		return err
	}

	children := root.ChildElements()
	i := 0
	// Header is mandatory for handlers, even when absent in the file.
	if err := p.h.StartDocumentHeader(); err != nil {
		return err
	}
	if len(children) > 0 && children[0].Tag == "header" {
		if err := p.extensions(children[0]); err != nil {
			return fmt.Errorf("header: %w", err)
		}
		i++
	}
	if err := p.h.EndDocumentHeader(); err != nil {
		return err
	}

	trailer := false
	for _, child := range children[i:] {
		switch {
		case child.Tag == "page-sequence" && !trailer:
			if err := p.pageSequence(child); err != nil {
				return fmt.Errorf("page-sequence: %w", err)
			}
		case child.Tag == "trailer" && !trailer:
			trailer = true
			if err := p.trailer(child); err != nil {
				return fmt.Errorf("trailer: %w", err)
			}
		default:
			p.unexpected(root, child)
		}
	}
	if !trailer {
		if err := p.trailer(etree.NewElement("trailer")); err != nil {
			return err
		}
	}
	return p.h.EndDocument()
}

func (p *replayer) extensions(el *etree.Element) error {
	for _, child := range el.ChildElements() {
		if child.Tag != "extension" || isNav(child) {
			p.unexpected(el, child)
			continue
		}
		if err := p.h.HandleExtension(extension(child)); err != nil {
			return err
		}
	}
	return nil
}

func extension(el *etree.Element) area.Extension {
	return area.Extension{
		Kind:    el.SelectAttrValue("kind", ""),
		Name:    el.SelectAttrValue("name", ""),
		Content: el.Text(),
	}
}

func (p *replayer) pageSequence(el *etree.Element) error {
	lang := ""
	for _, a := range el.Attr {
		if a.Space == "xml" && a.Key == "lang" {
			lang = a.Value
		}
	}
	if err := p.h.StartPageSequence(PageSequence{Language: lang}); err != nil {
		return err
	}
	for _, child := range el.ChildElements() {
		if child.Tag != "page" {
			p.unexpected(el, child)
			continue
		}
		if err := p.page(child); err != nil {
			return fmt.Errorf("page %s: %w", child.SelectAttrValue("index", "?"), err)
		}
	}
	return p.h.EndPageSequence()
}

func (p *replayer) page(el *etree.Element) error {
	var (
		pg  = Page{Name: el.SelectAttrValue("name", "")}
		err error
	)
	if pg.Index, err = reqInt(el, "index"); err != nil {
		return err
	}
	if pg.Width, err = reqInt(el, "width"); err != nil {
		return err
	}
	if pg.Height, err = reqInt(el, "height"); err != nil {
		return err
	}
	if err := p.h.StartPage(pg); err != nil {
		return err
	}

	sections := map[string]*etree.Element{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "page-header", "page-content", "page-trailer":
			sections[child.Tag] = child
		default:
			p.unexpected(el, child)
		}
	}

	if err := p.h.StartPageHeader(); err != nil {
		return err
	}
	if s := sections["page-header"]; s != nil {
		if err := p.extensions(s); err != nil {
			return err
		}
	}
	if err := p.h.EndPageHeader(); err != nil {
		return err
	}

	painter, err := p.h.StartPageContent()
	if err != nil {
		return err
	}
	p.font.Reset()
	if s := sections["page-content"]; s != nil {
		if err := p.content(painter, s); err != nil {
			return err
		}
	}
	if err := p.h.EndPageContent(); err != nil {
		return err
	}

	if err := p.h.StartPageTrailer(); err != nil {
		return err
	}
	if s := sections["page-trailer"]; s != nil {
		if err := p.trailerItems(s); err != nil {
			return err
		}
	}
	if err := p.h.EndPageTrailer(); err != nil {
		return err
	}
	return p.h.EndPage()
}

func (p *replayer) trailer(el *etree.Element) error {
	if err := p.h.StartDocumentTrailer(); err != nil {
		return err
	}
	if err := p.trailerItems(el); err != nil {
		return err
	}
	return p.h.EndDocumentTrailer()
}

// trailerItems handles page and document trailers alike. A run of action
// definitions is delivered as resolved actions followed by one Commit.
func (p *replayer) trailerItems(el *etree.Element) error {
	pending := false
	commit := func() error {
		if !pending {
			return nil
		}
		pending = false
		if p.nh == nil {
			return nil
		}
		return p.nh.Commit()
	}

	for _, child := range el.ChildElements() {
		if isNav(child) && child.Tag == "goto-xy" {
			resolved, err := p.defineGoTo(child)
			if err != nil {
				return err
			}
			if resolved != nil && p.nh != nil {
				if err := p.nh.AddResolvedAction(resolved); err != nil {
					return err
				}
				pending = true
			}
			continue
		}
		if err := commit(); err != nil {
			return err
		}

		var err error
		switch {
		case !isNav(child) && child.Tag == "extension":
			err = p.h.HandleExtension(extension(child))
		case isNav(child) && child.Tag == "link":
			err = p.link(child)
		case isNav(child) && child.Tag == "named-destination":
			err = p.namedDestination(child)
		case isNav(child) && child.Tag == "bookmark-tree":
			err = p.bookmarkTree(child)
		default:
			p.unexpected(el, child)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", child.Tag, err)
		}
	}
	return commit()
}

// defineGoTo handles a standalone definition. It returns the action when it
// completes an earlier reference.
func (p *replayer) defineGoTo(el *etree.Element) (*nav.GoTo, error) {
	before, _ := p.actions[el.SelectAttrValue("id", "")].(*nav.GoTo)
	wasIncomplete := before != nil && !before.IsComplete()
	a, err := p.action(el)
	if err != nil {
		return nil, err
	}
	if g, ok := a.(*nav.GoTo); ok && wasIncomplete && g.IsComplete() {
		return g, nil
	}
	return nil, nil
}

func (p *replayer) link(el *etree.Element) error {
	r, err := geom.ParseRect(el.SelectAttrValue("rect", ""))
	if err != nil {
		return err
	}
	a, err := p.childAction(el)
	if err != nil {
		return err
	}
	if a == nil {
		return errors.New("link without action")
	}
	if p.nh == nil {
		return nil
	}
	return p.nh.RenderLink(&nav.Link{Rect: r, Action: a})
}

func (p *replayer) namedDestination(el *etree.Element) error {
	a, err := p.childAction(el)
	if err != nil {
		return err
	}
	g, ok := a.(*nav.GoTo)
	if !ok {
		return errors.New("named destination needs goto-xy action")
	}
	if p.nh == nil {
		return nil
	}
	return p.nh.RenderNamedDestination(&nav.NamedDestination{Name: el.SelectAttrValue("name", ""), Action: g})
}

func (p *replayer) bookmarkTree(el *etree.Element) error {
	bms, err := p.bookmarks(el)
	if err != nil {
		return err
	}
	if p.nh == nil {
		return nil
	}
	return p.nh.RenderBookmarkTree(&nav.BookmarkTree{Bookmarks: bms})
}

func (p *replayer) bookmarks(el *etree.Element) ([]*nav.Bookmark, error) {
	var out []*nav.Bookmark
	for _, child := range el.ChildElements() {
		if !isNav(child) || child.Tag != "bookmark" {
			continue
		}
		b := &nav.Bookmark{
			Title: child.SelectAttrValue("title", ""),
			Show:  child.SelectAttrValue("show-children", "true") == "true",
		}
		a, err := p.childAction(child)
		if err != nil {
			return nil, fmt.Errorf("bookmark %q: %w", b.Title, err)
		}
		if g, ok := a.(*nav.GoTo); ok {
			b.Action = g
		}
		if b.Children, err = p.bookmarks(child); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (p *replayer) childAction(el *etree.Element) (nav.Action, error) {
	for _, child := range el.ChildElements() {
		if isNav(child) && (child.Tag == "goto-xy" || child.Tag == "goto-uri") {
			return p.action(child)
		}
	}
	return nil, nil
}

// action resolves references and definitions to shared action objects so
// every use of an id sees the same state.
func (p *replayer) action(el *etree.Element) (nav.Action, error) {
	if ref := el.SelectAttrValue("idref", ""); ref != "" {
		if a, ok := p.actions[ref]; ok {
			return a, nil
		}
		if el.Tag == "goto-uri" {
			return nil, fmt.Errorf("reference to unknown uri action %q", ref)
		}
		g := nav.Placeholder(ref)
		p.actions[ref] = g
		return g, nil
	}

	id := el.SelectAttrValue("id", "")
	if id == "" {
		return nil, fmt.Errorf("%s without id", el.Tag)
	}
	if el.Tag == "goto-uri" {
		u := &nav.URI{ID: id, Target: el.SelectAttrValue("uri", ""), NewWindow: el.SelectAttrValue("show-destination", "") == "new"}
		p.actions[id] = u
		return u, nil
	}

	page, err := reqInt(el, "page-index")
	if err != nil {
		return nil, err
	}
	x, err := reqInt(el, "x")
	if err != nil {
		return nil, err
	}
	y, err := reqInt(el, "y")
	if err != nil {
		return nil, err
	}
	if g, ok := p.actions[id].(*nav.GoTo); ok {
		g.Resolve(page, geom.Point{X: x, Y: y})
		return g, nil
	}
	g := nav.NewGoTo(id, page, geom.Point{X: x, Y: y})
	p.actions[id] = g
	return g, nil
}

// content replays painting elements.
func (p *replayer) content(painter Painter, el *etree.Element) error {
	for _, child := range el.ChildElements() {
		if err := p.paint(painter, el, child); err != nil {
			return fmt.Errorf("%s: %w", child.Tag, err)
		}
	}
	return nil
}

func (p *replayer) paint(painter Painter, parent, el *etree.Element) error {
	switch el.Tag {
	case "viewport":
		m, err := transform(el)
		if err != nil {
			return err
		}
		w, err := reqInt(el, "width")
		if err != nil {
			return err
		}
		h, err := reqInt(el, "height")
		if err != nil {
			return err
		}
		var clip *geom.Rect
		if v := el.SelectAttrValue("clip-rect", ""); v != "" {
			r, err := geom.ParseRect(v)
			if err != nil {
				return err
			}
			clip = &r
		}
		if err := painter.StartViewport(m, w, h, clip); err != nil {
			return err
		}
		if err := p.content(painter, el); err != nil {
			return err
		}
		return painter.EndViewport()

	case "group":
		m, err := transform(el)
		if err != nil {
			return err
		}
		if err := painter.StartGroup(m); err != nil {
			return err
		}
		if err := p.content(painter, el); err != nil {
			return err
		}
		return painter.EndGroup()

	case "clip-rect":
		r, err := rect(el)
		if err != nil {
			return err
		}
		return painter.ClipRect(r)

	case "rect":
		r, err := rect(el)
		if err != nil {
			return err
		}
		c, err := area.ParseColor(el.SelectAttrValue("fill", "black"))
		if err != nil {
			return err
		}
		return painter.FillRect(r, c)

	case "border-rect":
		r, err := rect(el)
		if err != nil {
			return err
		}
		var sides [4]*area.BorderProps
		for i, name := range []string{"top", "bottom", "left", "right"} {
			if v := el.SelectAttrValue(name, ""); v != "" {
				if sides[i], err = area.ParseBorderProps(v); err != nil {
					return err
				}
			}
		}
		return painter.DrawBorderRect(r, sides[0], sides[1], sides[2], sides[3])

	case "line":
		var v [5]int
		for i, name := range []string{"x1", "y1", "x2", "y2", "stroke-width"} {
			n, err := reqInt(el, name)
			if err != nil {
				return err
			}
			v[i] = n
		}
		c, err := area.ParseColor(el.SelectAttrValue("color", "black"))
		if err != nil {
			return err
		}
		style, err := area.ParseBorderStyle(el.SelectAttrValue("style", "solid"))
		if err != nil {
			return err
		}
		return painter.DrawLine(geom.Point{X: v[0], Y: v[1]}, geom.Point{X: v[2], Y: v[3]}, v[4], c, style)

	case "image":
		r, err := rect(el)
		if err != nil {
			return err
		}
		return painter.DrawImage(el.SelectAttrValue("uri", ""), r)

	case "foreign-object":
		r, err := rect(el)
		if err != nil {
			return err
		}
		return painter.DrawForeignObject(el.SelectAttrValue("namespace", ""), []byte(el.Text()), r)

	case "font":
		for _, a := range el.Attr {
			if err := p.font.Apply(Attr{Name: a.Key, Value: a.Value}); err != nil {
				return err
			}
		}
		return painter.SetFont(p.font.Current())

	case "text":
		x, err := reqInt(el, "x")
		if err != nil {
			return err
		}
		y, err := reqInt(el, "y")
		if err != nil {
			return err
		}
		ls, err := optInt(el, "letter-spacing")
		if err != nil {
			return err
		}
		ws, err := optInt(el, "word-spacing")
		if err != nil {
			return err
		}
		dx, err := parseInts(el.SelectAttrValue("dx", ""))
		if err != nil {
			return err
		}
		return painter.DrawText(x, y, ls, ws, dx, el.Text())

	default:
		p.unexpected(parent, el)
	}
	return nil
}

func transform(el *etree.Element) (geom.Matrix, error) {
	v := el.SelectAttrValue("transform", "")
	if v == "" {
		return geom.Identity(), nil
	}
	return geom.ParseTransform(v)
}

func rect(el *etree.Element) (geom.Rect, error) {
	var (
		r   geom.Rect
		err error
	)
	if r.X, err = reqInt(el, "x"); err != nil {
		return r, err
	}
	if r.Y, err = reqInt(el, "y"); err != nil {
		return r, err
	}
	if r.W, err = reqInt(el, "width"); err != nil {
		return r, err
	}
	if r.H, err = reqInt(el, "height"); err != nil {
		return r, err
	}
	return r, nil
}

func reqInt(el *etree.Element, name string) (int, error) {
	a := el.SelectAttr(name)
	if a == nil {
		return 0, fmt.Errorf("missing attribute %q", name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(a.Value))
	if err != nil {
		return 0, fmt.Errorf("malformed %s %q: %w", name, a.Value, err)
	}
	return n, nil
}

func optInt(el *etree.Element, name string) (int, error) {
	if el.SelectAttr(name) == nil {
		return 0, nil
	}
	return reqInt(el, name)
}

func parseInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("malformed number %q: %w", f, err)
		}
		out[i] = n
	}
	return out, nil
}
