package intermediate

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"arender/area"
	"arender/events"
	"arender/geom"
	"arender/nav"
)

const (
	Namespace    = "http://xmlgraphics.apache.org/fop/intermediate"
	NavNamespace = "http://xmlgraphics.apache.org/fop/intermediate/document-navigation"

	navPrefix = "nav:"
)

var errNoDocument = errors.New("no document started")

// SerializerOptions controls the IF writer.
type SerializerOptions struct {
	// OutOfOrder declares support for pages arriving in any order. The
	// navigation resolver assumes forward discovery of targets, so it is off
	// unless explicitly requested.
	OutOfOrder bool
	// Events receives the IOError of a failing output stream.
	Events events.Broadcaster
}

// Serializer is a DocumentHandler writing the intermediate format. The whole
// document is built in memory and written out by EndDocument.
type Serializer struct {
	Sequence

	w    io.Writer
	opts SerializerOptions
	log  *zap.Logger

	doc   *etree.Document
	stack []*etree.Element
	font  FontState

	defined    map[string]bool
	incomplete map[string]*nav.GoTo
	resolved   []*nav.GoTo
}

// NewSerializer returns handler writing to w.
func NewSerializer(w io.Writer, opts SerializerOptions, log *zap.Logger) *Serializer {
	if opts.Events != nil {
		w = events.NewGuardWriter(w, opts.Events)
	}
	return &Serializer{
		w:          w,
		opts:       opts,
		log:        log.Named("if"),
		defined:    make(map[string]bool),
		incomplete: make(map[string]*nav.GoTo),
	}
}

func (s *Serializer) top() *etree.Element {
	return s.stack[len(s.stack)-1]
}

func (s *Serializer) push(tag string) *etree.Element {
	el := s.top().CreateElement(tag)
	s.stack = append(s.stack, el)
	return el
}

func (s *Serializer) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Serializer) StartDocument() error {
	s.Advance(CallStartDocument)
	s.doc = etree.NewDocument()
	s.doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := s.doc.CreateElement("document")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("xmlns:nav", NavNamespace)
	s.stack = []*etree.Element{root}
	return nil
}

func (s *Serializer) StartDocumentHeader() error {
	s.Advance(CallStartDocumentHeader)
	s.push("header")
	return nil
}

func (s *Serializer) EndDocumentHeader() error {
	s.Advance(CallEndDocumentHeader)
	s.pop()
	return nil
}

func (s *Serializer) StartPageSequence(ps PageSequence) error {
	s.Advance(CallStartPageSequence)
	el := s.push("page-sequence")
	if ps.Language != "" {
		el.CreateAttr("xml:lang", ps.Language)
	}
	return nil
}

func (s *Serializer) StartPage(p Page) error {
	s.Advance(CallStartPage)
	el := s.push("page")
	el.CreateAttr("index", strconv.Itoa(p.Index))
	el.CreateAttr("name", p.Name)
	el.CreateAttr("width", strconv.Itoa(p.Width))
	el.CreateAttr("height", strconv.Itoa(p.Height))
	return nil
}

func (s *Serializer) StartPageHeader() error {
	s.Advance(CallStartPageHeader)
	s.push("page-header")
	return nil
}

func (s *Serializer) EndPageHeader() error {
	s.Advance(CallEndPageHeader)
	s.pop()
	return nil
}

func (s *Serializer) StartPageContent() (Painter, error) {
	s.Advance(CallStartPageContent)
	s.push("page-content")
	s.font.Reset()
	return &serializerPainter{s: s}, nil
}

func (s *Serializer) EndPageContent() error {
	s.Advance(CallEndPageContent)
	// The painter must have closed everything it opened.
	if tag := s.top().Tag; tag != "page-content" {
		panic(fmt.Sprintf("intermediate: page content ended inside open %s", tag))
	}
	s.pop()
	return nil
}

func (s *Serializer) StartPageTrailer() error {
	s.Advance(CallStartPageTrailer)
	s.push("page-trailer")
	return nil
}

func (s *Serializer) EndPageTrailer() error {
	s.Advance(CallEndPageTrailer)
	s.pop()
	return nil
}

func (s *Serializer) EndPage() error {
	s.Advance(CallEndPage)
	s.pop()
	return nil
}

func (s *Serializer) EndPageSequence() error {
	s.Advance(CallEndPageSequence)
	s.pop()
	return nil
}

func (s *Serializer) StartDocumentTrailer() error {
	s.Advance(CallStartDocumentTrailer)
	s.push("trailer")
	return nil
}

func (s *Serializer) EndDocumentTrailer() error {
	s.Advance(CallEndDocumentTrailer)
	s.pop()
	return nil
}

func (s *Serializer) EndDocument() error {
	s.Advance(CallEndDocument)
	if s.doc == nil {
		return errNoDocument
	}
	if len(s.incomplete) > 0 {
		s.log.Debug("Actions never resolved", zap.Int("count", len(s.incomplete)))
	}
	if _, err := s.doc.WriteTo(s.w); err != nil {
		return fmt.Errorf("unable to write intermediate format: %w", err)
	}
	return nil
}

func (s *Serializer) SupportsPagesOutOfOrder() bool {
	return s.opts.OutOfOrder
}

func (s *Serializer) HandleExtension(ext area.Extension) error {
	s.ExpectExtension()
	el := s.top().CreateElement("extension")
	el.CreateAttr("kind", ext.Kind)
	if ext.Name != "" {
		el.CreateAttr("name", ext.Name)
	}
	el.SetText(ext.Content)
	return nil
}

func (s *Serializer) NavigationHandler() NavigationHandler {
	return s
}

// navigation

func (s *Serializer) RenderNamedDestination(d *nav.NamedDestination) error {
	s.Expect("RenderNamedDestination", PhaseDocumentTrailer)
	el := s.top().CreateElement(navPrefix + "named-destination")
	el.CreateAttr("name", d.Name)
	s.writeAction(el, d.Action)
	return nil
}

func (s *Serializer) RenderBookmarkTree(t *nav.BookmarkTree) error {
	s.Expect("RenderBookmarkTree", PhaseDocumentTrailer)
	el := s.top().CreateElement(navPrefix + "bookmark-tree")
	for _, b := range t.Bookmarks {
		s.writeBookmark(el, b)
	}
	return nil
}

func (s *Serializer) writeBookmark(parent *etree.Element, b *nav.Bookmark) {
	el := parent.CreateElement(navPrefix + "bookmark")
	el.CreateAttr("title", b.Title)
	el.CreateAttr("show-children", strconv.FormatBool(b.Show))
	if b.Action != nil {
		s.writeAction(el, b.Action)
	}
	for _, c := range b.Children {
		s.writeBookmark(el, c)
	}
}

func (s *Serializer) RenderLink(l *nav.Link) error {
	s.ExpectLinks("RenderLink")
	el := s.top().CreateElement(navPrefix + "link")
	el.CreateAttr("rect", l.Rect.String())
	s.writeAction(el, l.Action)
	return nil
}

// writeAction writes a full definition the first time a complete action is
// seen and a reference afterwards. Incomplete actions are referenced and
// defined later by Commit.
func (s *Serializer) writeAction(parent *etree.Element, a nav.Action) {
	switch a := a.(type) {
	case *nav.GoTo:
		el := parent.CreateElement(navPrefix + "goto-xy")
		if s.defined[a.ID] || !a.IsComplete() {
			el.CreateAttr("idref", a.ID)
			if !a.IsComplete() {
				s.incomplete[a.ID] = a
			}
			return
		}
		writeGoTo(el, a)
		s.defined[a.ID] = true
	case *nav.URI:
		el := parent.CreateElement(navPrefix + "goto-uri")
		if s.defined[a.ID] {
			el.CreateAttr("idref", a.ID)
			return
		}
		el.CreateAttr("id", a.ID)
		el.CreateAttr("uri", a.Target)
		if a.NewWindow {
			el.CreateAttr("show-destination", "new")
		}
		s.defined[a.ID] = true
	default:
		panic(fmt.Sprintf("intermediate: unsupported action %T", a))
	}
}

func writeGoTo(el *etree.Element, g *nav.GoTo) {
	el.CreateAttr("id", g.ID)
	el.CreateAttr("page-index", strconv.Itoa(g.PageIndex))
	el.CreateAttr("x", strconv.Itoa(g.Point.X))
	el.CreateAttr("y", strconv.Itoa(g.Point.Y))
}

// AddResolvedAction queues definition of a previously referenced action.
// Actions written complete in the first place need nothing more.
func (s *Serializer) AddResolvedAction(a *nav.GoTo) error {
	s.ExpectLinks("AddResolvedAction")
	if !a.IsComplete() {
		panic(fmt.Sprintf("intermediate: resolved action %s is incomplete", a.ID))
	}
	if _, ok := s.incomplete[a.ID]; !ok {
		return nil
	}
	delete(s.incomplete, a.ID)
	s.resolved = append(s.resolved, a)
	return nil
}

// Commit writes queued definitions into the current trailer.
func (s *Serializer) Commit() error {
	s.ExpectLinks("Commit")
	for _, g := range s.resolved {
		writeGoTo(s.top().CreateElement(navPrefix+"goto-xy"), g)
		s.defined[g.ID] = true
	}
	s.resolved = s.resolved[:0]
	return nil
}

// serializerPainter writes page content elements.
type serializerPainter struct {
	s *Serializer
}

func (p *serializerPainter) el(tag string) *etree.Element {
	p.s.Expect(tag, PhasePageContent)
	return p.s.top().CreateElement(tag)
}

func setRect(el *etree.Element, r geom.Rect) {
	el.CreateAttr("x", strconv.Itoa(r.X))
	el.CreateAttr("y", strconv.Itoa(r.Y))
	el.CreateAttr("width", strconv.Itoa(r.W))
	el.CreateAttr("height", strconv.Itoa(r.H))
}

func (p *serializerPainter) StartViewport(transform geom.Matrix, width, height int, clip *geom.Rect) error {
	p.s.Expect("viewport", PhasePageContent)
	el := p.s.push("viewport")
	if !transform.IsIdentity() {
		el.CreateAttr("transform", transform.String())
	}
	el.CreateAttr("width", strconv.Itoa(width))
	el.CreateAttr("height", strconv.Itoa(height))
	if clip != nil {
		el.CreateAttr("clip-rect", clip.String())
	}
	return nil
}

func (p *serializerPainter) EndViewport() error {
	return p.end("viewport")
}

func (p *serializerPainter) StartGroup(transform geom.Matrix) error {
	p.s.Expect("group", PhasePageContent)
	el := p.s.push("group")
	if !transform.IsIdentity() {
		el.CreateAttr("transform", transform.String())
	}
	return nil
}

func (p *serializerPainter) EndGroup() error {
	return p.end("group")
}

func (p *serializerPainter) end(tag string) error {
	p.s.Expect("end "+tag, PhasePageContent)
	if cur := p.s.top().Tag; cur != tag {
		panic(fmt.Sprintf("intermediate: closing %s while %s is open", tag, cur))
	}
	p.s.pop()
	return nil
}

func (p *serializerPainter) ClipRect(r geom.Rect) error {
	setRect(p.el("clip-rect"), r)
	return nil
}

func (p *serializerPainter) FillRect(r geom.Rect, c color.RGBA) error {
	el := p.el("rect")
	setRect(el, r)
	el.CreateAttr("fill", area.FormatColor(c))
	return nil
}

func (p *serializerPainter) DrawBorderRect(r geom.Rect, top, bottom, left, right *area.BorderProps) error {
	el := p.el("border-rect")
	setRect(el, r)
	for _, b := range []struct {
		name  string
		props *area.BorderProps
	}{{"top", top}, {"bottom", bottom}, {"left", left}, {"right", right}} {
		if b.props != nil {
			el.CreateAttr(b.name, b.props.String())
		}
	}
	return nil
}

func (p *serializerPainter) DrawLine(start, end geom.Point, width int, c color.RGBA, style area.BorderStyle) error {
	el := p.el("line")
	el.CreateAttr("x1", strconv.Itoa(start.X))
	el.CreateAttr("y1", strconv.Itoa(start.Y))
	el.CreateAttr("x2", strconv.Itoa(end.X))
	el.CreateAttr("y2", strconv.Itoa(end.Y))
	el.CreateAttr("stroke-width", strconv.Itoa(width))
	el.CreateAttr("color", area.FormatColor(c))
	el.CreateAttr("style", style.String())
	return nil
}

func (p *serializerPainter) DrawImage(uri string, r geom.Rect) error {
	el := p.el("image")
	setRect(el, r)
	el.CreateAttr("uri", uri)
	return nil
}

func (p *serializerPainter) DrawForeignObject(namespace string, content []byte, r geom.Rect) error {
	el := p.el("foreign-object")
	setRect(el, r)
	el.CreateAttr("namespace", namespace)
	el.SetText(string(content))
	return nil
}

func (p *serializerPainter) SetFont(f Font) error {
	p.s.Expect("font", PhasePageContent)
	changes := p.s.font.Changes(f)
	if len(changes) == 0 {
		return nil
	}
	el := p.el("font")
	for _, a := range changes {
		el.CreateAttr(a.Name, a.Value)
	}
	return nil
}

func (p *serializerPainter) DrawText(x, y, letterSpacing, wordSpacing int, dx []int, text string) error {
	el := p.el("text")
	el.CreateAttr("x", strconv.Itoa(x))
	el.CreateAttr("y", strconv.Itoa(y))
	if letterSpacing != 0 {
		el.CreateAttr("letter-spacing", strconv.Itoa(letterSpacing))
	}
	if wordSpacing != 0 {
		el.CreateAttr("word-spacing", strconv.Itoa(wordSpacing))
	}
	if len(dx) > 0 {
		el.CreateAttr("dx", formatInts(dx))
	}
	el.SetText(text)
	return nil
}

func formatInts(v []int) string {
	var b strings.Builder
	for i, n := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
