package intermediate

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"arender/area"
	"arender/geom"
	"arender/nav"
	"arender/utils/debug"
)

// Recorder is a handler keeping a readable trace of every call. It backs the
// "trace" output and is what tests compare renderings with.
type Recorder struct {
	Sequence

	// Ops holds one line per call.
	Ops []string
	// OutOfOrder is reported by SupportsPagesOutOfOrder.
	OutOfOrder bool

	w     io.Writer
	tw    *debug.TreeWriter
	depth int
	font  FontState
}

// NewRecorder returns recorder writing indented trace to w at EndDocument,
// w may be nil.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, tw: debug.NewTreeWriter()}
}

func (r *Recorder) add(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	r.Ops = append(r.Ops, line)
	r.tw.Line(r.depth, "%s", line)
}

func (r *Recorder) open(format string, args ...any) {
	r.add(format, args...)
	r.depth++
}

func (r *Recorder) close(format string, args ...any) {
	r.depth--
	r.add(format, args...)
}

// Filter returns recorded operations starting with any of the prefixes.
func (r *Recorder) Filter(prefixes ...string) []string {
	var out []string
	for _, op := range r.Ops {
		for _, p := range prefixes {
			if strings.HasPrefix(op, p) {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

func (r *Recorder) String() string {
	return r.tw.String()
}

func (r *Recorder) StartDocument() error {
	r.Advance(CallStartDocument)
	r.open("StartDocument")
	return nil
}

func (r *Recorder) StartDocumentHeader() error {
	r.Advance(CallStartDocumentHeader)
	r.open("StartDocumentHeader")
	return nil
}

func (r *Recorder) EndDocumentHeader() error {
	r.Advance(CallEndDocumentHeader)
	r.close("EndDocumentHeader")
	return nil
}

func (r *Recorder) StartPageSequence(ps PageSequence) error {
	r.Advance(CallStartPageSequence)
	r.open("StartPageSequence lang=%q", ps.Language)
	return nil
}

func (r *Recorder) StartPage(p Page) error {
	r.Advance(CallStartPage)
	r.open("StartPage index=%d name=%q size=%dx%d", p.Index, p.Name, p.Width, p.Height)
	return nil
}

func (r *Recorder) StartPageHeader() error {
	r.Advance(CallStartPageHeader)
	r.open("StartPageHeader")
	return nil
}

func (r *Recorder) EndPageHeader() error {
	r.Advance(CallEndPageHeader)
	r.close("EndPageHeader")
	return nil
}

func (r *Recorder) StartPageContent() (Painter, error) {
	r.Advance(CallStartPageContent)
	r.open("StartPageContent")
	r.font.Reset()
	return r, nil
}

func (r *Recorder) EndPageContent() error {
	r.Advance(CallEndPageContent)
	r.close("EndPageContent")
	return nil
}

func (r *Recorder) StartPageTrailer() error {
	r.Advance(CallStartPageTrailer)
	r.open("StartPageTrailer")
	return nil
}

func (r *Recorder) EndPageTrailer() error {
	r.Advance(CallEndPageTrailer)
	r.close("EndPageTrailer")
	return nil
}

func (r *Recorder) EndPage() error {
	r.Advance(CallEndPage)
	r.close("EndPage")
	return nil
}

func (r *Recorder) EndPageSequence() error {
	r.Advance(CallEndPageSequence)
	r.close("EndPageSequence")
	return nil
}

func (r *Recorder) StartDocumentTrailer() error {
	r.Advance(CallStartDocumentTrailer)
	r.open("StartDocumentTrailer")
	return nil
}

func (r *Recorder) EndDocumentTrailer() error {
	r.Advance(CallEndDocumentTrailer)
	r.close("EndDocumentTrailer")
	return nil
}

func (r *Recorder) EndDocument() error {
	r.Advance(CallEndDocument)
	r.close("EndDocument")
	if r.w == nil {
		return nil
	}
	_, err := io.WriteString(r.w, r.tw.String())
	return err
}

func (r *Recorder) SupportsPagesOutOfOrder() bool {
	return r.OutOfOrder
}

func (r *Recorder) HandleExtension(ext area.Extension) error {
	r.ExpectExtension()
	r.add("Extension kind=%q name=%q %q", ext.Kind, ext.Name, ext.Content)
	return nil
}

func (r *Recorder) NavigationHandler() NavigationHandler {
	return r
}

func describeAction(a nav.Action) string {
	switch a := a.(type) {
	case *nav.GoTo:
		if !a.IsComplete() {
			return a.ID + " incomplete"
		}
		return fmt.Sprintf("%s page=%d at %s", a.ID, a.PageIndex, a.Point)
	case *nav.URI:
		return fmt.Sprintf("%s uri=%q new-window=%t", a.ID, a.Target, a.NewWindow)
	case nil:
		return "none"
	}
	return fmt.Sprintf("%T", a)
}

func (r *Recorder) RenderNamedDestination(d *nav.NamedDestination) error {
	r.add("NamedDestination %q -> %s", d.Name, describeAction(d.Action))
	return nil
}

func (r *Recorder) RenderBookmarkTree(t *nav.BookmarkTree) error {
	r.open("BookmarkTree")
	r.bookmarks(t.Bookmarks)
	r.depth--
	return nil
}

func (r *Recorder) bookmarks(bms []*nav.Bookmark) {
	for _, b := range bms {
		var a nav.Action
		if b.Action != nil {
			a = b.Action
		}
		r.open("Bookmark %q show=%t -> %s", b.Title, b.Show, describeAction(a))
		r.bookmarks(b.Children)
		r.depth--
	}
}

func (r *Recorder) RenderLink(l *nav.Link) error {
	r.add("Link %s -> %s", l.Rect, describeAction(l.Action))
	return nil
}

func (r *Recorder) AddResolvedAction(a *nav.GoTo) error {
	r.add("ResolvedAction %s", describeAction(a))
	return nil
}

func (r *Recorder) Commit() error {
	r.add("Commit")
	return nil
}

// painter

func (r *Recorder) StartViewport(transform geom.Matrix, width, height int, clip *geom.Rect) error {
	c := "none"
	if clip != nil {
		c = clip.String()
	}
	r.open("StartViewport %s size=%dx%d clip=%s", transform, width, height, c)
	return nil
}

func (r *Recorder) EndViewport() error {
	r.close("EndViewport")
	return nil
}

func (r *Recorder) StartGroup(transform geom.Matrix) error {
	r.open("StartGroup %s", transform)
	return nil
}

func (r *Recorder) EndGroup() error {
	r.close("EndGroup")
	return nil
}

func (r *Recorder) ClipRect(rc geom.Rect) error {
	r.add("ClipRect %s", rc)
	return nil
}

func (r *Recorder) FillRect(rc geom.Rect, c color.RGBA) error {
	r.add("FillRect %s %s", rc, area.FormatColor(c))
	return nil
}

func (r *Recorder) DrawBorderRect(rc geom.Rect, top, bottom, left, right *area.BorderProps) error {
	r.add("DrawBorderRect %s top=%s bottom=%s left=%s right=%s", rc, top, bottom, left, right)
	return nil
}

func (r *Recorder) DrawLine(start, end geom.Point, width int, c color.RGBA, style area.BorderStyle) error {
	r.add("DrawLine %s - %s width=%d %s %s", start, end, width, area.FormatColor(c), style)
	return nil
}

func (r *Recorder) DrawImage(uri string, rc geom.Rect) error {
	r.add("DrawImage %q %s", uri, rc)
	return nil
}

func (r *Recorder) DrawForeignObject(namespace string, content []byte, rc geom.Rect) error {
	r.add("DrawForeignObject %q %s %d bytes", namespace, rc, len(content))
	return nil
}

// SetFont only records changes, repeated fonts are not interesting.
func (r *Recorder) SetFont(f Font) error {
	if len(r.font.Changes(f)) == 0 {
		return nil
	}
	r.add("SetFont %s/%s/%d/%s %d %s", f.Family, f.Style, f.Weight, f.Variant, f.Size, area.FormatColor(f.Color))
	return nil
}

func (r *Recorder) DrawText(x, y, letterSpacing, wordSpacing int, dx []int, text string) error {
	r.add("DrawText %d %d ls=%d ws=%d dx=%v %q", x, y, letterSpacing, wordSpacing, dx, text)
	return nil
}
