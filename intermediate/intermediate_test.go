package intermediate

import (
	"bytes"
	"errors"
	"image/color"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"arender/area"
	"arender/events"
	"arender/geom"
	"arender/nav"
)

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// drive feeds a small but complete document into h.
func drive(t *testing.T, h DocumentHandler) {
	t.Helper()

	red := color.RGBA{R: 255, A: 255}
	f1 := Font{Family: "serif", Style: "normal", Weight: 400, Variant: "normal", Size: 12000, Color: area.Black}
	f2 := f1
	f2.Color = red

	target := nav.Placeholder("goto1")
	uri := &nav.URI{ID: "uri2", Target: "https://example.com/?a=1&b=2"}
	nh := h.NavigationHandler()

	mustNil(t, h.StartDocument())
	mustNil(t, h.StartDocumentHeader())
	mustNil(t, h.HandleExtension(area.Extension{Kind: "ps-setup-code", Name: "init", Content: "/x 1 def"}))
	mustNil(t, h.EndDocumentHeader())
	mustNil(t, h.StartPageSequence(PageSequence{Language: "en"}))

	mustNil(t, h.StartPage(Page{Index: 0, Name: "1", Width: 595000, Height: 842000}))
	mustNil(t, h.StartPageHeader())
	mustNil(t, h.EndPageHeader())
	p, err := h.StartPageContent()
	mustNil(t, err)
	clip := geom.R(0, 0, 100000, 200000)
	mustNil(t, p.StartViewport(geom.Translate(10000, 20000), 100000, 200000, &clip))
	mustNil(t, p.StartGroup(geom.Identity()))
	mustNil(t, p.FillRect(geom.R(0, 0, 5000, 5000), red))
	mustNil(t, p.DrawBorderRect(geom.R(0, 0, 200000, 100000), &area.BorderProps{Style: area.BorderStyleSolid, Width: 1000, Color: area.Black}, nil, nil, nil))
	mustNil(t, p.EndGroup())
	mustNil(t, p.SetFont(f1))
	mustNil(t, p.DrawText(1000, 12000, 0, 0, nil, "Hello world"))
	mustNil(t, p.SetFont(f1))
	mustNil(t, p.DrawText(1000, 24000, 0, 250, []int{0, 0, 300}, " a b"))
	mustNil(t, p.SetFont(f2))
	mustNil(t, p.DrawText(1000, 36000, 100, 0, nil, " "))
	mustNil(t, p.DrawLine(geom.Point{X: 0, Y: 40000}, geom.Point{X: 90000, Y: 40000}, 500, red, area.BorderStyleDashed))
	mustNil(t, p.DrawImage("data:image/png;base64,AAAA", geom.R(0, 50000, 10000, 10000)))
	mustNil(t, p.DrawForeignObject("http://www.w3.org/2000/svg", []byte(`<svg width="1" height="1"/>`), geom.R(0, 70000, 1000, 1000)))
	mustNil(t, p.EndViewport())
	mustNil(t, h.EndPageContent())
	mustNil(t, h.StartPageTrailer())
	mustNil(t, nh.RenderLink(&nav.Link{Rect: geom.R(1000, 2000, 3000, 4000), Action: target}))
	mustNil(t, nh.RenderLink(&nav.Link{Rect: geom.R(5000, 2000, 3000, 4000), Action: uri}))
	mustNil(t, h.EndPageTrailer())
	mustNil(t, h.EndPage())

	mustNil(t, h.StartPage(Page{Index: 1, Name: "2", Width: 595000, Height: 842000}))
	mustNil(t, h.StartPageHeader())
	mustNil(t, h.EndPageHeader())
	_, err = h.StartPageContent()
	mustNil(t, err)
	mustNil(t, h.EndPageContent())
	mustNil(t, h.StartPageTrailer())
	target.Resolve(1, geom.Point{X: 0, Y: 30000})
	mustNil(t, nh.AddResolvedAction(target))
	mustNil(t, nh.Commit())
	mustNil(t, nh.RenderLink(&nav.Link{Rect: geom.R(0, 0, 1000, 1000), Action: target}))
	mustNil(t, nh.RenderLink(&nav.Link{Rect: geom.R(0, 2000, 1000, 1000), Action: uri}))
	mustNil(t, h.EndPageTrailer())
	mustNil(t, h.EndPage())
	mustNil(t, h.EndPageSequence())

	mustNil(t, h.StartDocumentTrailer())
	mustNil(t, nh.RenderNamedDestination(&nav.NamedDestination{Name: "chapter", Action: target}))
	mustNil(t, nh.RenderBookmarkTree(&nav.BookmarkTree{Bookmarks: []*nav.Bookmark{{
		Title:  "Chapter",
		Show:   true,
		Action: target,
		Children: []*nav.Bookmark{{
			Title:  "Section",
			Action: nav.NewGoTo("goto3", 1, geom.Point{X: 0, Y: 50000}),
		}},
	}}}))
	mustNil(t, h.EndDocumentTrailer())
	mustNil(t, h.EndDocument())
}

func TestSerializer_RoundTrip(t *testing.T) {
	log := zaptest.NewLogger(t)

	direct := NewRecorder(nil)
	drive(t, direct)

	var buf bytes.Buffer
	drive(t, NewSerializer(&buf, SerializerOptions{}, log))

	replayed := NewRecorder(nil)
	if err := Parse(bytes.NewReader(buf.Bytes()), replayed, log); err != nil {
		t.Fatalf("Parse() error = %v\n%s", err, buf.String())
	}

	if !slices.Equal(direct.Ops, replayed.Ops) {
		t.Errorf("replayed calls differ\ndirect:\n%s\nreplayed:\n%s\nxml:\n%s", direct, replayed, buf.String())
	}
}

func TestSerializer_Output(t *testing.T) {
	var buf bytes.Buffer
	drive(t, NewSerializer(&buf, SerializerOptions{}, zaptest.NewLogger(t)))
	out := buf.String()

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<document xmlns="` + Namespace + `" xmlns:nav="` + NavNamespace + `">`,
		`<page-sequence xml:lang="en">`,
		`<viewport transform="translate(10000,20000)" width="100000" height="200000" clip-rect="0 0 100000 200000">`,
		`<group>`,
		`<border-rect x="0" y="0" width="200000" height="100000" top="(solid,#000000,1000)"/>`,
		`<font family="serif" style="normal" weight="400" variant="normal" size="12000" color="#000000"/>`,
		`<font color="#ff0000"/>`,
		`<text x="1000" y="24000" word-spacing="250" dx="0 0 300"> a b</text>`,
		`<text x="1000" y="36000" letter-spacing="100"> </text>`,
		`<nav:goto-xy idref="goto1"/>`,
		`<nav:goto-xy id="goto1" page-index="1" x="0" y="30000"/>`,
		`<nav:goto-uri id="uri2" uri="https://example.com/?a=1&amp;b=2"/>`,
		`<nav:goto-uri idref="uri2"/>`,
		`<nav:bookmark title="Chapter" show-children="true">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %s\n%s", want, out)
		}
	}
	if n := strings.Count(out, "<font"); n != 2 {
		t.Errorf("font elements = %d, want 2", n)
	}
}

func TestParse_ResolvesPlaceholders(t *testing.T) {
	src := `<document xmlns="` + Namespace + `" xmlns:nav="` + NavNamespace + `">
<page-sequence><page index="0" name="1" width="1000" height="1000">
<page-trailer><nav:link rect="0 0 10 10"><nav:goto-xy idref="a"/></nav:link></page-trailer>
</page></page-sequence>
<trailer><nav:goto-xy id="a" page-index="0" x="5" y="6"/><nav:named-destination name="n"><nav:goto-xy idref="a"/></nav:named-destination></trailer>
</document>`
	r := NewRecorder(nil)
	if err := Parse(strings.NewReader(src), r, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []string{
		"Link 0 0 10 10 -> a incomplete",
		"ResolvedAction a page=0 at 5 6",
		"Commit",
		`NamedDestination "n" -> a page=0 at 5 6`,
	}
	got := r.Filter("Link", "ResolvedAction", "Commit", "NamedDestination")
	if !slices.Equal(got, want) {
		t.Errorf("navigation calls = %q, want %q", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	wrap := func(body string) string {
		return `<document xmlns="` + Namespace + `"><page-sequence><page index="0" name="1" width="10" height="10"><page-content>` +
			body + `</page-content></page></page-sequence></document>`
	}
	tests := []struct {
		name string
		src  string
	}{
		{"wrong root", `<areaTree/>`},
		{"wrong namespace", `<document xmlns="urn:other"/>`},
		{"bad rect", wrap(`<rect x="a" y="0" width="1" height="1"/>`)},
		{"missing height", wrap(`<image x="0" y="0" width="1" uri="x"/>`)},
		{"bad transform", wrap(`<group transform="skew(1)"></group>`)},
		{"bad border", wrap(`<border-rect x="0" y="0" width="1" height="1" top="solid"/>`)},
		{"bad dx", wrap(`<text x="0" y="0" dx="1 x">a</text>`)},
		{"bad font", wrap(`<font size="big"/>`)},
		{"not xml", `<document`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Parse(strings.NewReader(tt.src), NewRecorder(nil), zaptest.NewLogger(t)); err == nil {
				t.Errorf("Parse() succeeded, want error")
			}
		})
	}
}

func expectPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	f()
}

func TestSequence_Violations(t *testing.T) {
	tests := []struct {
		name  string
		calls []Call
	}{
		{"page before document", []Call{CallStartPage}},
		{"header skipped", []Call{CallStartDocument, CallStartPageSequence}},
		{"page outside sequence", []Call{CallStartDocument, CallStartDocumentHeader, CallEndDocumentHeader, CallStartPage}},
		{"content before page header", []Call{
			CallStartDocument, CallStartDocumentHeader, CallEndDocumentHeader,
			CallStartPageSequence, CallStartPage, CallStartPageContent,
		}},
		{"document ended twice", []Call{
			CallStartDocument, CallStartDocumentHeader, CallEndDocumentHeader,
			CallStartDocumentTrailer, CallEndDocumentTrailer, CallEndDocument, CallEndDocument,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Sequence
			expectPanic(t, func() {
				for _, c := range tt.calls {
					s.Advance(c)
				}
			})
		})
	}
}

func TestSequence_EmptyDocument(t *testing.T) {
	var s Sequence
	for _, c := range []Call{
		CallStartDocument, CallStartDocumentHeader, CallEndDocumentHeader,
		CallStartPageSequence, CallEndPageSequence,
		CallStartDocumentTrailer, CallEndDocumentTrailer, CallEndDocument,
	} {
		s.Advance(c)
	}
	if s.Phase() != PhaseEnded {
		t.Errorf("phase = %s, want ended", s.Phase())
	}
}

func TestSerializer_ContractViolations(t *testing.T) {
	start := func() (*Serializer, Painter) {
		s := NewSerializer(&bytes.Buffer{}, SerializerOptions{}, zaptest.NewLogger(t))
		mustNil(t, s.StartDocument())
		mustNil(t, s.StartDocumentHeader())
		mustNil(t, s.EndDocumentHeader())
		mustNil(t, s.StartPageSequence(PageSequence{}))
		mustNil(t, s.StartPage(Page{Width: 1, Height: 1}))
		mustNil(t, s.StartPageHeader())
		mustNil(t, s.EndPageHeader())
		p, err := s.StartPageContent()
		mustNil(t, err)
		return s, p
	}

	t.Run("open group at page end", func(t *testing.T) {
		s, p := start()
		mustNil(t, p.StartGroup(geom.Identity()))
		expectPanic(t, func() { _ = s.EndPageContent() })
	})
	t.Run("mismatched end", func(t *testing.T) {
		_, p := start()
		mustNil(t, p.StartGroup(geom.Identity()))
		expectPanic(t, func() { _ = p.EndViewport() })
	})
	t.Run("link in content", func(t *testing.T) {
		s, _ := start()
		expectPanic(t, func() { _ = s.RenderLink(&nav.Link{Action: nav.NewGoTo("g", 0, geom.Point{})}) })
	})
}

func TestFontState_Changes(t *testing.T) {
	var fs FontState
	f := Font{Family: "sans-serif", Style: "normal", Weight: 400, Variant: "normal", Size: 10000, Color: area.Black}
	if got := len(fs.Changes(f)); got != 6 {
		t.Errorf("first Changes() = %d attributes, want 6", got)
	}
	if got := fs.Changes(f); len(got) != 0 {
		t.Errorf("repeated Changes() = %v, want none", got)
	}
	f.Size, f.Weight = 12000, 700
	got := fs.Changes(f)
	want := []Attr{{"weight", "700"}, {"size", "12000"}}
	if !slices.Equal(got, want) {
		t.Errorf("Changes() = %v, want %v", got, want)
	}

	var in FontState
	for _, a := range []Attr{{"family", "serif"}, {"size", "9000"}, {"color", "#00ff00"}} {
		mustNil(t, in.Apply(a))
	}
	if c := in.Current(); c.Family != "serif" || c.Size != 9000 || c.Color != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("Current() = %+v", c)
	}
	if err := in.Apply(Attr{"stretch", "wide"}); err == nil {
		t.Errorf("Apply(unknown) succeeded")
	}
}

type fixedMetrics int

func (f fixedMetrics) Width(rune, int) int   { return int(f) }
func (f fixedMetrics) HasGlyph(rune) bool    { return true }
func (f fixedMetrics) Ascender(size int) int { return size }
func (f fixedMetrics) Descender(int) int     { return 0 }

func TestAdvances(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		ls, ws    int
		dx        []int
		wantStart int
		want      []int
	}{
		{"plain", "ab", 0, 0, nil, 0, []int{500, 500}},
		{"spacing", "a b", 10, 100, nil, 0, []int{510, 610, 510}},
		{"dx", "abc", 0, 0, []int{7, 0, 30}, 7, []int{500, 530, 500}},
		{"short dx", "abc", 0, 0, []int{0, 5}, 0, []int{505, 500, 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, adv := Advances(fixedMetrics(500), 1000, tt.text, tt.ls, tt.ws, tt.dx)
			if start != tt.wantStart || !slices.Equal(adv, tt.want) {
				t.Errorf("Advances() = %d, %v; want %d, %v", start, adv, tt.wantStart, tt.want)
			}
		})
	}
	if Adjusted(0, 0, []int{0, 0}) || !Adjusted(0, 0, []int{0, 1}) || !Adjusted(0, 3, nil) {
		t.Error("Adjusted() misreports")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSerializer_OutputFailure(t *testing.T) {
	col := &events.Collector{}
	s := NewSerializer(failingWriter{}, SerializerOptions{Events: col}, zaptest.NewLogger(t))
	mustNil(t, s.StartDocument())
	mustNil(t, s.StartDocumentHeader())
	mustNil(t, s.EndDocumentHeader())
	mustNil(t, s.StartPageSequence(PageSequence{Language: "en"}))
	mustNil(t, s.EndPageSequence())
	mustNil(t, s.StartDocumentTrailer())
	mustNil(t, s.EndDocumentTrailer())

	err := s.EndDocument()
	if !errors.Is(err, events.ErrOutput) {
		t.Fatalf("EndDocument() error = %v, want output failure", err)
	}
	if got := col.ByKey(events.IOError); len(got) != 1 {
		t.Errorf("IOError events = %v, want one", got)
	}
}
