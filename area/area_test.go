package area

import (
	"image/color"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"arender/fonts"
	"arender/geom"
)

func loadSample(t *testing.T) *Document {
	t.Helper()

	f, err := os.Open("testdata/sample.at.xml")
	if err != nil {
		t.Fatalf("open sample: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	doc, err := ReadXML(f, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("ReadXML() error = %v", err)
	}
	return doc
}

func TestReadXML_Structure(t *testing.T) {
	doc := loadSample(t)

	if len(doc.Sequences) != 1 || doc.Pages() != 1 {
		t.Fatalf("got %d sequences, %d pages", len(doc.Sequences), doc.Pages())
	}
	seq := doc.Sequences[0]
	if seq.Language != "en-US" {
		t.Errorf("Language = %q", seq.Language)
	}
	pv := seq.Pages[0]
	if pv.Bounds != geom.R(0, 0, 595000, 842000) {
		t.Errorf("Bounds = %v", pv.Bounds)
	}
	if len(pv.Extensions) != 1 || pv.Extensions[0].Kind != "ps-setpagedevice" || pv.Extensions[0].Content != "<< /Duplex true >>" {
		t.Errorf("Extensions = %+v", pv.Extensions)
	}

	before := pv.Page.Regions[RegionClassBefore]
	if before == nil || !before.Clip || before.Region.Class != RegionClassBefore {
		t.Fatalf("before region = %+v", before)
	}
	if pv.Page.Regions[RegionClassStart] != nil {
		t.Error("start region should be absent")
	}

	body := pv.Page.Regions[RegionClassBody].Region.Body
	if body == nil || body.ColumnCount != 2 || body.ColumnGap != 12000 {
		t.Fatalf("body = %+v", body)
	}
	span := body.Main.Spans[0]
	if span.Columns != 2 || len(span.Flows) != 2 {
		t.Fatalf("span = %+v", span)
	}

	blk, ok := span.Flows[0].Blocks[0].(*Block)
	if !ok {
		t.Fatalf("first area is %T", span.Flows[0].Blocks[0])
	}
	if blk.ID() != "top" {
		t.Errorf("ID() = %q", blk.ID())
	}
	bp := blk.Traits.Border(TraitBorderBefore)
	if bp == nil || bp.Width != 1000 || bp.Style != BorderStyleSolid || bp.Color != Black {
		t.Errorf("border-before = %v", bp)
	}
	bg := blk.Traits.Background()
	if bg == nil || bg.URI != "bg.png" || bg.Repeat != BackgroundRepeatRepeatX || bg.HorizontalPos != 10 || bg.VerticalPos != 20 {
		t.Fatalf("background = %+v", bg)
	}
	if *bg.Color != (color.RGBA{255, 255, 0, 255}) {
		t.Errorf("background color = %v", *bg.Color)
	}

	line := blk.Children[0].(*LineArea)
	if len(line.Inlines) != 4 {
		t.Fatalf("inlines = %d", len(line.Inlines))
	}
	ip := line.Inlines[0].(*InlineParent)
	if ip.Traits.Text(TraitInternalLink) != "target" || !ip.Traits.Bool(TraitUnderline) {
		t.Errorf("inlineparent traits = %v", ip.Traits)
	}
	text := ip.Children[0].(*TextArea)
	if text.LetterSpaceAdjust != 10 || text.WordSpaceAdjust != 100 || len(text.Children) != 3 {
		t.Errorf("text = %+v", text)
	}
	if w := text.Children[0].(*WordArea); w.Word != "one" || len(w.LetterAdjust) != 3 || w.LetterAdjust[1] != 5 {
		t.Errorf("word = %+v", w)
	}
	if s := text.Children[1].(*SpaceArea); s.Space != ' ' || !s.Adjustable {
		t.Errorf("space = %+v", s)
	}
	if l := line.Inlines[1].(*Leader); l.RuleStyle != BorderStyleDotted || l.RuleThickness != 500 {
		t.Errorf("leader = %+v", l)
	}
	if img := line.Inlines[2].(*InlineViewport).Content.(*Image); img.URI != "pic.png" {
		t.Errorf("image = %+v", img)
	}
	fo := line.Inlines[3].(*InlineViewport).Content.(*ForeignObject)
	if fo.Namespace != "http://www.w3.org/2000/svg" || !strings.Contains(string(fo.Content), "<svg") {
		t.Errorf("foreign object = %q %q", fo.Namespace, fo.Content)
	}

	bv := span.Flows[1].Blocks[0].(*BlockViewport)
	if bv.Positioning != PositioningFixed || bv.XOffset != 1000 || bv.YOffset != 2000 || !bv.Clip {
		t.Errorf("blockViewport = %+v", bv)
	}

	hdr := before.Region.Blocks[0].(*Block).Children[0].(*LineArea).Inlines[0].(*TextArea)
	if tr, ok := hdr.Traits.Font(); !ok || tr != (fonts.Triplet{Family: "Helvetica", Style: "normal", Weight: 400}) {
		t.Errorf("font = %v", tr)
	}
	if hdr.Traits.Int(TraitFontSize) != 12000 {
		t.Errorf("font-size = %d", hdr.Traits.Int(TraitFontSize))
	}

	if doc.Bookmarks == nil || len(doc.Bookmarks.Bookmarks) != 1 {
		t.Fatalf("bookmarks = %+v", doc.Bookmarks)
	}
	top := doc.Bookmarks.Bookmarks[0]
	if top.IDRef != "top" || !top.Show || len(top.Children) != 1 || top.Children[0].Show {
		t.Errorf("bookmark = %+v", top)
	}
	if len(doc.Destinations) != 1 || doc.Destinations[0].IDRef != "top" {
		t.Errorf("destinations = %+v", doc.Destinations)
	}
}

func TestReadXML_Errors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"wrong root", `<foo/>`},
		{"bad bounds", `<areaTree><pageSequence><pageViewport bounds="1 2"/></pageSequence></areaTree>`},
		{"bad border", `<areaTree><pageSequence><pageViewport bounds="0 0 1 1"><page><regionViewport rect="0 0 1 1"><regionBefore><block border-start="(wavy,#000,1)"/></regionBefore></regionViewport></page></pageViewport></pageSequence></areaTree>`},
		{"bad positioning", `<areaTree><pageSequence><pageViewport bounds="0 0 1 1"><page><regionViewport rect="0 0 1 1"><regionAfter><block positioning="floating"/></regionAfter></regionViewport></page></pageViewport></pageSequence></areaTree>`},
		{"bad ctm", `<areaTree><pageSequence><pageViewport bounds="0 0 1 1"><page><regionViewport rect="0 0 1 1"><regionEnd ctm="skew(1)"/></regionViewport></page></pageViewport></pageSequence></areaTree>`},
		{"bad ipd", `<areaTree><pageSequence><pageViewport bounds="0 0 1 1"><page><regionViewport rect="0 0 1 1"><regionBefore><block ipd="wide"/></regionBefore></regionViewport></page></pageViewport></pageSequence></areaTree>`},
		{"bad offset", `<areaTree><pageSequence><pageViewport bounds="0 0 1 1"><page><regionViewport rect="0 0 1 1"><regionBefore><block left-offset="1.5"/></regionBefore></regionViewport></page></pageViewport></pageSequence></areaTree>`},
		{"bad word spacing", `<areaTree><pageSequence><pageViewport bounds="0 0 1 1"><page><regionViewport rect="0 0 1 1"><regionBefore><block><lineArea><text twsadjust="x"/></lineArea></block></regionBefore></regionViewport></page></pageViewport></pageSequence></areaTree>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadXML(strings.NewReader(tt.xml), zaptest.NewLogger(t)); err == nil {
				t.Error("ReadXML() error = nil, want error")
			}
		})
	}
}

func TestReadXML_SpaceAdjustable(t *testing.T) {
	const src = `<areaTree><pageSequence><pageViewport bounds="0 0 1 1"><page><regionViewport rect="0 0 1 1"><regionBefore><block><lineArea>` +
		`<text><word>a</word><space adj="false"> </space><word>b</word><space> </space><word>c</word></text>` +
		`</lineArea></block></regionBefore></regionViewport></page></pageViewport></pageSequence></areaTree>`
	doc, err := ReadXML(strings.NewReader(src), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("ReadXML() error = %v", err)
	}
	block := doc.Sequences[0].Pages[0].Page.Regions[RegionClassBefore].Region.Blocks[0].(*Block)
	text := block.Children[0].(*LineArea).Inlines[0].(*TextArea)
	if s := text.Children[1].(*SpaceArea); s.Adjustable {
		t.Error("space with adj=false is adjustable")
	}
	if s := text.Children[3].(*SpaceArea); !s.Adjustable {
		t.Error("space without adj is not adjustable")
	}
}

func TestBox_Alloc(t *testing.T) {
	b := &Box{IPD: 100000, BPD: 50000}
	b.SetTrait(TraitBorderStart, &BorderProps{Style: BorderStyleSolid, Width: 1000})
	b.SetTrait(TraitBorderEnd, &BorderProps{Style: BorderStyleNone, Width: 5000})
	b.SetTrait(TraitBorderBefore, &BorderProps{Style: BorderStyleDashed, Width: 2000})
	b.SetTrait(TraitPaddingStart, 3000)
	b.SetTrait(TraitPaddingAfter, 4000)
	b.SetTrait(TraitSpaceBefore, 6000)
	b.SetTrait(TraitSpaceAfter, 7000)

	if got, want := b.AllocIPD(), 100000+1000+3000; got != want {
		t.Errorf("AllocIPD() = %d, want %d", got, want)
	}
	if got, want := b.AllocBPD(), 50000+2000+4000+6000+7000; got != want {
		t.Errorf("AllocBPD() = %d, want %d", got, want)
	}
	if got := b.BorderAndPaddingWidthEnd(); got != 0 {
		t.Errorf("invisible border counted: %d", got)
	}
}

func TestBorderProps(t *testing.T) {
	tests := []struct {
		in          string
		wantString  string
		wantClipped int
	}{
		{"(solid,#000000,1000)", "(solid,#000000,1000)", 0},
		{"( double , red , 3000 , collapse-outer )", "(double,#ff0000,3000,collapse-outer)", 1500},
		{"(dashed,rgb(0,0,255),500,collapse-inner)", "(dashed,#0000ff,500,collapse-inner)", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bp, err := ParseBorderProps(tt.in)
			if err != nil {
				t.Fatalf("ParseBorderProps() error = %v", err)
			}
			if bp.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", bp.String(), tt.wantString)
			}
			if bp.ClippedWidth() != tt.wantClipped {
				t.Errorf("ClippedWidth() = %d, want %d", bp.ClippedWidth(), tt.wantClipped)
			}
		})
	}

	var nilBP *BorderProps
	if nilBP.ClippedWidth() != 0 || nilBP.EffectiveWidth() != 0 {
		t.Error("nil border must have zero widths")
	}
}

func TestBackground_RoundTrip(t *testing.T) {
	c := color.RGBA{1, 2, 3, 255}
	bg := &Background{Color: &c, URI: "a.png", Repeat: BackgroundRepeatNoRepeat, HorizontalPos: 5, VerticalPos: -5}
	got, err := ParseBackground(bg.String())
	if err != nil {
		t.Fatalf("ParseBackground() error = %v", err)
	}
	if *got.Color != c || got.URI != bg.URI || got.Repeat != bg.Repeat || got.HorizontalPos != 5 || got.VerticalPos != -5 {
		t.Errorf("round trip = %+v", got)
	}
	if _, err := ParseBackground("color"); err == nil {
		t.Error("expected error for malformed background")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}, false},
		{"#102030", color.RGBA{16, 32, 48, 255}, false},
		{"rgb(10, 20, 30)", color.RGBA{10, 20, 30, 255}, false},
		{"rgb(100%,0%,50%)", color.RGBA{255, 0, 128, 255}, false},
		{"Navy", color.RGBA{0, 0, 128, 255}, false},
		{"nocolor", color.RGBA{}, true},
		{"#12", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_String(t *testing.T) {
	s := loadSample(t).String()
	for _, want := range []string{
		`pageSequence language="en-US"`,
		"region class=body",
		`word: "one"`,
		"blockViewport ipd=100000 bpd=50000 positioning=fixed",
		`bookmark title="Top" idref="top" show=true`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("dump does not contain %q:\n%s", want, s)
		}
	}
}
