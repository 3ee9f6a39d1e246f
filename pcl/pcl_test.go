package pcl

import (
	"bytes"
	"context"
	"image/color"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"arender/area"
	"arender/common"
	"arender/events"
	"arender/fonts"
	"arender/geom"
	"arender/intermediate"
	"arender/render"
)

var black = color.RGBA{A: 255}

func TestPackBits(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			name: "mixed",
			in:   []byte{0xaa, 0xaa, 0xaa, 0x80, 0x00, 0x2a, 0xaa, 0xaa, 0xaa, 0xaa, 0x80, 0x00, 0x2a, 0x22, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa},
			want: []byte{0xfe, 0xaa, 0x02, 0x80, 0x00, 0x2a, 0xfd, 0xaa, 0x03, 0x80, 0x00, 0x2a, 0x22, 0xf7, 0xaa},
		},
		{name: "single", in: []byte{0x01}, want: []byte{0x00, 0x01}},
		{name: "long run", in: bytes.Repeat([]byte{0xff}, 130), want: []byte{0x81, 0xff, 0xff, 0xff}},
		{name: "empty", in: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackBits(nil, tt.in); !bytes.Equal(got, tt.want) {
				t.Errorf("PackBits() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestSelectPageSize(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		want      string
		wantExact bool
	}{
		{"a4", 595000, 842000, "A4", true},
		{"letter landscape", 792000, 612000, "Letter", true},
		{"rounded a4", 595276, 841890, "A4", true},
		{"custom", 500000, 700000, "Executive", false},
		{"huge", 2000000, 2000000, "Ledger", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exact := SelectPageSize(tt.w, tt.h)
			if got.Name != tt.want || exact != tt.wantExact {
				t.Errorf("SelectPageSize() = %s, %v, want %s, %v", got.Name, exact, tt.want, tt.wantExact)
			}
		})
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		c    color.RGBA
		want int
	}{
		{color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0},
		{black, 100},
		{color.RGBA{R: 128, G: 128, B: 128, A: 255}, 50},
	}
	for _, tt := range tests {
		if got := Shade(tt.c); got != tt.want {
			t.Errorf("Shade(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestHPGL_NativeResult(t *testing.T) {
	const pageH = 792000
	t.Run("rectangle", func(t *testing.T) {
		rec := newHPGL(geom.Identity(), pageH, nil)
		rec.FillRect(geom.R(0, 0, 72000, 72000), black)
		got, res := rec.Commands()
		if !res.IsOk() {
			t.Fatalf("result = %v", res)
		}
		if want := "IW;FT1;PU0,10160;RA1016,11176;"; got != want {
			t.Errorf("commands = %q, want %q", got, want)
		}
	})
	t.Run("rotated", func(t *testing.T) {
		rec := newHPGL(geom.Rotate(30), pageH, nil)
		rec.FillRect(geom.R(0, 0, 1000, 1000), black)
		if _, res := rec.Commands(); res.IsOk() || res.Reason() != reasonTransform {
			t.Errorf("result = %v, want unsupported transformation", res)
		}
	})
	t.Run("rectangular clip", func(t *testing.T) {
		rec := newHPGL(geom.Identity(), pageH, nil)
		rec.SaveGraphicsState()
		rec.MoveTo(0, 0)
		rec.LineTo(72000, 0)
		rec.LineTo(72000, 72000)
		rec.LineTo(0, 72000)
		rec.ClosePath()
		rec.Clip()
		rec.RestoreGraphicsState()
		got, res := rec.Commands()
		if !res.IsOk() {
			t.Fatalf("result = %v", res)
		}
		if want := "IW;IW0,10160,1016,11176;IW;"; got != want {
			t.Errorf("commands = %q, want %q", got, want)
		}
	})
	t.Run("trapezoid clip", func(t *testing.T) {
		rec := newHPGL(geom.Identity(), pageH, nil)
		rec.MoveTo(0, 0)
		rec.LineTo(10000, 0)
		rec.LineTo(9000, 1000)
		rec.LineTo(1000, 1000)
		rec.Clip()
		rec.FillRect(geom.R(0, 0, 10000, 1000), black)
		if got, res := rec.Commands(); res.IsOk() || got != "" {
			t.Errorf("Commands() = %q, %v, want unsupported", got, res)
		}
	})
	t.Run("dashed diagonal", func(t *testing.T) {
		rec := newHPGL(geom.Identity(), pageH, nil)
		rec.Line(geom.Point{}, geom.Point{X: 1000, Y: 1000}, 500, black, area.BorderStyleDashed)
		if _, res := rec.Commands(); res.IsOk() {
			t.Error("dashed diagonal line rendered natively")
		}
	})
}

// document helpers

func page(idx int, blocks ...area.Area) *area.PageViewport {
	ref := &area.RegionReference{
		Box:    area.Box{IPD: 500000, BPD: 700000},
		Class:  area.RegionClassBody,
		CTM:    geom.Translate(50000, 60000),
		Blocks: blocks,
	}
	rv := &area.RegionViewport{
		Box:    area.Box{IPD: 500000, BPD: 700000},
		View:   geom.R(50000, 60000, 500000, 700000),
		Region: ref,
	}
	p := &area.Page{}
	p.Regions[area.RegionClassBody] = rv
	return &area.PageViewport{Index: idx, Name: strconv.Itoa(idx + 1), Bounds: geom.R(0, 0, 595000, 842000), Page: p}
}

func document(pages ...*area.PageViewport) *area.Document {
	return &area.Document{Sequences: []*area.PageSequence{{Language: "en", Pages: pages}}}
}

func filled(c color.RGBA, w, h int) *area.Block {
	b := &area.Block{Box: area.Box{IPD: w, BPD: h}}
	b.SetTrait(area.TraitBackground, &area.Background{Color: &c})
	return b
}

func word(text string) *area.Block {
	ta := &area.TextArea{Box: area.Box{IPD: 100000, BPD: 12000}, BaselineOffset: 9000, Children: []area.Area{
		&area.WordArea{Box: area.Box{IPD: 10000}, Word: text},
	}}
	ta.SetTrait(area.TraitFont, fonts.Triplet{Family: "serif", Style: "normal", Weight: 400})
	ta.SetTrait(area.TraitFontSize, 10000)
	line := &area.LineArea{Box: area.Box{IPD: 400000, BPD: 12000}, Inlines: []area.Area{ta}}
	return &area.Block{Box: area.Box{IPD: 400000, BPD: 12000}, Children: []area.Area{line}}
}

func renderPCL(t *testing.T, doc *area.Document, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	log := zaptest.NewLogger(t)
	h := NewDocumentHandler(&buf, opts, log)
	if err := render.New(h, render.Options{Events: opts.Events}, log).Render(context.Background(), doc); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

// onePage drives the handler directly for painter level tests.
func onePage(t *testing.T, opts Options, paint func(p intermediate.Painter)) string {
	t.Helper()
	var buf bytes.Buffer
	h := NewDocumentHandler(&buf, opts, zaptest.NewLogger(t))
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(h.StartDocument())
	must(h.StartDocumentHeader())
	must(h.EndDocumentHeader())
	must(h.StartPageSequence(intermediate.PageSequence{}))
	must(h.StartPage(intermediate.Page{Width: 612000, Height: 792000}))
	must(h.StartPageHeader())
	must(h.EndPageHeader())
	p, err := h.StartPageContent()
	must(err)
	paint(p)
	must(h.EndPageContent())
	must(h.StartPageTrailer())
	must(h.EndPageTrailer())
	must(h.EndPage())
	must(h.EndPageSequence())
	must(h.StartDocumentTrailer())
	must(h.EndDocumentTrailer())
	must(h.EndDocument())
	return buf.String()
}

func TestDocument_PJLJob(t *testing.T) {
	out := renderPCL(t, document(page(0, filled(black, 1000, 1000)), page(1)), Options{PJL: true, JobName: "job-1"})

	if want := UEL + "@PJL JOB NAME = \"job-1\"\r\n@PJL SET RESOLUTION = 600\r\n@PJL ENTER LANGUAGE = PCL\r\n\x1bE\x1b&u600D"; !strings.HasPrefix(out, want) {
		t.Errorf("prologue = %q, want prefix %q", out[:min(len(out), len(want))], want)
	}
	if want := "\x1bE" + UEL + "@PJL EOJ NAME = \"job-1\"\r\n" + UEL; !strings.HasSuffix(out, want) {
		t.Errorf("output does not end with epilogue %q", want)
	}
	if got := strings.Count(out, "\f"); got != 2 {
		t.Errorf("form feeds = %d, want 2", got)
	}
	if got := strings.Count(out, "\x1b&l26A\x1b&l0O"); got != 2 {
		t.Errorf("A4 portrait setups = %d, want 2", got)
	}
}

func TestDocument_GeneratedJobName(t *testing.T) {
	out := renderPCL(t, document(page(0)), Options{PJL: true})
	start := strings.Index(out, `JOB NAME = "`)
	if start < 0 {
		t.Fatalf("no job name in %q", out)
	}
	name := out[start+len(`JOB NAME = "`):]
	name = name[:strings.IndexByte(name, '"')]
	if len(name) != 36 {
		t.Errorf("job name = %q, want a UUID", name)
	}
}

func TestDocument_FillRect(t *testing.T) {
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	out := renderPCL(t, document(page(0, filled(black, 10000, 5000), filled(gray, 10000, 5000))), Options{})

	for _, want := range []string{
		"\x1b&a500h600V\x1b*c100h50V\x1b*c0P",
		"\x1b&a500h650V\x1b*c100h50V\x1b*c50g2P",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestDocument_NativeText(t *testing.T) {
	col := &events.Collector{}
	out := renderPCL(t, document(page(0, word("Hi"))), Options{Events: col})

	if want := "\x1b(0N\x1b(s1p10v0s0b16901T\x1b&a500h690VHi"; !strings.Contains(out, want) {
		t.Errorf("missing %q in %q", want, out)
	}
	if got := col.ByKey(events.BitmapFallback); len(got) != 0 {
		t.Errorf("unexpected fallback: %v", got)
	}
}

func TestDocument_TextFallback(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mode   common.PCLTextRendering
		reason string
	}{
		{"cyrillic", "Привет", common.PCLTextRenderingAuto, reasonGlyphs},
		{"forced bitmap", "Hi", common.PCLTextRenderingBitmap, reasonBitmap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := &events.Collector{}
			out := renderPCL(t, document(page(0, word(tt.text))), Options{Text: tt.mode, Events: col})

			got := col.ByKey(events.BitmapFallback)
			if len(got) != 1 || got[0].Params["reason"] != tt.reason {
				t.Fatalf("BitmapFallback events = %v, want reason %q", got, tt.reason)
			}
			if !strings.Contains(out, "\x1b*r1A") || !strings.Contains(out, "\x1b*rC") {
				t.Errorf("no raster graphics in output")
			}
			if strings.Contains(out, "\x1b(s1p") {
				t.Errorf("printer font selected for bitmap text")
			}
		})
	}
}

func TestDocument_BorderModes(t *testing.T) {
	topOnly := func() *area.Block {
		b := &area.Block{Box: area.Box{IPD: 100000, BPD: 20000}}
		b.SetTrait(area.TraitBorderBefore, &area.BorderProps{Style: area.BorderStyleSolid, Width: 2000, Color: black})
		return b
	}
	corner := func() *area.Block {
		b := topOnly()
		b.SetTrait(area.TraitBorderStart, &area.BorderProps{Style: area.BorderStyleSolid, Width: 2000, Color: black})
		return b
	}
	tests := []struct {
		name       string
		block      *area.Block
		quality    common.PCLRenderingMode
		wantHPGL   bool
		wantRaster bool
	}{
		{"speed", corner(), common.PCLRenderingModeSpeed, false, false},
		{"quality rectangle edge", topOnly(), common.PCLRenderingModeQuality, true, false},
		{"quality mitered corner", corner(), common.PCLRenderingModeQuality, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := &events.Collector{}
			out := renderPCL(t, document(page(0, tt.block)), Options{Quality: tt.quality, Events: col})

			if got := strings.Contains(out, "\x1b%1BIN;SP1;"); got != tt.wantHPGL {
				t.Errorf("HP-GL/2 present = %v, want %v", got, tt.wantHPGL)
			}
			if got := strings.Contains(out, "\x1b*r1A"); got != tt.wantRaster {
				t.Errorf("raster present = %v, want %v", got, tt.wantRaster)
			}
			if got := len(col.ByKey(events.BitmapFallback)) > 0; got != tt.wantRaster {
				t.Errorf("fallback reported = %v, want %v", got, tt.wantRaster)
			}
		})
	}
}

func TestPainter_RotatedFillFallsBack(t *testing.T) {
	col := &events.Collector{}
	out := onePage(t, Options{Events: col}, func(p intermediate.Painter) {
		p.StartGroup(geom.Translate(100000, 100000).Multiply(geom.Rotate(45)))
		p.FillRect(geom.R(0, 0, 20000, 20000), black)
		p.EndGroup()
	})
	if !strings.Contains(out, "\x1b*r1A") {
		t.Error("rotated fill not rasterized")
	}
	if strings.Contains(out, "\x1b*c0P") {
		t.Error("rotated fill printed as rectangle")
	}
	if got := col.ByKey(events.BitmapFallback); len(got) != 1 {
		t.Errorf("BitmapFallback events = %v, want one", got)
	}
}

func TestPainter_ClipLimitsFill(t *testing.T) {
	out := onePage(t, Options{}, func(p intermediate.Painter) {
		clip := geom.R(0, 0, 5000, 5000)
		p.StartViewport(geom.Translate(10000, 10000), 20000, 20000, &clip)
		p.FillRect(geom.R(0, 0, 20000, 20000), black)
		p.EndViewport()
	})
	if want := "\x1b&a100h100V\x1b*c50h50V\x1b*c0P"; !strings.Contains(out, want) {
		t.Errorf("missing clipped fill %q in %q", want, out)
	}
}

func TestPainter_DiagonalLine(t *testing.T) {
	out := onePage(t, Options{}, func(p intermediate.Painter) {
		p.DrawLine(geom.Point{X: 0, Y: 0}, geom.Point{X: 72000, Y: 72000}, 1000, black, area.BorderStyleSolid)
		p.DrawLine(geom.Point{X: 0, Y: 0}, geom.Point{X: 72000, Y: 72000}, 1000, black, area.BorderStyleDotted)
	})
	if !strings.Contains(out, "PU0,11176;PD1016,10160;PU;") {
		t.Errorf("solid diagonal not drawn in HP-GL/2: %q", out)
	}
	if !strings.Contains(out, "\x1b*r1A") {
		t.Error("dotted diagonal not rasterized")
	}
}

func TestPainter_UnbalancedGroupsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("EndPageContent did not panic")
		}
	}()
	onePage(t, Options{}, func(p intermediate.Painter) {
		p.StartGroup(geom.Translate(1000, 0))
	})
}

func TestDocument_Extensions(t *testing.T) {
	doc := document(page(0), page(1))
	doc.Extensions = []area.Extension{{Kind: ExtDuplex, Content: "long-edge"}, {Kind: ExtSetupCode, Content: "\x1b&l1X"}}
	doc.Sequences[0].Pages[1].Extensions = []area.Extension{
		{Kind: ExtPaperSource, Content: "4"},
		{Kind: ExtDuplex, Content: "sideways"},
		{Kind: ExtPaperSource, Content: "top"},
	}
	col := &events.Collector{}
	out := renderPCL(t, doc, Options{Events: col})

	if !strings.Contains(out, "\x1b&u600D\x1b&l1X") {
		t.Error("setup code not written after reset")
	}
	if got := strings.Count(out, "\x1b&l1S"); got != 2 {
		t.Errorf("duplex commands = %d, want 2", got)
	}
	if got := strings.Count(out, "\x1b&l4H"); got != 1 {
		t.Errorf("paper source commands = %d, want 1", got)
	}
	if got := col.ByKey(events.MalformedExtension); len(got) != 2 {
		t.Errorf("MalformedExtension events = %v, want two", got)
	}
}
