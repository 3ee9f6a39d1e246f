// Package ps renders intermediate painter calls as DSC conforming
// PostScript.
package ps

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"arender/area"
	"arender/events"
	"arender/fonts"
	"arender/geom"
	"arender/images"
	"arender/intermediate"
	"arender/utils/files"
)

// Extension kinds understood by the PostScript handler.
const (
	ExtSetupCode     = "ps-setup-code"
	ExtPageSetupCode = "ps-page-setup-code"
	ExtPageDevice    = "ps-setpagedevice"
	ExtComment       = "ps-comment"
)

const procsetName = "arender-base"

// Options controls PostScript output.
type Options struct {
	// LanguageLevel is 2 or 3, image forms need level 3.
	LanguageLevel int
	// OptimizeResources writes pages to a temporary file first so the setup
	// section only carries resources actually used.
	OptimizeResources bool
	// AutoRotateLandscape prints landscape pages rotated on portrait media.
	AutoRotateLandscape bool
	// SafeSetPageDevice ignores devices rejecting page device requests.
	SafeSetPageDevice bool
	// DSCCompliant brackets page device requests with feature comments.
	DSCCompliant bool
	// JPEGQuality is used for color images embedded with DCT compression.
	JPEGQuality int
	// ImageDPI is the resolution vector images are rasterized at.
	ImageDPI float64
	Creator  string
	// TempDir holds the temporary file of optimized output.
	TempDir string

	Fonts  fonts.Registry
	Images images.Registry
	Events events.Broadcaster
}

type pageInfo struct {
	ordinal   int
	width     int
	height    int
	landscape bool
}

// DocumentHandler writes PostScript to an output stream.
type DocumentHandler struct {
	intermediate.Sequence

	opts   Options
	log    *zap.Logger
	events events.Broadcaster

	out     *events.GuardWriter
	body    *Generator
	tmp     *os.File
	tmpName string

	headerComments []string
	setupCode      []area.Extension
	docDevice      *PageDevice

	pageDevice   *PageDevice
	pageSetup    []string
	pageComments []string

	pages map[int]*pageInfo
	page  *pageInfo
	count int
	bbox  geom.Rect

	res     *resources
	painter *painter
	nav     *navigation
}

// NewDocumentHandler prepares handler writing to w.
func NewDocumentHandler(w io.Writer, opts Options, log *zap.Logger) *DocumentHandler {
	if opts.LanguageLevel != 3 {
		opts.LanguageLevel = 2
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 85
	}
	if opts.ImageDPI <= 0 {
		opts.ImageDPI = 300
	}
	if opts.Creator == "" {
		opts.Creator = "arender"
	}
	if opts.Events == nil {
		opts.Events = events.Discard
	}
	if opts.Fonts == nil {
		// never fails for embedded fonts
		reg, err := fonts.NewDefaultRegistry()
		if err != nil {
			panic(err)
		}
		opts.Fonts = reg
	}
	h := &DocumentHandler{
		opts:      opts,
		log:       log.Named("ps"),
		events:    opts.Events,
		out:       events.NewGuardWriter(w, opts.Events),
		docDevice: NewPageDevice(),
		pages:     make(map[int]*pageInfo),
	}
	h.res = newResources(h)
	h.painter = &painter{h: h}
	h.nav = &navigation{h: h, deferred: make(map[string][]deferredLink)}
	return h
}

// Close removes the temporary file of an interrupted optimized rendering.
// It is safe to call after EndDocument.
func (h *DocumentHandler) Close() error {
	if h.tmp == nil {
		return nil
	}
	err := h.tmp.Close()
	h.tmp = nil
	return multierr.Append(err, files.Remove(h.tmpName))
}

func (h *DocumentHandler) StartDocument() error {
	h.Advance(intermediate.CallStartDocument)
	if !h.opts.OptimizeResources {
		h.body = NewGenerator(h.out)
		return nil
	}
	f, err := os.CreateTemp(h.opts.TempDir, "arender-*.ps")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	h.tmp, h.tmpName = f, f.Name()
	h.body = NewGenerator(f)
	h.log.Debug("Optimizing resources", zap.String("temp", h.tmpName))
	return nil
}

func (h *DocumentHandler) StartDocumentHeader() error {
	h.Advance(intermediate.CallStartDocumentHeader)
	return nil
}

func (h *DocumentHandler) EndDocumentHeader() error {
	h.Advance(intermediate.CallEndDocumentHeader)
	if h.opts.OptimizeResources {
		// written once pages are known
		return nil
	}
	return h.writeHeader(h.body, h.opts.Fonts.Keys(), nil)
}

func (h *DocumentHandler) StartPageSequence(intermediate.PageSequence) error {
	h.Advance(intermediate.CallStartPageSequence)
	return nil
}

func (h *DocumentHandler) StartPage(p intermediate.Page) error {
	h.Advance(intermediate.CallStartPage)
	h.count++
	info := &pageInfo{ordinal: h.count, width: p.Width, height: p.Height}
	info.landscape = h.opts.AutoRotateLandscape && p.Width > p.Height
	h.pages[p.Index] = info
	h.page = info
	h.pageDevice = h.docDevice.Clone()
	h.pageSetup, h.pageComments = nil, nil

	name := p.Name
	if name == "" {
		name = strconv.Itoa(p.Index + 1)
	}
	return h.body.Comment("Page", pageLabel(name), strconv.Itoa(info.ordinal))
}

// pageLabel quotes labels DSC could not read otherwise.
func pageLabel(name string) string {
	if strings.ContainsAny(name, " ()\t") {
		return EscapeBytes([]byte(name))
	}
	return name
}

func (h *DocumentHandler) StartPageHeader() error {
	h.Advance(intermediate.CallStartPageHeader)
	return nil
}

func (h *DocumentHandler) EndPageHeader() error {
	h.Advance(intermediate.CallEndPageHeader)
	g, p := h.body, h.page

	w, ht := p.width, p.height
	if p.landscape {
		w, ht = ht, w
	}
	box := geom.Rect{W: w, H: ht}
	if h.count == 1 {
		h.bbox = box
	} else {
		h.bbox = h.bbox.Union(box)
	}

	for _, c := range h.pageComments {
		g.Writeln("%%" + c)
	}
	if p.landscape {
		g.Comment("PageOrientation", "Landscape")
	}
	g.Comment("PageBoundingBox", "0 0", strconv.Itoa(ceilPt(w)), strconv.Itoa(ceilPt(ht)))
	g.Comment("BeginPageSetup")
	if _, ok := h.pageDevice.Get("PageSize"); !ok {
		h.pageDevice.Put("PageSize", "["+Pt(w)+" "+Pt(ht)+"]")
	}
	h.writePageDevice(g, h.pageDevice)
	for _, code := range h.pageSetup {
		g.Writeln(code)
	}
	g.Comment("EndPageSetup")
	return g.Err()
}

func (h *DocumentHandler) writePageDevice(g *Generator, d *PageDevice) {
	if d.Len() == 0 {
		return
	}
	op := "setpagedevice"
	if h.opts.SafeSetPageDevice {
		op = "SSPD"
	}
	if h.opts.DSCCompliant {
		g.Comment("BeginFeature", "*PageDevice")
	}
	g.Writeln(d.String(), op)
	if h.opts.DSCCompliant {
		g.Comment("EndFeature")
	}
}

// baseTransform maps page content coordinates (millipoints, y down) to
// default user space.
func (p *pageInfo) baseTransform() geom.Matrix {
	if p.landscape {
		return geom.Matrix{A: 0, B: 1, C: 1, D: 0}
	}
	return geom.Matrix{A: 1, D: -1, F: float64(p.height)}
}

func (h *DocumentHandler) StartPageContent() (intermediate.Painter, error) {
	h.Advance(intermediate.CallStartPageContent)
	if err := h.body.SaveGraphicsState(); err != nil {
		return nil, err
	}
	if err := h.body.Concat(h.page.baseTransform()); err != nil {
		return nil, err
	}
	h.painter.reset()
	return h.painter, nil
}

func (h *DocumentHandler) EndPageContent() error {
	h.Advance(intermediate.CallEndPageContent)
	if d := h.body.Depth(); d != 1 {
		panic(fmt.Sprintf("ps: %d unbalanced graphics states at end of page %d", d-1, h.page.ordinal))
	}
	return h.body.RestoreGraphicsState()
}

func (h *DocumentHandler) StartPageTrailer() error {
	h.Advance(intermediate.CallStartPageTrailer)
	return nil
}

func (h *DocumentHandler) EndPageTrailer() error {
	h.Advance(intermediate.CallEndPageTrailer)
	return nil
}

func (h *DocumentHandler) EndPage() error {
	h.Advance(intermediate.CallEndPage)
	g := h.body
	g.Writeln("showpage")
	g.Comment("PageTrailer")
	g.Reset()
	return g.Err()
}

func (h *DocumentHandler) EndPageSequence() error {
	h.Advance(intermediate.CallEndPageSequence)
	return nil
}

func (h *DocumentHandler) StartDocumentTrailer() error {
	h.Advance(intermediate.CallStartDocumentTrailer)
	return h.body.Comment("Trailer")
}

func (h *DocumentHandler) EndDocumentTrailer() error {
	h.Advance(intermediate.CallEndDocumentTrailer)
	return nil
}

func (h *DocumentHandler) EndDocument() (err error) {
	h.Advance(intermediate.CallEndDocument)
	if err := h.body.Flush(); err != nil {
		return err
	}

	final := h.body
	if h.opts.OptimizeResources {
		defer func() {
			err = multierr.Append(err, h.Close())
		}()
		if err := h.tmp.Sync(); err != nil {
			return err
		}
		final = NewGenerator(h.out)
		if err := h.writeHeader(final, h.res.usedFonts(), h.res.forms); err != nil {
			return err
		}
		if err := final.Flush(); err != nil {
			return err
		}
		if err := files.CopyFrom(h.out, h.tmpName); err != nil {
			return fmt.Errorf("unable to copy pages: %w", err)
		}
	}

	g := final
	if !h.opts.OptimizeResources {
		needed, _ := h.resourceComments(h.opts.Fonts.Keys(), nil)
		writeList(g, "DocumentNeededResources", needed)
	}
	g.Comment("Pages", strconv.Itoa(h.count))
	g.Comment("BoundingBox", "0 0", strconv.Itoa(ceilPt(h.bbox.W)), strconv.Itoa(ceilPt(h.bbox.H)))
	g.Comment("HiResBoundingBox", "0 0", Pt(h.bbox.W), Pt(h.bbox.H))
	g.Comment("EOF")
	return g.Flush()
}

func ceilPt(mpt int) int {
	return int(math.Ceil(float64(mpt) / 1000))
}

func (h *DocumentHandler) SupportsPagesOutOfOrder() bool {
	return false
}

func (h *DocumentHandler) HandleExtension(ext area.Extension) error {
	h.ExpectExtension()
	header := h.Phase() == intermediate.PhaseDocumentHeader
	page := h.Phase() == intermediate.PhasePageHeader
	switch {
	case ext.Kind == ExtPageDevice && (header || page):
		d, err := ParsePageDevice(ext.Content)
		if err != nil {
			h.events.Broadcast(events.New(events.SeverityWarning, events.MalformedPageDevice,
				"Page device dictionary ignored", "name", ext.Name, "error", err.Error()))
			return nil
		}
		if header {
			h.docDevice.Merge(d)
		} else {
			h.pageDevice.Merge(d)
		}
	case ext.Kind == ExtSetupCode && header:
		h.setupCode = append(h.setupCode, ext)
	case ext.Kind == ExtPageSetupCode && page:
		h.pageSetup = append(h.pageSetup, ext.Content)
	case ext.Kind == ExtComment && header:
		h.headerComments = append(h.headerComments, ext.Content)
	case ext.Kind == ExtComment && page:
		h.pageComments = append(h.pageComments, ext.Content)
	default:
		h.log.Debug("Extension ignored", zap.String("kind", ext.Kind), zap.String("name", ext.Name), zap.Stringer("phase", h.Phase()))
	}
	return nil
}

func (h *DocumentHandler) NavigationHandler() intermediate.NavigationHandler {
	return h.nav
}

// writeHeader writes everything up to and including setup. Without known
// fonts (single pass) every registry font is set up.
func (h *DocumentHandler) writeHeader(g *Generator, fontKeys []string, forms []*form) error {
	g.Writeln("%!PS-Adobe-3.0")
	g.Comment("Creator", h.opts.Creator)
	g.Comment("LanguageLevel", strconv.Itoa(h.opts.LanguageLevel))
	g.Comment("Pages", "(atend)")
	g.Comment("BoundingBox", "(atend)")
	g.Comment("HiResBoundingBox", "(atend)")
	needed, supplied := h.resourceComments(fontKeys, forms)
	if h.opts.OptimizeResources {
		writeList(g, "DocumentNeededResources", needed)
	} else {
		g.Comment("DocumentNeededResources", "(atend)")
	}
	writeList(g, "DocumentSuppliedResources", supplied)
	for _, c := range h.headerComments {
		g.Writeln("%%" + c)
	}
	g.Comment("EndComments")

	g.Comment("BeginDefaults")
	g.Comment("EndDefaults")

	g.Comment("BeginProlog")
	g.Comment("BeginResource", "procset", procsetName, "1.0 0")
	for _, l := range prolog {
		g.Writeln(l)
	}
	g.Comment("EndResource")
	g.Comment("EndProlog")

	g.Comment("BeginSetup")
	for _, key := range fontKeys {
		ps := h.opts.Fonts.Descriptor(key).PostScriptName
		g.Comment("IncludeResource", "font", ps)
		g.Writeln("/"+key, "/"+ps, "RE")
	}
	for _, f := range forms {
		if err := h.res.writeForm(g, f); err != nil {
			return err
		}
	}
	for _, ext := range h.setupCode {
		if ext.Name != "" {
			g.Writeln("%", ext.Name)
		}
		g.Writeln(ext.Content)
	}
	g.Comment("EndSetup")
	return g.Err()
}

// resourceComments returns needed resources and supplied ones, the latter
// always starts with the procset.
func (h *DocumentHandler) resourceComments(fontKeys []string, forms []*form) ([]string, []string) {
	var needed []string
	for _, key := range fontKeys {
		n := "font " + h.opts.Fonts.Descriptor(key).PostScriptName
		if !slices.Contains(needed, n) {
			needed = append(needed, n)
		}
	}
	supplied := []string{"procset " + procsetName + " 1.0 0"}
	for _, f := range forms {
		supplied = append(supplied, "form "+f.name)
	}
	return needed, supplied
}

// prolog defines short procedures used by page content.
var prolog = []string{
	"/M /moveto load def",
	"/L /lineto load def",
	"/CP /closepath load def",
	"/RE { findfont dup length dict begin { 1 index /FID ne { def } { pop pop } ifelse } forall",
	"  /Encoding ISOLatin1Encoding def currentdict end definefont pop } bind def",
	"/SSPD { /setpagedevice where { pop { setpagedevice } stopped { pop } if } { pop } ifelse } bind def",
	"/pdfmark where { pop } { userdict /pdfmark /cleartomark load put } ifelse",
}

// writeList writes a DSC comment with one value per line.
func writeList(g *Generator, name string, values []string) {
	if len(values) == 0 {
		return
	}
	g.Comment(name, values[0])
	for _, v := range values[1:] {
		g.Writeln("%%+", v)
	}
}
