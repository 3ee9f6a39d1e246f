// Package pcl renders intermediate painter calls as PCL5 with HP-GL/2 for
// vector work PCL itself can not do. Whatever neither language can express
// is rasterized and printed as a bitmap.
package pcl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"arender/area"
	"arender/common"
	"arender/events"
	"arender/fonts"
	"arender/images"
	"arender/intermediate"
)

// Extension kinds understood by the PCL handler.
const (
	ExtSetupCode     = "pcl-setup-code"
	ExtPageSetupCode = "pcl-page-setup-code"
	ExtPaperSource   = "pcl-paper-source"
	ExtDuplex        = "pcl-duplex"
)

var duplexModes = map[string]int{
	"simplex":    0,
	"long-edge":  1,
	"short-edge": 2,
}

// Options controls PCL output.
type Options struct {
	// Resolution in dots per inch, 300 or 600.
	Resolution int
	// Quality selects mitered borders (quality) or plain rectangles (speed).
	Quality common.PCLRenderingMode
	// Text selects printer fonts when possible (auto) or bitmaps always.
	Text common.PCLTextRendering
	// PJL wraps the job into PJL commands.
	PJL bool
	// JobName is used in PJL, random when empty.
	JobName string

	Fonts  fonts.Registry
	Images images.Registry
	Events events.Broadcaster
}

type pageInfo struct {
	width, height int
	landscape     bool
	hpglReady     bool
	duplex        int
	paperSource   int
	setup         []string
}

// DocumentHandler writes PCL to an output stream.
type DocumentHandler struct {
	intermediate.Sequence

	opts   Options
	log    *zap.Logger
	events events.Broadcaster

	out *events.GuardWriter
	gen *Generator

	setup  []string
	duplex int

	page     *pageInfo
	count    int
	painter  *painter
	res      *resources
	fontUsed string
}

// NewDocumentHandler prepares handler writing to w.
func NewDocumentHandler(w io.Writer, opts Options, log *zap.Logger) *DocumentHandler {
	if opts.Resolution != 300 {
		opts.Resolution = 600
	}
	if opts.JobName == "" {
		opts.JobName = uuid.NewString()
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
		opts:   opts,
		log:    log.Named("pcl"),
		events: opts.Events,
		out:    events.NewGuardWriter(w, opts.Events),
		duplex: -1,
	}
	h.res = newResources(h)
	h.painter = &painter{h: h}
	return h
}

func (h *DocumentHandler) StartDocument() error {
	h.Advance(intermediate.CallStartDocument)
	h.gen = NewGenerator(h.out, h.opts.Resolution)
	if h.opts.PJL {
		h.gen.Command(UEL)
		h.gen.PJL("JOB NAME = %q", h.opts.JobName)
		h.gen.PJL("SET RESOLUTION = %d", h.opts.Resolution)
		h.gen.PJL("ENTER LANGUAGE = PCL")
	}
	h.gen.Reset()
	return h.gen.SetUnitOfMeasure()
}

func (h *DocumentHandler) StartDocumentHeader() error {
	h.Advance(intermediate.CallStartDocumentHeader)
	return nil
}

func (h *DocumentHandler) EndDocumentHeader() error {
	h.Advance(intermediate.CallEndDocumentHeader)
	for _, code := range h.setup {
		h.gen.Command(code)
	}
	return h.gen.Err()
}

func (h *DocumentHandler) StartPageSequence(intermediate.PageSequence) error {
	h.Advance(intermediate.CallStartPageSequence)
	return nil
}

func (h *DocumentHandler) StartPage(p intermediate.Page) error {
	h.Advance(intermediate.CallStartPage)
	h.count++
	h.page = &pageInfo{
		width:       p.Width,
		height:      p.Height,
		landscape:   p.Width > p.Height,
		duplex:      h.duplex,
		paperSource: -1,
	}
	h.fontUsed = ""
	return nil
}

func (h *DocumentHandler) StartPageHeader() error {
	h.Advance(intermediate.CallStartPageHeader)
	return nil
}

func (h *DocumentHandler) EndPageHeader() error {
	h.Advance(intermediate.CallEndPageHeader)
	p, g := h.page, h.gen
	size, exact := SelectPageSize(p.width, p.height)
	if !exact {
		h.log.Debug("No exact page size, using larger media",
			zap.Int("page", h.count), zap.String("media", size.Name))
	}
	g.PageSetup(size, p.landscape)
	if p.paperSource >= 0 {
		g.Escape("&l" + strconv.Itoa(p.paperSource) + "H")
	}
	if p.duplex >= 0 {
		g.Escape("&l" + strconv.Itoa(p.duplex) + "S")
	}
	for _, code := range p.setup {
		g.Command(code)
	}
	g.PictureFrame(p.width, p.height)
	return g.Err()
}

func (h *DocumentHandler) StartPageContent() (intermediate.Painter, error) {
	h.Advance(intermediate.CallStartPageContent)
	h.painter.reset()
	return h.painter, nil
}

func (h *DocumentHandler) EndPageContent() error {
	h.Advance(intermediate.CallEndPageContent)
	if n := len(h.painter.stack); n != 0 {
		panic(fmt.Sprintf("pcl: %d unbalanced groups at end of page %d", n, h.count))
	}
	return nil
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
	return h.gen.FormFeed()
}

func (h *DocumentHandler) EndPageSequence() error {
	h.Advance(intermediate.CallEndPageSequence)
	return nil
}

func (h *DocumentHandler) StartDocumentTrailer() error {
	h.Advance(intermediate.CallStartDocumentTrailer)
	return nil
}

func (h *DocumentHandler) EndDocumentTrailer() error {
	h.Advance(intermediate.CallEndDocumentTrailer)
	return nil
}

func (h *DocumentHandler) EndDocument() error {
	h.Advance(intermediate.CallEndDocument)
	g := h.gen
	g.Reset()
	if h.opts.PJL {
		g.Command(UEL)
		g.PJL("EOJ NAME = %q", h.opts.JobName)
		g.Command(UEL)
	}
	if err := g.Flush(); err != nil {
		return err
	}
	h.log.Debug("Document written", zap.Int("pages", h.count))
	return nil
}

func (h *DocumentHandler) SupportsPagesOutOfOrder() bool {
	return false
}

func (h *DocumentHandler) HandleExtension(ext area.Extension) error {
	h.ExpectExtension()
	header := h.Phase() == intermediate.PhaseDocumentHeader
	page := h.Phase() == intermediate.PhasePageHeader
	switch {
	case ext.Kind == ExtSetupCode && header:
		h.setup = append(h.setup, ext.Content)
	case ext.Kind == ExtPageSetupCode && page:
		h.page.setup = append(h.page.setup, ext.Content)
	case ext.Kind == ExtDuplex && (header || page):
		mode, ok := duplexModes[strings.TrimSpace(ext.Content)]
		if !ok {
			h.events.Broadcast(events.New(events.SeverityWarning, events.MalformedExtension,
				"Unknown duplex mode ignored", "kind", ext.Kind, "value", ext.Content))
			return nil
		}
		if header {
			h.duplex = mode
		} else {
			h.page.duplex = mode
		}
	case ext.Kind == ExtPaperSource && page:
		tray, err := strconv.Atoi(strings.TrimSpace(ext.Content))
		if err != nil || tray < 0 {
			h.events.Broadcast(events.New(events.SeverityWarning, events.MalformedExtension,
				"Paper source ignored", "kind", ext.Kind, "value", ext.Content))
			return nil
		}
		h.page.paperSource = tray
	default:
		h.log.Debug("Extension ignored", zap.String("kind", ext.Kind), zap.String("name", ext.Name), zap.Stringer("phase", h.Phase()))
	}
	return nil
}

// NavigationHandler returns nil, PCL has no navigation.
func (h *DocumentHandler) NavigationHandler() intermediate.NavigationHandler {
	return nil
}

// hpgl writes HP-GL/2 commands, initializing HP-GL/2 once per page.
func (h *DocumentHandler) hpgl(commands string) error {
	if commands == "" {
		return nil
	}
	if !h.page.hpglReady {
		commands = "IN;SP1;" + commands
		h.page.hpglReady = true
	}
	return h.gen.HPGL(commands)
}
