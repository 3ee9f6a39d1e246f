package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"arender/area"
	"arender/common"
	"arender/events"
	"arender/fonts"
	"arender/images"
	"arender/intermediate"
	"arender/misc"
	"arender/pcl"
	"arender/ps"
	"arender/render"
	"arender/state"
)

// job is a single document to render.
type job struct {
	doc    *etree.Document
	kind   inputKind
	format common.OutputFmt
	// imageDir resolves relative image URIs
	imageDir string
	id       string

	fonts  fonts.Registry
	images images.Registry
	events events.Broadcaster
}

// newHandler creates document handler producing format into w.
func newHandler(env *state.LocalEnv, j *job, w io.Writer, log *zap.Logger) intermediate.DocumentHandler {
	cfg := &env.Cfg.Rendering
	switch j.format {
	case common.OutputFmtPs:
		return ps.NewDocumentHandler(w, ps.Options{
			LanguageLevel:       cfg.PostScript.LanguageLevel,
			OptimizeResources:   cfg.PostScript.OptimizeResources,
			AutoRotateLandscape: cfg.PostScript.AutoRotateLandscape,
			SafeSetPageDevice:   cfg.PostScript.SafeSetPageDevice,
			DSCCompliant:        cfg.PostScript.DSCCompliant,
			JPEGQuality:         cfg.PostScript.JPEGQuality,
			ImageDPI:            cfg.PostScript.VectorImageDPI,
			Creator:             misc.GetAppName() + " " + misc.GetVersion(),
			TempDir:             cfg.PostScript.TempDir,
			Fonts:               j.fonts,
			Images:              j.images,
			Events:              j.events,
		}, log)
	case common.OutputFmtPcl:
		name := cfg.PCL.JobName
		if name == "" {
			name = j.id
		}
		return pcl.NewDocumentHandler(w, pcl.Options{
			Resolution: cfg.PCL.Resolution,
			Quality:    cfg.PCL.Mode,
			Text:       cfg.PCL.TextRendering,
			PJL:        cfg.PCL.PJL,
			JobName:    name,
			Fonts:      j.fonts,
			Images:     j.images,
			Events:     j.events,
		}, log)
	case common.OutputFmtIf:
		return intermediate.NewSerializer(w, intermediate.SerializerOptions{
			OutOfOrder: cfg.Intermediate.PagesOutOfOrder,
			Events:     j.events,
		}, log)
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// drive sends the job document into h, rendering area tree or replaying
// intermediate format.
func drive(ctx context.Context, j *job, h intermediate.DocumentHandler, log *zap.Logger) error {
	switch j.kind {
	case inputAreaTree:
		doc, err := area.ParseXML(j.doc, log)
		if err != nil {
			return err
		}
		r := render.New(h, render.Options{Fonts: j.fonts, Images: j.images, Events: j.events}, log)
		if err := r.Render(ctx, doc); err != nil {
			return err
		}
		log.Debug("Navigation", zap.Stringer("resolver", r.Resolver()))
		return nil
	case inputIntermediate:
		return intermediate.Replay(j.doc, h, log)
	default:
		return fmt.Errorf("unable to render %s input", j.kind)
	}
}

// renderJob writes the job output to w. Handler resources are released
// even when rendering fails.
func renderJob(ctx context.Context, env *state.LocalEnv, j *job, w io.Writer, log *zap.Logger) (err error) {
	h := newHandler(env, j, w, log)
	if c, ok := h.(io.Closer); ok {
		defer func() {
			err = multierr.Append(err, c.Close())
		}()
	}
	return drive(ctx, j, h, log)
}

// traceJob stores readable painter call trace and intermediate format of the
// job in the debug report.
func traceJob(ctx context.Context, env *state.LocalEnv, j *job, name string, log *zap.Logger) {
	if env.Rpt == nil || !env.Cfg.Rendering.Intermediate.Trace {
		return
	}
	quiet := *j
	quiet.events = events.Discard

	trace := new(bytes.Buffer)
	if err := drive(ctx, &quiet, intermediate.NewRecorder(trace), zap.NewNop()); err != nil {
		log.Debug("Unable to trace document", zap.Error(err))
		return
	}
	env.Rpt.StoreData(name+".trace.txt", trace.Bytes())

	if j.kind == inputIntermediate || j.format == common.OutputFmtIf {
		return
	}
	buf := new(bytes.Buffer)
	if err := drive(ctx, &quiet, intermediate.NewSerializer(buf, intermediate.SerializerOptions{}, zap.NewNop()), zap.NewNop()); err != nil {
		log.Debug("Unable to produce intermediate format", zap.Error(err))
		return
	}
	env.Rpt.StoreData(name+".if.xml", buf.Bytes())
}

// summarize logs how many recoverable problems of each kind were reported.
func summarize(c *events.Collector, log *zap.Logger) {
	counts := make(map[string]int)
	for _, e := range c.Events() {
		counts[e.Key]++
	}
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Int(k, counts[k]))
	}
	log.Info("Rendering problems", fields...)
}
