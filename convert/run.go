// Package convert implements the render command: it finds documents under the
// source path, renders them and writes results under the destination.
package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"arender/archive"
	"arender/common"
	"arender/events"
	"arender/images"
	"arender/state"
	"arender/utils/files"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to ps", zap.Error(err))
		format = common.OutputFmtPs
	}
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	overrideRendering(cmd, env, log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)),
			zap.Int("rendered", env.Stats.Rendered), zap.Int("failed", env.Stats.Failed), zap.Int("skipped", env.Stats.Skipped))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// overrideRendering applies command line rendering options on top of the
// configuration.
func overrideRendering(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) {
	if cmd.IsSet("ps-level") {
		if level := cmd.Int("ps-level"); level == 2 || level == 3 {
			env.Cfg.Rendering.PostScript.LanguageLevel = level
		} else {
			log.Warn("Unsupported PostScript language level ignored", zap.Int("level", level))
		}
	}
	if cmd.IsSet("pcl-resolution") {
		if dpi := cmd.Int("pcl-resolution"); dpi == 300 || dpi == 600 {
			env.Cfg.Rendering.PCL.Resolution = dpi
		} else {
			log.Warn("Unsupported PCL resolution ignored", zap.Int("dpi", dpi))
		}
	}
}

// process determines whether src is a directory, an archive (possibly
// followed by path inside it) or a single file and processes it.
func process(ctx context.Context, src, dst string, format common.OutputFmt, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}
		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// may be path inside archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return processDir(ctx, head, dst, format, log)
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", dst, format, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		kind, enc, err := isInputFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if kind == inputUnknown || len(tail) != 0 {
			return fmt.Errorf("input was not recognized as area tree or intermediate format (%s)", head)
		}
		file, err := os.Open(head)
		if err != nil {
			return err
		}
		defer file.Close()
		return processDocument(ctx, selectReader(file, enc), kind, filepath.Base(head), filepath.Dir(head), dst, format, log)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir walks directory tree rendering every recognized document.
// Failures of individual documents are logged and do not stop the walk.
func processDir(ctx context.Context, dir, dst string, format common.OutputFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, format, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		kind, enc, err := isInputFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if kind == inputUnknown {
			log.Debug("Skipping file, not recognized", zap.String("file", path))
			state.EnvFromContext(ctx).Stats.Skipped++
			return nil
		}
		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()
		if err := processDocument(ctx, selectReader(file, enc), kind, rel, filepath.Dir(path), dst, format, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// processArchive renders every recognized document inside archive under
// pathIn. Relative images are looked up next to the archive.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, format common.OutputFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return archive.Walk(path, pathIn, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		kind, enc, err := isInputInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		if kind == inputUnknown {
			log.Debug("Skipping file, not recognized", zap.String("archive", arc), zap.String("file", f.Name))
			state.EnvFromContext(ctx).Stats.Skipped++
			return nil
		}
		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		src := filepath.Join(pathOut, filepath.FromSlash(f.Name))
		if err := processDocument(ctx, selectReader(r, enc), kind, src, filepath.Dir(arc), dst, format, log); err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
}

func readDocument(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	return doc, nil
}

// processDocument renders single document. src is the source path relative
// to what was requested, it is used to name the output. dir is where
// relative image URIs are resolved unless configuration says otherwise.
func processDocument(ctx context.Context, r io.Reader, kind inputKind, src, dir, dst string, format common.OutputFmt, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string
	j := &job{kind: kind, format: format, imageDir: dir, id: uuid.NewString()}

	log.Info("Rendering starting", zap.String("from", src), zap.Stringer("input", kind))
	defer func(start time.Time) {
		// image libraries may panic on broken data, other documents still get rendered
		if r := recover(); r != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else if rerr == nil {
			log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("job", j.id))
		}
		if rerr != nil {
			env.Stats.Failed++
		} else {
			env.Stats.Rendered++
		}
	}(time.Now())

	doc, err := readDocument(r)
	if err != nil {
		return fmt.Errorf("unable to read source (%s): %w", src, err)
	}
	j.doc = doc

	if j.fonts, err = env.PrepareFonts(); err != nil {
		return err
	}
	if env.Cfg.Rendering.Images.BaseDir != "" {
		j.imageDir = env.Cfg.Rendering.Images.BaseDir
	}
	j.images = images.NewRegistry(j.imageDir, env.Cfg.Rendering.Images.DPI, log)
	collector := &events.Collector{}
	j.events = events.Multi{events.NewLogBroadcaster(log), collector}

	outputName = buildOutputPath(describe(doc, kind, src, j.id, format), src, dst, format, env)
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := writeOutput(ctx, env, j, outputName, log); err != nil {
		return fmt.Errorf("unable to render (%s): %w", src, err)
	}
	summarize(collector, log)

	traceJob(ctx, env, j, j.id, log)
	env.Rpt.Store(fmt.Sprintf("result-%s%s", j.id, format.Ext()), outputName)
	return nil
}

// writeOutput renders into outputName, incomplete output is removed.
func writeOutput(ctx context.Context, env *state.LocalEnv, j *job, outputName string, log *zap.Logger) (err error) {
	out, err := os.Create(outputName)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
		if err != nil {
			err = multierr.Append(err, files.Remove(outputName))
		}
	}()
	return renderJob(ctx, env, j, out, log)
}
