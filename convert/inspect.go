package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"arender/area"
	"arender/events"
	"arender/images"
	"arender/intermediate"
	"arender/state"
)

// Inspect prints structure of a single document to standard output: the
// area tree, or with --calls the painter calls rendering it would produce.
// Intermediate format input is always shown as calls.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	kind, enc, err := isInputFile(src)
	if err != nil {
		return fmt.Errorf("unable to check file type: %w", err)
	}
	if kind == inputUnknown {
		return fmt.Errorf("input was not recognized as area tree or intermediate format (%s)", src)
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := readDocument(selectReader(f, enc))
	if err != nil {
		return fmt.Errorf("unable to read source (%s): %w", src, err)
	}

	var out io.Writer = os.Stdout
	if w := cmd.Root().Writer; w != nil {
		out = w
	}
	return inspectDocument(ctx, env, doc, kind, filepath.Dir(src), cmd.Bool("calls"), out, log)
}

func inspectDocument(ctx context.Context, env *state.LocalEnv, doc *etree.Document, kind inputKind, dir string, calls bool, w io.Writer, log *zap.Logger) error {
	if kind == inputAreaTree && !calls {
		d, err := area.ParseXML(doc, log)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, d.String())
		return err
	}

	fonts, err := env.PrepareFonts()
	if err != nil {
		return err
	}
	j := &job{
		doc:    doc,
		kind:   kind,
		fonts:  fonts,
		images: images.NewRegistry(dir, env.Cfg.Rendering.Images.DPI, log),
		events: events.NewLogBroadcaster(log),
	}
	return drive(ctx, j, intermediate.NewRecorder(w), log)
}
