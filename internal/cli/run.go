package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/survey"
	"github.com/aretw0/survey/internal/config"
	"github.com/aretw0/survey/internal/presentation/tui"
	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Config config.Config
	JSON   bool
	Plain  bool // no banner, no markdown rendering

	// In and Out default to Stdin and Stdout.
	In  io.Reader
	Out io.Writer
}

// Execute runs one interactive session in the terminal (or over JSON lines)
// and appends the submission to the configured store.
func Execute(ctx context.Context, opts RunOptions, logger *slog.Logger) error {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	cat, err := LoadCatalog(ctx, opts.Config.Catalog)
	if err != nil {
		return err
	}

	storage, err := OpenStorage(opts.Config.Store, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(in, out)
	} else {
		var th []runner.TextHandlerOption
		stdout, isFile := out.(*os.File)
		rich := !opts.Plain && isFile && tui.IsTerminal(stdout)
		if rich {
			tui.PrintBanner(out, cat.Len(), survey.Version)
			th = append(th, runner.WithTextHandlerRenderer(tui.NewRenderer(stdout)))
		}
		handler = runner.NewTextHandler(in, out, th...)
	}

	engineOpts := EngineOptions(storage.Gateway(logger), logger, nil)
	engineOpts = append(engineOpts, survey.WithPresenter(handler))
	eng, err := survey.New(cat, engineOpts...)
	if err != nil {
		return fmt.Errorf("error initializing survey: %w", err)
	}

	session, err := eng.Start(ctx)
	if err != nil {
		return err
	}

	r := runner.NewRunner(runner.WithInputHandler(handler), runner.WithLogger(logger))
	if err := r.Run(ctx, session); err != nil {
		return err
	}

	if session.Status() != domain.StatusCompleted && !opts.JSON {
		fmt.Fprintln(out, "\n>>> Survey abandoned; nothing was saved.")
	}
	return nil
}
