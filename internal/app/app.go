// Package app ties configuration, engine, and output together for a
// single export run.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/keyboardsamurai/srcexport/internal/config"
	"github.com/keyboardsamurai/srcexport/internal/logger"
	"github.com/keyboardsamurai/srcexport/internal/printer"
	"github.com/keyboardsamurai/srcexport/internal/setup"
	"github.com/keyboardsamurai/srcexport/internal/summary"
	"github.com/keyboardsamurai/srcexport/internal/walker"
	"github.com/keyboardsamurai/srcexport/internal/watch"
)

// App is one configured export run.
type App struct {
	cfg     *config.Config
	log     *logger.Leveled
	out     io.Writer
	closers []io.Closer
}

// New prepares the output destination and the logger.
func New(cfg *config.Config) (*App, error) {
	color.NoColor = !cfg.UseColors

	var out io.Writer = os.Stdout
	var closers []io.Closer
	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("app: create output: %w", err)
		}
		out = f
		closers = append(closers, f)
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.LogLevel), cfg.UseColors)

	return &App{cfg: cfg, log: log, out: out, closers: closers}, nil
}

// Run executes the export and blocks until it finishes. In watch mode
// the rule cache stays live for the run's duration, so late rule-file
// edits are picked up without a restart.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	info, err := os.Stat(a.cfg.RootDir)
	if err != nil {
		return fmt.Errorf("app: root %q: %w", a.cfg.RootDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("app: root %q is not a directory", a.cfg.RootDir)
	}

	matcher, walkOpts, err := setup.Configure(a.cfg, a.log)
	if err != nil {
		return err
	}

	if a.cfg.Watch {
		w, err := watch.New(matcher, a.log)
		if err != nil {
			return err
		}
		defer w.Close()
		a.log.Info("watching %s for rule changes", matcher.Root())
	}

	mode := printer.ModePlain
	switch {
	case a.cfg.JSONOutput:
		mode = printer.ModeJSON
	case a.cfg.MarkdownOutput:
		mode = printer.ModeMarkdown
	}
	p := printer.New(a.out, mode)

	start := time.Now()
	skipped, err := walker.Walk(ctx, a.cfg.RootDir, matcher, p.PrintFile, walkOpts...)
	if err != nil {
		return err
	}
	if err := p.Finalize(); err != nil {
		return fmt.Errorf("app: finalize output: %w", err)
	}

	summary.PrintResults(a.log, p.Count(), len(skipped), time.Since(start))
	if a.cfg.ShowSkipped {
		summary.PrintSkipped(os.Stderr, skipped)
	}
	a.log.Debug("rule files parsed: %d", matcher.CacheParses())

	return nil
}

// Close releases the output file, if any.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
