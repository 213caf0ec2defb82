// Package setup wires the configuration into the engine components.
package setup

import (
	"fmt"
	"os"

	"github.com/keyboardsamurai/srcexport/internal/config"
	"github.com/keyboardsamurai/srcexport/internal/ignore"
	"github.com/keyboardsamurai/srcexport/internal/logger"
	"github.com/keyboardsamurai/srcexport/internal/walker"
)

// Configure builds the ignore matcher and the walker options for one
// run.
func Configure(cfg *config.Config, log logger.Logger) (*ignore.Matcher, []walker.Option, error) {
	matcherOpts := []ignore.Option{
		ignore.WithLogger(log),
		ignore.WithRuleFileName(cfg.RuleFile),
	}
	if len(cfg.Includes) > 0 {
		matcherOpts = append(matcherOpts, ignore.WithExplicitIncludes(cfg.Includes))
	}
	if cfg.NoRules {
		matcherOpts = append(matcherOpts, ignore.WithDisabled(true))
	}

	matcher, err := ignore.New(cfg.RootDir, matcherOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("setup: %w", err)
	}

	walkOpts := []walker.Option{walker.WithLogger(log)}
	if !cfg.Sequential && cfg.Workers > 1 {
		walkOpts = append(walkOpts, walker.WithWorkers(cfg.Workers))
	}
	if len(cfg.Extensions) > 0 {
		walkOpts = append(walkOpts, walker.WithExtensions(cfg.Extensions))
	}
	if limit := cfg.MaxFileSizeBytes(); limit > 0 {
		walkOpts = append(walkOpts, walker.WithMaxFileSize(limit))
	}
	if cfg.ShowProgress {
		walkOpts = append(walkOpts, walker.WithProgress(func(p walker.Progress) {
			fmt.Fprintf(os.Stderr, "\r%d files seen, %d exported, %d skipped",
				p.Files, p.Exported, p.Skipped)
		}))
	}

	return matcher, walkOpts, nil
}
