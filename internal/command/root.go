// Package command defines the CLI surface.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keyboardsamurai/srcexport/internal/app"
	"github.com/keyboardsamurai/srcexport/internal/config"
)

// version is injected at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "srcexport [flags] [root]",
		Short: "Export a source tree to a single stream, honoring ignore rules",
		Long: `srcexport walks a directory tree, evaluates gitignore-style rule
files in every directory, and writes the surviving files to stdout or
a file in plain, JSON, or Markdown form.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}

			cfg := config.FromViper(v)
			if len(args) == 1 {
				cfg.RootDir = args[0]
			}
			if cfg.JSONOutput && cfg.MarkdownOutput {
				return fmt.Errorf("--json and --markdown are mutually exclusive")
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (YAML, TOML, or JSON)")
	flags.String("root", ".", "directory to export")
	flags.String("rule-file", ".gitignore", "name of the per-directory rule file")
	flags.StringSlice("include", nil, "root-relative files to export even when ignored")
	flags.StringSlice("ext", nil, "only export files with these extensions")
	flags.Int("max-size", 10, "skip files larger than this many megabytes (0 disables)")
	flags.Int("workers", 4, "number of file readers")
	flags.Bool("sequential", false, "process files one at a time")
	flags.StringP("output", "o", "", "write output to a file instead of stdout")
	flags.Bool("json", false, "emit a JSON document")
	flags.Bool("markdown", false, "emit Markdown code blocks")
	flags.Duration("timeout", 0, "abort the run after this duration")
	flags.Bool("show-skipped", false, "list skipped entries after the run")
	flags.Bool("progress", false, "report progress on stderr during the walk")
	flags.Bool("watch", false, "keep watching rule files for the run's duration")
	flags.Bool("no-rules", false, "export everything, ignoring all rule files")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Bool("no-color", false, "disable colored output")

	config.SetDefaults(v)
	cobra.CheckErr(v.BindPFlags(flags))
	v.SetEnvPrefix("SRCEXPORT")
	// Hyphenated keys map to underscored variables: SRCEXPORT_RULE_FILE.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

// Execute runs the CLI with the given base context.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
