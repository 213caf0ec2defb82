// Package config holds the runtime configuration assembled from
// flags, environment, and an optional config file.
package config

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

// Config is the fully resolved run configuration.
type Config struct {
	RootDir        string
	RuleFile       string
	Includes       []string
	Extensions     []string
	MaxFileSizeMB  int
	Workers        int
	Sequential     bool
	OutputFile     string
	JSONOutput     bool
	MarkdownOutput bool
	Timeout        time.Duration
	ShowSkipped    bool
	ShowProgress   bool
	Watch          bool
	NoRules        bool
	LogLevel       string
	NoColor        bool

	// UseColors is derived, not user-settable.
	UseColors bool
}

// SetDefaults registers every key so env and config-file lookups work
// even when the corresponding flag is absent.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("rule-file", ".gitignore")
	v.SetDefault("include", []string{})
	v.SetDefault("ext", []string{})
	v.SetDefault("max-size", 10)
	v.SetDefault("workers", 4)
	v.SetDefault("sequential", false)
	v.SetDefault("output", "")
	v.SetDefault("json", false)
	v.SetDefault("markdown", false)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("show-skipped", false)
	v.SetDefault("progress", false)
	v.SetDefault("watch", false)
	v.SetDefault("no-rules", false)
	v.SetDefault("log-level", "info")
	v.SetDefault("no-color", false)
}

// FromViper materializes a Config from the resolved settings.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		RootDir:        v.GetString("root"),
		RuleFile:       v.GetString("rule-file"),
		Includes:       v.GetStringSlice("include"),
		Extensions:     v.GetStringSlice("ext"),
		MaxFileSizeMB:  v.GetInt("max-size"),
		Workers:        v.GetInt("workers"),
		Sequential:     v.GetBool("sequential"),
		OutputFile:     v.GetString("output"),
		JSONOutput:     v.GetBool("json"),
		MarkdownOutput: v.GetBool("markdown"),
		Timeout:        v.GetDuration("timeout"),
		ShowSkipped:    v.GetBool("show-skipped"),
		ShowProgress:   v.GetBool("progress"),
		Watch:          v.GetBool("watch"),
		NoRules:        v.GetBool("no-rules"),
		LogLevel:       v.GetString("log-level"),
		NoColor:        v.GetBool("no-color"),
	}

	cfg.UseColors = !cfg.NoColor &&
		cfg.OutputFile == "" &&
		isatty.IsTerminal(os.Stdout.Fd())

	return cfg
}

// MaxFileSizeBytes converts the megabyte limit; zero disables it.
func (c *Config) MaxFileSizeBytes() int64 {
	if c.MaxFileSizeMB <= 0 {
		return 0
	}
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}
