package ignore

import "github.com/keyboardsamurai/srcexport/internal/logger"

// Option configures a Matcher at construction time.
type Option func(*Matcher)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(m *Matcher) {
		if log != nil {
			m.log = log
		}
	}
}

// WithRuleFileName sets the per-directory rule file name. An empty
// value keeps the default.
func WithRuleFileName(name string) Option {
	return func(m *Matcher) {
		if name != "" {
			m.fileName = name
		}
	}
}

// WithExplicitIncludes designates file paths (absolute or relative to
// the root) that are always included, bypassing rule evaluation. The
// override never applies to directories.
func WithExplicitIncludes(paths []string) Option {
	return func(m *Matcher) {
		m.includePaths = append(m.includePaths, paths...)
	}
}

// WithDisabled turns the matcher into a pass-through that ignores
// nothing.
func WithDisabled(disabled bool) Option {
	return func(m *Matcher) {
		m.disabled = disabled
	}
}
