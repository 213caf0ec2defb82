package walker

import (
	"strings"

	"github.com/keyboardsamurai/srcexport/internal/logger"
)

// Options configures one Walk invocation.
type Options struct {
	Logger      logger.Logger
	Workers     int
	MaxFileSize int64
	Extensions  map[string]struct{}
	Progress    ProgressFunc
}

// ProgressFunc receives periodic traversal statistics.
type ProgressFunc func(Progress)

// Progress is a snapshot of the walk so far.
type Progress struct {
	Files       int64
	Exported    int64
	Skipped     int64
	Dirs        int64
	SkippedDirs int64
	// Current is the file being processed when the snapshot was taken.
	Current string
}

func defaultOptions() Options {
	return Options{
		Logger:  logger.Noop{},
		Workers: 1,
	}
}

// Option is a functional option for Walk.
type Option func(*Options)

// WithLogger sets the walk logger.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

// WithWorkers sets the number of concurrent file-processing workers.
// Values below 2 keep the walk sequential.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithMaxFileSize caps the size of files read, in bytes. Zero means no
// limit.
func WithMaxFileSize(maxBytes int64) Option {
	return func(o *Options) {
		o.MaxFileSize = maxBytes
	}
}

// WithExtensions restricts the export to files with the given
// extensions (leading dots optional).
func WithExtensions(exts []string) Option {
	return func(o *Options) {
		if len(exts) == 0 {
			return
		}
		m := make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			m[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
		}
		o.Extensions = m
	}
}

// WithProgress registers a periodic progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}
