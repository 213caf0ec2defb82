package ignore

import "errors"

// Sentinel errors for matcher construction and pattern compilation.
var (
	// ErrInvalidPattern indicates a pattern whose matcher could not be
	// compiled.
	ErrInvalidPattern = errors.New("ignore: invalid pattern")
	// ErrInvalidRuleFileName indicates an unusable rule file name, for
	// example one containing a path separator.
	ErrInvalidRuleFileName = errors.New("ignore: invalid rule file name")
)
