package ignore

import (
	"github.com/keyboardsamurai/srcexport/internal/logger"
)

// Matcher decides whether paths inside a tree must be excluded from an
// export. It owns the rule cache, the hierarchical resolver and the
// explicit-inclusion override; it holds no ambient global state and
// persists nothing of its own.
//
// A Matcher is safe for concurrent use by multiple traversal workers.
type Matcher struct {
	// root is the absolute directory bounding the ancestor walk.
	root     string
	fileName string
	log      logger.Logger
	disabled bool

	// includePaths collects WithExplicitIncludes input until New
	// normalizes it against the root.
	includePaths []string

	includes *explicitIncludes
	cache    *RuleCache
	resolver *resolver
}

// ChangeOp classifies an external rule-file change notification.
type ChangeOp int

const (
	// OpChanged means the rule file's content changed (or it appeared).
	OpChanged ChangeOp = iota
	// OpDeleted means the rule file was removed.
	OpDeleted
	// OpRenamed means the rule file was moved. Path is the old
	// location; OldPath may carry the other end of the move when known.
	OpRenamed
)

// ChangeEvent is one externally-delivered filesystem notification
// scoped to the configured rule filename.
type ChangeEvent struct {
	Op      ChangeOp
	Path    string
	OldPath string
}
