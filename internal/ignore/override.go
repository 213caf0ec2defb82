package ignore

// explicitIncludes is the always-include override consulted before the
// hierarchical resolver for caller-designated paths.
type explicitIncludes struct {
	set map[string]struct{}
}

// newExplicitIncludes canonicalizes the caller-supplied paths with norm
// and keeps the ones that resolve inside the root.
func newExplicitIncludes(paths []string, norm func(string) (string, bool)) *explicitIncludes {
	e := &explicitIncludes{}
	if len(paths) == 0 {
		return e
	}
	e.set = make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if rel, ok := norm(p); ok {
			e.set[rel] = struct{}{}
		}
	}
	return e
}

// contains reports whether the entry is caller-designated and therefore
// included regardless of any rule. Directories are never overridden: a
// walker may still refuse to descend into an excluded directory even
// when one of its descendants was explicitly chosen.
func (e *explicitIncludes) contains(rel string, isDir bool) bool {
	if isDir || len(e.set) == 0 {
		return false
	}
	_, ok := e.set[rel]
	return ok
}
