package ignore

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// CompileLine turns one raw rule-file line into a Rule. The boolean is
// false for lines that produce no rule: blank lines, comments, and
// lines left empty after stripping. A non-nil error means the pattern's
// matcher could not be built; callers should skip the line and keep
// parsing the rest of the file.
func CompileLine(line string) (*Rule, bool, error) {
	pat := strings.TrimSuffix(line, "\r")
	if pat == "" || strings.HasPrefix(pat, "#") {
		return nil, false, nil
	}

	r := &Rule{original: line}

	if strings.HasPrefix(pat, "!") {
		r.negated = true
		pat = pat[1:]
	} else if strings.HasPrefix(pat, `\!`) || strings.HasPrefix(pat, `\#`) {
		pat = pat[1:]
	}

	pat = trimTrailingSpace(pat)
	if pat == "" {
		return nil, false, nil
	}

	if strings.HasSuffix(pat, "/") && !strings.HasSuffix(pat, `\/`) {
		r.dirOnly = true
		pat = pat[:len(pat)-1]
	}
	if strings.HasPrefix(pat, "/") {
		r.rooted = true
		pat = pat[1:]
	}
	if pat == "" {
		return nil, false, nil
	}
	r.pattern = pat

	if r.dirOnly {
		r.dirName = path.Base(pat)
	}

	r.literal = !r.dirOnly && !hasGlobMeta(pat) && !strings.Contains(pat, `\`)
	if r.literal {
		return r, true, nil
	}

	// Rootless patterns without a slash match at any depth.
	expanded := pat
	if !r.rooted && !strings.HasPrefix(expanded, "**") && !strings.Contains(expanded, "/") {
		expanded = "**/" + expanded
	}

	anchored := "^" + globToRegex(expanded)
	if r.dirOnly {
		// The directory itself and everything below it.
		anchored += "(?:/.*)?$"
	} else {
		anchored += "$"
	}
	re, err := regexp.Compile(anchored)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, line, err)
	}
	r.strategies = append(r.strategies, structuralStrategy{re: re})

	if !r.rooted && !strings.Contains(pat, "/") {
		if fre, ferr := filenameRegexp(pat); ferr == nil {
			r.strategies = append(r.strategies, basenameStrategy{re: fre})
		}
	}

	return r, true, nil
}

// trimTrailingSpace removes unescaped trailing whitespace. An escaped
// trailing space ("\ ") is kept as a literal space.
func trimTrailingSpace(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			return s[:len(s)-2] + s[len(s)-1:]
		}
		s = s[:len(s)-1]
	}
	return s
}

// hasGlobMeta reports whether the pattern contains glob metacharacters.
func hasGlobMeta(pat string) bool {
	for i := 0; i < len(pat); i++ {
		switch pat[i] {
		case '*', '?':
			return true
		case '[':
			if findCharClassEnd(pat, i) >= 0 {
				return true
			}
		}
	}
	return false
}

// globToRegex converts a glob pattern to a regexp body. "*" matches any
// run excluding the separator, "**" crosses segments, "?" matches one
// non-separator character, "[...]" classes are supported, and a
// backslash escapes the following character.
func globToRegex(pat string) string {
	var b strings.Builder
	for i := 0; i < len(pat); i++ {
		// "**/" matches zero or more whole segments.
		if pat[i] == '*' && i+2 < len(pat) && pat[i+1] == '*' && pat[i+2] == '/' {
			b.WriteString(`(?:.*/)?`)
			i += 2
			continue
		}
		if next, ok := writeCharClass(pat, i, &b); ok {
			i = next
			continue
		}
		switch c := pat[i]; c {
		case '*':
			if i+1 < len(pat) && pat[i+1] == '*' {
				b.WriteString(`.*`)
				i++
				continue
			}
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		case '\\':
			if i+1 < len(pat) {
				b.WriteString(escapeRegexByte(pat[i+1]))
				i++
			} else {
				b.WriteString(`\\`)
			}
		default:
			b.WriteString(escapeRegexByte(c))
		}
	}
	return b.String()
}

// filenameRegexp derives a filename-only regular expression from a
// rootless, slash-free pattern, applied to just the last path segment
// when the structural matcher fails to fire. Escapes follow the set
// ". ( ) + | ^ $ { } [ ] @ %" with "*" -> "[^/]*", "**" -> ".*" and
// "?" -> "[^/]".
func filenameRegexp(pat string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	for i := 0; i < len(pat); i++ {
		switch c := pat[i]; c {
		case '*':
			if i+1 < len(pat) && pat[i+1] == '*' {
				b.WriteString(`.*`)
				i++
			} else {
				b.WriteString(`[^/]*`)
			}
		case '?':
			b.WriteString(`[^/]`)
		case '.', '(', ')', '+', '|', '^', '$', '{', '}', '[', ']', '@', '%':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\\':
			if i+1 < len(pat) {
				b.WriteString(escapeRegexByte(pat[i+1]))
				i++
			}
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('$')
	return regexp.Compile(b.String())
}

// writeCharClass appends a glob character class ("[...]") as a regexp
// class, returning the index of the closing bracket.
func writeCharClass(pat string, start int, b *strings.Builder) (int, bool) {
	if start >= len(pat) || pat[start] != '[' {
		return start, false
	}
	end := findCharClassEnd(pat, start)
	if end < 0 {
		return start, false
	}

	b.WriteByte('[')
	idx := start + 1
	if idx < end && pat[idx] == '!' {
		// Glob class negation "[!x]" maps to regexp "[^x]".
		b.WriteByte('^')
		idx++
	} else if idx < end && pat[idx] == '^' {
		b.WriteString(`\^`)
		idx++
	}
	if idx < end && pat[idx] == ']' {
		// A leading "]" is literal in both notations.
		b.WriteString(`\]`)
		idx++
	}
	for ; idx < end; idx++ {
		if pat[idx] == '\\' {
			b.WriteString(`\\`)
			continue
		}
		b.WriteByte(pat[idx])
	}
	b.WriteByte(']')
	return end, true
}

// findCharClassEnd locates the closing bracket of a glob character
// class, or -1 when the class never closes.
func findCharClassEnd(pat string, start int) int {
	if start >= len(pat) || pat[start] != '[' {
		return -1
	}
	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}
	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}
	for ; idx < len(pat); idx++ {
		if pat[idx] == ']' {
			return idx
		}
	}
	return -1
}

// escapeRegexByte escapes one byte for a regexp source string.
func escapeRegexByte(c byte) string {
	switch c {
	case '.', '+', '(', ')', '|', '{', '}', '[', ']', '^', '$', '\\', '*', '?':
		return `\` + string(c)
	default:
		return string(c)
	}
}
