package ignore

import (
	"bufio"
	"io"

	"github.com/keyboardsamurai/srcexport/internal/logger"
)

// RuleFile is the ordered set of rules parsed from one rule file. It is
// immutable; edits to the underlying file replace the whole value
// through the cache, never mutate it in place.
type RuleFile struct {
	source string
	rules  []Rule
}

// ParseRuleFile parses one rule file's contents. Lines that fail to
// compile are skipped, so a single bad pattern never discards the rest
// of the file.
func ParseRuleFile(source string, r io.Reader, log logger.Logger) *RuleFile {
	rf := &RuleFile{source: source}
	s := bufio.NewScanner(r)
	lineNo := 0
	for s.Scan() {
		lineNo++
		rule, ok, err := CompileLine(s.Text())
		if err != nil {
			log.Warn("ignore: %s:%d: skipping pattern: %v", source, lineNo, err)
			continue
		}
		if ok {
			rf.rules = append(rf.rules, *rule)
		}
	}
	if err := s.Err(); err != nil {
		// Keep whatever parsed; a truncated rule file still contributes.
		log.Warn("ignore: %s: read aborted: %v", source, err)
	}
	return rf
}

// Source returns the path the rule file was parsed from.
func (f *RuleFile) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Len returns the number of compiled rules.
func (f *RuleFile) Len() int {
	if f == nil {
		return 0
	}
	return len(f.rules)
}

// Evaluate checks rel (relative to the rule file's own directory)
// against the file's rules. Later lines take precedence, so iteration
// runs in reverse declaration order and the first rule with an opinion
// wins. A file with no matching rule contributes NoMatch.
func (f *RuleFile) Evaluate(rel string, isDir bool) MatchResult {
	if f == nil {
		return NoMatch
	}
	for i := len(f.rules) - 1; i >= 0; i-- {
		if res := f.rules[i].Match(rel, isDir); res != NoMatch {
			return res
		}
	}
	return NoMatch
}
