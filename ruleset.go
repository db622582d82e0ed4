package gitignore

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// WarningHandler is called for each parse warning if set.
type WarningHandler func(warning ParseWarning)

// Options configures RuleSet construction.
type Options struct {
	// LazyCombine defers building each group's combined alternation matcher
	// until the first query instead of at construction time. Individual
	// matchers are always compiled eagerly so malformed patterns are
	// reported up front.
	LazyCombine bool

	// Diagnostics is invoked by the *Expected query variants when the actual
	// result differs from the expected one. Debug aid only; it never alters
	// a query result. Nil means no-op.
	Diagnostics DiagnosticFunc

	// WarningHandler receives parse warnings as they occur. If nil, warnings
	// are collected on the RuleSet and available via Warnings.
	WarningHandler WarningHandler
}

// ruleGroup is an ordered sequence of compiled matchers sharing a polarity,
// plus the combined matcher equivalent to "any matcher in the sequence
// matches". An empty group matches nothing.
type ruleGroup struct {
	rules    []*matcher
	combined *regexp.Regexp
	once     sync.Once
}

// combine builds (once) and returns the group's combined alternation
// matcher, or nil for an empty group.
func (g *ruleGroup) combine() *regexp.Regexp {
	g.once.Do(func() {
		if len(g.rules) == 0 {
			return
		}
		parts := make([]string, len(g.rules))
		for i, m := range g.rules {
			parts[i] = "(?:" + m.re.String() + ")"
		}
		// Every part compiled on its own, so the alternation compiles too.
		g.combined = regexp.MustCompile(strings.Join(parts, "|"))
	})
	return g.combined
}

// matches reports whether any matcher in the group matches one of the probe
// candidates.
func (g *ruleGroup) matches(probes []string) bool {
	re := g.combine()
	if re == nil {
		return false
	}
	for _, p := range probes {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// longest scans every individual matcher and returns the source pattern and
// matched-substring length of the best match across the probes. Length 0 and
// an empty pattern mean nothing matched.
func (g *ruleGroup) longest(probes []string) (pattern string, length int) {
	for _, m := range g.rules {
		for _, p := range probes {
			loc := m.re.FindStringIndex(p)
			if loc == nil {
				continue
			}
			if n := loc[1] - loc[0]; n > length {
				pattern, length = m.source, n
			}
		}
	}
	return pattern, length
}

// RuleSet holds the compiled form of one ignore file: an exclusion group and
// a re-inclusion group (patterns prefixed with "!").
//
// A RuleSet is immutable once constructed and safe for unlimited concurrent
// queries; all query operations are pure reads.
type RuleSet struct {
	excludes   ruleGroup // rules denying paths
	reincludes ruleGroup // "!" rules keeping paths back
	diag       DiagnosticFunc
	warnings   []ParseWarning
}

// Compile builds a RuleSet from raw ignore-file content with default
// options. Content may use \n, \r\n, or \r line endings and may carry a
// UTF-8 BOM. Parse warnings for malformed patterns are available via
// Warnings; they never abort compilation of the remaining rules.
func Compile(content []byte) *RuleSet {
	return CompileWithOptions(content, Options{})
}

// CompileWithOptions builds a RuleSet from raw ignore-file content.
func CompileWithOptions(content []byte, opts Options) *RuleSet {
	rs := &RuleSet{diag: opts.Diagnostics}

	excludes, reincludes := splitPatternLines(content)
	rs.excludes.rules = rs.compileGroup(excludes, opts.WarningHandler)
	rs.reincludes.rules = rs.compileGroup(reincludes, opts.WarningHandler)

	if !opts.LazyCombine {
		rs.excludes.combine()
		rs.reincludes.combine()
	}
	return rs
}

// rawPattern is one pattern line awaiting compilation.
type rawPattern struct {
	text string
	line int
}

// splitPatternLines normalizes content, drops blanks and comments, and
// partitions the remaining lines by polarity. The leading "!" of a
// re-inclusion line is stripped here; the compiler never sees it.
//
// Each group is sorted lexicographically by raw pattern text. Sorting does
// not change any group's match set; it only fixes which matcher is reported
// as the longest when match lengths tie.
func splitPatternLines(content []byte) (excludes, reincludes []rawPattern) {
	lines := strings.Split(string(normalizeContent(content)), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "!") {
			reincludes = append(reincludes, rawPattern{text: line[1:], line: i + 1})
		} else {
			excludes = append(excludes, rawPattern{text: line, line: i + 1})
		}
	}

	byText := func(ps []rawPattern) func(a, b int) bool {
		return func(a, b int) bool { return ps[a].text < ps[b].text }
	}
	sort.SliceStable(excludes, byText(excludes))
	sort.SliceStable(reincludes, byText(reincludes))
	return excludes, reincludes
}

// compileGroup compiles one polarity's raw patterns, reporting failures as
// warnings and skipping the offending lines.
func (rs *RuleSet) compileGroup(raw []rawPattern, handler WarningHandler) []*matcher {
	rules := make([]*matcher, 0, len(raw))
	for _, p := range raw {
		// A lone "!" leaves nothing to match after stripping.
		if p.text == "" {
			rs.warn(ParseWarning{Pattern: p.text, Message: "pattern is empty", Line: p.line}, handler)
			continue
		}
		m, err := compilePattern(p.text)
		if err != nil {
			rs.warn(ParseWarning{
				Pattern: p.text,
				Message: "cannot compile matcher: " + err.Error(),
				Line:    p.line,
			}, handler)
			continue
		}
		rules = append(rules, m)
	}
	return rules
}

func (rs *RuleSet) warn(w ParseWarning, handler WarningHandler) {
	if handler != nil {
		handler(w)
		return
	}
	rs.warnings = append(rs.warnings, w)
}

// Warnings returns the parse warnings collected during compilation. Empty
// unless some pattern failed to compile and no WarningHandler was set.
func (rs *RuleSet) Warnings() []ParseWarning {
	if len(rs.warnings) == 0 {
		return nil
	}
	out := make([]ParseWarning, len(rs.warnings))
	copy(out, rs.warnings)
	return out
}

// PatternCount returns the number of compiled patterns, both polarities
// included. Useful for debugging and testing.
func (rs *RuleSet) PatternCount() int {
	return len(rs.excludes.rules) + len(rs.reincludes.rules)
}
