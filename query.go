package gitignore

import "regexp"

// Decision is the full outcome of evaluating one path against a RuleSet.
type Decision struct {
	// Path is the normalized form of the queried path.
	Path string

	// Excluded reports whether any exclusion rule matched.
	Excluded bool

	// Reincluded reports whether any "!" rule matched.
	Reincluded bool

	// ExcludeRule is the source pattern of the longest-matching exclusion
	// rule (empty if none matched), with ExcludeLength the length of its
	// matched substring. Only populated when attribution was computed, which
	// Evaluate always does.
	ExcludeRule   string
	ExcludeLength int

	// ReincludeRule and ReincludeLength mirror the above for the
	// re-inclusion group.
	ReincludeRule   string
	ReincludeLength int

	// Accepted is the final verdict: the path is kept.
	Accepted bool
}

// Denied reports the logical complement of Accepted.
func (d Decision) Denied() bool { return !d.Accepted }

// Inspected reports whether any rule, of either polarity, touched the path.
func (d Decision) Inspected() bool { return d.Excluded || d.Reincluded }

// Diagnostic describes a query whose result differed from the caller's
// expectation. Passed to the DiagnosticFunc configured in Options.
type Diagnostic struct {
	Query    string // "accepts", "denies", or "inspects"
	Expected bool
	Actual   bool
	Decision Decision

	// ExcludeMatcher and ReincludeMatcher are the combined group matchers,
	// nil for an empty group.
	ExcludeMatcher   *regexp.Regexp
	ReincludeMatcher *regexp.Regexp
}

// DiagnosticFunc receives mismatch diagnostics from the *Expected query
// variants. Implementations must treat the Diagnostic as read-only.
type DiagnosticFunc func(Diagnostic)

// Accepts reports whether the path is kept by the rule set: no exclusion
// rule matches it, or a re-inclusion rule wins the longest-match tie-break.
// The path may use either platform separator and an optional leading one.
func (rs *RuleSet) Accepts(path string) bool {
	probes := pathProbes(normalizePath(path))
	reincluded := rs.reincludes.matches(probes)
	excluded := rs.excludes.matches(probes)
	if reincluded && excluded {
		_, lre := rs.reincludes.longest(probes)
		_, lex := rs.excludes.longest(probes)
		return lre >= lex
	}
	return reincluded || !excluded
}

// Denies reports whether the path is excluded. For every path exactly one of
// Accepts and Denies is true.
func (rs *RuleSet) Denies(path string) bool {
	probes := pathProbes(normalizePath(path))
	reincluded := rs.reincludes.matches(probes)
	excluded := rs.excludes.matches(probes)
	if reincluded && excluded {
		_, lre := rs.reincludes.longest(probes)
		_, lex := rs.excludes.longest(probes)
		return lre < lex
	}
	return !reincluded && excluded
}

// Inspects reports whether any rule of either polarity matches the path at
// all. Callers use it to decide whether a nested rule set should be
// consulted in preference to a parent one.
func (rs *RuleSet) Inspects(path string) bool {
	probes := pathProbes(normalizePath(path))
	return rs.reincludes.matches(probes) || rs.excludes.matches(probes)
}

// Evaluate returns the detailed decision for a path, including which rules
// matched and how much of the path each claimed. Useful for debugging rule
// sets; Accepts and Denies are the fast paths.
func (rs *RuleSet) Evaluate(path string) Decision {
	d := Decision{Path: normalizePath(path)}
	probes := pathProbes(d.Path)

	d.Reincluded = rs.reincludes.matches(probes)
	d.Excluded = rs.excludes.matches(probes)
	if d.Reincluded {
		d.ReincludeRule, d.ReincludeLength = rs.reincludes.longest(probes)
	}
	if d.Excluded {
		d.ExcludeRule, d.ExcludeLength = rs.excludes.longest(probes)
	}

	if d.Reincluded && d.Excluded {
		d.Accepted = d.ReincludeLength >= d.ExcludeLength
	} else {
		d.Accepted = d.Reincluded || !d.Excluded
	}
	return d
}

// AcceptsExpected behaves exactly like Accepts, additionally invoking the
// configured Diagnostics hook when the result differs from expected. Intended
// for test-failure investigation; never part of the production decision path.
func (rs *RuleSet) AcceptsExpected(path string, expected bool) bool {
	actual := rs.Accepts(path)
	rs.reportMismatch("accepts", path, expected, actual)
	return actual
}

// DeniesExpected is the Denies counterpart of AcceptsExpected.
func (rs *RuleSet) DeniesExpected(path string, expected bool) bool {
	actual := rs.Denies(path)
	rs.reportMismatch("denies", path, expected, actual)
	return actual
}

// InspectsExpected is the Inspects counterpart of AcceptsExpected.
func (rs *RuleSet) InspectsExpected(path string, expected bool) bool {
	actual := rs.Inspects(path)
	rs.reportMismatch("inspects", path, expected, actual)
	return actual
}

func (rs *RuleSet) reportMismatch(query, path string, expected, actual bool) {
	if rs.diag == nil || expected == actual {
		return
	}
	rs.diag(Diagnostic{
		Query:            query,
		Expected:         expected,
		Actual:           actual,
		Decision:         rs.Evaluate(path),
		ExcludeMatcher:   rs.excludes.combine(),
		ReincludeMatcher: rs.reincludes.combine(),
	})
}
