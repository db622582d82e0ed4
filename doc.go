// Package gitignore compiles ignore-file glob patterns into a path-matching
// decision procedure with gitignore semantics.
//
// Each pattern line is translated into a regular expression reproducing the
// ignore-file dialect (negation, rooting, directory-only patterns, "**" in
// its three positions, character classes, escaping). The compiled RuleSet
// answers three questions per path: is it explicitly denied, is it kept, and
// did any rule touch it at all.
//
// # Basic Usage
//
//	rs := gitignore.Compile([]byte("*.log\nbuild/\n!important.log\n"))
//
//	rs.Denies("debug.log")       // true
//	rs.Accepts("important.log")  // true
//	rs.Inspects("src/main.go")   // false: no rule touched it
//
// # Decision Procedure
//
// Patterns without a leading "!" form the exclusion group; patterns with one
// form the re-inclusion group. A path matched only by exclusions is denied;
// a path matched by neither group is accepted. When rules of both polarities
// match the same path, the rule whose matched substring is longest wins,
// with re-inclusion winning exact ties. This "longest match wins" precedence
// lets a short re-inclusion pull a file back out of a broad exclusion:
//
//	a/**
//	!a/b
//
// accepts "a/b" even though "a/**" covers it.
//
// # Supported Syntax
//
//   - Plain names: "debug.log" matches at any depth
//   - Leading /: "/debug.log" matches only at the root; a separator anywhere
//     in the pattern roots it the same way
//   - Trailing /: "build/" matches directories and everything beneath them
//   - Single star: "*.log", non-separator wildcard
//   - Double star: "**/logs", "a/**/b", "a/**"
//   - Single char: "?"
//   - Character classes: "[a-z]", passed through to the matcher verbatim
//   - Negation: "!important.log" re-includes a file
//
// Malformed patterns (for example broken character classes) never abort
// compilation; they are skipped and reported as ParseWarnings.
//
// # Thread Safety
//
// A RuleSet is immutable after construction. All queries are pure reads and
// safe for unlimited concurrent use without locking.
//
// # Path Normalization
//
// Query paths may use either platform separator and an optional leading one;
// they are normalized internally, so rs.Denies(`src\main.go`) works on
// Windows-style input.
package gitignore
