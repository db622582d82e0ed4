package gitignore

import (
	"bytes"
	"strings"
)

// normalizePath prepares a query path for matching. Matchers expect forward
// slashes and a leading separator, regardless of the platform the path came
// from.
//
// Normalization never fails: the empty string, bare separators, and other
// degenerate inputs all map to some normalized form.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// pathProbes returns the candidate strings a matcher is tested against: the
// normalized path itself and, when the path does not already end in a
// separator, the path as a directory. Directory-only matchers end in an
// explicit separator and could otherwise never claim the bare directory
// name, which rules like "foo/" must deny. For every other matcher the
// second probe is equivalent to the first, so both polarities see the same
// candidates and match lengths stay comparable.
func pathProbes(p string) []string {
	if strings.HasSuffix(p, "/") {
		return []string{p}
	}
	return []string{p, p + "/"}
}

// normalizeContent normalizes raw ignore-file content before line splitting.
//
// Steps, in order:
//  1. Strip UTF-8 BOMs (EF BB BF); loops so repeated application is a no-op
//  2. CRLF to LF
//  3. Standalone CR to LF
func normalizeContent(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	for len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))

	return content
}
