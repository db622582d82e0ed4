package gitignore

import (
	"regexp"
	"strings"
)

// ParseWarning reports a pattern line that could not be turned into a valid
// matcher. Such lines are skipped; the rest of the rule set still compiles.
type ParseWarning struct {
	Pattern string // the problematic pattern text (after ! stripping)
	Message string // human-readable description
	Line    int    // line number in the source text (1-indexed)
}

// matcher is one compiled pattern line: a regular expression over normalized
// paths plus the flags extracted while translating it.
type matcher struct {
	source  string // original pattern text, for attribution and diagnostics
	re      *regexp.Regexp
	rooted  bool // pattern is anchored to the rule set root
	dirOnly bool // pattern claims directories (and their contents) only
}

// classChunk splits a pattern into the text before a character class and the
// class itself. Escaped characters (including \[ and \]) never open or close
// a class.
var classChunk = regexp.MustCompile(`^((?:[^\[\\]|\\.)*)(\[(?:[^\]\\]|\\.)*\])`)

// literalSpecials are the bytes escaped when emitting literal pattern text
// into a regular expression. Glob metacharacters (*, ?) are deliberately
// absent: they are rewritten, not escaped.
const literalSpecials = `-[]{}()+.\^$|`

// compilePattern translates a single pattern line into a matcher. The caller
// has already trimmed the line and stripped a leading "!"; polarity is the
// caller's concern.
//
// Translation follows the gitignore dialect: a leading "/" roots the pattern,
// a trailing "/" restricts it to directories, "[...]" classes pass through
// verbatim, and the glob metacharacters are rewritten into regexp syntax with
// "**" handled specially in its three positions. A "/" anywhere in the
// non-class text also roots the pattern, since a mid-pattern separator
// anchors it to its directory level.
func compilePattern(line string) (*matcher, error) {
	m := &matcher{source: line}

	body := line
	if strings.HasPrefix(body, "/") {
		m.rooted = true
		body = body[1:]
	}
	if strings.HasSuffix(body, "/") {
		m.dirOnly = true
		body = body[:len(body)-1]
	}

	var b strings.Builder
	for {
		groups := classChunk.FindStringSubmatch(body)
		if groups == nil {
			break
		}
		if strings.Contains(groups[1], "/") {
			m.rooted = true
		}
		transpileChunk(groups[1], &b, &m.dirOnly)
		// Class contents are assumed to already be valid regexp class syntax.
		// Malformed classes surface as a compile error below.
		b.WriteString(groups[2])
		body = body[len(groups[0]):]
	}
	if body != "" {
		if strings.Contains(body, "/") {
			m.rooted = true
		}
		transpileChunk(body, &b, &m.dirOnly)
	}

	expr := b.String()
	if m.rooted {
		expr = `^\/` + expr
	} else {
		expr = `\/` + expr
	}
	if m.dirOnly {
		expr += `\/`
	} else {
		expr += `(?:$|\/)`
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	m.re = re
	return m, nil
}

// transpileChunk appends the regexp translation of one class-free pattern
// chunk to b. dirOnly is raised when the chunk ends in "/**", because "a/**"
// must claim the directory "a" itself as well as everything beneath it.
//
// The chunk is first unescaped, then rewritten in a single left-to-right
// scan. The scan checks rewrites in fixed precedence ("/**/" before a final
// "/**" before "**", and so on); because each rewrite's output goes straight
// to the builder, no rewrite can ever re-process another's output.
func transpileChunk(chunk string, b *strings.Builder, dirOnly *bool) {
	chunk = unescape(chunk)

	for i := 0; i < len(chunk); {
		rest := chunk[i:]
		switch {
		case strings.HasPrefix(rest, "/**/"):
			// Exactly one "/", or one-or-more intermediate levels.
			b.WriteString(`(?:\/|\/.+\/)`)
			i += 4
		case i == 0 && strings.HasPrefix(rest, "**/"):
			// Chunk-initial "**/": match here or at any depth below.
			b.WriteString(`(?:|.+\/)`)
			i += 3
		case rest == "/**":
			*dirOnly = true
			b.WriteString(`(?:|\/.+)`)
			i += 3
		case strings.HasPrefix(rest, "**"):
			b.WriteString(`.*`)
			i += 2
		case chunk[i] == '/' && i+1 < len(chunk) && chunk[i+1] == '*' &&
			(i+2 == len(chunk) || chunk[i+2] == '/'):
			// "/*" closing the chunk or a path segment: exactly one
			// non-empty component, so "a/*" matches "a/b" but never "a".
			if i+2 == len(chunk) {
				b.WriteString(`\/[^/]+`)
				i += 2
			} else {
				b.WriteString(`\/[^/]+\/`)
				i += 3
			}
		case chunk[i] == '*':
			b.WriteString(`[^/]*`)
			i++
		case chunk[i] == '?':
			b.WriteString(`[^/]`)
			i++
		case chunk[i] == '/':
			b.WriteString(`\/`)
			i++
		default:
			writeLiteral(b, chunk[i])
			i++
		}
	}
}

// unescape resolves backslash escapes, leaving the escaped character bare.
// A lone trailing backslash is kept as-is. Unescaping happens before the
// wildcard rewrites, so "\*" ends up behaving like "*", a quirk of the
// dialect this library reproduces.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// writeLiteral emits one literal pattern byte, escaped if regexp treats it
// specially.
func writeLiteral(b *strings.Builder, c byte) {
	if strings.IndexByte(literalSpecials, c) >= 0 {
		b.WriteByte('\\')
	}
	b.WriteByte(c)
}
