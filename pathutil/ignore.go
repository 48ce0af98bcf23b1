package pathutil

import (
	"regexp"
	"strings"
)

// ignoreRule is one compiled gitignore-style line.
type ignoreRule struct {
	re       *regexp.Regexp
	negate   bool // line started with "!"
	dirOnly  bool // line ended with "/"
	original string
}

// CompiledIgnore is the result of compiling a set of gitignore-style
// pattern lines. It can answer path-match queries in-process and can
// re-render the original pattern lines for handoff to an external scanner.
type CompiledIgnore struct {
	rules    []ignoreRule
	patterns []string // original, non-comment, non-blank lines, in order
}

// CompilePatterns parses gitignore-like lines into a CompiledIgnore.
// Supported syntax: "#" comments, blank lines, "!" negation, a leading "/"
// anchors the pattern to the library root, a trailing "/" restricts the
// match to directories (the pattern then matches only paths inside a
// directory of that name, never a file of that name), "**" matches across
// path segments, "*" and "?" match within a single segment.
func CompilePatterns(lines []string) (*CompiledIgnore, error) {
	ci := &CompiledIgnore{}
	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		negate := false
		pattern := line
		if strings.HasPrefix(pattern, "!") {
			negate = true
			pattern = pattern[1:]
		}
		dirOnly := strings.HasSuffix(pattern, "/")
		pattern = strings.TrimSuffix(pattern, "/")
		anchored := strings.HasPrefix(pattern, "/")
		pattern = strings.TrimPrefix(pattern, "/")

		reSrc := globToRegex(pattern, anchored)
		if dirOnly {
			reSrc = strings.TrimSuffix(reSrc, "(?:/.*)?$") + "/.*$"
		}
		re, err := regexp.Compile(reSrc)
		if err != nil {
			return nil, err
		}
		ci.rules = append(ci.rules, ignoreRule{re: re, negate: negate, dirOnly: dirOnly, original: line})
		ci.patterns = append(ci.patterns, line)
	}
	return ci, nil
}

// globToRegex translates one gitignore glob segment into an anchored Go
// regexp source string matching a POSIX-form relative path.
func globToRegex(pattern string, anchored bool) string {
	var b strings.Builder
	b.WriteString("^")
	if !anchored {
		b.WriteString("(?:.*/)?")
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '*' && i+1 < len(runes) && runes[i+1] == '*':
			// "**" matches zero or more path segments.
			b.WriteString(".*")
			i++
			// Swallow an immediately following slash so "**/x" and "x/**" behave.
			if i+1 < len(runes) && runes[i+1] == '/' {
				i++
			}
		case c == '*':
			b.WriteString("[^/]*")
		case c == '?':
			b.WriteString("[^/]")
		case strings.ContainsRune(`.+()|[]{}^$\`, c):
			b.WriteString(regexp.QuoteMeta(string(c)))
		default:
			b.WriteRune(c)
		}
	}
	b.WriteString("(?:/.*)?$")
	return b.String()
}

// MatchesPath reports whether relPath (POSIX-form, folder-relative)
// should be ignored. Later rules override earlier ones, matching
// gitignore's last-match-wins semantics; a "!" rule un-ignores a path
// that an earlier rule ignored.
func (ci *CompiledIgnore) MatchesPath(relPath string) bool {
	ignored := false
	for _, r := range ci.rules {
		if r.re.MatchString(relPath) {
			ignored = !r.negate
		}
	}
	return ignored
}

// Patterns returns the original pattern lines in compiled order, suitable
// for writing to a temporary file consumed by an external scanner such as
// ripgrep's --ignore-file.
func (ci *CompiledIgnore) Patterns() []string {
	out := make([]string, len(ci.patterns))
	copy(out, ci.patterns)
	return out
}

// Render joins the compiled patterns into a single newline-delimited
// pattern file body.
func (ci *CompiledIgnore) Render() string {
	return strings.Join(ci.patterns, "\n")
}
