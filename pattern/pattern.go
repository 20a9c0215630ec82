// Package pattern compiles user-supplied and generated search patterns.
//
// RE2 word boundaries only know ASCII, so whole-word matching is done by
// inspecting the runes around each match instead of with \b.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEmpty is returned when compiling an empty expression.
var ErrEmpty = errors.New("empty pattern")

// Options control how an expression is compiled.
type Options struct {
	// Regex treats the expression as a regular expression instead of a literal.
	Regex bool
	// WholeWord requires word boundaries around matches.
	WholeWord bool
	// CaseSensitive disables case folding.
	CaseSensitive bool
}

// Pattern is a compiled expression.
type Pattern struct {
	expr      string
	re        *regexp.Regexp
	wholeWord bool
}

// spaceClass matches a regular, no-break or narrow no-break space.
const spaceClass = `[ \x{00A0}\x{202F}]`

// Compile compiles expr. The error names the expression so callers can log
// it and skip the rule.
func Compile(expr string, opts Options) (*Pattern, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmpty
	}
	src := expr
	if !opts.Regex {
		src = quoteLiteral(expr)
	}
	if !opts.CaseSensitive {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", expr, err)
	}
	return &Pattern{expr: expr, re: re, wholeWord: opts.WholeWord}, nil
}

// Alternation compiles a literal alternation of terms, longest first.
// Empty terms are ignored.
func Alternation(terms []string, opts Options) (*Pattern, error) {
	var parts []string
	seen := make(map[string]bool)
	for _, t := range terms {
		if strings.TrimSpace(t) == "" || seen[t] {
			continue
		}
		seen[t] = true
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return nil, ErrEmpty
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return utf8.RuneCountInString(parts[i]) > utf8.RuneCountInString(parts[j])
	})
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = quoteLiteral(p)
	}
	src := "(?:" + strings.Join(quoted, "|") + ")"
	if !opts.CaseSensitive {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compiling alternation: %w", err)
	}
	return &Pattern{expr: strings.Join(parts, "|"), re: re, wholeWord: opts.WholeWord}, nil
}

// quoteLiteral escapes s and lets its spaces match no-break spaces too.
func quoteLiteral(s string) string {
	fields := strings.Split(s, " ")
	for i, f := range fields {
		fields[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(fields, spaceClass)
}

// String returns the expression the pattern was compiled from.
func (p *Pattern) String() string { return p.expr }

// FindAll returns the byte ranges of all non-overlapping matches.
func (p *Pattern) FindAll(s string) [][]int {
	if !p.wholeWord {
		var out [][]int
		for _, loc := range p.re.FindAllStringIndex(s, -1) {
			if loc[1] > loc[0] {
				out = append(out, loc)
			}
		}
		return out
	}

	var out [][]int
	pos := 0
	for pos <= len(s) {
		loc := p.re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end > start && AtWordBoundary(s, start, end) {
			out = append(out, []int{start, end})
			pos = end
			continue
		}
		if start >= len(s) {
			break
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return out
}

// Match reports whether s contains at least one match.
func (p *Pattern) Match(s string) bool {
	if !p.wholeWord {
		return p.re.MatchString(s)
	}
	return len(p.FindAll(s)) > 0
}

// Count returns the number of matches in s.
func (p *Pattern) Count(s string) int {
	return len(p.FindAll(s))
}

// IsWordRune reports whether r belongs to a word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '_'
}

// AtWordBoundary reports whether s[start:end] is not glued to surrounding
// word characters. An edge that is itself not a word character needs no boundary.
func AtWordBoundary(s string, start, end int) bool {
	if start > 0 {
		first, _ := utf8.DecodeRuneInString(s[start:])
		prev, _ := utf8.DecodeLastRuneInString(s[:start])
		if IsWordRune(first) && IsWordRune(prev) {
			return false
		}
	}
	if end < len(s) {
		last, _ := utf8.DecodeLastRuneInString(s[:end])
		next, _ := utf8.DecodeRuneInString(s[end:])
		if IsWordRune(last) && IsWordRune(next) {
			return false
		}
	}
	return true
}
