// Package rules implements the per-unit validators.
//
// Every validator is a pure function of its inputs: it reads the source and
// target segments and the settings, and returns its own issue list. Nothing
// here mutates a unit. Validators work on tag-stripped text and map every
// highlight back to the original text before returning it.
package rules

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/minios-linux/qakit/pattern"
	"github.com/minios-linux/qakit/qa"
	"github.com/minios-linux/qakit/tagcodec"
)

// view is a segment seen through the tag codec.
type view struct {
	orig string
	s    string
}

func newView(seg qa.Segment) view {
	return view{orig: seg.Text, s: tagcodec.Strip(seg.Text)}
}

// hl maps a stripped [start, end) range to a highlight in the original text.
func (v view) hl(start, end int) qa.Highlight {
	a, b := tagcodec.MapToOriginal(start, end-start, v.orig)
	return qa.Highlight{Start: a, End: b}
}

// hls maps many stripped ranges.
func (v view) hls(locs [][]int) []qa.Highlight {
	out := make([]qa.Highlight, 0, len(locs))
	for _, l := range locs {
		out = append(out, v.hl(l[0], l[1]))
	}
	return out
}

// empty reports whether the segment has no visible content.
func (v view) empty() bool {
	return strings.TrimSpace(tagcodec.StripRemove(v.orig)) == ""
}

// ---------------------------------------------------------------------------
// Compiled pattern cache
// ---------------------------------------------------------------------------

// Generated patterns depend only on settings, which rarely change between
// units, so they are compiled once per distinct source.
var (
	reCache  sync.Map // string -> compiled
	patCache sync.Map // string -> *pattern.Pattern
)

// compiled is a cache entry; err is kept so a bad pattern is not retried.
type compiled struct {
	re  *regexp.Regexp
	err error
}

// compileCached compiles a pattern built from settings. A failure disables
// whatever check uses the pattern instead of aborting the batch.
func compileCached(src string) (*regexp.Regexp, error) {
	if c, ok := reCache.Load(src); ok {
		e := c.(compiled)
		return e.re, e.err
	}
	re, err := regexp.Compile(src)
	reCache.Store(src, compiled{re: re, err: err})
	return re, err
}

// cachedRegexp compiles a pattern whose source is fixed in this package.
func cachedRegexp(src string) *regexp.Regexp {
	re, err := compileCached(src)
	if err != nil {
		panic(err)
	}
	return re
}

// charClass returns the distinct runes of chars escaped for use inside a
// bracket expression. regexp.QuoteMeta leaves '-' alone, which would turn
// "a-b" into a range.
func charClass(chars string) string {
	var b strings.Builder
	seen := make(map[rune]bool)
	for _, r := range chars {
		if seen[r] {
			continue
		}
		seen[r] = true
		switch r {
		case '\\', ']', '[', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// cachedAlternation compiles a whole-word, case-insensitive alternation of
// terms. It returns nil when no usable term is given.
func cachedAlternation(terms []string, caseSensitive bool) *pattern.Pattern {
	key := strings.Join(terms, "\x00")
	if caseSensitive {
		key = "cs\x00" + key
	}
	if p, ok := patCache.Load(key); ok {
		return p.(*pattern.Pattern)
	}
	p, err := pattern.Alternation(terms, pattern.Options{WholeWord: true, CaseSensitive: caseSensitive})
	if err != nil {
		return nil
	}
	patCache.Store(key, p)
	return p
}

// ---------------------------------------------------------------------------
// Character helpers
// ---------------------------------------------------------------------------

const (
	nbsp       = '\u00a0'
	narrowNBSP = '\u202f'
)

// spaceChars are the separators accepted between a number and its unit.
const spaceChars = ` \x{00A0}\x{202F}`

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == narrowNBSP
}

func isNBSP(r rune) bool {
	return r == nbsp || r == narrowNBSP
}

// runeBefore returns the rune ending at byte offset i, or utf8.RuneError.
func runeBefore(s string, i int) rune {
	if i <= 0 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r
}

// runeAt returns the rune starting at byte offset i, or utf8.RuneError.
func runeAt(s string, i int) rune {
	if i >= len(s) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

// quoteList formats values as a comma-separated list of quoted strings.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	return strings.Join(quoted, ", ")
}

// appendUnique appends v unless already present.
func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
