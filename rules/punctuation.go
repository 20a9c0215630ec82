package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
	"github.com/minios-linux/qakit/tagcodec"
)

const (
	multipleSpacesRe = `[ \x{00A0}\x{202F}]{2,}`
	// doublePunctRe matches the same mark twice in a row. Ellipses are
	// written as "..." and are left alone.
	doublePunctRe = `,,|;;|::|!!|\?\?|\.\.`
)

// Punctuation runs the spacing, end-punctuation, bracket and spacing-grid
// checks against the target.
func Punctuation(src, tgt qa.Segment, s *qa.Settings) []qa.Issue {
	opts := s.Punctuation
	sv, tv := newView(src), newView(tgt)
	var issues []qa.Issue

	if opts.MultipleSpaces {
		if iss, ok := multipleSpaces(sv, tv, opts.AllowAsInSource); ok {
			issues = append(issues, iss)
		}
	}
	if opts.DoublePunctuation {
		if iss, ok := doublePunctuation(sv, tv, opts.AllowAsInSource); ok {
			issues = append(issues, iss)
		}
	}
	if opts.EndPunctuation {
		if iss, ok := EndPunctuation(src, tgt, opts.EndIgnore); ok {
			issues = append(issues, iss)
		}
	}
	if opts.Brackets {
		pairs := opts.BracketPairs
		if opts.AngleBrackets {
			pairs = append(append([]qa.Pair(nil), pairs...), qa.Pair{Open: "<", Close: ">"})
		}
		issues = append(issues, brackets(sv.s, tv, pairs)...)
	}
	if opts.Spacing {
		issues = append(issues, spacingGrid(tv, opts.SpacingRules)...)
	}
	return issues
}

func multipleSpaces(src, tgt view, allowAsInSource bool) (qa.Issue, bool) {
	re := cachedRegexp(multipleSpacesRe)
	locs := re.FindAllStringIndex(tgt.s, -1)
	if len(locs) == 0 {
		return qa.Issue{}, false
	}
	if allowAsInSource && re.MatchString(src.s) {
		return qa.Issue{}, false
	}
	return qa.NewIssue(qa.SeverityWarning, qa.CodeMultipleSpaces, i18n.T("Multiple consecutive spaces")).
		WithTarget(tgt.hls(locs)...), true
}

func doublePunctuation(src, tgt view, allowAsInSource bool) (qa.Issue, bool) {
	re := cachedRegexp(doublePunctRe)
	var locs [][]int
	for _, loc := range re.FindAllStringIndex(tgt.s, -1) {
		// part of an ellipsis
		if tgt.s[loc[0]] == '.' && (strings.HasPrefix(tgt.s[loc[1]:], ".") || strings.HasSuffix(tgt.s[:loc[0]], ".")) {
			continue
		}
		if allowAsInSource && strings.Contains(src.s, tgt.s[loc[0]:loc[1]]) {
			continue
		}
		locs = append(locs, loc)
	}
	if len(locs) == 0 {
		return qa.Issue{}, false
	}
	return qa.NewIssue(qa.SeverityWarning, qa.CodeDoublePunctuation, i18n.T("Doubled punctuation mark")).
		WithTarget(tgt.hls(locs)...), true
}

// ---------------------------------------------------------------------------
// End punctuation
// ---------------------------------------------------------------------------

// terminalMarks maps the accepted sentence-final glyphs to a common form so
// that a full-width "。" in the target answers a "." in the source.
var terminalMarks = map[rune]string{
	'.': ".", '!': "!", '?': "?", ':': ":", ';': ";", ',': ",",
	'…': ".", '。': ".", '｡': ".", '、': ",", '؟': "?", '՞': "?",
}

func normalizeMark(r rune) (string, bool) {
	if m, ok := terminalMarks[r]; ok {
		return m, true
	}
	narrow := []rune(width.Narrow.String(string(r)))
	if len(narrow) == 1 {
		if m, ok := terminalMarks[narrow[0]]; ok {
			return m, true
		}
	}
	return "", false
}

// endMark finds the last meaningful character of s, skipping whitespace,
// tag placeholders and the characters of ignore. It returns its normalized
// terminal mark (possibly empty) and byte range, or ok=false when s has no
// content at all.
func endMark(s, ignore string) (mark string, start, end int, ok bool) {
	i := len(s)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if r == tagcodec.Placeholder || isSpace(r) || strings.ContainsRune(ignore, r) {
			i -= size
			continue
		}
		mark, _ = normalizeMark(r)
		return mark, i - size, i, true
	}
	return "", 0, 0, false
}

// EndPunctuation compares the final punctuation of both sides. When the
// target has no content the source's terminal position is highlighted.
func EndPunctuation(src, tgt qa.Segment, ignore string) (qa.Issue, bool) {
	sv, tv := newView(src), newView(tgt)
	srcMark, ss, se, srcOK := endMark(sv.s, ignore)
	if !srcOK {
		return qa.Issue{}, false
	}
	tgtMark, ts, te, tgtOK := endMark(tv.s, ignore)
	if srcMark == tgtMark {
		return qa.Issue{}, false
	}

	var iss qa.Issue
	switch {
	case srcMark == "":
		iss = qa.NewIssue(qa.SeverityWarning, qa.CodeEndPunctuation,
			i18n.Tf("Target ends with %q but source has no end punctuation", tgtMark))
	case tgtMark == "":
		iss = qa.NewIssue(qa.SeverityWarning, qa.CodeEndPunctuation,
			i18n.Tf("Missing end punctuation %q", srcMark))
	default:
		iss = qa.NewIssue(qa.SeverityWarning, qa.CodeEndPunctuation,
			i18n.Tf("End punctuation differs: source %q, target %q", srcMark, tgtMark))
	}
	if tgtOK {
		return iss.WithTarget(tv.hl(ts, te)), true
	}
	return iss.WithSource(sv.hl(ss, se)), true
}

// ---------------------------------------------------------------------------
// Brackets
// ---------------------------------------------------------------------------

// pairFinding is one imbalance found by the stack matcher. It is shared by
// the bracket and quote checks.
type pairFinding struct {
	kind  findingKind
	locs  [][]int
	glyph string
}

type findingKind int

const (
	findUnmatchedClose findingKind = iota
	findMismatched
	findUnclosed
)

type opened struct {
	pair  int
	start int
	end   int
}

// matchPairs runs a stack matcher over s. skip reports glyph positions that
// are not delimiters at all (apostrophes inside words). orphanOK reports
// closers that may stand alone without being an error.
func matchPairs(s string, pairs []qa.Pair, skip func(i int, r rune) bool, orphanOK func(r rune) bool) []pairFinding {
	var (
		stack    []opened
		findings []pairFinding
	)
	for i, r := range s {
		if skip != nil && skip(i, r) {
			continue
		}
		g := string(r)
		end := i + utf8.RuneLen(r)

		if n := len(stack); n > 0 && pairs[stack[n-1].pair].Close == g {
			stack = stack[:n-1]
			continue
		}
		if p := pairOpening(pairs, g); p >= 0 {
			stack = append(stack, opened{pair: p, start: i, end: end})
			continue
		}
		if pairClosing(pairs, g) < 0 {
			continue
		}
		if orphanOK != nil && orphanOK(r) {
			continue
		}
		if n := len(stack); n > 0 {
			top := stack[n-1]
			stack = stack[:n-1]
			findings = append(findings, pairFinding{
				kind:  findMismatched,
				locs:  [][]int{{top.start, top.end}, {i, end}},
				glyph: pairs[top.pair].Open + g,
			})
			continue
		}
		findings = append(findings, pairFinding{kind: findUnmatchedClose, locs: [][]int{{i, end}}, glyph: g})
	}
	for _, o := range stack {
		findings = append(findings, pairFinding{kind: findUnclosed, locs: [][]int{{o.start, o.end}}, glyph: pairs[o.pair].Open})
	}
	return findings
}

func pairOpening(pairs []qa.Pair, g string) int {
	for i, p := range pairs {
		if p.Open == g {
			return i
		}
	}
	return -1
}

func pairClosing(pairs []qa.Pair, g string) int {
	for i, p := range pairs {
		if p.Close == g {
			return i
		}
	}
	return -1
}

// brackets checks bracket balance in the target. A source that is itself
// unbalanced disables the check, since the imbalance is then intended.
func brackets(srcStripped string, tgt view, pairs []qa.Pair) []qa.Issue {
	if len(pairs) == 0 || len(matchPairs(srcStripped, pairs, nil, nil)) > 0 {
		return nil
	}
	var issues []qa.Issue
	for _, f := range matchPairs(tgt.s, pairs, nil, nil) {
		var iss qa.Issue
		switch f.kind {
		case findUnmatchedClose:
			iss = qa.NewIssue(qa.SeverityError, qa.CodeBracketUnmatchedClosing,
				i18n.Tf("Closing bracket %q has no opening bracket", f.glyph))
		case findMismatched:
			iss = qa.NewIssue(qa.SeverityError, qa.CodeBracketMismatchedPair,
				i18n.Tf("Mismatched brackets %q", f.glyph))
		default:
			iss = qa.NewIssue(qa.SeverityError, qa.CodeBracketUnclosed,
				i18n.Tf("Bracket %q is never closed", f.glyph))
		}
		issues = append(issues, iss.WithTarget(tgt.hls(f.locs)...))
	}
	return issues
}

// ---------------------------------------------------------------------------
// Spacing grid
// ---------------------------------------------------------------------------

type spacingRule struct {
	code  qa.Code
	chars string
	msg   string
	check func(s string, start, end int) bool // true when the occurrence violates the rule
}

func spacingGrid(tgt view, g qa.SpacingGrid) []qa.Issue {
	rules := []spacingRule{
		{qa.CodeSpaceBefore, g.SpaceBefore, "Missing space before %s", violatesSpaceBefore},
		{qa.CodeNoSpaceBefore, g.NoSpaceBefore, "Unexpected space before %s", violatesNoSpaceBefore},
		{qa.CodeSpaceAfter, g.SpaceAfter, "Missing space after %s", violatesSpaceAfter},
		{qa.CodeNoSpaceAfter, g.NoSpaceAfter, "Unexpected space after %s", violatesNoSpaceAfter},
		{qa.CodeNBSPBefore, g.NBSPBefore, "Expected a non-breaking space before %s", violatesNBSPBefore},
		{qa.CodeNBSPAfter, g.NBSPAfter, "Expected a non-breaking space after %s", violatesNBSPAfter},
	}

	var issues []qa.Issue
	for _, rule := range rules {
		if rule.chars == "" {
			continue
		}
		var (
			chars []string
			locs  [][]int
		)
		for i, r := range tgt.s {
			if !strings.ContainsRune(rule.chars, r) {
				continue
			}
			end := i + utf8.RuneLen(r)
			if betweenDigits(tgt.s, i, end) || !rule.check(tgt.s, i, end) {
				continue
			}
			chars = appendUnique(chars, string(r))
			locs = append(locs, []int{i, end})
		}
		if len(locs) > 0 {
			issues = append(issues, qa.NewIssue(qa.SeverityWarning, rule.code,
				i18n.Tf(rule.msg, quoteList(chars))).WithTarget(tgt.hls(locs)...))
		}
	}
	return issues
}

// betweenDigits exempts separators inside numbers and times ("1,5", "10:30").
func betweenDigits(s string, start, end int) bool {
	return unicode.IsDigit(runeBefore(s, start)) && unicode.IsDigit(runeAt(s, end))
}

// neutral reports runes whose neighbouring spacing is not judged: tag
// placeholders and other punctuation ("?!", "...").
func neutral(r rune) bool {
	return r == tagcodec.Placeholder || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func violatesSpaceBefore(s string, start, _ int) bool {
	if start == 0 {
		return false
	}
	prev := runeBefore(s, start)
	return !isSpace(prev) && !neutral(prev)
}

func violatesNoSpaceBefore(s string, start, _ int) bool {
	if strings.TrimSpace(s[:start]) == "" {
		return false
	}
	return isSpace(runeBefore(s, start))
}

func violatesSpaceAfter(s string, _, end int) bool {
	if end >= len(s) {
		return false
	}
	next := runeAt(s, end)
	return !isSpace(next) && !neutral(next)
}

func violatesNoSpaceAfter(s string, _, end int) bool {
	if strings.TrimSpace(s[end:]) == "" {
		return false
	}
	return isSpace(runeAt(s, end))
}

func violatesNBSPBefore(s string, start, end int) bool {
	if start == 0 {
		return false
	}
	prev := runeBefore(s, start)
	if neutral(prev) || runeAt(s, end) == '/' {
		return false
	}
	return !isNBSP(prev)
}

func violatesNBSPAfter(s string, _, end int) bool {
	if end >= len(s) {
		return false
	}
	next := runeAt(s, end)
	if neutral(next) {
		return false
	}
	return !isNBSP(next)
}
