package rules

import (
	"strings"
	"unicode"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
)

// apostropheLike lists every glyph commonly typed as an apostrophe.
const apostropheLike = "'’‘ʼ`´′"

// Quotes checks apostrophe glyphs and quote pairing in the target.
func Quotes(src, tgt qa.Segment, s *qa.Settings) []qa.Issue {
	opts := s.Quotes
	sv, tv := newView(src), newView(tgt)
	var issues []qa.Issue

	if opts.Apostrophes && opts.AllowedApostrophes != "" {
		if iss, ok := apostrophes(tv, opts.AllowedApostrophes, opts.TargetPairs); ok {
			issues = append(issues, iss)
		}
	}
	if opts.Quotes && len(opts.TargetPairs) > 0 {
		issues = append(issues, quotePairs(sv, tv, opts.SourcePairs, opts.TargetPairs)...)
	}
	return issues
}

// wordInternal reports a glyph with a letter on each side, as in "don't".
func wordInternal(s string, start, end int) bool {
	return unicode.IsLetter(runeBefore(s, start)) && unicode.IsLetter(runeAt(s, end))
}

func isQuoteGlyph(pairs []qa.Pair, g string) bool {
	return pairOpening(pairs, g) >= 0 || pairClosing(pairs, g) >= 0
}

// apostrophes flags apostrophe glyphs outside the allowed set. A glyph counts
// as an apostrophe when it sits inside a word or is not a quote glyph of the
// target language.
func apostrophes(tgt view, allowed string, pairs []qa.Pair) (qa.Issue, bool) {
	var (
		glyphs []string
		locs   [][]int
	)
	for i, r := range tgt.s {
		if !strings.ContainsRune(apostropheLike, r) || strings.ContainsRune(allowed, r) {
			continue
		}
		g := string(r)
		end := i + len(g)
		if !wordInternal(tgt.s, i, end) && isQuoteGlyph(pairs, g) {
			continue
		}
		glyphs = appendUnique(glyphs, g)
		locs = append(locs, []int{i, end})
	}
	if len(locs) == 0 {
		return qa.Issue{}, false
	}
	return qa.NewIssue(qa.SeverityWarning, qa.CodeApostropheNotAllowed,
		i18n.Tf("Apostrophe %s is not used in this language, expected one of %s",
			quoteList(glyphs), quoteList(strings.Split(allowed, "")))).
		WithTarget(tgt.hls(locs)...), true
}

// quotePairs matches quotes in the target when the source balances under the
// source pairs. Apostrophes inside words are never treated as quotes, and a
// stray apostrophe-like closer (the "students’" case) is not an error.
func quotePairs(src, tgt view, srcPairs, tgtPairs []qa.Pair) []qa.Issue {
	skip := func(s string) func(int, rune) bool {
		return func(i int, r rune) bool {
			return strings.ContainsRune(apostropheLike, r) && wordInternal(s, i, i+len(string(r)))
		}
	}
	orphanOK := func(r rune) bool { return strings.ContainsRune(apostropheLike, r) }

	if len(srcPairs) > 0 && len(matchPairs(src.s, srcPairs, skip(src.s), orphanOK)) > 0 {
		return nil
	}

	var issues []qa.Issue
	for _, f := range matchPairs(tgt.s, tgtPairs, skip(tgt.s), orphanOK) {
		var iss qa.Issue
		if f.kind == findUnclosed {
			iss = qa.NewIssue(qa.SeverityWarning, qa.CodeQuoteUnclosed,
				i18n.Tf("Quote %q is never closed", f.glyph))
		} else {
			iss = qa.NewIssue(qa.SeverityWarning, qa.CodeQuoteMismatched,
				i18n.Tf("Mismatched quote %q", f.glyph))
		}
		issues = append(issues, iss.WithTarget(tgt.hls(f.locs)...))
	}
	return issues
}
