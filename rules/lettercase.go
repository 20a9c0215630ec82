package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/pattern"
	"github.com/minios-linux/qakit/qa"
)

// midWordRe matches a lowercase run followed by an uppercase letter and more
// lowercase, e.g. "iPhone" or "eMail".
const midWordRe = `\p{Ll}+\p{Lu}\p{Ll}+`

// LetterCase compares the initial capital of both sides, flags camel-cased
// words that the source does not contain, and enforces the exact casing of
// special terms.
func LetterCase(src, tgt qa.Segment, s *qa.Settings) []qa.Issue {
	opts := s.LetterCase
	sv, tv := newView(src), newView(tgt)
	var issues []qa.Issue

	if opts.InitialCapital {
		ref := opts.ReferenceLang
		if ref == "" {
			ref = s.SourceLang
		}
		if iss, ok := initialCapital(sv, tv, langTag(ref), langTag(s.TargetLang)); ok {
			issues = append(issues, iss)
		}
	}
	if opts.MidWord {
		issues = append(issues, midWordCapitals(sv, tv, opts.MidWordAllow)...)
	}
	if opts.SpecialCasing && len(opts.SpecialTerms) > 0 {
		if iss, ok := specialCasing(tv, opts.SpecialTerms); ok {
			issues = append(issues, iss)
		}
	}
	return issues
}

func langTag(lang string) language.Tag {
	if lang == "" {
		return language.English
	}
	return language.Make(lang)
}

// isLatinLetter covers Basic Latin through Latin Extended-B and Latin
// Extended Additional.
func isLatinLetter(r rune) bool {
	if !unicode.IsLetter(r) {
		return false
	}
	return r < 0x0250 || (r >= 0x1E00 && r <= 0x1EFF)
}

// firstLatin returns the byte offset and rune of the first Latin letter.
func firstLatin(s string) (int, rune, bool) {
	for i, r := range s {
		if isLatinLetter(r) {
			return i, r, true
		}
	}
	return 0, 0, false
}

// isUpper uses the locale's casing so letters such as Turkish İ and dotless
// ı resolve the way their language writes them.
func isUpper(r rune, tag language.Tag) bool {
	ch := string(r)
	up := cases.Upper(tag).String(ch)
	low := cases.Lower(tag).String(ch)
	return ch == up && up != low
}

func initialCapital(src, tgt view, srcTag, tgtTag language.Tag) (qa.Issue, bool) {
	si, sr, ok := firstLatin(src.s)
	if !ok {
		return qa.Issue{}, false
	}
	ti, tr, ok := firstLatin(tgt.s)
	if !ok {
		return qa.Issue{}, false
	}
	srcUpper, tgtUpper := isUpper(sr, srcTag), isUpper(tr, tgtTag)
	if srcUpper == tgtUpper {
		return qa.Issue{}, false
	}

	msg := i18n.T("Target starts with a lowercase letter but source is capitalized")
	if tgtUpper {
		msg = i18n.T("Target starts with a capital letter but source does not")
	}
	return qa.NewIssue(qa.SeverityWarning, qa.CodeInitialCapitalization, msg).
		WithSource(src.hl(si, si+utf8.RuneLen(sr))).
		WithTarget(tgt.hl(ti, ti+utf8.RuneLen(tr))), true
}

func midWordCapitals(src, tgt view, allow []string) []qa.Issue {
	var issues []qa.Issue
	for _, loc := range cachedRegexp(midWordRe).FindAllStringIndex(tgt.s, -1) {
		if !pattern.AtWordBoundary(tgt.s, loc[0], loc[1]) {
			continue
		}
		word := tgt.s[loc[0]:loc[1]]
		if allowed(word, allow) || strings.Contains(src.s, word) {
			continue
		}
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeMidWordCapitalization,
			i18n.Tf("Unexpected capital letter inside %q", word)).
			WithTarget(tgt.hl(loc[0], loc[1])))
	}
	return issues
}

func allowed(word string, allow []string) bool {
	for _, a := range allow {
		if a == word {
			return true
		}
	}
	return false
}

// specialCasing reports every occurrence of a special term written with a
// different casing, consolidated into one issue.
func specialCasing(tgt view, terms []string) (qa.Issue, bool) {
	var (
		offending  []string
		highlights []qa.Highlight
	)
	for _, term := range terms {
		p := cachedAlternation([]string{term}, false)
		if p == nil {
			continue
		}
		for _, loc := range p.FindAll(tgt.s) {
			if tgt.s[loc[0]:loc[1]] == term {
				continue
			}
			offending = appendUnique(offending, term)
			highlights = append(highlights, tgt.hl(loc[0], loc[1]))
		}
	}
	if len(offending) == 0 {
		return qa.Issue{}, false
	}
	return qa.NewIssue(qa.SeverityWarning, qa.CodeSpecialCasing,
		i18n.Tf("Incorrect casing, expected %s", quoteList(offending))).
		WithTarget(highlights...), true
}
