package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
	"github.com/minios-linux/qakit/tagcodec"
)

const (
	defaultPartialMinTokens = 4
	defaultPartialOverlap   = 0.7
)

// mathOnlyRe matches text made only of digits, operators and spacing.
const mathOnlyRe = `^[\d\s.,+\-−*/×÷=%()^<>]+$`

// sentenceEndRe matches a run of sentence terminators.
const sentenceEndRe = `[.!?。！？…]+`

// IsTargetEmpty reports whether a target has no visible content and was not
// deliberately left empty.
func IsTargetEmpty(u *qa.Unit) bool {
	return u.Status != qa.StatusEmpty && newView(u.Target).empty()
}

// Omissions checks for empty, untranslated and partially translated targets
// and for a sentence count that differs between the two sides.
func Omissions(u *qa.Unit, s *qa.Settings) []qa.Issue {
	opts := s.Omissions
	src, tgt := newView(u.Source), newView(u.Target)

	if tgt.empty() {
		if opts.EmptyTarget && u.Status != qa.StatusEmpty && !src.empty() {
			return []qa.Issue{qa.NewIssue(qa.SeverityError, qa.CodeEmptyTarget, i18n.T("Empty translation"))}
		}
		return nil
	}

	var issues []qa.Issue
	same := strings.TrimSpace(u.Source.Text) == strings.TrimSpace(u.Target.Text)
	if opts.SameAsSource && same && !exemptFromSameAsSource(u.Source.Text, opts.IgnoreMathOnly) {
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeSameAsSource,
			i18n.T("Translation is identical to the source")).
			WithTarget(qa.Highlight{Start: 0, End: len(u.Target.Text)}))
	}

	if opts.PartialTranslation && !same {
		if iss, ok := partialTranslation(src, tgt, opts); ok {
			issues = append(issues, iss)
		}
	}

	if opts.SentenceCount {
		srcLocs, tgtLocs := sentenceEnds(src.s), sentenceEnds(tgt.s)
		if len(srcLocs) > 0 && len(srcLocs) != len(tgtLocs) {
			issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeSentenceCountMismatch,
				i18n.Tf("Sentence count differs: source has %d, target has %d", len(srcLocs), len(tgtLocs))).
				WithSource(src.hls(srcLocs)...).
				WithTarget(tgt.hls(tgtLocs)...))
		}
	}
	return issues
}

// exemptFromSameAsSource covers sources that legitimately stay unchanged:
// single characters and, optionally, pure arithmetic.
func exemptFromSameAsSource(source string, ignoreMath bool) bool {
	clean := strings.TrimSpace(tagcodec.StripRemove(source))
	if utf8.RuneCountInString(clean) <= 1 {
		return true
	}
	return ignoreMath && cachedRegexp(mathOnlyRe).MatchString(clean)
}

func partialTranslation(src, tgt view, opts qa.OmissionSettings) (qa.Issue, bool) {
	minTokens := opts.PartialMinTokens
	if minTokens <= 0 {
		minTokens = defaultPartialMinTokens
	}
	threshold := opts.PartialOverlap
	if threshold <= 0 || threshold > 1 {
		threshold = defaultPartialOverlap
	}

	srcTokens := wordTokens(src.s)
	if len(srcTokens) < minTokens {
		return qa.Issue{}, false
	}
	inTarget := make(map[string]bool)
	for _, t := range wordTokens(tgt.s) {
		inTarget[strings.ToLower(t)] = true
	}
	shared := 0
	for _, t := range srcTokens {
		if inTarget[strings.ToLower(t)] {
			shared++
		}
	}
	ratio := float64(shared) / float64(len(srcTokens))
	if ratio <= threshold {
		return qa.Issue{}, false
	}
	return qa.NewIssue(qa.SeverityWarning, qa.CodePartialTranslation,
		i18n.Tf("Translation looks partial: %d of %d source words left as is", shared, len(srcTokens))), true
}

// wordTokens splits text into runs of letters and digits.
func wordTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// sentenceEnds returns the terminator runs that close a sentence. A run
// followed by a letter or digit ("e.g", "3.5") does not.
func sentenceEnds(s string) [][]int {
	var out [][]int
	for _, loc := range cachedRegexp(sentenceEndRe).FindAllStringIndex(s, -1) {
		next := runeAt(s, loc[1])
		if loc[1] < len(s) && (unicode.IsLetter(next) || unicode.IsDigit(next)) {
			continue
		}
		out = append(out, loc)
	}
	return out
}
