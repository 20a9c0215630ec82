package rules

import (
	"strings"
	"unicode"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
)

const (
	wordRe = `[\p{L}\p{M}\p{N}]+`
	urlRe  = `(?:https?|ftp)://[^\s<>"'«»]+|www\.[^\s<>"'«»]+`
)

// Misc runs the repeated-word, URL and mixed-script checks.
func Misc(src, tgt qa.Segment, s *qa.Settings) []qa.Issue {
	opts := s.Misc
	sv, tv := newView(src), newView(tgt)
	var issues []qa.Issue
	if opts.RepeatedWords {
		issues = append(issues, repeatedWords(sv, tv)...)
	}
	if opts.URLs {
		if iss, ok := urls(sv, tv); ok {
			issues = append(issues, iss)
		}
	}
	if opts.MixedScript {
		if iss, ok := mixedScript(tv); ok {
			issues = append(issues, iss)
		}
	}
	return issues
}

// repeatedWords flags a word immediately repeated ("the the") unless the
// source repeats the same word too.
func repeatedWords(src, tgt view) []qa.Issue {
	srcRepeats := make(map[string]bool)
	eachRepeat(src.s, func(word string, _, _ int) { srcRepeats[word] = true })

	var issues []qa.Issue
	eachRepeat(tgt.s, func(word string, start, end int) {
		if srcRepeats[word] {
			return
		}
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeRepeatedWord,
			i18n.Tf("Repeated word %q", tgt.s[start:end])).WithTarget(tgt.hl(start, end)))
	})
	return issues
}

// eachRepeat calls fn with the case-folded word and the byte range of its
// second occurrence for every word separated from an identical one by
// whitespace only. Numbers are not words here.
func eachRepeat(s string, fn func(word string, start, end int)) {
	locs := cachedRegexp(wordRe).FindAllStringIndex(s, -1)
	for i := 1; i < len(locs); i++ {
		prev, cur := locs[i-1], locs[i]
		if strings.TrimFunc(s[prev[1]:cur[0]], isSpace) != "" || s[prev[1]:cur[0]] == "" {
			continue
		}
		a, b := strings.ToLower(s[prev[0]:prev[1]]), strings.ToLower(s[cur[0]:cur[1]])
		if a != b || strings.IndexFunc(a, unicode.IsLetter) < 0 {
			continue
		}
		fn(a, cur[0], cur[1])
	}
}

func findURLs(s string) [][]int {
	var out [][]int
	for _, l := range cachedRegexp(urlRe).FindAllStringIndex(s, -1) {
		end := l[1]
		for end > l[0] && strings.ContainsRune(".,;:!?)]}", rune(s[end-1])) {
			end--
		}
		out = append(out, []int{l[0], end})
	}
	return out
}

// urls checks that every source URL appears verbatim in the target.
func urls(src, tgt view) (qa.Issue, bool) {
	tgtCount := make(map[string]int)
	for _, l := range findURLs(tgt.s) {
		tgtCount[tgt.s[l[0]:l[1]]]++
	}
	var (
		missing []string
		locs    [][]int
	)
	for _, l := range findURLs(src.s) {
		u := src.s[l[0]:l[1]]
		if tgtCount[u] > 0 {
			tgtCount[u]--
			continue
		}
		missing = appendUnique(missing, u)
		locs = append(locs, l)
	}
	if len(missing) == 0 {
		return qa.Issue{}, false
	}
	return qa.NewIssue(qa.SeverityError, qa.CodeURLMismatch,
		i18n.Tf("URL missing or changed in the target: %s", strings.Join(missing, ", "))).
		WithSource(src.hls(locs)...), true
}

var confusableScripts = []*unicode.RangeTable{unicode.Latin, unicode.Cyrillic, unicode.Greek}

// mixedScript flags words mixing Latin, Cyrillic and Greek letters, which
// usually means a look-alike letter was typed from the wrong keyboard.
func mixedScript(tgt view) (qa.Issue, bool) {
	var (
		words []string
		locs  [][]int
	)
	for _, l := range cachedRegexp(wordRe).FindAllStringIndex(tgt.s, -1) {
		w := tgt.s[l[0]:l[1]]
		seen := 0
		for _, table := range confusableScripts {
			if strings.IndexFunc(w, func(r rune) bool { return unicode.Is(table, r) }) >= 0 {
				seen++
			}
		}
		if seen > 1 {
			words = appendUnique(words, w)
			locs = append(locs, l)
		}
	}
	if len(locs) == 0 {
		return qa.Issue{}, false
	}
	return qa.NewIssue(qa.SeverityWarning, qa.CodeMixedScript,
		i18n.Tf("Word mixes alphabets: %s", quoteList(words))).
		WithTarget(tgt.hls(locs)...), true
}
