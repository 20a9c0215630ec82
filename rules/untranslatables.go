package rules

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
)

// DiscoveryLimit caps how many source segments DiscoverUntranslatables reads.
const DiscoveryLimit = 1000

type termHits struct {
	display string
	locs    [][]int
}

// groupHits groups matches by case-folded form, keeping the first literal
// casing for display.
func groupHits(s string, locs [][]int) (map[string]*termHits, []string) {
	groups := make(map[string]*termHits)
	var order []string
	for _, l := range locs {
		lit := s[l[0]:l[1]]
		key := foldSpaces(strings.ToLower(lit))
		g, ok := groups[key]
		if !ok {
			g = &termHits{display: lit}
			groups[key] = g
			order = append(order, key)
		}
		g.locs = append(g.locs, l)
	}
	return groups, order
}

// foldSpaces maps non-breaking spaces to plain spaces.
func foldSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if isNBSP(r) {
			return ' '
		}
		return r
	}, s)
}

// Untranslatables checks that configured do-not-translate terms appear on
// both sides, the same number of times.
func Untranslatables(src, tgt qa.Segment, s *qa.Settings) []qa.Issue {
	opts := s.Untranslatables
	if !opts.Enabled || len(opts.Terms) == 0 {
		return nil
	}
	p := cachedAlternation(opts.Terms, false)
	if p == nil {
		return nil
	}
	sv, tv := newView(src), newView(tgt)
	srcGroups, srcOrder := groupHits(sv.s, p.FindAll(sv.s))
	tgtGroups, tgtOrder := groupHits(tv.s, p.FindAll(tv.s))

	var issues []qa.Issue
	for _, key := range srcOrder {
		sg := srcGroups[key]
		tg, ok := tgtGroups[key]
		switch {
		case !ok:
			if opts.Scope.IncludesSource() {
				issues = append(issues, qa.NewIssue(qa.SeverityError, qa.CodeUntranslatableMissing,
					i18n.Tf("Untranslatable %q is missing from the target", sg.display)).
					WithSource(sv.hls(sg.locs)...))
			}
		case len(sg.locs) != len(tg.locs) && opts.CheckCount:
			issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeUntranslatableCountMismatch,
				i18n.Tf("Untranslatable %q occurs %d times in the source and %d times in the target",
					sg.display, len(sg.locs), len(tg.locs))).
				WithSource(sv.hls(sg.locs)...).
				WithTarget(tv.hls(tg.locs)...))
		}
	}
	if opts.Scope.IncludesTarget() {
		for _, key := range tgtOrder {
			if _, ok := srcGroups[key]; ok {
				continue
			}
			tg := tgtGroups[key]
			issues = append(issues, qa.NewIssue(qa.SeverityError, qa.CodeUntranslatableUnexpected,
				i18n.Tf("Untranslatable %q appears in the target but not in the source", tg.display)).
				WithTarget(tv.hls(tg.locs)...))
		}
	}
	return issues
}

// Candidate is a token that looks like it should not be translated.
type Candidate struct {
	Term  string `yaml:"term" json:"term"`
	Count int    `yaml:"count" json:"count"`
}

var (
	joinedTokenRe = regexp.MustCompile(`[\p{L}\p{N}]+(?:[-_][\p{L}\p{N}]+)+`)
	plainTokenRe  = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// DiscoverUntranslatables proposes untranslatable terms from up to the
// first DiscoveryLimit source segments: hyphen or underscore joined tokens,
// mixed-case tokens and all-caps tokens. Terms already in known are left
// out. Candidates are returned by descending frequency.
func DiscoverUntranslatables(sources []string, known []string) []Candidate {
	if len(sources) > DiscoveryLimit {
		sources = sources[:DiscoveryLimit]
	}
	skip := make(map[string]bool, len(known))
	for _, k := range known {
		skip[strings.ToLower(k)] = true
	}

	counts := make(map[string]int)
	var order []string
	add := func(tok string) {
		if skip[strings.ToLower(tok)] {
			return
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	for _, text := range sources {
		clean := newView(qa.Segment{Text: text}).s
		joined := joinedTokenRe.FindAllStringIndex(clean, -1)
		for _, l := range joined {
			tok := clean[l[0]:l[1]]
			if strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
				add(tok)
			}
		}
		for _, l := range plainTokenRe.FindAllStringIndex(clean, -1) {
			if inside(l, joined) {
				continue
			}
			if tok := clean[l[0]:l[1]]; mixedCase(tok) || allCaps(tok) {
				add(tok)
			}
		}
	}

	out := make([]Candidate, 0, len(order))
	for _, t := range order {
		out = append(out, Candidate{Term: t, Count: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func inside(l []int, spans [][]int) bool {
	for _, s := range spans {
		if l[0] >= s[0] && l[1] <= s[1] {
			return true
		}
	}
	return false
}

// mixedCase reports an uppercase letter after the first rune, with at least
// one lowercase letter somewhere ("iPhone", "JavaScript").
func mixedCase(tok string) bool {
	hasLower, innerUpper := false, false
	for i, r := range tok {
		if unicode.IsLower(r) {
			hasLower = true
		}
		if i > 0 && unicode.IsUpper(r) {
			innerUpper = true
		}
	}
	return hasLower && innerUpper
}

// allCaps reports two or more letters, all uppercase ("API", "USB3").
func allCaps(tok string) bool {
	letters := 0
	for _, r := range tok {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}
