package rules

import (
	"fmt"
	"strings"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/pattern"
	"github.com/minios-linux/qakit/qa"
)

// ForbiddenWord is one compiled forbidden-word expression.
type ForbiddenWord struct {
	Expr string
	p    *pattern.Pattern
}

// userAnchored reports an expression that already places its own anchors
// or word boundaries.
func userAnchored(expr string) bool {
	return strings.ContainsAny(expr, "^$") || strings.Contains(expr, `\b`) || strings.Contains(expr, `\B`)
}

// CompileForbiddenWords compiles each expression on its own. A bad
// expression is reported in errs and left out; the others still compile.
func CompileForbiddenWords(exprs []string) (words []ForbiddenWord, errs []error) {
	for _, expr := range exprs {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		p, err := pattern.Compile(expr, pattern.Options{Regex: true, WholeWord: !userAnchored(expr)})
		if err != nil {
			errs = append(errs, fmt.Errorf("forbidden word: %w", err))
			continue
		}
		words = append(words, ForbiddenWord{Expr: expr, p: p})
	}
	return words, errs
}

// ForbiddenWords reports every expression matching the target. With
// allowIfInSource, an expression that also matches the source is skipped.
// Expressions never affect one another.
func ForbiddenWords(src, tgt qa.Segment, words []ForbiddenWord, allowIfInSource bool) []qa.Issue {
	if len(words) == 0 {
		return nil
	}
	sv, tv := newView(src), newView(tgt)
	var issues []qa.Issue
	for _, w := range words {
		locs := w.p.FindAll(tv.s)
		if len(locs) == 0 {
			continue
		}
		if allowIfInSource && w.p.Match(sv.s) {
			continue
		}
		issues = append(issues, qa.NewIssue(qa.SeverityError, qa.CodeForbiddenWord,
			i18n.Tf("Forbidden word %q", tv.s[locs[0][0]:locs[0][1]])).
			WithTarget(tv.hls(locs)...))
	}
	return issues
}
