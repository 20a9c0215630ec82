package rules

import (
	"strings"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/pattern"
	"github.com/minios-linux/qakit/qa"
)

// termEntry groups glossary rows sharing a case-folded source term.
type termEntry struct {
	display    string
	source     *pattern.Pattern
	renderings []string
	target     *pattern.Pattern
}

// Termbase is the compiled form of the active glossary terms.
type Termbase struct {
	entries   []*termEntry
	forbidden []string
	forbidPat *pattern.Pattern
}

// NewTermbase compiles glossary terms. Rows with an empty source or target
// are ignored.
func NewTermbase(terms []qa.GlossaryTerm) *Termbase {
	tb := &Termbase{}
	byKey := make(map[string]*termEntry)
	for _, t := range terms {
		src, tgt := strings.TrimSpace(t.Source), strings.TrimSpace(t.Target)
		if t.Forbidden {
			if tgt != "" {
				tb.forbidden = appendUnique(tb.forbidden, tgt)
			}
			continue
		}
		if src == "" || tgt == "" {
			continue
		}
		key := strings.ToLower(src)
		e, ok := byKey[key]
		if !ok {
			e = &termEntry{display: src}
			byKey[key] = e
			tb.entries = append(tb.entries, e)
		}
		e.renderings = appendUnique(e.renderings, tgt)
	}

	for _, e := range tb.entries {
		e.source, _ = pattern.Compile(e.display, pattern.Options{WholeWord: true})
		e.target, _ = pattern.Alternation(e.renderings, pattern.Options{WholeWord: true})
	}
	if len(tb.forbidden) > 0 {
		tb.forbidPat, _ = pattern.Alternation(tb.forbidden, pattern.Options{WholeWord: true})
	}
	return tb
}

// Len returns the number of distinct source terms.
func (tb *Termbase) Len() int {
	if tb == nil {
		return 0
	}
	return len(tb.entries)
}

// Terminology checks that every glossary term of the source is rendered
// with one of its approved translations, as often as it occurs, and that no
// forbidden rendering appears in the target.
func Terminology(src, tgt qa.Segment, tb *Termbase, s *qa.Settings) []qa.Issue {
	if tb == nil {
		return nil
	}
	sv, tv := newView(src), newView(tgt)
	var issues []qa.Issue

	if s.Terminology.Enabled {
		for _, e := range tb.entries {
			if e.source == nil || e.target == nil {
				continue
			}
			srcLocs := e.source.FindAll(sv.s)
			if len(srcLocs) == 0 {
				continue
			}
			tgtLocs := e.target.FindAll(tv.s)
			switch {
			case len(tgtLocs) == 0:
				issues = append(issues, qa.NewIssue(qa.SeverityError, qa.CodeTerminologyViolation,
					i18n.Tf("Terminology violation: %q should be translated as %s", e.display, quoteList(e.renderings))).
					WithSource(sv.hls(srcLocs)...))
			case len(tgtLocs) < len(srcLocs):
				issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeTerminologyCountMismatch,
					i18n.Tf("Term %q occurs %d times in the source but its translation only %d times",
						e.display, len(srcLocs), len(tgtLocs))).
					WithSource(sv.hls(srcLocs)...).
					WithTarget(tv.hls(tgtLocs)...))
			}
		}
	}

	if s.Terminology.Forbidden && tb.forbidPat != nil {
		if locs := tb.forbidPat.FindAll(tv.s); len(locs) > 0 {
			var found []string
			for _, l := range locs {
				found = appendUnique(found, tv.s[l[0]:l[1]])
			}
			issues = append(issues, qa.NewIssue(qa.SeverityError, qa.CodeForbiddenTerm,
				i18n.Tf("Forbidden term %s", quoteList(found))).
				WithTarget(tv.hls(locs)...))
		}
	}
	return issues
}
