package rules

import (
	"sort"
	"strings"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
	"github.com/minios-linux/qakit/tagcodec"
)

const (
	entityRe      = `&[^\s&;]{1,32};`
	validEntityRe = `^&(?:amp|lt|gt|quot|apos|#[0-9]+|#[xX][0-9a-fA-F]+);$`
)

var standardEntities = []string{"&amp;", "&lt;", "&gt;", "&quot;", "&apos;"}

// tagRef is one tag token with its position in the original text.
type tagRef struct {
	id         string
	kind       tagcodec.Kind
	start, end int
	// label names the tag in messages: its raw markup when known.
	label string
}

// tagRefs lists the tag tokens of a segment. Tag metadata, when present,
// overrides the kind read from the token and supplies the label.
func tagRefs(seg qa.Segment) []tagRef {
	meta := make(map[string]qa.Tag, len(seg.Tags))
	for _, t := range seg.Tags {
		meta[t.ID] = t
	}
	var refs []tagRef
	for _, loc := range tagcodec.TokenIndexes(seg.Text) {
		id := seg.Text[loc[0]:loc[1]]
		r := tagRef{id: id, kind: tagcodec.Classify(id), start: loc[0], end: loc[1], label: id}
		if t, ok := meta[id]; ok {
			switch t.Kind {
			case qa.TagOpen:
				r.kind = tagcodec.KindOpen
			case qa.TagClose:
				r.kind = tagcodec.KindClose
			case qa.TagSelf:
				r.kind = tagcodec.KindSelf
			}
			if t.RawContent != "" {
				r.label = t.RawContent
			}
		}
		refs = append(refs, r)
	}
	return refs
}

// pairNumber is the number shared by an opening and a closing token.
func pairNumber(id string) string {
	return strings.Trim(id, "{}/")
}

// Tags checks tag identity, order and surrounding whitespace, and validates
// character entities. Highlights point straight at the original text.
func Tags(src, tgt qa.Segment, s *qa.Settings) []qa.Issue {
	opts := s.Tags
	srcTags, tgtTags := tagRefs(src), tagRefs(tgt)
	var issues []qa.Issue

	if opts.Identity {
		issues = append(issues, tagIdentity(srcTags, tgtTags)...)
	}
	if opts.Order {
		if iss, ok := tagOrder(srcTags, tgtTags); ok {
			issues = append(issues, iss)
		}
	}
	if opts.Pairing {
		if iss, ok := tagPairing(srcTags, tgtTags); ok {
			issues = append(issues, iss)
		}
	}
	if opts.Spacing {
		issues = append(issues, tagSpacing(src.Text, tgt.Text, srcTags, tgtTags)...)
	}
	if opts.Entities {
		issues = append(issues, entities(src.Text, tgt.Text)...)
	}
	return issues
}

func countTags(refs []tagRef) map[string]int {
	counts := make(map[string]int, len(refs))
	for _, r := range refs {
		counts[r.id]++
	}
	return counts
}

func tagHighlights(refs []tagRef, keep func(tagRef) bool) []qa.Highlight {
	var out []qa.Highlight
	for _, r := range refs {
		if keep == nil || keep(r) {
			out = append(out, qa.Highlight{Start: r.start, End: r.end})
		}
	}
	return out
}

// tagIdentity reports a count mismatch, or else the first tag whose
// multiplicity differs between the two sides.
func tagIdentity(src, tgt []tagRef) []qa.Issue {
	srcCount, tgtCount := countTags(src), countTags(tgt)

	if len(src) != len(tgt) {
		iss := qa.NewIssue(qa.SeverityError, qa.CodeTagCountMismatch,
			i18n.Tf("Tag count differs: source has %d, target has %d", len(src), len(tgt)))
		missing := func(r tagRef) bool { return srcCount[r.id] > tgtCount[r.id] }
		extra := func(r tagRef) bool { return tgtCount[r.id] > srcCount[r.id] }
		return []qa.Issue{iss.WithSource(tagHighlights(src, missing)...).WithTarget(tagHighlights(tgt, extra)...)}
	}

	for _, r := range src {
		if srcCount[r.id] > tgtCount[r.id] {
			return []qa.Issue{qa.NewIssue(qa.SeverityError, qa.CodeTagMismatch,
				i18n.Tf("Tag %s is missing from the target", r.label)).
				WithSource(qa.Highlight{Start: r.start, End: r.end})}
		}
	}
	for _, r := range tgt {
		if tgtCount[r.id] > srcCount[r.id] {
			return []qa.Issue{qa.NewIssue(qa.SeverityError, qa.CodeTagMismatch,
				i18n.Tf("Tag %s does not appear in the source", r.label)).
				WithTarget(qa.Highlight{Start: r.start, End: r.end})}
		}
	}
	return nil
}

// tagOrder compares the order of the tags both sides share.
func tagOrder(src, tgt []tagRef) (qa.Issue, bool) {
	srcCount, tgtCount := countTags(src), countTags(tgt)
	common := func(refs []tagRef) []tagRef {
		var out []tagRef
		for _, r := range refs {
			if srcCount[r.id] > 0 && tgtCount[r.id] > 0 {
				out = append(out, r)
			}
		}
		return out
	}
	s, t := common(src), common(tgt)
	n := min(len(s), len(t))
	for i := 0; i < n; i++ {
		if s[i].id != t[i].id {
			return qa.NewIssue(qa.SeverityWarning, qa.CodeTagOrder,
				i18n.Tf("Tag %s is out of order", t[i].label)).
				WithSource(qa.Highlight{Start: s[i].start, End: s[i].end}).
				WithTarget(qa.Highlight{Start: t[i].start, End: t[i].end}), true
		}
	}
	return qa.Issue{}, false
}

// unpaired returns the paired tokens that do not nest: closers without a
// matching opener, closers that cross another pair and openers left open.
func unpaired(refs []tagRef) []tagRef {
	var stack, bad []tagRef
	for _, r := range refs {
		switch r.kind {
		case tagcodec.KindOpen:
			stack = append(stack, r)
		case tagcodec.KindClose:
			if n := len(stack); n > 0 && pairNumber(stack[n-1].id) == pairNumber(r.id) {
				stack = stack[:n-1]
				continue
			}
			bad = append(bad, r)
		}
	}
	bad = append(bad, stack...)
	sort.Slice(bad, func(i, j int) bool { return bad[i].start < bad[j].start })
	return bad
}

// tagPairing checks that paired tags nest in the target. It runs only when
// both sides carry the same tags and the source itself nests.
func tagPairing(src, tgt []tagRef) (qa.Issue, bool) {
	srcCount, tgtCount := countTags(src), countTags(tgt)
	if len(src) != len(tgt) {
		return qa.Issue{}, false
	}
	for id, n := range srcCount {
		if tgtCount[id] != n {
			return qa.Issue{}, false
		}
	}
	if len(unpaired(src)) > 0 {
		return qa.Issue{}, false
	}
	bad := unpaired(tgt)
	if len(bad) == 0 {
		return qa.Issue{}, false
	}
	return qa.NewIssue(qa.SeverityError, qa.CodeTagPairing,
		i18n.Tf("Tag %s is not properly paired", bad[0].label)).
		WithTarget(tagHighlights(bad, nil)...), true
}

func spaceBefore(text string, start int) bool { return start > 0 && isSpace(runeBefore(text, start)) }
func spaceAfter(text string, end int) bool    { return end < len(text) && isSpace(runeAt(text, end)) }

// tagSpacing compares whitespace around the first occurrence of each tag
// shared by both sides.
func tagSpacing(srcText, tgtText string, src, tgt []tagRef) []qa.Issue {
	first := func(refs []tagRef) map[string]tagRef {
		m := make(map[string]tagRef, len(refs))
		for _, r := range refs {
			if _, ok := m[r.id]; !ok {
				m[r.id] = r
			}
		}
		return m
	}
	srcFirst := first(src)

	var issues []qa.Issue
	seen := make(map[string]bool)
	for _, t := range tgt {
		if seen[t.id] {
			continue
		}
		seen[t.id] = true
		sr, ok := srcFirst[t.id]
		if !ok {
			continue
		}
		var where []string
		if spaceBefore(srcText, sr.start) != spaceBefore(tgtText, t.start) {
			where = append(where, i18n.T("before"))
		}
		if spaceAfter(srcText, sr.end) != spaceAfter(tgtText, t.end) {
			where = append(where, i18n.T("after"))
		}
		if len(where) == 0 {
			continue
		}
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeTagSpacing,
			i18n.Tf("Spacing %s tag %s differs from the source", strings.Join(where, "/"), t.label)).
			WithSource(qa.Highlight{Start: sr.start, End: sr.end}).
			WithTarget(qa.Highlight{Start: t.start, End: t.end}))
	}
	return issues
}

// entities flags malformed entities in the target and standard entities the
// target dropped.
func entities(srcText, tgtText string) []qa.Issue {
	re := cachedRegexp(entityRe)
	valid := cachedRegexp(validEntityRe)
	var issues []qa.Issue

	var (
		bad  []string
		locs []qa.Highlight
	)
	for _, loc := range re.FindAllStringIndex(tgtText, -1) {
		ent := tgtText[loc[0]:loc[1]]
		if valid.MatchString(ent) {
			continue
		}
		bad = appendUnique(bad, ent)
		locs = append(locs, qa.Highlight{Start: loc[0], End: loc[1]})
	}
	if len(bad) > 0 {
		issues = append(issues, qa.NewIssue(qa.SeverityError, qa.CodeEntityMalformed,
			i18n.Tf("Malformed entity %s", strings.Join(bad, ", "))).WithTarget(locs...))
	}

	var (
		missing []string
		srcLocs []qa.Highlight
	)
	for _, ent := range standardEntities {
		if strings.Count(srcText, ent) <= strings.Count(tgtText, ent) {
			continue
		}
		missing = append(missing, ent)
		for i := 0; ; {
			j := strings.Index(srcText[i:], ent)
			if j < 0 {
				break
			}
			srcLocs = append(srcLocs, qa.Highlight{Start: i + j, End: i + j + len(ent)})
			i += j + len(ent)
		}
	}
	if len(missing) > 0 {
		sort.Slice(srcLocs, func(a, b int) bool { return srcLocs[a].Start < srcLocs[b].Start })
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeEntityMissing,
			i18n.Tf("Entity %s is missing from the target", strings.Join(missing, ", "))).
			WithSource(srcLocs...))
	}
	return issues
}
