// Package consistency finds units translated inconsistently across a corpus.
//
// Unlike the per-unit rules, the analysis needs the whole corpus: units are
// clustered by a normalized key and every member of a cluster with more
// than one distinct counterpart gets an issue. Analyze works on a snapshot,
// yields between chunks and never touches a unit; Result.Apply appends the
// issues in one step.
package consistency

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
	"github.com/minios-linux/qakit/tagcodec"
)

// Options controls progress reporting of an analysis.
type Options struct {
	// ChunkSize is how many units are processed between yields. Default: 500.
	ChunkSize int
	// OnProgress receives the completed fraction, from 0 to 1.
	OnProgress func(fraction float64)
	// OnLog emits informational messages.
	OnLog func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) progress(f float64) {
	if o.OnProgress != nil {
		o.OnProgress(f)
	}
}

func (o *Options) effectiveChunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return 500
}

// Result holds the issues of a finished analysis, keyed by unit.
type Result struct {
	issues map[*qa.Unit][]qa.Issue
	// Clusters is the number of inconsistent clusters found.
	Clusters int
}

// Issues returns the issues computed for u.
func (r *Result) Issues(u *qa.Unit) []qa.Issue {
	if r == nil {
		return nil
	}
	return r.issues[u]
}

// Apply appends the computed issues to the matching units. Units that were
// not part of the analysis are left alone.
func (r *Result) Apply(units []*qa.Unit) {
	if r == nil {
		return
	}
	for _, u := range units {
		if issues, ok := r.issues[u]; ok {
			u.AddIssues(issues...)
		}
	}
}

// entry is the snapshot of one unit.
type entry struct {
	unit     *qa.Unit
	src, tgt string
}

// direction describes one way of clustering.
type direction struct {
	name string
	code qa.Code
	opts qa.ConsistencyOptions
	// key and value pick the clustered and the compared side.
	key, value func(e *entry) string
	msg        func(display string, n int) string
}

func directions(s qa.ConsistencySettings) []direction {
	var out []direction
	if s.Target.Enabled {
		out = append(out, direction{
			name:  "target",
			code:  qa.CodeTargetInconsistency,
			opts:  s.Target,
			key:   func(e *entry) string { return e.src },
			value: func(e *entry) string { return e.tgt },
			msg: func(display string, n int) string {
				return i18n.Tf("Source %q is translated in %d different ways", display, n)
			},
		})
	}
	if s.Source.Enabled {
		out = append(out, direction{
			name:  "source",
			code:  qa.CodeSourceInconsistency,
			opts:  s.Source,
			key:   func(e *entry) string { return e.tgt },
			value: func(e *entry) string { return e.src },
			msg: func(display string, n int) string {
				return i18n.Tf("Translation %q is used for %d different sources", display, n)
			},
		})
	}
	return out
}

// cluster gathers the members sharing one normalized key.
type cluster struct {
	key     string
	display string
	members []*entry
	values  map[string]bool
}

// Analyze clusters the units in both enabled directions. The unit texts are
// copied first, so later edits do not affect the result. On cancellation it
// returns the context error and no result.
func Analyze(ctx context.Context, units []*qa.Unit, s qa.ConsistencySettings, opts Options) (*Result, error) {
	snapshot := make([]*entry, len(units))
	for i, u := range units {
		snapshot[i] = &entry{unit: u, src: u.Source.Text, tgt: u.Target.Text}
	}

	dirs := directions(s)
	res := &Result{issues: make(map[*qa.Unit][]qa.Issue)}
	if len(dirs) == 0 || len(snapshot) == 0 {
		opts.progress(1)
		return res, nil
	}

	size := opts.effectiveChunkSize()
	steps := float64(len(dirs) * len(snapshot) * 2)
	var done int

	// yield hands control back between chunks and reports progress.
	yield := func(n int) error {
		done += n
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("consistency analysis cancelled: %w", err)
		}
		opts.progress(float64(done) / steps)
		runtime.Gosched()
		return nil
	}

	for _, d := range dirs {
		n := newNormalizer(d.opts)
		clusters := make(map[string]*cluster)
		var order []string

		for start := 0; start < len(snapshot); start += size {
			end := min(start+size, len(snapshot))
			for _, e := range snapshot[start:end] {
				key, value := n.normalize(d.key(e)), n.normalize(d.value(e))
				if key == "" || value == "" {
					continue
				}
				c, ok := clusters[key]
				if !ok {
					c = &cluster{key: key, display: strings.TrimSpace(tagcodec.StripRemove(d.key(e))), values: make(map[string]bool)}
					clusters[key] = c
					order = append(order, key)
				}
				c.members = append(c.members, e)
				c.values[value] = true
			}
			if err := yield(end - start); err != nil {
				return nil, err
			}
		}

		var flagged []*cluster
		for _, key := range order {
			if c := clusters[key]; len(c.values) > 1 {
				flagged = append(flagged, c)
			}
		}
		for start := 0; start < len(flagged); start += size {
			end := min(start+size, len(flagged))
			for _, c := range flagged[start:end] {
				variants := sortedKeys(c.values)
				for _, e := range c.members {
					iss := qa.NewIssue(qa.SeverityWarning, d.code, d.msg(c.display, len(variants)))
					iss.GroupID = c.key
					res.issues[e.unit] = append(res.issues[e.unit], iss)
				}
			}
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("consistency analysis cancelled: %w", err)
			}
			runtime.Gosched()
		}
		res.Clusters += len(flagged)
		if err := yield(len(snapshot)); err != nil {
			return nil, err
		}
		opts.log("%s consistency: %d clusters, %d inconsistent", d.name, len(order), len(flagged))
	}

	opts.progress(1)
	return res, nil
}

// Run analyzes the units and applies the result to them.
func Run(ctx context.Context, units []*qa.Unit, s qa.ConsistencySettings, opts Options) (*Result, error) {
	res, err := Analyze(ctx, units, s, opts)
	if err != nil {
		return nil, err
	}
	res.Apply(units)
	return res, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ---------------------------------------------------------------------------
// Normalization
// ---------------------------------------------------------------------------

type normalizer struct {
	opts qa.ConsistencyOptions
	fold cases.Caser
}

func newNormalizer(opts qa.ConsistencyOptions) *normalizer {
	return &normalizer{opts: opts, fold: cases.Fold()}
}

// normalize maps text to its cluster key. Whitespace is always collapsed
// and trimmed; the other steps follow the options.
func (n *normalizer) normalize(text string) string {
	o := n.opts
	if o.StripTags {
		text = tagcodec.StripRemove(text)
	}
	text = norm.NFC.String(text)
	if o.IgnoreCase {
		text = n.fold.String(text)
	}
	if o.FoldNBSP || o.MaskDigits || o.StripPunctuation {
		text = strings.Map(func(r rune) rune {
			switch {
			case o.FoldNBSP && isNBSP(r):
				return ' '
			case o.MaskDigits && unicode.IsDigit(r):
				return '#'
			case o.StripPunctuation && unicode.IsPunct(r):
				return -1
			}
			return r
		}, text)
	}
	words := strings.FieldsFunc(text, func(r rune) bool {
		if !o.FoldNBSP && isNBSP(r) {
			return false
		}
		return unicode.IsSpace(r)
	})
	if o.StripPlurals {
		for i, w := range words {
			words[i] = singular(w)
		}
	}
	return strings.Join(words, " ")
}

// singular strips an English plural suffix from words longer than three
// letters. It is narrower than stripping any "es" or "s": "es" goes only
// after s, x, z, ch and sh ("boxes" but not "files"), and a final "s" stays
// when preceded by another "s" ("class").
func singular(w string) string {
	if len([]rune(w)) <= 3 {
		return w
	}
	lower := strings.ToLower(w)
	if stem, ok := strings.CutSuffix(lower, "es"); ok {
		for _, end := range []string{"s", "x", "z", "ch", "sh"} {
			if strings.HasSuffix(stem, end) {
				return w[:len(w)-2]
			}
		}
	}
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		return w[:len(w)-1]
	}
	return w
}

func isNBSP(r rune) bool {
	return r == '\u00a0' || r == '\u202f' || r == '\u2007'
}
