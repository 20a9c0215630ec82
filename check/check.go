// Package check runs the rule validators over translation units.
//
// A Checker compiles the glossary, forbidden words and custom rules once and
// can then validate any number of units, sequentially or in parallel.
// Validators are pure; the only state a run mutates is each unit's own
// issue list.
package check

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/minios-linux/qakit/qa"
	"github.com/minios-linux/qakit/rules"
	"github.com/minios-linux/qakit/tagcodec"
)

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Options controls logging and parallelism of a run.
type Options struct {
	// MaxConcurrent is the maximum number of chunks validated at once. Default: number of CPUs.
	MaxConcurrent int
	// ChunkSize is how many units one worker validates per task. Default: 64.
	ChunkSize int
	// OnProgress is called after each chunk is validated.
	OnProgress func(done, total int)
	// OnLog emits informational messages.
	OnLog func(format string, args ...any)
	// OnError reports rules that failed to compile and validators that panicked.
	OnError func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) logError(format string, args ...any) {
	if o.OnError != nil {
		o.OnError(format, args...)
	} else if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) effectiveMaxConcurrent() int {
	if o.MaxConcurrent > 0 {
		return o.MaxConcurrent
	}
	return runtime.NumCPU()
}

func (o *Options) effectiveChunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return 64
}

// ---------------------------------------------------------------------------
// Checker
// ---------------------------------------------------------------------------

// Checker validates units against one settings value and glossary set.
type Checker struct {
	settings  qa.Settings
	terms     *rules.Termbase
	forbidden []rules.ForbiddenWord
	custom    []rules.CompiledRule
	opts      Options
}

// New compiles everything the validators need. Expressions and custom
// rules that fail to compile are reported through opts.OnError and left
// out; the remaining checks still run.
func New(s *qa.Settings, glossaries []qa.Glossary, opts Options) *Checker {
	c := &Checker{settings: *s, opts: opts}

	c.terms = rules.NewTermbase(qa.ActiveTerms(glossaries, s.ActiveGlossaries))

	if s.ForbiddenWords.Enabled {
		words, errs := rules.CompileForbiddenWords(s.ForbiddenWords.Expressions)
		for _, err := range errs {
			c.opts.logError("Skipping %v", err)
		}
		c.forbidden = words
	}

	custom, errs := rules.CompileCustomRules(s.CustomRules)
	for _, err := range errs {
		c.opts.logError("Skipping %v", err)
	}
	c.custom = custom

	c.opts.log("Compiled %d glossary terms, %d forbidden expressions, %d custom rules",
		c.terms.Len(), len(c.forbidden), len(c.custom))
	return c
}

// Settings returns the settings the checker was built with.
func (c *Checker) Settings() *qa.Settings { return &c.settings }

// state is where a unit sits in the validation flow.
type state int

const (
	stateSkip state = iota
	stateEmpty
	stateFull
)

func unitState(u *qa.Unit) state {
	switch {
	case u.Locked:
		return stateSkip
	case strings.TrimSpace(tagcodec.StripRemove(u.Target.Text)) == "":
		return stateEmpty
	default:
		return stateFull
	}
}

// validator is one named step of the fixed validation order.
type validator struct {
	name string
	run  func(u *qa.Unit) []qa.Issue
}

// fullOrder lists every validator in the order issues are reported.
func (c *Checker) fullOrder() []validator {
	s := &c.settings
	return []validator{
		{"omissions", func(u *qa.Unit) []qa.Issue { return rules.Omissions(u, s) }},
		{"letter case", func(u *qa.Unit) []qa.Issue { return rules.LetterCase(u.Source, u.Target, s) }},
		{"punctuation", func(u *qa.Unit) []qa.Issue { return rules.Punctuation(u.Source, u.Target, s) }},
		{"quotes", func(u *qa.Unit) []qa.Issue { return rules.Quotes(u.Source, u.Target, s) }},
		{"tags", func(u *qa.Unit) []qa.Issue { return rules.Tags(u.Source, u.Target, s) }},
		{"measurements", func(u *qa.Unit) []qa.Issue { return rules.Measurements(u.Source, u.Target, s) }},
		{"numbers", func(u *qa.Unit) []qa.Issue { return rules.Numbers(u.Source, u.Target, s) }},
		{"misc", func(u *qa.Unit) []qa.Issue { return rules.Misc(u.Source, u.Target, s) }},
		{"terminology", func(u *qa.Unit) []qa.Issue { return rules.Terminology(u.Source, u.Target, c.terms, s) }},
		{"untranslatables", func(u *qa.Unit) []qa.Issue { return rules.Untranslatables(u.Source, u.Target, s) }},
		{"forbidden words", func(u *qa.Unit) []qa.Issue {
			return rules.ForbiddenWords(u.Source, u.Target, c.forbidden, s.ForbiddenWords.AllowIfInSource)
		}},
		{"custom rules", func(u *qa.Unit) []qa.Issue { return rules.CustomRules(u.Source, u.Target, c.custom) }},
	}
}

// emptyOrder lists the validators that still apply to an empty target.
func (c *Checker) emptyOrder() []validator {
	s := &c.settings
	return []validator{
		{"omissions", func(u *qa.Unit) []qa.Issue { return rules.Omissions(u, s) }},
		{"tags", func(u *qa.Unit) []qa.Issue { return rules.Tags(u.Source, u.Target, s) }},
		{"end punctuation", func(u *qa.Unit) []qa.Issue {
			if !s.Punctuation.EndPunctuation || u.Status == qa.StatusEmpty {
				return nil
			}
			if iss, ok := rules.EndPunctuation(u.Source, u.Target, s.Punctuation.EndIgnore); ok {
				return []qa.Issue{iss}
			}
			return nil
		}},
	}
}

// Validate returns the issues of one unit without modifying it.
func (c *Checker) Validate(u *qa.Unit) []qa.Issue {
	var steps []validator
	switch unitState(u) {
	case stateSkip:
		return nil
	case stateEmpty:
		steps = c.emptyOrder()
	default:
		steps = c.fullOrder()
	}

	var issues []qa.Issue
	for _, v := range steps {
		issues = append(issues, c.guard(v, u)...)
	}
	return issues
}

// guard runs one validator. A panic drops only that validator's issues.
func (c *Checker) guard(v validator, u *qa.Unit) (issues []qa.Issue) {
	defer func() {
		if r := recover(); r != nil {
			c.opts.logError("Validator %s failed on unit %s: %v\n%s", v.name, u.ID, r, debug.Stack())
			issues = nil
		}
	}()
	return v.run(u)
}

// Check validates u and appends the issues to it.
func (c *Checker) Check(u *qa.Unit) {
	u.AddIssues(c.Validate(u)...)
}

// Run checks every unit in parallel. Cancelling ctx stops scheduling new
// chunks; chunks already started finish. Each unit is only touched by one
// worker.
func (c *Checker) Run(ctx context.Context, units []*qa.Unit) error {
	size := c.opts.effectiveChunkSize()
	var chunks [][]*qa.Unit
	for start := 0; start < len(units); start += size {
		end := min(start+size, len(units))
		chunks = append(chunks, units[start:end])
	}

	var done int64
	total := len(units)
	err := runParallel(ctx, chunks, c.opts.effectiveMaxConcurrent(), func(ctx context.Context, chunk []*qa.Unit) error {
		for _, u := range chunk {
			c.Check(u)
		}
		n := atomic.AddInt64(&done, int64(len(chunk)))
		if c.opts.OnProgress != nil {
			c.opts.OnProgress(int(n), total)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("check cancelled after %d of %d units: %w", atomic.LoadInt64(&done), total, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// One-shot helpers
// ---------------------------------------------------------------------------

// Validate builds a throwaway Checker and validates one unit.
func Validate(u *qa.Unit, s *qa.Settings, glossaries []qa.Glossary) []qa.Issue {
	return New(s, glossaries, Options{}).Validate(u)
}

// Check builds a throwaway Checker and appends the issues of one unit.
func Check(u *qa.Unit, s *qa.Settings, glossaries []qa.Glossary) {
	New(s, glossaries, Options{}).Check(u)
}

// Run builds a Checker and checks every unit in parallel.
func Run(ctx context.Context, units []*qa.Unit, s *qa.Settings, glossaries []qa.Glossary, opts Options) error {
	return New(s, glossaries, opts).Run(ctx, units)
}

// ---------------------------------------------------------------------------
// Generic parallel runner
// ---------------------------------------------------------------------------

// runParallel runs tasks with at most maxConcurrent in flight.
func runParallel[T any](ctx context.Context, tasks []T, maxConcurrent int, fn func(context.Context, T) error) error {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for _, task := range tasks {
		if ctx.Err() != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)

		go func(t T) {
			defer func() {
				<-sem
				wg.Done()
			}()

			if err := fn(ctx, t); err != nil {
				errOnce.Do(func() {
					firstErr = err
				})
			}
		}(task)
	}

	wg.Wait()
	return firstErr
}
