package rules

import (
	"errors"
	"fmt"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/pattern"
	"github.com/minios-linux/qakit/qa"
)

// ErrNoPatterns is returned for a custom rule with neither pattern set.
var ErrNoPatterns = errors.New("rule has no source or target pattern")

// CompiledRule is a custom rule ready to evaluate.
type CompiledRule struct {
	Rule qa.CustomRule
	src  *pattern.Pattern
	tgt  *pattern.Pattern
}

// CompileCustomRules compiles every enabled rule independently. Rules that
// fail are reported in errs and skipped.
func CompileCustomRules(rules []qa.CustomRule) (compiled []CompiledRule, errs []error) {
	for _, r := range rules {
		if r.Disabled {
			continue
		}
		c, err := compileRule(r)
		if err != nil {
			name := r.ID
			if name == "" {
				name = r.Name
			}
			errs = append(errs, fmt.Errorf("custom rule %q: %w", name, err))
			continue
		}
		compiled = append(compiled, c)
	}
	return compiled, errs
}

func compileRule(r qa.CustomRule) (CompiledRule, error) {
	switch r.Condition {
	case qa.ConditionBothPresent, qa.ConditionSourceOnly, qa.ConditionTargetOnly, qa.ConditionRegexBoth:
	case "":
		r.Condition = qa.ConditionBothPresent
	default:
		return CompiledRule{}, fmt.Errorf("unknown condition %q", r.Condition)
	}
	if r.SourcePattern == "" && r.TargetPattern == "" {
		return CompiledRule{}, ErrNoPatterns
	}
	switch r.Severity {
	case qa.SeverityError, qa.SeverityWarning, qa.SeverityInfo:
	default:
		r.Severity = qa.SeverityWarning
	}

	opts := pattern.Options{Regex: r.Regex, WholeWord: r.WholeWord, CaseSensitive: r.CaseSensitive}
	c := CompiledRule{Rule: r}
	var err error
	if r.SourcePattern != "" {
		if c.src, err = pattern.Compile(r.SourcePattern, opts); err != nil {
			return CompiledRule{}, fmt.Errorf("source: %w", err)
		}
	}
	if r.TargetPattern != "" {
		if c.tgt, err = pattern.Compile(r.TargetPattern, opts); err != nil {
			return CompiledRule{}, fmt.Errorf("target: %w", err)
		}
	}
	return c, nil
}

// CustomRules evaluates compiled rules against a unit.
func CustomRules(src, tgt qa.Segment, rules []CompiledRule) []qa.Issue {
	if len(rules) == 0 {
		return nil
	}
	sv, tv := newView(src), newView(tgt)
	var issues []qa.Issue
	for _, c := range rules {
		var srcLocs, tgtLocs [][]int
		if c.src != nil {
			srcLocs = c.src.FindAll(sv.s)
		}
		if c.tgt != nil {
			tgtLocs = c.tgt.FindAll(tv.s)
		}
		srcHit, tgtHit := len(srcLocs) > 0, len(tgtLocs) > 0

		var fire bool
		switch c.Rule.Condition {
		case qa.ConditionSourceOnly:
			fire = srcHit && !tgtHit
		case qa.ConditionTargetOnly:
			fire = tgtHit && !srcHit
		default:
			fire = srcHit && tgtHit
		}
		if !fire {
			continue
		}

		msg := c.Rule.Name
		if c.Rule.Description != "" {
			msg = i18n.Tf("%s: %s", c.Rule.Name, c.Rule.Description)
		}
		iss := qa.NewIssue(c.Rule.Severity, qa.CodeCustomRule, msg).
			WithSource(sv.hls(srcLocs)...).
			WithTarget(tv.hls(tgtLocs)...)
		if c.Rule.ID != "" {
			iss.RuleID = c.Rule.ID
		}
		issues = append(issues, iss)
	}
	return issues
}
