package rules

import (
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
)

// measurement is a number followed by a unit symbol.
type measurement struct {
	value      float64
	unit       string
	sep        string
	start, end int
	text       string
}

// unitRe builds the number+unit pattern for a unit list.
func unitRe(units []string) *regexp.Regexp {
	sorted := slices.Clone(units)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, 0, len(sorted))
	for _, u := range sorted {
		if u != "" {
			quoted = append(quoted, regexp.QuoteMeta(u))
		}
	}
	return cachedRegexp(`(\d+(?:[` + charClass(commonSeparators) + `]\d+)*)([` + spaceChars + `]?)(` + strings.Join(quoted, "|") + `)`)
}

// findMeasurements returns the measurements of s. A unit glued to a
// following letter or digit ("5 min" inside "5 minutes") is rejected, and so
// is a number glued to a preceding letter.
func findMeasurements(s string, units []string, f qa.NumberFormat) []measurement {
	if len(units) == 0 {
		return nil
	}
	var out []measurement
	for _, m := range unitRe(units).FindAllStringSubmatchIndex(s, -1) {
		if next := runeAt(s, m[1]); m[1] < len(s) && (unicode.IsLetter(next) || unicode.IsDigit(next)) {
			continue
		}
		if prev := runeBefore(s, m[0]); unicode.IsLetter(prev) {
			continue
		}
		v, ok := parseNumber(s[m[2]:m[3]], f)
		if !ok {
			continue
		}
		out = append(out, measurement{
			value: v,
			sep:   s[m[4]:m[5]],
			unit:  s[m[6]:m[7]],
			start: m[0],
			end:   m[1],
			text:  s[m[0]:m[1]],
		})
	}
	return out
}

// Measurements cross-references number+unit pairs and checks the separator
// between number and unit in the target. Temperatures are checked the same
// way with their own units and spacing policy.
func Measurements(src, tgt qa.Segment, s *qa.Settings) []qa.Issue {
	opts := s.Measurements
	sv, tv := newView(src), newView(tgt)
	srcFmt, tgtFmt := s.Numbers.Source, s.Numbers.Target
	var issues []qa.Issue

	if opts.Enabled {
		issues = append(issues, crossMeasurements(sv, tv,
			findMeasurements(sv.s, opts.Units, srcFmt),
			findMeasurements(tv.s, opts.Units, tgtFmt),
			opts.Spacing, qa.CodeMeasurementMismatch, qa.CodeMeasurementSpacing)...)
	}
	if opts.Temperature {
		issues = append(issues, crossMeasurements(sv, tv,
			findMeasurements(sv.s, opts.TemperatureUnits, srcFmt),
			findMeasurements(tv.s, opts.TemperatureUnits, tgtFmt),
			opts.TemperatureSpacing, qa.CodeTemperatureMismatch, qa.CodeTemperatureSpacing)...)
	}
	return issues
}

func crossMeasurements(src, tgt view, srcMs, tgtMs []measurement, policy qa.SpacingPolicy, mismatch, spacing qa.Code) []qa.Issue {
	var issues []qa.Issue

	used := make([]bool, len(tgtMs))
	var (
		missing []string
		locs    [][]int
	)
	for _, m := range srcMs {
		found := false
		for j, t := range tgtMs {
			if !used[j] && t.unit == m.unit && sameValue(t.value, m.value) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, m.text)
			locs = append(locs, []int{m.start, m.end})
		}
	}
	if len(missing) > 0 {
		issues = append(issues, qa.NewIssue(qa.SeverityError, mismatch,
			i18n.Tf("Measurement missing or changed in the target: %s", strings.Join(missing, ", "))).
			WithSource(src.hls(locs)...))
	}

	var (
		badText []string
		badLocs [][]int
	)
	for _, t := range tgtMs {
		if !spacingOK(t.sep, policy) {
			badText = append(badText, t.text)
			badLocs = append(badLocs, []int{t.start, t.end})
		}
	}
	if len(badLocs) > 0 {
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, spacing,
			i18n.Tf("Between number and unit use %s: %s", spacingName(policy), strings.Join(badText, ", "))).
			WithTarget(tgt.hls(badLocs)...))
	}
	return issues
}
