package rules

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/minios-linux/qakit/i18n"
	"github.com/minios-linux/qakit/qa"
)

// Separators that may appear inside a digit run, whatever the locale.
const commonSeparators = ".,'’\u00a0\u202f"

const (
	// imperialAsideRe finds a parenthesized conversion such as "(5 ft)" in
	// the source. Translators usually drop those when localizing units.
	imperialAsideRe = `\(([^()]*)\)`
	imperialUnitRe  = `\d+(?:[.,]\d+)*[ \x{00A0}\x{202F}]?(?:in|inch|inches|ft|feet|foot|lb|lbs|oz|mi|miles|yd|yards|gal|mph|°F|℉)(?:[^\p{L}]|$)`

	rangeSymbols = `-–—~〜`
)

// number is one numeric token found in a segment.
type number struct {
	value float64
	start int
	end   int
	text  string
	// digits is the token without sign; empty for spelled-out numbers.
	digits string
}

// numberTokenRe builds the digit-run pattern for a number format. It
// returns nil when the format cannot form a pattern.
func numberTokenRe(f qa.NumberFormat) *regexp.Regexp {
	seps := commonSeparators + f.Decimal + f.Thousands
	minus := f.MinusSigns
	if minus == "" {
		minus = "-−"
	}
	re, err := compileCached(`([` + charClass(minus) + `]?)(\d+(?:[` + charClass(seps) + `]\d+)*)`)
	if err != nil {
		return nil
	}
	return re
}

// findNumbers returns the digit tokens of s, read with format f. A minus sign
// glued to a preceding letter or digit is a hyphen, not a sign.
func findNumbers(s string, f qa.NumberFormat) []number {
	re := numberTokenRe(f)
	if re == nil {
		return nil
	}
	var out []number
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		start := m[0]
		signed := m[3] > m[2]
		if signed {
			prev := runeBefore(s, m[2])
			if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
				signed = false
				start = m[4]
			}
		}
		digits := s[m[4]:m[5]]
		v, ok := parseNumber(digits, f)
		if !ok {
			continue
		}
		if signed {
			v = -v
		}
		out = append(out, number{value: v, start: start, end: m[1], text: s[start:m[1]], digits: digits})
	}
	return out
}

// findSpelled returns the spelled-out numbers of s.
func findSpelled(s string, words map[string]float64) []number {
	if len(words) == 0 {
		return nil
	}
	terms := make([]string, 0, len(words))
	for w := range words {
		terms = append(terms, w)
	}
	sort.Strings(terms)
	p := cachedAlternation(terms, false)
	if p == nil {
		return nil
	}
	var out []number
	for _, loc := range p.FindAll(s) {
		w := s[loc[0]:loc[1]]
		out = append(out, number{value: words[strings.ToLower(w)], start: loc[0], end: loc[1], text: w})
	}
	return out
}

// parseNumber normalizes digits written in format f. When the token does
// not fit the format, the last separator is read as the decimal mark unless
// it reads as grouping.
func parseNumber(digits string, f qa.NumberFormat) (float64, bool) {
	if fitsFormat(digits, f) {
		norm := digits
		if f.Thousands != "" {
			norm = strings.ReplaceAll(norm, f.Thousands, "")
		}
		if f.Decimal != "" {
			norm = strings.ReplaceAll(norm, f.Decimal, ".")
		}
		if v, err := strconv.ParseFloat(norm, 64); err == nil {
			return v, true
		}
	}

	decAt := -1
	if seps := separators(digits); len(seps) > 0 {
		dec := seps[len(seps)-1]
		if strings.Count(digits, dec) == 1 && !grouping(digits, dec) {
			decAt = strings.LastIndex(digits, dec)
		}
	}
	var b strings.Builder
	for i, r := range digits {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case i == decAt:
			b.WriteByte('.')
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	return v, err == nil
}

// fitsFormat reports whether every separator of digits is the format's
// thousands separator, followed by at most one decimal mark.
func fitsFormat(digits string, f qa.NumberFormat) bool {
	if f.Decimal == f.Thousands {
		return false
	}
	seenDec := false
	for _, r := range digits {
		g := string(r)
		switch {
		case unicode.IsDigit(r):
		case g == f.Decimal && !seenDec:
			seenDec = true
		case g == f.Thousands && !seenDec:
		default:
			return false
		}
	}
	return true
}

// separators returns the distinct non-digit glyphs of a token, in order of
// their last occurrence.
func separators(digits string) []string {
	var seps []string
	for _, r := range digits {
		if unicode.IsDigit(r) {
			continue
		}
		g := string(r)
		for i, s := range seps {
			if s == g {
				seps = append(seps[:i], seps[i+1:]...)
				break
			}
		}
		seps = append(seps, g)
	}
	return seps
}

// grouping reports whether sep reads as a thousands separator in digits:
// one to three leading digits, then groups of exactly three.
func grouping(digits, sep string) bool {
	end := len(digits)
	for _, other := range separators(digits) {
		if other != sep {
			// only the part before a different (decimal) glyph counts
			if i := strings.Index(digits, other); i >= 0 && i < end && i > strings.LastIndex(digits, sep) {
				end = i
			}
		}
	}
	parts := strings.Split(digits[:end], sep)
	if len(parts) < 2 {
		return false
	}
	if len(parts[0]) < 1 || len(parts[0]) > 3 || !allDigits(parts[0]) {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 || !allDigits(p) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func sameValue(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// Numbers cross-references the numbers of both sides and checks the
// target's number and range formatting.
func Numbers(src, tgt qa.Segment, s *qa.Settings) []qa.Issue {
	opts := s.Numbers
	sv, tv := newView(src), newView(tgt)
	var issues []qa.Issue

	srcNums := exemptImperial(sv.s, findNumbers(sv.s, opts.Source))
	tgtNums := findNumbers(tv.s, opts.Target)

	if opts.Enabled {
		srcAll, tgtAll := srcNums, tgtNums
		if opts.SpelledOut {
			srcAll = append(append([]number(nil), srcAll...), findSpelled(sv.s, opts.Source.Words)...)
			tgtAll = append(append([]number(nil), tgtAll...), findSpelled(tv.s, opts.Target.Words)...)
		}
		if iss, ok := numberMismatch(sv, tv, srcAll, tgtAll); ok {
			issues = append(issues, iss)
		}
	}
	if opts.Format {
		issues = append(issues, numberFormat(tv, tgtNums, opts.Target)...)
	}
	if opts.Ranges {
		issues = append(issues, ranges(tv, opts.Target)...)
	}
	return issues
}

// exemptImperial drops numbers that sit inside a parenthesized imperial
// conversion.
func exemptImperial(s string, nums []number) []number {
	var asides [][]int
	unit := cachedRegexp(imperialUnitRe)
	for _, m := range cachedRegexp(imperialAsideRe).FindAllStringSubmatchIndex(s, -1) {
		if unit.MatchString(s[m[2]:m[3]]) {
			asides = append(asides, m[:2])
		}
	}
	if len(asides) == 0 {
		return nums
	}
	var out []number
	for _, n := range nums {
		inside := false
		for _, a := range asides {
			if n.start >= a[0] && n.end <= a[1] {
				inside = true
				break
			}
		}
		if !inside {
			out = append(out, n)
		}
	}
	return out
}

// numberMismatch pairs numbers by value. Every unpaired number on either
// side ends up in a single issue.
func numberMismatch(src, tgt view, srcNums, tgtNums []number) (qa.Issue, bool) {
	used := make([]bool, len(tgtNums))
	var (
		missing []string
		srcHL   []qa.Highlight
	)
	for _, n := range srcNums {
		found := false
		for j, t := range tgtNums {
			if !used[j] && sameValue(n.value, t.value) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, n.text)
			srcHL = append(srcHL, src.hl(n.start, n.end))
		}
	}
	var (
		extra []string
		tgtHL []qa.Highlight
	)
	for j, t := range tgtNums {
		if !used[j] {
			extra = append(extra, t.text)
			tgtHL = append(tgtHL, tgt.hl(t.start, t.end))
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return qa.Issue{}, false
	}

	var msg string
	switch {
	case len(extra) == 0:
		msg = i18n.Tf("Number missing from the target: %s", strings.Join(missing, ", "))
	case len(missing) == 0:
		msg = i18n.Tf("Number not found in the source: %s", strings.Join(extra, ", "))
	default:
		msg = i18n.Tf("Numbers differ: source has %s, target has %s", strings.Join(missing, ", "), strings.Join(extra, ", "))
	}
	return qa.NewIssue(qa.SeverityError, qa.CodeNumberMismatch, msg).
		WithSource(srcHL...).WithTarget(tgtHL...), true
}

// numberFormat checks decimal and grouping glyphs of every target number.
func numberFormat(tgt view, nums []number, f qa.NumberFormat) []qa.Issue {
	var (
		decLocs, grpLocs [][]int
		decBad, grpBad   []string
	)
	for _, n := range nums {
		if n.digits == "" {
			continue
		}
		dec, grp := classifySeparators(n.digits)
		loc := []int{n.start, n.end}

		if dec != "" && f.Decimal != "" && dec != f.Decimal {
			decBad = appendUnique(decBad, n.text)
			decLocs = append(decLocs, loc)
		}
		intPart := n.digits
		if dec != "" {
			intPart = n.digits[:strings.LastIndex(n.digits, dec)]
		}
		switch {
		case grp != "" && f.ThousandsPolicy == qa.ThousandsDisallowed:
			grpBad = appendUnique(grpBad, n.text)
			grpLocs = append(grpLocs, loc)
		case grp != "" && f.Thousands != "" && grp != f.Thousands:
			grpBad = appendUnique(grpBad, n.text)
			grpLocs = append(grpLocs, loc)
		case grp == "" && f.ThousandsPolicy == qa.ThousandsRequired && f.Thousands != "" && utf8.RuneCountInString(intPart) > 3:
			grpBad = appendUnique(grpBad, n.text)
			grpLocs = append(grpLocs, loc)
		}
	}

	var issues []qa.Issue
	if len(decLocs) > 0 {
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeNumberDecimalSeparator,
			i18n.Tf("Wrong decimal separator in %s, expected %q", strings.Join(decBad, ", "), f.Decimal)).
			WithTarget(tgt.hls(decLocs)...))
	}
	if len(grpLocs) > 0 {
		var msg string
		switch {
		case f.ThousandsPolicy == qa.ThousandsDisallowed:
			msg = i18n.Tf("Thousands separator not allowed in %s", strings.Join(grpBad, ", "))
		default:
			msg = i18n.Tf("Wrong or missing thousands separator in %s, expected %q", strings.Join(grpBad, ", "), f.Thousands)
		}
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeNumberThousandSeparator, msg).
			WithTarget(tgt.hls(grpLocs)...))
	}
	return issues
}

// classifySeparators reads the separators of a digit run. With two distinct
// glyphs the last one is the decimal mark. A single glyph is grouping when it
// splits the digits in groups of three, a decimal mark when it appears once,
// and neither otherwise (versions, addresses).
func classifySeparators(digits string) (dec, grp string) {
	seps := separators(digits)
	switch len(seps) {
	case 0:
		return "", ""
	case 1:
		switch {
		case grouping(digits, seps[0]):
			return "", seps[0]
		case strings.Count(digits, seps[0]) == 1:
			return seps[0], ""
		default:
			return "", ""
		}
	default:
		return seps[len(seps)-1], seps[0]
	}
}

// rangeRe matches two numbers joined by a range symbol.
func rangeRe() *regexp.Regexp {
	sp := `[` + spaceChars + `]*`
	return cachedRegexp(`(\d+(?:[.,]\d+)*)(` + sp + `)([` + charClass(rangeSymbols) + `])(` + sp + `)(\d+(?:[.,]\d+)*)`)
}

// ranges checks the symbol and spacing of numeric ranges in the target.
// Chains such as dates and phone numbers are not ranges.
func ranges(tgt view, f qa.NumberFormat) []qa.Issue {
	if f.RangeSymbol == "" {
		return nil
	}
	var symLocs, spLocs [][]int
	for _, m := range rangeRe().FindAllStringSubmatchIndex(tgt.s, -1) {
		if strings.ContainsRune(rangeSymbols, runeBefore(tgt.s, m[0])) {
			continue
		}
		if after := runeAt(tgt.s, m[1]); m[1] < len(tgt.s) && strings.ContainsRune(rangeSymbols, after) &&
			unicode.IsDigit(runeAt(tgt.s, m[1]+utf8.RuneLen(after))) {
			continue
		}
		sym := tgt.s[m[6]:m[7]]
		before, after := tgt.s[m[4]:m[5]], tgt.s[m[8]:m[9]]
		loc := []int{m[0], m[1]}

		if sym != f.RangeSymbol {
			symLocs = append(symLocs, loc)
			continue
		}
		if !spacingOK(before, f.RangeSpacing) || !spacingOK(after, f.RangeSpacing) {
			spLocs = append(spLocs, loc)
		}
	}

	var issues []qa.Issue
	if len(symLocs) > 0 {
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeRangeSymbol,
			i18n.Tf("Use %q for number ranges", f.RangeSymbol)).WithTarget(tgt.hls(symLocs)...))
	}
	if len(spLocs) > 0 {
		issues = append(issues, qa.NewIssue(qa.SeverityWarning, qa.CodeRangeSpacing,
			i18n.Tf("Spacing around range symbol %q should be %s", f.RangeSymbol, spacingName(f.RangeSpacing))).
			WithTarget(tgt.hls(spLocs)...))
	}
	return issues
}

// spacingOK reports whether sep satisfies policy.
func spacingOK(sep string, policy qa.SpacingPolicy) bool {
	switch policy {
	case qa.SpacingNone:
		return sep == ""
	case qa.SpacingSpace:
		return sep != ""
	case qa.SpacingNBSP:
		r, size := utf8.DecodeRuneInString(sep)
		return size == len(sep) && isNBSP(r)
	default:
		return true
	}
}

func spacingName(policy qa.SpacingPolicy) string {
	switch policy {
	case qa.SpacingNone:
		return i18n.T("no space")
	case qa.SpacingSpace:
		return i18n.T("a space")
	case qa.SpacingNBSP:
		return i18n.T("a non-breaking space")
	default:
		return i18n.T("any spacing")
	}
}
