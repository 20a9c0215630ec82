// Package preset provides static locale-keyed defaults for punctuation,
// quotes, numbers and measurement units, and merges them into settings.
//
// Each table is resolved independently: exact locale tag, canonical tag,
// primary language subtag, then "en". Unknown locales never fail.
package preset

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/minios-linux/qakit/qa"
)

// DefaultLocale is the final fallback of every table.
const DefaultLocale = "en"

// canonicalize normalizes a locale tag: pt_br -> pt-BR, " EN-us " -> en-US.
func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	if tag, err := language.Parse(normalized); err == nil {
		return tag.String()
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// primary returns the language subtag of a locale tag.
func primary(lang string) string {
	c := canonicalize(lang)
	if i := strings.IndexByte(c, '-'); i >= 0 {
		return c[:i]
	}
	return c
}

// Resolve returns the entry for lang from table with exact, canonical,
// primary-subtag and "en" fallbacks. The matched key is returned too.
func Resolve[T any](table map[string]T, lang string) (T, string) {
	if v, ok := table[lang]; ok {
		return v, lang
	}
	c := canonicalize(lang)
	if v, ok := table[c]; ok {
		return v, c
	}
	if p := primary(lang); p != "" {
		if v, ok := table[p]; ok {
			return v, p
		}
	}
	return table[DefaultLocale], DefaultLocale
}

// ---------------------------------------------------------------------------
// Applying presets
// ---------------------------------------------------------------------------

// ApplyPunctuation sets the spacing grid and end-punctuation ignore set
// from the target locale.
func ApplyPunctuation(s *qa.Settings, targetLang string) {
	p, _ := Resolve(Punctuation, targetLang)
	s.Punctuation.SpacingRules = p.Grid
	s.Punctuation.EndIgnore = p.EndIgnore
}

// ApplyQuotes sets quote pairs for both sides and the target apostrophe whitelist.
func ApplyQuotes(s *qa.Settings, sourceLang, targetLang string) {
	src, _ := Resolve(Quotes, sourceLang)
	tgt, _ := Resolve(Quotes, targetLang)
	s.Quotes.SourcePairs = slices.Clone(src.Pairs)
	s.Quotes.TargetPairs = slices.Clone(tgt.Pairs)
	s.Quotes.AllowedApostrophes = tgt.Apostrophes
}

// ApplyNumbers sets the number formats of both sides.
func ApplyNumbers(s *qa.Settings, sourceLang, targetLang string) {
	src, _ := Resolve(Numbers, sourceLang)
	tgt, _ := Resolve(Numbers, targetLang)
	s.Numbers.Source = cloneFormat(src)
	s.Numbers.Target = cloneFormat(tgt)
}

// ApplyUnits sets measurement and temperature units from the target locale.
func ApplyUnits(s *qa.Settings, targetLang string) {
	u, _ := Resolve(Units, targetLang)
	s.Measurements.Units = slices.Clone(u.Units)
	s.Measurements.Spacing = u.Spacing
	s.Measurements.TemperatureUnits = slices.Clone(u.TemperatureUnits)
	s.Measurements.TemperatureSpacing = u.TemperatureSpacing
}

// ApplyAll applies every table using the settings' own languages.
func ApplyAll(s *qa.Settings) {
	ApplyPunctuation(s, s.TargetLang)
	ApplyQuotes(s, s.SourceLang, s.TargetLang)
	ApplyNumbers(s, s.SourceLang, s.TargetLang)
	ApplyUnits(s, s.TargetLang)
}

// Names of the tables, as used in configuration files.
const (
	TablePunctuation = "punctuation"
	TableQuotes      = "quotes"
	TableNumbers     = "numbers"
	TableUnits       = "units"
)

// Tables lists every table name.
func Tables() []string {
	return []string{TablePunctuation, TableQuotes, TableNumbers, TableUnits}
}

// Apply applies the named tables. Unknown names are reported back.
func Apply(s *qa.Settings, tables []string) (unknown []string) {
	for _, t := range tables {
		switch t {
		case TablePunctuation:
			ApplyPunctuation(s, s.TargetLang)
		case TableQuotes:
			ApplyQuotes(s, s.SourceLang, s.TargetLang)
		case TableNumbers:
			ApplyNumbers(s, s.SourceLang, s.TargetLang)
		case TableUnits:
			ApplyUnits(s, s.TargetLang)
		default:
			unknown = append(unknown, t)
		}
	}
	return unknown
}

func cloneFormat(f qa.NumberFormat) qa.NumberFormat {
	f.Words = maps.Clone(f.Words)
	return f
}
