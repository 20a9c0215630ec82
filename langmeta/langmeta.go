// Package langmeta provides display metadata (native names and emoji flags)
// for language tags, used in CLI output.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes language display metadata.
type Meta struct {
	Tag  string
	Name string
	Flag string
}

// Resolve returns best-effort metadata for a language code. Variants like
// pt_BR and pt-BR are accepted. The flag comes from the region, inferred
// from the language when the tag has none. Unknown codes keep the code as
// their name and get no flag.
func Resolve(lang string) Meta {
	m := Meta{Tag: lang, Name: lang}
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return m
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return m
	}
	m.Tag = tag.String()
	if name := display.Self.Name(tag); name != "" {
		m.Name = name
	}
	if region, conf := tag.Region(); conf != language.No {
		m.Flag = FlagFromRegion(region.String())
	}
	return m
}

// Label formats a language for log lines: "Deutsch (de)".
func Label(lang string) string {
	m := Resolve(lang)
	if m.Name == lang || lang == "" {
		return lang
	}
	return m.Name + " (" + lang + ")"
}

// FlagFromRegion turns a two-letter region code into its emoji flag.
// Numeric and other codes have no flag.
func FlagFromRegion(region string) string {
	if len(region) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(region) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + r - 'A')
	}
	return b.String()
}
