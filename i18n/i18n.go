// Package i18n localizes the messages qakit attaches to issues and prints
// in its CLI.
//
// It wraps the gotext library. Catalogs are embedded in the binary via
// //go:embed and selected once at startup with Init(). Until Init is called,
// or when a message has no translation, the English msgid is returned.
//
// Usage:
//
//	i18n.Init("")  // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	msg := i18n.Tf("Terminology violation: %q", term)
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the translation catalogs.
// Directory structure: locales/{lang}/LC_MESSAGES/qakit.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for qakit.
const domain = "qakit"

// po is the gotext locale used for lookups. It is written only by Init.
var po *gotext.Locale

// Init selects the message catalog. If lang is empty, it auto-detects from
// LANGUAGE, LC_ALL, LC_MESSAGES, LANG (in that order, as GNU gettext does).
//
// Init must be called before validation starts; lookups are read-only.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a message. Untranslated messages are returned unchanged.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// Tf translates a format string and applies args to it.
func Tf(format string, args ...any) string {
	return fmt.Sprintf(T(format), args...)
}

// N translates a message with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage reads the locale environment variables following GNU
// gettext priority: LANGUAGE > LC_ALL > LC_MESSAGES > LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE can be a colon-separated list; take the first
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip encoding suffix (e.g. "ru_RU.UTF-8" -> "ru_RU")
		val, _, _ = strings.Cut(val, ".")
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
