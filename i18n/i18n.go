// Package i18n localizes ressync's own user-facing strings.
//
// It wraps the gotext library behind T() and N(). Translations are
// embedded in the binary and loaded once at startup via Init(); a tool
// that pushes translations around ought to be translated itself.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the translation catalogs.
// Directory structure: locales/{lang}/LC_MESSAGES/ressync.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for ressync.
const domain = "ressync"

var po *gotext.Locale

// Init loads the catalog for lang, auto-detecting from the environment
// (LANGUAGE, LC_ALL, LC_MESSAGES, LANG, in GNU gettext order) when lang
// is empty. Call once at startup, before any T or N.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a string, returning it unchanged when no translation is
// available.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a string with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage follows GNU gettext conventions: LANGUAGE beats
// LC_ALL beats LC_MESSAGES beats LANG; "C" and "POSIX" mean none.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE can be a colon-separated list; take the first.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip encoding suffix ("de_DE.UTF-8" -> "de_DE").
		val, _, _ = strings.Cut(val, ".")
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
