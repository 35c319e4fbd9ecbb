// Package langtag derives locale tags from resource file names and
// provides language display metadata for the CLI.
//
// A locale tag is either empty (the invariant / default language) or
// "language[-COUNTRY]" where language is 2+ lowercase letters and
// COUNTRY, when present, is 2+ uppercase letters. Tags are never typed
// freely; they come from file names following the convention
//
//	strings.properties        → ""       (invariant)
//	strings_de.properties     → "de"
//	strings_de-DE.properties  → "de-DE"
package langtag

import (
	"path/filepath"
	"regexp"
	"strings"
)

// suffixRe matches a locale suffix at the end of a file's base name,
// immediately before the extension (or the end of the name). Group 1 is
// the tag without the leading underscore.
var suffixRe = regexp.MustCompile(`_([a-z]{2,}(?:-[A-Z]{2,})?)(?:\.[^.]*)?$`)

// tagRe is the shape of a non-empty locale tag.
var tagRe = regexp.MustCompile(`^[a-z]{2,}(-[A-Z]{2,})?$`)

// Extract returns the locale tag embedded in a file name, or "" when
// the name carries none. The name may include a path. Extract is pure
// and total; it cannot fail.
//
// A base name that happens to end in a tag-shaped word is extracted as
// a tag: "my_file.properties" yields "file". This ambiguity is inherent
// to the naming convention and is deliberately not second-guessed.
func Extract(fileName string) string {
	m := suffixRe.FindStringSubmatch(filepath.Base(fileName))
	if m == nil {
		return ""
	}
	return m[1]
}

// Valid reports whether tag is a well-formed locale tag. The empty tag
// (invariant language) is valid.
func Valid(tag string) bool {
	return tag == "" || tagRe.MatchString(tag)
}

// ---------------------------------------------------------------------------
// Display metadata
// ---------------------------------------------------------------------------

// names maps language codes to English display names for status output.
// Country variants fall back to the bare language entry in Name().
var names = map[string]string{
	"ar": "Arabic",
	"cs": "Czech",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"fi": "Finnish",
	"fr": "French",
	"he": "Hebrew",
	"hu": "Hungarian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"nl": "Dutch",
	"no": "Norwegian",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sv": "Swedish",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"zh": "Chinese",
}

// Name returns a best-effort display name for a locale tag. The empty
// tag names the invariant language; unknown tags are returned as-is.
func Name(tag string) string {
	if tag == "" {
		return "invariant"
	}
	if n, ok := names[tag]; ok {
		return n
	}
	lang, _, found := strings.Cut(tag, "-")
	if found {
		if n, ok := names[lang]; ok {
			return n + " (" + tag + ")"
		}
	}
	return tag
}
