// Package propfile implements reading and writing of .properties resource
// files as used by ressync.
//
// Format: key=value pairs, one per line, split at the first '='. Lines
// whose first non-blank character is '#' or '!' are comments and are
// skipped; lines without a '=' are skipped as well. There is no escape
// processing and no line continuation — each line is independent.
//
// Files are stored in ISO 8859-1 (Latin-1), one byte per character.
// Serialization writes only key/value content ("key = value" lines);
// comments and blank lines from the source are not carried over.
//
// File naming convention: each locale is a separate file sharing a base
// name:
//
//	strings.properties        (invariant / default language)
//	strings_de.properties     (German)
//	strings_de-DE.properties  (German, Germany)
package propfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Extension identifies resource files handled by this package.
const Extension = ".properties"

// Entry is a single key/value pair in document order. Decode retains
// duplicate keys; precedence (last occurrence wins) is applied by the
// layers that fold entries into a map.
type Entry struct {
	Key   string
	Value string
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

// DecodeFile reads and decodes a .properties file from disk.
func DecodeFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data), nil
}

// Decode decodes .properties content from a byte slice. Malformed lines
// are dropped, never rejected — there is no error path.
func Decode(data []byte) []Entry {
	text := decodeLatin1(data)
	// Normalise Windows and old Mac line endings.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var entries []Entry
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(raw, " \t")

		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
			continue
		}

		eq := strings.IndexByte(trimmed, '=')
		if eq < 0 {
			continue
		}

		key := strings.TrimSpace(trimmed[:eq])
		// Trailing whitespace in the value is significant.
		value := strings.TrimLeft(trimmed[eq+1:], " \t")
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// Encode serialises entries to .properties format, one "key = value"
// line per entry, in Latin-1. Runes outside the charset are written
// as '?'.
func Encode(entries []Entry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		writeLatin1(&buf, e.Key)
		buf.WriteString(" = ")
		writeLatin1(&buf, e.Value)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// WriteFile serialises entries and writes them to path, creating parent
// directories with 0755 permissions.
func WriteFile(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, Encode(entries), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Latin-1 conversion
// ---------------------------------------------------------------------------

// decodeLatin1 maps every input byte to its Latin-1 rune. Every byte is
// valid, so decoding cannot fail.
func decodeLatin1(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(b))
	}
	return sb.String()
}

// writeLatin1 encodes s to Latin-1, substituting '?' for runes the
// charset cannot represent.
func writeLatin1(buf *bytes.Buffer, s string) {
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		buf.WriteByte(b)
	}
}
