// Package resource defines the in-memory model of a named string with
// its locale-tagged translations, and resolves the logical storage
// location of a resource file.
//
// The invariant (default) language is the empty locale tag. A resource
// is considered complete only once it has non-empty invariant text;
// incomplete resources are still carried through import so the caller
// can decide what to do with them.
package resource

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ressync/ressync/langtag"
)

// StringResource is one named string plus all its translations.
type StringResource struct {
	// Name is the resource key, stable across locales.
	Name string `yaml:"name"`
	// StorageLocation is the logical group the resource belongs to:
	// relative directory plus base file name, "/"-joined. It names the
	// destination files on export.
	StorageLocation string `yaml:"location,omitempty"`
	// Note is free-form translator commentary.
	Note string `yaml:"note,omitempty"`
	// Translations maps locale tag → text. The "" key is the invariant
	// language.
	Translations map[string]string `yaml:"translations"`
}

// New creates an empty resource with the given name and storage
// location. The invariant text starts empty.
func New(name, location string) *StringResource {
	return &StringResource{
		Name:            name,
		StorageLocation: location,
		Translations:    map[string]string{},
	}
}

// SetText sets the translation for a locale tag, replacing any
// previous text for that exact tag.
func (r *StringResource) SetText(tag, text string) {
	if r.Translations == nil {
		r.Translations = map[string]string{}
	}
	r.Translations[tag] = text
}

// Text returns the translation for a locale tag.
func (r *StringResource) Text(tag string) (string, bool) {
	text, ok := r.Translations[tag]
	return text, ok
}

// InvariantText returns the default-language text, or "" if unset.
func (r *StringResource) InvariantText() string {
	return r.Translations[""]
}

// HasInvariant reports whether the resource carries non-empty
// invariant text. Resources without it are orphans: translations of a
// string the default language does not define.
func (r *StringResource) HasInvariant() bool {
	return r.Translations[""] != ""
}

// Tags returns the resource's locale tags sorted with the invariant
// tag first.
func (r *StringResource) Tags() []string {
	tags := make([]string, 0, len(r.Translations))
	for tag := range r.Translations {
		tags = append(tags, tag)
	}
	sort.Strings(tags) // "" sorts first
	return tags
}

// ---------------------------------------------------------------------------
// Storage location resolution
// ---------------------------------------------------------------------------

// Location computes the logical storage location for a resource file
// beneath root: the file's directory relative to root joined with its
// base name, stripped of the extension and of the locale suffix. All
// locale variants of one group resolve to the same location, because
// the same extraction (langtag.Extract) runs here and at decode time.
func Location(root, file string) (string, error) {
	rel, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil {
		return "", fmt.Errorf("resolving %s against %s: %w", file, root, err)
	}

	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if tag := langtag.Extract(file); tag != "" {
		base = strings.TrimSuffix(base, "_"+tag)
	}

	if rel == "." {
		return base, nil
	}
	return path.Join(filepath.ToSlash(rel), base), nil
}
