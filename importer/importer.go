// Package importer scans a directory tree of .properties files and
// folds them into a flat set of string resources.
//
// Files sharing a base name are locale variants of one group
// (strings.properties, strings_de.properties, ...); the group's
// logical identity is its path relative to the root plus the base
// name. One resource record is produced per (group, key), carrying the
// text for every locale that defines it.
package importer

import (
	"io/fs"
	"path/filepath"

	"github.com/ressync/ressync/langtag"
	"github.com/ressync/ressync/propfile"
	"github.com/ressync/ressync/resource"
)

// resKey identifies a resource across locale variants.
type resKey struct {
	location string
	name     string
}

// Import walks root recursively and returns every string resource
// found, in first-encounter order. Within one (group, key, locale)
// triple the last file processed wins; distinct locales never
// overwrite each other.
//
// Records whose group never defines invariant text are returned too —
// filtering orphans is the caller's decision, not the importer's.
//
// Any unreadable file aborts the whole import with that file's error;
// there is no partial result.
func Import(root string) ([]*resource.StringResource, error) {
	byKey := make(map[resKey]*resource.StringResource)
	var records []*resource.StringResource

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != propfile.Extension {
			return nil
		}

		entries, err := propfile.DecodeFile(path)
		if err != nil {
			return err
		}

		tag := langtag.Extract(path)
		location, err := resource.Location(root, path)
		if err != nil {
			return err
		}

		for _, e := range entries {
			k := resKey{location: location, name: e.Key}
			rec, ok := byKey[k]
			if !ok {
				rec = resource.New(e.Key, location)
				byKey[k] = rec
				records = append(records, rec)
			}
			rec.SetText(tag, e.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
