// Package exporter writes string resources back to .properties files,
// merging into existing on-disk content.
//
// Every (resource, locale) pair is an update aimed at one destination
// file: root/location[_tag].properties. Updates are grouped per file;
// each file is loaded at most once per Export call and written at most
// once, after all its updates have been folded in. Entries already on
// disk that the resource set does not know about are preserved.
//
// Per destination file the life cycle is: unseen → loaded (fresh or
// from disk) → updated N times → written or failed. A file that fails
// to load stays failed for the rest of the call; its updates are
// reported as errors and never merged, and its on-disk content is left
// untouched.
package exporter

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/ressync/ressync/langtag"
	"github.com/ressync/ressync/propfile"
	"github.com/ressync/ressync/resource"
)

// Outcome is the result for one destination file touched by an export.
// Load failures produce one Outcome per update aimed at the file;
// writes produce exactly one Outcome per file.
type Outcome struct {
	// Project is the identifier the export was invoked for.
	Project string
	// Path is the destination file.
	Path string
	// Err is nil on success.
	Err error
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Err == nil }

// fileState accumulates all updates for one destination file. It lives
// only for the duration of a single Export call.
type fileState struct {
	entries []propfile.Entry
	index   map[string]int
	// touched maps updated keys to the record backing them. The value
	// written for a touched key is re-selected at write time from the
	// file's own locale.
	touched map[string]*resource.StringResource
	loadErr error
}

// Export persists records beneath root and returns one outcome per
// destination file (plus one error outcome per update whose file
// failed to load). Files are written in first-touched order; no
// ordering is guaranteed across files beyond that.
func Export(project, root string, records []*resource.StringResource) []Outcome {
	var outcomes []Outcome

	files := make(map[string]*fileState)
	var order []string

	for _, rec := range records {
		for _, tag := range rec.Tags() {
			dest := destPath(root, rec.StorageLocation, tag)

			st, ok := files[dest]
			if !ok {
				st = loadState(dest)
				files[dest] = st
				order = append(order, dest)
			}
			if st.loadErr != nil {
				// Failed is terminal: report, never retry or merge.
				outcomes = append(outcomes, Outcome{Project: project, Path: dest, Err: st.loadErr})
				continue
			}

			text, _ := rec.Text(tag)
			st.apply(rec, text)
		}
	}

	for _, dest := range order {
		st := files[dest]
		if st.loadErr != nil {
			continue
		}

		// One file, one locale: whatever locales logically touched this
		// file, the text written is the one for the locale its own name
		// implies. Only the indexed occurrence of a key is repainted;
		// earlier duplicate occurrences stay as they were on disk.
		tag := langtag.Extract(dest)
		out := make([]propfile.Entry, len(st.entries))
		for i, e := range st.entries {
			if rec, ok := st.touched[e.Key]; ok && st.index[e.Key] == i {
				e.Value, _ = rec.Text(tag)
			}
			out[i] = e
		}

		if err := propfile.WriteFile(dest, out); err != nil {
			outcomes = append(outcomes, Outcome{Project: project, Path: dest, Err: err})
			continue
		}
		outcomes = append(outcomes, Outcome{Project: project, Path: dest})
	}

	return outcomes
}

// destPath builds root/location[_tag].properties. The storage location
// uses "/" separators regardless of platform.
func destPath(root, location, tag string) string {
	rel := location
	if tag != "" {
		rel += "_" + tag
	}
	return filepath.Join(root, filepath.FromSlash(rel+propfile.Extension))
}

// loadState loads a destination file once. A missing file yields a
// fresh empty state; any other read failure marks the state failed.
func loadState(path string) *fileState {
	st := &fileState{
		index:   make(map[string]int),
		touched: make(map[string]*resource.StringResource),
	}

	entries, err := propfile.DecodeFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return st
		}
		st.loadErr = err
		return st
	}

	st.entries = entries
	for i, e := range entries {
		// Duplicate keys: the last occurrence is the one updates land on.
		st.index[e.Key] = i
	}
	return st
}

// apply folds one update into the state: overwrite the existing entry
// for the key, or append a new one with empty default text first.
func (st *fileState) apply(rec *resource.StringResource, text string) {
	idx, ok := st.index[rec.Name]
	if !ok {
		idx = len(st.entries)
		st.entries = append(st.entries, propfile.Entry{Key: rec.Name})
		st.index[rec.Name] = idx
	}
	st.entries[idx].Value = text
	st.touched[rec.Name] = rec
}
