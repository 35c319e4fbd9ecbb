package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ressync/ressync/resource"
)

func newRes(t *testing.T, name, location string, texts map[string]string) *resource.StringResource {
	t.Helper()
	r := resource.New(name, location)
	for tag, text := range texts {
		r.SetText(tag, text)
	}
	return r
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestExport_OneFilePerLocale(t *testing.T) {
	root := t.TempDir()
	rec := newRes(t, "greeting", "strings", map[string]string{
		"":   "Hello",
		"de": "Hallo",
	})

	outcomes := Export("demo", root, []*resource.StringResource{rec})
	for _, o := range outcomes {
		if !o.OK() {
			t.Fatalf("outcome for %s: %v", o.Path, o.Err)
		}
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}

	if got := readFile(t, filepath.Join(root, "strings.properties")); got != "greeting = Hello\n" {
		t.Errorf("invariant file = %q", got)
	}
	if got := readFile(t, filepath.Join(root, "strings_de.properties")); got != "greeting = Hallo\n" {
		t.Errorf("de file = %q", got)
	}
}

func TestExport_PreservesUnknownEntries(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "sub", "strings.properties")
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dest, []byte("greeting = Hello\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := newRes(t, "farewell", "sub/strings", map[string]string{"": "Bye"})
	outcomes := Export("demo", root, []*resource.StringResource{rec})

	if len(outcomes) != 1 || !outcomes[0].OK() {
		t.Fatalf("outcomes = %v", outcomes)
	}
	want := "greeting = Hello\nfarewell = Bye\n"
	if got := readFile(t, dest); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestExport_OverwritesExistingKey(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "strings.properties")
	if err := os.WriteFile(dest, []byte("greeting = Old\nother = Kept\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := newRes(t, "greeting", "strings", map[string]string{"": "New"})
	Export("demo", root, []*resource.StringResource{rec})

	want := "greeting = New\nother = Kept\n"
	if got := readFile(t, dest); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestExport_DuplicateKeyUpdatesLastOccurrenceOnly(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "strings.properties")
	if err := os.WriteFile(dest, []byte("key = a\nkey = b\nother = x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := newRes(t, "key", "strings", map[string]string{"": "new"})
	outcomes := Export("demo", root, []*resource.StringResource{rec})
	if len(outcomes) != 1 || !outcomes[0].OK() {
		t.Fatalf("outcomes = %v", outcomes)
	}

	// The last occurrence is the one the merge lands on; the earlier
	// duplicate is preserved verbatim.
	want := "key = a\nkey = new\nother = x\n"
	if got := readFile(t, dest); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestExport_Idempotent(t *testing.T) {
	recs := []*resource.StringResource{
		newRes(t, "greeting", "strings", map[string]string{"": "Hello", "fr": "Bonjour"}),
		newRes(t, "farewell", "strings", map[string]string{"": "Bye", "fr": "Au revoir"}),
	}

	first := t.TempDir()
	second := t.TempDir()
	Export("demo", first, recs)
	Export("demo", second, recs)

	for _, name := range []string{"strings.properties", "strings_fr.properties"} {
		a := readFile(t, filepath.Join(first, name))
		b := readFile(t, filepath.Join(second, name))
		if a != b {
			t.Errorf("%s differs between runs: %q vs %q", name, a, b)
		}
	}

	// Exporting again over the first run's output must not change it.
	before := readFile(t, filepath.Join(first, "strings.properties"))
	Export("demo", first, recs)
	after := readFile(t, filepath.Join(first, "strings.properties"))
	if before != after {
		t.Errorf("re-export changed file: %q vs %q", before, after)
	}
}

func TestExport_LoadFailureIsolatedPerFile(t *testing.T) {
	root := t.TempDir()
	// A directory standing where the destination file should be makes
	// the read fail without the path being absent.
	if err := os.MkdirAll(filepath.Join(root, "strings.properties"), 0755); err != nil {
		t.Fatal(err)
	}

	recs := []*resource.StringResource{
		newRes(t, "greeting", "strings", map[string]string{"": "Hello"}),
		newRes(t, "farewell", "strings", map[string]string{"": "Bye"}),
		newRes(t, "open", "menu", map[string]string{"": "Open"}),
	}
	outcomes := Export("demo", root, recs)

	var failed, succeeded int
	for _, o := range outcomes {
		if o.OK() {
			succeeded++
		} else {
			failed++
			if o.Path != filepath.Join(root, "strings.properties") {
				t.Errorf("unexpected failed path %s", o.Path)
			}
		}
	}
	// Exactly one error outcome per update aimed at the bad file.
	if failed != 2 {
		t.Errorf("failed outcomes = %d, want 2", failed)
	}
	// The unrelated file is still written.
	if succeeded != 1 {
		t.Errorf("succeeded outcomes = %d, want 1", succeeded)
	}
	if got := readFile(t, filepath.Join(root, "menu.properties")); got != "open = Open\n" {
		t.Errorf("menu file = %q", got)
	}
}

func TestExport_WriteFailureReported(t *testing.T) {
	root := t.TempDir()
	// A dangling symlink whose target sits in a missing directory reads
	// as absent (the load yields a fresh state) but cannot be created on
	// write.
	dest := filepath.Join(root, "strings.properties")
	if err := os.Symlink(filepath.Join(root, "missing", "strings.properties"), dest); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	recs := []*resource.StringResource{
		newRes(t, "greeting", "strings", map[string]string{"": "Hello"}),
		newRes(t, "farewell", "strings", map[string]string{"": "Bye"}),
	}
	outcomes := Export("demo", root, recs)

	// A write failure is reported once per file, not once per update —
	// that distinguishes it from a load failure.
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d: %v", len(outcomes), outcomes)
	}
	o := outcomes[0]
	if o.OK() {
		t.Fatalf("unexpected success for %s", o.Path)
	}
	if o.Path != dest {
		t.Errorf("failed path = %s, want %s", o.Path, dest)
	}
	if !strings.Contains(o.Err.Error(), "writing") {
		t.Errorf("error = %q, want a write error", o.Err)
	}
}

func TestExport_ParentBlockedByFileReported(t *testing.T) {
	root := t.TempDir()
	// A plain file standing where the "blocked" directory should be.
	if err := os.WriteFile(filepath.Join(root, "blocked"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	rec := newRes(t, "greeting", "blocked/strings", map[string]string{"": "Hello"})
	outcomes := Export("demo", root, []*resource.StringResource{rec})

	if len(outcomes) == 0 {
		t.Fatal("expected at least one outcome")
	}
	for _, o := range outcomes {
		if o.OK() {
			t.Errorf("unexpected success for %s", o.Path)
		}
	}
}

func TestExport_OrphanWritesOnlyItsLocale(t *testing.T) {
	root := t.TempDir()
	rec := newRes(t, "ghost", "strings", map[string]string{"de": "Geist"})

	outcomes := Export("demo", root, []*resource.StringResource{rec})
	if len(outcomes) != 1 || !outcomes[0].OK() {
		t.Fatalf("outcomes = %v", outcomes)
	}
	if _, err := os.Stat(filepath.Join(root, "strings.properties")); err == nil {
		t.Error("invariant file written for locale-only record")
	}
	if got := readFile(t, filepath.Join(root, "strings_de.properties")); got != "ghost = Geist\n" {
		t.Errorf("de file = %q", got)
	}
}

func TestExport_ProjectCarriedInOutcomes(t *testing.T) {
	root := t.TempDir()
	rec := newRes(t, "greeting", "strings", map[string]string{"": "Hello"})
	outcomes := Export("myproj", root, []*resource.StringResource{rec})
	if len(outcomes) != 1 || outcomes[0].Project != "myproj" {
		t.Errorf("outcomes = %v", outcomes)
	}
}
