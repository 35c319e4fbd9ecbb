// ressync — synchronizes .properties resource files with a flat model
// of named strings and their locale-tagged translations.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ressync/ressync/config"
	"github.com/ressync/ressync/exporter"
	"github.com/ressync/ressync/i18n"
	"github.com/ressync/ressync/importer"
	"github.com/ressync/ressync/langtag"
	"github.com/ressync/ressync/resource"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ressync",
		Short: "Synchronize .properties resource files with a string-resource model",
		Long: `ressync — .properties resource file synchronizer.

Resource files follow the naming convention basename.properties for the
invariant (default) language and basename_xx.properties or
basename_xx-YY.properties for translations. Files may live in nested
directories; the relative path is part of a resource group's identity.

Commands:
  status    Show resource groups and per-locale translation statistics
  import    Scan the resource tree and dump the records as YAML
  export    Merge a YAML record dump back into the resource tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newImportCmd(),
		newExportCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// loadProject resolves the configuration for the current --root,
// falling back to defaults when no .ressync.yaml exists.
func loadProject() (*config.Config, string, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, "", err
	}
	if cfg == nil {
		cfg = config.Default(rootDir)
	}
	return cfg, cfg.AbsRoot(rootDir), nil
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ressync version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only: groups + per-locale stats)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show resource groups and translation statistics",
		Long: `Scan the resource tree and show per-locale translation statistics.

Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	cfg, resRoot, err := loadProject()
	if err != nil {
		return err
	}

	records, err := importer.Import(resRoot)
	if err != nil {
		return err
	}

	absRoot, _ := filepath.Abs(resRoot)
	fmt.Fprintf(os.Stderr, "\n%sProject%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  Name:       %s\n", cfg.Project)
	fmt.Fprintf(os.Stderr, "  Root:       %s\n", absRoot)

	if len(records) == 0 {
		logInfo(i18n.T("No resources found under %s"), resRoot)
		return nil
	}

	groups := map[string]bool{}
	perLocale := map[string]int{}
	orphans := 0
	for _, r := range records {
		groups[r.StorageLocation] = true
		for tag, text := range r.Translations {
			if text != "" {
				perLocale[tag]++
			}
		}
		if !r.HasInvariant() {
			orphans++
		}
	}
	fmt.Fprintf(os.Stderr, "  Groups:     %d\n", len(groups))
	fmt.Fprintf(os.Stderr, "  Resources:  %d\n", len(records))
	if orphans > 0 {
		fmt.Fprintf(os.Stderr, "  Orphans:    %d (no invariant text)\n", orphans)
	}
	fmt.Fprintln(os.Stderr)

	// Locales column: everything seen on disk plus everything declared.
	tags := make([]string, 0, len(perLocale))
	seen := map[string]bool{}
	for tag := range perLocale {
		tags = append(tags, tag)
		seen[tag] = true
	}
	for _, tag := range cfg.Languages {
		if !seen[tag] {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags) // invariant ("") first

	fmt.Fprintf(os.Stderr, "%sTranslation Statistics%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "\n%-10s %-16s %-12s %-8s\n", "Locale", "Language", "Translated", "Percent")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 48))

	total := len(records)
	for _, tag := range tags {
		translated := perLocale[tag]
		percent := 0
		if total > 0 {
			percent = translated * 100 / total
		}
		label := tag
		if tag == "" {
			label = "-"
		}
		fmt.Fprintf(os.Stderr, "%-10s %-16s %-12d %d%%\n", label, langtag.Name(tag), translated, percent)
	}
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 48))
	fmt.Fprintf(os.Stderr, "Total resources: %d\n\n", total)

	return nil
}

// ---------------------------------------------------------------------------
// import (scan tree, dump records)
// ---------------------------------------------------------------------------

func newImportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Scan the resource tree and dump the records as YAML",
		Long: `Scan all .properties files under the resource root and dump the
resulting string resources as YAML, for consumption by a host
application.

Records without invariant-language text are included; filtering them
is up to the consumer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the dump to a file instead of stdout")

	return cmd
}

func runImport(output string) error {
	_, resRoot, err := loadProject()
	if err != nil {
		return err
	}

	logInfo(i18n.T("Importing resources from %s"), resRoot)

	records, err := importer.Import(resRoot)
	if err != nil {
		return err
	}
	logInfo(i18n.N("%d resource imported", "%d resources imported", len(records)), len(records))

	data, err := yaml.Marshal(records)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	logSuccess("Wrote %s", output)
	return nil
}

// ---------------------------------------------------------------------------
// export (merge record dump into the tree)
// ---------------------------------------------------------------------------

func newExportCmd() *cobra.Command {
	var (
		input   string
		project string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Merge a YAML record dump back into the resource tree",
		Long: `Read a YAML record dump (as produced by 'ressync import') and write
the translations back into the .properties files under the resource
root.

Entries already on disk that the record set does not know about are
preserved. Each destination file is reported individually; a file that
cannot be read or written does not stop the others.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(input, project)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Record dump to read (default: stdin)")
	cmd.Flags().StringVar(&project, "project", "", "Project identifier (default: from config)")

	return cmd
}

func runExport(input, project string) error {
	cfg, resRoot, err := loadProject()
	if err != nil {
		return err
	}
	if project == "" {
		project = cfg.Project
	}

	var data []byte
	if input == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("reading record dump: %w", err)
	}

	var records []*resource.StringResource
	if err := yaml.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing record dump: %w", err)
	}

	logInfo(i18n.T("Exporting resources to %s"), resRoot)

	written, failed := 0, 0
	for _, o := range exporter.Export(project, resRoot, records) {
		if o.OK() {
			logSuccess("Wrote %s", o.Path)
			written++
		} else {
			logError("%s: %v", o.Path, o.Err)
			failed++
		}
	}

	logInfo(i18n.N("%d file written", "%d files written", written), written)
	if failed > 0 {
		logWarning(i18n.N("%d file failed", "%d files failed", failed), failed)
		return fmt.Errorf("export finished with %d failed file(s)", failed)
	}

	logSuccess(i18n.T("Export complete!"))
	return nil
}
