package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shine/internal/diag"
	"shine/internal/driver"
	"shine/internal/render"
	"shine/internal/source"
)

var (
	highlightGutter  bool
	highlightNoCache bool
	highlightStrict  bool
)

func init() {
	highlightCmd.Flags().BoolVar(&highlightGutter, "gutter", false, "show a line number column")
	highlightCmd.Flags().BoolVar(&highlightNoCache, "no-cache", false, "bypass the on-disk result cache")
	highlightCmd.Flags().BoolVar(&highlightStrict, "strict", false, "disable shape-based guesses for unresolved names")
}

var highlightCmd = &cobra.Command{
	Use:   "highlight <file-or-dir>",
	Short: "Render highlighted source to the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, theme, err := driverOptions(cmd, !highlightNoCache, !highlightStrict)
		if err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		timings, _ := cmd.Flags().GetBool("timings")

		ansi := &render.ANSI{Theme: theme, Gutter: highlightGutter, NoColor: !useColor(cmd)}

		results, err := collectResults(cmd, args[0], opts)
		if err != nil {
			return err
		}
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
				continue
			}
			if len(results) > 1 && !quiet {
				fmt.Printf("== %s ==\n", res.Path)
			}
			if err := ansi.Write(os.Stdout, res.Set, res.FileID, res.Ranges); err != nil {
				return err
			}
			printDiagnostics(res.Bag, res.Set, quiet)
			if timings && res.Timing != nil {
				fmt.Fprintf(os.Stderr, "%s: %.2f ms\n", res.Path, res.Timing.TotalMS)
			}
		}
		return nil
	},
}

// driverOptions assembles driver options from the persistent flags.
func driverOptions(cmd *cobra.Command, cache, syntacticRefs bool) (driver.Options, *render.Theme, error) {
	jobs, _ := cmd.Flags().GetInt("jobs")
	timings, _ := cmd.Flags().GetBool("timings")
	themePath, _ := cmd.Flags().GetString("theme")

	opts := driver.Options{
		Jobs:              jobs,
		SyntacticNameRefs: syntacticRefs,
		Timings:           timings,
	}
	if cache {
		if dc, err := driver.OpenDiskCache("shine"); err == nil {
			opts.Cache = dc
		}
	}
	theme, err := render.ThemeFromFileOrDefault(themePath)
	if err != nil {
		return opts, nil, err
	}
	return opts, theme, nil
}

// collectResults highlights a single file or a whole directory.
func collectResults(cmd *cobra.Command, path string, opts driver.Options) ([]driver.FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return driver.HighlightDir(cmd.Context(), path, opts)
	}
	res, err := driver.HighlightFile(path, opts)
	if err != nil {
		return nil, err
	}
	return []driver.FileResult{res}, nil
}

// printDiagnostics writes collected lex/parse/highlight diagnostics to
// stderr, sorted by position.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet, quiet bool) {
	if bag == nil || bag.Len() == 0 || quiet {
		return
	}
	bag.Sort()
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		path := fs.Get(d.Primary.File).Path
		fmt.Fprintf(os.Stderr, "%s %s:%d:%d %s\n", d.Code.ID(), path, start.Line, start.Col, d.Message)
	}
}
