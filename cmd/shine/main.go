package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shine/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "shine",
	Short: "Semantic syntax highlighter for Rust sources",
	Long:  `Shine classifies every meaningful token of a source file into semantic tags and modifiers and renders the result for terminals, tools, and editors.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(spansCmd)
	rootCmd.AddCommand(legendCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers for directories (0 = all cores)")
	rootCmd.PersistentFlags().String("theme", "", "path to a TOML theme file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color mode against the terminal and the global
// NO_COLOR switch fatih/color honors.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout) && !color.NoColor
	}
}
