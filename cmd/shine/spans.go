package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"shine/internal/driver"
	"shine/internal/lsp"
	"shine/internal/render"
)

var spansLSP bool

func init() {
	spansCmd.Flags().BoolVar(&spansLSP, "lsp", false, "emit LSP semanticTokens JSON instead of the plain listing")
}

var spansCmd = &cobra.Command{
	Use:   "spans <file>",
	Short: "List classified spans for a file",
	Long:  `Prints one line per highlighted range with its position, tag, modifiers and covered text. With --lsp, prints the legend and delta-encoded token stream as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, _, err := driverOptions(cmd, false, !highlightStrict)
		if err != nil {
			return err
		}
		res, err := driver.HighlightFile(args[0], opts)
		if err != nil {
			return err
		}

		if spansLSP {
			payload := struct {
				Legend lsp.Legend         `json:"legend"`
				Tokens lsp.SemanticTokens `json:"tokens"`
			}{
				Legend: lsp.NewLegend(),
				Tokens: lsp.Encode(res.Set, res.Ranges),
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		printDiagnostics(res.Bag, res.Set, quiet)
		return render.WriteSpans(os.Stdout, res.Set, res.Ranges)
	},
}
