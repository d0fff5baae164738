package main

import (
	"strings"

	"github.com/spf13/cobra"

	"shine/internal/driver"
	"shine/internal/render"
	"shine/internal/ui"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a file in the interactive highlighted viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, theme, err := driverOptions(cmd, true, true)
		if err != nil {
			return err
		}
		res, err := driver.HighlightFile(args[0], opts)
		if err != nil {
			return err
		}

		var buf strings.Builder
		ansi := &render.ANSI{Theme: theme, Gutter: true}
		if err := ansi.Write(&buf, res.Set, res.FileID, res.Ranges); err != nil {
			return err
		}
		return ui.RunViewer(res.Path, buf.String())
	},
}
