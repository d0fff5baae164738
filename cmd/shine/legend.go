package main

import (
	"os"

	"github.com/spf13/cobra"

	"shine/internal/render"
)

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Show every semantic tag with its themed appearance",
	RunE: func(cmd *cobra.Command, args []string) error {
		themePath, _ := cmd.Flags().GetString("theme")
		theme, err := render.ThemeFromFileOrDefault(themePath)
		if err != nil {
			return err
		}
		ansi := &render.ANSI{Theme: theme, NoColor: !useColor(cmd)}
		return ansi.WriteLegend(os.Stdout)
	},
}
