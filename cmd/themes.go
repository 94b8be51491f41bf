package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quill/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available theme presets",
	Long: `List the built-in theme presets that can be used in the config file.

Set a preset in .quill/config.yaml:
  theme:
    preset: catppuccin-mocha

Individual colors can still be overridden on top of a preset:
  theme:
    preset: nord
    colors:
      diff.added: "#00FF00"`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range styles.PresetNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
