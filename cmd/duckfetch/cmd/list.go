package cmd

import (
	"github.com/spf13/cobra"

	"github.com/barysiuk/duckfetch/internal/tool"
	"github.com/barysiuk/duckfetch/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed skills",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		res, err := d.service.List()
		if err != nil {
			return err
		}
		return printResult(res, func() string {
			return tui.RenderList(res.Details.(tool.ListDetails), terminalWidth())
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
