package cmd

import (
	"github.com/spf13/cobra"

	"github.com/barysiuk/duckfetch/internal/tool"
	"github.com/barysiuk/duckfetch/internal/tui"
)

var updateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Re-fetch installed skills from their recorded URLs",
	Long: `Re-run the install of a skill using the URL recorded when it was
installed. Without a name, every recorded skill is updated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		}

		res, err := d.service.Update(cmd.Context(), name)
		if err != nil {
			return err
		}
		return printResult(res, func() string {
			return tui.RenderUpdate(res.Details.(tool.UpdateDetails))
		})
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
