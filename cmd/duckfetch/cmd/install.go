package cmd

import (
	"github.com/spf13/cobra"

	"github.com/barysiuk/duckfetch/internal/tool"
	"github.com/barysiuk/duckfetch/internal/tui"
)

var installCmd = &cobra.Command{
	Use:   "install <url>",
	Short: "Install a skill from a URL",
	Long: `Fetch the document at <url> and every relative file it references,
and store them under <root>/<name>/.

The name defaults to the document's file name without its extension.
Re-installing a name overwrites its files; files no longer referenced are
kept.`,
	Example: `  duckfetch install https://example.com/skills/review/SKILL.md --name review`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		res, err := d.service.Install(cmd.Context(), args[0], name)
		if err != nil {
			return err
		}
		return printResult(res, func() string {
			return tui.RenderInstall(res.Details.(tool.InstallDetails))
		})
	},
}

func init() {
	installCmd.Flags().StringP("name", "n", "", "Name for the installed skill")
	rootCmd.AddCommand(installCmd)
}
