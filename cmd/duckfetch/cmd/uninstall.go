package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barysiuk/duckfetch/internal/tui"
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall <name>",
	Aliases: []string{"remove", "rm"},
	Short:   "Remove an installed skill",
	Long: `Delete the skill's directory and everything in it.

On a terminal you are asked to confirm unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !flagJSON && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
			ok, err := tui.Confirm(fmt.Sprintf("Uninstall %s?", args[0]), os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}

		res, err := d.service.Uninstall(args[0])
		if err != nil {
			return err
		}
		return printResult(res, func() string {
			return tui.RenderStatus(res.Success, res.Text)
		})
	},
}

func init() {
	uninstallCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(uninstallCmd)
}
