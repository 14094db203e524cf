package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration in effect after applying defaults and flags.

The file lives at ~/.duckfetch/config.json and may contain comments and
trailing commas. Use "config init" to write one with the defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(d.cfg)
		}
		fmt.Fprintf(os.Stdout, "Config file:       %s\n", d.config.ConfigPath())
		fmt.Fprintf(os.Stdout, "Skills directory:  %s\n", d.cfg.SetsRoot)
		fmt.Fprintf(os.Stdout, "Timeout:           %s\n", d.cfg.Timeout)
		fmt.Fprintf(os.Stdout, "User agent:        %s\n", d.cfg.UserAgent)
		fmt.Fprintf(os.Stdout, "Max bytes:         %d\n", d.cfg.MaxBytes)
		fmt.Fprintf(os.Stdout, "Fetch concurrency: %d\n", d.cfg.FetchConcurrency)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(d.config.ConfigPath()); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", d.config.ConfigPath())
		}
		if err := d.config.Save(d.cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %s\n", d.config.ConfigPath())
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
