package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barysiuk/duckfetch/internal/core"
	"github.com/barysiuk/duckfetch/internal/tui"
)

var showCmd = &cobra.Command{
	Use:   "show <name> [file]",
	Short: "Display a file from an installed skill",
	Long: `Render a file of an installed skill as markdown.

Without a file, SKILL.md is shown when present, otherwise the first
markdown file in the skill. On a terminal the result opens in a pager
unless --no-pager is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		set, err := d.inventory.Get(args[0])
		if err != nil {
			if errors.Is(err, core.ErrSetNotFound) {
				return fmt.Errorf("skill %q is not installed", args[0])
			}
			return err
		}

		file := ""
		if len(args) > 1 {
			file = args[1]
		} else {
			file = defaultShowFile(set.Files)
		}
		if file == "" {
			return fmt.Errorf("skill %q has no files to show", set.Name)
		}

		path, ok := core.ResolveWithin(set.Path, file)
		if !ok || path == set.Path {
			return fmt.Errorf("file %q is outside skill %q", file, set.Name)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		content := string(data)

		if flagJSON {
			return printJSON(map[string]string{
				"name":    set.Name,
				"file":    filepath.ToSlash(file),
				"source":  set.Source,
				"content": content,
			})
		}

		styled := styledOutput()
		rendered, err := tui.RenderMarkdown(content, terminalWidth(), styled)
		if err != nil {
			return err
		}

		noPager, _ := cmd.Flags().GetBool("no-pager")
		if styled && !noPager && isTerminal(os.Stdin) {
			return tui.Page(set.Name+"/"+filepath.ToSlash(file), rendered, os.Stdin, os.Stdout)
		}
		fmt.Fprint(os.Stdout, rendered)
		return nil
	},
}

// defaultShowFile picks SKILL.md, then the first markdown file, then the
// first file.
func defaultShowFile(files []string) string {
	for _, f := range files {
		if f == "SKILL.md" {
			return f
		}
	}
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ".md") {
			return f
		}
	}
	if len(files) > 0 {
		return files[0]
	}
	return ""
}

func init() {
	showCmd.Flags().Bool("no-pager", false, "Print instead of opening a pager")
	rootCmd.AddCommand(showCmd)
}
