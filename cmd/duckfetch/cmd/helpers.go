package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/barysiuk/duckfetch/internal/tool"
)

// ErrReported marks a failure whose details were already printed.
var ErrReported = errors.New("operation failed")

const defaultWidth = 100

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// styledOutput reports whether stdout should get colours and layout.
func styledOutput() bool {
	return os.Getenv("NO_COLOR") == "" && isTerminal(os.Stdout)
}

// terminalWidth returns the width of stdout, or defaultWidth when unknown.
func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// printResult prints res as JSON (--json), styled via render (terminal), or
// as its plain text. An unsuccessful result becomes ErrReported.
func printResult(res tool.Result, render func() string) error {
	switch {
	case flagJSON:
		if err := printJSON(res.Details); err != nil {
			return err
		}
	case styledOutput() && render != nil:
		fmt.Fprint(os.Stdout, render())
	default:
		fmt.Fprintln(os.Stdout, res.Text)
	}

	if !res.Success {
		return ErrReported
	}
	return nil
}
