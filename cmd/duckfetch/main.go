package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/barysiuk/duckfetch/cmd/duckfetch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
