// Package main is the entry point for the hsv CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/hsv/cmd/hsv/commands"
	"github.com/thoreinstein/hsv/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" && exitErr.Err != nil {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	os.Exit(errors.ExitCode(err))
}
