package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nglmercer/trigger-system/internal/cli"
	"github.com/nglmercer/trigger-system/internal/text"
)

// A HandledError has already been handled in the called function,
// but should return a non-zero exit code.
var HandledError = cli.HandledError

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if !errors.Is(err, HandledError) {
		if Debug {
			// Enabling debug output will print stacktraces
			fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", text.Wrap(err.Error(), text.TerminalWidth()))
		}
	}

	os.Exit(1)
}
