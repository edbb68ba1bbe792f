// Package main is the entry point for the vspy CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/JonSteinn/vspy/internal/cmd"
	verrors "github.com/JonSteinn/vspy/internal/errors"
	"github.com/JonSteinn/vspy/internal/output"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		code := cmd.ExitCodeFromError(err)
		var exitErr *verrors.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, err)
		}
		output.Debug("exiting", "code", code, "reason", cmd.ExitCodeName(code))
		os.Exit(code)
	}
}
