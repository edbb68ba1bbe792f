package cmd

import (
	"context"
	"errors"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *verrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, verrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, verrors.ErrConnectivity):
		return ExitConnectivityError
	default:
		return ExitGeneralError
	}
}

// withExitCode attaches the exit code derived from err.
func withExitCode(err error, printed bool) error {
	if err == nil {
		return nil
	}
	var exitErr *verrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &verrors.ExitError{Code: ExitCodeFromError(err), Err: err, Printed: printed}
}
