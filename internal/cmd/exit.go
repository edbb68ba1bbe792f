package cmd

// Process exit codes.
const (
	// ExitSuccess indicates the project was created.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid input: a bad project name, a
	// missing or non-empty target, or invalid configuration.
	ExitValidationError = 2

	// ExitConnectivityError indicates PyPI or python.org could not be reached.
	ExitConnectivityError = 3

	// ExitInterrupted indicates the run was cancelled by a signal.
	ExitInterrupted = 130
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConnectivityError:
		return "Connectivity Error"
	case ExitInterrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}
