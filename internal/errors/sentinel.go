package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input or a malformed manifest.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates a failed or rejected network request.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a resource, package, or file was not found.
	ErrNotFound = errors.New("not found")
)
