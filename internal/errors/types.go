package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
)

// HTTPError is returned when a request completes with a non-2xx status.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is reports connectivity for every status and not-found for 404.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrConnectivity:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// IOError wraps a filesystem failure with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is maps os-level not-exist and permission errors onto the package sentinels.
func (e *IOError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return errors.Is(e.Err, fs.ErrNotExist)
	case ErrPermission:
		return errors.Is(e.Err, fs.ErrPermission)
	default:
		return false
	}
}

// RenderError indicates a template failed to parse or execute,
// or that its rendered output is not well-formed.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// JobError reports the first failed write job of a batch.
type JobError struct {
	Source      string
	Destination string
	Err         error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %s -> %s: %v", e.Source, e.Destination, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// StateError is returned for a project phase transition that is not allowed.
type StateError struct {
	From string
	To   string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}
