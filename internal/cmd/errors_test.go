package cmd

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error returns success", nil, ExitSuccess},
		{"validation error", verrors.ErrValidation, ExitValidationError},
		{"detailed validation error", verrors.NewValidationError("bad", "", "name", ""), ExitValidationError},
		{"connectivity error", verrors.ErrConnectivity, ExitConnectivityError},
		{"http error", &verrors.HTTPError{URL: "https://pypi.org/pypi/tox/json", StatusCode: 503}, ExitConnectivityError},
		{"http 404 is connectivity", &verrors.HTTPError{URL: "https://pypi.org/pypi/nope/json", StatusCode: 404}, ExitConnectivityError},
		{"cancelled", fmt.Errorf("fetching: %w", context.Canceled), ExitInterrupted},
		{"not found falls back to general", verrors.ErrNotFound, ExitGeneralError},
		{"wrapped validation error", fmt.Errorf("failed to validate: %w", verrors.ErrValidation), ExitValidationError},
		{"unknown error", errors.New("boom"), ExitGeneralError},
		{"explicit exit error", &verrors.ExitError{Code: 42, Err: errors.New("x")}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeFromError(tt.err))
		})
	}
}

func TestWithExitCode(t *testing.T) {
	assert.NoError(t, withExitCode(nil, false))

	err := withExitCode(fmt.Errorf("wrap: %w", verrors.ErrConnectivity), true)
	var exitErr *verrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitConnectivityError, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.ErrorIs(t, err, verrors.ErrConnectivity)

	again := withExitCode(err, false)
	assert.Same(t, err, again)
}

func TestExitCodeName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ExitSuccess, "Success"},
		{ExitGeneralError, "General Error"},
		{ExitValidationError, "Validation Error"},
		{ExitConnectivityError, "Connectivity Error"},
		{ExitInterrupted, "Interrupted"},
		{99, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeName(tt.code))
		})
	}
}
