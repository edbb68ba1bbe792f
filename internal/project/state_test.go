package project

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

func TestCanTransition(t *testing.T) {
	all := []State{Initialized, Resolving, Writing, Done, Failed}
	allowed := map[[2]State]bool{
		{Initialized, Resolving}: true,
		{Resolving, Writing}:     true,
		{Resolving, Failed}:      true,
		{Writing, Done}:          true,
		{Writing, Failed}:        true,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				assert.Equal(t, allowed[[2]State{from, to}], CanTransition(from, to))
			})
		}
	}
}

func TestCheckTransition(t *testing.T) {
	require.NoError(t, checkTransition(Initialized, Resolving))

	err := checkTransition(Initialized, Writing)
	var stateErr *verrors.StateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, "illegal transition from Initialized to Writing", err.Error())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Failed", Failed.String())
	assert.Equal(t, "Unknown", State(42).String())
}
