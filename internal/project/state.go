package project

import (
	"slices"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

// State is the lifecycle phase of a Project.
type State int

const (
	// Initialized holds metadata only. Nothing has touched the network or disk.
	Initialized State = iota

	// Resolving has the version lookups in flight.
	Resolving

	// Writing has the write jobs dispatched.
	Writing

	// Done is terminal success.
	Done

	// Failed is terminal failure.
	Failed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "Initialized"
	case Resolving:
		return "Resolving"
	case Writing:
		return "Writing"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

var transitions = map[State][]State{
	Initialized: {Resolving},
	Resolving:   {Writing, Failed},
	Writing:     {Done, Failed},
}

// CanTransition reports whether a project may move from one state to another.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

func checkTransition(from, to State) error {
	if !CanTransition(from, to) {
		return &verrors.StateError{From: from.String(), To: to.String()}
	}
	return nil
}
