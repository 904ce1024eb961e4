// Package run drives a model run submission through its lifecycle:
// gating, validation, a single POST to the platform run endpoint, and a
// simulated progress readout while the response is pending.
package run

import "errors"

// State is the lifecycle state of a submission.
type State string

const (
	// Non-terminal states
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"

	// Terminal states (no further transitions allowed)
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// ErrInvalidTransition is returned when a state transition is not allowed.
var ErrInvalidTransition = errors.New("invalid submission state transition")

// IsTerminal returns true if the state is a terminal state.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// ValidTransitions defines allowed state transitions. There is no retry
// edge: a displayed terminal state returns the form to idle and a new
// submission starts fresh.
var ValidTransitions = map[State][]State{
	StateIdle:       {StateValidating},
	StateValidating: {StateSubmitting, StateFailed},
	StateSubmitting: {StateSucceeded, StateFailed},
	// Terminal states have no valid transitions
	StateSucceeded: {},
	StateFailed:    {},
}

// CanTransitionTo checks if a transition from the current state to the
// target state is valid.
func (s State) CanTransitionTo(target State) bool {
	validTargets, ok := ValidTransitions[s]
	if !ok {
		return false
	}
	for _, t := range validTargets {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo attempts the transition and returns an error if invalid.
func (s State) TransitionTo(target State) (State, error) {
	if !s.CanTransitionTo(target) {
		return s, ErrInvalidTransition
	}
	return target, nil
}
