package run_test

import (
	"errors"
	"testing"

	"genhub/services/web-frontend/internal/domain/run"
)

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		state    run.State
		expected bool
	}{
		{"idle is not terminal", run.StateIdle, false},
		{"validating is not terminal", run.StateValidating, false},
		{"submitting is not terminal", run.StateSubmitting, false},
		{"succeeded is terminal", run.StateSucceeded, true},
		{"failed is terminal", run.StateFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     run.State
		to       run.State
		expected bool
	}{
		{"idle to validating", run.StateIdle, run.StateValidating, true},
		{"idle cannot skip to submitting", run.StateIdle, run.StateSubmitting, false},
		{"validating to submitting", run.StateValidating, run.StateSubmitting, true},
		{"validating to failed", run.StateValidating, run.StateFailed, true},
		{"validating cannot succeed directly", run.StateValidating, run.StateSucceeded, false},
		{"submitting to succeeded", run.StateSubmitting, run.StateSucceeded, true},
		{"submitting to failed", run.StateSubmitting, run.StateFailed, true},
		{"succeeded has no retry edge", run.StateSucceeded, run.StateValidating, false},
		{"failed has no retry edge", run.StateFailed, run.StateValidating, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestState_TransitionTo(t *testing.T) {
	next, err := run.StateIdle.TransitionTo(run.StateValidating)
	if err != nil {
		t.Fatalf("TransitionTo failed: %v", err)
	}
	if next != run.StateValidating {
		t.Errorf("TransitionTo() = %s, want validating", next)
	}

	same, err := run.StateSucceeded.TransitionTo(run.StateFailed)
	if !errors.Is(err, run.ErrInvalidTransition) {
		t.Errorf("TransitionTo from terminal = %v, want ErrInvalidTransition", err)
	}
	if same != run.StateSucceeded {
		t.Errorf("state after invalid transition = %s, want unchanged", same)
	}
}
