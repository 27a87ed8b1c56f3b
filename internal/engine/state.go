package engine

import (
	"fmt"
)

// State is a step of the invocation state machine
type State int

const (
	StateIdle State = iota
	StateResolving
	StateChecking
	StateStale
	StateFresh
	StateExecuting
	StateCompleted
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:      "idle",
	StateResolving: "resolving",
	StateChecking:  "checking",
	StateStale:     "stale",
	StateFresh:     "fresh",
	StateExecuting: "executing",
	StateCompleted: "completed",
	StateDone:      "done",
	StateFailed:    "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// IsTerminal reports whether no further transition is possible
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateResolving
	case StateResolving:
		return to == StateChecking || to == StateDone || to == StateFailed
	case StateChecking:
		return to == StateStale || to == StateFresh || to == StateFailed
	case StateStale:
		return to == StateExecuting
	case StateFresh:
		return to == StateCompleted
	case StateExecuting:
		return to == StateCompleted || to == StateFailed
	case StateCompleted:
		return to == StateResolving
	default:
		return false
	}
}

// TransitionFunc observes state changes. target is empty for invocation-level steps.
type TransitionFunc func(target string, from, to State)

// machine tracks the state of one invocation
type machine struct {
	state    State
	observer TransitionFunc
}

func (m *machine) transition(target string, to State) error {
	from := m.state
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("invalid transition for %q: %s -> %s", target, from, to)
	}
	m.state = to
	if m.observer != nil {
		m.observer(target, from, to)
	}
	return nil
}
