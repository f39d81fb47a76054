package shared

// TransitionTable declares, per document type, which target states each
// current state permits. Every aggregate consults its table through Ensure
// instead of re-deriving validity at call sites.
type TransitionTable[S ~string] map[S][]S

// Allows reports whether the table permits moving from one state to another.
func (t TransitionTable[S]) Allows(from, to S) bool {
	for _, target := range t[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Ensure validates a requested transition and returns an
// INVALID_STATE_TRANSITION error naming both states when it is forbidden.
// A request for the state the document is already in fails the same way,
// which makes re-invoked transitions fail fast instead of double-applying
// their side effects.
func (t TransitionTable[S]) Ensure(document string, from, to S) error {
	if !t.Allows(from, to) {
		return NewInvalidTransitionError(document, string(from), string(to))
	}
	return nil
}

// Targets returns the permitted target states for a given state.
func (t TransitionTable[S]) Targets(from S) []S {
	return t[from]
}

// IsTerminal reports whether a state permits no further transitions.
func (t TransitionTable[S]) IsTerminal(state S) bool {
	return len(t[state]) == 0
}
