package domain

import "fmt"

// InvariantError reports a broken engine invariant: a programming bug or
// corrupt state rather than a normal game event. Drivers must surface it,
// never swallow it like an ordinary rejection.
type InvariantError struct {
	Op     string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Op, e.Reason)
}

// Invariantf builds an InvariantError for the named operation.
func Invariantf(op, format string, args ...any) error {
	return &InvariantError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
