package history

import "fmt"

// CorruptionError reports an internal consistency failure in the history or
// in a commit replayed from it. It is raised with panic; it never describes
// a caller mistake.
type CorruptionError struct {
	// Op is the operation that detected the failure (save, undo, redo).
	Op string
	// Reason describes the failed check.
	Reason string
}

// Error implements the error interface.
func (e *CorruptionError) Error() string {
	return fmt.Sprintf("history: corrupt state during %s: %s", e.Op, e.Reason)
}

func corrupt(op, format string, args ...any) {
	panic(&CorruptionError{Op: op, Reason: fmt.Sprintf(format, args...)})
}
