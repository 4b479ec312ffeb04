package booking

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or malformed wizard input. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Fields []string
}

func (e ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// StateError reports an operation attempted from the wrong wizard state.
type StateError struct {
	State string
	Op    string
}

func (e StateError) Error() string {
	return fmt.Sprintf("cannot %s from state %q", e.Op, e.State)
}

// ErrSessionNotFound is returned when a wizard session is missing or expired.
var ErrSessionNotFound = fmt.Errorf("booking session not found or expired")
