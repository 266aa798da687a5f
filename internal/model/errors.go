package model

import "fmt"

// ValidationError indicates malformed task or category input. It is
// caller-facing and always raised before any state mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
