package engine

import (
	"fmt"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

// NotFoundError indicates an unknown task or category id.
type NotFoundError struct {
	Kind string // "task" or "category"
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// StaleCompletionError is returned when a completion date precedes the
// last recorded completion. Backdating is not supported because it would
// corrupt the monotonic streak logic.
type StaleCompletionError struct {
	Date model.Date
	Last model.Date
}

func (e StaleCompletionError) Error() string {
	return fmt.Sprintf("completion date %s precedes last completion %s", e.Date, e.Last)
}
