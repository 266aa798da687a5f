package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Difficulties lists every difficulty, in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Kind distinguishes tasks that re-arm every calendar day from quests,
// which persist until completed and explicitly removed.
type Kind string

const (
	KindDaily Kind = "daily"
	KindQuest Kind = "quest"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindDaily, KindQuest:
		return true
	default:
		return false
	}
}

func Kinds() []Kind {
	return []Kind{KindDaily, KindQuest}
}

// ParseDifficulty parses user input to a Difficulty.
func ParseDifficulty(input string) (Difficulty, bool) {
	d := Difficulty(strings.TrimSpace(strings.ToLower(input)))
	return d, d.IsValid()
}

func ParseKind(input string) (Kind, bool) {
	k := Kind(strings.TrimSpace(strings.ToLower(input)))
	return k, k.IsValid()
}

// Task is a single checklist item.
//
// CompletedAt and XPAwarded are set iff Completed is true. XPAwarded records
// the XP actually granted at completion time so that undoing a completion
// reverses the exact amount even if XP values change later.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CategoryID  string     `json:"category_id,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Kind        Kind       `json:"kind"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	XPAwarded   *int       `json:"xp_awarded"`
}

// NewTaskID returns a fresh stable task identifier.
func NewTaskID() string {
	return uuid.NewString()
}

// Validate checks the task's own fields. Category resolution is the
// engine's job because it needs the category set.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !t.Difficulty.IsValid() {
		return ValidationError{Field: "difficulty", Reason: "must be easy, medium or hard"}
	}
	if !t.Kind.IsValid() {
		return ValidationError{Field: "kind", Reason: "must be daily or quest"}
	}
	if t.Completed != (t.CompletedAt != nil) {
		return ValidationError{Field: "completed_at", Reason: "must be set exactly when completed"}
	}
	if t.Completed != (t.XPAwarded != nil) {
		return ValidationError{Field: "xp_awarded", Reason: "must be set exactly when completed"}
	}
	return nil
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	if t.XPAwarded != nil {
		xp := *t.XPAwarded
		c.XPAwarded = &xp
	}
	return &c
}
