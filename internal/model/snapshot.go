package model

// SchemaVersion is the current persisted snapshot format version.
// Bumping it requires an explicit migration step in internal/store.
const SchemaVersion = 2

// Snapshot is the complete serializable state of one profile. The store
// only ever sees whole snapshots; it never holds a live reference to
// engine state.
type Snapshot struct {
	SchemaVersion int        `json:"schema_version"`
	User          User       `json:"user"`
	Categories    []Category `json:"categories"`
	Tasks         []*Task    `json:"tasks"`
}

// NewSnapshot returns a fresh seeded snapshot: default categories, no
// tasks, a level-1 user.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		User:          NewUser(),
		Categories:    DefaultCategories(),
		Tasks:         nil,
	}
}

// Clone returns a deep copy. The engine mutates clones and only commits
// them after a successful persist, so rollback is a pointer swap.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		SchemaVersion: s.SchemaVersion,
		User:          s.User,
	}
	if s.Categories != nil {
		c.Categories = make([]Category, len(s.Categories))
		copy(c.Categories, s.Categories)
	}
	if s.Tasks != nil {
		c.Tasks = make([]*Task, len(s.Tasks))
		for i, t := range s.Tasks {
			c.Tasks[i] = t.Clone()
		}
	}
	return c
}

// TaskByID returns the task with the given id, or nil.
func (s *Snapshot) TaskByID(id string) *Task {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// CategoryByID returns the category with the given id, or nil.
func (s *Snapshot) CategoryByID(id string) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}
