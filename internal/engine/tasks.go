package engine

import (
	"strings"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

// AddTaskInput carries the fields a caller controls when creating a task.
type AddTaskInput struct {
	Title       string
	Description string
	CategoryID  string
	Difficulty  model.Difficulty
	Kind        model.Kind
}

// AddTask validates the input, assigns an id, and persists the new task.
func (e *Engine) AddTask(in AddTaskInput) (*model.Task, error) {
	if err := e.loaded(); err != nil {
		return nil, err
	}

	t := &model.Task{
		ID:          model.NewTaskID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		Difficulty:  in.Difficulty,
		Kind:        in.Kind,
		CreatedAt:   e.now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	work := e.snap.Clone()
	if t.CategoryID != "" && work.CategoryByID(t.CategoryID) == nil {
		return nil, NotFoundError{Kind: "category", ID: t.CategoryID}
	}

	work.Tasks = append(work.Tasks, t)
	if err := e.persist(work); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// DeleteTask removes the task for good, completed or not.
func (e *Engine) DeleteTask(id string) error {
	if err := e.loaded(); err != nil {
		return err
	}

	work := e.snap.Clone()
	idx := -1
	for i, t := range work.Tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NotFoundError{Kind: "task", ID: id}
	}

	work.Tasks = append(work.Tasks[:idx], work.Tasks[idx+1:]...)
	return e.persist(work)
}
