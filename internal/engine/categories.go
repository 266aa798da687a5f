package engine

import (
	"strings"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

// DeleteMode says what happens to tasks referencing a deleted category.
// There is no default: the caller must choose, so nothing cascades
// silently.
type DeleteMode string

const (
	// DeleteUnassign re-points dependent tasks to uncategorized.
	DeleteUnassign DeleteMode = "unassign"
	// DeleteCascade removes dependent tasks along with the category.
	DeleteCascade DeleteMode = "cascade"
)

func (m DeleteMode) IsValid() bool {
	return m == DeleteUnassign || m == DeleteCascade
}

// AddCategoryInput carries the fields for a new category.
type AddCategoryInput struct {
	Name  string
	Emoji string
	Color string
}

// AddCategory validates and persists a new category. Names are unique
// case-insensitively.
func (e *Engine) AddCategory(in AddCategoryInput) (*model.Category, error) {
	if err := e.loaded(); err != nil {
		return nil, err
	}

	c := model.Category{
		ID:    model.NewCategoryID(),
		Name:  strings.TrimSpace(in.Name),
		Emoji: in.Emoji,
		Color: in.Color,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	work := e.snap.Clone()
	for i := range work.Categories {
		if strings.EqualFold(work.Categories[i].Name, c.Name) {
			return nil, model.ValidationError{Field: "name", Reason: "category already exists"}
		}
	}

	work.Categories = append(work.Categories, c)
	if err := e.persist(work); err != nil {
		return nil, err
	}
	out := c
	return &out, nil
}

// DeleteCategory removes a category, handling dependent tasks per mode.
func (e *Engine) DeleteCategory(id string, mode DeleteMode) error {
	if err := e.loaded(); err != nil {
		return err
	}
	if !mode.IsValid() {
		return model.ValidationError{Field: "mode", Reason: "must be unassign or cascade"}
	}

	work := e.snap.Clone()
	idx := -1
	for i := range work.Categories {
		if work.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NotFoundError{Kind: "category", ID: id}
	}

	switch mode {
	case DeleteUnassign:
		for _, t := range work.Tasks {
			if t.CategoryID == id {
				t.CategoryID = ""
			}
		}
	case DeleteCascade:
		kept := work.Tasks[:0]
		for _, t := range work.Tasks {
			if t.CategoryID != id {
				kept = append(kept, t)
			}
		}
		work.Tasks = kept
	}

	work.Categories = append(work.Categories[:idx], work.Categories[idx+1:]...)
	return e.persist(work)
}
