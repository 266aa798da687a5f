package model

import (
	"strings"

	"github.com/google/uuid"
)

// Category groups tasks for display. Tasks reference categories by ID;
// an empty CategoryID means uncategorized.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
	Color string `json:"color,omitempty"`
}

func NewCategoryID() string {
	return uuid.NewString()
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// DefaultCategories seeds a fresh profile.
func DefaultCategories() []Category {
	defs := []struct {
		name  string
		emoji string
		color string
	}{
		{"Work", "💼", "#3498db"},
		{"Personal", "📝", "#95a5a6"},
		{"Health", "🏃", "#e74c3c"},
		{"Learning", "📚", "#9b59b6"},
		{"Finance", "💰", "#f39c12"},
		{"Home", "🏠", "#27ae60"},
	}
	out := make([]Category, 0, len(defs))
	for _, d := range defs {
		out = append(out, Category{
			ID:    uuid.NewString(),
			Name:  d.name,
			Emoji: d.emoji,
			Color: d.color,
		})
	}
	return out
}
