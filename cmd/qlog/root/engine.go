package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/EricA1019/gamified-checklist/internal/config"
	"github.com/EricA1019/gamified-checklist/internal/engine"
	"github.com/EricA1019/gamified-checklist/internal/model"
	"github.com/EricA1019/gamified-checklist/internal/store"
)

// openEngine wires config, store and engine, then activates for today.
// The wall clock is read here, once, at the command boundary; everything
// below works from the explicit date.
func openEngine() (*engine.Engine, engine.State, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, engine.State{}, err
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, engine.State{}, err
	}

	table, err := engine.DefaultXPTable().WithOverrides(cfg.XPOverrides)
	if err != nil {
		return nil, engine.State{}, err
	}

	eng, err := engine.New(st,
		engine.WithXPTable(table),
		engine.WithCurve(engine.Curve{Coef: cfg.Curve.Coef, Exp: cfg.Curve.Exp}),
	)
	if err != nil {
		return nil, engine.State{}, err
	}

	state, err := eng.Activate(today())
	if err != nil {
		return nil, engine.State{}, err
	}
	return eng, state, nil
}

func today() model.Date {
	return model.DateOf(time.Now())
}

// resolveTaskID accepts a full id or a unique prefix.
func resolveTaskID(state engine.State, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("task id is required")
	}

	var match string
	for _, t := range state.Tasks {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("task id %q is ambiguous", arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no task matches %q", arg)
	}
	return match, nil
}

// resolveCategory accepts a category id, id prefix, or name
// (case-insensitive).
func resolveCategory(state engine.State, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("category is required")
	}

	var match string
	for _, c := range state.Categories {
		if c.ID == arg || strings.EqualFold(c.Name, arg) {
			return c.ID, nil
		}
		if strings.HasPrefix(c.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("category %q is ambiguous", arg)
			}
			match = c.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no category matches %q", arg)
	}
	return match, nil
}

func categoryName(state engine.State, id string) string {
	for _, c := range state.Categories {
		if c.ID == id {
			if c.Emoji != "" {
				return c.Emoji + " " + c.Name
			}
			return c.Name
		}
	}
	return "uncategorized"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
