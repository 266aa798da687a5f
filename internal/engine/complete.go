package engine

import (
	"github.com/EricA1019/gamified-checklist/internal/model"
)

// CompleteResult reports what a completion changed.
type CompleteResult struct {
	TaskID      string
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Streak      int
}

// UncompleteResult reports what undoing a completion changed.
type UncompleteResult struct {
	TaskID      string
	XPDeducted  int
	LevelBefore int
	LevelAfter  int
	LevelDown   bool
}

// CompleteTask marks the task complete as of today, awards its table XP,
// and advances the streak. The XP actually granted is recorded on the
// task so a later undo reverses the exact amount.
func (e *Engine) CompleteTask(id string, today model.Date) (*CompleteResult, error) {
	if err := e.loaded(); err != nil {
		return nil, err
	}

	work := e.snap.Clone()
	t := work.TaskByID(id)
	if t == nil {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	if t.Completed {
		return nil, model.ValidationError{Field: "task", Reason: "already completed"}
	}

	// Streak update runs first: a stale date must reject before any
	// state changes.
	if err := UpdateStreak(&work.User, today); err != nil {
		return nil, err
	}

	xp, err := e.table.XPFor(t.Kind, t.Difficulty)
	if err != nil {
		return nil, err
	}

	levelBefore := work.User.Level
	work.User.TotalXP += xp
	work.User.Level = e.curve.LevelForXP(work.User.TotalXP).Level

	at := e.now()
	t.Completed = true
	t.CompletedAt = &at
	t.XPAwarded = &xp

	if err := e.persist(work); err != nil {
		return nil, err
	}

	return &CompleteResult{
		TaskID:      id,
		XPAwarded:   xp,
		LevelBefore: levelBefore,
		LevelAfter:  work.User.Level,
		LevelUp:     work.User.Level > levelBefore,
		Streak:      work.User.CurrentStreak,
	}, nil
}

// UncompleteTask undoes a completion: the recorded XP is deducted exactly
// and the task reverts to pending. Streak state is not rewound; the
// snapshot carries no per-day completion journal, so whether that day's
// streak credit had other completions backing it is unknowable.
func (e *Engine) UncompleteTask(id string) (*UncompleteResult, error) {
	if err := e.loaded(); err != nil {
		return nil, err
	}

	work := e.snap.Clone()
	t := work.TaskByID(id)
	if t == nil {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	if !t.Completed || t.XPAwarded == nil {
		return nil, model.ValidationError{Field: "task", Reason: "not completed"}
	}

	xp := *t.XPAwarded
	levelBefore := work.User.Level
	work.User.TotalXP -= xp
	if work.User.TotalXP < 0 {
		work.User.TotalXP = 0
	}
	work.User.Level = e.curve.LevelForXP(work.User.TotalXP).Level

	t.Completed = false
	t.CompletedAt = nil
	t.XPAwarded = nil

	if err := e.persist(work); err != nil {
		return nil, err
	}

	return &UncompleteResult{
		TaskID:      id,
		XPDeducted:  xp,
		LevelBefore: levelBefore,
		LevelAfter:  work.User.Level,
		LevelDown:   work.User.Level < levelBefore,
	}, nil
}
