package engine

import (
	"fmt"
	"time"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

// Store persists whole snapshots. It never retains a reference to what it
// is given; the engine exclusively owns the live state.
type Store interface {
	Load() (*model.Snapshot, error)
	Save(*model.Snapshot) error
}

// Engine owns the in-memory profile state and is the only API the UI
// shell uses. All operations run to completion on the caller's goroutine;
// every mutation is persisted synchronously before it is committed to
// memory, so a failed save leaves both memory and disk at the
// pre-operation state.
type Engine struct {
	store Store
	table XPTable
	curve Curve
	now   func() time.Time
	snap  *model.Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithXPTable replaces the default XP table.
func WithXPTable(t XPTable) Option {
	return func(e *Engine) { e.table = t }
}

// WithCurve replaces the default level curve.
func WithCurve(c Curve) Option {
	return func(e *Engine) { e.curve = c }
}

// WithClock replaces the wall clock used for created/completed
// timestamps. Calendar-day logic never reads the clock; callers pass an
// explicit today to every operation that needs one.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an engine around the store. The XP table is validated here;
// a table that misses an enum combination is a programming or config
// error and refuses to start.
func New(store Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store: store,
		table: DefaultXPTable(),
		curve: DefaultCurve(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.table.Validate(); err != nil {
		return nil, err
	}
	if e.curve.Coef <= 0 || e.curve.Exp <= 0 {
		return nil, fmt.Errorf("level curve constants must be positive (coef=%v exp=%v)", e.curve.Coef, e.curve.Exp)
	}
	return e, nil
}

// Activate loads persisted state (on first call) and runs the daily reset
// for today. Safe to call repeatedly; within one calendar day repeat
// calls are no-ops.
func (e *Engine) Activate(today model.Date) (State, error) {
	if e.snap == nil {
		snap, err := e.store.Load()
		if err != nil {
			return State{}, err
		}
		e.snap = snap
	}

	work := e.snap.Clone()
	changed := MaybeReset(work, today)

	// The persisted level may be stale when curve constants change;
	// re-derive it from total XP.
	if computed := e.curve.LevelForXP(work.User.TotalXP).Level; work.User.Level != computed {
		work.User.Level = computed
		changed = true
	}

	if !changed {
		return e.state(), nil
	}
	if err := e.persist(work); err != nil {
		return State{}, err
	}
	return e.state(), nil
}

// State is the read-only view the shell renders from.
type State struct {
	User       model.User
	Progress   Progress
	Tasks      []*model.Task
	Categories []model.Category
}

// State returns a deep-copied view of the current profile. Before the
// first Activate it is empty.
func (e *Engine) State() State {
	if e.snap == nil {
		return State{Progress: e.curve.LevelForXP(0)}
	}
	return e.state()
}

func (e *Engine) state() State {
	snap := e.snap.Clone()
	return State{
		User:       snap.User,
		Progress:   e.curve.LevelForXP(snap.User.TotalXP),
		Tasks:      snap.Tasks,
		Categories: snap.Categories,
	}
}

// persist writes the working snapshot and commits it on success. On
// failure the previous snapshot stays live, which is the whole rollback.
func (e *Engine) persist(work *model.Snapshot) error {
	if err := e.store.Save(work); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	e.snap = work
	return nil
}

func (e *Engine) loaded() error {
	if e.snap == nil {
		return fmt.Errorf("engine not activated")
	}
	return nil
}
