package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

// TaskKey identifies one XP table entry.
type TaskKey struct {
	Kind       model.Kind
	Difficulty model.Difficulty
}

// XPTable maps (kind, difficulty) to the XP a completion awards. It is the
// single source of truth for task XP; nothing branches on kind or
// difficulty to compute scores.
type XPTable map[TaskKey]int

// DefaultXPTable returns the built-in XP values. Quests pay double their
// daily counterpart.
func DefaultXPTable() XPTable {
	return XPTable{
		{model.KindDaily, model.DifficultyEasy}:   10,
		{model.KindDaily, model.DifficultyMedium}: 20,
		{model.KindDaily, model.DifficultyHard}:   35,
		{model.KindQuest, model.DifficultyEasy}:   20,
		{model.KindQuest, model.DifficultyMedium}: 40,
		{model.KindQuest, model.DifficultyHard}:   70,
	}
}

// Validate checks that the table covers the full enum cross product, every
// value is positive, and each quest entry strictly exceeds the daily entry
// of equal difficulty. The engine refuses to start on an invalid table.
func (t XPTable) Validate() error {
	for _, k := range model.Kinds() {
		for _, d := range model.Difficulties() {
			xp, ok := t[TaskKey{k, d}]
			if !ok {
				return fmt.Errorf("xp table: missing entry for %s/%s", k, d)
			}
			if xp <= 0 {
				return fmt.Errorf("xp table: %s/%s must be positive, got %d", k, d, xp)
			}
		}
	}
	for _, d := range model.Difficulties() {
		daily := t[TaskKey{model.KindDaily, d}]
		quest := t[TaskKey{model.KindQuest, d}]
		if quest <= daily {
			return fmt.Errorf("xp table: quest/%s (%d) must exceed daily/%s (%d)", d, quest, d, daily)
		}
	}
	return nil
}

// XPFor returns the XP for a task's kind and difficulty. The table is
// validated at engine construction, so a miss indicates a corrupted task.
func (t XPTable) XPFor(kind model.Kind, difficulty model.Difficulty) (int, error) {
	xp, ok := t[TaskKey{kind, difficulty}]
	if !ok {
		return 0, fmt.Errorf("no xp entry for %s/%s", kind, difficulty)
	}
	return xp, nil
}

// WithOverrides returns a copy of the table with entries replaced from a
// "kind/difficulty" -> xp map (the config file format).
func (t XPTable) WithOverrides(overrides map[string]int) (XPTable, error) {
	out := make(XPTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	for key, xp := range overrides {
		parts := strings.SplitN(key, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("xp override %q: want kind/difficulty", key)
		}
		kind, ok := model.ParseKind(parts[0])
		if !ok {
			return nil, fmt.Errorf("xp override %q: unknown kind %q", key, parts[0])
		}
		diff, ok := model.ParseDifficulty(parts[1])
		if !ok {
			return nil, fmt.Errorf("xp override %q: unknown difficulty %q", key, parts[1])
		}
		out[TaskKey{kind, diff}] = xp
	}
	return out, nil
}

// Curve parameterizes the level threshold function
// threshold(L) = ceil(coef * (L-1)^exp), with threshold(1) = 0.
// The curve is monotonically increasing for positive coef and exp.
type Curve struct {
	Coef float64
	Exp  float64
}

// DefaultCurve matches the original balancing: 50 * (L-1)^2.
func DefaultCurve() Curve {
	return Curve{Coef: 50, Exp: 2}
}

// Threshold returns the total XP required to reach the given level.
// Level 1 (and below) requires 0 XP. Requirements past the int range
// saturate at math.MaxInt, keeping the function monotone.
func (c Curve) Threshold(level int) int {
	if level <= 1 {
		return 0
	}
	req := c.Coef * math.Pow(float64(level-1), c.Exp)
	if req >= float64(math.MaxInt) {
		return math.MaxInt
	}
	// Ceil so float rounding never makes a threshold easier.
	return int(math.Ceil(req))
}

// Progress describes where a total XP value sits on the curve.
type Progress struct {
	Level          int
	XPIntoLevel    int // XP earned past the current level's threshold
	XPForNextLevel int // size of the current level (threshold delta)
}

// maxSearchLevel bounds the level search. The default curve crosses the
// int range near level 4.3e8, well inside the bound; only a near-flat
// curve whose thresholds stay inside the int range for billions of
// levels can reach it, and such XP totals saturate at this level.
const maxSearchLevel = 1 << 30

// LevelForXP returns the unique level L with
// Threshold(L) <= totalXP < Threshold(L+1). Total for all totalXP >= 0;
// negative input is treated as 0.
func (c Curve) LevelForXP(totalXP int) Progress {
	if totalXP < 0 {
		totalXP = 0
	}
	// Saturated thresholds must stay strictly above the search value so
	// the exponential phase terminates.
	if totalXP == math.MaxInt {
		totalXP = math.MaxInt - 1
	}

	// Exponential search upper bound, then binary search.
	low := 1
	high := 2
	for high < maxSearchLevel && c.Threshold(high) <= totalXP {
		low = high
		high *= 2
	}
	if c.Threshold(high) <= totalXP {
		low = high
		high++
	}
	for low+1 < high {
		mid := low + (high-low)/2
		if c.Threshold(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}

	return Progress{
		Level:          low,
		XPIntoLevel:    totalXP - c.Threshold(low),
		XPForNextLevel: c.Threshold(low+1) - c.Threshold(low),
	}
}
