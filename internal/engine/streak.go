package engine

import "github.com/EricA1019/gamified-checklist/internal/model"

// UpdateStreak advances the user's streak state for a completion on the
// given calendar day.
//
// Repeat completions on the same day do not double-count. A completion
// exactly one day after the last extends the streak; any larger gap (or no
// prior completion) starts a new streak at 1. Dates before the last
// recorded completion are rejected with StaleCompletionError and leave the
// user unchanged.
func UpdateStreak(u *model.User, day model.Date) error {
	last := u.LastCompletionDate

	switch {
	case !last.IsZero() && day.Before(last):
		return StaleCompletionError{Date: day, Last: last}
	case !last.IsZero() && day.Equal(last):
		return nil
	case !last.IsZero() && last.AddDays(1).Equal(day):
		u.CurrentStreak++
	default:
		u.CurrentStreak = 1
	}

	if u.CurrentStreak > u.BestStreak {
		u.BestStreak = u.CurrentStreak
	}
	u.LastCompletionDate = day
	return nil
}
