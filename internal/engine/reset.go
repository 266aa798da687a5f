package engine

import "github.com/EricA1019/gamified-checklist/internal/model"

// MaybeReset applies the daily rollover to the snapshot, in place.
// Returns false when the reset already ran today (no-op), so repeated
// activations within one calendar day are idempotent.
//
// On rollover every daily task re-arms: completion state clears regardless
// of when it was completed, while XP already banked stays banked. Quests
// are untouched. If yesterday had zero completions the streak is broken by
// inactivity, independent of any completion event.
func MaybeReset(s *model.Snapshot, today model.Date) bool {
	if s.User.LastResetDate.Equal(today) {
		return false
	}

	for _, t := range s.Tasks {
		if t.Kind != model.KindDaily {
			continue
		}
		t.Completed = false
		t.CompletedAt = nil
		t.XPAwarded = nil
	}

	last := s.User.LastCompletionDate
	if last.IsZero() || last.Before(today.AddDays(-1)) {
		s.User.CurrentStreak = 0
	}

	s.User.LastResetDate = today
	return true
}
