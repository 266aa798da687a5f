package model

// User is the single local profile's progression state.
//
// Level is derived from TotalXP and cached here; the engine recomputes it
// whenever TotalXP changes. CurrentStreak never exceeds BestStreak.
type User struct {
	TotalXP            int  `json:"total_xp"`
	Level              int  `json:"level"`
	CurrentStreak      int  `json:"current_streak"`
	BestStreak         int  `json:"best_streak"`
	LastCompletionDate Date `json:"last_completion_date"`
	LastResetDate      Date `json:"last_reset_date"`
}

// NewUser returns a fresh profile at level 1 with no history.
func NewUser() User {
	return User{Level: 1}
}
