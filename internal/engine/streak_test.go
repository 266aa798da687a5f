package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

func day(d int) model.Date {
	return model.NewDate(2026, time.March, d)
}

func TestStreakFirstCompletion(t *testing.T) {
	u := model.NewUser()
	if err := UpdateStreak(&u, day(1)); err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	if u.CurrentStreak != 1 || u.BestStreak != 1 {
		t.Fatalf("streak=%d best=%d, want 1/1", u.CurrentStreak, u.BestStreak)
	}
	if !u.LastCompletionDate.Equal(day(1)) {
		t.Fatalf("last completion=%s, want %s", u.LastCompletionDate, day(1))
	}
}

func TestStreakSameDayNoDoubleCount(t *testing.T) {
	u := model.NewUser()
	_ = UpdateStreak(&u, day(1))
	if err := UpdateStreak(&u, day(1)); err != nil {
		t.Fatalf("UpdateStreak same day: %v", err)
	}
	if u.CurrentStreak != 1 {
		t.Fatalf("streak=%d, want 1", u.CurrentStreak)
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	u := model.NewUser()
	for d := 1; d <= 3; d++ {
		if err := UpdateStreak(&u, day(d)); err != nil {
			t.Fatalf("day %d: %v", d, err)
		}
	}
	if u.CurrentStreak != 3 || u.BestStreak != 3 {
		t.Fatalf("streak=%d best=%d, want 3/3", u.CurrentStreak, u.BestStreak)
	}
}

func TestStreakGapResetsToOne(t *testing.T) {
	u := model.NewUser()
	_ = UpdateStreak(&u, day(1))
	_ = UpdateStreak(&u, day(2))
	if err := UpdateStreak(&u, day(5)); err != nil {
		t.Fatalf("UpdateStreak after gap: %v", err)
	}
	if u.CurrentStreak != 1 {
		t.Fatalf("streak=%d, want 1", u.CurrentStreak)
	}
	if u.BestStreak != 2 {
		t.Fatalf("best=%d, want 2", u.BestStreak)
	}
}

func TestStreakRejectsBackdating(t *testing.T) {
	u := model.NewUser()
	_ = UpdateStreak(&u, day(5))
	before := u

	err := UpdateStreak(&u, day(3))
	var stale StaleCompletionError
	if !errors.As(err, &stale) {
		t.Fatalf("err=%v, want StaleCompletionError", err)
	}
	if u != before {
		t.Fatalf("user mutated on rejected completion: %+v", u)
	}
}
