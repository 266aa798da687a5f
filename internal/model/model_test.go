package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-03-05"` {
		t.Fatalf("marshal = %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip: %s != %s", back, d)
	}
}

func TestDateZeroMarshalsNull(t *testing.T) {
	var d Date
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("marshal = %s, want null", data)
	}

	var back Date
	if err := json.Unmarshal([]byte("null"), &back); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("null did not decode to absent date")
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2026, time.February, 28)
	if got := d.AddDays(1); !got.Equal(NewDate(2026, time.March, 1)) {
		t.Fatalf("AddDays over month boundary = %s", got)
	}
	if got := d.DaysUntil(NewDate(2026, time.March, 3)); got != 3 {
		t.Fatalf("DaysUntil = %d, want 3", got)
	}
	if !d.Before(NewDate(2026, time.March, 1)) {
		t.Fatalf("Before failed")
	}
}

func TestTaskValidate(t *testing.T) {
	now := time.Now()
	xp := 10
	valid := Task{
		ID: NewTaskID(), Title: "x", Difficulty: DifficultyEasy,
		Kind: KindDaily, CreatedAt: now,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	cases := []struct {
		name string
		task Task
	}{
		{"blank title", Task{Title: " ", Difficulty: DifficultyEasy, Kind: KindDaily}},
		{"bad difficulty", Task{Title: "x", Difficulty: "epic", Kind: KindDaily}},
		{"bad kind", Task{Title: "x", Difficulty: DifficultyEasy, Kind: "weekly"}},
		{"completed without timestamp", Task{Title: "x", Difficulty: DifficultyEasy, Kind: KindDaily, Completed: true, XPAwarded: &xp}},
		{"timestamp without completed", Task{Title: "x", Difficulty: DifficultyEasy, Kind: KindDaily, CompletedAt: &now}},
	}
	for _, tc := range cases {
		if err := tc.task.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	snap := NewSnapshot()
	xp := 10
	at := time.Now()
	snap.Tasks = []*Task{{
		ID: "t1", Title: "x", Difficulty: DifficultyEasy, Kind: KindDaily,
		Completed: true, CompletedAt: &at, XPAwarded: &xp, CreatedAt: at,
	}}

	c := snap.Clone()
	c.Tasks[0].Title = "changed"
	*c.Tasks[0].XPAwarded = 99
	c.User.TotalXP = 500
	c.Categories[0].Name = "renamed"

	if snap.Tasks[0].Title != "x" || *snap.Tasks[0].XPAwarded != 10 {
		t.Fatalf("clone shares task memory with original")
	}
	if snap.User.TotalXP != 0 {
		t.Fatalf("clone shares user with original")
	}
	if snap.Categories[0].Name == "renamed" {
		t.Fatalf("clone shares category memory with original")
	}
}

func TestParseEnums(t *testing.T) {
	if d, ok := ParseDifficulty(" Medium "); !ok || d != DifficultyMedium {
		t.Fatalf("ParseDifficulty = %v, %v", d, ok)
	}
	if _, ok := ParseDifficulty("epic"); ok {
		t.Fatalf("accepted unknown difficulty")
	}
	if k, ok := ParseKind("QUEST"); !ok || k != KindQuest {
		t.Fatalf("ParseKind = %v, %v", k, ok)
	}
	if _, ok := ParseKind("weekly"); ok {
		t.Fatalf("accepted unknown kind")
	}
}
