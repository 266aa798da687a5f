package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

func newTestStore(t *testing.T) (*Store, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var buf bytes.Buffer
	s, err := New(dir, WithLogger(log.New(&buf, "", 0)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, dir, &buf
}

func sampleSnapshot() *model.Snapshot {
	snap := model.NewSnapshot()
	snap.User.TotalXP = 120
	snap.User.Level = 2
	snap.User.CurrentStreak = 2
	snap.User.BestStreak = 4
	snap.User.LastCompletionDate = model.NewDate(2026, time.March, 2)
	snap.User.LastResetDate = model.NewDate(2026, time.March, 2)
	created := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	snap.Tasks = []*model.Task{{
		ID:         "t1",
		Title:      "Read 30 pages",
		Difficulty: model.DifficultyMedium,
		Kind:       model.KindQuest,
		CreatedAt:  created,
	}}
	return snap
}

// writeSnapshotFile puts a snapshot on disk directly, bypassing Save's
// verification, for tests exercising hand-edited documents.
func writeSnapshotFile(t *testing.T, dir string, snap *model.Snapshot) {
	t.Helper()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), data, 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)
	want := sampleSnapshot()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.User != want.User {
		t.Fatalf("user = %+v, want %+v", got.User, want.User)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "Read 30 pages" {
		t.Fatalf("tasks = %+v", got.Tasks)
	}
	if got.SchemaVersion != model.SchemaVersion {
		t.Fatalf("schema version = %d, want %d", got.SchemaVersion, model.SchemaVersion)
	}
}

func TestLoadMissingReturnsFresh(t *testing.T) {
	s, _, buf := newTestStore(t)
	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.User.TotalXP != 0 || snap.User.Level != 1 {
		t.Fatalf("fresh user = %+v", snap.User)
	}
	if len(snap.Categories) == 0 {
		t.Fatalf("fresh snapshot missing default categories")
	}
	// Absence is normal on first launch, not a corruption event.
	if strings.Contains(buf.String(), "unreadable") {
		t.Fatalf("unexpected warning on first launch: %q", buf.String())
	}
}

func TestBackupIsByteIdenticalPreviousPrimary(t *testing.T) {
	s, dir, _ := newTestStore(t)
	first := sampleSnapshot()
	if err := s.Save(first); err != nil {
		t.Fatalf("Save 1: %v", err)
	}
	primaryBytes, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if err != nil {
		t.Fatalf("read primary: %v", err)
	}

	second := sampleSnapshot()
	second.User.TotalXP = 200
	if err := s.Save(second); err != nil {
		t.Fatalf("Save 2: %v", err)
	}

	backupBytes, err := os.ReadFile(filepath.Join(dir, BackupFile))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Equal(primaryBytes, backupBytes) {
		t.Fatalf("backup is not byte-identical to the previous primary")
	}
}

func TestCorruptPrimaryFallsBackToBackup(t *testing.T) {
	s, dir, buf := newTestStore(t)
	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save 1: %v", err)
	}
	updated := sampleSnapshot()
	updated.User.TotalXP = 500
	if err := s.Save(updated); err != nil {
		t.Fatalf("Save 2: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), []byte("{garbage"), 0o600); err != nil {
		t.Fatalf("corrupt primary: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The backup holds the first save's content.
	if snap.User.TotalXP != 120 {
		t.Fatalf("total xp=%d, want the backup's 120", snap.User.TotalXP)
	}
	if !strings.Contains(buf.String(), "backup") {
		t.Fatalf("expected a logged recovery warning, got %q", buf.String())
	}
}

func TestSaveAfterBackupRecoveryKeepsValidBackup(t *testing.T) {
	s, dir, _ := newTestStore(t)
	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save 1: %v", err)
	}
	updated := sampleSnapshot()
	updated.User.TotalXP = 500
	if err := s.Save(updated); err != nil {
		t.Fatalf("Save 2: %v", err)
	}

	// Primary corrupts; the backup is now the only valid copy.
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), []byte("{garbage"), 0o600); err != nil {
		t.Fatalf("corrupt primary: %v", err)
	}
	recovered, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if recovered.User.TotalXP != 120 {
		t.Fatalf("total xp=%d, want the backup's 120", recovered.User.TotalXP)
	}

	// Saving the recovered state must not rotate the corrupt primary
	// bytes over that backup.
	if err := s.Save(recovered); err != nil {
		t.Fatalf("Save after recovery: %v", err)
	}
	backup, err := s.readSnapshot(filepath.Join(dir, BackupFile))
	if err != nil {
		t.Fatalf("backup no longer parses after save: %v", err)
	}
	if backup.User.TotalXP != 120 {
		t.Fatalf("backup total xp=%d, want 120", backup.User.TotalXP)
	}

	// The recovery chain survives a second primary corruption.
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), []byte("{garbage"), 0o600); err != nil {
		t.Fatalf("corrupt primary again: %v", err)
	}
	again, err := s.Load()
	if err != nil {
		t.Fatalf("Load 2: %v", err)
	}
	if again.User.TotalXP != 120 {
		t.Fatalf("total xp=%d after second recovery, want 120", again.User.TotalXP)
	}
}

func TestLoadRepairsDanglingCategoryReference(t *testing.T) {
	s, dir, buf := newTestStore(t)
	snap := sampleSnapshot()
	snap.Tasks[0].CategoryID = "ghost"
	writeSnapshotFile(t, dir, snap)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Tasks[0].CategoryID != "" {
		t.Fatalf("category_id=%q, want unassigned", got.Tasks[0].CategoryID)
	}
	if !strings.Contains(buf.String(), "unknown category") {
		t.Fatalf("expected a logged repair warning, got %q", buf.String())
	}
}

func TestLoadRepairsInconsistentCompletion(t *testing.T) {
	s, dir, buf := newTestStore(t)
	snap := sampleSnapshot()
	// A hand-edit that flips completed without the paired fields.
	snap.Tasks[0].Completed = true
	writeSnapshotFile(t, dir, snap)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	task := got.Tasks[0]
	if task.Completed || task.CompletedAt != nil || task.XPAwarded != nil {
		t.Fatalf("task not reverted to pending: %+v", task)
	}
	if !strings.Contains(buf.String(), "inconsistent completion") {
		t.Fatalf("expected a logged repair warning, got %q", buf.String())
	}
}

func TestLoadRejectsStructurallyInvalidTask(t *testing.T) {
	s, dir, _ := newTestStore(t)
	snap := sampleSnapshot()
	snap.Tasks[0].Difficulty = "epic"
	writeSnapshotFile(t, dir, snap)

	// An unrepairable document counts as corruption, so the usual
	// fallback applies and yields a fresh state here.
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.User.TotalXP != 0 || len(got.Tasks) != 0 {
		t.Fatalf("expected fresh state, got %+v", got)
	}
}

func TestBothCorruptYieldsFreshState(t *testing.T) {
	s, dir, _ := newTestStore(t)
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), []byte("nope"), 0o600); err != nil {
		t.Fatalf("write primary: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, BackupFile), []byte("also nope"), 0o600); err != nil {
		t.Fatalf("write backup: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load must not fail on corruption: %v", err)
	}
	if snap.User.TotalXP != 0 || len(snap.Tasks) != 0 {
		t.Fatalf("expected fresh state, got %+v", snap)
	}
}

func TestFailedSaveKeepsPrimaryIntact(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed as root")
	}
	s, dir, _ := newTestStore(t)
	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	before, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if err != nil {
		t.Fatalf("read primary: %v", err)
	}

	// Make the dir unwritable so the temp-file write fails.
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer func() { _ = os.Chmod(dir, 0o700) }()

	if err := s.Save(sampleSnapshot()); err == nil {
		t.Fatalf("expected save failure")
	}

	_ = os.Chmod(dir, 0o700)
	after, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if err != nil {
		t.Fatalf("read primary after: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("primary changed despite failed save")
	}
}

func TestMigrateV1AddsDescription(t *testing.T) {
	s, dir, _ := newTestStore(t)
	v1 := `{
  "schema_version": 1,
  "user": {"total_xp": 30, "level": 1, "current_streak": 1, "best_streak": 1,
           "last_completion_date": "2026-03-01", "last_reset_date": "2026-03-01"},
  "categories": [{"id": "c1", "name": "Work"}],
  "tasks": [{"id": "t1", "title": "old task", "difficulty": "easy", "kind": "daily",
             "completed": false, "completed_at": null,
             "created_at": "2026-03-01T08:00:00Z", "xp_awarded": null}]
}`
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), []byte(v1), 0o600); err != nil {
		t.Fatalf("write v1: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.SchemaVersion != model.SchemaVersion {
		t.Fatalf("schema version=%d, want %d", snap.SchemaVersion, model.SchemaVersion)
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].Title != "old task" {
		t.Fatalf("tasks = %+v", snap.Tasks)
	}
	if snap.User.TotalXP != 30 {
		t.Fatalf("total xp=%d, want 30", snap.User.TotalXP)
	}
}

func TestUnknownSchemaVersionFails(t *testing.T) {
	s, dir, _ := newTestStore(t)
	doc := `{"schema_version": 99, "user": {}, "categories": [], "tasks": []}`
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := s.Load()
	var m SchemaMigrationError
	if !errors.As(err, &m) {
		t.Fatalf("err=%v, want SchemaMigrationError", err)
	}
	if m.Found != 99 {
		t.Fatalf("found=%d, want 99", m.Found)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s, dir, _ := newTestStore(t)
	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
