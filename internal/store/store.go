// Package store persists profile snapshots as a JSON document with a
// single-slot backup. The write protocol guarantees an interrupted write
// never corrupts the primary file: the primary is only replaced after the
// temporary file is fully written and re-parsed.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

const (
	// SnapshotFile is the primary state file inside the data dir.
	SnapshotFile = "snapshot.json"
	// BackupFile holds a byte-identical copy of the previously valid
	// primary.
	BackupFile = "snapshot.json.bak"
)

// Store reads and writes snapshots under one data directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes the recoverable-corruption warning somewhere other
// than stderr.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates the data dir if needed and returns a store over it.
func New(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, PersistenceError{Op: "init", Err: err}
	}
	s := &Store{
		dir:    dir,
		logger: log.New(os.Stderr, "[store] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) primaryPath() string { return filepath.Join(s.dir, SnapshotFile) }
func (s *Store) backupPath() string  { return filepath.Join(s.dir, BackupFile) }

// Load returns the persisted snapshot. A missing or corrupt primary falls
// back to the backup with a logged warning; if both are unusable a fresh
// seeded snapshot is returned so the app always boots. Only unrecognized
// schema versions are fatal.
func (s *Store) Load() (*model.Snapshot, error) {
	snap, err := s.readSnapshot(s.primaryPath())
	if err == nil {
		return snap, nil
	}
	if isMigrationErr(err) {
		return nil, err
	}
	if !os.IsNotExist(underlying(err)) {
		s.logger.Printf("primary snapshot unreadable, trying backup: %v", err)
	}

	snap, berr := s.readSnapshot(s.backupPath())
	if berr == nil {
		s.logger.Printf("recovered state from backup %s", s.backupPath())
		return snap, nil
	}
	if isMigrationErr(berr) {
		return nil, berr
	}
	if !os.IsNotExist(underlying(berr)) {
		s.logger.Printf("backup snapshot unreadable, starting fresh: %v", berr)
	}

	return model.NewSnapshot(), nil
}

// Save writes the snapshot with backup rotation: temp write, parse
// verification, backup of the old primary, then atomic rename. Any
// failure leaves the previous primary intact.
func (s *Store) Save(snap *model.Snapshot) error {
	out := *snap
	out.SchemaVersion = model.SchemaVersion

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return PersistenceError{Op: "marshal", Err: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, ".snapshot-*.tmp")
	if err != nil {
		return PersistenceError{Op: "create temp", Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return PersistenceError{Op: "write temp", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return PersistenceError{Op: "sync temp", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return PersistenceError{Op: "close temp", Err: err}
	}

	// Re-read and parse what actually hit the disk before it can
	// replace the primary.
	if _, err := s.readSnapshot(tmpPath); err != nil {
		return PersistenceError{Op: "verify temp", Err: err}
	}

	if err := s.rotateBackup(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, s.primaryPath()); err != nil {
		return PersistenceError{Op: "replace primary", Err: err}
	}
	committed = true
	return nil
}

// rotateBackup copies the current primary to the backup slot,
// byte-identical. No primary yet means nothing to rotate. A primary that
// does not parse is never rotated: after a backup recovery the primary
// may still hold the corrupt document, and overwriting the only valid
// backup with it would break the recovery chain.
func (s *Store) rotateBackup() error {
	data, err := os.ReadFile(s.primaryPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return PersistenceError{Op: "read primary for backup", Err: err}
	}
	if _, err := s.decodeSnapshot(data, SnapshotFile); err != nil {
		s.logger.Printf("primary snapshot invalid, keeping existing backup: %v", err)
		return nil
	}
	if err := os.WriteFile(s.backupPath(), data, 0o600); err != nil {
		return PersistenceError{Op: "write backup", Err: err}
	}
	return nil
}

func (s *Store) readSnapshot(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, PersistenceError{Op: "read " + filepath.Base(path), Err: err}
	}
	return s.decodeSnapshot(data, filepath.Base(path))
}

func (s *Store) decodeSnapshot(data []byte, name string) (*model.Snapshot, error) {
	var raw struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, PersistenceError{Op: "parse " + name, Err: err}
	}

	data, err := migrate(raw.SchemaVersion, data)
	if err != nil {
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, PersistenceError{Op: "parse " + name, Err: err}
	}
	snap.SchemaVersion = model.SchemaVersion
	if snap.Categories == nil {
		snap.Categories = model.DefaultCategories()
	}
	if snap.User.Level < 1 {
		snap.User.Level = 1
	}
	if err := s.validateAndRepair(&snap, name); err != nil {
		return nil, err
	}
	return &snap, nil
}

// validateAndRepair enforces the model invariants on a decoded snapshot,
// covering hand-edited files the engine never wrote. Referential and
// field-pairing problems are repaired with a logged warning; a task or
// category that is structurally invalid (bad enum, blank title) is
// treated as corruption so the usual backup fallback applies.
func (s *Store) validateAndRepair(snap *model.Snapshot, name string) error {
	cats := make(map[string]bool, len(snap.Categories))
	for i := range snap.Categories {
		if err := snap.Categories[i].Validate(); err != nil {
			return PersistenceError{Op: "validate " + name, Err: err}
		}
		cats[snap.Categories[i].ID] = true
	}

	for _, t := range snap.Tasks {
		if t.CategoryID != "" && !cats[t.CategoryID] {
			s.logger.Printf("%s: task %s references unknown category %s, unassigning", name, t.ID, t.CategoryID)
			t.CategoryID = ""
		}
		if t.Completed != (t.CompletedAt != nil) || t.Completed != (t.XPAwarded != nil) {
			s.logger.Printf("%s: task %s has inconsistent completion fields, reverting to pending", name, t.ID)
			t.Completed = false
			t.CompletedAt = nil
			t.XPAwarded = nil
		}
		if err := t.Validate(); err != nil {
			return PersistenceError{Op: "validate " + name, Err: err}
		}
	}

	if snap.User.TotalXP < 0 {
		return PersistenceError{Op: "validate " + name, Err: errors.New("negative total xp")}
	}
	if snap.User.CurrentStreak > snap.User.BestStreak {
		s.logger.Printf("%s: best streak %d below current %d, raising", name, snap.User.BestStreak, snap.User.CurrentStreak)
		snap.User.BestStreak = snap.User.CurrentStreak
	}
	return nil
}

func isMigrationErr(err error) bool {
	var m SchemaMigrationError
	return errors.As(err, &m)
}

// underlying unwraps a PersistenceError so callers can check os.IsNotExist.
func underlying(err error) error {
	var p PersistenceError
	if errors.As(err, &p) {
		return p.Err
	}
	return err
}
