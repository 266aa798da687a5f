package store

import "fmt"

// PersistenceError wraps a read or write failure. Mutating engine
// operations surface it and roll back; the app must never report success
// while the write failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

// SchemaMigrationError indicates a persisted schema version with no
// migration path. Unlike corruption this is fatal: guessing at fields
// would silently destroy data.
type SchemaMigrationError struct {
	Found   int
	Current int
}

func (e SchemaMigrationError) Error() string {
	return fmt.Sprintf("snapshot schema version %d has no migration path to %d", e.Found, e.Current)
}
