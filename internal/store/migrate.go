package store

import (
	"encoding/json"

	"github.com/EricA1019/gamified-checklist/internal/model"
)

// migrations maps a schema version to the step that lifts a raw document
// to the next version. Every jump is explicit; there is no field-guessing
// for unknown versions.
var migrations = map[int]func([]byte) ([]byte, error){
	1: migrateV1toV2,
}

// migrate lifts a raw snapshot document from its declared version to the
// current one, one explicit step at a time.
func migrate(version int, data []byte) ([]byte, error) {
	// Version 0 means the field is absent: treat as the first version,
	// which shipped before the field existed.
	if version == 0 {
		version = 1
	}
	for version < model.SchemaVersion {
		step, ok := migrations[version]
		if !ok {
			return nil, SchemaMigrationError{Found: version, Current: model.SchemaVersion}
		}
		var err error
		data, err = step(data)
		if err != nil {
			return nil, err
		}
		version++
	}
	if version > model.SchemaVersion {
		return nil, SchemaMigrationError{Found: version, Current: model.SchemaVersion}
	}
	return data, nil
}

// migrateV1toV2 adds the task description field, absent before v2. The
// field is filled explicitly so the v2 parser never sees it missing.
func migrateV1toV2(data []byte) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, PersistenceError{Op: "migrate v1", Err: err}
	}

	var tasks []map[string]json.RawMessage
	if raw, ok := doc["tasks"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return nil, PersistenceError{Op: "migrate v1 tasks", Err: err}
		}
	}
	empty := json.RawMessage(`""`)
	for _, t := range tasks {
		if _, ok := t["description"]; !ok {
			t["description"] = empty
		}
	}
	if tasks != nil {
		raw, err := json.Marshal(tasks)
		if err != nil {
			return nil, PersistenceError{Op: "migrate v1 tasks", Err: err}
		}
		doc["tasks"] = raw
	}

	doc["schema_version"] = json.RawMessage(`2`)
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, PersistenceError{Op: "migrate v1", Err: err}
	}
	return out, nil
}
