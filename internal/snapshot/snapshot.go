// Package snapshot persists module state as versioned JSON files. It is the
// write-through mirror behind every list view: the in-memory list stays the
// source of truth and each mutation saves a full snapshot. Files carry a
// schema version so old snapshots can be migrated instead of discarded.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MigrateFunc upgrades a payload written at an older schema version.
// It receives the stored version and raw payload and returns a payload
// readable at the current version.
type MigrateFunc func(version int, payload json.RawMessage) (json.RawMessage, error)

// envelope is the on-disk shape of every snapshot file
type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// File reads and writes a single versioned snapshot of type T
type File[T any] struct {
	path    string
	version int
	migrate MigrateFunc
}

// NewFile creates a snapshot file handle for the given path and schema version
func NewFile[T any](path string, version int) *File[T] {
	return &File[T]{path: path, version: version}
}

// WithMigration registers a migration for payloads written at older versions
func (f *File[T]) WithMigration(fn MigrateFunc) *File[T] {
	f.migrate = fn
	return f
}

// Path returns the snapshot file path
func (f *File[T]) Path() string { return f.path }

// Save writes the value as a versioned snapshot. The write goes through a
// temporary file and rename so a crash mid-write cannot corrupt the snapshot.
func (f *File[T]) Save(value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot data: %w", err)
	}

	env := envelope{
		Version: f.version,
		SavedAt: time.Now().UTC(),
		Data:    data,
	}

	body, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot envelope: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot, migrating older versions when a migration is
// registered. Missing files, malformed JSON and unknown versions all return
// an error; callers fall back to seed data.
func (f *File[T]) Load() (T, error) {
	var zero T

	body, err := os.ReadFile(f.path)
	if err != nil {
		return zero, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("malformed snapshot %s: %w", filepath.Base(f.path), err)
	}

	payload := env.Data
	if env.Version != f.version {
		if f.migrate == nil || env.Version > f.version {
			return zero, fmt.Errorf("snapshot %s has unsupported version %d (want %d)",
				filepath.Base(f.path), env.Version, f.version)
		}
		payload, err = f.migrate(env.Version, payload)
		if err != nil {
			return zero, fmt.Errorf("failed to migrate snapshot from version %d: %w", env.Version, err)
		}
	}

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		return zero, fmt.Errorf("malformed snapshot payload in %s: %w", filepath.Base(f.path), err)
	}

	return value, nil
}
