// Package store persists the ecotrack AppState, either as a single JSON
// document or in a SQLite database.
//
// Load never fails hard: a missing, unreadable or corrupt store yields a fresh
// state, with a typed error for the latter two so callers can report it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/ecotrack/internal/footprint"
)

// SchemaVersion is the version written to new state files. Files with a
// different major version are treated as unreadable.
const SchemaVersion = "1.0.0"

var (
	// ErrStorageUnavailable indicates the state file could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStateCorrupted indicates the state file exists but could not be decoded.
	ErrStateCorrupted = errors.New("state file corrupted")
)

// stateDocument is the serialized form of the store.
type stateDocument struct {
	SchemaVersion string `json:"schema_version"`
	footprint.AppState
}

// FileStore reads and writes the state document at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. An empty path defaults to
// ~/.ecotrack/state.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".ecotrack", "state.json")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}

// Load reads the state document.
//
// A missing file returns a fresh state and no error. An unreadable file
// returns a fresh state and ErrStorageUnavailable. Invalid JSON or an
// incompatible schema version returns a fresh state and ErrStateCorrupted.
// The returned state is never nil.
func (s *FileStore) Load() (*footprint.AppState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return footprint.NewAppState(), nil
		}
		return footprint.NewAppState(), fmt.Errorf("%w: reading %s: %w", ErrStorageUnavailable, s.path, err)
	}

	var doc stateDocument
	if unmarshalErr := json.Unmarshal(data, &doc); unmarshalErr != nil {
		return footprint.NewAppState(), fmt.Errorf("%w: %w", ErrStateCorrupted, unmarshalErr)
	}
	if versionErr := checkSchemaVersion(doc.SchemaVersion); versionErr != nil {
		return footprint.NewAppState(), fmt.Errorf("%w: %w", ErrStateCorrupted, versionErr)
	}

	state := doc.AppState
	if state.Daily == nil {
		state.Daily = make(map[string]footprint.DayBucket)
	}
	if state.Activities == nil {
		state.Activities = []footprint.ActivityEvent{}
	}
	return &state, nil
}

// checkSchemaVersion accepts documents whose major version matches SchemaVersion.
// A missing version is read as the current one.
func checkSchemaVersion(raw string) error {
	if raw == "" {
		return nil
	}
	got, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("invalid schema version %q: %w", raw, err)
	}
	want := semver.MustParse(SchemaVersion)
	if got.Major() != want.Major() {
		return fmt.Errorf("unsupported schema version %s (expected %d.x)", got, want.Major())
	}
	return nil
}

// Save writes state atomically via a temp file and rename. Failures wrap
// ErrStorageUnavailable.
func (s *FileStore) Save(state *footprint.AppState) error {
	if state == nil {
		return fmt.Errorf("%w: nil state", ErrStorageUnavailable)
	}

	data, err := json.MarshalIndent(stateDocument{
		SchemaVersion: SchemaVersion,
		AppState:      *state,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling state: %w", ErrStorageUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
		return fmt.Errorf("%w: creating state directory: %w", ErrStorageUnavailable, mkdirErr)
	}

	tmpPath := s.path + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("%w: writing temp file: %w", ErrStorageUnavailable, writeErr)
	}
	if renameErr := os.Rename(tmpPath, s.path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming temp file: %w", ErrStorageUnavailable, renameErr)
	}
	return nil
}
