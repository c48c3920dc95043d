package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rshade/ecotrack/internal/footprint"

	_ "modernc.org/sqlite"
)

// Meta keys in the SQLite store.
const (
	metaSchemaVersion = "schema_version"
	metaLogged        = "logged"
	metaEcoChoices    = "eco_choices"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS days (
  date_key TEXT PRIMARY KEY,
  transport REAL NOT NULL,
  food REAL NOT NULL,
  energy REAL NOT NULL,
  total REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS activities (
  seq INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  category TEXT NOT NULL,
  type TEXT NOT NULL,
  carbon_kg REAL NOT NULL,
  occurred_at TEXT NOT NULL
);
`

// SQLiteStore keeps the state in a SQLite database. Activities are stored
// with their list position so newest-first order survives a round trip.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating state directory: %w", ErrStorageUnavailable, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening sqlite: %w", ErrStorageUnavailable, err)
	}
	s := &SQLiteStore{db: db, path: path}
	if schemaErr := s.ensureSchema(context.Background()); schemaErr != nil {
		_ = db.Close()
		return nil, schemaErr
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("%w: creating tables: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the whole state. An empty database returns a fresh state.
// Query failures return ErrStorageUnavailable and undecodable rows or an
// incompatible schema version return ErrStateCorrupted, both with a fresh state.
func (s *SQLiteStore) Load() (*footprint.AppState, error) {
	ctx := context.Background()
	state := footprint.NewAppState()

	meta, err := s.loadMeta(ctx)
	if err != nil {
		return footprint.NewAppState(), err
	}
	if versionErr := checkSchemaVersion(meta[metaSchemaVersion]); versionErr != nil {
		return footprint.NewAppState(), fmt.Errorf("%w: %w", ErrStateCorrupted, versionErr)
	}
	if state.Stats.Logged, err = metaInt(meta, metaLogged); err != nil {
		return footprint.NewAppState(), err
	}
	if state.Stats.EcoChoices, err = metaInt(meta, metaEcoChoices); err != nil {
		return footprint.NewAppState(), err
	}

	if err := s.loadDays(ctx, state); err != nil {
		return footprint.NewAppState(), err
	}
	if err := s.loadActivities(ctx, state); err != nil {
		return footprint.NewAppState(), err
	}
	return state, nil
}

func (s *SQLiteStore) loadMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("%w: query meta: %w", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if scanErr := rows.Scan(&k, &v); scanErr != nil {
			return nil, fmt.Errorf("%w: scan meta: %w", ErrStateCorrupted, scanErr)
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read meta: %w", ErrStorageUnavailable, err)
	}
	return meta, nil
}

func metaInt(meta map[string]string, key string) (int, error) {
	raw, ok := meta[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: meta %s: %w", ErrStateCorrupted, key, err)
	}
	return n, nil
}

func (s *SQLiteStore) loadDays(ctx context.Context, state *footprint.AppState) error {
	rows, err := s.db.QueryContext(ctx, `SELECT date_key, transport, food, energy, total FROM days`)
	if err != nil {
		return fmt.Errorf("%w: query days: %w", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var b footprint.DayBucket
		if scanErr := rows.Scan(&key, &b.Transport, &b.Food, &b.Energy, &b.Total); scanErr != nil {
			return fmt.Errorf("%w: scan day: %w", ErrStateCorrupted, scanErr)
		}
		state.Daily[key] = b
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: read days: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) loadActivities(ctx context.Context, state *footprint.AppState) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, type, carbon_kg, occurred_at FROM activities ORDER BY seq ASC`)
	if err != nil {
		return fmt.Errorf("%w: query activities: %w", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e          footprint.ActivityEvent
			category   string
			occurredAt string
		)
		if scanErr := rows.Scan(&e.ID, &category, &e.Type, &e.CarbonKg, &occurredAt); scanErr != nil {
			return fmt.Errorf("%w: scan activity: %w", ErrStateCorrupted, scanErr)
		}
		e.Category = footprint.Category(category)
		t, parseErr := time.Parse(time.RFC3339Nano, occurredAt)
		if parseErr != nil {
			return fmt.Errorf("%w: activity %s timestamp: %w", ErrStateCorrupted, e.ID, parseErr)
		}
		e.OccurredAt = t
		state.Activities = append(state.Activities, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: read activities: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Save replaces the stored state in a single transaction. Failures wrap
// ErrStorageUnavailable and leave the previous state in place.
func (s *SQLiteStore) Save(state *footprint.AppState) (err error) {
	if state == nil {
		return fmt.Errorf("%w: nil state", ErrStorageUnavailable)
	}
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStorageUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = replaceState(ctx, tx, state); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func replaceState(ctx context.Context, tx *sql.Tx, state *footprint.AppState) error {
	for _, table := range []string{"days", "activities"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for key, b := range state.Daily {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO days (date_key, transport, food, energy, total) VALUES (?, ?, ?, ?, ?)`,
			key, b.Transport, b.Food, b.Energy, b.Total); err != nil {
			return fmt.Errorf("insert day %s: %w", key, err)
		}
	}

	for i, e := range state.Activities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO activities (seq, id, category, type, carbon_kg, occurred_at) VALUES (?, ?, ?, ?, ?, ?)`,
			i, e.ID, string(e.Category), e.Type, e.CarbonKg, e.OccurredAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("insert activity %s: %w", e.ID, err)
		}
	}

	meta := map[string]string{
		metaSchemaVersion: SchemaVersion,
		metaLogged:        strconv.Itoa(state.Stats.Logged),
		metaEcoChoices:    strconv.Itoa(state.Stats.EcoChoices),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
			k, v); err != nil {
			return fmt.Errorf("upsert meta %s: %w", k, err)
		}
	}
	return nil
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a state backend.
type Store interface {
	Load() (*footprint.AppState, error)
	Save(state *footprint.AppState) error
	Path() string
	Close() error
}

// Open returns the backend named by backend at path. An empty backend is JSON.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
