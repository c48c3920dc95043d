package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/footprint"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "eco", "state.json"))
	require.NoError(t, err)
	return s
}

func TestNewFileStore(t *testing.T) {
	t.Parallel()

	t.Run("explicit path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "state.json")
		s, err := NewFileStore(path)
		require.NoError(t, err)
		assert.Equal(t, path, s.Path())
	})

	t.Run("empty path defaults to home dir", func(t *testing.T) {
		t.Parallel()
		s, err := NewFileStore("")
		require.NoError(t, err)
		assert.Contains(t, s.Path(), filepath.Join(".ecotrack", "state.json"))
	})
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	state, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Empty(t, state.Daily)
	assert.NotNil(t, state.Daily)
	assert.Empty(t, state.Activities)
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	ledger := footprint.NewLedger(nil, 10)
	now := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	_, err := ledger.Record(footprint.CategoryTransport, "car", 2.3, now)
	require.NoError(t, err)
	_, err = ledger.Record(footprint.CategoryEnergy, "solar", -0.5, now.Add(time.Minute))
	require.NoError(t, err)

	require.NoError(t, s.Save(ledger.State()))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, ledger.State().Stats, loaded.Stats)
	assert.Equal(t, ledger.State().Daily, loaded.Daily)
	require.Len(t, loaded.Activities, 2)
	assert.Equal(t, "solar", loaded.Activities[0].Type)
	assert.True(t, loaded.Activities[0].OccurredAt.Equal(now.Add(time.Minute)))

	_, statErr := os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "temp file should be renamed away")

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"schema_version": "1.0.0"`)
}

func TestFileStore_CorruptFallsBackToFresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid json", content: "{not json"},
		{name: "wrong shape", content: `{"daily": [1, 2, 3]}`},
		{name: "future major schema", content: `{"schema_version": "2.0.0", "daily": {}}`},
		{name: "garbage schema", content: `{"schema_version": "banana"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o750))
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0o600))

			state, err := s.Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrStateCorrupted)
			require.NotNil(t, state)
			assert.Empty(t, state.Daily)
			assert.Equal(t, footprint.Stats{}, state.Stats)
		})
	}
}

func TestFileStore_AcceptsMinorVersionsAndLegacy(t *testing.T) {
	t.Parallel()

	for _, content := range []string{
		`{"schema_version": "1.4.2", "stats": {"logged": 3, "eco_choices": 1}}`,
		`{"stats": {"logged": 3, "eco_choices": 1}}`,
	} {
		s := newTestStore(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o750))
		require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o600))

		state, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, 3, state.Stats.Logged)
		assert.NotNil(t, state.Daily)
		assert.NotNil(t, state.Activities)
	}
}

func TestFileStore_UnreadableIsStorageUnavailable(t *testing.T) {
	t.Parallel()
	// A directory at the state path cannot be read as a file.
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	state, err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NotNil(t, state)
}

func TestFileStore_SaveFailures(t *testing.T) {
	t.Parallel()

	t.Run("nil state", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		assert.ErrorIs(t, s.Save(nil), ErrStorageUnavailable)
	})

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		s, err := NewFileStore(filepath.Join(blocker, "state.json"))
		require.NoError(t, err)
		err = s.Save(footprint.NewAppState())
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}
