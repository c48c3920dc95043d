package tracker

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/catalog"
	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/store"
)

// memoryStore is an in-memory Store for tests.
type memoryStore struct {
	state   *footprint.AppState
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryStore) Load() (*footprint.AppState, error) {
	if m.state == nil {
		return footprint.NewAppState(), m.loadErr
	}
	return m.state, m.loadErr
}

func (m *memoryStore) Save(state *footprint.AppState) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.state = state
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2025, 1, 8, 18, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T, st Store) *Tracker {
	t.Helper()
	tr := New(Options{ActivityCap: 50}, st, catalog.Default(), fixedClock(testNow))
	tr.Open(context.Background())
	return tr
}

func TestTracker_LogFromCatalog(t *testing.T) {
	st := &memoryStore{}
	tr := newTestTracker(t, st)
	ctx := context.Background()

	event, err := tr.Log(ctx, "transport", "car", 1)
	require.NoError(t, err)
	assert.InDelta(t, 2.3, event.CarbonKg, 1e-9)

	event, err = tr.Log(ctx, "food", "vegan", 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, event.CarbonKg, 1e-9)

	_, err = tr.Log(ctx, "energy", "solar", 1)
	require.NoError(t, err)

	bucket := tr.Aggregator().Bucket("2025-01-08")
	assert.InDelta(t, 2.3, bucket.Transport, 1e-9)
	assert.InDelta(t, 0.6, bucket.Food, 1e-9)
	assert.InDelta(t, -0.5, bucket.Energy, 1e-9)
	assert.InDelta(t, 2.4, bucket.Total, 1e-9)

	assert.Equal(t, 3, tr.State().Stats.Logged)
	assert.Equal(t, 1, tr.State().Stats.EcoChoices)
	assert.Equal(t, 3, st.saves, "every record is persisted")
}

func TestTracker_LogErrors(t *testing.T) {
	tests := []struct {
		name     string
		category string
		typ      string
		qty      float64
		wantErr  error
	}{
		{name: "unknown type", category: "food", typ: "dragonfruit", qty: 1, wantErr: ErrUnknownActivity},
		{name: "unknown category", category: "water", typ: "shower", qty: 1, wantErr: footprint.ErrInvalidCategory},
		{name: "missing category", category: "", typ: "car", qty: 1, wantErr: footprint.ErrInvalidActivity},
		{name: "zero quantity", category: "transport", typ: "car", qty: 0, wantErr: footprint.ErrInvalidActivity},
		{name: "negative quantity", category: "transport", typ: "car", qty: -2, wantErr: footprint.ErrInvalidActivity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &memoryStore{}
			tr := newTestTracker(t, st)

			_, err := tr.Log(context.Background(), tt.category, tt.typ, tt.qty)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, st.saves)
			assert.Equal(t, 0, tr.State().Stats.Logged)
		})
	}
}

func TestTracker_LogCustom(t *testing.T) {
	tr := newTestTracker(t, &memoryStore{})

	event, err := tr.LogCustom(context.Background(), "transport", "ferry", 12.5)
	require.NoError(t, err)
	assert.Equal(t, "ferry", event.Type)
	assert.InDelta(t, 12.5, tr.Aggregator().Bucket("2025-01-08").Transport, 1e-9)

	_, err = tr.LogCustom(context.Background(), "transport", "", 1)
	assert.ErrorIs(t, err, footprint.ErrInvalidActivity)
}

func TestTracker_SaveFailureKeepsRecord(t *testing.T) {
	saveErr := errors.Join(store.ErrStorageUnavailable, errors.New("disk full"))
	st := &memoryStore{saveErr: saveErr}
	tr := newTestTracker(t, st)

	event, err := tr.Log(context.Background(), "food", "beef", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, 1, tr.State().Stats.Logged)
}

func TestTracker_OpenRecoversFromLoadError(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	st := &memoryStore{loadErr: store.ErrStateCorrupted}
	tr := New(Options{}, st, catalog.Default(), fixedClock(testNow))
	tr.Open(ctx)

	assert.ErrorIs(t, tr.LoadError(), store.ErrStateCorrupted)
	assert.NotNil(t, tr.State().Daily)
	assert.Contains(t, buf.String(), "starting fresh")

	_, err := tr.Log(ctx, "transport", "bus", 1)
	require.NoError(t, err)
}

func TestTracker_OpenAppliesCap(t *testing.T) {
	state := footprint.NewAppState()
	for range 10 {
		state.Activities = append(state.Activities, footprint.ActivityEvent{Type: "car"})
	}
	tr := New(Options{ActivityCap: 4}, &memoryStore{state: state}, catalog.Default(), fixedClock(testNow))
	tr.Open(context.Background())
	assert.Len(t, tr.Recent(0), 4)
}

func TestTracker_Reset(t *testing.T) {
	st := &memoryStore{}
	tr := newTestTracker(t, st)
	_, err := tr.Log(context.Background(), "transport", "car", 1)
	require.NoError(t, err)

	require.NoError(t, tr.Reset(context.Background()))
	assert.Empty(t, tr.State().Daily)
	assert.Equal(t, footprint.Stats{}, st.state.Stats)
}

func TestTracker_Defaults(t *testing.T) {
	tr := New(Options{}, &memoryStore{}, catalog.Default(), nil)
	assert.InDelta(t, greenops.RegionalDailyAverageKg, tr.RegionalAverageKg(), 1e-9)
	assert.WithinDuration(t, time.Now(), tr.Now(), time.Minute)
}

func TestTracker_WithFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	fs, err := store.NewFileStore(path)
	require.NoError(t, err)

	tr := New(Options{ActivityCap: 10}, fs, catalog.Default(), fixedClock(testNow))
	tr.Open(context.Background())
	_, err = tr.Log(context.Background(), "energy", "heater", 2)
	require.NoError(t, err)

	reopened := New(Options{ActivityCap: 10}, fs, catalog.Default(), fixedClock(testNow))
	reopened.Open(context.Background())
	require.NoError(t, reopened.LoadError())
	assert.InDelta(t, 4.0, reopened.Aggregator().Bucket("2025-01-08").Energy, 1e-9)
	assert.Equal(t, 1, reopened.State().Stats.Logged)
}
