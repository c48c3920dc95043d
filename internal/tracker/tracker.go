// Package tracker owns the single ecotrack AppState and wires the emission
// catalog, the ledger and the persistence store together.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/logging"
)

// ErrUnknownActivity indicates an activity type missing from the catalog.
var ErrUnknownActivity = errors.New("unknown activity type")

// Store loads and saves the whole state document.
type Store interface {
	Load() (*footprint.AppState, error)
	Save(state *footprint.AppState) error
}

// Catalog resolves an activity type to its emission factor.
type Catalog interface {
	Lookup(category footprint.Category, activityType string) (footprint.EmissionFactor, bool)
}

// Options tune a Tracker.
type Options struct {
	ActivityCap       int
	RegionalAverageKg float64
}

// Tracker is the single writer of an AppState. It is not safe for concurrent use.
type Tracker struct {
	opts    Options
	store   Store
	catalog Catalog
	now     func() time.Time

	ledger  *footprint.Ledger
	loadErr error
}

// New creates a Tracker. A nil now uses time.Now. A non-positive regional
// average falls back to greenops.RegionalDailyAverageKg.
func New(opts Options, store Store, catalog Catalog, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	if opts.RegionalAverageKg <= 0 {
		opts.RegionalAverageKg = greenops.RegionalDailyAverageKg
	}
	return &Tracker{
		opts:    opts,
		store:   store,
		catalog: catalog,
		now:     now,
		ledger:  footprint.NewLedger(nil, opts.ActivityCap),
	}
}

// Open loads persisted state. Load problems are logged and leave the tracker
// on a fresh state; they are available from LoadError but never fail Open.
func (t *Tracker) Open(ctx context.Context) {
	logger := logging.FromContext(ctx).With().
		Str("component", "tracker").
		Str("operation", "Open").
		Logger()

	state, err := t.store.Load()
	t.loadErr = err
	if err != nil {
		logger.Warn().Err(err).Msg("could not load saved state, starting fresh")
	}
	if state == nil {
		state = footprint.NewAppState()
	}
	t.ledger = footprint.NewLedger(state, t.opts.ActivityCap)

	logger.Debug().
		Int("days", len(state.Daily)).
		Int("activities", len(state.Activities)).
		Msg("state loaded")
}

// LoadError returns the recoverable error from the last Open, if any.
func (t *Tracker) LoadError() error {
	return t.loadErr
}

// State returns the owned state.
func (t *Tracker) State() *footprint.AppState {
	return t.ledger.State()
}

// Aggregator returns a read-only view over the daily buckets.
func (t *Tracker) Aggregator() footprint.Aggregator {
	return footprint.NewAggregator(t.ledger.State())
}

// Recent returns up to limit of the newest activities.
func (t *Tracker) Recent(limit int) []footprint.ActivityEvent {
	return t.ledger.Recent(limit)
}

// Now returns the tracker clock's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// RegionalAverageKg returns the configured comparison figure.
func (t *Tracker) RegionalAverageKg() float64 {
	return t.opts.RegionalAverageKg
}

// Log records quantity units of a catalog activity and saves the state.
//
// It returns ErrUnknownActivity when the type is not in the catalog and
// footprint.ErrInvalidActivity for a non-positive or non-finite quantity.
// When saving fails the event is still recorded in memory and returned
// alongside the storage error.
func (t *Tracker) Log(ctx context.Context, category, activityType string, quantity float64) (footprint.ActivityEvent, error) {
	cat, err := footprint.ParseCategory(category)
	if err != nil {
		return footprint.ActivityEvent{}, err
	}
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return footprint.ActivityEvent{}, fmt.Errorf("%w: quantity must be positive, got %g",
			footprint.ErrInvalidActivity, quantity)
	}
	factor, ok := t.catalog.Lookup(cat, activityType)
	if !ok {
		return footprint.ActivityEvent{}, fmt.Errorf("%w: %s/%s", ErrUnknownActivity, cat, activityType)
	}
	return t.record(ctx, cat, activityType, factor.Value*quantity)
}

// LogCustom records an activity with a caller-supplied carbon value, bypassing
// the catalog. Unmapped types are accepted.
func (t *Tracker) LogCustom(ctx context.Context, category, activityType string, carbonKg float64) (footprint.ActivityEvent, error) {
	return t.record(ctx, footprint.Category(category), activityType, carbonKg)
}

func (t *Tracker) record(ctx context.Context, cat footprint.Category, activityType string, carbonKg float64) (footprint.ActivityEvent, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "tracker").
		Str("operation", "Log").
		Logger()

	event, err := t.ledger.Record(cat, activityType, carbonKg, t.now())
	if err != nil {
		logger.Debug().Err(err).Str("category", string(cat)).Str("type", activityType).Msg("activity rejected")
		return footprint.ActivityEvent{}, err
	}

	logger.Info().
		Str("id", event.ID).
		Str("category", string(event.Category)).
		Str("type", event.Type).
		Float64("carbon_kg", event.CarbonKg).
		Msg("activity recorded")

	if saveErr := t.store.Save(t.ledger.State()); saveErr != nil {
		logger.Error().Err(saveErr).Msg("failed to save state")
		return event, saveErr
	}
	return event, nil
}

// Reset discards all state and saves the empty document.
func (t *Tracker) Reset(ctx context.Context) error {
	t.ledger = footprint.NewLedger(footprint.NewAppState(), t.opts.ActivityCap)
	logging.FromContext(ctx).Info().Str("component", "tracker").Msg("state reset")
	return t.store.Save(t.ledger.State())
}
