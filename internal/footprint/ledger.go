package footprint

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Ledger records activities into an AppState it owns.
//
// A Ledger performs no I/O. Callers persist State() after Record returns.
// It is not safe for concurrent use; the tracker is its single writer.
type Ledger struct {
	state *AppState
	cap   int

	// newID produces activity identifiers; replaced in tests for determinism.
	newID func(time.Time) string
}

// NewLedger wraps state with a ledger retaining at most activityCap activities.
// A nil state starts empty and a non-positive cap falls back to DefaultActivityCap.
func NewLedger(state *AppState, activityCap int) *Ledger {
	if state == nil {
		state = NewAppState()
	}
	if state.Daily == nil {
		state.Daily = make(map[string]DayBucket)
	}
	if activityCap <= 0 {
		activityCap = DefaultActivityCap
	}
	l := &Ledger{
		state: state,
		cap:   activityCap,
		newID: newULID,
	}
	l.trim()
	return l
}

// newULID returns a ULID timestamped at t.
func newULID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// State returns the owned state.
func (l *Ledger) State() *AppState {
	return l.state
}

// Cap returns the activity retention cap.
func (l *Ledger) Cap() int {
	return l.cap
}

// Record logs a single activity at now.
//
// The date bucket for now is created on first use, the category field and the
// total are updated, the event is prepended to the activity list and the list is
// trimmed to the cap by dropping the oldest entries. Stats.Logged always increments
// and Stats.EcoChoices increments when carbonKg <= 0.
//
// Validation happens before any mutation, so a rejected request leaves the state
// untouched. It returns ErrInvalidActivity for an empty category or type or a
// non-finite carbon value, and ErrInvalidCategory for an unknown category.
func (l *Ledger) Record(category Category, activityType string, carbonKg float64, now time.Time) (ActivityEvent, error) {
	cat, err := ParseCategory(string(category))
	if err != nil {
		return ActivityEvent{}, err
	}
	activityType = strings.TrimSpace(activityType)
	if activityType == "" {
		return ActivityEvent{}, fmt.Errorf("%w: activity type is required", ErrInvalidActivity)
	}
	if math.IsNaN(carbonKg) || math.IsInf(carbonKg, 0) {
		return ActivityEvent{}, fmt.Errorf("%w: carbon value must be finite", ErrInvalidActivity)
	}

	occurredAt := now.UTC()
	event := ActivityEvent{
		ID:         l.newID(occurredAt),
		Category:   cat,
		Type:       activityType,
		CarbonKg:   carbonKg,
		OccurredAt: occurredAt,
	}

	key := ToDateKey(occurredAt)
	bucket := l.state.Daily[key]
	bucket.add(cat, carbonKg)
	l.state.Daily[key] = bucket

	l.state.Activities = append([]ActivityEvent{event}, l.state.Activities...)
	l.trim()

	l.state.Stats.Logged++
	if event.IsEcoChoice() {
		l.state.Stats.EcoChoices++
	}

	return event, nil
}

// trim drops the oldest activities beyond the cap.
func (l *Ledger) trim() {
	if len(l.state.Activities) > l.cap {
		l.state.Activities = l.state.Activities[:l.cap:l.cap]
	}
}

// Recent returns up to limit of the newest activities, newest first.
// A non-positive limit returns every retained activity.
func (l *Ledger) Recent(limit int) []ActivityEvent {
	acts := l.state.Activities
	if limit > 0 && limit < len(acts) {
		acts = acts[:limit]
	}
	out := make([]ActivityEvent, len(acts))
	copy(out, acts)
	return out
}
