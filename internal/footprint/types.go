// Package footprint holds the activity ledger and the daily aggregation views
// derived from it.
//
// The ledger appends timestamped carbon activities to an AppState and keeps the
// per-day buckets and running counters in step. The aggregator methods read the
// bucket map to produce weekly series and averages without mutating it.
package footprint

import (
	"fmt"
	"time"
)

// Category is the top-level grouping an activity belongs to.
type Category string

const (
	// CategoryTransport covers trips by car, bus, train, bike and similar.
	CategoryTransport Category = "transport"
	// CategoryFood covers meals and food choices.
	CategoryFood Category = "food"
	// CategoryEnergy covers household energy use and offsets such as solar.
	CategoryEnergy Category = "energy"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryTransport, CategoryFood, CategoryEnergy}
}

// ParseCategory converts a raw string into a known Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryTransport, CategoryFood, CategoryEnergy:
		return c, nil
	case "":
		return "", fmt.Errorf("%w: category is required", ErrInvalidActivity)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// String returns the category name.
func (c Category) String() string { return string(c) }

// DefaultActivityCap is the number of activities retained when no cap is configured.
const DefaultActivityCap = 100

// ActivityEvent is one logged action. It is never modified after creation.
type ActivityEvent struct {
	ID         string    `json:"id"`
	Category   Category  `json:"category"`
	Type       string    `json:"type"`
	CarbonKg   float64   `json:"carbon_kg"`
	OccurredAt time.Time `json:"occurred_at"`
}

// IsEcoChoice reports whether the activity did not add carbon.
func (e ActivityEvent) IsEcoChoice() bool {
	return e.CarbonKg <= 0
}

// DayBucket is the aggregate for a single UTC calendar date.
type DayBucket struct {
	Transport float64 `json:"transport"`
	Food      float64 `json:"food"`
	Energy    float64 `json:"energy"`
	Total     float64 `json:"total"`
}

// add applies carbonKg to the category field and recomputes Total from the parts.
func (b *DayBucket) add(category Category, carbonKg float64) {
	switch category {
	case CategoryTransport:
		b.Transport += carbonKg
	case CategoryFood:
		b.Food += carbonKg
	case CategoryEnergy:
		b.Energy += carbonKg
	}
	b.Total = b.Transport + b.Food + b.Energy
}

// Value returns the bucket amount for a single category.
func (b DayBucket) Value(category Category) float64 {
	switch category {
	case CategoryTransport:
		return b.Transport
	case CategoryFood:
		return b.Food
	case CategoryEnergy:
		return b.Energy
	default:
		return 0
	}
}

// Stats are counters that only ever increase.
type Stats struct {
	// Logged is the number of activities ever recorded, including trimmed ones.
	Logged int `json:"logged"`
	// EcoChoices counts activities whose carbon value was zero or negative.
	EcoChoices int `json:"eco_choices"`
}

// AppState is the complete persisted unit.
//
// Daily is never trimmed while Activities is bounded by the ledger cap, so the
// sum of daily totals may exceed the sum of the retained activities.
type AppState struct {
	Daily      map[string]DayBucket `json:"daily"`
	Activities []ActivityEvent      `json:"activities"`
	Stats      Stats                `json:"stats"`
}

// NewAppState returns an empty, ready to use state.
func NewAppState() *AppState {
	return &AppState{
		Daily:      make(map[string]DayBucket),
		Activities: []ActivityEvent{},
	}
}

// EmissionFactor is a catalog entry describing the carbon coefficient of an activity type.
type EmissionFactor struct {
	Value       float64 `json:"value" yaml:"value"`
	Unit        string  `json:"unit" yaml:"unit"`
	Description string  `json:"description" yaml:"description"`
}
