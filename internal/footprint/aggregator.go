package footprint

import (
	"fmt"
	"sort"
	"time"
)

// Scope selects the date keys an aggregate is computed over.
type Scope int

const (
	// ScopeAll covers every recorded day.
	ScopeAll Scope = iota
	// ScopeMonth covers recorded days in the calendar month of the reference date.
	ScopeMonth
)

// String returns a human-readable representation of the Scope.
func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeMonth:
		return "month"
	default:
		return fmt.Sprintf("Scope(%d)", s)
	}
}

// DaySeriesPoint is one entry of a consecutive day series.
type DaySeriesPoint struct {
	DateKey string  `json:"date"`
	Label   string  `json:"label"`
	Total   float64 `json:"total"`
}

// Aggregator derives time-windowed views from the daily buckets.
// It never writes to the map it reads.
type Aggregator struct {
	daily map[string]DayBucket
}

// NewAggregator returns an Aggregator over the daily buckets of state.
func NewAggregator(state *AppState) Aggregator {
	if state == nil {
		return Aggregator{}
	}
	return Aggregator{daily: state.Daily}
}

// Bucket returns the bucket for dateKey, or a zero bucket when none exists.
func (a Aggregator) Bucket(dateKey string) DayBucket {
	return a.daily[dateKey]
}

// LastNDays returns exactly n points for the n consecutive UTC days ending at
// reference inclusive, oldest first. Days without activity have a zero total.
func (a Aggregator) LastNDays(n int, reference time.Time) []DaySeriesPoint {
	if n <= 0 {
		return []DaySeriesPoint{}
	}
	end := startOfDay(reference)
	points := make([]DaySeriesPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		key := ToDateKey(day)
		points = append(points, DaySeriesPoint{
			DateKey: key,
			Label:   weekdayLabel(day),
			Total:   a.daily[key].Total,
		})
	}
	return points
}

// AverageDaily returns the mean daily total over the distinct recorded days in
// scope. An empty scope yields 0.
func (a Aggregator) AverageDaily(scope Scope, reference time.Time) float64 {
	var sum float64
	var days int
	for key, bucket := range a.daily {
		if !a.inScope(key, scope, reference) {
			continue
		}
		sum += bucket.Total
		days++
	}
	if days == 0 {
		return 0
	}
	return sum / float64(days)
}

// PeriodTotal returns the sum of daily totals in scope.
func (a Aggregator) PeriodTotal(scope Scope, reference time.Time) float64 {
	var sum float64
	for key, bucket := range a.daily {
		if a.inScope(key, scope, reference) {
			sum += bucket.Total
		}
	}
	return sum
}

// CategoryBreakdown sums each category across the days in scope.
func (a Aggregator) CategoryBreakdown(scope Scope, reference time.Time) DayBucket {
	var out DayBucket
	for key, bucket := range a.daily {
		if !a.inScope(key, scope, reference) {
			continue
		}
		out.Transport += bucket.Transport
		out.Food += bucket.Food
		out.Energy += bucket.Energy
	}
	out.Total = out.Transport + out.Food + out.Energy
	return out
}

// DayCount returns the number of recorded days in scope.
func (a Aggregator) DayCount(scope Scope, reference time.Time) int {
	n := 0
	for key := range a.daily {
		if a.inScope(key, scope, reference) {
			n++
		}
	}
	return n
}

// SortedDateKeys returns every recorded date key in ascending order.
func (a Aggregator) SortedDateKeys() []string {
	keys := make([]string, 0, len(a.daily))
	for key := range a.daily {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (a Aggregator) inScope(key string, scope Scope, reference time.Time) bool {
	switch scope {
	case ScopeAll:
		return true
	case ScopeMonth:
		// Keys share the YYYY-MM prefix with the reference month.
		prefix := reference.UTC().Format("2006-01")
		return len(key) >= len(prefix) && key[:len(prefix)] == prefix
	default:
		return false
	}
}
