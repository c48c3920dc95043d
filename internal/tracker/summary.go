package tracker

import (
	"fmt"
	"time"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
)

// weekDays is the length of the dashboard series.
const weekDays = 7

// Trees holds tree-offset counts for the current figures.
type Trees struct {
	// Today is the trees needed if every day of the year looked like today.
	Today int `json:"today"`
	// Month is the trees needed if every month looked like this one so far.
	Month int `json:"month"`
	// Average is the trees needed for a year at the all-time daily average.
	Average int `json:"average"`
}

// Summary is everything the presentation layer renders.
type Summary struct {
	Date         string                     `json:"date"`
	Today        footprint.DayBucket        `json:"today"`
	Week         []footprint.DaySeriesPoint `json:"week"`
	WeekTotal    float64                    `json:"week_total"`
	MonthTotal   float64                    `json:"month_total"`
	MonthDays    int                        `json:"month_days"`
	AverageAll   float64                    `json:"average_all"`
	AverageMonth float64                    `json:"average_month"`
	Breakdown    footprint.DayBucket        `json:"month_breakdown"`
	Region       greenops.RegionComparison  `json:"region"`
	Trees        Trees                      `json:"trees"`
	CarKmToday   int64                      `json:"car_km_today"`
	Stats        footprint.Stats            `json:"stats"`
	Feedback     []string                   `json:"feedback"`
}

// Summary computes the dashboard figures at the tracker clock's current time.
func (t *Tracker) Summary() Summary {
	return BuildSummary(t.State(), t.now(), t.opts.RegionalAverageKg)
}

// BuildSummary derives the dashboard figures from state at reference.
// It reads state only.
func BuildSummary(state *footprint.AppState, reference time.Time, regionalAvgKg float64) Summary {
	agg := footprint.NewAggregator(state)
	today := agg.Bucket(footprint.ToDateKey(reference))

	week := agg.LastNDays(weekDays, reference)
	var weekTotal float64
	for _, p := range week {
		weekTotal += p.Total
	}

	avgAll := agg.AverageDaily(footprint.ScopeAll, reference)
	monthTotal := agg.PeriodTotal(footprint.ScopeMonth, reference)

	s := Summary{
		Date:         footprint.ToDateKey(reference),
		Today:        today,
		Week:         week,
		WeekTotal:    weekTotal,
		MonthTotal:   monthTotal,
		MonthDays:    agg.DayCount(footprint.ScopeMonth, reference),
		AverageAll:   avgAll,
		AverageMonth: agg.AverageDaily(footprint.ScopeMonth, reference),
		Breakdown:    agg.CategoryBreakdown(footprint.ScopeMonth, reference),
		CarKmToday:   greenops.ToCarKmEquivalent(today.Total),
	}
	if state != nil {
		s.Stats = state.Stats
	}

	// Periods are fixed constants, so only non-finite input can fail and
	// the ledger rejects that at record time.
	s.Trees.Today, _ = greenops.TreesToOffset(today.Total, greenops.PeriodDay)
	s.Trees.Month, _ = greenops.TreesToOffset(monthTotal, greenops.PeriodMonth)
	s.Trees.Average, _ = greenops.TreesToOffset(avgAll, greenops.PeriodDay)

	if s.Stats.Logged == 0 {
		s.Region = greenops.RegionComparison{RegionalKg: regionalAvgKg, Status: greenops.StatusNoData}
	} else {
		s.Region = greenops.CompareToRegion(avgAll, regionalAvgKg)
	}

	s.Feedback = feedback(s)
	return s
}

// feedback returns short textual tips for the summary.
func feedback(s Summary) []string {
	if s.Stats.Logged == 0 {
		return []string{"Log your first activity to see your footprint."}
	}

	var msgs []string
	switch s.Region.Status {
	case greenops.StatusExcellent:
		msgs = append(msgs, fmt.Sprintf("Excellent: your daily average is %.0f%% below the regional average.",
			-s.Region.Percentage))
	case greenops.StatusGood:
		msgs = append(msgs, "Good: you are below the regional average.")
	case greenops.StatusAverage:
		msgs = append(msgs, "You are close to the regional average.")
	case greenops.StatusHigh:
		msgs = append(msgs, fmt.Sprintf("Your daily average is %.0f%% above the regional average.",
			s.Region.Percentage))
	case greenops.StatusNoData:
	}

	if top, amount := largestCategory(s.Today); amount > 0 {
		msgs = append(msgs, fmt.Sprintf("Most of today's footprint comes from %s (%s).",
			top, greenops.FormatKg(amount)))
	}

	if s.Stats.EcoChoices > 0 {
		msgs = append(msgs, fmt.Sprintf("%d of %d logged activities were eco choices.",
			s.Stats.EcoChoices, s.Stats.Logged))
	}

	if s.Today.Total < 0 {
		msgs = append(msgs, "Today is carbon negative.")
	}
	return msgs
}

// largestCategory returns the category with the biggest positive amount.
func largestCategory(b footprint.DayBucket) (footprint.Category, float64) {
	var top footprint.Category
	var amount float64
	for _, c := range footprint.Categories() {
		if v := b.Value(c); v > amount {
			top, amount = c, v
		}
	}
	return top, amount
}
