package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/tracker"
)

func TestRenderWeekChart(t *testing.T) {
	points := []footprint.DaySeriesPoint{
		{DateKey: "2025-01-06", Label: "Mon", Total: 10},
		{DateKey: "2025-01-07", Label: "Tue", Total: 0},
		{DateKey: "2025-01-08", Label: "Wed", Total: -0.5},
	}

	out := RenderWeekChart(points, 10)
	assert.Contains(t, out, "LAST 3 DAYS")
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "10.00 kg")
	assert.Contains(t, out, "-0.50 kg")
	assert.Equal(t, 10, strings.Count(out, "█"), "only the largest day gets a full bar")
}

func TestRenderWeekChart_AllZero(t *testing.T) {
	points := []footprint.DaySeriesPoint{{Label: "Mon"}, {Label: "Tue"}}
	out := RenderWeekChart(points, 10)
	assert.NotContains(t, out, "█")
}

func TestRenderRecent(t *testing.T) {
	assert.Contains(t, RenderRecent(nil), "No activities yet.")

	events := []footprint.ActivityEvent{
		{Category: footprint.CategoryFood, Type: "vegan", CarbonKg: 0.3, OccurredAt: time.Now()},
		{Category: footprint.CategoryEnergy, Type: "solar", CarbonKg: -0.5, OccurredAt: time.Now()},
	}
	out := RenderRecent(events)
	assert.Contains(t, out, "vegan")
	assert.Contains(t, out, "0.30 kg")
	assert.Contains(t, out, "-0.50 kg")
	assert.Len(t, strings.Split(out, "\n"), 2)
}

func TestRenderSummary(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		out := RenderSummary(tracker.Summary{Region: greenops.RegionComparison{Status: greenops.StatusNoData}})
		assert.Contains(t, out, "no_data")
		assert.NotContains(t, out, "%")
	})

	t.Run("with comparison", func(t *testing.T) {
		s := tracker.Summary{
			Today:  footprint.DayBucket{Food: 7.2, Energy: -0.5, Total: 6.7},
			Region: greenops.RegionComparison{Status: greenops.StatusHigh, Percentage: 25},
			Trees:  tracker.Trees{Today: 117},
			Stats:  footprint.Stats{Logged: 4, EcoChoices: 1},
		}
		out := RenderSummary(s)
		assert.Contains(t, out, "7.20 kg")
		assert.Contains(t, out, "-0.50 kg")
		assert.Contains(t, out, "high (25%)")
		assert.Contains(t, out, "117")
		assert.Contains(t, out, "eco 1/4")
	})
}
