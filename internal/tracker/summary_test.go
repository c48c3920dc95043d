package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
)

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(footprint.NewAppState(), testNow, greenops.RegionalDailyAverageKg)

	assert.Equal(t, "2025-01-08", s.Date)
	assert.Len(t, s.Week, 7)
	assert.Equal(t, 0.0, s.AverageAll)
	assert.Equal(t, greenops.StatusNoData, s.Region.Status)
	assert.Equal(t, Trees{}, s.Trees)
	assert.Equal(t, []string{"Log your first activity to see your footprint."}, s.Feedback)
}

func TestBuildSummary_NilState(t *testing.T) {
	s := BuildSummary(nil, testNow, greenops.RegionalDailyAverageKg)
	assert.Equal(t, footprint.Stats{}, s.Stats)
	assert.Len(t, s.Week, 7)
}

func TestBuildSummary_Figures(t *testing.T) {
	state := footprint.NewAppState()
	state.Daily["2025-01-08"] = footprint.DayBucket{Transport: 4.6, Food: 0.3, Energy: -0.5, Total: 4.4}
	state.Daily["2025-01-05"] = footprint.DayBucket{Food: 7.2, Total: 7.2}
	state.Daily["2024-12-20"] = footprint.DayBucket{Energy: 20, Total: 20}
	state.Stats = footprint.Stats{Logged: 5, EcoChoices: 1}

	s := BuildSummary(state, testNow, 14.2)

	assert.InDelta(t, 4.4, s.Today.Total, 1e-9)
	assert.InDelta(t, 11.6, s.WeekTotal, 1e-9)
	assert.InDelta(t, 11.6, s.MonthTotal, 1e-9)
	assert.Equal(t, 2, s.MonthDays)
	assert.InDelta(t, 5.8, s.AverageMonth, 1e-9)
	assert.InDelta(t, 31.6/3, s.AverageAll, 1e-9)
	assert.InDelta(t, 4.6, s.Breakdown.Transport, 1e-9)
	assert.Equal(t, int64(21), s.CarKmToday) // 4.4 / 0.21 = 20.95

	// 4.4 * 365 / 21 = 76.5
	assert.Equal(t, 77, s.Trees.Today)
	// 11.6 * 12 / 21 = 6.6
	assert.Equal(t, 7, s.Trees.Month)

	assert.Equal(t, greenops.StatusExcellent, s.Region.Status)
	require.NotEmpty(t, s.Feedback)
	assert.Contains(t, s.Feedback[0], "Excellent")
	assert.Contains(t, s.Feedback, "Most of today's footprint comes from transport (4.60 kg).")
	assert.Contains(t, s.Feedback, "1 of 5 logged activities were eco choices.")
}

func TestBuildSummary_HighAndNegativeDay(t *testing.T) {
	state := footprint.NewAppState()
	state.Daily["2025-01-07"] = footprint.DayBucket{Transport: 90, Total: 90}
	state.Daily["2025-01-08"] = footprint.DayBucket{Energy: -1, Total: -1}
	state.Stats = footprint.Stats{Logged: 2, EcoChoices: 1}

	s := BuildSummary(state, testNow, 14.2)

	assert.Equal(t, greenops.StatusHigh, s.Region.Status)
	assert.Contains(t, s.Feedback[0], "above the regional average")
	assert.Contains(t, s.Feedback, "Today is carbon negative.")
	assert.Equal(t, 0, s.Trees.Today)
}

func TestTracker_SummaryDoesNotMutate(t *testing.T) {
	tr := newTestTracker(t, &memoryStore{})
	_, err := tr.Log(context.Background(), "food", "chicken", 1)
	require.NoError(t, err)

	before := len(tr.State().Daily)
	s := tr.Summary()
	assert.Len(t, tr.State().Daily, before)
	assert.InDelta(t, 1.8, s.Today.Food, 1e-9)
	assert.Equal(t, time.Wednesday, testNow.Weekday())
	assert.Equal(t, "Wed", s.Week[6].Label)
}
