package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/catalog"
	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/tracker"
)

type logCall struct {
	category string
	typ      string
	quantity float64
}

// fakeSource records Log calls and serves a fixed summary.
type fakeSource struct {
	calls     []logCall
	logErr    error
	keepEvent bool
	refreshes int
	summary   tracker.Summary
	recent    []footprint.ActivityEvent
}

func (f *fakeSource) Summary() tracker.Summary {
	f.refreshes++
	return f.summary
}

func (f *fakeSource) Recent(int) []footprint.ActivityEvent {
	return f.recent
}

func (f *fakeSource) Log(_ context.Context, category, activityType string, quantity float64) (footprint.ActivityEvent, error) {
	f.calls = append(f.calls, logCall{category: category, typ: activityType, quantity: quantity})
	event := footprint.ActivityEvent{
		ID:         "01JH0000000000000000000000",
		Category:   footprint.Category(category),
		Type:       activityType,
		CarbonKg:   2.3 * quantity,
		OccurredAt: time.Date(2025, 1, 8, 9, 30, 0, 0, time.UTC),
	}
	if f.logErr != nil && !f.keepEvent {
		return footprint.ActivityEvent{}, f.logErr
	}
	return event, f.logErr
}

func newTestDashboard(t *testing.T, src *fakeSource) *DashboardModel {
	t.Helper()
	m := NewDashboardModel(context.Background(), src, catalog.Default().List())
	require.NotNil(t, m)
	return m
}

func press(m *DashboardModel, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewDashboardModel(t *testing.T) {
	src := &fakeSource{summary: tracker.Summary{Date: "2025-01-08"}}
	m := newTestDashboard(t, src)

	assert.Equal(t, 1, src.refreshes)
	assert.Equal(t, "2025-01-08", m.Summary().Date)
	assert.Nil(t, m.Init())

	entry, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, footprint.CategoryTransport, entry.Category)
	assert.Equal(t, "bike", entry.Type)
}

func TestDashboardModel_LogSelected(t *testing.T) {
	src := &fakeSource{}
	m := newTestDashboard(t, src)

	// bike, bus, car
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	entry, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, "car", entry.Type)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, src.calls, 1)
	assert.Equal(t, logCall{category: "transport", typ: "car", quantity: 1}, src.calls[0])

	status, err := m.Status()
	require.NoError(t, err)
	assert.Equal(t, "Logged transport/car: 2.30 kg", status)
	assert.Equal(t, 2, src.refreshes, "summary reloaded after logging")

	press(m, runeKey("2"))
	require.Len(t, src.calls, 2)
	assert.InDelta(t, 2.0, src.calls[1].quantity, 1e-9)
}

func TestDashboardModel_LogErrors(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		src := &fakeSource{logErr: footprint.ErrInvalidActivity}
		m := newTestDashboard(t, src)

		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		status, err := m.Status()
		assert.ErrorIs(t, err, footprint.ErrInvalidActivity)
		assert.Empty(t, status)
		assert.Contains(t, m.View(), "Error:")
	})

	t.Run("recorded but not saved", func(t *testing.T) {
		src := &fakeSource{logErr: errors.New("disk full"), keepEvent: true}
		m := newTestDashboard(t, src)

		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		status, err := m.Status()
		require.Error(t, err)
		assert.Contains(t, status, "could not save")
		assert.Equal(t, 2, src.refreshes)
	})
}

func TestDashboardModel_Keys(t *testing.T) {
	src := &fakeSource{}
	m := newTestDashboard(t, src)

	assert.False(t, m.help.ShowAll)
	press(m, runeKey("?"))
	assert.True(t, m.help.ShowAll)

	press(m, runeKey("r"))
	status, _ := m.Status()
	assert.Equal(t, "Refreshed.", status)
	assert.Equal(t, 2, src.refreshes)

	cmd := press(m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestDashboardModel_WindowSize(t *testing.T) {
	m := newTestDashboard(t, &fakeSource{})

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40-reservedLines, m.tableHeight())
	tall := m.table.Height()

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	assert.Equal(t, minTableHeight, m.tableHeight())
	assert.Less(t, m.table.Height(), tall)
}

func TestDashboardModel_View(t *testing.T) {
	state := footprint.NewAppState()
	state.Daily["2025-01-08"] = footprint.DayBucket{Transport: 2.3, Total: 2.3}
	state.Stats = footprint.Stats{Logged: 1}
	summary := tracker.BuildSummary(state, time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC), greenops.RegionalDailyAverageKg)

	src := &fakeSource{summary: summary}
	m := newTestDashboard(t, src)

	view := m.View()
	assert.Contains(t, view, "ECOTRACK")
	assert.Contains(t, view, "2025-01-08")
	assert.Contains(t, view, "2.30 kg")
	assert.Contains(t, view, "excellent")
	assert.Contains(t, view, "No activities yet.")
	assert.Contains(t, view, "bike")
}
