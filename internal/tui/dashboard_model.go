package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecotrack/internal/catalog"
	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/tracker"
)

// Source is the data the dashboard reads and records into.
type Source interface {
	Summary() tracker.Summary
	Recent(limit int) []footprint.ActivityEvent
	Log(ctx context.Context, category, activityType string, quantity float64) (footprint.ActivityEvent, error)
}

// Layout.
const (
	recentLimit     = 5
	minTableHeight  = 3
	reservedLines   = 18
	doubleQuantity  = 2
	colWidthCat     = 10
	colWidthType    = 12
	colWidthFactor  = 8
	colWidthUnit    = 10
	colWidthDescrip = 30
)

// DashboardModel is the Bubble Tea model for the ecotrack dashboard. Activities
// are picked from the catalog table and logged through Source on the update
// loop, so Source is only ever touched from one goroutine.
type DashboardModel struct {
	ctx     context.Context
	source  Source
	entries []catalog.Entry

	table table.Model
	help  help.Model
	keys  keyMap

	summary tracker.Summary
	recent  []footprint.ActivityEvent
	status  string
	err     error

	width    int
	height   int
	quitting bool
}

// NewDashboardModel builds the dashboard over source with entries as the
// selectable quick-log activities.
func NewDashboardModel(ctx context.Context, source Source, entries []catalog.Entry) *DashboardModel {
	m := &DashboardModel{
		ctx:     ctx,
		source:  source,
		entries: entries,
		help:    help.New(),
		keys:    defaultKeyMap(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.table = newCatalogTable(entries, m.tableHeight())
	m.refresh()
	return m
}

func newCatalogTable(entries []catalog.Entry, height int) table.Model {
	columns := []table.Column{
		{Title: "Category", Width: colWidthCat},
		{Title: "Type", Width: colWidthType},
		{Title: "kg CO2", Width: colWidthFactor},
		{Title: "Unit", Width: colWidthUnit},
		{Title: "Description", Width: colWidthDescrip},
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			e.Category.String(),
			e.Type,
			strconv.FormatFloat(e.Value, 'f', 2, 64),
			e.Unit,
			e.Description,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

func (m *DashboardModel) tableHeight() int {
	h := m.height - reservedLines
	if h < minTableHeight {
		return minTableHeight
	}
	return h
}

// refresh reloads the summary and recent activities from the source.
func (m *DashboardModel) refresh() {
	m.summary = m.source.Summary()
	m.recent = m.source.Recent(recentLimit)
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
		m.status = "Refreshed."
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keys.Log):
		m.logSelected(1)
		return m, nil

	case key.Matches(msg, m.keys.Double):
		m.logSelected(doubleQuantity)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// logSelected records quantity units of the highlighted catalog entry.
func (m *DashboardModel) logSelected(quantity float64) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return
	}
	entry := m.entries[idx]

	event, err := m.source.Log(m.ctx, entry.Category.String(), entry.Type, quantity)
	switch {
	case err != nil && event.ID == "":
		m.err = err
		m.status = ""
		return
	case err != nil:
		m.err = err
		m.status = fmt.Sprintf("Logged %s/%s but could not save it.", event.Category, event.Type)
	default:
		m.err = nil
		m.status = fmt.Sprintf("Logged %s/%s: %s", event.Category, event.Type, greenops.FormatKg(event.CarbonKg))
	}
	m.refresh()
}

// Selected returns the highlighted catalog entry.
func (m *DashboardModel) Selected() (catalog.Entry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return catalog.Entry{}, false
	}
	return m.entries[idx], true
}

// Summary returns the figures currently displayed.
func (m *DashboardModel) Summary() tracker.Summary {
	return m.summary
}

// Status returns the last status message and error.
func (m *DashboardModel) Status() (string, error) {
	return m.status, m.err
}

// Run starts the dashboard in the alternate screen and blocks until it exits.
func Run(ctx context.Context, source Source, entries []catalog.Entry) error {
	m := NewDashboardModel(ctx, source, entries)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
