package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/tracker"
)

const (
	chartBarWidth = 24
	timeLayout    = "15:04"
)

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.width - borderPadding
	header := HeaderStyle.Render("ECOTRACK") + "  " + SubtleStyle.Render(m.summary.Date)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderSummary(m.summary),
		" ",
		RenderWeekChart(m.summary.Week, chartBarWidth),
	)

	sections := []string{
		header,
		top,
		RenderRecent(m.recent),
		BoxStyle.Width(width).Render(m.table.View()),
	}

	switch {
	case m.err != nil:
		sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
	case m.status != "":
		sections = append(sections, InfoStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// statusStyle colors a regional status.
func statusStyle(s greenops.RegionStatus) lipgloss.Style {
	switch s {
	case greenops.StatusExcellent:
		return ValueStyle.Foreground(ColorBright)
	case greenops.StatusGood:
		return ValueStyle.Foreground(ColorGreen)
	case greenops.StatusAverage:
		return ValueStyle.Foreground(ColorAmber)
	case greenops.StatusHigh:
		return ValueStyle.Foreground(ColorRed)
	default:
		return InfoStyle
	}
}

// RenderSummary renders today's totals, the regional comparison and trees.
func RenderSummary(s tracker.Summary) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("TODAY"))
	content.WriteString("\n")
	for _, c := range footprint.Categories() {
		v := s.Today.Value(c)
		value := ValueStyle.Render(greenops.FormatKg(v))
		if v < 0 {
			value = EcoStyle.Render(greenops.FormatKg(v))
		}
		content.WriteString(LabelStyle.Render(fmt.Sprintf("%-10s", c.String())))
		content.WriteString(value)
		content.WriteString("\n")
	}
	content.WriteString(LabelStyle.Render(fmt.Sprintf("%-10s", "total")))
	content.WriteString(ValueStyle.Render(greenops.FormatKg(s.Today.Total)))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render("vs region  "))
	status := string(s.Region.Status)
	if s.Region.Status != greenops.StatusNoData {
		status += fmt.Sprintf(" (%s%%)", greenops.FormatFloat(s.Region.Percentage, 0))
	}
	content.WriteString(statusStyle(s.Region.Status).Render(status))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("trees      "))
	content.WriteString(ValueStyle.Render(fmt.Sprintf("%d", s.Trees.Today)))
	content.WriteString(LabelStyle.Render(fmt.Sprintf("  eco %d/%d", s.Stats.EcoChoices, s.Stats.Logged)))

	return BoxStyle.Render(content.String())
}

// RenderWeekChart renders a horizontal bar per day of the series.
func RenderWeekChart(points []footprint.DaySeriesPoint, barWidth int) string {
	var maxTotal float64
	for _, p := range points {
		if p.Total > maxTotal {
			maxTotal = p.Total
		}
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render(fmt.Sprintf("LAST %d DAYS", len(points))))
	for _, p := range points {
		content.WriteString("\n")
		content.WriteString(LabelStyle.Render(p.Label + " "))
		content.WriteString(fmt.Sprintf("%9s ", greenops.FormatKg(p.Total)))
		switch {
		case p.Total < 0:
			content.WriteString(EcoStyle.Render("-"))
		case maxTotal > 0 && p.Total > 0:
			n := int(p.Total / maxTotal * float64(barWidth))
			if n < 1 {
				n = 1
			}
			content.WriteString(BarStyle.Render(strings.Repeat("█", n)))
		}
	}
	return BoxStyle.Render(content.String())
}

// RenderRecent renders the newest activities on one line each.
func RenderRecent(events []footprint.ActivityEvent) string {
	if len(events) == 0 {
		return InfoStyle.Render("No activities yet. Pick one below and press enter.")
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		line := fmt.Sprintf("%s  %-9s %-12s %s",
			e.OccurredAt.Local().Format(timeLayout), e.Category, e.Type, greenops.FormatKg(e.CarbonKg))
		if e.IsEcoChoice() {
			line = EcoStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
