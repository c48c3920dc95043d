package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/greenops"
)

// Layout constants for styled output.
const (
	defaultBoxWidth  = 56
	minBoxWidth      = 40
	maxBoxWidth      = 80
	boxPaddingWidth  = 4
	defaultBarWidth  = 30
	plainBarRune     = "#"
	styledBarRune    = "█"
	negativeBarRune  = "-"
	labelColumnWidth = 18
)

func titleColor() lipgloss.Color  { return lipgloss.Color("42") }
func borderColor() lipgloss.Color { return lipgloss.Color("29") }
func mutedColor() lipgloss.Color  { return lipgloss.Color("246") }
func barColor() lipgloss.Color    { return lipgloss.Color("71") }
func ecoColor() lipgloss.Color    { return lipgloss.Color("48") }

// statusColor maps a regional comparison status to a color.
func statusColor(s greenops.RegionStatus) lipgloss.Color {
	switch s {
	case greenops.StatusExcellent:
		return lipgloss.Color("46")
	case greenops.StatusGood:
		return lipgloss.Color("42")
	case greenops.StatusAverage:
		return lipgloss.Color("220")
	case greenops.StatusHigh:
		return lipgloss.Color("196")
	default:
		return mutedColor()
	}
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
// Buffers used in tests always get plain output.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// getTerminalWidth returns the terminal width for w, or a fallback width.
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultBoxWidth + boxPaddingWidth
}

func calculateBoxWidth(termWidth int) int {
	w := termWidth - boxPaddingWidth
	if w < minBoxWidth {
		return minBoxWidth
	}
	if w > maxBoxWidth {
		return maxBoxWidth
	}
	return w
}

// reportLine is one label/value row of a report box.
type reportLine struct {
	Label string
	Value string
	// Color highlights the value in styled output when set.
	Color lipgloss.Color
}

// report is a titled block of rows followed by free-form notes.
type report struct {
	Title string
	Lines []reportLine
	Notes []string
}

// renderReport writes r as a bordered box on a TTY and as plain text otherwise.
func renderReport(w io.Writer, r report) error {
	if isWriterTerminal(w) {
		return renderStyledReport(w, r)
	}
	return renderPlainReport(w, r)
}

func renderStyledReport(w io.Writer, r report) error {
	boxWidth := calculateBoxWidth(getTerminalWidth(w))

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor())
	labelStyle := lipgloss.NewStyle().Width(labelColumnWidth).Foreground(mutedColor())
	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(mutedColor())
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor()).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(r.Title)))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", boxWidth-boxPaddingWidth))
	content.WriteString("\n")

	for _, line := range r.Lines {
		value := line.Value
		if line.Color != "" {
			value = lipgloss.NewStyle().Bold(true).Foreground(line.Color).Render(value)
		}
		content.WriteString(labelStyle.Render(line.Label))
		content.WriteString(value)
		content.WriteString("\n")
	}

	if len(r.Notes) > 0 {
		content.WriteString("\n")
		for _, note := range r.Notes {
			content.WriteString(noteStyle.Render("• " + note))
			content.WriteString("\n")
		}
	}

	_, err := fmt.Fprintln(w, borderStyle.Render(strings.TrimRight(content.String(), "\n")))
	return err
}

func renderPlainReport(w io.Writer, r report) error {
	title := strings.ToUpper(r.Title)
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
		return err
	}
	for _, line := range r.Lines {
		if _, err := fmt.Fprintf(w, "%-*s%s\n", labelColumnWidth, line.Label+":", line.Value); err != nil {
			return err
		}
	}
	if len(r.Notes) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		for _, note := range r.Notes {
			if _, err := fmt.Fprintf(w, "- %s\n", note); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderBar draws a proportional bar for value against maxValue.
func renderBar(value, maxValue float64, width int, styled bool) string {
	if maxValue <= 0 || value == 0 {
		return ""
	}
	if value < 0 {
		return negativeBarRune
	}
	n := int(value / maxValue * float64(width))
	if n < 1 {
		n = 1
	}
	if !styled {
		return strings.Repeat(plainBarRune, n)
	}
	return lipgloss.NewStyle().Foreground(barColor()).Render(strings.Repeat(styledBarRune, n))
}

// addOutputFlag registers the --output table|json flag.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", "",
		"output format: table or json (default from output.default_format)")
}

// resolveOutputFormat returns the effective output format, preferring the flag.
func resolveOutputFormat(a *app, flagValue string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" && a.cfg != nil {
		format = a.cfg.Output.DefaultFormat
	}
	switch format {
	case "", config.FormatTable:
		return config.FormatTable, nil
	case config.FormatJSON:
		return config.FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be %q or %q",
			flagValue, config.FormatTable, config.FormatJSON)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatKg formats kg with the configured precision.
func (a *app) formatKg(kg float64) string {
	precision := 2
	if a.cfg != nil {
		precision = a.cfg.Output.Precision
	}
	return greenops.FormatFloat(kg, precision) + " kg"
}

// formatPercent renders a signed percentage with one decimal.
func formatPercent(p float64) string {
	s := greenops.FormatFloat(p, 1) + "%"
	if p > 0 {
		return "+" + s
	}
	return s
}
