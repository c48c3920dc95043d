package export

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/tracker"
)

//go:embed report.html.tmpl
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"kg":  greenops.FormatKg,
	"pct": formatPercent,
}).Parse(reportTemplate))

type reportRow struct {
	Date   string
	Bucket footprint.DayBucket
}

type reportData struct {
	Summary     tracker.Summary
	Rows        []reportRow
	Equivalents string
}

// HTML writes a standalone HTML report of summary and the daily history,
// newest day first.
func HTML(w io.Writer, summary tracker.Summary, state *footprint.AppState) error {
	agg := footprint.NewAggregator(state)
	keys := agg.SortedDateKeys()

	data := reportData{Summary: summary, Rows: make([]reportRow, 0, len(keys))}
	for i := len(keys) - 1; i >= 0; i-- {
		data.Rows = append(data.Rows, reportRow{Date: keys[i], Bucket: agg.Bucket(keys[i])})
	}

	if out, err := greenops.Calculate(greenops.CarbonInput{
		Value: summary.MonthTotal,
		Unit:  "kg",
	}); err == nil && !out.IsEmpty {
		data.Equivalents = out.DisplayText
	}

	return reportTmpl.Execute(w, data)
}

func formatPercent(p float64) string {
	s := greenops.FormatFloat(p, 1) + "%"
	if p > 0 {
		return "+" + s
	}
	return s
}
