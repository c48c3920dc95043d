package export

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"

	"github.com/rshade/ecotrack/internal/footprint"
)

// csvPrecision is the number of decimals in CSV values.
const csvPrecision = 2

var csvHeader = []string{"Date", "Transport", "Food", "Energy", "Total"}

// CSV writes one row per recorded day, oldest first.
func CSV(w io.Writer, state *footprint.AppState) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	agg := footprint.NewAggregator(state)
	for _, key := range agg.SortedDateKeys() {
		b := agg.Bucket(key)
		row := []string{
			key,
			formatCSVValue(b.Transport),
			formatCSVValue(b.Food),
			formatCSVValue(b.Energy),
			formatCSVValue(b.Total),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatCSVValue rounds half away from zero on the shortest decimal form of v,
// so 0.125 becomes 0.13 and tiny negatives print as 0.00.
func formatCSVValue(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(csvPrecision)
}
