package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/rpgo/fers-projector/internal/domain"
)

// writeSimulationCSV writes the summary metrics followed by the per-age
// percentile bands of TSP balance.
func writeSimulationCSV(buf *bytes.Buffer, a *domain.AggregateResult) error {
	w := csv.NewWriter(buf)

	summary := [][]string{
		{"Metric", "Value"},
		{"Iterations", strconv.Itoa(a.Iterations)},
		{"Seed", strconv.FormatInt(a.Seed, 10)},
		{"SuccessRate", a.SuccessRate.StringFixed(4)},
		{"ShortfallProbability", a.Shortfall.Probability.StringFixed(4)},
		{"FailedTrials", strconv.Itoa(a.Shortfall.FailedTrials)},
		{"MeanDepletionAge", a.Shortfall.MeanDepletionAge.StringFixed(2)},
		{"MedianFinalBalance", cents(a.MedianFinalBalance)},
	}
	if err := w.WriteAll(summary); err != nil {
		return eris.Wrap(err, "failed to write summary rows")
	}
	buf.WriteByte('\n')

	header := make([]string, 0, len(a.PercentileBands)+1)
	header = append(header, "Age")
	for _, band := range a.PercentileBands {
		header = append(header, "P"+strconv.Itoa(band.Percentile))
	}
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "failed to write header")
	}
	for i, age := range a.Ages {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(age))
		for _, band := range a.PercentileBands {
			if i < len(band.Values) {
				row = append(row, cents(band.Values[i]))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "failed to write data row")
		}
	}
	w.Flush()
	return w.Error()
}
