package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/rpgo/fers-projector/internal/domain"
)

// CSVFormatter exports one row per projection year, or one row per age of
// percentile bands for Monte Carlo results.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	if err := report.validate(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if report.Projection != nil {
		if err := writeProjectionCSV(buf, report.Projection); err != nil {
			return nil, eris.Wrap(err, "failed to write projection rows")
		}
	}
	if report.Simulation != nil {
		if report.Projection != nil {
			buf.WriteByte('\n')
		}
		if err := writeSimulationCSV(buf, report.Simulation); err != nil {
			return nil, eris.Wrap(err, "failed to write simulation rows")
		}
	}
	return buf.Bytes(), nil
}

var projectionHeader = []string{
	"Year", "Age", "Pension", "SocialSecurity", "AnnuitySupplement", "TSPWithdrawal", "OtherIncome",
	"GrossIncome", "FederalTax", "StateTax", "TotalTax", "EffectiveRate", "NetIncome", "Expenses",
	"Surplus", "TSPBalance", "CumulativeNetIncome",
}

func writeProjectionCSV(buf *bytes.Buffer, p *domain.ProjectionResult) error {
	w := csv.NewWriter(buf)
	if err := w.Write(projectionHeader); err != nil {
		return err
	}
	for _, y := range p.Projections {
		row := []string{
			strconv.Itoa(y.Year + 1),
			strconv.Itoa(y.Age),
			cents(y.Income.Pension),
			cents(y.Income.SocialSecurity),
			cents(y.Income.AnnuitySupplement),
			cents(y.Income.TSPWithdrawal),
			cents(y.Income.OtherIncome),
			cents(y.Income.Total),
			cents(y.Taxes.Federal),
			cents(y.Taxes.State),
			cents(y.Taxes.Total),
			y.Taxes.EffectiveRate.StringFixed(4),
			cents(y.NetIncome),
			cents(y.Expenses),
			cents(y.Surplus),
			cents(y.TSPBalance),
			cents(y.CumulativeNetIncome),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
