package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rpgo/fers-projector/internal/domain"
)

// ConsoleFormatter renders a human readable table for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if err := report.validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if report.Projection != nil {
		writeProjectionTable(&buf, report.Projection)
	}
	if report.Simulation != nil {
		if report.Projection != nil {
			fmt.Fprintln(&buf)
		}
		writeSimulationSummary(&buf, report.Simulation)
	}
	return buf.Bytes(), nil
}

func writeProjectionTable(buf *bytes.Buffer, p *domain.ProjectionResult) {
	fmt.Fprintf(buf, "RETIREMENT PROJECTION: %s\n", p.Scenario)
	fmt.Fprintln(buf, "================================")

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tAge\tPension\tSocial Sec\tSupplement\tTSP Draw\tOther\tTaxes\tNet Income\tExpenses\tSurplus\tTSP Balance\t")
	for _, y := range p.Projections {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			y.Year+1,
			y.Age,
			FormatCurrency(y.Income.Pension),
			FormatCurrency(y.Income.SocialSecurity),
			FormatCurrency(y.Income.AnnuitySupplement),
			FormatCurrency(y.Income.TSPWithdrawal),
			FormatCurrency(y.Income.OtherIncome),
			FormatCurrency(y.Taxes.Total),
			FormatCurrency(y.NetIncome),
			FormatCurrency(y.Expenses),
			FormatCurrency(y.Surplus),
			FormatCurrency(y.TSPBalance),
		)
	}
	tw.Flush()

	s := p.Summary
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Years Projected:       %d\n", s.Years)
	fmt.Fprintf(buf, "Average Net Income:    %s\n", FormatCurrency(s.AverageNetIncome))
	fmt.Fprintf(buf, "Average Monthly Net:   %s\n", monthly(s.AverageNetIncome))
	fmt.Fprintf(buf, "Lifetime Net Income:   %s\n", FormatCurrency(s.TotalLifetimeNetIncome))
	if s.DepletionAge != nil {
		fmt.Fprintf(buf, "TSP Depleted At Age:   %d\n", *s.DepletionAge)
	} else {
		fmt.Fprintln(buf, "TSP Depleted At Age:   never")
	}
	if s.SurvivorAnnuity.IsPositive() {
		fmt.Fprintf(buf, "Survivor Annuity:      %s\n", FormatCurrency(s.SurvivorAnnuity))
	}
}

func writeSimulationSummary(buf *bytes.Buffer, a *domain.AggregateResult) {
	fmt.Fprintf(buf, "MONTE CARLO SIMULATION: %s\n", a.Scenario)
	fmt.Fprintln(buf, "================================")
	if a.RunID != "" {
		fmt.Fprintf(buf, "Run ID:                %s\n", a.RunID)
	}
	fmt.Fprintf(buf, "Iterations:            %d\n", a.Iterations)
	fmt.Fprintf(buf, "Seed:                  %d\n", a.Seed)
	fmt.Fprintf(buf, "Success Rate:          %s\n", FormatPercentage(a.SuccessRate))
	fmt.Fprintf(buf, "Shortfall Probability: %s\n", FormatPercentage(a.Shortfall.Probability))
	if a.Shortfall.FailedTrials > 0 {
		fmt.Fprintf(buf, "Mean Depletion Age:    %s\n", a.Shortfall.MeanDepletionAge.StringFixed(1))
	}
	fmt.Fprintf(buf, "Median Final Balance:  %s\n", FormatCurrency(a.MedianFinalBalance))
	fmt.Fprintln(buf)

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "Age\t")
	for _, band := range a.PercentileBands {
		fmt.Fprintf(tw, "P%d\t", band.Percentile)
	}
	fmt.Fprintln(tw)
	for i, age := range a.Ages {
		fmt.Fprintf(tw, "%d\t", age)
		for _, band := range a.PercentileBands {
			if i < len(band.Values) {
				fmt.Fprintf(tw, "%s\t", FormatCurrency(band.Values[i]))
			} else {
				fmt.Fprint(tw, "-\t")
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
