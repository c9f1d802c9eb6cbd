package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/fers-projector/internal/calculation"
	"github.com/rpgo/fers-projector/internal/config"
	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/rpgo/fers-projector/internal/output"
)

var (
	projectInput     string
	projectFormat    string
	projectOutputDir string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the deterministic 30-year projection for a scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, err := loadScenario(projectInput)
		if err != nil {
			return err
		}

		projector := calculation.NewProjector()
		projector.SetLogger(zap.S())
		result := projector.ProjectDeterministic(scenario)

		return emitReport(cmd, output.ProjectionReport(result), projectFormat, projectOutputDir, "projection")
	},
}

func init() {
	projectCmd.Flags().StringVarP(&projectInput, "input", "i", "", "scenario YAML file")
	projectCmd.Flags().StringVarP(&projectFormat, "format", "f", "console", "output format (console, csv, json, yaml)")
	projectCmd.Flags().StringVar(&projectOutputDir, "output-dir", "", "write the report to a timestamped file in this directory instead of stdout")
	_ = projectCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(projectCmd)
}

// loadScenario reads and validates a scenario file.
func loadScenario(path string) (*domain.ScenarioInput, error) {
	scenario, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "load scenario %s", path)
	}
	return scenario, nil
}

// emitReport writes the formatted report to stdout, or to a file when dir is set.
func emitReport(cmd *cobra.Command, report *output.Report, format, dir, prefix string) error {
	if dir == "" {
		return output.GenerateReport(cmd.OutOrStdout(), report, format)
	}
	f, err := output.LookupFormatter(format)
	if err != nil {
		return err
	}
	filename, err := output.WriteFormatted(f, report, dir, prefix)
	if err != nil {
		return err
	}
	zap.L().Info("report written", zap.String("file", filename), zap.String("format", f.Name()))
	return nil
}
