package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/rpgo/fers-projector/internal/output"
	"github.com/rpgo/fers-projector/internal/simulation"
)

var (
	simInput      string
	simFormat     string
	simOutputDir  string
	simIterations int
	simSeed       int64
	simWorkers    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte Carlo simulation of TSP outcomes for a scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scenario, err := loadScenario(simInput)
		if err != nil {
			return err
		}

		// Flags override settings only when given explicitly.
		iterations := settings.Simulation.Iterations
		if cmd.Flags().Changed("iterations") {
			iterations = simIterations
		}
		seed := settings.Simulation.Seed
		if cmd.Flags().Changed("seed") {
			seed = simSeed
		}
		workers := settings.Simulation.Workers
		if cmd.Flags().Changed("workers") {
			workers = simWorkers
		}

		coord := simulation.NewCoordinator(simulation.Options{
			Seed:             seed,
			Workers:          workers,
			ProgressInterval: settings.Simulation.ProgressInterval,
			Logger:           zap.S(),
		})

		run, err := coord.Start(ctx, scenario, iterations)
		if err != nil {
			return eris.Wrap(err, "start simulation")
		}

		log := zap.L().With(zap.String("run_id", run.ID))
		for ev := range run.Events() {
			if ev.Terminal() {
				log.Info("simulation stopped", zap.String("outcome", string(ev.Type)))
				continue
			}
			log.Info("simulation progress",
				zap.Int("percent", ev.Percent),
				zap.Int("completed", ev.Completed),
				zap.Int("total", ev.Total),
			)
		}

		result, err := run.Wait(context.Background())
		if err != nil {
			return err
		}
		log.Info("simulation complete", zap.String("success_rate", result.SuccessRate.StringFixed(4)))

		return emitReport(cmd, output.SimulationReport(result), simFormat, simOutputDir, "simulation")
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&simInput, "input", "i", "", "scenario YAML file")
	simulateCmd.Flags().StringVarP(&simFormat, "format", "f", "console", "output format (console, csv, json, yaml)")
	simulateCmd.Flags().StringVar(&simOutputDir, "output-dir", "", "write the report to a timestamped file in this directory instead of stdout")
	simulateCmd.Flags().IntVarP(&simIterations, "iterations", "n", domain.DefaultIterations, "number of Monte Carlo trials")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 picks one)")
	simulateCmd.Flags().IntVar(&simWorkers, "workers", 0, "worker goroutines (0 uses GOMAXPROCS)")
	_ = simulateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(simulateCmd)
}
