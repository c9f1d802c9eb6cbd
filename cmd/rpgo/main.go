package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/fers-projector/internal/config"
)

var (
	settings   *config.Settings
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "rpgo",
	Short: "FERS retirement income projector",
	Long:  "Projects a federal employee's retirement income year by year and estimates TSP outcome uncertainty with a Monte Carlo simulation.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.LoadSettings(configFile)
		if err != nil {
			return eris.Wrap(err, "load settings")
		}
		settings = s

		if err := config.InitLogger(settings.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (default ./rpgo.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
