package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/fers-projector/internal/config"
)

var exampleOutput string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example scenario file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(config.NewInputParser().CreateExampleScenario())
		if err != nil {
			return eris.Wrap(err, "marshal example scenario")
		}
		if exampleOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exampleOutput, data, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", exampleOutput)
		}
		zap.L().Info("example scenario written", zap.String("file", exampleOutput))
		return nil
	},
}

func init() {
	exampleCmd.Flags().StringVarP(&exampleOutput, "output", "o", "", "file to write (default stdout)")
	rootCmd.AddCommand(exampleCmd)
}
