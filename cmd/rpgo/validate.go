package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a scenario file without running it",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, err := loadScenario(validateInput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "scenario %q is valid\n", scenario.Name)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "scenario YAML file")
	_ = validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}
