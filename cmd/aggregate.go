/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/valpere/interpeval/internal/datautil"
)

var aggregateOutput string

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <results.json>...",
	Short: "Combine metrics from multiple evaluation runs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agg, err := datautil.AggregateResults(args)
		if err != nil {
			return err
		}

		fmt.Printf("Evaluations: %d\n", agg.NumEvaluations)
		fmt.Printf("Total turns: %d\n", agg.TotalTurns)
		fmt.Printf("Average translation time: %.3fs\n", agg.AverageTranslationTime)

		if aggregateOutput != "" {
			data, err := json.MarshalIndent(agg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal aggregate: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(aggregateOutput), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(aggregateOutput, data, 0644); err != nil {
				return fmt.Errorf("failed to write aggregate file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Aggregate written to %s\n", aggregateOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	aggregateCmd.Flags().StringVarP(&aggregateOutput, "output", "o", "", "Write the aggregate report JSON to this file")
}
