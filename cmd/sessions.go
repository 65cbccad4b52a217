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
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/interpeval/internal/store"
)

var sessionsDB string

var sessionsCmd = &cobra.Command{
	Use:   "sessions [id]",
	Short: "List or show archived evaluation sessions",
	Long: `Without arguments, list the sessions archived in the database.
With a session ID, print that session's full payload as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(sessionsDB)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()

		if len(args) == 1 {
			results, err := db.GetSession(ctx, args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal session: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		sessions, err := db.ListSessions(ctx)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintf(os.Stderr, "No archived sessions\n")
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%s  %s  turns=%d  avg=%.3fs  %s\n",
				s.ID, s.Name, s.TotalTurns, s.AverageTranslationTime, s.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().StringVar(&sessionsDB, "db", "./data/interpeval.db", "Session database path")
}
