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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/interpeval/internal/datautil"
	"github.com/valpere/interpeval/internal/eval"
	"github.com/valpere/interpeval/internal/judge"
	"github.com/valpere/interpeval/internal/party"
	"github.com/valpere/interpeval/internal/store"
	"github.com/valpere/interpeval/internal/verifier"
)

var (
	messagesFile string
	fromUser     int
	sessionName  string
	convContext  string

	user1Name     string
	user1Lang     string
	user1Provider string
	user1Model    string
	user2Name     string
	user2Lang     string
	user2Provider string
	user2Model    string

	interpName  string
	interpModel string
	briefFile   string

	judgeProvider string
	judgeModel    string
	checklistFile string
	judgeTurn     int
	useVerifier   bool
	minConfidence float64

	outputFile string
	textFile   string
	csvFile    string
	csvFields  []string
	dbPath     string
)

var runCmd = &cobra.Command{
	Use:   "run [messages...]",
	Short: "Run an interpreted conversation and evaluate it",
	Long: `Run a multi-turn conversation between two users through an interpreter.

Messages are taken from --messages (one per line) or from the command line
arguments, and are sent by alternating users starting with --from-user.
Users are manual by default (messages pass through verbatim); give a user a
provider to have an LLM generate its utterances.

Interpreters:
  - openai, openrouter, googleai, vllm, friendli, ollama   LLM agents
  - googletranslate                                        MT baseline

Judging (optional): --judge-provider scores the most recent turn against
--checklist; --verify additionally gates the judge behind a language check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := collectMessages(args)
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			return fmt.Errorf("no messages to send: pass them as arguments or via --messages")
		}
		if user1Lang == "" || user2Lang == "" {
			return fmt.Errorf("both --user1-lang and --user2-lang are required")
		}

		ctx := context.Background()

		brief := ""
		if briefFile != "" {
			brief, err = datautil.LoadBrief(briefFile)
			if err != nil {
				return err
			}
		}

		interp, err := buildInterpreter(interpName, interpModel, brief, user1Lang, user2Lang)
		if err != nil {
			return err
		}

		user1, err := buildUser(user1Name, user1Lang, user1Provider, user1Model)
		if err != nil {
			return err
		}
		user2, err := buildUser(user2Name, user2Lang, user2Provider, user2Model)
		if err != nil {
			return err
		}

		session := eval.NewSession(user1, user2, interp, sessionName)
		session.ConversationContext = convContext

		fmt.Fprintf(os.Stderr, "Running %d-message conversation via %s...\n", len(messages), interp.Name())
		log, err := session.RunConversation(ctx, messages, fromUser)
		if err != nil {
			return err
		}

		metrics, ok := session.EvaluateTranslationQuality()
		if !ok {
			fmt.Fprintf(os.Stderr, "No conversation data recorded\n")
		} else {
			fmt.Printf("Session %s: %d turns, average translation time %.3fs\n",
				session.Name, metrics.TotalTurns, metrics.AverageTranslationTime)
		}

		if judgeProvider != "" {
			if err := runJudge(ctx, session); err != nil {
				return err
			}
		}

		results := session.Results()

		if outputFile != "" {
			if err := datautil.SaveSession(results, outputFile); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Results written to %s\n", outputFile)
		}
		if textFile != "" {
			if err := datautil.WriteText(results, textFile); err != nil {
				return err
			}
		}
		if csvFile != "" {
			fields := csvFields
			if len(fields) == 0 {
				fields = nil
			}
			if err := datautil.ExportCSV(log, csvFile, fields); err != nil {
				return err
			}
		}
		if dbPath != "" {
			db, err := store.New(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			id, err := db.SaveSession(ctx, results)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Session archived as %s\n", id)
		}

		return nil
	},
}

func runJudge(ctx context.Context, session *eval.Session) error {
	if checklistFile == "" {
		return fmt.Errorf("--checklist is required when judging")
	}
	checklist, err := os.ReadFile(checklistFile)
	if err != nil {
		return fmt.Errorf("failed to read checklist: %w", err)
	}

	backend, err := buildProvider(judgeProvider, judgeModel)
	if err != nil {
		return err
	}

	opts := judge.Options{
		TurnIndex:     judgeTurn,
		MinConfidence: minConfidence,
	}
	if useVerifier {
		fmt.Fprintf(os.Stderr, "Building language detector...\n")
		opts.Verifier = verifier.NewLingua()
	}

	evaluation, err := judge.Evaluate(ctx, backend, session, string(checklist), opts)
	if err != nil {
		return err
	}

	fmt.Printf("Judge verdict: %s criteria met (language check passed: %t)\n",
		evaluation.CompletionRate(), evaluation.LanguageCheckPassed)
	for _, r := range evaluation.Results {
		fmt.Printf("  %d. [met=%t] %s\n", r.ID, r.Met, r.Criteria)
	}
	return nil
}

func buildUser(name, lang, providerName, model string) (*party.Party, error) {
	if providerName == "" {
		return party.New(name, lang), nil
	}
	p, err := buildProvider(providerName, model)
	if err != nil {
		return nil, err
	}
	return party.NewLLM(name, lang, p), nil
}

func collectMessages(args []string) ([]string, error) {
	if messagesFile == "" {
		return args, nil
	}
	data, err := os.ReadFile(messagesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}
	var messages []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			messages = append(messages, line)
		}
	}
	return messages, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&messagesFile, "messages", "m", "", "File with one message per line")
	runCmd.Flags().IntVar(&fromUser, "from-user", 1, "Which user sends the first message (1 or 2)")
	runCmd.Flags().StringVar(&sessionName, "session-name", "", "Session name (default timestamped)")
	runCmd.Flags().StringVar(&convContext, "context", "", "Conversation context for the judge")

	runCmd.Flags().StringVar(&user1Name, "user1-name", "User1", "First user name")
	runCmd.Flags().StringVar(&user1Lang, "user1-lang", "", "First user language, ISO 639-3 (required)")
	runCmd.Flags().StringVar(&user1Provider, "user1-provider", "", "LLM provider for the first user (manual if empty)")
	runCmd.Flags().StringVar(&user1Model, "user1-model", "", "Model for the first user's provider")
	runCmd.Flags().StringVar(&user2Name, "user2-name", "User2", "Second user name")
	runCmd.Flags().StringVar(&user2Lang, "user2-lang", "", "Second user language, ISO 639-3 (required)")
	runCmd.Flags().StringVar(&user2Provider, "user2-provider", "", "LLM provider for the second user (manual if empty)")
	runCmd.Flags().StringVar(&user2Model, "user2-model", "", "Model for the second user's provider")

	runCmd.Flags().StringVar(&interpName, "interpreter", "openai", "Interpreter backend")
	runCmd.Flags().StringVar(&interpModel, "interpreter-model", "", "Model for the interpreter backend")
	runCmd.Flags().StringVar(&briefFile, "brief", "", "Translation brief file (default brief if empty)")

	runCmd.Flags().StringVar(&judgeProvider, "judge-provider", "", "Judge backend (judging disabled if empty)")
	runCmd.Flags().StringVar(&judgeModel, "judge-model", "", "Model for the judge backend")
	runCmd.Flags().StringVar(&checklistFile, "checklist", "", "Criteria checklist file for the judge")
	runCmd.Flags().IntVar(&judgeTurn, "judge-turn", -1, "Turn to judge (negative counts from the end)")
	runCmd.Flags().BoolVar(&useVerifier, "verify", false, "Gate the judge behind a language-identity check")
	runCmd.Flags().Float64Var(&minConfidence, "min-confidence", verifier.DefaultMinConfidence, "Language check confidence threshold")

	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write session results JSON to this file")
	runCmd.Flags().StringVar(&textFile, "text", "", "Write a human-readable report to this file")
	runCmd.Flags().StringVar(&csvFile, "csv", "", "Write the conversation log as CSV to this file")
	runCmd.Flags().StringSliceVar(&csvFields, "csv-fields", nil, "CSV field subset (all fields if empty)")
	runCmd.Flags().StringVar(&dbPath, "db", "", "Archive the session in this sqlite database")
}
