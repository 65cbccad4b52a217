// Package datautil persists and aggregates evaluation session data as JSON,
// text and CSV.
package datautil

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/valpere/interpeval/internal"
)

// defaultCSVFields is the full TurnRecord field set in export order.
var defaultCSVFields = []string{
	"turn", "timestamp", "from_user", "to_user",
	"original_message", "original_language",
	"translated_message", "translated_language", "translation_time",
}

// SaveSession writes the session payload as indented JSON, creating parent
// directories as needed.
func SaveSession(results internal.SessionResults, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadSession reads a session payload written by SaveSession.
func LoadSession(path string) (internal.SessionResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return internal.SessionResults{}, fmt.Errorf("failed to read session file: %w", err)
	}
	var results internal.SessionResults
	if err := json.Unmarshal(data, &results); err != nil {
		return internal.SessionResults{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	return results, nil
}

// WriteText renders the session in human-readable line form with the same
// information as the JSON payload.
func WriteText(results internal.SessionResults, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create text file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Evaluation Session: %s\n", results.SessionName)
	fmt.Fprintf(f, "Timestamp: %s\n\n", results.Timestamp.Format(time.RFC3339))
	if results.ConversationContext != "" {
		fmt.Fprintf(f, "Context: %s\n\n", results.ConversationContext)
	}
	fmt.Fprintf(f, "Users:\n")
	fmt.Fprintf(f, "  User 1: %s (%s)\n", results.Users.User1.Name, results.Users.User1.Language)
	fmt.Fprintf(f, "  User 2: %s (%s)\n\n", results.Users.User2.Name, results.Users.User2.Language)
	fmt.Fprintf(f, "Interpreter: %s\n\n", results.Interpreter.Name)

	fmt.Fprintf(f, "Conversation:\n%s\n", separator())
	for _, turn := range results.Conversation {
		fmt.Fprintf(f, "\nTurn %d:\n", turn.Turn)
		fmt.Fprintf(f, "  From: %s (%s)\n", turn.FromUser, turn.OriginalLanguage)
		fmt.Fprintf(f, "  Message: %s\n", turn.OriginalMessage)
		fmt.Fprintf(f, "  Translation: %s\n", turn.TranslatedMessage)
		fmt.Fprintf(f, "  Time: %.3fs\n", turn.TranslationTime)
	}
	fmt.Fprintf(f, "\n%s\n", separator())

	fmt.Fprintf(f, "\nMetrics:\n")
	fmt.Fprintf(f, "  total_turns: %d\n", results.Metrics.TotalTurns)
	fmt.Fprintf(f, "  average_translation_time: %.3f\n", results.Metrics.AverageTranslationTime)
	for lang, name := range results.Metrics.Languages {
		fmt.Fprintf(f, "  language %s: %s\n", lang, name)
	}

	if results.JudgeEvaluation != nil {
		fmt.Fprintf(f, "\nJudge Evaluation (%s passed):\n", results.JudgeEvaluation.CompletionRate())
		fmt.Fprintf(f, "  language_check_passed: %t\n", results.JudgeEvaluation.LanguageCheckPassed)
		for _, r := range results.JudgeEvaluation.Results {
			fmt.Fprintf(f, "  %d. [met=%t] %s — %s\n", r.ID, r.Met, r.Criteria, r.Reasoning)
		}
	}

	return nil
}

// ExportCSV writes the conversation log with an explicit field subset.
// nil fields selects all TurnRecord fields; unknown field names produce
// empty columns. An empty log writes nothing.
func ExportCSV(log []internal.TurnRecord, path string, fields []string) error {
	if len(log) == 0 {
		return nil
	}
	if fields == nil {
		fields = defaultCSVFields
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, turn := range log {
		row := make([]string, len(fields))
		for i, field := range fields {
			row[i] = fieldValue(turn, field)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func fieldValue(turn internal.TurnRecord, field string) string {
	switch field {
	case "turn":
		return strconv.Itoa(turn.Turn)
	case "timestamp":
		return turn.Timestamp.Format(time.RFC3339)
	case "from_user":
		return turn.FromUser
	case "to_user":
		return turn.ToUser
	case "original_message":
		return turn.OriginalMessage
	case "original_language":
		return turn.OriginalLanguage
	case "translated_message":
		return turn.TranslatedMessage
	case "translated_language":
		return turn.TranslatedLanguage
	case "translation_time":
		return strconv.FormatFloat(turn.TranslationTime, 'f', -1, 64)
	}
	return ""
}

// LoadBrief reads a translation brief from a file.
func LoadBrief(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read brief: %w", err)
	}
	return string(data), nil
}

// Aggregate combines metrics across multiple evaluation runs. The average
// translation time is turn-weighted.
type Aggregate struct {
	NumEvaluations         int                      `json:"num_evaluations"`
	TotalTurns             int                      `json:"total_turns"`
	AverageTranslationTime float64                  `json:"average_translation_time"`
	Evaluations            []internal.SessionResults `json:"evaluations"`
}

// AggregateResults loads the given session files and combines their metrics.
func AggregateResults(paths []string) (Aggregate, error) {
	agg := Aggregate{}
	totalTime := 0.0

	for _, path := range paths {
		results, err := LoadSession(path)
		if err != nil {
			return Aggregate{}, err
		}
		agg.Evaluations = append(agg.Evaluations, results)
		agg.TotalTurns += results.Metrics.TotalTurns
		totalTime += results.Metrics.AverageTranslationTime * float64(results.Metrics.TotalTurns)
	}

	agg.NumEvaluations = len(agg.Evaluations)
	if agg.TotalTurns > 0 {
		agg.AverageTranslationTime = totalTime / float64(agg.TotalTurns)
	}
	return agg, nil
}

func separator() string {
	return strings.Repeat("=", 80)
}
