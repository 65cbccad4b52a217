package datautil

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/valpere/interpeval/internal"
)

func sampleResults(name string, turns int, avgTime float64) internal.SessionResults {
	log := make([]internal.TurnRecord, turns)
	for i := range log {
		log[i] = internal.TurnRecord{
			Turn:               i + 1,
			Timestamp:          time.Date(2025, 6, 1, 12, 0, i, 0, time.UTC),
			FromUser:           "Alice",
			ToUser:             "Bob",
			OriginalMessage:    "Hello",
			OriginalLanguage:   "eng",
			TranslatedMessage:  "Hola",
			TranslatedLanguage: "spa",
			TranslationTime:    avgTime,
		}
	}
	return internal.SessionResults{
		SessionName: name,
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Users: internal.SessionUsers{
			User1: internal.UserInfo{Name: "Alice", Language: "eng"},
			User2: internal.UserInfo{Name: "Bob", Language: "spa"},
		},
		Interpreter:  internal.InterpreterInfo{Name: "Interpreter"},
		Conversation: log,
		Metrics: internal.Metrics{
			TotalTurns:             turns,
			AverageTranslationTime: avgTime,
			Languages:              map[string]string{"eng": "Alice", "spa": "Bob"},
		},
	}
}

func TestSaveLoadSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	original := sampleResults("round-trip", 2, 0.5)

	if err := SaveSession(original, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.SessionName != "round-trip" {
		t.Errorf("session name lost: %q", loaded.SessionName)
	}
	if loaded.Metrics.TotalTurns != 2 {
		t.Errorf("metrics lost: %+v", loaded.Metrics)
	}
	if len(loaded.Conversation) != 2 {
		t.Errorf("conversation lost: %d turns", len(loaded.Conversation))
	}
	if loaded.Conversation[0].TranslatedMessage != "Hola" {
		t.Errorf("turn content lost: %+v", loaded.Conversation[0])
	}
	if loaded.JudgeEvaluation != nil {
		t.Error("absent judgment should stay nil")
	}
}

func TestLoadSession_Missing(t *testing.T) {
	if _, err := LoadSession(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.txt")
	results := sampleResults("text-export", 1, 0.25)
	results.JudgeEvaluation = &internal.JudgeEvaluation{
		Results: []internal.JudgeCriterionResult{
			{ID: 1, Criteria: "meaning preserved", Met: true, Reasoning: "accurate"},
		},
		LanguageCheckPassed: true,
	}

	if err := WriteText(results, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"Evaluation Session: text-export",
		"Alice (eng)",
		"Bob (spa)",
		"Turn 1:",
		"Translation: Hola",
		"total_turns: 1",
		"Judge Evaluation (1/1 passed):",
		"meaning preserved",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text export missing %q", want)
		}
	}
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	log := sampleResults("csv", 2, 0.5).Conversation

	path := filepath.Join(dir, "all.csv")
	if err := ExportCSV(log, path, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 9 {
		t.Errorf("nil fields should select all 9 columns, got %d", len(rows[0]))
	}
	if rows[0][0] != "turn" || rows[1][0] != "1" || rows[2][0] != "2" {
		t.Errorf("turn column mismatch: %v %v %v", rows[0][0], rows[1][0], rows[2][0])
	}
}

func TestExportCSV_FieldSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subset.csv")
	log := sampleResults("csv", 1, 0.5).Conversation

	if err := ExportCSV(log, path, []string{"turn", "original_message", "bogus_field"}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}

	if len(rows[0]) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(rows[0]))
	}
	if rows[1][1] != "Hello" {
		t.Errorf("original_message column mismatch: %q", rows[1][1])
	}
	if rows[1][2] != "" {
		t.Errorf("unknown field must yield an empty column, got %q", rows[1][2])
	}
}

func TestExportCSV_EmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ExportCSV(nil, path, nil); err != nil {
		t.Fatalf("empty log should be a no-op, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty log must not create a file")
	}
}

func TestAggregateResults(t *testing.T) {
	dir := t.TempDir()

	// 2 turns at 0.1s and 4 turns at 0.4s: turn-weighted mean is 0.3s.
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	if err := SaveSession(sampleResults("a", 2, 0.1), a); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := SaveSession(sampleResults("b", 4, 0.4), b); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	agg, err := AggregateResults([]string{a, b})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if agg.NumEvaluations != 2 {
		t.Errorf("expected 2 evaluations, got %d", agg.NumEvaluations)
	}
	if agg.TotalTurns != 6 {
		t.Errorf("expected 6 total turns, got %d", agg.TotalTurns)
	}
	if math.Abs(agg.AverageTranslationTime-0.3) > 1e-9 {
		t.Errorf("expected turn-weighted average 0.3, got %v", agg.AverageTranslationTime)
	}
}

func TestAggregateResults_MissingFile(t *testing.T) {
	if _, err := AggregateResults([]string{filepath.Join(t.TempDir(), "nope.json")}); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestLoadBrief(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.txt")
	if err := os.WriteFile(path, []byte("Translate faithfully."), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	brief, err := LoadBrief(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if brief != "Translate faithfully." {
		t.Errorf("brief mismatch: %q", brief)
	}

	if _, err := LoadBrief(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing brief")
	}
}
