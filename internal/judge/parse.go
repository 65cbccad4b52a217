package judge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/valpere/interpeval/internal"
	"github.com/valpere/interpeval/internal/postprocess"
)

// ErrMalformedOutput reports judge output that parsed as JSON but does not
// match the expected evaluation shape.
var ErrMalformedOutput = errors.New("malformed judge output")

// ParseEvaluation parses raw judge output into an evaluation. Markdown code
// fences and reasoning blocks around the JSON are tolerated.
func ParseEvaluation(raw string) (*internal.JudgeEvaluation, error) {
	cleaned := postprocess.ExtractJSON(raw)

	var parsed struct {
		Results []internal.JudgeCriterionResult `json:"results"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("parse judge response as JSON: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("%w: no criterion results", ErrMalformedOutput)
	}
	for i := range parsed.Results {
		if parsed.Results[i].ID == 0 {
			parsed.Results[i].ID = i + 1
		}
		if parsed.Results[i].Criteria == "" {
			return nil, fmt.Errorf("%w: result %d has no criteria text", ErrMalformedOutput, i+1)
		}
	}

	return &internal.JudgeEvaluation{Results: parsed.Results, LanguageCheckPassed: true}, nil
}

// ParseChecklist extracts the numbered criteria from a free-text checklist:
// every line beginning with a digit is one criterion, in order. The leading
// numbering ("1.", "2)") is stripped from the criterion text.
func ParseChecklist(checklist string) []string {
	var criteria []string
	for _, line := range strings.Split(checklist, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !unicode.IsDigit(rune(line[0])) {
			continue
		}
		criteria = append(criteria, stripNumbering(line))
	}
	return criteria
}

func stripNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i < len(line) && (line[i] == '.' || line[i] == ')') {
		i++
	}
	return strings.TrimSpace(line[i:])
}
