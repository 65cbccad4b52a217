// Package internal holds the record types shared across the evaluation
// pipeline: conversation turns, derived metrics, session export payloads
// and judge verdicts.
package internal

import (
	"fmt"
	"time"
)

// TurnRecord captures one interpreted exchange between the two users.
// Turn indices are 1-based and strictly increasing for the lifetime of a
// session, including across multiple conversation runs.
type TurnRecord struct {
	Turn               int       `json:"turn"`
	Timestamp          time.Time `json:"timestamp"`
	FromUser           string    `json:"from_user"`
	ToUser             string    `json:"to_user"`
	OriginalMessage    string    `json:"original_message"`
	OriginalLanguage   string    `json:"original_language"`
	TranslatedMessage  string    `json:"translated_message"`
	TranslatedLanguage string    `json:"translated_language"`
	TranslationTime    float64   `json:"translation_time"`
}

// Metrics is a derived view over a conversation log. It carries no state of
// its own; recomputing it over the same log yields the same values.
type Metrics struct {
	TotalTurns             int               `json:"total_turns"`
	AverageTranslationTime float64           `json:"average_translation_time"`
	Languages              map[string]string `json:"languages"`
}

// UserInfo describes one conversation endpoint in an exported session.
type UserInfo struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	IsLLM    bool   `json:"is_llm"`
}

// InterpreterInfo describes the mediating interpreter in an exported session.
type InterpreterInfo struct {
	Name             string `json:"name"`
	TranslationBrief string `json:"translation_brief"`
}

// SessionUsers groups the two endpoints under stable export keys.
type SessionUsers struct {
	User1 UserInfo `json:"user1"`
	User2 UserInfo `json:"user2"`
}

// SessionResults is the full export payload for one evaluation session.
type SessionResults struct {
	SessionName         string           `json:"session_name"`
	Timestamp           time.Time        `json:"timestamp"`
	ConversationContext string           `json:"conversation_context"`
	Users               SessionUsers     `json:"users"`
	Interpreter         InterpreterInfo  `json:"interpreter"`
	Conversation        []TurnRecord     `json:"conversation"`
	Metrics             Metrics          `json:"metrics"`
	JudgeEvaluation     *JudgeEvaluation `json:"judge_evaluation"`
}

// LanguageCheckResult is the outcome of verifying that a text is written in
// an expected language. Verification is advisory: an absent or failing
// classifier yields a passing result rather than an error.
type LanguageCheckResult struct {
	IsCorrect        bool    `json:"is_correct"`
	DetectedLanguage string  `json:"detected_language"`
	DetectedScript   string  `json:"detected_script"`
	Confidence       float64 `json:"confidence"`
	ExpectedLanguage string  `json:"expected_language"`
	Message          string  `json:"message"`
}

// JudgeCriterionResult is the verdict for a single checklist criterion.
type JudgeCriterionResult struct {
	ID        int    `json:"id"`
	Criteria  string `json:"criteria"`
	Met       bool   `json:"met"`
	Reasoning string `json:"reasoning"`
}

// JudgeEvaluation is a complete judge verdict for one conversation turn.
//
// When TranslationLanguageCheck is present and failed, every criterion is
// reported as unmet and the judge backend was never consulted.
type JudgeEvaluation struct {
	Results                  []JudgeCriterionResult `json:"results"`
	TranslationLanguageCheck *LanguageCheckResult   `json:"translation_language_check,omitempty"`
	ResponseLanguageCheck    *LanguageCheckResult   `json:"response_language_check,omitempty"`
	LanguageCheckPassed      bool                   `json:"language_check_passed"`
}

// CompletionRate reports met criteria as an "X/Y" string.
func (e *JudgeEvaluation) CompletionRate() string {
	met := 0
	for _, r := range e.Results {
		if r.Met {
			met++
		}
	}
	return fmt.Sprintf("%d/%d", met, len(e.Results))
}

// SuccessRate reports the fraction of criteria met, 0.0 when there are none.
func (e *JudgeEvaluation) SuccessRate() float64 {
	if len(e.Results) == 0 {
		return 0
	}
	met := 0
	for _, r := range e.Results {
		if r.Met {
			met++
		}
	}
	return float64(met) / float64(len(e.Results))
}
