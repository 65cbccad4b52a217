// Package judge scores one interpreted conversation turn against a
// free-text criteria checklist, using an external judge backend gated by an
// optional language-identity check.
package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/valpere/interpeval/internal"
	"github.com/valpere/interpeval/internal/eval"
	"github.com/valpere/interpeval/internal/prompts"
	"github.com/valpere/interpeval/internal/provider"
	"github.com/valpere/interpeval/internal/verifier"
)

// wrongLanguageReasoning is the fixed reasoning attached to every criterion
// when the translation fails its language check and the judge is bypassed.
const wrongLanguageReasoning = "Translation is not in the expected language; criteria cannot be met"

// noResponseSentinel stands in when the target party never produced a reply.
const noResponseSentinel = "No response recorded"

// Options tunes a judge evaluation. The zero value judges the most recent
// turn with no language verification.
type Options struct {
	// TurnIndex selects the turn: positive is the 1-based turn number,
	// negative counts from the end, 0 (and -1) mean most recent.
	TurnIndex int
	// Verifier, when non-nil, gates the judge call on a language check of
	// the translated text.
	Verifier verifier.Classifier
	// MinConfidence for language checks; <= 0 selects the default.
	MinConfidence float64
	// ResponseText overrides the target party's recorded response.
	ResponseText string
	// ResponseLanguage overrides the expected response language (defaults
	// to the target party's language).
	ResponseLanguage string
}

// Evaluate judges one conversation turn. When the verifier reports the
// translation in the wrong language, the returned evaluation marks every
// criterion unmet and the judge backend is never called. The evaluation is
// stored on the session as its latest judgment.
func Evaluate(ctx context.Context, judgeBackend provider.Provider, session *eval.Session, checklist string, opts Options) (*internal.JudgeEvaluation, error) {
	turn, err := session.TurnAt(opts.TurnIndex)
	if err != nil {
		return nil, fmt.Errorf("judge evaluation failed: %w", err)
	}

	target, err := session.PartyByName(turn.ToUser)
	if err != nil {
		return nil, fmt.Errorf("judge evaluation failed: %w", err)
	}

	responseText := opts.ResponseText
	if responseText == "" {
		if last, ok := target.LastResponse(); ok {
			responseText = last
		} else {
			responseText = noResponseSentinel
		}
	}
	responseLanguage := opts.ResponseLanguage
	if responseLanguage == "" {
		responseLanguage = target.Language
	}

	var translationCheck, responseCheck *internal.LanguageCheckResult
	languageCheckPassed := true

	if opts.Verifier != nil {
		tc := verifier.Verify(opts.Verifier, turn.TranslatedMessage, target.Language, opts.MinConfidence, "Translation")
		translationCheck = &tc

		if !tc.IsCorrect {
			evaluation := failAllCriteria(checklist, translationCheck)
			session.SetJudgment(evaluation)
			return evaluation, nil
		}

		// No recorded response is not penalized.
		if responseText != noResponseSentinel {
			rc := verifier.Verify(opts.Verifier, responseText, responseLanguage, opts.MinConfidence, "Response")
			responseCheck = &rc
			languageCheckPassed = rc.IsCorrect
		}
	}

	prompt := prompts.Judge(prompts.JudgeRequest{
		ConversationContext: session.ConversationContext,
		OriginalMessage:     turn.OriginalMessage,
		OriginalLanguage:    turn.OriginalLanguage,
		TranslatedMessage:   turn.TranslatedMessage,
		TranslatedLanguage:  turn.TranslatedLanguage,
		TargetResponse:      responseText,
		LanguageCheckNotes:  languageCheckNotes(translationCheck, responseCheck),
		Checklist:           checklist,
	})

	evaluation, err := callAndParse(ctx, judgeBackend, prompt)
	if err != nil {
		return nil, err
	}

	evaluation.TranslationLanguageCheck = translationCheck
	evaluation.ResponseLanguageCheck = responseCheck
	evaluation.LanguageCheckPassed = languageCheckPassed
	session.SetJudgment(evaluation)
	return evaluation, nil
}

// callAndParse asks the judge for structured JSON; when that response does
// not parse, it retries exactly once without structured output. Both
// failures are reported together.
func callAndParse(ctx context.Context, judgeBackend provider.Provider, prompt string) (*internal.JudgeEvaluation, error) {
	raw, err := judgeBackend.Generate(ctx, provider.GenerateRequest{Prompt: prompt, JSONOutput: true})
	if err != nil {
		return nil, fmt.Errorf("judge evaluation failed: %w", err)
	}

	evaluation, parseErr := ParseEvaluation(raw)
	if parseErr == nil {
		return evaluation, nil
	}

	raw, err = judgeBackend.Generate(ctx, provider.GenerateRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("judge evaluation failed: structured response unparseable (%v) and fallback call failed: %w", parseErr, err)
	}

	evaluation, retryErr := ParseEvaluation(raw)
	if retryErr != nil {
		return nil, fmt.Errorf("judge evaluation failed: structured response unparseable (%v); fallback response unparseable (%v)", parseErr, retryErr)
	}
	return evaluation, nil
}

func failAllCriteria(checklist string, translationCheck *internal.LanguageCheckResult) *internal.JudgeEvaluation {
	criteria := ParseChecklist(checklist)
	results := make([]internal.JudgeCriterionResult, len(criteria))
	for i, criterion := range criteria {
		results[i] = internal.JudgeCriterionResult{
			ID:        i + 1,
			Criteria:  criterion,
			Met:       false,
			Reasoning: wrongLanguageReasoning,
		}
	}
	return &internal.JudgeEvaluation{
		Results:                  results,
		TranslationLanguageCheck: translationCheck,
		LanguageCheckPassed:      false,
	}
}

func languageCheckNotes(checks ...*internal.LanguageCheckResult) string {
	var lines []string
	for _, c := range checks {
		if c != nil {
			lines = append(lines, c.Message)
		}
	}
	return strings.Join(lines, "\n")
}
