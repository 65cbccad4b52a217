// Package verifier decides whether a text is written in an expected
// language, using an external classifier.
//
// Verification is advisory. A missing classifier or a classifier error
// resolves as passing (fail open); only an actual mismatch, low confidence
// or empty input resolves as failing. Verify never panics and never returns
// an error.
package verifier

import (
	"fmt"
	"strings"

	"github.com/valpere/interpeval/internal"
)

// DefaultMinConfidence is the confidence threshold applied when the caller
// does not override it.
const DefaultMinConfidence = 0.9

// arabicMinConfidence is the relaxed threshold for the Arabic
// macro-language: classifiers commonly report a specific dialect (ars, arz,
// apc, ...) under the Arab script, so any Arab-script detection above this
// threshold is accepted.
const arabicMinConfidence = 0.7

const labelPrefix = "__label__"

// Classifier identifies the language of a text. The label follows the
// pattern "__label__<iso639-3>_<Script>", e.g. "__label__eng_Latn".
type Classifier interface {
	Predict(text string) (label string, confidence float64, err error)
}

// Verify checks that text is written in the expected ISO 639-3 language.
// contextLabel names the text in messages (e.g. "Translation"); empty
// defaults to "Text". minConfidence <= 0 selects DefaultMinConfidence.
func Verify(model Classifier, text, expectedISO string, minConfidence float64, contextLabel string) internal.LanguageCheckResult {
	if contextLabel == "" {
		contextLabel = "Text"
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	if model == nil {
		return internal.LanguageCheckResult{
			IsCorrect:        true,
			DetectedLanguage: "unknown",
			DetectedScript:   "unknown",
			Confidence:       0,
			ExpectedLanguage: expectedISO,
			Message:          fmt.Sprintf("%s: Model not loaded, skipping verification", contextLabel),
		}
	}

	cleanText := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if cleanText == "" {
		return internal.LanguageCheckResult{
			IsCorrect:        false,
			DetectedLanguage: "empty",
			DetectedScript:   "empty",
			Confidence:       0,
			ExpectedLanguage: expectedISO,
			Message:          fmt.Sprintf("%s: Empty text", contextLabel),
		}
	}

	label, confidence, err := model.Predict(cleanText)
	if err != nil {
		// Fail open: classification problems must not fail the pipeline.
		return internal.LanguageCheckResult{
			IsCorrect:        true,
			DetectedLanguage: "error",
			DetectedScript:   "error",
			Confidence:       0,
			ExpectedLanguage: expectedISO,
			Message:          fmt.Sprintf("%s: Verification error: %v", contextLabel, err),
		}
	}
	if label == "" {
		return internal.LanguageCheckResult{
			IsCorrect:        false,
			DetectedLanguage: "unknown",
			DetectedScript:   "unknown",
			Confidence:       0,
			ExpectedLanguage: expectedISO,
			Message:          fmt.Sprintf("%s: No prediction returned", contextLabel),
		}
	}

	detectedISO, detectedScript := parseLabel(label)

	isCorrect := detectedISO == expectedISO && confidence >= minConfidence

	// Arabic macro-language relaxation: accept any Arab-script dialect.
	if (expectedISO == "arb" || expectedISO == "ara") && !isCorrect {
		if detectedScript == "Arab" && confidence >= arabicMinConfidence {
			isCorrect = true
		}
	}

	var message string
	switch {
	case isCorrect:
		message = fmt.Sprintf("%s: Verified as %s_%s (confidence: %.2f)", contextLabel, detectedISO, detectedScript, confidence)
	case detectedISO != expectedISO:
		message = fmt.Sprintf("%s: Detected as %s_%s (confidence: %.2f), expected %s", contextLabel, detectedISO, detectedScript, confidence, expectedISO)
	default:
		message = fmt.Sprintf("%s: Correct language %s but low confidence (%.2f < %.2f)", contextLabel, detectedISO, confidence, minConfidence)
	}

	return internal.LanguageCheckResult{
		IsCorrect:        isCorrect,
		DetectedLanguage: detectedISO,
		DetectedScript:   detectedScript,
		Confidence:       confidence,
		ExpectedLanguage: expectedISO,
		Message:          message,
	}
}

func parseLabel(label string) (iso, script string) {
	trimmed := strings.TrimPrefix(label, labelPrefix)
	parts := strings.SplitN(trimmed, "_", 2)
	if len(parts) == 2 && parts[1] != "" {
		return parts[0], parts[1]
	}
	return trimmed, "Unknown"
}
