package prompts

import (
	"strings"
	"testing"
)

func TestDefaultBrief(t *testing.T) {
	brief := DefaultBrief("English", "Spanish")
	if !strings.Contains(brief, "User A Language: English") {
		t.Errorf("brief missing user A language:\n%s", brief)
	}
	if !strings.Contains(brief, "User B Language: Spanish") {
		t.Errorf("brief missing user B language:\n%s", brief)
	}
	if !strings.Contains(brief, "Sole Intermediary") {
		t.Error("brief missing core instructions")
	}
}

func TestTranslationTask(t *testing.T) {
	prompt := TranslationTask("Be faithful", "English", "Spanish", "Turn 2 of conversation", "Good morning")

	for _, want := range []string{
		"Translation Brief: Be faithful",
		"from English to Spanish",
		"Context: Turn 2 of conversation",
		"Message to translate: Good morning",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if !strings.HasSuffix(prompt, "Translation (Spanish):") {
		t.Errorf("prompt must end with the translation cue, got:\n%s", prompt)
	}

	// Deterministic rendering.
	if prompt != TranslationTask("Be faithful", "English", "Spanish", "Turn 2 of conversation", "Good morning") {
		t.Error("same inputs must render the same prompt")
	}
}

func TestTranslationTask_NoContext(t *testing.T) {
	prompt := TranslationTask("brief", "English", "Spanish", "", "hi")
	if strings.Contains(prompt, "Context:") {
		t.Error("empty context must not render a Context line")
	}
}

func TestUserSystem(t *testing.T) {
	prompt := UserSystem("Bob", "Spanish")
	if !strings.Contains(prompt, "You are Bob") {
		t.Errorf("prompt missing name:\n%s", prompt)
	}
	if strings.Count(prompt, "Spanish") < 2 {
		t.Errorf("prompt should insist on the reply language:\n%s", prompt)
	}
}

func TestJudge(t *testing.T) {
	prompt := Judge(JudgeRequest{
		ConversationContext: "support call",
		OriginalMessage:     "Hello",
		OriginalLanguage:    "eng",
		TranslatedMessage:   "Hola",
		TranslatedLanguage:  "spa",
		TargetResponse:      "Sí",
		LanguageCheckNotes:  "Translation: Verified as spa_Latn (confidence: 0.99)",
		Checklist:           "1. Meaning preserved",
	})

	for _, want := range []string{
		"support call",
		"Original message (eng):\nHello",
		"Interpreter translation (spa):\nHola",
		"Target user response:\nSí",
		"Verified as spa_Latn",
		"1. Meaning preserved",
		`"results"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("judge prompt missing %q", want)
		}
	}
}

func TestJudge_OptionalSectionsOmitted(t *testing.T) {
	prompt := Judge(JudgeRequest{
		OriginalMessage:   "Hello",
		TranslatedMessage: "Hola",
		TargetResponse:    "Sí",
		Checklist:         "1. Meaning preserved",
	})
	if strings.Contains(prompt, "Conversation context:") {
		t.Error("empty context must not render a context section")
	}
	if strings.Contains(prompt, "Language verification:") {
		t.Error("empty notes must not render a verification section")
	}
}
