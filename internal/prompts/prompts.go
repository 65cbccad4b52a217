// Package prompts is the single source of prompt text used by the
// interpreter agent, LLM-backed users and the judge.
package prompts

import (
	"fmt"
	"strings"
)

const defaultBriefTemplate = `# Translation Brief

You are an expert translator and interpreter facilitating communication between two users.
- User A Language: %s
- User B Language: %s

Note: You are only provided with the languages of the users. Do not assume any additional user background.

## Core Instructions
1. **Sole Intermediary**: The users cannot speak directly to each other; they communicate exclusively through you. You are the sole bridge between them.
2. **Active Adaptation**: Because the users rely entirely on you, you must perform all necessary cultural, syntactic, and semantic adjustments. Do not translate literally if it compromises understanding or politeness. You must transform the message so it fits the target language's norms.
3. **Preserve Meaning and Goal**: Your primary duty is to achieve the communicative goal of the source text. You must preserve the original meaning and ensure the intent is realized in the target context.

## Guidelines
1. Translate messages accurately while preserving the original meaning.
2. Maintain the tone and style of the original message (formal, casual, etc.), adjusting only when necessary to preserve intent across cultures.
3. Adapt idioms and cultural references appropriately for the target audience.
4. Preserve technical terms when appropriate, but provide clarification if needed.
5. Be mindful of context and conversation flow.

## Quality Standards
- Accuracy: Ensure the translation conveys the exact meaning and intent.
- Fluency: The translation must sound natural in the target language.
- Consistency: Maintain consistent terminology throughout the conversation.
- Cultural Sensitivity: Respect cultural nuances and adapt as needed.`

// DefaultBrief builds the standard translation brief for a language pair.
func DefaultBrief(userALanguage, userBLanguage string) string {
	return fmt.Sprintf(defaultBriefTemplate, userALanguage, userBLanguage)
}

// TranslationTask renders the prompt for translating a single message.
// The rendering is deterministic: the same inputs always produce the same
// prompt.
func TranslationTask(brief, fromLanguage, toLanguage, context, message string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Translation Brief: %s\n\n", brief))
	sb.WriteString(fmt.Sprintf("Translate the following message from %s to %s.\n", fromLanguage, toLanguage))
	if context != "" {
		sb.WriteString(fmt.Sprintf("Context: %s\n", context))
	}
	sb.WriteString(fmt.Sprintf("\nMessage to translate: %s\n\n", message))
	sb.WriteString(fmt.Sprintf("Translation (%s):", toLanguage))
	return sb.String()
}

// UserSystem renders the system prompt for an LLM-backed conversation user.
func UserSystem(name, language string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are %s, a participant in a conversation mediated by an interpreter.\n", name))
	sb.WriteString(fmt.Sprintf("You speak only %s. Reply to the messages you receive naturally and concisely, always in %s.\n", language, language))
	sb.WriteString("Reply with the message text only, no commentary.")
	return sb.String()
}

// JudgeRequest carries everything the judge prompt embeds.
type JudgeRequest struct {
	ConversationContext string
	OriginalMessage     string
	OriginalLanguage    string
	TranslatedMessage   string
	TranslatedLanguage  string
	TargetResponse      string
	LanguageCheckNotes  string
	Checklist           string
}

// Judge renders the evaluation prompt for one conversation turn. The judge
// is asked for a JSON object matching the JudgeEvaluation results shape.
func Judge(req JudgeRequest) string {
	var sb strings.Builder
	sb.WriteString("You are an impartial judge evaluating the quality of an interpreted conversation turn.\n\n")
	if req.ConversationContext != "" {
		sb.WriteString(fmt.Sprintf("Conversation context: %s\n\n", req.ConversationContext))
	}
	sb.WriteString(fmt.Sprintf("Original message (%s):\n%s\n\n", req.OriginalLanguage, req.OriginalMessage))
	sb.WriteString(fmt.Sprintf("Interpreter translation (%s):\n%s\n\n", req.TranslatedLanguage, req.TranslatedMessage))
	sb.WriteString(fmt.Sprintf("Target user response:\n%s\n\n", req.TargetResponse))
	if req.LanguageCheckNotes != "" {
		sb.WriteString(fmt.Sprintf("Language verification:\n%s\n\n", req.LanguageCheckNotes))
	}
	sb.WriteString("Evaluate the turn against each numbered criterion below.\n\n")
	sb.WriteString(fmt.Sprintf("Criteria:\n%s\n\n", req.Checklist))
	sb.WriteString(`Respond ONLY in JSON:
{
  "results": [
    {"id": 1, "criteria": "<criterion text>", "met": true, "reasoning": "<brief explanation>"}
  ]
}
Include one entry per criterion, in order, with 1-based ids.`)
	return sb.String()
}
