// Package interpreter provides the mediating translation agent that bridges
// two conversation parties, plus a machine-translation baseline with the
// same contract.
package interpreter

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Exchange is the structured result of facilitating one message.
type Exchange struct {
	Original            string `json:"original"`
	OriginalLanguage    string `json:"original_language"`
	Translation         string `json:"translation"`
	TranslationLanguage string `json:"translation_language"`
}

// Interpreter translates one message between a sender and receiver language.
// Facilitate is a single blocking call; backend failures propagate to the
// caller unmodified apart from a stage prefix.
type Interpreter interface {
	Facilitate(ctx context.Context, message, senderLang, receiverLang, taskContext string) (Exchange, error)
	Name() string
	Brief() string
}

// languageName resolves a language code to its English display name.
// Unparseable codes degrade to the raw code.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
