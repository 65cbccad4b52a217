package interpreter

import (
	"context"
	"fmt"

	"github.com/valpere/interpeval/internal/prompts"
	"github.com/valpere/interpeval/internal/provider"
)

// Record is one completed translation, kept in arrival order.
type Record struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
	From        string `json:"from"`
	To          string `json:"to"`
	Context     string `json:"context,omitempty"`
}

// Agent is the LLM-backed interpreter. It renders a deterministic prompt
// from its translation brief and delegates to a generation backend. The
// backend's output is returned verbatim: no cleanup, no retries.
type Agent struct {
	name           string
	brief          string
	sourceLanguage string
	targetLanguage string
	provider       provider.Provider
	history        []Record
}

// AgentConfig configures an interpreter Agent. Brief and Name are optional;
// an empty Brief is synthesized from the language pair.
type AgentConfig struct {
	Brief          string
	SourceLanguage string
	TargetLanguage string
	Name           string
}

// NewAgent creates an interpreter agent delegating to the given backend.
func NewAgent(p provider.Provider, cfg AgentConfig) *Agent {
	name := cfg.Name
	if name == "" {
		name = "Interpreter"
	}
	brief := cfg.Brief
	if brief == "" {
		brief = prompts.DefaultBrief(languageName(cfg.SourceLanguage), languageName(cfg.TargetLanguage))
	}
	return &Agent{
		name:           name,
		brief:          brief,
		sourceLanguage: cfg.SourceLanguage,
		targetLanguage: cfg.TargetLanguage,
		provider:       p,
	}
}

func (a *Agent) Name() string { return a.name }

// Brief returns the translation brief the agent operates under.
func (a *Agent) Brief() string { return a.brief }

// History returns a copy of the agent's translation records.
func (a *Agent) History() []Record {
	out := make([]Record, len(a.history))
	copy(out, a.history)
	return out
}

// Translate translates message from fromLang to toLang, defaulting empty
// language arguments to the agent's configured pair. One record is appended
// per successful call.
func (a *Agent) Translate(ctx context.Context, message, fromLang, toLang, taskContext string) (string, error) {
	if fromLang == "" {
		fromLang = a.sourceLanguage
	}
	if toLang == "" {
		toLang = a.targetLanguage
	}

	prompt := prompts.TranslationTask(a.brief, languageName(fromLang), languageName(toLang), taskContext, message)
	translation, err := a.provider.Generate(ctx, provider.GenerateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}

	a.history = append(a.history, Record{
		Original:    message,
		Translation: translation,
		From:        fromLang,
		To:          toLang,
		Context:     taskContext,
	})

	return translation, nil
}

// Facilitate translates one message for the sender/receiver pair and returns
// the structured exchange. This is the orchestrator's sole entry point.
func (a *Agent) Facilitate(ctx context.Context, message, senderLang, receiverLang, taskContext string) (Exchange, error) {
	translation, err := a.Translate(ctx, message, senderLang, receiverLang, taskContext)
	if err != nil {
		return Exchange{}, err
	}
	return Exchange{
		Original:            message,
		OriginalLanguage:    senderLang,
		Translation:         translation,
		TranslationLanguage: receiverLang,
	}, nil
}
