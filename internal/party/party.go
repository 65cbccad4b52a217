// Package party models one endpoint of an interpreted conversation: a named
// speaker with a language, a private message history, and optionally an LLM
// backend that produces its utterances.
package party

import (
	"context"
	"fmt"
	"strings"

	"github.com/valpere/interpeval/internal/prompts"
	"github.com/valpere/interpeval/internal/provider"
)

// History roles. A party tags its own productions as assistant entries and
// everything it receives as user entries.
const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// historyWindow bounds how many prior entries an LLM-backed party embeds in
// its generation prompt.
const historyWindow = 6

// Message is one entry in a party's private history. Order is arrival order;
// entries are never removed or rewritten.
type Message struct {
	Role     string            `json:"role"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Party is one conversation endpoint. A nil provider makes the party manual:
// it echoes the driver's messages verbatim. All mutation is confined to the
// party's own history.
type Party struct {
	Name     string
	Language string

	provider provider.Provider
	history  []Message
}

// New creates a manual party that speaks the given ISO 639-3 language.
func New(name, language string) *Party {
	return &Party{Name: name, Language: language}
}

// NewLLM creates a party whose utterances are produced by an LLM backend.
func NewLLM(name, language string, p provider.Provider) *Party {
	return &Party{Name: name, Language: language, provider: p}
}

// IsLLM reports whether the party delegates to a generation backend.
func (p *Party) IsLLM() bool {
	return p.provider != nil
}

// History returns a copy of the party's message history in arrival order.
func (p *Party) History() []Message {
	out := make([]Message, len(p.history))
	copy(out, p.history)
	return out
}

// SendMessage produces the party's next utterance. Manual parties return
// text unchanged; LLM parties generate a reply seeded by text and their
// recent history. Exactly one assistant entry is appended either way.
// Backend errors propagate unchanged apart from the stage prefix.
func (p *Party) SendMessage(ctx context.Context, text string) (string, error) {
	produced := text
	if p.provider != nil {
		out, err := p.provider.Generate(ctx, provider.GenerateRequest{
			Prompt:       p.buildPrompt(text),
			SystemPrompt: prompts.UserSystem(p.Name, p.Language),
		})
		if err != nil {
			return "", fmt.Errorf("generation failed for %s: %w", p.Name, err)
		}
		produced = out
	}

	p.history = append(p.history, Message{Role: RoleAssistant, Content: produced})
	return produced, nil
}

// ReceiveMessage appends an incoming message to the party's history. The
// metadata records provenance (e.g. {"from": "interpreter"}).
func (p *Party) ReceiveMessage(text string, metadata map[string]string) {
	p.history = append(p.history, Message{Role: RoleUser, Content: text, Metadata: metadata})
}

// LastResponse returns the party's most recent own utterance, false when
// the party has not produced one.
func (p *Party) LastResponse() (string, bool) {
	for i := len(p.history) - 1; i >= 0; i-- {
		if p.history[i].Role == RoleAssistant {
			return p.history[i].Content, true
		}
	}
	return "", false
}

func (p *Party) buildPrompt(text string) string {
	var sb strings.Builder
	start := len(p.history) - historyWindow
	if start < 0 {
		start = 0
	}
	if start < len(p.history) {
		sb.WriteString("Conversation so far:\n")
		for _, m := range p.history[start:] {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", m.Role, m.Content))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Message: %s\n\nYour reply in %s:", text, p.Language))
	return sb.String()
}
