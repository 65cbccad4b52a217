// Package eval drives an interpreted conversation between two parties and
// derives metrics and export payloads from the resulting log.
package eval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valpere/interpeval/internal"
	"github.com/valpere/interpeval/internal/interpreter"
	"github.com/valpere/interpeval/internal/party"
)

// ErrNoConversation signals that an operation requiring logged turns ran
// against an empty session.
var ErrNoConversation = errors.New("no conversation data to evaluate")

// Session owns one evaluation session: two parties, one interpreter, and the
// append-only conversation log. A Session is not safe for concurrent use;
// run one Session per conversation.
type Session struct {
	Name                string
	User1               *party.Party
	User2               *party.Party
	Interpreter         interpreter.Interpreter
	ConversationContext string

	log      []internal.TurnRecord
	metrics  internal.Metrics
	judgment *internal.JudgeEvaluation
}

// NewSession creates a session. An empty name gets a timestamped default.
func NewSession(user1, user2 *party.Party, interp interpreter.Interpreter, name string) *Session {
	if name == "" {
		name = fmt.Sprintf("eval_%s", time.Now().Format("20060102_150405"))
	}
	return &Session{
		Name:        name,
		User1:       user1,
		User2:       user2,
		Interpreter: interp,
	}
}

// RunConversation plays the given messages through the interpreter,
// alternating senders starting from fromUser (1 or 2). Each message costs
// exactly one interpreter call, timed wall-clock. The log is cumulative:
// repeated calls append, and turn indices continue from the existing log.
// Returns the full cumulative log.
func (s *Session) RunConversation(ctx context.Context, messages []string, fromUser int) ([]internal.TurnRecord, error) {
	sender, receiver := s.User1, s.User2
	if fromUser == 2 {
		sender, receiver = s.User2, s.User1
	}

	for _, message := range messages {
		turnIndex := len(s.log) + 1

		sent, err := sender.SendMessage(ctx, message)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", turnIndex, err)
		}

		start := time.Now()
		exchange, err := s.Interpreter.Facilitate(ctx, sent, sender.Language, receiver.Language,
			fmt.Sprintf("Turn %d of conversation", turnIndex))
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", turnIndex, err)
		}
		translationTime := time.Since(start).Seconds()

		receiver.ReceiveMessage(exchange.Translation, map[string]string{"from": "interpreter"})

		s.log = append(s.log, internal.TurnRecord{
			Turn:               turnIndex,
			Timestamp:          time.Now(),
			FromUser:           sender.Name,
			ToUser:             receiver.Name,
			OriginalMessage:    sent,
			OriginalLanguage:   sender.Language,
			TranslatedMessage:  exchange.Translation,
			TranslatedLanguage: exchange.TranslationLanguage,
			TranslationTime:    translationTime,
		})

		sender, receiver = receiver, sender
	}

	return s.Log(), nil
}

// Log returns a copy of the conversation log in turn order.
func (s *Session) Log() []internal.TurnRecord {
	out := make([]internal.TurnRecord, len(s.log))
	copy(out, s.log)
	return out
}

// TurnAt selects a logged turn: positive index is the 1-based turn number,
// negative counts from the end (-1 = most recent), 0 also selects the most
// recent. Returns ErrNoConversation on an empty log.
func (s *Session) TurnAt(index int) (internal.TurnRecord, error) {
	if len(s.log) == 0 {
		return internal.TurnRecord{}, ErrNoConversation
	}

	i := len(s.log) - 1
	switch {
	case index > 0:
		i = index - 1
	case index < 0:
		i = len(s.log) + index
	}
	if i < 0 || i >= len(s.log) {
		return internal.TurnRecord{}, fmt.Errorf("turn index %d out of range (%d turns logged)", index, len(s.log))
	}
	return s.log[i], nil
}

// PartyByName resolves a logged party name back to its endpoint.
func (s *Session) PartyByName(name string) (*party.Party, error) {
	switch name {
	case s.User1.Name:
		return s.User1, nil
	case s.User2.Name:
		return s.User2, nil
	}
	return nil, fmt.Errorf("unknown party %q", name)
}

// EvaluateTranslationQuality recomputes metrics over the entire current log.
// The second return value is false when there is nothing to evaluate — a
// normal condition for a fresh session, not an error.
func (s *Session) EvaluateTranslationQuality() (internal.Metrics, bool) {
	if len(s.log) == 0 {
		return internal.Metrics{}, false
	}

	total := 0.0
	for _, turn := range s.log {
		total += turn.TranslationTime
	}

	metrics := internal.Metrics{
		TotalTurns:             len(s.log),
		AverageTranslationTime: total / float64(len(s.log)),
		Languages: map[string]string{
			s.User1.Language: s.User1.Name,
			s.User2.Language: s.User2.Name,
		},
	}
	s.metrics = metrics
	return metrics, true
}

// SetJudgment stores the latest judge evaluation, replacing any prior one.
func (s *Session) SetJudgment(evaluation *internal.JudgeEvaluation) {
	s.judgment = evaluation
}

// Judgment returns the latest judge evaluation, nil when none was made.
func (s *Session) Judgment() *internal.JudgeEvaluation {
	return s.judgment
}

// Results assembles the full export payload for the session, recomputing
// metrics over the current log.
func (s *Session) Results() internal.SessionResults {
	metrics, _ := s.EvaluateTranslationQuality()
	return internal.SessionResults{
		SessionName:         s.Name,
		Timestamp:           time.Now(),
		ConversationContext: s.ConversationContext,
		Users: internal.SessionUsers{
			User1: internal.UserInfo{Name: s.User1.Name, Language: s.User1.Language, IsLLM: s.User1.IsLLM()},
			User2: internal.UserInfo{Name: s.User2.Name, Language: s.User2.Language, IsLLM: s.User2.IsLLM()},
		},
		Interpreter: internal.InterpreterInfo{
			Name:             s.Interpreter.Name(),
			TranslationBrief: s.Interpreter.Brief(),
		},
		Conversation:    s.Log(),
		Metrics:         metrics,
		JudgeEvaluation: s.judgment,
	}
}

// Summary is a compact human-oriented view of the session.
type Summary struct {
	SessionName string
	TotalTurns  int
	User1       string
	User2       string
	Interpreter string
	Metrics     internal.Metrics
}

// Summarize builds the session summary from current state.
func (s *Session) Summarize() Summary {
	return Summary{
		SessionName: s.Name,
		TotalTurns:  len(s.log),
		User1:       fmt.Sprintf("%s (%s)", s.User1.Name, s.User1.Language),
		User2:       fmt.Sprintf("%s (%s)", s.User2.Name, s.User2.Language),
		Interpreter: s.Interpreter.Name(),
		Metrics:     s.metrics,
	}
}
