package party

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/valpere/interpeval/internal/provider"
)

type stubProvider struct {
	response  string
	err       error
	callCount int
	lastReq   provider.GenerateRequest
}

func (s *stubProvider) Generate(_ context.Context, req provider.GenerateRequest) (string, error) {
	s.callCount++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubProvider) Name() string { return "stub" }

func TestManualParty_SendMessage(t *testing.T) {
	p := New("Alice", "eng")

	got, err := p.SendMessage(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello" {
		t.Errorf("expected verbatim echo, got %q", got)
	}

	history := p.History()
	if len(history) != 1 {
		t.Fatalf("expected exactly 1 history entry, got %d", len(history))
	}
	if history[0].Role != RoleAssistant {
		t.Errorf("expected role %q, got %q", RoleAssistant, history[0].Role)
	}
	if history[0].Content != "Hello" {
		t.Errorf("expected content 'Hello', got %q", history[0].Content)
	}
}

func TestLLMParty_SendMessage(t *testing.T) {
	stub := &stubProvider{response: "Hola"}
	p := NewLLM("Bob", "spa", stub)

	got, err := p.SendMessage(context.Background(), "Say hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hola" {
		t.Errorf("expected generated text, got %q", got)
	}
	if stub.callCount != 1 {
		t.Errorf("expected 1 generate call, got %d", stub.callCount)
	}
	if !strings.Contains(stub.lastReq.Prompt, "Say hi") {
		t.Errorf("prompt should embed the seed message, got %q", stub.lastReq.Prompt)
	}
	if stub.lastReq.SystemPrompt == "" {
		t.Error("expected a system prompt for LLM party")
	}

	history := p.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].Content != "Hola" {
		t.Errorf("history should record the produced text, got %q", history[0].Content)
	}
}

func TestLLMParty_SendMessage_Error(t *testing.T) {
	stub := &stubProvider{err: errors.New("backend down")}
	p := NewLLM("Bob", "spa", stub)

	_, err := p.SendMessage(context.Background(), "Say hi")
	if err == nil {
		t.Fatal("expected error from failing backend")
	}
	if !strings.Contains(err.Error(), "generation failed") {
		t.Errorf("error should name the generation stage, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "backend down") {
		t.Errorf("error should include the backend message, got %q", err.Error())
	}
	if len(p.History()) != 0 {
		t.Error("failed send must not append history")
	}
}

func TestParty_ReceiveMessage(t *testing.T) {
	p := New("Alice", "eng")
	p.ReceiveMessage("Hola", map[string]string{"from": "interpreter"})

	history := p.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].Role != RoleUser {
		t.Errorf("received entries must be tagged %q, got %q", RoleUser, history[0].Role)
	}
	if history[0].Metadata["from"] != "interpreter" {
		t.Errorf("metadata not preserved: %v", history[0].Metadata)
	}
}

func TestParty_LastResponse(t *testing.T) {
	p := New("Alice", "eng")

	if _, ok := p.LastResponse(); ok {
		t.Error("expected no response on fresh party")
	}

	p.ReceiveMessage("incoming", nil)
	if _, ok := p.LastResponse(); ok {
		t.Error("received messages are not responses")
	}

	if _, err := p.SendMessage(context.Background(), "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.SendMessage(context.Background(), "second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := p.LastResponse()
	if !ok {
		t.Fatal("expected a response")
	}
	if got != "second" {
		t.Errorf("expected most recent response, got %q", got)
	}
}

func TestLLMParty_PromptIncludesHistory(t *testing.T) {
	stub := &stubProvider{response: "reply"}
	p := NewLLM("Bob", "spa", stub)

	p.ReceiveMessage("Hola Bob", map[string]string{"from": "interpreter"})
	if _, err := p.SendMessage(context.Background(), "respond"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stub.lastReq.Prompt, "Hola Bob") {
		t.Errorf("prompt should include received history, got %q", stub.lastReq.Prompt)
	}
}
