package companion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"happyminds/internal/domain"
)

type fakeProvider struct {
	lastReq domain.LLMRequest
	reply   string
	err     error
}

func (f *fakeProvider) Complete(_ context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return domain.LLMResponse{}, f.err
	}
	return domain.LLMResponse{Content: f.reply}, nil
}

type fakeStore struct {
	entries []domain.JournalEntry
}

func (f *fakeStore) RecentEntries(_ context.Context, _ int) ([]domain.JournalEntry, error) {
	return f.entries, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildSystemPromptIncludesMoodLog(t *testing.T) {
	prompt := buildSystemPrompt([]domain.JournalEntry{
		{Timestamp: "2026-08-26T10:00:00Z", Mood: "anxiety", Entry: "nervous about the exam"},
		{Timestamp: "2026-08-25T21:00:00Z", Mood: "joy", Entry: "great dinner with friends"},
	})
	for _, want := range []string{"anxiety", "nervous about the exam", "joy", "most recent first"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildSystemPromptEmptyLog(t *testing.T) {
	prompt := buildSystemPrompt(nil)
	if !strings.Contains(prompt, "no journal entries yet") {
		t.Fatalf("prompt missing empty-log note:\n%s", prompt)
	}
}

func TestHandleChatAssignsSessionAndMood(t *testing.T) {
	provider := &fakeProvider{reply: "That sounds hard. Be kind to yourself."}
	store := &fakeStore{entries: []domain.JournalEntry{{Mood: "sad", Entry: "rough week"}}}
	svc := New(Config{Model: "test-model"}, provider, store, testLogger())

	resp, err := svc.HandleChat(context.Background(), domain.ChatRequest{Text: "I feel off today"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatalf("session id must be assigned")
	}
	if resp.Reply != provider.reply {
		t.Fatalf("reply=%q, want provider reply", resp.Reply)
	}
	if resp.Mood != "sad" {
		t.Fatalf("mood=%q, want latest logged mood", resp.Mood)
	}
	if len(provider.lastReq.Messages) != 1 || provider.lastReq.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %v", provider.lastReq.Messages)
	}
}

func TestHandleChatKeepsSessionHistory(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc := New(Config{Model: "test-model"}, provider, &fakeStore{}, testLogger())

	first, err := svc.HandleChat(context.Background(), domain.ChatRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = svc.HandleChat(context.Background(), domain.ChatRequest{SessionID: first.SessionID, Text: "and again"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// user, assistant, user
	if len(provider.lastReq.Messages) != 3 {
		t.Fatalf("history len=%d, want 3", len(provider.lastReq.Messages))
	}
}

func TestHandleChatFailedCompletionLeavesNoDanglingTurn(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	svc := New(Config{Model: "test-model"}, provider, &fakeStore{}, testLogger())

	_, err := svc.HandleChat(context.Background(), domain.ChatRequest{SessionID: "s1", Text: "hello"})
	if err == nil {
		t.Fatalf("expected provider error")
	}

	provider.err = nil
	provider.reply = "hi there"
	_, err = svc.HandleChat(context.Background(), domain.ChatRequest{SessionID: "s1", Text: "hello again"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The failed turn must not be replayed: only the new user message.
	if len(provider.lastReq.Messages) != 1 {
		t.Fatalf("history len=%d, want 1: %v", len(provider.lastReq.Messages), provider.lastReq.Messages)
	}
	if provider.lastReq.Messages[0].Content != "hello again" {
		t.Fatalf("unexpected replayed message: %v", provider.lastReq.Messages)
	}
}

func TestHandleChatRejectsEmptyText(t *testing.T) {
	svc := New(Config{}, &fakeProvider{}, &fakeStore{}, testLogger())
	if _, err := svc.HandleChat(context.Background(), domain.ChatRequest{Text: "  "}); err == nil {
		t.Fatalf("expected error on empty text")
	}
}
