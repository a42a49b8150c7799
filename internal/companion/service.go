package companion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"happyminds/internal/domain"
	"happyminds/internal/llm"
)

// HistoryStore supplies recent journal entries for prompt grounding.
type HistoryStore interface {
	RecentEntries(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}

// Service is the supportive chat assistant. Conversations are kept in
// memory per session; the mood log from the store grounds the system
// prompt so the assistant can speak to how the user has been feeling.
type Service struct {
	provider     llm.Provider
	store        HistoryStore
	model        string
	historyLimit int
	logger       *slog.Logger

	mu       sync.Mutex
	sessions map[string][]domain.Message
}

type Config struct {
	Model        string
	HistoryLimit int
}

func New(cfg Config, provider llm.Provider, store HistoryStore, logger *slog.Logger) *Service {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 5
	}
	return &Service{
		provider:     provider,
		store:        store,
		model:        cfg.Model,
		historyLimit: cfg.HistoryLimit,
		logger:       logger,
		sessions:     make(map[string][]domain.Message),
	}
}

func (s *Service) HandleChat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.ChatResponse{}, fmt.Errorf("text is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "chat_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	entries, err := s.store.RecentEntries(ctx, s.historyLimit)
	if err != nil {
		s.logger.Warn("load mood history failed", "error", err)
		entries = nil
	}

	history := append(s.sessionMessages(sessionID), domain.Message{Role: "user", Content: text})

	resp, err := s.provider.Complete(ctx, domain.LLMRequest{
		Model:    s.model,
		System:   buildSystemPrompt(entries),
		Messages: history,
	})
	if err != nil {
		return domain.ChatResponse{}, err
	}

	// The turn is stored only after a successful completion so a provider
	// failure does not leave a user message without a reply in the session.
	reply := strings.TrimSpace(resp.Content)
	s.appendMessages(sessionID,
		domain.Message{Role: "user", Content: text},
		domain.Message{Role: "assistant", Content: reply})

	out := domain.ChatResponse{SessionID: sessionID, Reply: reply}
	if len(entries) > 0 {
		out.Mood = entries[0].Mood
	}
	return out, nil
}

// Conversations are capped so an abandoned session does not grow forever.
const maxSessionMessages = 40

func (s *Service) sessionMessages(sessionID string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.sessions[sessionID]...)
}

func (s *Service) appendMessages(sessionID string, msgs ...domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := append(s.sessions[sessionID], msgs...)
	if len(stored) > maxSessionMessages {
		stored = stored[len(stored)-maxSessionMessages:]
	}
	s.sessions[sessionID] = stored
}

func buildSystemPrompt(entries []domain.JournalEntry) string {
	var b strings.Builder
	b.WriteString("You are a warm, supportive journaling companion. ")
	b.WriteString("Listen first, validate feelings, and offer one small, concrete suggestion at most. ")
	b.WriteString("Keep replies short (2-4 sentences). You are not a therapist and must not give medical advice; ")
	b.WriteString("if the user mentions self-harm, gently encourage them to reach out to a crisis line or someone they trust.")

	if len(entries) == 0 {
		b.WriteString("\nThe user has no journal entries yet.")
		return b.String()
	}

	b.WriteString("\nRecent mood log, most recent first:")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- [%s] %s: %s", e.Timestamp, e.Mood, e.Entry)
	}
	return b.String()
}
