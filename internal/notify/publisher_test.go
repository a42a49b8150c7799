package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"happyminds/internal/domain"
)

func TestMoodTopic(t *testing.T) {
	got := MoodTopic("happyminds", "demo-user")
	want := "happyminds/journal/demo-user/mood"
	if got != want {
		t.Fatalf("topic=%q, want %q", got, want)
	}
}

func TestDisabledPublisher(t *testing.T) {
	p := NewPublisher(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if p.Enabled() {
		t.Fatalf("publisher without a broker must be disabled")
	}
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start on a disabled publisher must be a no-op, got %v", err)
	}
	if err := p.PublishMood("demo-user", domain.MoodEvent{}); err == nil {
		t.Fatalf("PublishMood on a disabled publisher must error")
	}
}
