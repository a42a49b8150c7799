package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClientFlatResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"label":"joy","score":0.78},{"label":"sadness","score":0.22}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	got, err := c.Classify(context.Background(), "great day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Label != "joy" || got[0].Score != 0.78 {
		t.Fatalf("unexpected scores: %v", got)
	}
}

func TestHTTPClientBatchedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[{"label":"anger","score":0.6},{"label":"neutral","score":0.4}]]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	got, err := c.Classify(context.Background(), "so annoying")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Label != "anger" {
		t.Fatalf("expected first batch row, got %v", got)
	}
}

func TestHTTPClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	if _, err := c.Classify(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error on 503 response")
	}
}

func TestHTTPClientNotConfigured(t *testing.T) {
	c := NewHTTPClient("", time.Second)
	if c.Enabled() {
		t.Fatalf("client with empty url must be disabled")
	}
	if _, err := c.Classify(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error when endpoint is not configured")
	}
}
