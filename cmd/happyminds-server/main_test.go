package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"happyminds/internal/config"
	"happyminds/internal/domain"
	"happyminds/internal/mood"
)

type stubClassifier struct {
	raw []domain.LabelScore
	err error
}

func (s *stubClassifier) Classify(_ context.Context, _ string) ([]domain.LabelScore, error) {
	return s.raw, s.err
}

func newTestServer(clf mood.Classifier) *server {
	selector := mood.NewSelector(nil, rand.New(rand.NewSource(1)))
	return &server{
		cfg:      config.ServerConfig{MaxBodyBytes: 65536},
		analysis: mood.NewService(clf, selector, time.Second),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	srv := newTestServer(&stubClassifier{raw: []domain.LabelScore{
		{Label: "joy", Score: 0.9},
		{Label: "fear", Score: 0.1},
	}})

	rec := postJSON(t, srv.routes(), "/analyze", `{"text":"I am happy happy sad"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	var got domain.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Emotion != "joy" || got.Confidence != 0.9 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestHandleAnalyzeClassifierFailureReturnsDegraded(t *testing.T) {
	srv := newTestServer(&stubClassifier{err: errors.New("connection refused")})

	rec := postJSON(t, srv.routes(), "/analyze", `{"text":"rough day"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200 even when the classifier is down", rec.Code)
	}
	var got domain.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Emotion != mood.EmotionUnknown {
		t.Fatalf("emotion=%s, want %s", got.Emotion, mood.EmotionUnknown)
	}
	if got.Confidence != 0 {
		t.Fatalf("confidence=%.4f, want 0", got.Confidence)
	}
	for label, v := range got.Scores {
		if v != 0 {
			t.Fatalf("score %q = %.4f, want 0", label, v)
		}
	}
	if len(got.TopWords) != 0 {
		t.Fatalf("top_words=%v, want empty", got.TopWords)
	}
	if got.Affirmation == "" {
		t.Fatalf("degraded affirmation must be non-empty")
	}
}

func TestHandleAnalyzeInvalidInputReturns400(t *testing.T) {
	srv := newTestServer(&stubClassifier{})
	handler := srv.routes()

	for _, body := range []string{`{"text":""}`, `{"text":"  \t "}`} {
		rec := postJSON(t, handler, "/analyze", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status=%d, want 400", body, rec.Code)
		}
	}

	long, _ := json.Marshal(map[string]string{"text": strings.Repeat("a", mood.MaxTextLen+1)})
	rec := postJSON(t, handler, "/analyze", string(long))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("oversized text: status=%d, want 400", rec.Code)
	}
}

func TestHandleAnalyzeRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(&stubClassifier{})
	rec := postJSON(t, srv.routes(), "/analyze", `{"text":"ok","extra":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: status=%d, want 400", rec.Code)
	}
}

func TestHandleAnalyzeSaveDegradedSkipsPersistence(t *testing.T) {
	// store, artifacts and publisher are nil: a degraded analysis must not
	// touch any of them and still answer with the full response shape.
	srv := newTestServer(&stubClassifier{err: errors.New("model loading")})

	rec := postJSON(t, srv.routes(), "/analyze/save", `{"text":"rough day"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	var got struct {
		Path   string                `json:"path"`
		Result domain.AnalysisResult `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Path != "" {
		t.Fatalf("path=%q, want empty for a degraded result", got.Path)
	}
	if got.Result.Emotion != mood.EmotionUnknown {
		t.Fatalf("emotion=%s, want %s", got.Result.Emotion, mood.EmotionUnknown)
	}
}
