package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"happyminds/internal/artifact"
	"happyminds/internal/classifier"
	"happyminds/internal/companion"
	"happyminds/internal/config"
	"happyminds/internal/db"
	"happyminds/internal/domain"
	"happyminds/internal/llm"
	"happyminds/internal/mood"
	"happyminds/internal/notify"
)

type cliOverrides struct {
	ConfigPath     *string
	HTTPAddr       *string
	DBDSN          *string
	ClassifierMode *string
	ClassifierURL  *string
	ArtifactDir    *string
	MQTTBrokerURL  *string
}

func main() {
	var overrides cliOverrides

	rootCmd := &cobra.Command{
		Use:   "happyminds-server",
		Short: "Happy Minds - journal mood analysis server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Flags(), &overrides)
		},
		SilenceUsage: true,
	}

	f := rootCmd.Flags()
	overrides.ConfigPath = f.StringP("config", "f", "", "Path to YAML config file")
	overrides.HTTPAddr = f.String("http-addr", "", "HTTP listen address")
	overrides.DBDSN = f.String("db-dsn", "", "Postgres DSN")
	overrides.ClassifierMode = f.String("classifier-mode", "", "Classifier backend: http or vader")
	overrides.ClassifierURL = f.String("classifier-url", "", "Text-classification endpoint URL")
	overrides.ArtifactDir = f.String("artifact-dir", "", "Directory for saved analysis artifacts")
	overrides.MQTTBrokerURL = f.String("mqtt-broker", "", "MQTT broker URL for mood events")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(flags *pflag.FlagSet, overrides *cliOverrides) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadServerConfig(*overrides.ConfigPath)
	if err != nil {
		logger.Error("load config failed", "error", err)
		return err
	}
	applyFlagOverrides(flags, &cfg, overrides)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := db.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Error("connect db failed", "error", err)
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logger.Error("migrate db failed", "error", err)
		return err
	}

	clf, err := newClassifier(cfg)
	if err != nil {
		logger.Error("init classifier failed", "error", err)
		return err
	}

	selector := mood.NewSelector(nil, rand.New(rand.NewSource(time.Now().UnixNano())))
	analysis := mood.NewService(clf, selector, cfg.ClassifierTimeout)
	artifacts := artifact.NewWriter(cfg.ArtifactDir)

	var chat *companion.Service
	if cfg.ChatEnabled() {
		provider, err := llm.NewProvider(llm.Config{
			Provider:         cfg.LLMProvider,
			Model:            cfg.LLMModel,
			OpenAIBaseURL:    cfg.OpenAIBaseURL,
			OpenAIAPIKey:     cfg.OpenAIAPIKey,
			AnthropicBaseURL: cfg.AnthropicBaseURL,
			AnthropicAPIKey:  cfg.AnthropicAPIKey,
		})
		if err != nil {
			logger.Error("init llm provider failed", "error", err)
			return err
		}
		chat = companion.New(companion.Config{
			Model:        cfg.LLMModel,
			HistoryLimit: cfg.ChatHistoryLimit,
		}, provider, store, logger)
	} else {
		logger.Info("companion chat disabled: no LLM API key configured")
	}

	publisher := notify.NewPublisher(notify.Config{
		BrokerURL:   cfg.MQTTBrokerURL,
		ClientID:    cfg.MQTTClientID,
		Username:    cfg.MQTTUsername,
		Password:    cfg.MQTTPassword,
		TopicPrefix: cfg.MQTTTopicPrefix,
	}, logger)
	if publisher.Enabled() {
		if err := publisher.Start(ctx); err != nil {
			logger.Error("start mood publisher failed", "error", err)
			return err
		}
	}

	srv := &server{
		cfg:       cfg,
		analysis:  analysis,
		store:     store,
		artifacts: artifacts,
		chat:      chat,
		publisher: publisher,
		logger:    logger,
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("happyminds server started",
			"addr", cfg.HTTPAddr,
			"classifier_mode", cfg.ClassifierMode,
			"chat_enabled", chat != nil,
			"mood_events_enabled", publisher.Enabled(),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	return nil
}

func newClassifier(cfg config.ServerConfig) (mood.Classifier, error) {
	switch cfg.ClassifierMode {
	case "http":
		return classifier.NewHTTPClient(cfg.ClassifierURL, cfg.ClassifierTimeout), nil
	case "vader":
		return classifier.NewVADER(), nil
	default:
		return nil, fmt.Errorf("unsupported classifier mode: %s", cfg.ClassifierMode)
	}
}

func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.ServerConfig, overrides *cliOverrides) {
	if flags.Changed("http-addr") {
		cfg.HTTPAddr = *overrides.HTTPAddr
	}
	if flags.Changed("db-dsn") {
		cfg.DBDSN = *overrides.DBDSN
	}
	if flags.Changed("classifier-mode") {
		cfg.ClassifierMode = *overrides.ClassifierMode
	}
	if flags.Changed("classifier-url") {
		cfg.ClassifierURL = *overrides.ClassifierURL
	}
	if flags.Changed("artifact-dir") {
		cfg.ArtifactDir = *overrides.ArtifactDir
	}
	if flags.Changed("mqtt-broker") {
		cfg.MQTTBrokerURL = *overrides.MQTTBrokerURL
	}
}

type server struct {
	cfg       config.ServerConfig
	analysis  *mood.Service
	store     *db.Store
	artifacts *artifact.Writer
	chat      *companion.Service
	publisher *notify.Publisher
	logger    *slog.Logger
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "labels": mood.CanonicalLabels})
	})

	r.Post("/analyze", s.handleAnalyze)
	r.Post("/analyze/save", s.handleAnalyzeSave)

	r.Get("/api/mood/current", s.handleCurrentMood)
	r.Get("/api/entries", s.handleListEntries)
	r.Delete("/api/entries", s.handleClearEntries)

	r.Post("/v1/chat", s.handleChat)

	r.Get("/", servePage(indexHTML))
	r.Get("/entry", servePage(entryHTML))
	r.Get("/mood-tracker", servePage(moodTrackerHTML))

	return r
}

// analyzeText runs the pipeline and maps classifier unavailability to the
// degraded result so the caller always gets a complete response shape.
func (s *server) analyzeText(ctx context.Context, text string) (domain.AnalysisResult, bool, error) {
	result, err := s.analysis.Analyze(ctx, text)
	if err == nil {
		return result, false, nil
	}
	if errors.Is(err, mood.ErrClassifierUnavailable) {
		s.logger.Warn("classifier unavailable, returning degraded result", "error", err)
		return mood.Degraded(), true, nil
	}
	return domain.AnalysisResult{}, false, err
}

func (s *server) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	var in analyzeRequest
	if err := decodeJSONBody(req, s.cfg.MaxBodyBytes, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	result, _, err := s.analyzeText(req.Context(), in.Text)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleAnalyzeSave(w http.ResponseWriter, req *http.Request) {
	var in analyzeRequest
	if err := decodeJSONBody(req, s.cfg.MaxBodyBytes, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	result, degraded, err := s.analyzeText(req.Context(), in.Text)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	// Persistence, artifact and notification fire only for a real analysis;
	// a degraded response still returns the full shape with an empty path.
	path := ""
	if !degraded {
		recordedAt := time.Now().UTC()

		if err := s.store.InsertEntry(req.Context(), recordedAt, in.Text, result.Emotion, result.Affirmation); err != nil {
			s.logger.Error("persist entry failed", "error", err)
		}

		if p, err := s.artifacts.Write(result); err != nil {
			s.logger.Error("write artifact failed", "error", err)
		} else {
			path = p
		}

		if s.publisher.Enabled() {
			event := domain.MoodEvent{
				UserID:      s.cfg.UserID,
				Timestamp:   recordedAt.Format(time.RFC3339),
				Emotion:     result.Emotion,
				Confidence:  result.Confidence,
				Affirmation: result.Affirmation,
			}
			if err := s.publisher.PublishMood(s.cfg.UserID, event); err != nil {
				s.logger.Warn("publish mood event failed", "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"path": path, "result": result})
}

func (s *server) writeAnalyzeError(w http.ResponseWriter, err error) {
	if mood.IsInvalidInput(err) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	s.logger.Error("analysis failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "analysis failed"})
}

func (s *server) handleCurrentMood(w http.ResponseWriter, req *http.Request) {
	latest, err := s.store.LatestEntry(req.Context())
	if errors.Is(err, db.ErrNoEntries) {
		writeJSON(w, http.StatusOK, domain.MoodSnapshot{Mood: "none", Affirmation: "No entries yet!"})
		return
	}
	if err != nil {
		s.logger.Error("load latest entry failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to load mood"})
		return
	}
	writeJSON(w, http.StatusOK, domain.MoodSnapshot{
		Mood:        latest.Mood,
		Affirmation: latest.Affirmation,
		Timestamp:   latest.Timestamp,
	})
}

func (s *server) handleListEntries(w http.ResponseWriter, req *http.Request) {
	entries, err := s.store.FetchEntries(req.Context())
	if err != nil {
		s.logger.Error("load entries failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to load entries"})
		return
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *server) handleClearEntries(w http.ResponseWriter, req *http.Request) {
	if err := s.store.ClearEntries(req.Context()); err != nil {
		s.logger.Error("clear entries failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to clear entries"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *server) handleChat(w http.ResponseWriter, req *http.Request) {
	if s.chat == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "chat is not configured"})
		return
	}
	var in domain.ChatRequest
	if err := decodeJSONBody(req, s.cfg.MaxBodyBytes, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	resp, err := s.chat.HandleChat(req.Context(), in)
	if err != nil {
		s.logger.Error("chat failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func servePage(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("content-type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}
}

func decodeJSONBody(req *http.Request, maxBytes int64, out any) error {
	defer req.Body.Close()
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return fmt.Errorf("request body too large")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return fmt.Errorf("invalid json: multiple JSON values")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
