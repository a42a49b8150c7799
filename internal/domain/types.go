package domain

// LabelScore is one (label, score) pair from the upstream classifier.
// Scores are not assumed to be normalized.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalysisResult is the full response for one analyzed journal text.
type AnalysisResult struct {
	Emotion     string             `json:"emotion"`
	Confidence  float64            `json:"confidence"`
	Scores      map[string]float64 `json:"scores"`
	TopWords    []string           `json:"top_words"`
	Affirmation string             `json:"affirmation"`
}

// JournalEntry is one persisted row of the mood log.
// Timestamp is ISO-8601 UTC with a trailing Z.
type JournalEntry struct {
	Timestamp   string `json:"timestamp"`
	Entry       string `json:"entry"`
	Mood        string `json:"mood"`
	Affirmation string `json:"affirmation"`
}

// MoodSnapshot is the latest mood shown by the tracker UI.
type MoodSnapshot struct {
	Mood        string `json:"mood"`
	Affirmation string `json:"affirmation"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// MoodEvent is the MQTT payload published after a saved analysis.
type MoodEvent struct {
	UserID      string  `json:"user_id"`
	Timestamp   string  `json:"timestamp"`
	Emotion     string  `json:"emotion"`
	Confidence  float64 `json:"confidence"`
	Affirmation string  `json:"affirmation"`
}

// Companion chat payloads.

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text"`
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Mood      string `json:"mood,omitempty"`
}

type Message struct {
	Role    string
	Content string
}

type LLMRequest struct {
	Model    string
	System   string
	Messages []Message
}

type LLMResponse struct {
	Content string
}
