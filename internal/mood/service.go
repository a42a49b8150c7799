package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"happyminds/internal/domain"
)

// MaxTextLen bounds accepted journal text, in runes.
const MaxTextLen = 4000

// EmotionUnknown marks the degraded result substituted when the classifier
// collaborator is unavailable.
const EmotionUnknown = "unknown"

var (
	ErrEmptyText             = errors.New("text must be non-empty")
	ErrTextTooLong           = errors.New("text exceeds maximum length")
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// IsInvalidInput reports whether err is an input-validation failure that
// should surface to the caller as a bad request.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrTextTooLong)
}

// Classifier is the upstream text-classification collaborator.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]domain.LabelScore, error)
}

// Service composes classification, aggregation, keyword extraction and
// affirmation selection into one analysis call. It holds no mutable state
// beyond the Selector's randomness and is safe for concurrent use.
type Service struct {
	classifier Classifier
	selector   *Selector
	timeout    time.Duration
}

func NewService(classifier Classifier, selector *Selector, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{classifier: classifier, selector: selector, timeout: timeout}
}

// Analyze validates text, classifies it once (single attempt, bounded by the
// service timeout) and returns the composed result. Classifier failures are
// wrapped as ErrClassifierUnavailable; callers decide whether to substitute
// Degraded(). Analyze itself never persists anything.
func (s *Service) Analyze(ctx context.Context, text string) (domain.AnalysisResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.AnalysisResult{}, ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLen {
		return domain.AnalysisResult{}, ErrTextTooLong
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.classifier.Classify(cctx, trimmed)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}

	scores := Aggregate(raw)
	emotion, confidence := Top(scores)

	return domain.AnalysisResult{
		Emotion:     emotion,
		Confidence:  confidence,
		Scores:      scores,
		TopWords:    TopWords(trimmed, 3),
		Affirmation: s.selector.Pick(emotion),
	}, nil
}

// Degraded returns the placeholder result used when the classifier is
// unavailable: a complete response shape with emotion "unknown".
func Degraded() domain.AnalysisResult {
	scores := make(map[string]float64, len(CanonicalLabels))
	for _, label := range CanonicalLabels {
		scores[label] = 0
	}
	return domain.AnalysisResult{
		Emotion:     EmotionUnknown,
		Confidence:  0,
		Scores:      scores,
		TopWords:    []string{},
		Affirmation: DegradedAffirmation,
	}
}
