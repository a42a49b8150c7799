package classifier

import (
	"context"
	"sync"

	"github.com/jonreiter/govader"

	"happyminds/internal/domain"
)

// VADER is a local lexicon-based classifier so the service can run without
// any model endpoint. It converts govader polarity ratios into raw label
// scores; the aggregator then folds those into the canonical moods.
// Safe for concurrent use.
type VADER struct {
	sia *govader.SentimentIntensityAnalyzer
	mu  sync.Mutex
}

func NewVADER() *VADER {
	return &VADER{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADER) Classify(_ context.Context, text string) ([]domain.LabelScore, error) {
	v.mu.Lock()
	scores := v.sia.PolarityScores(text)
	v.mu.Unlock()

	return []domain.LabelScore{
		{Label: "joy", Score: scores.Positive},
		{Label: "neutral", Score: scores.Neutral},
		{Label: negativeLabel(scores.Compound, scores.Negative, scores.Neutral), Score: scores.Negative},
	}, nil
}

// negativeLabel attributes the negative mass to one raw emotion using the
// compound band: strong negatives split into anger vs fear by the neg/neu
// ratio, mild negatives read as sadness.
func negativeLabel(compound, neg, neu float64) string {
	if compound > -0.6 {
		return "sadness"
	}
	if neu > 0 && neg/neu > 1.5 {
		return "anger"
	}
	if neu > neg {
		return "fear"
	}
	return "anger"
}
