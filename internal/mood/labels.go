package mood

import (
	"math"
	"strings"

	"happyminds/internal/domain"
)

// CanonicalLabels is the fixed set of moods the API reports, in tie-break
// order: when two labels reach the same probability, the earlier one wins.
var CanonicalLabels = []string{"joy", "sad", "anxiety", "anger", "neutral"}

// Distribution maps every canonical label to a normalized probability.
type Distribution map[string]float64

// modelToCanonical folds the classifier's native vocabulary into the five
// canonical moods. Keys are lower-cased; lookups must lower-case first.
// Unknown labels fall back to neutral in Aggregate.
var modelToCanonical = map[string]string{
	// joy / happiness
	"joy": "joy", "joyful": "joy", "happy": "joy", "happiness": "joy",
	"cheerful": "joy", "content": "joy", "contentment": "joy",
	"pleased": "joy", "satisfied": "joy", "delighted": "joy",
	"ecstatic": "joy", "elated": "joy", "enthusiastic": "joy",
	"excited": "joy", "grateful": "joy", "hopeful": "joy",
	"optimistic": "joy", "loving": "joy", "affectionate": "joy",
	"inspired": "joy", "proud": "joy", "playful": "joy",
	"amused": "joy", "blissful": "joy", "radiant": "joy",
	"thrilled": "joy", "joyous": "joy", "thankful": "joy",
	"wonder": "joy", "intrigued": "joy", "curiosity": "joy",

	// sadness / grief
	"sad": "sad", "sadness": "sad", "unhappy": "sad", "heartbroken": "sad",
	"disappointed": "sad", "hurt": "sad", "lonely": "sad",
	"grief": "sad", "grieving": "sad", "gloomy": "sad", "hopeless": "sad",
	"miserable": "sad", "depressed": "sad", "downcast": "sad",
	"sorrow": "sad", "melancholy": "sad", "regretful": "sad",
	"guilt": "sad", "ashamed": "sad", "shame": "sad",
	"tired": "sad", "drained": "sad", "lost": "sad",
	"disheartened": "sad", "forlorn": "sad", "discouraged": "sad",
	"mourning": "sad", "blue": "sad", "heavy": "sad",

	// anger / frustration
	"anger": "anger", "angry": "anger", "furious": "anger",
	"annoyed": "anger", "irritated": "anger", "resentful": "anger",
	"frustrated": "anger", "rage": "anger", "bitter": "anger",
	"jealous": "anger", "envious": "anger", "offended": "anger",
	"disgust": "anger", "disgusted": "anger", "hostile": "anger",
	"indignant": "anger", "vengeful": "anger", "agitated": "anger",
	"mad": "anger", "impatient": "anger", "hateful": "anger",
	"infuriated": "anger", "provoked": "anger", "irate": "anger",
	"irritation": "anger",

	// anxiety / fear
	"anxiety": "anxiety", "anxious": "anxiety", "worried": "anxiety",
	"fear": "anxiety", "fearful": "anxiety", "afraid": "anxiety",
	"terrified": "anxiety", "nervous": "anxiety", "uneasy": "anxiety",
	"tense": "anxiety", "stressed": "anxiety", "panicked": "anxiety",
	"insecure": "anxiety", "confused": "anxiety", "uncertain": "anxiety",
	"doubtful": "anxiety", "overwhelmed": "anxiety", "startled": "anxiety",
	"alarmed": "anxiety", "shaken": "anxiety", "apprehensive": "anxiety",
	"concerned": "anxiety", "distrustful": "anxiety", "perplexed": "anxiety",

	// neutral / calm / surprise
	"neutral": "neutral", "calm": "neutral", "relaxed": "neutral",
	"peaceful": "neutral", "balanced": "neutral", "okay": "neutral",
	"fine": "neutral", "indifferent": "neutral", "apathetic": "neutral",
	"blank": "neutral", "bored": "neutral", "composed": "neutral",
	"collected": "neutral", "stable": "neutral", "rested": "neutral",
	"serene": "neutral", "quiet": "neutral", "still": "neutral",
	"nonchalant": "neutral", "curious": "neutral", "pensive": "neutral",
	"accepting": "neutral", "surprised": "neutral", "shocked": "neutral",
	"amazed": "neutral", "astonished": "neutral", "surprise": "neutral",
}

// LabelMap returns a copy of the model-to-canonical vocabulary table.
func LabelMap() map[string]string {
	out := make(map[string]string, len(modelToCanonical))
	for k, v := range modelToCanonical {
		out[k] = v
	}
	return out
}

// Aggregate folds a raw classification into a canonical distribution.
// Unknown labels accumulate into neutral; duplicate raw labels mapping to
// the same bucket add up. Buckets are normalized by the raw total and then
// rounded to 4 decimals each (no renormalization after rounding). A raw
// input with no score mass yields an all-zero distribution.
func Aggregate(raw []domain.LabelScore) Distribution {
	agg := make(Distribution, len(CanonicalLabels))
	for _, label := range CanonicalLabels {
		agg[label] = 0
	}

	for _, item := range raw {
		canon, ok := modelToCanonical[strings.ToLower(item.Label)]
		if !ok {
			canon = "neutral"
		}
		agg[canon] += item.Score
	}

	total := 0.0
	for _, v := range agg {
		total += v
	}
	if total == 0 {
		total = 1.0
	}
	for k, v := range agg {
		agg[k] = round(v/total, 4)
	}
	return agg
}

// Top returns the dominant label and its probability. Ties resolve to the
// first label in CanonicalLabels order.
func Top(dist Distribution) (string, float64) {
	top := CanonicalLabels[0]
	for _, label := range CanonicalLabels[1:] {
		if dist[label] > dist[top] {
			top = label
		}
	}
	return top, dist[top]
}

func round(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}
