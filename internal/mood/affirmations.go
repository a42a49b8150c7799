package mood

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// FallbackAffirmation is returned when the table has no candidates for
	// a label. Kept stable so callers can assert on it.
	FallbackAffirmation = "Error, System Missing Response"

	// DegradedAffirmation accompanies the degraded result substituted when
	// the classifier is unavailable.
	DegradedAffirmation = "Analysis is unavailable right now. Be gentle with yourself and try again in a moment."
)

var affirmations = map[string][]string{
	"joy": {
		"Savor this feeling—you’ve earned it.",
		"Let yourself enjoy this moment without hesitation.",
		"Your light helps others find theirs.",
		"You deserve this peace and happiness.",
		"Stay open to joy—it reminds you what’s good in life.",
		"Keep this warmth close; you can return to it anytime.",
		"Gratitude deepens happiness; notice what’s right today.",
		"Happiness isn’t fragile—you’re allowed to feel good.",
		"Let your smile linger—it’s healing in itself.",
		"Be proud of how far you’ve come.",
	},
	"sad": {
		"It’s okay to feel low; you won’t feel this way forever.",
		"Tears are proof of your capacity to care.",
		"You’re healing, even if it feels slow.",
		"You’re not alone—others have felt this too.",
		"Gentleness with yourself is strength, not weakness.",
		"You’re allowed to rest; growth happens quietly too.",
		"This sadness will pass, but your depth will remain.",
		"Even in loss, you carry love forward.",
		"Your softness is not a flaw—it’s a superpower.",
		"Take this time to breathe and rebuild.",
	},
	"anger": {
		"Take a breath; your calm gives you control.",
		"Anger is information—listen to what it’s telling you.",
		"You have every right to feel this, but you choose peace.",
		"Your fire can fuel change, not destruction.",
		"Breathe before you act; power doesn’t need noise.",
		"Transform frustration into focus.",
		"You’re learning to respond, not just react.",
		"It’s okay to step away; calm is wisdom.",
		"You’re not your anger—you’re the awareness behind it.",
		"Let the storm pass before you steer.",
	},
	"anxiety": {
		"You’ve handled hard things before—this is another step.",
		"You are safe right now; breathe and notice your body.",
		"It’s okay to pause before you decide.",
		"You don’t have to have every answer today.",
		"Even uncertainty has room for peace.",
		"Breathe deeply—each exhale lets go of tension.",
		"You are capable of handling what’s ahead.",
		"Let thoughts float by; not all deserve your energy.",
		"It’s okay to take things one minute at a time.",
		"You’re not failing—you’re adapting.",
	},
	"neutral": {
		"You’re steady and present—a good place to be.",
		"Peace is a quiet kind of happiness.",
		"You don’t always need intensity; calm is beautiful too.",
		"Stillness is the soil where clarity grows.",
		"You’re centered, balanced, and enough.",
		"Not every moment needs meaning—this one simply is.",
		"Appreciate the calm before the next wave.",
		"Neutral moments can be grounding—stay with them.",
		"You’re recharging, even if it feels uneventful.",
		"This is your pause before progress.",
	},
}

// AffirmationTable returns a copy of the built-in affirmation table.
func AffirmationTable() map[string][]string {
	out := make(map[string][]string, len(affirmations))
	for k, v := range affirmations {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Selector picks a supportive affirmation for a mood label. Randomness is
// injected so tests can seed it; the internal *rand.Rand is guarded because
// it is not safe for concurrent use.
type Selector struct {
	table map[string][]string
	mu    sync.Mutex
	rng   *rand.Rand
}

// NewSelector builds a Selector over the given table. A nil table uses the
// built-in one; a nil rng is seeded from the clock.
func NewSelector(table map[string][]string, rng *rand.Rand) *Selector {
	if table == nil {
		table = affirmations
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{table: table, rng: rng}
}

// Pick returns one candidate for the label, chosen uniformly at random.
// A single-candidate entry is returned verbatim; a missing or empty entry
// yields FallbackAffirmation.
func (s *Selector) Pick(label string) string {
	opts := s.table[label]
	switch len(opts) {
	case 0:
		return FallbackAffirmation
	case 1:
		return opts[0]
	}
	s.mu.Lock()
	i := s.rng.Intn(len(opts))
	s.mu.Unlock()
	return opts[i]
}
