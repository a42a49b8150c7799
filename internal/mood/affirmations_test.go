package mood

import (
	"math/rand"
	"testing"
)

func TestPickSeededReproducible(t *testing.T) {
	for _, label := range CanonicalLabels {
		a := NewSelector(nil, rand.New(rand.NewSource(42)))
		b := NewSelector(nil, rand.New(rand.NewSource(42)))
		for i := 0; i < 20; i++ {
			got, want := a.Pick(label), b.Pick(label)
			if got != want {
				t.Fatalf("label %q pick %d diverged: %q vs %q", label, i, got, want)
			}
		}
	}
}

func TestPickReturnsCandidateFromTable(t *testing.T) {
	sel := NewSelector(nil, rand.New(rand.NewSource(1)))
	candidates := AffirmationTable()["anxiety"]
	got := sel.Pick("anxiety")
	for _, c := range candidates {
		if got == c {
			return
		}
	}
	t.Fatalf("pick %q is not in the anxiety table", got)
}

func TestPickSingleCandidateVerbatim(t *testing.T) {
	sel := NewSelector(map[string][]string{"joy": {"only one"}}, rand.New(rand.NewSource(1)))
	if got := sel.Pick("joy"); got != "only one" {
		t.Fatalf("got %q, want the single candidate verbatim", got)
	}
}

func TestPickMissingOrEmptyFallsBack(t *testing.T) {
	sel := NewSelector(map[string][]string{"sad": {}}, rand.New(rand.NewSource(1)))
	if got := sel.Pick("sad"); got != FallbackAffirmation {
		t.Fatalf("empty entry: got %q, want fallback", got)
	}
	if got := sel.Pick("unknown"); got != FallbackAffirmation {
		t.Fatalf("missing entry: got %q, want fallback", got)
	}
}

func TestAffirmationTableReturnsCopy(t *testing.T) {
	table := AffirmationTable()
	table["joy"][0] = "mutated"
	if affirmations["joy"][0] == "mutated" {
		t.Fatalf("mutating the table copy leaked into the static table")
	}
}
