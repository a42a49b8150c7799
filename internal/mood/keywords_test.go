package mood

import (
	"reflect"
	"testing"
)

func TestTopWordsFrequencyThenLength(t *testing.T) {
	got := TopWords("I am happy happy sad", 3)
	want := []string{"happy", "sad"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopWords=%v, want %v", got, want)
	}
}

func TestTopWordsEmptyText(t *testing.T) {
	got := TopWords("", 3)
	if len(got) != 0 {
		t.Fatalf("TopWords on empty text = %v, want empty", got)
	}
}

func TestTopWordsDropsStopwordsAndShortTokens(t *testing.T) {
	got := TopWords("I x at a grateful", 3)
	want := []string{"grateful"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopWords=%v, want %v", got, want)
	}
}

func TestTopWordsKeepsApostrophesAndHyphens(t *testing.T) {
	got := TopWords("don't don't worry self-care", 2)
	want := []string{"don't", "self-care"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopWords=%v, want %v", got, want)
	}
}

func TestTopWordsTruncatesToK(t *testing.T) {
	got := TopWords("alpha bravo charlie delta echo", 3)
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3", len(got))
	}
}

func TestTopWordsDeterministic(t *testing.T) {
	text := "calm walk calm rain rain work peace"
	first := TopWords(text, 3)
	for i := 0; i < 10; i++ {
		if got := TopWords(text, 3); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
