package mood

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Runs of letters, apostrophes and hyphens, at least two characters.
var wordPattern = regexp.MustCompile(`[A-Za-z][A-Za-z'-]+`)

var stopwords = buildStopwords(`
a an the and or but if then else when while for to of in on at by with from up down out over under again further
this that these those is are was were be been being have has had do does did not no nor very can will just
i you he she it we they me him her us them my your his its our their myself yourself himself herself itself
ourselves yourselves themselves as into about like so than too such only own same am
`)

func buildStopwords(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// TopWords extracts up to k salient words from text: lower-cased, stopwords
// removed, ordered by descending frequency, then descending token length,
// then alphabetically so that identical input always yields identical output.
func TopWords(text string, k int) []string {
	counts := make(map[string]int)
	normalized := strings.ToLower(norm.NFKC.String(text))
	for _, w := range wordPattern.FindAllString(normalized, -1) {
		if _, skip := stopwords[w]; skip {
			continue
		}
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		wi, wj := words[i], words[j]
		if counts[wi] != counts[wj] {
			return counts[wi] > counts[wj]
		}
		if len(wi) != len(wj) {
			return len(wi) > len(wj)
		}
		return wi < wj
	})

	if k < 0 {
		k = 0
	}
	if len(words) > k {
		words = words[:k]
	}
	return words
}
