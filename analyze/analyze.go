// Package analyze computes content analytics over dumped site text: word
// and contact statistics, heading structure reports, and basic SEO
// signals from raw HTML.
package analyze

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/wpextract"
)

var (
	wordPattern     = regexp.MustCompile(`\b[a-zA-Z]+\b`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

// stopWords are excluded from top-word rankings.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "between": true,
	"among": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"can": true, "this": true, "that": true, "these": true, "those": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "me": true, "him": true, "her": true, "us": true,
	"them": true,
}

// WordFreq is one entry in a top-word ranking.
type WordFreq struct {
	Word  string
	Count int
}

// TextStats holds the statistics computed for one text document.
type TextStats struct {
	WordCount         int
	CharCount         int
	LineCount         int
	SentenceCount     int
	AvgSentenceLength float64
	TopWords          []WordFreq
	Phones            []string
	Emails            []string
	URLs              []string
	Addresses         []string
	Readability       float64
}

// maxTopWords bounds the top-word ranking.
const maxTopWords = 20

// Text computes statistics for one text document. Empty input yields a
// zero-valued result.
func Text(text string) *TextStats {
	stats := &TextStats{}
	if text == "" {
		return stats
	}

	stats.WordCount = len(strings.Fields(text))
	stats.CharCount = len(text)
	stats.LineCount = len(strings.Split(text, "\n"))

	sentences := sentencePattern.Split(text, -1)
	stats.SentenceCount = len(sentences)
	var sentenceWords int
	for _, s := range sentences {
		sentenceWords += len(strings.Fields(s))
	}
	if stats.SentenceCount > 0 {
		stats.AvgSentenceLength = float64(sentenceWords) / float64(stats.SentenceCount)
	}

	stats.TopWords = topWords(text, maxTopWords)
	stats.Phones = unique(wpextract.PhonePattern.FindAllString(text, -1))
	stats.Emails = unique(wpextract.EmailPattern.FindAllString(text, -1))
	stats.URLs = unique(wpextract.URLPattern.FindAllString(text, -1))
	stats.Addresses = unique(wpextract.CityStateZipPattern.FindAllString(text, -1))
	stats.Readability = Readability(text)

	return stats
}

// topWords ranks the most frequent meaningful words, ties broken
// alphabetically for deterministic output.
func topWords(text string, n int) []WordFreq {
	counts := make(map[string]int)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if stopWords[w] || len(w) <= 2 {
			continue
		}
		counts[w]++
	}

	freqs := make([]WordFreq, 0, len(counts))
	for w, c := range counts {
		freqs = append(freqs, WordFreq{Word: w, Count: c})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Word < freqs[j].Word
	})

	if len(freqs) > n {
		freqs = freqs[:n]
	}
	return freqs
}

// Readability computes a Flesch reading-ease style score clamped to
// [0, 100]: higher is easier.
func Readability(text string) float64 {
	words := strings.Fields(text)
	sentences := sentencePattern.Split(text, -1)
	if len(words) == 0 || len(sentences) == 0 {
		return 0
	}

	avgWordsPerSentence := float64(len(words)) / float64(len(sentences))
	var syllables int
	for _, w := range words {
		syllables += countSyllables(w)
	}
	avgSyllablesPerWord := float64(syllables) / float64(len(words))

	score := 206.835 - 1.015*avgWordsPerSentence - 84.6*avgSyllablesPerWord
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// countSyllables approximates syllable count by vowel groups, with the
// silent-e adjustment.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		return 1
	}
	return count
}

// unique deduplicates while preserving first-seen order.
func unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
