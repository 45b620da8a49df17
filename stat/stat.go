// Package stat computes corpus statistics: sentence length distributions,
// word frequencies, collocations, concordances and dispersion offsets.
package stat

import (
	"sort"

	sent "github.com/revelaction/annotext/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs               int
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the doc sentences to the stats. It can be called for
// several docs.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumDocs++
	for _, sentence := range doc.Sentences {
		h.AggregateSentence(sentence)
	}
}

// AggregateSentence adds only one sentence.
func (h *Handler) AggregateSentence(sentence sent.Sentence) {
	h.stats.NumSentences++
	h.stats.NumTokens += len(sentence.Tokens)
	h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++
	h.mean()
}

func (h *Handler) mean() {
	if h.stats.NumSentences == 0 {
		h.stats.TokensPerSentenceMean = 0
		return
	}
	h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
}

// Lengths returns the sentence lengths of the distribution in ascending
// order.
func (s Stats) Lengths() []int {
	lengths := make([]int, 0, len(s.TokensPerSentenceDis))
	for l := range s.TokensPerSentenceDis {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}
