package stat

import "sort"

// FreqDist counts the outcomes of an experiment, usually word occurrences.
type FreqDist struct {
	counts map[string]int

	// first-seen order, used to break count ties
	order []string
	n     int
}

// Sample is a word and its count.
type Sample struct {
	Word  string
	Count int
}

func NewFreqDist(words ...string) *FreqDist {
	f := &FreqDist{counts: map[string]int{}}
	f.Add(words...)
	return f
}

func (f *FreqDist) Add(words ...string) {
	for _, w := range words {
		if _, ok := f.counts[w]; !ok {
			f.order = append(f.order, w)
		}
		f.counts[w]++
		f.n++
	}
}

func (f *FreqDist) Count(word string) int {
	return f.counts[word]
}

// N returns the total number of outcomes.
func (f *FreqDist) N() int {
	return f.n
}

// B returns the number of distinct outcomes (bins).
func (f *FreqDist) B() int {
	return len(f.counts)
}

// Freq returns the relative frequency of word, 0 for an empty
// distribution.
func (f *FreqDist) Freq(word string) float64 {
	if f.n == 0 {
		return 0
	}
	return float64(f.counts[word]) / float64(f.n)
}

// MostCommon returns the n most frequent words. Ties keep the first-seen
// order. n <= 0 returns all.
func (f *FreqDist) MostCommon(n int) []Sample {
	samples := make([]Sample, len(f.order))
	for i, w := range f.order {
		samples[i] = Sample{Word: w, Count: f.counts[w]}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Count > samples[j].Count
	})

	if n > 0 && n < len(samples) {
		samples = samples[:n]
	}
	return samples
}

// Hapaxes returns the words that occur once, in first-seen order.
func (f *FreqDist) Hapaxes() []string {
	var out []string
	for _, w := range f.order {
		if f.counts[w] == 1 {
			out = append(out, w)
		}
	}
	return out
}

// Max returns the most frequent word.
func (f *FreqDist) Max() (string, bool) {
	mc := f.MostCommon(1)
	if len(mc) == 0 {
		return "", false
	}
	return mc[0].Word, true
}
