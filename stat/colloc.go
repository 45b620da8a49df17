package stat

import (
	"math"
	"sort"
	"strings"

	"github.com/revelaction/annotext/stopword"
)

// Measure scores a bigram.
type Measure string

const (
	LikelihoodRatio Measure = "likelihood"
	PMI             Measure = "pmi"
)

const small = 1e-20

// CollocationOptions configure Collocations. Zero values take the defaults.
type CollocationOptions struct {
	// Window is the bigram window size, default 2 (adjacent words).
	Window int

	// MinFreq drops bigrams seen fewer times, default 2.
	MinFreq int

	// Top is the number of bigrams returned, default 20.
	Top int

	Measure Measure

	// Ignore drops bigrams with an ignored word. Default: words shorter
	// than 3 characters or English stop words.
	Ignore func(word string) bool
}

// Collocation is a scored word pair.
type Collocation struct {
	W1, W2 string
	Count  int
	Score  float64
}

func (c Collocation) String() string {
	return c.W1 + " " + c.W2
}

func (o CollocationOptions) withDefaults() CollocationOptions {
	if o.Window < 2 {
		o.Window = 2
	}
	if o.MinFreq <= 0 {
		o.MinFreq = 2
	}
	if o.Top <= 0 {
		o.Top = 20
	}
	if o.Measure == "" {
		o.Measure = LikelihoodRatio
	}
	if o.Ignore == nil {
		stop, err := stopword.Load("english")
		if err != nil {
			stop = stopword.Set{}
		}
		o.Ignore = func(w string) bool {
			return len([]rune(w)) < 3 || stop.Contains(w)
		}
	}
	return o
}

// Collocations finds the word pairs that occur together more often than
// chance. Results are sorted by score desc, then lexicographically.
func Collocations(words []string, opts CollocationOptions) []Collocation {
	opts = opts.withDefaults()

	wordFd := NewFreqDist(words...)

	type pair struct{ w1, w2 string }
	bigrams := map[pair]int{}
	for i, w1 := range words {
		for k := 1; k < opts.Window && i+k < len(words); k++ {
			bigrams[pair{w1, words[i+k]}]++
		}
	}

	n := float64(wordFd.N())
	var out []Collocation
	for p, count := range bigrams {
		if count < opts.MinFreq {
			continue
		}
		if opts.Ignore(p.w1) || opts.Ignore(p.w2) {
			continue
		}

		nii := float64(count) / float64(opts.Window-1)
		nix := float64(wordFd.Count(p.w1))
		nxi := float64(wordFd.Count(p.w2))

		var score float64
		switch opts.Measure {
		case PMI:
			score = pmi(nii, nix, nxi, n)
		default:
			score = likelihoodRatio(nii, nix, nxi, n)
		}

		out = append(out, Collocation{W1: p.w1, W2: p.w2, Count: count, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].W1 != out[j].W1 {
			return out[i].W1 < out[j].W1
		}
		return out[i].W2 < out[j].W2
	})

	if len(out) > opts.Top {
		out = out[:opts.Top]
	}
	return out
}

// contingency returns the 2x2 table (n_ii, n_oi, n_io, n_oo).
func contingency(nii, nix, nxi, nxx float64) [4]float64 {
	noi := nxi - nii
	nio := nix - nii
	return [4]float64{nii, noi, nio, nxx - nii - noi - nio}
}

func expected(cont [4]float64) [4]float64 {
	var total float64
	for _, c := range cont {
		total += c
	}

	var exp [4]float64
	for i := range cont {
		exp[i] = (cont[i] + cont[i^1]) * (cont[i] + cont[i^2]) / total
	}
	return exp
}

// likelihoodRatio is Dunning's log likelihood ratio.
func likelihoodRatio(nii, nix, nxi, nxx float64) float64 {
	cont := contingency(nii, nix, nxi, nxx)
	exp := expected(cont)

	var sum float64
	for i, obs := range cont {
		sum += obs * math.Log(obs/(exp[i]+small)+small)
	}
	return 2 * sum
}

// pmi is the pointwise mutual information in bits.
func pmi(nii, nix, nxi, nxx float64) float64 {
	return math.Log2(nii*nxx) - math.Log2(nix*nxi)
}

// FormatCollocations joins the pairs the way a text summary prints them.
func FormatCollocations(cs []Collocation) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, "; ")
}
