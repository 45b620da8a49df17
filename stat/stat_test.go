package stat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/annotext/sentence"
)

func sentenceOf(n int) sent.Sentence {
	return sent.Sentence{Tokens: make([]sent.Token, n)}
}

func TestAggregate(t *testing.T) {
	h := NewHandler()
	h.Aggregate(sent.Doc{Sentences: []sent.Sentence{sentenceOf(3), sentenceOf(5)}})
	h.Aggregate(sent.Doc{Sentences: []sent.Sentence{sentenceOf(5)}})

	s := h.Get()
	assert.Equal(t, 2, s.NumDocs)
	assert.Equal(t, 3, s.NumSentences)
	assert.Equal(t, 13, s.NumTokens)
	assert.Equal(t, 4, s.TokensPerSentenceMean)
	assert.Equal(t, map[int]int{3: 1, 5: 2}, s.TokensPerSentenceDis)
	assert.Equal(t, []int{3, 5}, s.Lengths())
}

func TestAggregateEmpty(t *testing.T) {
	h := NewHandler()
	h.Aggregate(sent.Doc{})

	s := h.Get()
	assert.Equal(t, 1, s.NumDocs)
	assert.Zero(t, s.NumSentences)
	assert.Zero(t, s.TokensPerSentenceMean)
	assert.Empty(t, s.Lengths())
}

func TestFreqDist(t *testing.T) {
	f := NewFreqDist(strings.Fields("b a c a b d a")...)

	assert.Equal(t, 7, f.N())
	assert.Equal(t, 4, f.B())
	assert.Equal(t, 3, f.Count("a"))
	assert.Zero(t, f.Count("z"))
	assert.InDelta(t, 3.0/7.0, f.Freq("a"), 1e-9)

	// b and a were seen before c and d
	assert.Equal(t, []Sample{{"a", 3}, {"b", 2}, {"c", 1}}, f.MostCommon(3))
	assert.Len(t, f.MostCommon(0), 4)
	assert.Equal(t, []string{"c", "d"}, f.Hapaxes())

	w, ok := f.Max()
	assert.True(t, ok)
	assert.Equal(t, "a", w)

	f.Add("d", "d", "d")
	w, _ = f.Max()
	assert.Equal(t, "d", w)
}

func TestFreqDistEmpty(t *testing.T) {
	f := NewFreqDist()
	assert.Zero(t, f.Freq("a"))
	_, ok := f.Max()
	assert.False(t, ok)
	assert.Empty(t, f.MostCommon(5))
}

const collocText = `the New York office and the red car team met in New York while
the red car drove to New York and an old man saw it`

func TestCollocations(t *testing.T) {
	words := strings.Fields(collocText)

	got := Collocations(words, CollocationOptions{})
	require.Len(t, got, 2)

	var pairs []string
	for _, c := range got {
		pairs = append(pairs, c.String())
	}
	assert.ElementsMatch(t, []string{"New York", "red car"}, pairs)
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)
	assert.Positive(t, got[0].Score)

	assert.Equal(t, got[0].String()+"; "+got[1].String(), FormatCollocations(got))
}

func TestCollocationsOptions(t *testing.T) {
	words := strings.Fields(collocText)

	got := Collocations(words, CollocationOptions{Measure: PMI, Top: 1})
	require.Len(t, got, 1)
	assert.Positive(t, got[0].Score)

	got = Collocations(words, CollocationOptions{MinFreq: 3})
	require.Len(t, got, 1)
	assert.Equal(t, "New York", got[0].String())
	assert.Equal(t, 3, got[0].Count)

	none := func(string) bool { return false }
	got = Collocations(words, CollocationOptions{Ignore: none, Top: 100})
	assert.Greater(t, len(got), 2)

	// a wider window pairs words one apart
	got = Collocations(strings.Fields("alpha x beta alpha y beta"), CollocationOptions{Window: 3, Ignore: none})
	require.Len(t, got, 1)
	assert.Equal(t, "alpha beta", got[0].String())

	assert.Empty(t, Collocations(nil, CollocationOptions{}))
}

func TestConcordance(t *testing.T) {
	words := strings.Fields("the cat sat on the mat and the Cat ran")

	lines, total := Concordance(words, "cat", 30, 0)
	require.Equal(t, 2, total)
	require.Len(t, lines, 2)

	assert.Equal(t, "         the cat sat on the m", lines[0].Line)
	assert.Equal(t, 1, lines[0].Offset)
	assert.Equal(t, " mat and the Cat ran", lines[1].Line)
	assert.Equal(t, "Cat", lines[1].Query)

	lines, total = Concordance(words, "CAT", 30, 1)
	assert.Equal(t, 2, total)
	assert.Len(t, lines, 1)

	lines, total = Concordance(words, "the mat", 0, 0)
	require.Equal(t, 1, total)
	assert.Equal(t, "the mat", lines[0].Query)
	assert.Equal(t, []string{"and", "the", "Cat", "ran"}, lines[0].Right)

	lines, total = Concordance(words, "dog", 0, 0)
	assert.Zero(t, total)
	assert.Empty(t, lines)

	_, total = Concordance(words, " ", 0, 0)
	assert.Zero(t, total)
}

func TestDispersion(t *testing.T) {
	words := strings.Fields("eyes head eyes kiss Eyes")
	d := Dispersion(words, []string{"eyes", "kiss", "nose"})

	assert.Equal(t, map[string][]int{
		"eyes": {0, 2},
		"kiss": {3},
		"nose": {},
	}, d)
}
