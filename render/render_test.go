package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/annotext/match"
	sent "github.com/revelaction/annotext/sentence"
)

// tokens builds a sentence from space separated words with lemma equal to
// the lower cased word.
func tokens(text string) []sent.Token {
	var out []sent.Token
	idx := 0
	for i, w := range strings.Split(text, " ") {
		out = append(out, sent.Token{Id: i, Index: i, Idx: idx, Text: w, Lemma: strings.ToLower(w)})
		idx += len([]rune(w)) + 1
	}
	return out
}

func sentenceMatch(rule, text string, n int, matched ...int) *match.SentenceMatch {
	toks := tokens(text)
	var tuple []sent.Token
	for _, i := range matched {
		tuple = append(tuple, toks[i])
	}
	return &match.SentenceMatch{
		RuleName: rule,
		NumExprs: n,
		Sentence: sent.Sentence{Id: 3, DocId: 1, Tokens: toks},
		Matches:  []match.ExprMatch{{Tokens: [][]sent.Token{tuple}}},
	}
}

func TestSentenceString(t *testing.T) {
	r := NewRenderer(nil)
	toks := tokens("Cuando me vio abrir los ojos")
	assert.Equal(t, "Cuando me vio abrir los ojos", r.SentenceString(toks, nil))

	r.HasColor = true
	assert.Equal(t, "Cuando me "+Green256+"vio"+Off+" abrir los ojos", r.SentenceString(toks, toks[2:3]))
}

func TestSentenceBlindedString(t *testing.T) {
	r := NewRenderer(nil)
	toks := tokens("la casa era grande")
	assert.Equal(t, "la ### era grande", r.SentenceBlindedString(toks, toks[1:2]))
}

func TestMatchFormats(t *testing.T) {
	results := []*match.SentenceMatch{
		sentenceMatch("tiempo", "a b c d e f g h i j k l m n o p", 2, 8),
		sentenceMatch("tiempo", "Cuando me vio", 1, 0, 2),
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	require.NoError(t, r.Match(results))
	assert.Equal(t, "a b c d e f g h i j k l m n o p\nCuando me vio\n", buf.String())

	buf.Reset()
	r.Format = "part"
	require.NoError(t, r.Match(results[:1]))
	assert.Equal(t, "c d e f g h i j k l m n o\n", buf.String())

	buf.Reset()
	r.Format = "lemma"
	require.NoError(t, r.Match(results))
	assert.Equal(t, "i\ncuando vio\n", buf.String())

	buf.Reset()
	r.NumMatches = 2
	r.Format = "all"
	require.NoError(t, r.Match(results))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestMatchAggr(t *testing.T) {
	results := []*match.SentenceMatch{
		sentenceMatch("r", "Cuando me vio", 1, 0, 2),
		sentenceMatch("r", "cuando vio el mar", 1, 0, 1),
		sentenceMatch("r", "la casa", 1, 1),
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Format = "aggr"
	r.HasPrefix = true
	require.NoError(t, r.Match(results))
	assert.Equal(t, "[    2] ✍  cuando vio\n[    1] ✍  casa\n", buf.String())
}

func TestMatchPrefix(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.HasPrefix = true
	r.AddDocName(1, "quijote")
	require.NoError(t, r.Match([]*match.SentenceMatch{sentenceMatch("tiempo", "Cuando me vio", 1, 0)}))

	out := buf.String()
	assert.Contains(t, out, "quijote")
	assert.Contains(t, out, "tiempo")
	assert.True(t, strings.HasSuffix(out, "Cuando me vio\n"))

	buf.Reset()
	r.PrefixDocFunc = PrefixFuncIconHand
	r.PrefixRuleFunc = PrefixFuncEmpty
	require.NoError(t, r.Match([]*match.SentenceMatch{sentenceMatch("tiempo", "Cuando me vio", 1, 0)}))
	assert.Equal(t, " 3 ✍  Cuando me vio\n", buf.String())
}

func TestNextFormatPrefix(t *testing.T) {
	r := NewRenderer(nil)
	var got []string
	for range SupportedFormats() {
		r.NextFormat()
		got = append(got, r.Format)
	}
	assert.Equal(t, []string{"part", "lemma", "aggr", "all"}, got)

	r.Format = "bogus"
	r.NextFormat()
	assert.Equal(t, "all", r.Format)

	r.NextPrefix()
	assert.True(t, r.HasPrefix)
	r.NextPrefix()
	assert.False(t, r.HasPrefix)
}
