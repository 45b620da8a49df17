package ner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/annotext/sentence"
)

// newDoc builds a doc from sentences of "word/TAG" pairs.
func newDoc(t *testing.T, sentences ...string) *sent.Doc {
	t.Helper()
	doc := &sent.Doc{}
	id := 0
	for si, s := range sentences {
		st := sent.Sentence{Id: si}
		for i, f := range strings.Fields(s) {
			k := strings.LastIndex(f, "/")
			require.Positive(t, k, f)
			st.Tokens = append(st.Tokens, sent.Token{
				Id:         id,
				Head:       id,
				Index:      i,
				SentenceId: si,
				Text:       f[:k],
				Lower:      strings.ToLower(f[:k]),
				Tag:        f[k+1:],
				SpaceAfter: true,
			})
			id++
		}
		doc.Sentences = append(doc.Sentences, st)
	}
	return doc
}

func TestRecognizerNames(t *testing.T) {
	doc := newDoc(t, "Barack/NNP Obama/NNP visited/VBD Paris/NNP ./.")

	require.NoError(t, NewRecognizer().Apply(doc))
	assert.Equal(t, []sent.Span{
		{Start: 0, End: 2, Label: NE},
		{Start: 3, End: 4, Label: NE},
	}, doc.Ents)
	assert.Equal(t, []string{"Barack Obama", "Paris"}, Extract(doc, NE))

	tok, _ := doc.Token(1)
	assert.Equal(t, "I", tok.EntIOB)
	assert.Equal(t, NE, tok.EntType)
	tok, _ = doc.Token(2)
	assert.Equal(t, "O", tok.EntIOB)
}

func TestRecognizerNumeric(t *testing.T) {
	doc := newDoc(t,
		"It/PRP costs/VBZ $/$ 5/CD million/CD ,/, about/IN 20/CD %/NN of/IN 300/CD units/NNS ./.",
		"Sales/NNS rose/VBD ten/CD per/IN cent/NN to/TO 40/CD dollars/NNS ./.",
	)

	r := NewRecognizer()
	require.NoError(t, r.Apply(doc))

	var got []string
	for _, e := range doc.Ents {
		got = append(got, e.Label+":"+doc.SpanText(e))
	}
	assert.Equal(t, []string{
		"MONEY:$ 5 million",
		"PERCENT:20 %",
		"CARDINAL:300",
		"PERCENT:ten per cent",
		"MONEY:40 dollars",
	}, got)
}

func TestRecognizerNumericOff(t *testing.T) {
	doc := newDoc(t, "We/PRP have/VBP 300/CD units/NNS")
	r := &Recognizer{}
	require.NoError(t, r.Apply(doc))
	assert.Empty(t, doc.Ents)
}

func TestResolve(t *testing.T) {
	spans := []sent.Span{
		{Start: 0, End: 2, Label: "A"},
		{Start: 1, End: 4, Label: "B"},
		{Start: 5, End: 6, Label: "C"},
		{Start: 5, End: 6, Label: "D"},
		{Start: 7, End: 7, Label: "E"},
	}
	assert.Equal(t, []sent.Span{
		{Start: 1, End: 4, Label: "B"},
		{Start: 5, End: 6, Label: "C"},
	}, Resolve(spans))
}

const rulerPatterns = `
{"label": "ORG", "pattern": "Apple"}
{"label": "GPE", "pattern": [{"LOWER": "san"}, {"LOWER": "francisco"}]}

{"label": "PERSON", "pattern": [{"lower": "tim"}, {"lower": "cook"}]}
`

func TestEntityRuler(t *testing.T) {
	patterns, err := LoadPatterns(strings.NewReader(rulerPatterns))
	require.NoError(t, err)
	require.Len(t, patterns, 3)

	r := NewEntityRuler(false)
	require.NoError(t, r.Add(patterns...))
	assert.Equal(t, 3, r.Len())

	doc := newDoc(t, "Tim/NNP Cook/NNP said/VBD Apple/NNP opens/VBZ in/IN San/NNP Francisco/NNP")
	require.NoError(t, r.Apply(doc))

	var got []string
	for _, e := range doc.Ents {
		got = append(got, e.Label+":"+doc.SpanText(e))
	}
	assert.Equal(t, []string{"PERSON:Tim Cook", "ORG:Apple", "GPE:San Francisco"}, got)
}

func TestEntityRulerOverwrite(t *testing.T) {
	doc := newDoc(t, "Tim/NNP Cook/NNP visited/VBD Apple/NNP")
	require.NoError(t, NewRecognizer().Apply(doc))
	require.Len(t, doc.Ents, 2)

	patterns := []EntityPattern{{Label: "ORG", Pattern: []byte(`"Apple"`)}}

	fill := NewEntityRuler(false)
	require.NoError(t, fill.Add(patterns...))
	require.NoError(t, fill.Apply(doc))
	assert.Equal(t, []string{"Apple"}, Extract(doc, NE)[1:])
	assert.Empty(t, Extract(doc, "ORG"))

	over := NewEntityRuler(true)
	require.NoError(t, over.Add(patterns...))
	require.NoError(t, over.Apply(doc))
	assert.Equal(t, []string{"Apple"}, Extract(doc, "ORG"))
	assert.Equal(t, []string{"Tim Cook"}, Extract(doc, NE))
	assert.Equal(t, []string{"Tim Cook", "Apple"}, Extract(doc, ""))
}

func TestEntityRulerErrors(t *testing.T) {
	r := NewEntityRuler(false)
	assert.Error(t, r.Add(EntityPattern{Pattern: []byte(`"x"`)}))
	assert.Error(t, r.Add(EntityPattern{Label: "X", Pattern: []byte(`42`)}))
	assert.Error(t, r.Add(EntityPattern{Label: "X", Pattern: []byte(`[]`)}))
	assert.Error(t, r.Add(EntityPattern{Label: "X", Pattern: []byte(`""`)}))

	_, err := LoadPatterns(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestWikipediaURL(t *testing.T) {
	doc := newDoc(t, "Tim/NNP Cook/NNP met/VBD AT&T/NNP on/IN Thursday/NNP")
	require.NoError(t, doc.SetEnts([]sent.Span{
		{Start: 0, End: 2, Label: "PERSON"},
		{Start: 3, End: 4, Label: "ORG"},
		{Start: 5, End: 6, Label: "DATE"},
	}))

	assert.Equal(t, "https://en.wikipedia.org/w/index.php?search=Tim_Cook", WikipediaURL(doc, doc.Ents[0]))
	assert.Equal(t, "https://en.wikipedia.org/w/index.php?search=AT%26T", WikipediaURL(doc, doc.Ents[1]))
	assert.Equal(t, "", WikipediaURL(doc, doc.Ents[2]))
	assert.Equal(t, "", WikipediaURL(doc, sent.Span{Start: 4, End: 9, Label: "ORG"}))
}
