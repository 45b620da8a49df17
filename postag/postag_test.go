package postag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	tagger := NewTagger()

	words := []string{"The", "little", "dog", "barked", "."}
	tagged := tagger.Tag(words)
	require.Len(t, tagged, len(words))

	for i, tg := range tagged {
		assert.Equal(t, words[i], tg.Text)
		assert.NotEmpty(t, tg.Tag)
	}

	assert.Equal(t, "DT", tagged[0].Tag)
	assert.Equal(t, "NN", tagged[2].Tag)
	assert.Equal(t, ".", tagged[4].Tag)
}

func TestTagEmpty(t *testing.T) {
	assert.Empty(t, NewTagger().Tag(nil))
}

func TestUniversal(t *testing.T) {
	assert.Equal(t, "PROPN", Universal("NNP"))
	assert.Equal(t, "VERB", Universal("VBZ"))
	assert.Equal(t, "PUNCT", Universal("."))
	assert.Equal(t, "X", Universal("???"))

	assert.Equal(t, "AUX", UniversalFor("is", "VBZ", "VBG"))
	assert.Equal(t, "AUX", UniversalFor("is", "VBZ", "PRP$"))
	assert.Equal(t, "AUX", UniversalFor("Was", "VBD", "JJ"))
	assert.Equal(t, "AUX", UniversalFor("has", "VBZ", "VBN"))
	assert.Equal(t, "VERB", UniversalFor("has", "VBZ", "DT"))
	assert.Equal(t, "VERB", UniversalFor("buys", "VBZ", "VBG"))
	assert.Equal(t, "NOUN", UniversalFor("dog", "NN", "VBD"))
}

func TestExplain(t *testing.T) {
	assert.Equal(t, "direct object", Explain("dobj"))
	assert.Equal(t, "noun, proper singular", Explain("NNP"))
	assert.Equal(t, "Countries, cities, states", Explain("gpe"))
	assert.Equal(t, "proper noun", Explain("PROPN"))
	assert.Empty(t, Explain("nonsense"))
}
