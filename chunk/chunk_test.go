package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/annotext/postag"
	sent "github.com/revelaction/annotext/sentence"
)

var dogSentence = []postag.Tagged{
	{Text: "the", Tag: "DT"},
	{Text: "little", Tag: "JJ"},
	{Text: "yellow", Tag: "JJ"},
	{Text: "dog", Tag: "NN"},
	{Text: "barked", Tag: "VBD"},
	{Text: "at", Tag: "IN"},
	{Text: "the", Tag: "DT"},
	{Text: "cat", Tag: "NN"},
}

func TestParseChunk(t *testing.T) {
	p, err := NewParser("NP: {<DT>?<JJ>*<NN>}")
	require.NoError(t, err)

	tree := p.Parse(dogSentence)
	assert.Equal(t, "(S (NP the/DT little/JJ yellow/JJ dog/NN) barked/VBD at/IN (NP the/DT cat/NN))", tree.String())

	spans := tree.Spans("NP")
	assert.Equal(t, []sent.Span{
		{Start: 0, End: 4, Label: "NP"},
		{Start: 6, End: 8, Label: "NP"},
	}, spans)
	assert.Equal(t, "the little yellow dog", tree.Subtrees("NP")[0].Text())
}

func TestParseChink(t *testing.T) {
	grammar := `
NP:
    {<.*>+}          # chunk everything
    }<VBD|IN>+{      # chink verbs and prepositions
`
	p, err := NewParser(grammar)
	require.NoError(t, err)

	tree := p.Parse(dogSentence)
	assert.Equal(t, "(S (NP the/DT little/JJ yellow/JJ dog/NN) barked/VBD at/IN (NP the/DT cat/NN))", tree.String())
}

func TestParseChinkEdges(t *testing.T) {
	p, err := NewParser("NP: {<.*>+}\n}<DT>{")
	require.NoError(t, err)

	tree := p.Parse(dogSentence)
	assert.Equal(t, "(S the/DT (NP little/JJ yellow/JJ dog/NN barked/VBD at/IN) the/DT (NP cat/NN))", tree.String())
}

func TestParseStages(t *testing.T) {
	grammar := `
NP: {<DT>?<JJ>*<NN>}
PP: {<IN>}
VP: {<VBD>}
`
	p, err := NewParser(grammar)
	require.NoError(t, err)
	assert.Equal(t, []string{"NP", "PP", "VP"}, p.Labels())

	tree := p.Parse(dogSentence)
	assert.Equal(t, "(S (NP the/DT little/JJ yellow/JJ dog/NN) (VP barked/VBD) (PP at/IN) (NP the/DT cat/NN))", tree.String())
	assert.Len(t, tree.Subtrees(""), 4)
	assert.Len(t, tree.Leaves(), len(dogSentence))
}

func TestParseWildcardStaysInTag(t *testing.T) {
	tagged := []postag.Tagged{
		{Text: "dogs", Tag: "NNS"},
		{Text: "run", Tag: "VBP"},
		{Text: "Rome", Tag: "NNP"},
	}

	p, err := NewParser("NP: {<NN.*>}")
	require.NoError(t, err)

	assert.Equal(t, "(S (NP dogs/NNS) run/VBP (NP Rome/NNP))", p.Parse(tagged).String())

	p, err = NewParser("NP: {<NN>}")
	require.NoError(t, err)
	assert.Empty(t, p.Parse(tagged).Spans(""))
}

func TestParseAdjacentChunks(t *testing.T) {
	tagged := []postag.Tagged{
		{Text: "dogs", Tag: "NNS"},
		{Text: "cats", Tag: "NNS"},
	}

	p, err := NewParser("NP: {<NNS>}")
	require.NoError(t, err)

	tree := p.Parse(tagged)
	assert.Equal(t, "(S (NP dogs/NNS) (NP cats/NNS))", tree.String())
}

func TestParseTokens(t *testing.T) {
	p, err := NewParser(NounChunks)
	require.NoError(t, err)

	tokens := []sent.Token{
		{Id: 0, Text: "My", Tag: "PRP$"},
		{Id: 1, Text: "old", Tag: "JJ"},
		{Id: 2, Text: "car", Tag: "NN"},
		{Id: 3, Text: "broke", Tag: "VBD"},
	}

	assert.Equal(t, []sent.Span{{Start: 0, End: 3, Label: "NP"}}, p.ParseTokens(tokens).Spans("NP"))
}

func TestParseEmpty(t *testing.T) {
	p, err := NewParser(NounChunks)
	require.NoError(t, err)

	assert.Equal(t, "(S)", p.Parse(nil).String())
}

func TestNewParserErrors(t *testing.T) {
	for _, grammar := range []string{
		"",
		"# only a comment",
		"{<NN>}",
		"NP: {<NN>",
		"NP: {<NN>>}",
		"NP: {<<NN>>}",
		"NP: {<NN>(}",
		"NP: <NN>",
		"NP: {}",
	} {
		_, err := NewParser(grammar)
		assert.ErrorIs(t, err, ErrGrammar, grammar)
	}
}

func TestStripComment(t *testing.T) {
	assert.Equal(t, "{<#><CD>}", stripComment("{<#><CD>}"))
	assert.Equal(t, "{<NN>}", stripComment("{<NN>} # nouns"))
	assert.Equal(t, "", stripComment("# nothing"))
}
