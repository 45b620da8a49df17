package pattern

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	p, err := Parse([]string{"cuando", "3", "VERB"})
	require.NoError(t, err)
	assert.Equal(t, Pattern{{Lemma: "cuando"}, {Tag: "VERB", Near: 3}}, p)

	p, err = Parse([]string{"ir|venir", "!no", "POS=NOUN,OP=+"})
	require.NoError(t, err)
	assert.Equal(t, Pattern{{Lemma: "ir|venir"}, {Lemma: "!no"}, {Pos: "NOUN", Op: "+"}}, p)

	p, err = Parse([]string{"LOWER=apple,IS_STOP=false"})
	require.NoError(t, err)
	require.NotNil(t, p[0].IsStop)
	assert.False(t, *p[0].IsStop)
	assert.Equal(t, "apple", p[0].Lower)
}

func TestParseErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"3", "casa"},
		{"casa", "3", "4", "VERB"},
		{"casa", "3"},
		{"casa", "-2", "VERB"},
		{"FOO=bar"},
		{"POS=NOUN,VERB"},
		{"OP=%"},
		{"IS_ALPHA=maybe"},
		{"casa", "2", "POS=NOUN,OP=*"},
		{"a||b"},
		{"!"},
		{""},
	} {
		_, err := Parse(args)
		assert.ErrorIs(t, err, ErrInvalid, strings.Join(args, " "))
	}
}

func TestString(t *testing.T) {
	p := Pattern{{Lemma: "cuando"}, {Tag: "VERB", Near: 3}, {Pos: "NOUN", Op: "?"}, {}}
	assert.Equal(t, "cuando 3 VERB POS=NOUN,OP=? OP=1", p.String())

	p = Pattern{{Lemma: "Madrid"}, {Tag: "verb"}, {Lemma: "42"}}
	assert.Equal(t, "LEMMA=Madrid TAG=verb LEMMA=42", p.String())
}

func TestStringParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[a-zA-Z][a-z]{0,6}`)
		flag := rapid.Ptr(rapid.Bool(), true)

		n := rapid.IntRange(1, 5).Draw(t, "n")
		var p Pattern
		for i := 0; i < n; i++ {
			item := Item{
				Lemma:   rapid.OneOf(rapid.Just(""), word).Draw(t, "lemma"),
				Tag:     rapid.OneOf(rapid.Just(""), word).Draw(t, "tag"),
				Pos:     rapid.OneOf(rapid.Just(""), rapid.SampledFrom([]string{"NOUN", "VERB"})).Draw(t, "pos"),
				IsAlpha: flag.Draw(t, "alpha"),
				Op:      rapid.SampledFrom([]string{"", "!", "?", "+", "*"}).Draw(t, "op"),
			}
			if i > 0 && item.Op == "" {
				item.Near = rapid.IntRange(0, 4).Draw(t, "near")
			}
			p = append(p, item)
		}

		parsed, err := Parse(strings.Fields(p.String()))
		if err != nil {
			t.Fatalf("parse %q: %v", p.String(), err)
		}
		if !Equal(p, parsed) {
			t.Fatalf("round trip %q: got %q", p.String(), parsed.String())
		}
	})
}

func TestLemmas(t *testing.T) {
	p := Pattern{
		{Lemma: "casa"},
		{Lemma: "!no"},
		{Lemma: "ir|venir"},
		{Lemma: "grande", Op: "?"},
		{Lemma: "casa", Near: 2},
		{Lemma: "rojo", Op: "+"},
		{Tag: "VERB"},
	}
	assert.Equal(t, []string{"casa", "rojo"}, p.Lemmas())

	r := Rule{Name: "r", Patterns: []Pattern{p, {{Tag: "NOUN"}}, {{Lemma: "mar"}}}}
	assert.Equal(t, [][]string{{"casa", "rojo"}, {"mar"}}, r.LemmaSets())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Pattern{{Lemma: "a"}, {Tag: "B", Near: 2}}.Validate())
	assert.NoError(t, Pattern{{}}.Validate())
	assert.ErrorIs(t, Pattern{}.Validate(), ErrInvalid)
	assert.ErrorIs(t, Pattern{{Lemma: "a", Near: 1}}.Validate(), ErrInvalid)
	assert.ErrorIs(t, Pattern{{Lemma: "a"}, {Tag: "B", Near: 1, Op: "+"}}.Validate(), ErrInvalid)
	assert.ErrorIs(t, Pattern{{Tag: "A+"}}.Validate(), ErrInvalid)

	err := Rule{Name: "r", Patterns: []Pattern{{{Op: "x"}}}}.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, Rule{}.Validate(), ErrInvalid)
}

func TestEqual(t *testing.T) {
	yes, alsoYes := true, true
	a := Pattern{{Lemma: "a", IsAlpha: &yes}, {Tag: "B", Op: "1"}}
	b := Pattern{{Lemma: "a", IsAlpha: &alsoYes}, {Tag: "B"}}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, b[:1]))
	assert.False(t, Equal(Pattern{{Lemma: "a"}, {Lemma: "b"}}, Pattern{{Lemma: "b"}, {Lemma: "a"}}))
	assert.False(t, EqualItem(Item{IsAlpha: &yes}, Item{}))

	r := Rule{Name: "r", Patterns: []Pattern{a}}
	assert.Equal(t, 0, r.Index(b))
	assert.Equal(t, -1, r.Index(Pattern{{Lemma: "z"}}))
}

func TestUnmarshalCaseInsensitive(t *testing.T) {
	data := `[[{"lemma":"cuando"},{"near":3,"tag":"VERB"}],[{"LOWER":"hola","OP":"+"}]]`

	var patterns []Pattern
	require.NoError(t, json.Unmarshal([]byte(data), &patterns))
	require.Len(t, patterns, 2)
	assert.Equal(t, Pattern{{Lemma: "cuando"}, {Near: 3, Tag: "VERB"}}, patterns[0])
	assert.Equal(t, Pattern{{Lower: "hola", Op: "+"}}, patterns[1])

	out, err := json.Marshal(patterns[0])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"LEMMA":"cuando"},{"NEAR":3,"TAG":"VERB"}]`, string(out))
}

func TestLibrary(t *testing.T) {
	l := Library{{Name: "a"}, {Name: "b"}}
	assert.Equal(t, []string{"a", "b"}, l.Names())

	r, ok := l.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "b", r.Name)

	_, ok = l.Get("c")
	assert.False(t, ok)
}
