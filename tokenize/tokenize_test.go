package tokenize

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTokenizer(t testing.TB) *Tokenizer {
	tk, err := New()
	require.NoError(t, err)
	return tk
}

func TestSentences(t *testing.T) {
	tk := newTokenizer(t)

	got := tk.Sentences("This is my spaCy tutorial! It is short.")
	assert.Equal(t, []string{"This is my spaCy tutorial!", "It is short."}, got)
}

func TestWords(t *testing.T) {
	tk := newTokenizer(t)

	got := tk.Words("This is my spaCy tutorial!")
	assert.Equal(t, []string{"This", "is", "my", "spaCy", "tutorial", "!"}, got)
}

func TestSegmentOffsets(t *testing.T) {
	tk := newTokenizer(t)
	text := "London is expensive. Berlin is not!"

	segs := tk.Segment(text)
	require.Len(t, segs, 2)

	assert.Equal(t, 0, segs[0].Idx)
	assert.Equal(t, 21, segs[1].Idx)

	runes := []rune(text)
	for _, seg := range segs {
		for _, p := range seg.Pieces {
			src := string(runes[p.Idx : p.Idx+utf8.RuneCountInString(p.Text)])
			assert.Equal(t, p.Text, src)
		}
	}

	first := segs[0].Pieces
	assert.True(t, first[0].SpaceAfter)
	// "expensive" is followed by "."
	assert.False(t, first[2].SpaceAfter)
	// "." is followed by a space
	assert.True(t, first[3].SpaceAfter)
}

func TestSegmentEmpty(t *testing.T) {
	tk := newTokenizer(t)

	assert.Empty(t, tk.Segment(""))
	assert.Empty(t, tk.Segment("  \n\t "))
}

func TestSegmentUnicodeOffsets(t *testing.T) {
	tk := newTokenizer(t)
	text := "Él comió piñas. Ñandú corrió."

	runes := []rune(text)
	for _, seg := range tk.Segment(text) {
		for _, p := range seg.Pieces {
			require.LessOrEqual(t, p.Idx+utf8.RuneCountInString(p.Text), len(runes))
			assert.Equal(t, p.Text, string(runes[p.Idx:p.Idx+utf8.RuneCountInString(p.Text)]))
		}
	}
}

func TestFindRewrites(t *testing.T) {
	pos, n := find(`say "hi"`, "``")
	assert.Equal(t, 4, pos)
	assert.Equal(t, 1, n)

	pos, n = find("(a)", "-LRB-")
	assert.Equal(t, 0, pos)
	assert.Equal(t, 1, n)

	pos, _ = find("abc", "zz")
	assert.Equal(t, -1, pos)
}

func TestOffsetsMonotone(t *testing.T) {
	tk := newTokenizer(t)

	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`([A-Za-z]{1,8}[ .,!?]{1,2}){0,12}`).Draw(rt, "text")
		total := utf8.RuneCountInString(text)

		last := -1
		for _, seg := range tk.Segment(text) {
			for _, p := range seg.Pieces {
				if p.Idx < last {
					rt.Fatalf("offset %d before %d in %q", p.Idx, last, text)
				}
				if p.Idx > total {
					rt.Fatalf("offset %d out of %d in %q", p.Idx, total, text)
				}
				last = p.Idx
			}
		}
	})
}
