// Package tokenize splits raw text into sentences and words and aligns every
// word with its offset in the source text.
package tokenize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	prose "github.com/jdkato/prose/tokenize"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// alternative source spellings of tokens the treebank tokenizer rewrites
var rewrites = map[string][]string{
	"``":    {`"`, "“", "``"},
	"''":    {`"`, "”", "''"},
	"-LRB-": {"("},
	"-RRB-": {")"},
	"-LSB-": {"["},
	"-RSB-": {"]"},
	"-LCB-": {"{"},
	"-RCB-": {"}"},
}

// Piece is a word of a sentence with its rune offset in the whole text.
type Piece struct {
	Text       string
	Idx        int
	SpaceAfter bool
}

// Segment is a sentence of the text with its rune offset and words.
type Segment struct {
	Text   string
	Idx    int
	Pieces []Piece
}

// Tokenizer combines a Punkt sentence tokenizer with a Penn Treebank word
// tokenizer.
type Tokenizer struct {
	sents *sentences.DefaultSentenceTokenizer
	words *prose.TreebankWordTokenizer
}

func New() (*Tokenizer, error) {
	st, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt model: %w", err)
	}

	return &Tokenizer{
		sents: st,
		words: prose.NewTreebankWordTokenizer(),
	}, nil
}

// Sentences returns the sentences of text.
func (t *Tokenizer) Sentences(text string) []string {
	var out []string
	for _, seg := range t.Segment(text) {
		out = append(out, seg.Text)
	}
	return out
}

// Words returns the word tokens of text, sentence by sentence.
func (t *Tokenizer) Words(text string) []string {
	var out []string
	for _, seg := range t.Segment(text) {
		for _, p := range seg.Pieces {
			out = append(out, p.Text)
		}
	}
	return out
}

// Segment splits text into sentences of aligned words. Offsets are in runes.
func (t *Tokenizer) Segment(text string) []Segment {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var segs []Segment
	// byte cursor in text
	cursor := 0
	for _, s := range t.sents.Tokenize(text) {
		st := strings.TrimSpace(s.Text)
		if st == "" {
			continue
		}

		start := strings.Index(text[cursor:], st)
		if start < 0 {
			// the punkt offsets are a fallback only
			start = clamp(s.Start, cursor, len(text)) - cursor
		}
		start += cursor
		end := min(start+len(st), len(text))

		seg := Segment{
			Text: st,
			Idx:  utf8.RuneCountInString(text[:start]),
		}
		seg.Pieces = t.align(text, start, end, t.words.Tokenize(st))
		segs = append(segs, seg)

		cursor = end
	}

	return segs
}

// align finds each word of the sentence text[from:to] in the source.
func (t *Tokenizer) align(text string, from, to int, words []string) []Piece {
	pieces := make([]Piece, 0, len(words))
	cursor := from
	for _, w := range words {
		if w == "" {
			continue
		}

		pos, n := find(text[cursor:to], w)
		if pos < 0 {
			pieces = append(pieces, Piece{Text: w, Idx: utf8.RuneCountInString(text[:cursor])})
			continue
		}

		pos += cursor
		end := pos + n
		pieces = append(pieces, Piece{
			Text:       w,
			Idx:        utf8.RuneCountInString(text[:pos]),
			SpaceAfter: end < len(text) && isSpaceAt(text, end),
		})
		cursor = end
	}

	return pieces
}

// find returns the byte position and source length of w in s.
func find(s, w string) (int, int) {
	if pos := strings.Index(s, w); pos >= 0 {
		if alts, ok := rewrites[w]; !ok || !closerAlt(s, pos, alts) {
			return pos, len(w)
		}
	}

	best, bestLen := -1, 0
	for _, alt := range rewrites[w] {
		if pos := strings.Index(s, alt); pos >= 0 && (best < 0 || pos < best) {
			best, bestLen = pos, len(alt)
		}
	}

	return best, bestLen
}

// closerAlt reports whether an alternative spelling appears before pos.
func closerAlt(s string, pos int, alts []string) bool {
	for _, alt := range alts {
		if p := strings.Index(s, alt); p >= 0 && p < pos {
			return true
		}
	}
	return false
}

func isSpaceAt(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return unicode.IsSpace(r)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
