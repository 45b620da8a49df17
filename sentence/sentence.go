package sentence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSpan is returned for out of range, empty or overlapping spans.
var ErrSpan = errors.New("invalid span")

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels []string `json:"labels,omitempty"`

	// The raw text the doc was built from. Empty for imported docs.
	Text string `json:"text,omitempty"`

	Sentences []Sentence `json:"sentences"`

	// Named entities, ordered and non-overlapping
	Ents []Span `json:"ents,omitempty"`

	// Shallow phrase chunks (noun chunks by default)
	Chunks []Span `json:"chunks,omitempty"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is an ordered slice of tokens with its position in the Doc.
type Sentence struct {
	Id     int     `json:"id"`
	DocId  int     `json:"doc_id"`
	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	// Doc-wide index of the token
	Id         int    `json:"id"`
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep,omitempty"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	// the index of the start character of the token in the original doc (runes)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`

	Lower      string `json:"lower,omitempty"`
	Stem       string `json:"stem,omitempty"`
	Shape      string `json:"shape,omitempty"`
	SpaceAfter bool   `json:"space_after,omitempty"`

	IsAlpha bool `json:"is_alpha,omitempty"`
	IsPunct bool `json:"is_punct,omitempty"`
	IsDigit bool `json:"is_digit,omitempty"`
	LikeNum bool `json:"like_num,omitempty"`
	IsStop  bool `json:"is_stop,omitempty"`

	// B, I, O or empty when entities were never set
	EntIOB  string `json:"ent_iob,omitempty"`
	EntType string `json:"ent_type,omitempty"`
}

// Span is a slice of doc tokens [Start, End) with an optional label.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label,omitempty"`
}

// Len returns the number of tokens of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether both spans share at least one token.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Tokens returns all tokens of the doc in order.
func (d *Doc) Tokens() []Token {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}

	tokens := make([]Token, 0, n)
	for _, s := range d.Sentences {
		tokens = append(tokens, s.Tokens...)
	}

	return tokens
}

// Len returns the number of tokens of the doc.
func (d *Doc) Len() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	return n
}

// Token returns a pointer to the token with doc-wide id, so that pipeline
// components can annotate in place.
func (d *Doc) Token(id int) (*Token, bool) {
	for si := range d.Sentences {
		tokens := d.Sentences[si].Tokens
		if len(tokens) == 0 {
			continue
		}
		first := tokens[0].Id
		if id >= first && id < first+len(tokens) {
			return &d.Sentences[si].Tokens[id-first], true
		}
	}
	return nil, false
}

// Span returns the tokens of the [start, end) range.
func (d *Doc) Span(start, end int) ([]Token, error) {
	if start < 0 || end > d.Len() || start >= end {
		return nil, fmt.Errorf("%w: [%d, %d) of %d tokens", ErrSpan, start, end, d.Len())
	}

	return d.Tokens()[start:end], nil
}

// SpanText renders the text of a span from the token texts and their
// trailing whitespace.
func (d *Doc) SpanText(s Span) string {
	tokens, err := d.Span(s.Start, s.End)
	if err != nil {
		return ""
	}
	return TokensText(tokens)
}

// SpanRoot returns the token of the span whose head lies outside the span,
// or which heads itself as the sentence root. When no token of the span has
// a parse (every head is the token itself) the last token is the root.
func (d *Doc) SpanRoot(s Span) (Token, error) {
	tokens, err := d.Span(s.Start, s.End)
	if err != nil {
		return Token{}, err
	}

	parsed := false
	for _, t := range tokens {
		if t.Head != t.Id {
			parsed = true
			break
		}
	}
	if !parsed {
		return tokens[len(tokens)-1], nil
	}

	for _, t := range tokens {
		if t.Head == t.Id || t.Head < s.Start || t.Head >= s.End {
			return t, nil
		}
	}

	return tokens[len(tokens)-1], nil
}

// SetEnts replaces the entities of the doc. Spans must be in range and must
// not overlap. Token EntIOB/EntType fields are rewritten.
func (d *Doc) SetEnts(spans []Span) error {
	n := d.Len()
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	SortSpans(sorted)

	for i, s := range sorted {
		if s.Start < 0 || s.End > n || s.Start >= s.End {
			return fmt.Errorf("%w: entity [%d, %d) of %d tokens", ErrSpan, s.Start, s.End, n)
		}
		if i > 0 && sorted[i-1].Overlaps(s) {
			return fmt.Errorf("%w: entity [%d, %d) overlaps [%d, %d)", ErrSpan, s.Start, s.End, sorted[i-1].Start, sorted[i-1].End)
		}
	}

	for si := range d.Sentences {
		for ti := range d.Sentences[si].Tokens {
			d.Sentences[si].Tokens[ti].EntIOB = "O"
			d.Sentences[si].Tokens[ti].EntType = ""
		}
	}

	for _, s := range sorted {
		for id := s.Start; id < s.End; id++ {
			t, ok := d.Token(id)
			if !ok {
				continue
			}
			t.EntIOB = "I"
			if id == s.Start {
				t.EntIOB = "B"
			}
			t.EntType = s.Label
		}
	}

	d.Ents = sorted
	return nil
}

// SortSpans orders spans by start, then by longer first.
func SortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
}

// TokensText rebuilds the original text of contiguous tokens.
func TokensText(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		b.WriteString(t.Text)
		if i < len(tokens)-1 && t.SpaceAfter {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// Words returns the text of each token.
func Words(tokens []Token) []string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Text
	}
	return words
}
