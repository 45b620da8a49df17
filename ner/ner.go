// Package ner labels named entity spans of an annotated doc.
package ner

import (
	"sort"
	"strings"

	"github.com/jdkato/prose/chunk"
	"github.com/jdkato/prose/tag"

	"github.com/revelaction/annotext/lexattr"
	sent "github.com/revelaction/annotext/sentence"
)

// Entity labels produced without rules.
const (
	NE       = "NE"
	Money    = "MONEY"
	Percent  = "PERCENT"
	Cardinal = "CARDINAL"
)

var currencyWords = map[string]struct{}{
	"dollar": {}, "dollars": {}, "euro": {}, "euros": {}, "cent": {}, "cents": {},
	"pound": {}, "pounds": {}, "yen": {}, "usd": {}, "eur": {},
}

var currencySymbols = map[string]struct{}{
	"$": {}, "€": {}, "£": {}, "¥": {}, "US$": {},
}

// Recognizer finds proper name spans from Penn Treebank tags and labels
// numeric expressions.
type Recognizer struct {
	// Numeric enables the MONEY, PERCENT and CARDINAL rules
	Numeric bool
}

func NewRecognizer() *Recognizer {
	return &Recognizer{Numeric: true}
}

// Apply replaces the doc entities with the recognized ones. Tokens must be
// tagged.
func (r *Recognizer) Apply(doc *sent.Doc) error {
	var spans []sent.Span
	for _, s := range doc.Sentences {
		spans = append(spans, r.Spans(s.Tokens)...)
	}

	return doc.SetEnts(Resolve(spans))
}

// Spans returns the candidate entities of a sentence as doc-wide token
// ranges. Candidates may overlap.
func (r *Recognizer) Spans(tokens []sent.Token) []sent.Span {
	if len(tokens) == 0 {
		return nil
	}

	var spans []sent.Span
	for _, loc := range names(tokens) {
		spans = append(spans, sent.Span{Start: tokens[loc[0]].Id, End: tokens[loc[1]-1].Id + 1, Label: NE})
	}

	if r.Numeric {
		spans = append(spans, numeric(tokens)...)
	}

	return spans
}

// names aligns the treebank named entity chunks back to token positions.
func names(tokens []sent.Token) [][2]int {
	tagged := make([]tag.Token, len(tokens))
	for i, t := range tokens {
		tagged[i] = tag.Token{Text: t.Text, Tag: t.Tag}
	}

	var locs [][2]int
	cursor := 0
	for _, c := range chunk.Chunk(tagged, chunk.TreebankNamedEntities) {
		words := strings.Fields(c)
		if len(words) == 0 {
			continue
		}

		start := indexWords(tokens, words, cursor)
		if start < 0 {
			continue
		}

		locs = append(locs, [2]int{start, start + len(words)})
		cursor = start + len(words)
	}

	return locs
}

func indexWords(tokens []sent.Token, words []string, from int) int {
OUTER:
	for i := from; i+len(words) <= len(tokens); i++ {
		for j, w := range words {
			if tokens[i+j].Text != w {
				continue OUTER
			}
		}
		return i
	}
	return -1
}

// numeric labels number runs: a currency symbol before or a currency word
// after gives MONEY, a trailing % or "percent" gives PERCENT and the rest
// is CARDINAL.
func numeric(tokens []sent.Token) []sent.Span {
	var spans []sent.Span
	i := 0
	for i < len(tokens) {
		if !isNumber(tokens[i]) {
			i++
			continue
		}

		j := i
		for j < len(tokens) && isNumber(tokens[j]) {
			j++
		}

		start, end, label := i, j, Cardinal
		switch {
		case i > 0 && isCurrencySymbol(tokens[i-1]):
			start, label = i-1, Money
		case j < len(tokens) && isCurrencyWord(tokens[j]):
			end, label = j+1, Money
		case j < len(tokens) && isPercent(tokens, j):
			end, label = j+1, Percent
			if strings.ToLower(tokens[j].Text) == "per" {
				end = j + 2
			}
		}

		spans = append(spans, sent.Span{Start: tokens[start].Id, End: tokens[end-1].Id + 1, Label: label})
		i = end
	}

	return spans
}

func isNumber(t sent.Token) bool {
	return t.LikeNum || t.Tag == "CD" || lexattr.LikeNum(t.Text)
}

func isCurrencySymbol(t sent.Token) bool {
	_, ok := currencySymbols[t.Text]
	return ok || t.Tag == "$"
}

func isCurrencyWord(t sent.Token) bool {
	_, ok := currencyWords[strings.ToLower(t.Text)]
	return ok
}

func isPercent(tokens []sent.Token, j int) bool {
	w := strings.ToLower(tokens[j].Text)
	if w == "%" || w == "percent" {
		return true
	}
	return w == "per" && j+1 < len(tokens) && strings.ToLower(tokens[j+1].Text) == "cent"
}

// Resolve drops overlapping spans: the longest span wins, then the
// earliest. The result is sorted by start.
func Resolve(spans []sent.Span) []sent.Span {
	sorted := make([]sent.Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Len() != sorted[j].Len() {
			return sorted[i].Len() > sorted[j].Len()
		}
		return sorted[i].Start < sorted[j].Start
	})

	var kept []sent.Span
OUTER:
	for _, s := range sorted {
		if s.Len() <= 0 {
			continue
		}
		for _, k := range kept {
			if k.Overlaps(s) {
				continue OUTER
			}
		}
		kept = append(kept, s)
	}

	sent.SortSpans(kept)
	return kept
}

// Extract returns the unique texts of the doc entities with the given
// label, in doc order. An empty label returns all entities.
func Extract(doc *sent.Doc, label string) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range doc.Ents {
		if label != "" && e.Label != label {
			continue
		}

		text := doc.SpanText(e)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, text)
	}
	return out
}
