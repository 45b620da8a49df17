package ner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/revelaction/annotext/match"
	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
)

// EntityPattern is one line of an entity ruler patterns file:
//
//	{"label": "ORG", "pattern": "Apple"}
//	{"label": "GPE", "pattern": [{"LOWER": "san"}, {"LOWER": "francisco"}]}
//
// A string pattern is a phrase matched on the token text, a list is a token
// pattern.
type EntityPattern struct {
	Label   string          `json:"label"`
	Pattern json.RawMessage `json:"pattern"`
}

// EntityRuler labels entities from token patterns and phrases.
type EntityRuler struct {
	// Overwrite replaces overlapping entities already in the doc. When
	// false only the gaps between existing entities are filled.
	Overwrite bool

	matcher *match.Matcher
	phrases *match.PhraseMatcher

	// Words splits phrase strings into tokens.
	Words func(string) []string

	n int
}

func NewEntityRuler(overwrite bool) *EntityRuler {
	return &EntityRuler{
		Overwrite: overwrite,
		matcher:   match.NewMatcher(),
		phrases:   match.MustPhraseMatcher(match.Orth),
		Words:     strings.Fields,
	}
}

// LoadPatterns reads JSONL entity patterns. Blank lines are skipped.
func LoadPatterns(r io.Reader) ([]EntityPattern, error) {
	var patterns []EntityPattern
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}

		var ep EntityPattern
		if err := json.Unmarshal(b, &ep); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		patterns = append(patterns, ep)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

// Add registers entity patterns.
func (r *EntityRuler) Add(patterns ...EntityPattern) error {
	for i, ep := range patterns {
		if ep.Label == "" {
			return fmt.Errorf("%w: entity pattern %d without label", pattern.ErrInvalid, i)
		}

		var phrase string
		if err := json.Unmarshal(ep.Pattern, &phrase); err == nil {
			words := r.Words(phrase)
			if err := r.phrases.AddWords(ep.Label, words); err != nil {
				return err
			}
			r.n++
			continue
		}

		var p pattern.Pattern
		if err := json.Unmarshal(ep.Pattern, &p); err != nil {
			return fmt.Errorf("%w: entity pattern %d: %v", pattern.ErrInvalid, i, err)
		}

		if err := r.matcher.Add(ep.Label, p); err != nil {
			return err
		}
		r.n++
	}

	return nil
}

// Len returns the number of registered patterns.
func (r *EntityRuler) Len() int {
	return r.n
}

// Apply adds the matched entities to the doc.
func (r *EntityRuler) Apply(doc *sent.Doc) error {
	tokens := doc.Tokens()

	var candidates []sent.Span
	for _, m := range r.matcher.Match(tokens) {
		candidates = append(candidates, span(tokens, m))
	}
	for _, m := range r.phrases.Match(tokens) {
		candidates = append(candidates, span(tokens, m))
	}

	candidates = Resolve(candidates)

	var ents []sent.Span
	if r.Overwrite {
		ents = append(ents, candidates...)
		for _, e := range doc.Ents {
			if !overlapsAny(e, candidates) {
				ents = append(ents, e)
			}
		}
	} else {
		ents = append(ents, doc.Ents...)
		for _, c := range candidates {
			if !overlapsAny(c, doc.Ents) {
				ents = append(ents, c)
			}
		}
	}

	return doc.SetEnts(ents)
}

// span converts match positions to doc-wide token ids.
func span(tokens []sent.Token, m match.Match) sent.Span {
	return sent.Span{Start: tokens[m.Start].Id, End: tokens[m.End-1].Id + 1, Label: m.Key}
}

func overlapsAny(s sent.Span, spans []sent.Span) bool {
	for _, o := range spans {
		if s.Overlaps(o) {
			return true
		}
	}
	return false
}
