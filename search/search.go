// Package search finds the stored sentences that match a rule.
package search

import (
	"errors"
	"fmt"

	"github.com/revelaction/annotext/match"
	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
)

// ErrNoLemma is returned when an indexed search has nothing to look up.
var ErrNoLemma = errors.New("expression must contain at least one lemma for indexing")

// pageSize is the number of candidates fetched per FindCandidates call in
// All.
const pageSize = 500

// Search orchestrates the strategy selection for finding sentences
// that match a rule and an expression against a document repository.
type Search struct {
	rule   pattern.Rule
	repo   storage.DocReader
	docID  *int
	labels []string
}

// New creates a new Search instance with the given rule and repository.
// The rule may be empty when only expressions are searched.
func New(r pattern.Rule, dr storage.DocReader) *Search {
	return &Search{
		rule: r,
		repo: dr,
	}
}

// WithDocID restricts the search to a single document ID.
// If set, the single-document strategy (Read) will be favored over
// the indexed strategy (FindCandidates).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// WithLabels restricts the indexed search to docs having all labels.
func (s *Search) WithLabels(labels []string) *Search {
	s.labels = labels
	return s
}

func (s *Search) matcher(expr pattern.Pattern) *match.SentenceMatcher {
	m := match.NewSentenceMatcher(s.rule)
	m.AddPattern(expr)
	return m
}

// Sentences returns matched sentences for the given expression, handling
// pagination. The index is queried with the expression lemmas.
func (s *Search) Sentences(expr pattern.Pattern, cursor storage.Cursor, limit int, onMatch func(*match.SentenceMatch) error) (storage.Cursor, error) {
	m := s.matcher(expr)

	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		return cursor, s.single(m, onMatch)
	}

	// Strategy 2: Find candidates (indexed search)
	lemmas := expr.Lemmas()
	if len(lemmas) == 0 {
		return cursor, ErrNoLemma
	}

	return s.repo.FindCandidates(lemmas, s.labels, cursor, limit, func(candidate sent.Sentence) error {
		if sm := m.MatchSentence(candidate); sm != nil {
			return onMatch(sm)
		}
		return nil
	})
}

// All returns every sentence matching the rule and the expression, sorted.
// The index is queried once per rule pattern, with the pattern lemmas plus
// the expression lemmas. Sentences found by several lookups are returned
// once.
func (s *Search) All(expr pattern.Pattern) ([]*match.SentenceMatch, error) {
	m := s.matcher(expr)

	var matches []*match.SentenceMatch
	collect := func(sm *match.SentenceMatch) error {
		matches = append(matches, sm)
		return nil
	}

	if s.docID != nil {
		if err := s.single(m, collect); err != nil {
			return nil, err
		}
		match.Sort(matches)
		return matches, nil
	}

	sets := m.LemmaSets()
	if len(sets) == 0 {
		return nil, ErrNoLemma
	}
	for _, set := range sets {
		if len(set) == 0 {
			return nil, ErrNoLemma
		}
	}

	type key struct{ doc, sentence int }
	seen := map[key]bool{}

	for _, lemmas := range sets {
		var cursor storage.Cursor
		for {
			found := 0
			next, err := s.repo.FindCandidates(lemmas, s.labels, cursor, pageSize, func(candidate sent.Sentence) error {
				found++
				k := key{candidate.DocId, candidate.Id}
				if seen[k] {
					return nil
				}
				seen[k] = true

				if sm := m.MatchSentence(candidate); sm != nil {
					return collect(sm)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("find candidates for %v: %w", lemmas, err)
			}

			if found < pageSize || next == cursor {
				break
			}
			cursor = next
		}
	}

	match.Sort(matches)
	return matches, nil
}

func (s *Search) single(m *match.SentenceMatcher, onMatch func(*match.SentenceMatch) error) error {
	doc, err := s.repo.Read(*s.docID)
	if err != nil {
		return err
	}
	// Ensure doc has ID set (Read might return 0 if backend doesn't populate)
	doc.Id = *s.docID

	for _, sm := range m.MatchDoc(doc) {
		if err := onMatch(sm); err != nil {
			return err
		}
	}
	return nil
}
