// Package storage defines the doc and rule repositories. The filesystem
// and SQLite backends live in subpackages.
package storage

import (
	"errors"
	"slices"
	"strings"

	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
)

// ErrNotFound is returned when a doc or rule does not exist.
var ErrNotFound = errors.New("not found")

// RuleReader defines read operations for rule storage
type RuleReader interface {
	// ReadAll returns all rules, sorted by name
	ReadAll() (pattern.Library, error)

	// Read returns a single rule by name
	Read(name string) (pattern.Rule, error)
}

// RuleWriter defines write operations for rule storage
type RuleWriter interface {
	// Write persists a rule, replacing any rule with the same name
	Write(r pattern.Rule) error
}

// RuleRepository combines read and write operations
type RuleRepository interface {
	RuleReader
	RuleWriter
}

// Cursor for paginated lemma-based queries
type Cursor int64

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Sentences) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates returns sentence candidates containing ALL given lemmas
	// in documents matching ALL labels, resuming after the given cursor. It
	// calls onCandidate for each result.
	// Returns the new cursor and any error.
	FindCandidates(lemmas []string, labels []string, after Cursor, limit int, onCandidate func(sent.Sentence) error) (Cursor, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences/lemmas to storage and
	// returns the assigned id.
	Write(doc sent.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(labels []string, cb func(current, total int, name string)) error
}

// SentenceLemmas returns the unique non-empty lemmas of a sentence, in
// order of appearance. These are the index keys of a sentence.
func SentenceLemmas(s sent.Sentence) []string {
	seen := map[string]bool{}
	var lemmas []string
	for _, t := range s.Tokens {
		if t.Lemma == "" || seen[t.Lemma] {
			continue
		}
		seen[t.Lemma] = true
		lemmas = append(lemmas, t.Lemma)
	}
	return lemmas
}

// HasLabel reports whether one of labels contains match. An empty match
// matches every doc.
func HasLabel(labels []string, match string) bool {
	if match == "" {
		return true
	}
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}

// HasAllLabels reports whether every one of matches is contained in a
// label of labels.
func HasAllLabels(labels []string, matches []string) bool {
	for _, m := range matches {
		if !HasLabel(labels, m) {
			return false
		}
	}
	return true
}

// ContainsAll reports whether the sentence has every lemma.
func ContainsAll(s sent.Sentence, lemmas []string) bool {
	have := SentenceLemmas(s)
	for _, l := range lemmas {
		if !slices.Contains(have, l) {
			return false
		}
	}
	return true
}
