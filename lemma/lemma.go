// Package lemma reduces words to their dictionary base form.
package lemma

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/revelaction/annotext/lexattr"
)

// Lemmatizer looks words up in an English morphology dictionary.
type Lemmatizer struct {
	g *golem.Lemmatizer
}

func New() (*Lemmatizer, error) {
	g, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemma dictionary: %w", err)
	}

	return &Lemmatizer{g: g}, nil
}

// Lemma returns the base form of word. pos is the universal POS of the
// token and may be empty. Proper nouns and punctuation keep their text,
// everything else is lowercased.
func (l *Lemmatizer) Lemma(word, pos string) string {
	switch pos {
	case "PROPN":
		return word
	case "PUNCT", "SYM", "NUM":
		return word
	}

	if lexattr.IsPunct(word) {
		return word
	}

	lower := strings.ToLower(word)
	if lemma := l.g.Lemma(lower); lemma != "" {
		return lemma
	}

	return lower
}

// Known reports whether the dictionary contains word.
func (l *Lemmatizer) Known(word string) bool {
	return l.g.InDict(strings.ToLower(word))
}
