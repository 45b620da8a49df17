// Package stem reduces words to a crude root by suffix stripping.
package stem

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
)

// Stemmer reduces a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// Languages supported by the Snowball stemmer.
func Languages() []string {
	return []string{"english", "spanish", "french", "russian", "swedish", "norwegian", "hungarian"}
}

// Snowball is the Snowball stemmer. For English this is Porter2, the
// updated Porter stemmer.
type Snowball struct {
	language string

	// StemStopWords also stems stop words. They are returned lowercased
	// otherwise.
	StemStopWords bool
}

var _ Stemmer = (*Snowball)(nil)

func NewSnowball(language string) (*Snowball, error) {
	language = strings.ToLower(language)
	for _, l := range Languages() {
		if l == language {
			return &Snowball{language: language}, nil
		}
	}

	return nil, fmt.Errorf("unsupported stemmer language %q", language)
}

func (s *Snowball) Language() string {
	return s.language
}

// Stem returns the stem of word. Words the algorithm rejects are returned
// lowercased.
func (s *Snowball) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, s.StemStopWords)
	if err != nil {
		return strings.ToLower(word)
	}
	return stemmed
}

// StemAll stems every word. Always tokenize before stemming.
func StemAll(st Stemmer, words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = st.Stem(w)
	}
	return out
}
