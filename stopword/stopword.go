// Package stopword holds the stop word lists, the most common words of a
// language, used to filter tokens before counting or stemming.
package stopword

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.txt
var lists embed.FS

// Set contains casefolded stop words.
type Set map[string]struct{}

// Languages returns the languages with an embedded list.
func Languages() []string {
	entries, err := lists.ReadDir("data")
	if err != nil {
		return nil
	}

	var langs []string
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(langs)
	return langs
}

// Load returns the stop word set of the language.
func Load(language string) (Set, error) {
	data, err := lists.ReadFile(path.Join("data", strings.ToLower(language)+".txt"))
	if err != nil {
		return nil, fmt.Errorf("no stop words for language %q", language)
	}

	s := Set{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		s[fold(w)] = struct{}{}
	}

	return s, sc.Err()
}

// Add extends the set.
func (s Set) Add(words ...string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		s[fold(w)] = struct{}{}
	}
}

// Contains reports whether word is a stop word, regardless of case.
func (s Set) Contains(word string) bool {
	_, ok := s[fold(word)]
	return ok
}

// Filter returns the words that are not stop words, keeping the order.
func (s Set) Filter(words []string) []string {
	real := make([]string, 0, len(words))
	for _, w := range words {
		if s.Contains(w) {
			continue
		}
		real = append(real, w)
	}
	return real
}

// Words returns the sorted stop words.
func (s Set) Words() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// fold lowercases the word and normalises the typographic apostrophe.
func fold(w string) string {
	return strings.ReplaceAll(strings.ToLower(w), "’", "'")
}
