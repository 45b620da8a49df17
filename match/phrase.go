package match

import (
	"fmt"
	"strings"

	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
)

// Attr is the token attribute a PhraseMatcher compares.
type Attr string

const (
	Orth      Attr = "ORTH"
	Lower     Attr = "LOWER"
	LemmaAttr Attr = "LEMMA"
)

// PhraseMatcher matches exact token sequences using a trie keyed on one
// token attribute.
type PhraseMatcher struct {
	attr Attr
	root *trieNode
	keys map[string]int
}

type trieNode struct {
	children map[string]*trieNode

	// keys of the phrases ending at this node
	keys []string
}

func newTrieNode() *trieNode {
	return &trieNode{children: map[string]*trieNode{}}
}

func NewPhraseMatcher(attr Attr) (*PhraseMatcher, error) {
	switch attr {
	case Orth, Lower, LemmaAttr:
	case "":
		attr = Orth
	default:
		return nil, fmt.Errorf("%w: unsupported phrase attribute %q", pattern.ErrInvalid, attr)
	}

	return &PhraseMatcher{attr: attr, root: newTrieNode(), keys: map[string]int{}}, nil
}

// MustPhraseMatcher is NewPhraseMatcher for attributes known to be valid.
// It panics on an unsupported attribute.
func MustPhraseMatcher(attr Attr) *PhraseMatcher {
	pm, err := NewPhraseMatcher(attr)
	if err != nil {
		panic(err)
	}
	return pm
}

// Add registers phrases given as tokens, for example docs built by the
// pipeline tokenizer.
func (pm *PhraseMatcher) Add(key string, phrases ...[]sent.Token) error {
	for _, ph := range phrases {
		words := make([]string, len(ph))
		for i, t := range ph {
			words[i] = pm.value(t)
		}
		if err := pm.insert(key, words); err != nil {
			return err
		}
	}
	return nil
}

// AddWords registers phrases given as words. With the LOWER attribute the
// words are lowercased.
func (pm *PhraseMatcher) AddWords(key string, phrases ...[]string) error {
	for _, ph := range phrases {
		words := ph
		if pm.attr == Lower {
			words = make([]string, len(ph))
			for i, w := range ph {
				words[i] = strings.ToLower(w)
			}
		}
		if err := pm.insert(key, words); err != nil {
			return err
		}
	}
	return nil
}

func (pm *PhraseMatcher) insert(key string, words []string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", pattern.ErrInvalid)
	}

	if len(words) == 0 {
		return fmt.Errorf("%w: empty phrase for %s", pattern.ErrInvalid, key)
	}

	node := pm.root
	for _, w := range words {
		child, ok := node.children[w]
		if !ok {
			child = newTrieNode()
			node.children[w] = child
		}
		node = child
	}

	for _, k := range node.keys {
		if k == key {
			return nil
		}
	}

	node.keys = append(node.keys, key)
	pm.keys[key]++
	return nil
}

func (pm *PhraseMatcher) Has(key string) bool {
	return pm.keys[key] > 0
}

// Len returns the number of keys.
func (pm *PhraseMatcher) Len() int {
	return len(pm.keys)
}

// Match returns every phrase occurrence sorted by start, end and key.
// Overlapping and nested phrases are all returned.
func (pm *PhraseMatcher) Match(tokens []sent.Token) []Match {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = pm.value(t)
	}

	var out []Match
	for start := range values {
		node := pm.root
		for end := start; end < len(values); end++ {
			next, ok := node.children[values[end]]
			if !ok {
				break
			}
			node = next

			for _, key := range node.keys {
				consumed := make([]int, 0, end+1-start)
				for i := start; i <= end; i++ {
					consumed = append(consumed, i)
				}
				out = append(out, Match{Key: key, Start: start, End: end + 1, Tokens: consumed})
			}
		}
	}

	sortMatches(out)
	return out
}

func (pm *PhraseMatcher) value(t sent.Token) string {
	switch pm.attr {
	case Lower:
		return lower(t)
	case LemmaAttr:
		return t.Lemma
	default:
		return t.Text
	}
}
