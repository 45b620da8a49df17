// Package vocab maps strings to stable 64-bit hashes so that a word seen
// many times is stored once.
package vocab

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/revelaction/annotext/lexattr"
	"github.com/revelaction/annotext/stopword"
)

var ErrUnknownHash = errors.New("unknown hash")

// StringStore is a bidirectional string <-> hash table. It is safe for
// concurrent use.
type StringStore struct {
	mu      sync.RWMutex
	strings map[uint64]string
}

func NewStringStore() *StringStore {
	return &StringStore{strings: map[uint64]string{}}
}

// Hash returns the hash of s without storing it.
func Hash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Add stores s and returns its hash.
func (ss *StringStore) Add(s string) uint64 {
	h := Hash(s)

	ss.mu.Lock()
	ss.strings[h] = s
	ss.mu.Unlock()

	return h
}

// Lookup returns the string stored for hash h.
func (ss *StringStore) Lookup(h uint64) (string, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	s, ok := ss.strings[h]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownHash, h)
	}
	return s, nil
}

func (ss *StringStore) Contains(s string) bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	_, ok := ss.strings[Hash(s)]
	return ok
}

func (ss *StringStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.strings)
}

// Lexeme holds the context independent attributes of a word type.
type Lexeme struct {
	Orth    uint64
	Text    string
	Lower   string
	Shape   string
	IsAlpha bool
	IsPunct bool
	IsDigit bool
	LikeNum bool
	IsStop  bool
}

// Vocab is shared by all docs of a pipeline.
type Vocab struct {
	Strings   *StringStore
	StopWords stopword.Set
}

func New(stop stopword.Set) *Vocab {
	if stop == nil {
		stop = stopword.Set{}
	}
	return &Vocab{Strings: NewStringStore(), StopWords: stop}
}

// Lexeme interns text and returns its attributes.
func (v *Vocab) Lexeme(text string) Lexeme {
	lower := strings.ToLower(text)
	v.Strings.Add(lower)
	return Lexeme{
		Orth:    v.Strings.Add(text),
		Text:    text,
		Lower:   lower,
		Shape:   lexattr.Shape(text),
		IsAlpha: lexattr.IsAlpha(text),
		IsPunct: lexattr.IsPunct(text),
		IsDigit: lexattr.IsDigit(text),
		LikeNum: lexattr.LikeNum(text),
		IsStop:  v.StopWords.Contains(text),
	}
}
