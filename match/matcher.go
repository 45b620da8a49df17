// Package match finds rule patterns and phrases in annotated tokens.
package match

import (
	"fmt"
	"sort"

	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
)

// Greedy filters overlapping matches of the same key.
type Greedy string

const (
	// All keeps every match
	All Greedy = ""

	// First keeps the earliest of overlapping matches
	First Greedy = "FIRST"

	// Longest keeps the longest of overlapping matches
	Longest Greedy = "LONGEST"
)

// Match is a (key, start, end) match over a token slice. Start and End are
// positions in the slice, End exclusive. Tokens lists the positions
// consumed by pattern items: tokens skipped by a NEAR gap are not listed.
type Match struct {
	Key    string
	Start  int
	End    int
	Tokens []int
}

// Span returns the match as a span labelled with the key.
func (m Match) Span() sent.Span {
	return sent.Span{Start: m.Start, End: m.End, Label: m.Key}
}

// Matcher matches token patterns registered under keys.
type Matcher struct {
	keys     []string
	patterns map[string][]pattern.Pattern
	greedy   map[string]Greedy
}

func NewMatcher() *Matcher {
	return &Matcher{
		patterns: map[string][]pattern.Pattern{},
		greedy:   map[string]Greedy{},
	}
}

// Add registers patterns under key. Adding to an existing key extends it.
func (m *Matcher) Add(key string, patterns ...pattern.Pattern) error {
	return m.AddGreedy(key, All, patterns...)
}

// AddGreedy is Add with a filter for overlapping matches of the key.
func (m *Matcher) AddGreedy(key string, greedy Greedy, patterns ...pattern.Pattern) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", pattern.ErrInvalid)
	}

	if len(patterns) == 0 {
		return fmt.Errorf("%w: no patterns for %s", pattern.ErrInvalid, key)
	}

	switch greedy {
	case All, First, Longest:
	default:
		return fmt.Errorf("%w: unknown greedy filter %q", pattern.ErrInvalid, greedy)
	}

	for i, p := range patterns {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("key %s pattern %d: %w", key, i, err)
		}
	}

	if _, ok := m.patterns[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.patterns[key] = append(m.patterns[key], patterns...)
	m.greedy[key] = greedy
	return nil
}

// AddRule registers the patterns of a rule under its name.
func (m *Matcher) AddRule(r pattern.Rule) error {
	return m.Add(r.Name, r.Patterns...)
}

func (m *Matcher) Remove(key string) bool {
	if _, ok := m.patterns[key]; !ok {
		return false
	}

	delete(m.patterns, key)
	delete(m.greedy, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

func (m *Matcher) Has(key string) bool {
	_, ok := m.patterns[key]
	return ok
}

// Len returns the number of keys.
func (m *Matcher) Len() int {
	return len(m.keys)
}

// Match returns the distinct matches of all keys, sorted by start, end and
// key.
func (m *Matcher) Match(tokens []sent.Token) []Match {
	var out []Match
	for _, key := range m.keys {
		seen := map[[2]int]bool{}
		var keyMatches []Match
		for _, p := range m.patterns[key] {
			for _, c := range find(tokens, p) {
				if seen[[2]int{c.Start, c.End}] {
					continue
				}
				seen[[2]int{c.Start, c.End}] = true
				c.Key = key
				keyMatches = append(keyMatches, c)
			}
		}

		out = append(out, filterGreedy(keyMatches, m.greedy[key])...)
	}

	sortMatches(out)
	return out
}

// MatchDoc matches all doc tokens. Positions are doc-wide token ids.
func (m *Matcher) MatchDoc(doc sent.Doc) []Match {
	return m.Match(doc.Tokens())
}

func sortMatches(ms []Match) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Start != ms[j].Start {
			return ms[i].Start < ms[j].Start
		}
		if ms[i].End != ms[j].End {
			return ms[i].End < ms[j].End
		}
		return ms[i].Key < ms[j].Key
	})
}

func filterGreedy(ms []Match, greedy Greedy) []Match {
	if greedy == All || len(ms) < 2 {
		return ms
	}

	sorted := make([]Match, len(ms))
	copy(sorted, ms)

	switch greedy {
	case First:
		sortMatches(sorted)
	case Longest:
		sort.SliceStable(sorted, func(i, j int) bool {
			li, lj := sorted[i].End-sorted[i].Start, sorted[j].End-sorted[j].Start
			if li != lj {
				return li > lj
			}
			return sorted[i].Start < sorted[j].Start
		})
	}

	taken := map[int]bool{}
	var kept []Match
OUTER:
	for _, mt := range sorted {
		for i := mt.Start; i < mt.End; i++ {
			if taken[i] {
				continue OUTER
			}
		}

		for i := mt.Start; i < mt.End; i++ {
			taken[i] = true
		}
		kept = append(kept, mt)
	}

	return kept
}

// find returns the distinct (start, end) matches of p in tokens. The first
// path found for a (start, end) pair gives the consumed tokens.
func find(tokens []sent.Token, p pattern.Pattern) []Match {
	var out []Match
	for start := range tokens {
		seen := map[int]bool{}
		e := engine{
			tokens: tokens,
			p:      p,
			emit: func(end int, consumed []int) {
				if end <= start || seen[end] {
					return
				}
				seen[end] = true
				out = append(out, Match{
					Start:  start,
					End:    end,
					Tokens: append([]int(nil), consumed...),
				})
			},
		}
		e.step(start, 0, nil)
	}

	return out
}

// engine walks the pattern items over the tokens with backtracking.
type engine struct {
	tokens []sent.Token
	p      pattern.Pattern
	emit   func(end int, consumed []int)
}

func (e *engine) step(pos, item int, consumed []int) {
	if item == len(e.p) {
		e.emit(pos, consumed)
		return
	}

	it := e.p[item]
	n := len(e.tokens)

	switch {
	case it.Near > 0:
		last := min(pos+it.Near, n)
		for k := pos; k < last; k++ {
			if isTokenMatch(e.tokens[k], it) {
				e.step(k+1, item+1, append(consumed, k))
			}
		}

	case it.Op == pattern.OpNot:
		if pos < n && !isTokenMatch(e.tokens[pos], it) {
			e.step(pos+1, item+1, append(consumed, pos))
		}

	case it.Op == pattern.OpOpt:
		e.step(pos, item+1, consumed)
		if pos < n && isTokenMatch(e.tokens[pos], it) {
			e.step(pos+1, item+1, append(consumed, pos))
		}

	case it.Op == pattern.OpStar || it.Op == pattern.OpPlus:
		if it.Op == pattern.OpStar {
			e.step(pos, item+1, consumed)
		}

		c := consumed
		for k := pos; k < n && isTokenMatch(e.tokens[k], it); k++ {
			c = append(c, k)
			e.step(k+1, item+1, c)
		}

	default:
		if pos < n && isTokenMatch(e.tokens[pos], it) {
			e.step(pos+1, item+1, append(consumed, pos))
		}
	}
}
