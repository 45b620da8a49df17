package match

import (
	"sort"

	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
)

// maxTuples caps the cartesian product of segment matches per pattern.
const maxTuples = 256

// SentenceMatcher matches sentences against a Rule and an optional extra
// Pattern. A set of sentences can be matched by repeated MatchSentence
// calls.
//
// A rule pattern matches a sentence by co-occurrence: every item without
// NEAR starts a segment that may match anywhere in the sentence, and items
// with NEAR extend the segment of the previous item. The pattern matches
// when all its segments match.
type SentenceMatcher struct {
	Rule pattern.Rule

	// Extra is an additional pattern, typically passed on the command line.
	// It has an AND semantic: when set, the sentence must match it in
	// addition to one or more patterns of the Rule.
	Extra pattern.Pattern
}

// ExprMatch holds the token tuples of a sentence matched by one pattern.
type ExprMatch struct {
	// ExprIndex is the pattern index in the rule, -1 for the extra pattern.
	ExprIndex int `json:"expr_index"`

	// Expr is the pattern String()
	Expr string `json:"expr"`

	// Tokens has one tuple per match occurrence. The pattern
	//
	//	[{"lemma":"cuando"},{"near":3,"tag":"VERB"}]
	//
	// matches twice in "Cuando me vio abrir los ojos": [cuando vio] and
	// [cuando abrir].
	Tokens [][]sent.Token `json:"tokens"`
}

// SentenceMatch represents a sentence match of one or more rule patterns.
type SentenceMatch struct {
	// RuleName is the rule with patterns that matched this sentence
	RuleName string `json:"rule_name"`

	Sentence sent.Sentence `json:"sentence"`

	// NumExprs is the number of rule patterns that matched. Used to sort
	// the sentences.
	NumExprs int `json:"num_exprs"`

	Matches []ExprMatch `json:"matches"`
}

func NewSentenceMatcher(r pattern.Rule) *SentenceMatcher {
	return &SentenceMatcher{Rule: r}
}

func (m *SentenceMatcher) AddPattern(p pattern.Pattern) {
	m.Extra = p
}

// LemmaSets returns, per rule pattern, its lemmas joined with the extra
// pattern lemmas, for candidate lookups.
func (m *SentenceMatcher) LemmaSets() [][]string {
	var sets [][]string
	extra := m.Extra.Lemmas()

	ruleSets := m.Rule.LemmaSets()
	if len(ruleSets) == 0 {
		if len(extra) > 0 {
			sets = append(sets, extra)
		}
		return sets
	}

	for _, rs := range ruleSets {
		set := append([]string{}, extra...)
		for _, l := range rs {
			if !contains(set, l) {
				set = append(set, l)
			}
		}
		sets = append(sets, set)
	}
	return sets
}

// MatchSentence returns nil when the sentence does not match.
//
//   - With both a Rule and an Extra pattern, the Extra pattern must match
//     AND one or more of the Rule patterns.
//   - With only a Rule, one or more of its patterns must match.
//   - With only an Extra pattern, it must match.
func (m *SentenceMatcher) MatchSentence(s sent.Sentence) *SentenceMatch {
	hasRule := len(m.Rule.Patterns) > 0
	hasExtra := len(m.Extra) > 0

	if !hasRule && !hasExtra {
		return nil
	}

	match := &SentenceMatch{RuleName: m.Rule.Name, Sentence: s}

	if hasExtra {
		tuples := cooccur(s.Tokens, m.Extra)
		// If the extra pattern does not match, the sentence does not match
		if len(tuples) == 0 {
			return nil
		}
		match.Matches = append(match.Matches, ExprMatch{ExprIndex: -1, Expr: m.Extra.String(), Tokens: tuples})
	}

	for i, p := range m.Rule.Patterns {
		tuples := cooccur(s.Tokens, p)
		if len(tuples) == 0 {
			continue
		}

		match.NumExprs++
		match.Matches = append(match.Matches, ExprMatch{ExprIndex: i, Expr: p.String(), Tokens: tuples})
	}

	if hasRule && match.NumExprs == 0 {
		return nil
	}

	return match
}

// MatchDoc matches every sentence of the doc and returns the sorted
// matches.
func (m *SentenceMatcher) MatchDoc(doc sent.Doc) []*SentenceMatch {
	var out []*SentenceMatch
	for _, s := range doc.Sentences {
		if s.DocId == 0 {
			s.DocId = doc.Id
		}
		if sm := m.MatchSentence(s); sm != nil {
			out = append(out, sm)
		}
	}

	Sort(out)
	return out
}

// Sort orders matches by number of matched patterns (desc), doc id and
// sentence id.
func Sort(matches []*SentenceMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.NumExprs != b.NumExprs {
			return a.NumExprs > b.NumExprs
		}
		if a.Sentence.DocId != b.Sentence.DocId {
			return a.Sentence.DocId < b.Sentence.DocId
		}
		return a.Sentence.Id < b.Sentence.Id
	})
}

// AllTokens returns the unique matched tokens in sentence order.
func (sm *SentenceMatch) AllTokens() []sent.Token {
	seen := map[int]bool{}
	var tokens []sent.Token
	for _, em := range sm.Matches {
		for _, tuple := range em.Tokens {
			for _, t := range tuple {
				if seen[t.Index] {
					continue
				}
				seen[t.Index] = true
				tokens = append(tokens, t)
			}
		}
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Index < tokens[j].Index })
	return tokens
}

// Exprs returns the String() of the matched patterns.
func (sm *SentenceMatch) Exprs() []string {
	var exprs []string
	for _, em := range sm.Matches {
		exprs = append(exprs, em.Expr)
	}
	return exprs
}

// TokensForExpr returns the token tuples matched by the pattern with the
// given String().
func (sm *SentenceMatch) TokensForExpr(expr string) [][]sent.Token {
	for _, em := range sm.Matches {
		if em.Expr == expr {
			return em.Tokens
		}
	}
	return nil
}

// segments splits p at every item without NEAR.
func segments(p pattern.Pattern) []pattern.Pattern {
	var segs []pattern.Pattern
	for _, item := range p {
		if item.Near > 0 && len(segs) > 0 {
			segs[len(segs)-1] = append(segs[len(segs)-1], item)
			continue
		}
		segs = append(segs, pattern.Pattern{item})
	}
	return segs
}

// cooccur returns the token tuples of p in the sentence, or nil.
func cooccur(tokens []sent.Token, p pattern.Pattern) [][]sent.Token {
	// after each segment this holds the cartesian product till now
	var partial [][]int
	for i, seg := range segments(p) {
		found := find(tokens, seg)
		if len(found) == 0 {
			return nil
		}

		if i == 0 {
			for _, f := range found {
				partial = append(partial, f.Tokens)
			}
			continue
		}

		var next [][]int
	PRODUCT:
		for _, prev := range partial {
			for _, f := range found {
				cp := make([]int, 0, len(prev)+len(f.Tokens))
				cp = append(cp, prev...)
				cp = append(cp, f.Tokens...)
				next = append(next, cp)
				if len(next) >= maxTuples {
					break PRODUCT
				}
			}
		}
		partial = next
	}

	tuples := make([][]sent.Token, 0, len(partial))
	for _, positions := range partial {
		sort.Ints(positions)
		var tuple []sent.Token
		for i, pos := range positions {
			if i > 0 && positions[i-1] == pos {
				continue
			}
			tuple = append(tuple, tokens[pos])
		}
		tuples = append(tuples, tuple)
	}

	return tuples
}

func contains(sl []string, s string) bool {
	for _, v := range sl {
		if v == s {
			return true
		}
	}
	return false
}
