package pattern

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid pattern")

// Quantifiers and the negation operator of an Item.
const (
	OpOne  = ""
	OpNot  = "!"
	OpOpt  = "?"
	OpPlus = "+"
	OpStar = "*"
)

// Item is a constraint on a single token. Empty fields do not constrain.
// JSON keys are matched case-insensitively on decoding, so both
// {"LEMMA": "go"} and {"lemma": "go"} load.
type Item struct {
	// Near: the item must match one of the next Near tokens after the token
	// matched by the previous item.
	Near int `json:"NEAR,omitempty"`

	Text  string `json:"TEXT,omitempty"`
	Lower string `json:"LOWER,omitempty"`

	// a|b matches any lemma, !a matches any lemma but a.
	Lemma string `json:"LEMMA,omitempty"`
	Pos   string `json:"POS,omitempty"`

	// Substring match: a|b contains any, a+b contains all.
	Tag     string `json:"TAG,omitempty"`
	Dep     string `json:"DEP,omitempty"`
	Shape   string `json:"SHAPE,omitempty"`
	EntType string `json:"ENT_TYPE,omitempty"`

	IsAlpha *bool `json:"IS_ALPHA,omitempty"`
	IsPunct *bool `json:"IS_PUNCT,omitempty"`
	IsDigit *bool `json:"IS_DIGIT,omitempty"`
	LikeNum *bool `json:"LIKE_NUM,omitempty"`
	IsStop  *bool `json:"IS_STOP,omitempty"`

	Op string `json:"OP,omitempty"`
}

// Pattern is an ordered sequence of items matched against consecutive
// tokens, except where Near allows a gap.
type Pattern []Item

// Rule is a named set of patterns. A sentence matches the rule when it
// matches one or more of its patterns.
type Rule struct {
	Name     string
	Patterns []Pattern
}

// Library is a collection of rules
type Library []Rule

// Names returns the rule names in order.
func (l Library) Names() []string {
	var names []string
	for _, r := range l {
		names = append(names, r.Name)
	}
	return names
}

// Get returns the rule with the given name.
func (l Library) Get(name string) (Rule, bool) {
	for _, r := range l {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Quantified reports whether the item can match more or fewer than one
// token.
func (it Item) Quantified() bool {
	return it.Op == OpOpt || it.Op == OpPlus || it.Op == OpStar
}

// Required reports whether every match of the pattern has a token matching
// the item.
func (it Item) Required() bool {
	return it.Op == OpOne || it.Op == "1" || it.Op == OpPlus
}

// Lemmas returns the unique positive lemmas of the required items. They are
// usable as an index lookup: every sentence matching the pattern contains
// all of them. OR and negated lemmas are left to the matcher.
func (p Pattern) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, item := range p {
		if item.Lemma == "" || !item.Required() {
			continue
		}

		if strings.HasPrefix(item.Lemma, "!") || strings.Contains(item.Lemma, "|") {
			continue
		}

		if !seen[item.Lemma] {
			seen[item.Lemma] = true
			lemmas = append(lemmas, item.Lemma)
		}
	}
	return lemmas
}

// LemmaSets returns one lemma set per pattern that has index lemmas.
func (r Rule) LemmaSets() [][]string {
	var sets [][]string
	for _, p := range r.Patterns {
		lemmas := p.Lemmas()
		if len(lemmas) > 0 {
			sets = append(sets, lemmas)
		}
	}
	return sets
}

// Index returns the position of the pattern in the rule, or -1.
func (r Rule) Index(p Pattern) int {
	for i, rp := range r.Patterns {
		if Equal(rp, p) {
			return i
		}
	}
	return -1
}

// Validate checks every pattern of the rule.
func (r Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: rule without name", ErrInvalid)
	}

	for i, p := range r.Patterns {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("rule %s pattern %d: %w", r.Name, i, err)
		}
	}

	return nil
}

// Validate checks operators, near distances and alternative syntax.
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty pattern", ErrInvalid)
	}

	for i, item := range p {
		switch item.Op {
		case OpOne, "1", OpNot, OpOpt, OpPlus, OpStar:
		default:
			return fmt.Errorf("%w: item %d: unknown OP %q", ErrInvalid, i, item.Op)
		}

		if item.Near < 0 {
			return fmt.Errorf("%w: item %d: negative NEAR", ErrInvalid, i)
		}

		if item.Near > 0 && i == 0 {
			return fmt.Errorf("%w: NEAR on the first item", ErrInvalid)
		}

		if item.Near > 0 && item.Op != OpOne && item.Op != "1" {
			return fmt.Errorf("%w: item %d: NEAR with OP %q", ErrInvalid, i, item.Op)
		}

		if err := validAlternatives(item.Lemma, "|"); err != nil {
			return fmt.Errorf("%w: item %d: LEMMA %v", ErrInvalid, i, err)
		}

		if item.Lemma == "!" {
			return fmt.Errorf("%w: item %d: empty negated LEMMA", ErrInvalid, i)
		}

		if err := validAlternatives(item.Tag, Separator(item.Tag)); err != nil {
			return fmt.Errorf("%w: item %d: TAG %v", ErrInvalid, i, err)
		}
	}

	return nil
}

func validAlternatives(field, sep string) error {
	if field == "" || sep == "" {
		return nil
	}

	for _, alt := range strings.Split(field, sep) {
		if alt == "" {
			return fmt.Errorf("%q has an empty alternative", field)
		}
	}
	return nil
}

// Separator returns the TAG operator: | (any), + (all) or "" (single).
func Separator(field string) string {
	if strings.Contains(field, "|") {
		return "|"
	}

	if strings.Contains(field, "+") {
		return "+"
	}

	return ""
}

// Equal determines if two patterns are the same. Order matters:
//
//	itemA, itemB != itemB, itemA
func Equal(a, b Pattern) bool {
	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if !EqualItem(v, b[i]) {
			return false
		}
	}
	return true
}

// EqualItem compares every constraint of the two items. Op "1" equals "".
func EqualItem(a, b Item) bool {
	if a.Near != b.Near || a.Text != b.Text || a.Lower != b.Lower {
		return false
	}

	if a.Lemma != b.Lemma || a.Pos != b.Pos || a.Tag != b.Tag || a.Dep != b.Dep {
		return false
	}

	if a.Shape != b.Shape || a.EntType != b.EntType {
		return false
	}

	if normOp(a.Op) != normOp(b.Op) {
		return false
	}

	return equalFlag(a.IsAlpha, b.IsAlpha) &&
		equalFlag(a.IsPunct, b.IsPunct) &&
		equalFlag(a.IsDigit, b.IsDigit) &&
		equalFlag(a.LikeNum, b.LikeNum) &&
		equalFlag(a.IsStop, b.IsStop)
}

func normOp(op string) string {
	if op == "1" {
		return OpOne
	}
	return op
}

func equalFlag(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
