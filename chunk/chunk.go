// Package chunk groups tagged tokens into flat phrases with a tag-pattern
// grammar.
//
// A grammar is a sequence of stages. Each line is either
//
//	LABEL: {<DT>?<JJ>*<NN>}     chunk rule
//	LABEL: }<JJ>{               chink rule
//
// or a rule without label that continues the previous one. Text after an
// unbracketed # is a comment. Inside angle brackets a tag pattern is a
// regular expression where . never crosses a tag boundary.
package chunk

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/revelaction/annotext/postag"
	sent "github.com/revelaction/annotext/sentence"
)

// NounChunks is the noun phrase grammar used for doc noun chunks.
const NounChunks = `NP: {<DT|PDT|PRP\$>*<CD>*<JJ.*|VBN|VBG>*<NN.*>+}`

var ErrGrammar = errors.New("invalid chunk grammar")

var labelRx = regexp.MustCompile(`^([A-Za-z_][\w-]*)\s*:\s*(.*)$`)

type ruleKind int

const (
	chunkRule ruleKind = iota
	chinkRule
)

type rule struct {
	label   string
	kind    ruleKind
	pattern string
	rx      *regexp.Regexp
}

// Parser is a regular expression chunk parser.
type Parser struct {
	rules []rule
}

// NewParser compiles the grammar.
func NewParser(grammar string) (*Parser, error) {
	p := &Parser{}
	label := ""

	for n, line := range strings.Split(grammar, "\n") {
		line = stripComment(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		if m := labelRx.FindStringSubmatch(line); m != nil {
			label = m[1]
			line = strings.TrimSpace(m[2])
		}

		if label == "" {
			return nil, fmt.Errorf("%w: line %d: rule without label", ErrGrammar, n+1)
		}

		rules, err := parseRules(label, line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrGrammar, n+1, err)
		}
		p.rules = append(p.rules, rules...)
	}

	if len(p.rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrGrammar)
	}

	return p, nil
}

// Labels returns the chunk labels of the grammar in order.
func (p *Parser) Labels() []string {
	var labels []string
	seen := map[string]bool{}
	for _, r := range p.rules {
		if !seen[r.label] {
			seen[r.label] = true
			labels = append(labels, r.label)
		}
	}
	return labels
}

// parseRules reads a sequence of {pattern} and }pattern{ groups.
func parseRules(label, line string) ([]rule, error) {
	var rules []rule
	rest := strings.TrimSpace(line)
	for rest != "" {
		var kind ruleKind
		var open, close byte
		switch rest[0] {
		case '{':
			kind, open, close = chunkRule, '{', '}'
		case '}':
			kind, open, close = chinkRule, '}', '{'
		default:
			return nil, fmt.Errorf("unexpected %q", rest)
		}

		end := strings.IndexByte(rest[1:], close)
		if end < 0 {
			return nil, fmt.Errorf("unbalanced %q in %q", string(open), rest)
		}

		pattern := rest[1 : end+1]
		rx, err := compile(pattern)
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule{label: label, kind: kind, pattern: pattern, rx: rx})
		rest = strings.TrimSpace(rest[end+2:])
	}

	return rules, nil
}

// compile converts a tag pattern into a regexp over <TAG> strings.
func compile(pattern string) (*regexp.Regexp, error) {
	pattern = strings.Join(strings.Fields(pattern), "")
	if pattern == "" {
		return nil, errors.New("empty tag pattern")
	}

	var b strings.Builder
	depth := 0
	for _, r := range pattern {
		switch {
		case r == '<':
			if depth > 0 {
				return nil, fmt.Errorf("nested < in %q", pattern)
			}
			depth++
			b.WriteString("(?:<(?:")
		case r == '>':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced > in %q", pattern)
			}
			depth--
			b.WriteString(")>)")
		case r == '{' || r == '}':
			return nil, fmt.Errorf("brace in tag pattern %q", pattern)
		case r == '.' && depth > 0:
			b.WriteString("[^<>]")
		default:
			b.WriteRune(r)
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unbalanced < in %q", pattern)
	}

	rx, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("tag pattern %q: %v", pattern, err)
	}
	return rx, nil
}

// stripComment removes a # comment that is not part of a <#> tag.
func stripComment(line string) string {
	depth := 0
	for i, r := range line {
		switch r {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case '#':
			if depth == 0 {
				return strings.TrimSpace(line[:i])
			}
		}
	}
	return line
}

// Parse chunks the tagged tokens and returns the tree.
func (p *Parser) Parse(tagged []postag.Tagged) *Tree {
	owner := make([]int, len(tagged))
	for i := range owner {
		owner[i] = free
	}

	labels := map[int]string{}
	next := 0

	for _, r := range p.rules {
		switch r.kind {
		case chunkRule:
			next = applyChunk(r, tagged, owner, labels, next)
		case chinkRule:
			next = applyChink(r, tagged, owner, labels, next)
		}
	}

	return buildTree(tagged, owner, labels)
}

// ParseTokens chunks sentence tokens using their Tag field.
func (p *Parser) ParseTokens(tokens []sent.Token) *Tree {
	tagged := make([]postag.Tagged, len(tokens))
	for i, t := range tokens {
		tagged[i] = postag.Tagged{Text: t.Text, Tag: t.Tag}
	}
	return p.Parse(tagged)
}

const free = -1

// applyChunk groups matches among tokens that are not yet in a chunk.
func applyChunk(r rule, tagged []postag.Tagged, owner []int, labels map[int]string, next int) int {
	i := 0
	for i < len(tagged) {
		if owner[i] != free {
			i++
			continue
		}

		j := i
		for j < len(tagged) && owner[j] == free {
			j++
		}

		for _, m := range matches(r.rx, tagged[i:j]) {
			id := next
			next++
			labels[id] = r.label
			for k := i + m[0]; k < i+m[1]; k++ {
				owner[k] = id
			}
		}

		i = j
	}

	return next
}

// applyChink removes matches from chunks of the rule label, splitting them.
func applyChink(r rule, tagged []postag.Tagged, owner []int, labels map[int]string, next int) int {
	i := 0
	for i < len(tagged) {
		id := owner[i]
		if id == free || labels[id] != r.label {
			i++
			continue
		}

		j := i
		for j < len(tagged) && owner[j] == id {
			j++
		}

		for _, m := range matches(r.rx, tagged[i:j]) {
			for k := i + m[0]; k < i+m[1]; k++ {
				owner[k] = free
			}
		}

		// remaining pieces after the first gap become new chunks
		seenGap := false
		current := id
		for k := i; k < j; k++ {
			if owner[k] == free {
				seenGap = true
				continue
			}
			if seenGap && (k == i || owner[k-1] == free) {
				current = next
				labels[current] = r.label
				next++
			}
			owner[k] = current
		}

		i = j
	}

	return next
}

// matches returns non-empty, non-overlapping matches as token ranges.
func matches(rx *regexp.Regexp, tagged []postag.Tagged) [][2]int {
	var b strings.Builder
	// byte offset -> token index, for token starts and the end
	bounds := map[int]int{}
	for i, t := range tagged {
		bounds[b.Len()] = i
		b.WriteString("<" + t.Tag + ">")
	}
	bounds[b.Len()] = len(tagged)

	var out [][2]int
	for _, loc := range rx.FindAllStringIndex(b.String(), -1) {
		if loc[0] == loc[1] {
			continue
		}
		start, ok1 := bounds[loc[0]]
		end, ok2 := bounds[loc[1]]
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, [2]int{start, end})
	}

	return out
}
