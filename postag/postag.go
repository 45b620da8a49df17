// Package postag labels tokens with their grammatical category.
package postag

import (
	"strings"

	"github.com/jdkato/prose/tag"
)

// Tagged is a word and its Penn Treebank tag.
type Tagged struct {
	Text string
	Tag  string
}

// Tagger is an averaged perceptron tagger trained on the Penn Treebank.
type Tagger struct {
	pt *tag.PerceptronTagger
}

func NewTagger() *Tagger {
	return &Tagger{pt: tag.NewPerceptronTagger()}
}

// Tag returns one tag per word, in order.
func (t *Tagger) Tag(words []string) []Tagged {
	if len(words) == 0 {
		return nil
	}

	out := make([]Tagged, len(words))
	tokens := t.pt.Tag(words)
	for i, w := range words {
		out[i] = Tagged{Text: w, Tag: "X"}
		if i < len(tokens) {
			out[i].Tag = tokens[i].Tag
		}
	}

	return out
}

// Penn to universal POS
var universal = map[string]string{
	"CC":    "CCONJ",
	"CD":    "NUM",
	"DT":    "DET",
	"EX":    "PRON",
	"FW":    "X",
	"IN":    "ADP",
	"JJ":    "ADJ",
	"JJR":   "ADJ",
	"JJS":   "ADJ",
	"LS":    "X",
	"MD":    "AUX",
	"NN":    "NOUN",
	"NNS":   "NOUN",
	"NNP":   "PROPN",
	"NNPS":  "PROPN",
	"PDT":   "DET",
	"POS":   "PART",
	"PRP":   "PRON",
	"PRP$":  "PRON",
	"RB":    "ADV",
	"RBR":   "ADV",
	"RBS":   "ADV",
	"RP":    "ADP",
	"SYM":   "SYM",
	"TO":    "PART",
	"UH":    "INTJ",
	"VB":    "VERB",
	"VBD":   "VERB",
	"VBG":   "VERB",
	"VBN":   "VERB",
	"VBP":   "VERB",
	"VBZ":   "VERB",
	"WDT":   "DET",
	"WP":    "PRON",
	"WP$":   "PRON",
	"WRB":   "ADV",
	"$":     "SYM",
	"#":     "SYM",
	".":     "PUNCT",
	",":     "PUNCT",
	":":     "PUNCT",
	"(":     "PUNCT",
	")":     "PUNCT",
	"``":    "PUNCT",
	"''":    "PUNCT",
	"-LRB-": "PUNCT",
	"-RRB-": "PUNCT",
	"HYPH":  "PUNCT",
	"NFP":   "PUNCT",
}

// forms of be are auxiliaries in any position, copulas included
var beForms = map[string]struct{}{
	"be": {}, "am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "been": {}, "being": {},
	"'s": {}, "'re": {}, "'m": {},
}

var auxiliaries = map[string]struct{}{
	"have": {}, "has": {}, "had": {}, "having": {},
	"do": {}, "does": {}, "did": {},
	"'ve": {}, "'d": {},
}

// Universal maps a Penn Treebank tag to a universal POS tag.
func Universal(pennTag string) string {
	if u, ok := universal[pennTag]; ok {
		return u
	}
	return "X"
}

// UniversalFor refines Universal with the word. Forms of be tagged as verbs
// are always auxiliaries. Forms of have and do are auxiliaries when
// followed by another verb.
func UniversalFor(word, pennTag, nextTag string) string {
	u := Universal(pennTag)
	if u != "VERB" {
		return u
	}

	w := strings.ToLower(word)
	if _, ok := beForms[w]; ok {
		return "AUX"
	}
	if _, ok := auxiliaries[w]; ok && strings.HasPrefix(nextTag, "VB") {
		return "AUX"
	}

	return u
}
