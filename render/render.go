// Package render prints sentences, matches and annotations.
package render

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/revelaction/annotext/match"
	sent "github.com/revelaction/annotext/sentence"
)

const (
	partialOffset = 6
	Defaultformat = "all"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

var maskRx = regexp.MustCompile(`#+`)

func SupportedFormats() []string {
	return []string{"all", "part", "lemma", "aggr"}
}

// MatchRenderer writes sentence matches.
type MatchRenderer interface {
	Match(results []*match.SentenceMatch) error
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	PrefixDocFunc  func(*match.SentenceMatch) string
	PrefixRuleFunc func(*match.SentenceMatch) string

	// Format determines the format of the sentence
	//
	// all: print all sentence
	// part: print the surrounding of the matches in the sentence, cut the rest.
	// lemma: print only the lemmas of the matched words
	// aggr: print the matched lemma strings with their sentence count
	Format string

	// Show only sentences with this amount of matches
	NumMatches int

	DocNames map[int]string
}

var _ MatchRenderer = (*Renderer)(nil)

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Format: Defaultformat, DocNames: map[int]string{}}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Match writes the matched sentences in the current Format. Results are
// expected sorted.
func (r *Renderer) Match(resultsSorted []*match.SentenceMatch) error {
	// if aggr format, we collect the aggr lemmas here
	aggregatedLemmas := map[string]int{}

	for _, sentenceMatch := range resultsSorted {
		if r.NumMatches > 0 && sentenceMatch.NumExprs < r.NumMatches {
			break
		}

		sentTokens := sentenceMatch.AllTokens()

		var text string
		switch r.Format {
		case "part":
			text = r.syntagma(sentenceMatch.Sentence.Tokens, sentTokens)
		case "lemma":
			text = lemmas(sentTokens)
		case "aggr":
			aggregateLemma(sentTokens, aggregatedLemmas)
			continue
		default:
			text = r.sentence(sentenceMatch.Sentence.Tokens, sentTokens)
		}

		prefixDoc := r.buildPrefixDoc(sentenceMatch)
		prefixRule := r.buildPrefixRule(sentenceMatch)
		if _, err := fmt.Fprintf(r.W, "%s%s%s\n", prefixDoc, prefixRule, strings.ReplaceAll(text, "\n", " ")); err != nil {
			return err
		}
	}

	if r.Format == "aggr" {
		return r.aggrLemmas(aggregatedLemmas)
	}

	return nil
}

// Sentence writes the sentence text after prefix.
func (r *Renderer) Sentence(s []sent.Token, prefix string) error {
	_, err := fmt.Fprintf(r.W, "%s%s\n", prefix, r.SentenceString(s, nil))
	return err
}

// SentenceString rebuilds the sentence text, highlighting matches.
func (r *Renderer) SentenceString(s []sent.Token, matches []sent.Token) string {
	text := r.sentence(s, matches)
	return strings.ReplaceAll(text, "\n", " ")
}

// SentenceBlindedString returns the original text of the sentence s with the
// words in matches substituted by a mask (f.ex. ###)
func (r *Renderer) SentenceBlindedString(s []sent.Token, matches []sent.Token) string {
	blinded := make([]sent.Token, 0, len(s))
	for _, t := range s {
		for _, mt := range matches {
			if t.Index == mt.Index {
				t.Text = strings.Repeat("#", len([]rune(t.Text)))
				break
			}
		}
		blinded = append(blinded, t)
	}

	text := (&Renderer{}).sentence(blinded, nil)
	return maskRx.ReplaceAllLiteralString(strings.ReplaceAll(text, "\n", " "), "###")
}

// sentence rebuilds the text from the token offsets. Tokens of a multi-token
// word share the same Idx and Text and print once.
func (r *Renderer) sentence(sentence, matches []sent.Token) string {
	var str strings.Builder
	var lastIdx, lastLen int
	for i, token := range sentence {
		l := len([]rune(token.Text))
		if i == 0 {
			str.WriteString(colorToken(token, matches, r.HasColor))
			lastIdx = token.Idx
			lastLen = l
			continue
		}

		diff := token.Idx - lastIdx
		if diff > 0 {
			// rewritten tokens can be longer than their source text
			str.WriteString(strings.Repeat(" ", max(0, diff-lastLen)))
			str.WriteString(colorToken(token, matches, r.HasColor))
		}

		lastIdx = token.Idx
		lastLen = l
	}

	return str.String()
}

// syntagma renders partialOffset tokens around the matches.
func (r *Renderer) syntagma(sentence, matches []sent.Token) string {
	// if not matches, we print the whole sentence
	if len(matches) == 0 || len(sentence) == 0 {
		return r.sentence(sentence, matches)
	}

	firstMatchIndex := matches[0].Index
	lastMatchIndex := matches[0].Index
	for _, mt := range matches {
		firstMatchIndex = min(firstMatchIndex, mt.Index)
		lastMatchIndex = max(lastMatchIndex, mt.Index)
	}

	lastTokenIndex := len(sentence) - 1

	syntagmaFirstIdx := 0
	syntagmaLastIdx := lastTokenIndex

	if firstMatchIndex > partialOffset {
		syntagmaFirstIdx = firstMatchIndex - partialOffset
	}

	if lastTokenIndex-lastMatchIndex > partialOffset {
		syntagmaLastIdx = lastMatchIndex + partialOffset
	}

	return r.sentence(sentence[syntagmaFirstIdx:syntagmaLastIdx+1], matches)
}

func (r *Renderer) LemmaString(matches []sent.Token) string {
	return lemmas(matches)
}

// lemmas renders only the matched tokens (the lemma field)
func lemmas(matches []sent.Token) string {
	matchedWords := make([]string, 0, len(matches))
	for _, t := range matches {
		matchedWords = append(matchedWords, t.Lemma)
	}

	return strings.Join(matchedWords, " ")
}

func aggregateLemma(matches []sent.Token, aggrLemmas map[string]int) {
	matchedTokens := []sent.Token{}

OUTER:
	for _, t := range matches {
		// avoid duplicates word  (same index in sentence)
		for _, m := range matchedTokens {
			if m.Index == t.Index {
				continue OUTER
			}
		}

		matchedTokens = append(matchedTokens, t)
	}

	aggrLemmas[lemmas(matchedTokens)]++
}

func colorToken(token sent.Token, matches []sent.Token, hasColor bool) string {
	if !hasColor {
		return token.Text
	}

	for _, mt := range matches {
		if mt.Id == token.Id {
			return Green256 + token.Text + Off
		}
	}

	return token.Text
}

func (r *Renderer) buildPrefixDoc(sentenceMatch *match.SentenceMatch) string {
	if !r.HasPrefix {
		return PrefixFuncEmpty(sentenceMatch)
	}

	if r.PrefixDocFunc != nil {
		return r.PrefixDocFunc(sentenceMatch)
	}

	// Default
	return fmt.Sprintf("[%s %2d %5d:%2d] ✍  ", r.title(sentenceMatch.Sentence.DocId), sentenceMatch.Sentence.DocId, sentenceMatch.Sentence.Id, sentenceMatch.NumExprs)
}

func PrefixFuncEmpty(sentenceMatch *match.SentenceMatch) string {
	return ""
}

func PrefixFuncIconHand(sentenceMatch *match.SentenceMatch) string {
	return fmt.Sprintf("%2d ✍  ", sentenceMatch.Sentence.Id)
}

func PrefixFuncIconLabel(sentenceMatch *match.SentenceMatch) string {
	return fmt.Sprintf("%2d 🔖 ", sentenceMatch.Sentence.Id)
}

func (r *Renderer) buildPrefixRule(sm *match.SentenceMatch) string {
	if !r.HasPrefix || sm.RuleName == "" {
		return PrefixFuncEmpty(sm)
	}

	if r.PrefixRuleFunc != nil {
		return r.PrefixRuleFunc(sm)
	}

	rulePrefix := "🏷  " + r.color(Yellow256, sm.RuleName)
	return fmt.Sprintf("[%-30s] ✍  ", rulePrefix)
}

func (r *Renderer) title(docId int) string {
	title := []rune(r.DocNames[docId])
	var part string
	if len(title) <= 20 {
		part = fmt.Sprintf("%-20s", string(title))
	} else {
		part = string(title[:20])
	}

	return r.color(Grey256, part)
}

func (r *Renderer) color(code, s string) string {
	if !r.HasColor {
		return s
	}
	return code + s + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}

type aggr struct {
	NumSent  int
	LemmaStr string
}

// aggrLemmas writes the aggregated lemma strings, most frequent first, then
// shorter first.
func (r *Renderer) aggrLemmas(agls map[string]int) error {
	sl := make([]aggr, 0, len(agls))
	for lemmaStr, n := range agls {
		sl = append(sl, aggr{n, lemmaStr})
	}

	sort.Slice(sl, func(i, j int) bool {
		if sl[i].NumSent != sl[j].NumSent {
			return sl[i].NumSent > sl[j].NumSent
		}
		if len(sl[i].LemmaStr) != len(sl[j].LemmaStr) {
			return len(sl[i].LemmaStr) < len(sl[j].LemmaStr)
		}
		return sl[i].LemmaStr < sl[j].LemmaStr
	})

	var prefix string
	for _, s := range sl {
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%5d] ✍  ", s.NumSent)
		}

		if _, err := fmt.Fprintf(r.W, "%s%s\n", prefix, s.LemmaStr); err != nil {
			return err
		}
	}
	return nil
}
