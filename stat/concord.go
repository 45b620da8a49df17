package stat

import (
	"strings"
)

const (
	DefaultWidth = 79
	DefaultLines = 25
)

// ConcordanceLine is one occurrence of the query with its context.
type ConcordanceLine struct {
	// Offset is the word position of the query occurrence.
	Offset int
	Left   []string
	Query  string
	Right  []string

	// Line is the printable line: the left context right-justified to half
	// the width, the query and the right context cut at half the width.
	Line string
}

// Concordance returns the keyword-in-context lines of query, compared case
// insensitively. A query with spaces matches a phrase. It returns at most
// lines lines and the total number of occurrences.
func Concordance(words []string, query string, width, lines int) ([]ConcordanceLine, int) {
	if width <= 0 {
		width = DefaultWidth
	}
	if lines <= 0 {
		lines = DefaultLines
	}

	phrase := strings.Fields(strings.ToLower(query))
	if len(phrase) == 0 {
		return nil, 0
	}

	halfWidth := (width - len([]rune(strings.Join(phrase, " "))) - 2) / 2
	if halfWidth < 0 {
		halfWidth = 0
	}
	context := width / 4

	offsets := phraseOffsets(words, phrase)

	var out []ConcordanceLine
	for _, i := range offsets {
		if len(out) == lines {
			break
		}

		end := i + len(phrase)
		left := words[max(0, i-context):i]
		right := words[end:max(end, min(len(words), i+context))]

		leftPrint := lastRunes(strings.Join(left, " "), halfWidth)
		leftPrint = strings.Repeat(" ", halfWidth-len([]rune(leftPrint))) + leftPrint
		rightPrint := firstRunes(strings.Join(right, " "), halfWidth)

		q := strings.Join(words[i:end], " ")
		out = append(out, ConcordanceLine{
			Offset: i,
			Left:   left,
			Query:  q,
			Right:  right,
			Line:   strings.Join([]string{leftPrint, q, rightPrint}, " "),
		})
	}

	return out, len(offsets)
}

func phraseOffsets(words, phrase []string) []int {
	var offsets []int
OUTER:
	for i := 0; i+len(phrase) <= len(words); i++ {
		for j, p := range phrase {
			if strings.ToLower(words[i+j]) != p {
				continue OUTER
			}
		}
		offsets = append(offsets, i)
	}
	return offsets
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Dispersion returns the word offsets of each target. Comparison is exact.
func Dispersion(words []string, targets []string) map[string][]int {
	out := make(map[string][]int, len(targets))
	for _, t := range targets {
		out[t] = []int{}
	}

	for i, w := range words {
		if _, ok := out[w]; ok {
			out[w] = append(out[w], i)
		}
	}
	return out
}
