package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/revelaction/annotext/chunk"
	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/stat"
)

// Table is a column aligned table of strings.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers}
}

func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// Write renders the table to w. The color profile follows w, so a buffer or
// a pipe gets plain text.
func (t *Table) Write(w io.Writer) error {
	_, err := io.WriteString(w, t.View(lipgloss.NewRenderer(w)))
	return err
}

// View renders the table with the styles of re.
func (t *Table) View(re *lipgloss.Renderer) string {
	if len(t.Headers) == 0 {
		return ""
	}

	titleStyle := re.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle := re.NewStyle().Bold(true).Padding(0, 1)
	rowStyle := re.NewStyle().Padding(0, 1)
	sepStyle := re.NewStyle().Foreground(lipgloss.Color("8"))

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}

	// padding is part of the style width
	totalWidth := len(colWidths) - 1
	for i := range colWidths {
		colWidths[i] += 2
		totalWidth += colWidths[i]
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(titleStyle.Render(t.Title))
		sb.WriteString("\n")
	}

	writeRow := func(style lipgloss.Style, row []string) {
		for i := range colWidths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(style.Width(colWidths[i]).Render(cell))
			if i < len(colWidths)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headerStyle, t.Headers)
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)))
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(rowStyle, row)
	}

	return sb.String()
}

// Tokens writes one row per token with its annotations.
func Tokens(w io.Writer, tokens []sent.Token) error {
	t := NewTable("", "id", "text", "lemma", "pos", "tag", "stem", "shape", "flags", "ent")
	for _, tok := range tokens {
		ent := tok.EntIOB
		if tok.EntType != "" {
			ent += "-" + tok.EntType
		}
		t.AddRow(strconv.Itoa(tok.Id), tok.Text, tok.Lemma, tok.Pos, tok.Tag, tok.Stem, tok.Shape, flags(tok), ent)
	}
	return t.Write(w)
}

func flags(tok sent.Token) string {
	var fl []string
	if tok.IsAlpha {
		fl = append(fl, "alpha")
	}
	if tok.IsDigit {
		fl = append(fl, "digit")
	}
	if tok.LikeNum {
		fl = append(fl, "num")
	}
	if tok.IsPunct {
		fl = append(fl, "punct")
	}
	if tok.IsStop {
		fl = append(fl, "stop")
	}
	return strings.Join(fl, ",")
}

// SpanColumn is an extra table column computed from each span.
type SpanColumn struct {
	Name  string
	Value func(s sent.Span) string
}

// Ents writes the named entities of doc, with one more column per cols.
func Ents(w io.Writer, doc *sent.Doc, cols ...SpanColumn) error {
	headers := []string{"start", "end", "label", "text"}
	for _, c := range cols {
		headers = append(headers, c.Name)
	}

	t := NewTable("entities", headers...)
	for _, e := range doc.Ents {
		row := []string{strconv.Itoa(e.Start), strconv.Itoa(e.End), e.Label, doc.SpanText(e)}
		for _, c := range cols {
			row = append(row, c.Value(e))
		}
		t.AddRow(row...)
	}
	return t.Write(w)
}

// Chunks writes the phrase chunks of doc.
func Chunks(w io.Writer, doc *sent.Doc) error {
	t := NewTable("chunks", "start", "end", "label", "text")
	for _, c := range doc.Chunks {
		t.AddRow(strconv.Itoa(c.Start), strconv.Itoa(c.End), c.Label, doc.SpanText(c))
	}
	return t.Write(w)
}

// ChunkTree writes the bracketed parse and one line per chunk.
func ChunkTree(w io.Writer, tree *chunk.Tree) error {
	if _, err := fmt.Fprintln(w, tree.String()); err != nil {
		return err
	}
	for _, sub := range tree.Subtrees("") {
		if _, err := fmt.Fprintf(w, "  %-4s %s\n", sub.Label, sub.Text()); err != nil {
			return err
		}
	}
	return nil
}

// Rule writes the rule patterns, one per line.
func Rule(w io.Writer, r pattern.Rule) error {
	for i, p := range r.Patterns {
		if _, err := fmt.Fprintf(w, "%3d %s\n", i, p); err != nil {
			return err
		}
	}
	return nil
}

// Freq writes the word counts with their relative frequency.
func Freq(w io.Writer, samples []stat.Sample, total int) error {
	t := NewTable("", "word", "count", "freq")
	for _, s := range samples {
		var f float64
		if total > 0 {
			f = float64(s.Count) / float64(total)
		}
		t.AddRow(s.Word, strconv.Itoa(s.Count), strconv.FormatFloat(f, 'f', 4, 64))
	}
	return t.Write(w)
}

func Collocations(w io.Writer, cs []stat.Collocation) error {
	t := NewTable("", "bigram", "count", "score")
	for _, c := range cs {
		t.AddRow(c.String(), strconv.Itoa(c.Count), strconv.FormatFloat(c.Score, 'f', 3, 64))
	}
	return t.Write(w)
}

// Concordance writes the keyword in context lines after a summary line.
func Concordance(w io.Writer, lines []stat.ConcordanceLine, total int) error {
	if total == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}

	if _, err := fmt.Fprintf(w, "Displaying %d of %d matches:\n", len(lines), total); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l.Line); err != nil {
			return err
		}
	}
	return nil
}

// Dispersion writes the word offsets of each target.
func Dispersion(w io.Writer, targets []string, offsets map[string][]int) error {
	t := NewTable("", "word", "count", "offsets")
	for _, target := range targets {
		offs := offsets[target]
		strs := make([]string, len(offs))
		for i, o := range offs {
			strs[i] = strconv.Itoa(o)
		}
		t.AddRow(target, strconv.Itoa(len(offs)), strings.Join(strs, " "))
	}
	return t.Write(w)
}

// Stats writes the corpus counts and the sentence length distribution.
func Stats(w io.Writer, s stat.Stats) error {
	summary := NewTable("", "docs", "sentences", "tokens", "mean")
	summary.AddRow(strconv.Itoa(s.NumDocs), strconv.Itoa(s.NumSentences), strconv.Itoa(s.NumTokens), strconv.Itoa(s.TokensPerSentenceMean))
	if err := summary.Write(w); err != nil {
		return err
	}

	dist := NewTable("", "length", "sentences")
	for _, l := range s.Lengths() {
		dist.AddRow(strconv.Itoa(l), strconv.Itoa(s.TokensPerSentenceDis[l]))
	}
	return dist.Write(w)
}
