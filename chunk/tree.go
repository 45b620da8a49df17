package chunk

import (
	"strings"

	"github.com/revelaction/annotext/postag"
	sent "github.com/revelaction/annotext/sentence"
)

// Tree is a two level parse: the root S holds leaves and chunk nodes, and
// each chunk node holds leaves.
type Tree struct {
	Label    string
	Children []*Tree

	// leaf only
	Index int
	Word  string
	Tag   string
}

func (t *Tree) IsLeaf() bool {
	return t.Label == ""
}

// String returns the bracketed form, e.g. (S (NP the/DT dog/NN) barked/VBD).
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Tree) write(b *strings.Builder) {
	if t.IsLeaf() {
		b.WriteString(t.Word + "/" + t.Tag)
		return
	}

	b.WriteString("(" + t.Label)
	for _, c := range t.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// Leaves returns the leaves under t in order.
func (t *Tree) Leaves() []*Tree {
	if t.IsLeaf() {
		return []*Tree{t}
	}

	var out []*Tree
	for _, c := range t.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Subtrees returns the chunk nodes with the given label. An empty label
// returns all of them.
func (t *Tree) Subtrees(label string) []*Tree {
	var out []*Tree
	for _, c := range t.Children {
		if c.IsLeaf() {
			continue
		}
		if label == "" || c.Label == label {
			out = append(out, c)
		}
	}
	return out
}

// Spans returns the token ranges of the chunks with the given label. An
// empty label returns all chunks.
func (t *Tree) Spans(label string) []sent.Span {
	var spans []sent.Span
	for _, c := range t.Subtrees(label) {
		leaves := c.Leaves()
		spans = append(spans, sent.Span{
			Start: leaves[0].Index,
			End:   leaves[len(leaves)-1].Index + 1,
			Label: c.Label,
		})
	}
	return spans
}

// Text returns the words under t joined by a space.
func (t *Tree) Text() string {
	leaves := t.Leaves()
	words := make([]string, len(leaves))
	for i, l := range leaves {
		words[i] = l.Word
	}
	return strings.Join(words, " ")
}

func buildTree(tagged []postag.Tagged, owner []int, labels map[int]string) *Tree {
	root := &Tree{Label: "S"}

	var node *Tree
	prev := free
	for i, tg := range tagged {
		leaf := &Tree{Index: i, Word: tg.Text, Tag: tg.Tag}

		id := owner[i]
		if id == free {
			root.Children = append(root.Children, leaf)
			node, prev = nil, free
			continue
		}

		if node == nil || id != prev {
			node = &Tree{Label: labels[id]}
			root.Children = append(root.Children, node)
		}
		node.Children = append(node.Children, leaf)
		prev = id
	}

	return root
}
