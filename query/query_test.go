package query

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/annotext/pattern"
	"github.com/revelaction/annotext/render"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage/filesystem"
)

func sentence(id int, s string) sent.Sentence {
	out := sent.Sentence{Id: id}
	idx := 0
	for i, w := range strings.Fields(s) {
		parts := strings.Split(w, "/")
		out.Tokens = append(out.Tokens, sent.Token{Id: i, Index: i, Idx: idx, Text: parts[0], Lemma: parts[1], Tag: parts[2]})
		idx += len(parts[0]) + 1
	}
	return out
}

func newHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	docDir := t.TempDir()
	doc := sent.Doc{Title: "a.json", Labels: []string{"novel"}, Sentences: []sent.Sentence{
		sentence(0, "Cuando/cuando/SCONJ vio/ver/VERB la/el/DET casa/casa/NOUN"),
		sentence(1, "La/el/DET casa/casa/NOUN era/ser/AUX grande/grande/ADJ"),
	}}
	require.NoError(t, filesystem.WriteDoc(filepath.Join(docDir, doc.Title), doc))
	docs, err := filesystem.NewDocStore(docDir)
	require.NoError(t, err)

	rules := filesystem.NewRuleStore(t.TempDir())
	p, err := pattern.Parse([]string{"cuando", "3", "VERB"})
	require.NoError(t, err)
	require.NoError(t, rules.Write(pattern.Rule{Name: "tiempo", Patterns: []pattern.Pattern{p}}))
	lib, err := rules.ReadAll()
	require.NoError(t, err)

	var buf bytes.Buffer
	return NewHandler(docs, rules, lib, render.NewRenderer(&buf), &buf), &buf
}

func TestSearch(t *testing.T) {
	h, buf := newHandler(t)

	results, err := h.Search("tiempo")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "tiempo", results[0].RuleName)

	results, err = h.Search("casa")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// rule and expression
	results, err = h.Search("tiempo casa")
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NoError(t, h.Renderer.Match(results))
	assert.Equal(t, "Cuando vio la casa\n", buf.String())
	assert.Equal(t, "a.json", h.Renderer.DocNames[0])

	_, err = h.Search("")
	assert.Error(t, err)

	_, err = h.Search("3 casa")
	assert.ErrorIs(t, err, pattern.ErrInvalid)
}

func TestSearchLabels(t *testing.T) {
	h, _ := newHandler(t)
	h.Labels = []string{"poetry"}

	results, err := h.Search("casa")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWatch(t *testing.T) {
	h, _ := newHandler(t)
	dir := h.Rules.(*filesystem.RuleStore).Root()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx, dir) }()

	// the watcher starts asynchronously, keep writing until it reloads
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "lugar.json"), []byte("[\n\t[{\"LEMMA\":\"donde\"}]\n]\n"), 0o600)
		_, ok := h.Library().Get("lugar")
		return ok
	}, 5*time.Second, 200*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
