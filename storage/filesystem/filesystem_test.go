package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
)

func sentenceOf(id int, lemmas ...string) sent.Sentence {
	s := sent.Sentence{Id: id}
	for i, l := range lemmas {
		s.Tokens = append(s.Tokens, sent.Token{Id: i, Index: i, Text: l, Lemma: l})
	}
	return s
}

func newDocStore(t *testing.T) *DocStore {
	t.Helper()
	dir := t.TempDir()

	docs := []sent.Doc{
		{Title: "b.json", Labels: []string{"novel", "spanish"}, Sentences: []sent.Sentence{
			sentenceOf(0, "el", "perro", "ladrar"),
			sentenceOf(1, "el", "gato", "dormir"),
		}},
		{Title: "a.json", Labels: []string{"essay"}, Sentences: []sent.Sentence{
			sentenceOf(0, "el", "perro", "comer"),
		}},
	}
	for _, d := range docs {
		require.NoError(t, WriteDoc(filepath.Join(dir, d.Title), d))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600))

	store, err := NewDocStore(dir)
	require.NoError(t, err)
	return store
}

func TestDocStoreListRead(t *testing.T) {
	store := newDocStore(t)

	docs, err := store.List("")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.json", docs[0].Title)
	assert.Equal(t, 0, docs[0].Id)
	assert.Equal(t, "b.json", docs[1].Title)
	assert.Nil(t, docs[1].Sentences)

	docs, err = store.List("nov")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].Id)

	doc, err := store.Read(1)
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, 1, doc.Sentences[1].DocId)

	_, err = store.Read(2)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Read(-1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocStoreLabels(t *testing.T) {
	store := newDocStore(t)

	labels, err := store.Labels("")
	require.NoError(t, err)
	assert.Equal(t, []string{"essay", "novel", "spanish"}, labels)

	labels, err = store.Labels("s")
	require.NoError(t, err)
	assert.Equal(t, []string{"essay", "spanish"}, labels)
}

func collect(t *testing.T, store storage.DocReader, lemmas, labels []string, limit int) ([]sent.Sentence, int) {
	t.Helper()
	var all []sent.Sentence
	var cursor storage.Cursor
	pages := 0
	for {
		var page []sent.Sentence
		next, err := store.FindCandidates(lemmas, labels, cursor, limit, func(s sent.Sentence) error {
			page = append(page, s)
			return nil
		})
		require.NoError(t, err)
		if len(page) == 0 {
			assert.Equal(t, cursor, next)
			return all, pages
		}
		pages++
		all = append(all, page...)
		cursor = next
	}
}

func TestDocStoreFindCandidates(t *testing.T) {
	store := newDocStore(t)

	got, pages := collect(t, store, []string{"perro"}, nil, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 2, pages)
	assert.Equal(t, 0, got[0].DocId)
	assert.Equal(t, 1, got[1].DocId)

	got, _ = collect(t, store, []string{"el", "gato"}, nil, 10)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Id)

	got, _ = collect(t, store, []string{"perro"}, []string{"nov", "span"}, 10)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].DocId)

	got, _ = collect(t, store, nil, nil, 0)
	assert.Len(t, got, 3)

	got, _ = collect(t, store, []string{"perro"}, []string{"poetry"}, 10)
	assert.Empty(t, got)
}

func TestDocStorePreload(t *testing.T) {
	store := newDocStore(t)

	var names []string
	err := store.Preload([]string{"essay"}, func(current, total int, name string) {
		assert.Equal(t, 2, total)
		names = append(names, name)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)

	got, _ := collect(t, store, []string{"el"}, []string{"essay"}, 10)
	assert.Len(t, got, 1)

	// unlabelled docs are read again on demand
	doc, err := store.Read(1)
	require.NoError(t, err)
	assert.Len(t, doc.Sentences, 2)
}

func TestDocStoreWrite(t *testing.T) {
	store := newDocStore(t)

	id, err := store.Write(sent.Doc{Title: "aa", Sentences: []sent.Sentence{sentenceOf(0, "nuevo")}})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	doc, err := store.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "aa.json", doc.Title)
	assert.Equal(t, 1, doc.Sentences[0].DocId)

	doc, err = store.Read(2)
	require.NoError(t, err)
	assert.Equal(t, "b.json", doc.Title)
	assert.Equal(t, 2, doc.Sentences[0].DocId)

	_, err = store.Write(sent.Doc{Title: "aa.json"})
	assert.Error(t, err)
	_, err = store.Write(sent.Doc{})
	assert.Error(t, err)

	// a new store sees the same order
	reopened, err := NewDocStore(store.docDir)
	require.NoError(t, err)
	docs, err := reopened.List("")
	require.NoError(t, err)
	assert.Equal(t, "aa.json", docs[1].Title)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "quijote.json", FileName(" quijote "))
	assert.Equal(t, "a_b.json", FileName("a/b.json"))
	assert.Empty(t, FileName("  "))
}

func TestRuleStore(t *testing.T) {
	rs := NewRuleStore(t.TempDir())

	p1, err := pattern.Parse([]string{"cuando", "3", "VERB"})
	require.NoError(t, err)
	p2, err := pattern.Parse([]string{"LOWER=hola,OP=+"})
	require.NoError(t, err)

	require.NoError(t, rs.Write(pattern.Rule{Name: "tiempo", Patterns: []pattern.Pattern{p1, p2}}))
	require.NoError(t, rs.Write(pattern.Rule{Name: "empty"}))

	data, err := os.ReadFile(filepath.Join(rs.Root(), "tiempo.json"))
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "\n"))

	r, err := rs.Read("tiempo")
	require.NoError(t, err)
	require.Len(t, r.Patterns, 2)
	assert.True(t, pattern.Equal(p1, r.Patterns[0]))
	assert.True(t, pattern.Equal(p2, r.Patterns[1]))

	lib, err := rs.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"empty", "tiempo"}, lib.Names())

	_, err = rs.Read("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, rs.Write(pattern.Rule{Name: "a/b"}), pattern.ErrInvalid)
}

func TestRuleStoreLowercaseKeys(t *testing.T) {
	dir := t.TempDir()
	content := `[
	[{"lemma":"cuando"},{"near":3,"tag":"VERB"}]
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cuando.json"), []byte(content), 0o600))

	r, err := NewRuleStore(dir).Read("cuando")
	require.NoError(t, err)
	require.Len(t, r.Patterns, 1)
	assert.Equal(t, "cuando", r.Patterns[0][0].Lemma)
	assert.Equal(t, 3, r.Patterns[0][1].Near)
}
