package zombiezen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
)

func newPool(t *testing.T) *sqlitex.Pool {
	t.Helper()
	pool, err := NewPool(filepath.Join(t.TempDir(), "annotext.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func sentenceOf(id int, lemmas ...string) sent.Sentence {
	s := sent.Sentence{Id: id}
	for i, l := range lemmas {
		s.Tokens = append(s.Tokens, sent.Token{Id: i, Index: i, Text: l, Lemma: l})
	}
	return s
}

func newDocStore(t *testing.T) *DocStore {
	t.Helper()
	store, err := NewDocStore(newPool(t))
	require.NoError(t, err)

	id, err := store.Write(sent.Doc{
		Title:  "quijote",
		Labels: []string{"novel", "spanish"},
		Text:   "el perro ladrar el gato dormir",
		Ents:   []sent.Span{{Start: 1, End: 2, Label: "ANIMAL"}},
		Sentences: []sent.Sentence{
			sentenceOf(0, "el", "perro", "ladrar"),
			sentenceOf(1, "el", "gato", "dormir", "el"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = store.Write(sent.Doc{
		Title:     "ensayo",
		Labels:    []string{"essay"},
		Sentences: []sent.Sentence{sentenceOf(0, "el", "perro", "comer")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	return store
}

func TestDocStoreRead(t *testing.T) {
	store := newDocStore(t)

	doc, err := store.Read(1)
	require.NoError(t, err)
	assert.Equal(t, "quijote", doc.Title)
	assert.Equal(t, []string{"novel", "spanish"}, doc.Labels)
	assert.Equal(t, "el perro ladrar el gato dormir", doc.Text)
	assert.Equal(t, []sent.Span{{Start: 1, End: 2, Label: "ANIMAL"}}, doc.Ents)
	assert.Empty(t, doc.Chunks)
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, 1, doc.Sentences[1].Id)
	assert.Equal(t, 1, doc.Sentences[1].DocId)
	assert.Equal(t, "gato", doc.Sentences[1].Tokens[1].Lemma)

	_, err = store.Read(99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocStoreList(t *testing.T) {
	store := newDocStore(t)

	docs, err := store.List("")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "quijote", docs[0].Title)
	assert.Nil(t, docs[0].Sentences)

	docs, err = store.List("ess")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 2, docs[0].Id)

	labels, err := store.Labels("")
	require.NoError(t, err)
	assert.Equal(t, []string{"essay", "novel", "spanish"}, labels)

	labels, err = store.Labels("n")
	require.NoError(t, err)
	assert.Equal(t, []string{"novel", "spanish"}, labels)
}

func TestDocStoreLabelsWithComma(t *testing.T) {
	pool := newPool(t)
	store, err := NewDocStore(pool)
	require.NoError(t, err)

	id, err := store.Write(sent.Doc{Title: "cuentos", Labels: []string{"fiction, short", "spanish"}})
	require.NoError(t, err)

	doc, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"fiction, short", "spanish"}, doc.Labels)

	labels, err := store.Labels("")
	require.NoError(t, err)
	assert.Equal(t, []string{"fiction, short", "spanish"}, labels)

	// rows written before labels were JSON encoded
	conn, err := pool.Take(t.Context())
	require.NoError(t, err)
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []any{"viejo", "novel,essay"},
	})
	pool.Put(conn)
	require.NoError(t, err)

	docs, err := store.List("ess")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"novel", "essay"}, docs[0].Labels)
}

func find(t *testing.T, store *DocStore, lemmas, labels []string, limit int) []sent.Sentence {
	t.Helper()
	var all []sent.Sentence
	var cursor storage.Cursor
	for {
		var page []sent.Sentence
		next, err := store.FindCandidates(lemmas, labels, cursor, limit, func(s sent.Sentence) error {
			page = append(page, s)
			return nil
		})
		require.NoError(t, err)
		if len(page) == 0 {
			return all
		}
		require.Greater(t, next, cursor)
		all = append(all, page...)
		cursor = next
	}
}

func TestDocStoreFindCandidates(t *testing.T) {
	store := newDocStore(t)

	got := find(t, store, []string{"perro"}, nil, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].DocId)
	assert.Equal(t, 2, got[1].DocId)

	got = find(t, store, []string{"el", "gato"}, nil, 10)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Id)

	got = find(t, store, []string{"perro"}, []string{"ess"}, 10)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].DocId)

	got = find(t, store, []string{"perro"}, []string{"poetry"}, 10)
	assert.Empty(t, got)

	got = find(t, store, nil, nil, 2)
	assert.Len(t, got, 3)

	assert.Empty(t, find(t, store, []string{"perro", "gato"}, nil, 10))
}

func TestRuleStore(t *testing.T) {
	rs, err := NewRuleStore(newPool(t))
	require.NoError(t, err)

	p1, err := pattern.Parse([]string{"cuando", "3", "VERB"})
	require.NoError(t, err)
	p2, err := pattern.Parse([]string{"casa"})
	require.NoError(t, err)

	require.NoError(t, rs.Write(pattern.Rule{Name: "tiempo", Patterns: []pattern.Pattern{p1}}))
	require.NoError(t, rs.Write(pattern.Rule{Name: "lugar"}))

	// a second write replaces the rule
	require.NoError(t, rs.Write(pattern.Rule{Name: "tiempo", Patterns: []pattern.Pattern{p1, p2}}))

	r, err := rs.Read("tiempo")
	require.NoError(t, err)
	require.Len(t, r.Patterns, 2)
	assert.True(t, pattern.Equal(p2, r.Patterns[1]))

	lib, err := rs.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"lugar", "tiempo"}, lib.Names())

	_, err = rs.Read("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, rs.Write(pattern.Rule{}), pattern.ErrInvalid)
}
