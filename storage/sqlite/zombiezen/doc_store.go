package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates the doc tables if missing.
func NewDocStore(pool *sqlitex.Pool) (*DocStore, error) {
	if err := CreateSchemas(pool, DocsSchema); err != nil {
		return nil, err
	}
	return &DocStore{pool: pool}, nil
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			labels, err := decodeLabels(stmt.ColumnText(2))
			if err != nil {
				return err
			}
			doc := sent.Doc{
				Id:     stmt.ColumnInt(0),
				Title:  stmt.ColumnText(1),
				Labels: labels,
			}
			if storage.HasLabel(doc.Labels, labelMatch) {
				docs = append(docs, doc)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels, text, ents, chunks FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			labels, err := decodeLabels(stmt.ColumnText(1))
			if err != nil {
				return err
			}
			doc.Labels = labels
			doc.Text = stmt.ColumnText(2)
			if err := json.Unmarshal([]byte(stmt.ColumnText(3)), &doc.Ents); err != nil {
				return err
			}
			return json.Unmarshal([]byte(stmt.ColumnText(4)), &doc.Chunks)
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}

	err = sqlitex.Execute(conn, "SELECT doc_id, sent_id, data FROM sentences WHERE doc_id = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s, err := scanSentence(stmt, 0)
			if err != nil {
				return err
			}
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

// FindCandidates pages through the lemma index. The cursor is the sentence
// rowid.
func (h *DocStore) FindCandidates(lemmas []string, labels []string, after storage.Cursor, limit int, onCandidate func(sent.Sentence) error) (storage.Cursor, error) {
	var docIds []string
	if len(labels) > 0 {
		docs, err := h.List("")
		if err != nil {
			return after, err
		}
		for _, d := range docs {
			if storage.HasAllLabels(d.Labels, labels) {
				docIds = append(docIds, strconv.Itoa(d.Id))
			}
		}
		if len(docIds) == 0 {
			return after, nil
		}
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	// INTERSECT keeps the sentences that contain ALL lemmas.
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString("SELECT rowid, doc_id, sent_id, data FROM sentences WHERE rowid > ?")
	args = append(args, int64(after))

	if len(lemmas) > 0 {
		queryBuilder.WriteString(" AND rowid IN (")
		for i, lemma := range lemmas {
			if i > 0 {
				queryBuilder.WriteString(" INTERSECT ")
			}
			queryBuilder.WriteString("SELECT sentence_rowid FROM sentence_lemmas WHERE lemma = ?")
			args = append(args, lemma)
		}
		queryBuilder.WriteString(")")
	}

	if docIds != nil {
		// ids are integers from the docs table
		fmt.Fprintf(&queryBuilder, " AND doc_id IN (%s)", strings.Join(docIds, ","))
	}

	queryBuilder.WriteString(" ORDER BY rowid")
	if limit > 0 {
		queryBuilder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	newCursor := after
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s, err := scanSentence(stmt, 1)
			if err != nil {
				return err
			}
			if err := onCandidate(s); err != nil {
				return err
			}
			newCursor = storage.Cursor(stmt.ColumnInt64(0))
			return nil
		},
	})
	if err != nil {
		return after, err
	}

	return newCursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	docs, err := h.List("")
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, d := range docs {
		for _, l := range d.Labels {
			if strings.Contains(l, pattern) && !slices.Contains(labels, l) {
				labels = append(labels, l)
			}
		}
	}

	slices.Sort(labels)
	return labels, nil
}

// Write inserts the doc, its sentences and the sentence lemmas in one
// transaction.
func (h *DocStore) Write(doc sent.Doc) (id int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	ents, err := json.Marshal(spansOrEmpty(doc.Ents))
	if err != nil {
		return 0, err
	}
	chunks, err := json.Marshal(spansOrEmpty(doc.Chunks))
	if err != nil {
		return 0, err
	}
	labels, err := encodeLabels(doc.Labels)
	if err != nil {
		return 0, err
	}

	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels, text, ents, chunks) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []any{doc.Title, labels, doc.Text, string(ents), string(chunks)},
	})
	if err != nil {
		return 0, fmt.Errorf("insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for _, sentence := range doc.Sentences {
		data, marshalErr := json.Marshal(sentence.Tokens)
		if marshalErr != nil {
			return 0, marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sent_id, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{docID, sentence.Id, string(data)},
		})
		if err != nil {
			return 0, fmt.Errorf("insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		for _, lemma := range storage.SentenceLemmas(sentence) {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_lemmas (lemma, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []any{lemma, sentRowID},
			})
			if err != nil {
				return 0, fmt.Errorf("insert lemma: %w", err)
			}
		}
	}

	return int(docID), nil
}

// scanSentence reads the doc_id, sent_id and data columns starting at col.
func scanSentence(stmt *sqlite.Stmt, col int) (sent.Sentence, error) {
	s := sent.Sentence{
		DocId: stmt.ColumnInt(col),
		Id:    stmt.ColumnInt(col + 1),
	}
	if err := json.Unmarshal([]byte(stmt.ColumnText(col+2)), &s.Tokens); err != nil {
		return sent.Sentence{}, err
	}
	return s, nil
}

// encodeLabels stores labels as a JSON array, so labels may contain commas.
func encodeLabels(labels []string) (string, error) {
	if len(labels) == 0 {
		return "", nil
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeLabels reads a JSON array, or the older comma joined form.
func decodeLabels(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") {
		return strings.Split(s, ","), nil
	}

	var labels []string
	if err := json.Unmarshal([]byte(s), &labels); err != nil {
		return nil, fmt.Errorf("labels %q: %w", s, err)
	}
	return labels, nil
}

func spansOrEmpty(spans []sent.Span) []sent.Span {
	if spans == nil {
		return []sent.Span{}
	}
	return spans
}
