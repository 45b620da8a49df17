// Package filesystem stores docs and rules as JSON files in a directory.
package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
)

// DocStore keeps one JSON file per doc. Doc ids are the positions of the
// file names in sorted order.
type DocStore struct {
	docDir string

	mu sync.Mutex
	// In-memory cache
	docs   []sent.Doc
	loaded []bool

	// labels read, content possibly dropped
	meta []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. Only file names are
// read.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	h := &DocStore{docDir: docDir}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		// os.ReadDir sorts by file name
		h.docs = append(h.docs, sent.Doc{Id: len(h.docs), Title: file.Name()})
		h.loaded = append(h.loaded, false)
		h.meta = append(h.meta, false)
	}

	return h, nil
}

// Preload reads the docs matching all labels into memory. The callback is
// called for each file loaded.
func (h *DocStore) Preload(labels []string, cb func(current, total int, name string)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.docs[i].Title)
		}

		if err := h.load(i); err != nil {
			return err
		}
	}

	// Keep only the content of the labelled docs
	for i := range h.docs {
		if !storage.HasAllLabels(h.docs[i].Labels, labels) {
			h.docs[i].Sentences = nil
			h.loaded[i] = false
		}
	}

	return nil
}

// load reads doc i if it is not in memory. Callers hold the lock.
func (h *DocStore) load(i int) error {
	if h.loaded[i] {
		return nil
	}

	doc, err := ReadDoc(filepath.Join(h.docDir, h.docs[i].Title))
	if err != nil {
		return err
	}

	// Title and Id come from the file name
	doc.Id = i
	doc.Title = h.docs[i].Title
	for si := range doc.Sentences {
		doc.Sentences[si].DocId = i
	}

	h.docs[i] = doc
	h.loaded[i] = true
	h.meta[i] = true
	return nil
}

// matches reports whether doc i has all labels, reading it if needed.
func (h *DocStore) matches(i int, labels []string) (bool, error) {
	if !h.meta[i] {
		if err := h.load(i); err != nil {
			return false, err
		}
	}
	return storage.HasAllLabels(h.docs[i].Labels, labels), nil
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var docs []sent.Doc
	for i := range h.docs {
		if !h.meta[i] {
			if err := h.load(i); err != nil {
				return nil, err
			}
		}

		d := h.docs[i]
		if !storage.HasLabel(d.Labels, labelMatch) {
			continue
		}
		docs = append(docs, sent.Doc{Id: d.Id, Title: d.Title, Labels: d.Labels})
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}
	if err := h.load(id); err != nil {
		return sent.Doc{}, err
	}
	return h.docs[id], nil
}

// FindCandidates scans the sentences of the labelled docs in id order. The
// cursor is the 1-based position of the last sentence returned in that
// scan, so it is only valid for the same labels.
func (h *DocStore) FindCandidates(lemmas []string, labels []string, after storage.Cursor, limit int, onCandidate func(sent.Sentence) error) (storage.Cursor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var pos storage.Cursor
	found := 0
	for i := range h.docs {
		ok, err := h.matches(i, labels)
		if err != nil {
			return after, err
		}
		if !ok {
			continue
		}
		if err := h.load(i); err != nil {
			return after, err
		}

		doc := h.docs[i]
		for _, s := range doc.Sentences {
			pos++
			if pos <= after {
				continue
			}
			if !storage.ContainsAll(s, lemmas) {
				continue
			}

			if err := onCandidate(s); err != nil {
				return after, err
			}
			after = pos
			found++

			if limit > 0 && found == limit {
				return after, nil
			}
		}
	}

	return after, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	docs, err := h.List("")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var labels []string
	for _, d := range docs {
		for _, l := range d.Labels {
			if seen[l] || !strings.Contains(l, pattern) {
				continue
			}
			seen[l] = true
			labels = append(labels, l)
		}
	}

	slices.Sort(labels)
	return labels, nil
}

// Write stores the doc in a new file named after its title. The ids of the
// docs whose names sort after it shift by one.
func (h *DocStore) Write(doc sent.Doc) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := FileName(doc.Title)
	if name == "" {
		return 0, fmt.Errorf("doc without title")
	}

	path := filepath.Join(h.docDir, name)
	if _, err := os.Stat(path); err == nil {
		return 0, fmt.Errorf("doc %s already exists", name)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}

	doc.Title = name
	if err := WriteDoc(path, doc); err != nil {
		return 0, err
	}

	at, _ := slices.BinarySearchFunc(h.docs, name, func(d sent.Doc, n string) int {
		return strings.Compare(d.Title, n)
	})
	h.docs = slices.Insert(h.docs, at, doc)
	h.loaded = slices.Insert(h.loaded, at, true)
	h.meta = slices.Insert(h.meta, at, true)

	for i := at; i < len(h.docs); i++ {
		h.docs[i].Id = i
		for si := range h.docs[i].Sentences {
			h.docs[i].Sentences[si].DocId = i
		}
	}

	return at, nil
}

// FileName returns the file name of a doc title: path separators are
// replaced and the .json extension is added.
func FileName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	title = strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(title)
	if filepath.Ext(title) != ".json" {
		title += ".json"
	}
	return title
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error in %s: %w", filepath.Base(path), err)
	}

	return doc, nil
}

// WriteDoc writes the doc as indented JSON.
func WriteDoc(path string, doc sent.Doc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
