package filesystem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/annotext/pattern"
	"github.com/revelaction/annotext/storage"
)

// RuleStore keeps one JSON file per rule, named after the rule. The file
// holds the array of patterns.
type RuleStore struct {
	root string
}

var _ storage.RuleRepository = (*RuleStore)(nil)

func NewRuleStore(root string) *RuleStore {
	return &RuleStore{root: root}
}

// Root returns the rule directory.
func (rs *RuleStore) Root() string {
	return rs.root
}

func (rs *RuleStore) ReadAll() (pattern.Library, error) {
	names, err := rs.names()
	if err != nil {
		return nil, err
	}

	rules := pattern.Library{}
	for _, n := range names {
		r, err := rs.Read(n)
		if err != nil {
			return nil, err
		}

		rules = append(rules, r)
	}

	return rules, nil
}

func (rs *RuleStore) names() ([]string, error) {
	files, err := os.ReadDir(rs.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))
	}

	return names, nil
}

func (rs *RuleStore) Read(name string) (pattern.Rule, error) {
	tf, err := os.ReadFile(filepath.Join(rs.root, name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return pattern.Rule{}, fmt.Errorf("rule %s: %w", name, storage.ErrNotFound)
	}
	if err != nil {
		return pattern.Rule{}, err
	}

	r := pattern.Rule{Name: name}
	if err := json.Unmarshal(tf, &r.Patterns); err != nil {
		return pattern.Rule{}, fmt.Errorf("rule %s: %w", name, err)
	}

	if err := r.Validate(); err != nil {
		return pattern.Rule{}, err
	}

	return r, nil
}

func (rs *RuleStore) Write(r pattern.Rule) error {
	if r.Name == "" || strings.ContainsAny(r.Name, `/\`) {
		return fmt.Errorf("%w: bad rule name %q", pattern.ErrInvalid, r.Name)
	}

	data, err := FormatPatterns(r.Patterns)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(rs.root, r.Name+".json"), data, 0644)
}

// FormatPatterns encodes the patterns as a JSON array with one pattern per
// line.
func FormatPatterns(patterns []pattern.Pattern) ([]byte, error) {
	if len(patterns) == 0 {
		return []byte("[]\n"), nil
	}

	lines := make([][]byte, len(patterns))
	for i, p := range patterns {
		line, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}

	var b bytes.Buffer
	b.WriteString("[\n\t")
	b.Write(bytes.Join(lines, []byte(",\n\t")))
	b.WriteString("\n]\n")
	return b.Bytes(), nil
}
