package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/annotext/pattern"
	"github.com/revelaction/annotext/storage"
)

type RuleStore struct {
	pool *sqlitex.Pool
}

var _ storage.RuleRepository = (*RuleStore)(nil)

// NewRuleStore creates the rules table if missing.
func NewRuleStore(pool *sqlitex.Pool) (*RuleStore, error) {
	if err := CreateSchemas(pool, RulesSchema); err != nil {
		return nil, err
	}
	return &RuleStore{pool: pool}, nil
}

func (h *RuleStore) ReadAll() (pattern.Library, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	rules := pattern.Library{}
	err = sqlitex.Execute(conn, "SELECT name, patterns FROM rules ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			r, err := scanRule(stmt)
			if err != nil {
				return err
			}
			rules = append(rules, r)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (h *RuleStore) Read(name string) (pattern.Rule, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return pattern.Rule{}, err
	}
	defer h.pool.Put(conn)

	var r pattern.Rule
	found := false
	err = sqlitex.Execute(conn, "SELECT name, patterns FROM rules WHERE name = ? LIMIT 1", &sqlitex.ExecOptions{
		Args: []any{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			r, err = scanRule(stmt)
			return err
		},
	})
	if err != nil {
		return pattern.Rule{}, err
	}

	if !found {
		return pattern.Rule{}, fmt.Errorf("rule %s: %w", name, storage.ErrNotFound)
	}

	return r, nil
}

func (h *RuleStore) Write(r pattern.Rule) error {
	if r.Name == "" {
		return fmt.Errorf("%w: empty rule name", pattern.ErrInvalid)
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	patterns := r.Patterns
	if patterns == nil {
		patterns = []pattern.Pattern{}
	}
	data, err := json.Marshal(patterns)
	if err != nil {
		return err
	}

	return sqlitex.Execute(conn, `
		INSERT INTO rules (name, patterns, updated)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		ON CONFLICT(name) DO UPDATE SET
			patterns = excluded.patterns,
			updated = excluded.updated
	`, &sqlitex.ExecOptions{
		Args: []any{r.Name, string(data)},
	})
}

func scanRule(stmt *sqlite.Stmt) (pattern.Rule, error) {
	r := pattern.Rule{Name: stmt.ColumnText(0)}
	if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &r.Patterns); err != nil {
		return pattern.Rule{}, fmt.Errorf("rule %s: %w", r.Name, err)
	}
	return r, nil
}
