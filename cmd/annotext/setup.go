package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/revelaction/annotext/storage"
	"github.com/revelaction/annotext/storage/filesystem"
	"github.com/revelaction/annotext/storage/sqlite/zombiezen"
)

var errNoPath = errors.New("no path given")

// isDir reports whether path is an existing directory. A missing path is an
// error.
func isDir(path string) (bool, error) {
	if path == "" {
		return false, errNoPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("repository not found: %s", path)
	}
	return info.IsDir(), nil
}

// ruleRepository opens the rule store at path: a directory is a filesystem
// store, a file a SQLite one.
func (a *app) ruleRepository(path string) (storage.RuleRepository, error) {
	dir, err := isDir(path)
	if err != nil {
		return nil, fmt.Errorf("rule store: %w", err)
	}

	if dir {
		return filesystem.NewRuleStore(path), nil
	}

	pool, err := a.pool.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewRuleStore(pool)
}

// docRepository opens the doc store at path: a directory is a filesystem
// store, a file a SQLite one.
func (a *app) docRepository(path string) (storage.DocRepository, error) {
	dir, err := isDir(path)
	if err != nil {
		return nil, fmt.Errorf("doc store: %w", err)
	}

	if dir {
		return filesystem.NewDocStore(path)
	}

	pool, err := a.pool.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool)
}

func (a *app) docs() (storage.DocRepository, error) {
	return a.docRepository(a.cfg.DocPath)
}

func (a *app) rules() (storage.RuleRepository, error) {
	return a.ruleRepository(a.cfg.RulePath)
}
