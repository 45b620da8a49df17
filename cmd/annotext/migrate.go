package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage/filesystem"
)

// legacyDoc is the older doc JSON: one token array per sentence.
type legacyDoc struct {
	Labels []string       `json:"labels"`
	Tokens [][]sent.Token `json:"tokens"`
}

func (a *app) migrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "convert a directory of legacy token docs to the doc format",
		ArgsUsage: "FROM_DIR TO_DIR",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return errors.New("missing FROM_DIR and TO_DIR arguments")
			}
			return a.migrate(c.Args().Get(0), c.Args().Get(1))
		},
	}
}

func (a *app) migrate(from, to string) error {
	files, err := os.ReadDir(from)
	if err != nil {
		return fmt.Errorf("read source directory: %w", err)
	}

	if err := os.MkdirAll(to, 0755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(from, f.Name()))
		if err != nil {
			return fmt.Errorf("read file %s: %w", f.Name(), err)
		}

		var old legacyDoc
		if err := json.Unmarshal(data, &old); err != nil {
			return fmt.Errorf("unmarshal legacy doc %s: %w", f.Name(), err)
		}

		doc := migrateDoc(f.Name(), old)

		targetPath := filepath.Join(to, f.Name())
		if err := filesystem.WriteDoc(targetPath, doc); err != nil {
			return fmt.Errorf("write file %s: %w", targetPath, err)
		}

		a.log.Info().Str("from", f.Name()).Str("to", targetPath).Msg("migrated")
	}

	return nil
}

// migrateDoc wraps each token array in a numbered sentence.
func migrateDoc(title string, old legacyDoc) sent.Doc {
	doc := sent.Doc{Title: title, Labels: old.Labels}

	for i, tokens := range old.Tokens {
		for j := range tokens {
			tokens[j].SentenceId = i
		}
		doc.Sentences = append(doc.Sentences, sent.Sentence{Id: i, Tokens: tokens})
	}
	return doc
}
