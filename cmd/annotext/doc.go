package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/file"
	"github.com/revelaction/annotext/render"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
	"github.com/revelaction/annotext/storage/filesystem"
)

func (a *app) docCommand() *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "list the stored docs, or print the sentences of one",
		ArgsUsage: "[ID|FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "list only docs with a label containing this"},
			&cli.IntFlag{Name: "start", Usage: "first sentence"},
			&cli.IntFlag{Name: "count", Value: -1, Usage: "number of sentences, -1 for all"},
			&cli.BoolFlag{Name: "json", Usage: "print the doc JSON"},
		},
		Action: func(c *cli.Context) error {
			arg := c.Args().First()

			// a doc JSON file does not need a store
			if _, err := strconv.Atoi(arg); err != nil && arg != "" {
				if _, statErr := os.Stat(arg); statErr == nil {
					doc, err := filesystem.ReadDoc(arg)
					if err != nil {
						return fmt.Errorf("filesystem document %q: %w", arg, err)
					}
					return a.renderDoc(c, doc)
				}
			}

			repo, err := a.docs()
			if err != nil {
				return err
			}

			if arg == "" {
				return a.listDocs(repo, c.String("label"))
			}

			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("doc id %q: %w", arg, err)
			}

			doc, err := repo.Read(id)
			if err != nil {
				return err
			}
			return a.renderDoc(c, doc)
		},
	}
}

func (a *app) renderDoc(c *cli.Context, doc sent.Doc) error {
	if c.Bool("json") {
		return file.WriteJSON(a.ui.Out, doc)
	}

	start := max(0, c.Int("start"))
	if start >= len(doc.Sentences) {
		return nil
	}

	sentences := doc.Sentences[start:]
	if count := c.Int("count"); count >= 0 && count < len(sentences) {
		sentences = sentences[:count]
	}

	r := render.NewRenderer(a.ui.Out)
	for _, s := range sentences {
		prefix := fmt.Sprintf("✍  %d ", s.Id)
		if err := r.Sentence(s.Tokens, prefix); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) listDocs(repo storage.DocReader, labelMatch string) error {
	docs, err := repo.List(labelMatch)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if _, err := fmt.Fprintf(a.ui.Out, "📖 %d %s\n", doc.Id, doc.Title); err != nil {
			return err
		}
	}
	return nil
}
