package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/file"
	"github.com/revelaction/annotext/render"
	sent "github.com/revelaction/annotext/sentence"
)

func (a *app) annotateCommand() *cli.Command {
	return &cli.Command{
		Name:      "annotate",
		Usage:     "run the pipeline on texts and print the doc JSON",
		ArgsUsage: "FILE|DIR...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "store", Usage: "write every doc to the doc store"},
			&cli.BoolFlag{Name: "table", Usage: "print token, entity and chunk tables"},
			&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "doc label (repeatable)"},
			&cli.IntFlag{Name: "workers", Usage: "texts processed at once, from the config by default"},
		},
		Action: func(c *cli.Context) error {
			texts, titles, err := a.inputs(c)
			if err != nil {
				return err
			}

			workers := a.cfg.Workers
			if c.IsSet("workers") {
				workers = c.Int("workers")
			}

			p, err := a.nlp()
			if err != nil {
				return err
			}

			docs, err := p.Pipe(c.Context, texts, workers)
			if err != nil {
				return err
			}
			for i, doc := range docs {
				doc.Title = titles[i]
				doc.Labels = c.StringSlice("label")
			}

			if c.Bool("store") {
				return a.storeDocs(docs)
			}

			if c.Bool("table") {
				for _, doc := range docs {
					if err := writeTables(a, doc); err != nil {
						return err
					}
				}
				return nil
			}

			if len(docs) == 1 {
				return file.WriteJSON(a.ui.Out, docs[0])
			}
			return file.WriteJSON(a.ui.Out, docs)
		},
	}
}

func (a *app) storeDocs(docs []*sent.Doc) error {
	repo, err := a.docs()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		id, err := repo.Write(*doc)
		if err != nil {
			return fmt.Errorf("store %s: %w", doc.Title, err)
		}
		a.log.Info().Int("id", id).Str("title", doc.Title).Int("sentences", len(doc.Sentences)).Msg("doc stored")
		if _, err := fmt.Fprintf(a.ui.Out, "📖 %d %s\n", id, doc.Title); err != nil {
			return err
		}
	}
	return nil
}

func writeTables(a *app, doc *sent.Doc) error {
	if len(doc.Title) > 0 {
		if _, err := fmt.Fprintf(a.ui.Out, "📖 %s\n", doc.Title); err != nil {
			return err
		}
	}
	if err := render.Tokens(a.ui.Out, doc.Tokens()); err != nil {
		return err
	}
	if err := render.Ents(a.ui.Out, doc); err != nil {
		return err
	}
	return render.Chunks(a.ui.Out, doc)
}
