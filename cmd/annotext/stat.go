package main

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/stat"
)

func (a *app) statCommand() *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print the sentence length statistics of the store, a doc or a sentence",
		ArgsUsage: "[DOC [SENT]]",
		Action: func(c *cli.Context) error {
			repo, err := a.docs()
			if err != nil {
				return err
			}

			hdl := stat.NewHandler()

			if c.NArg() == 0 {
				docs, err := repo.List("")
				if err != nil {
					return err
				}
				for _, meta := range docs {
					doc, err := repo.Read(meta.Id)
					if err != nil {
						return err
					}
					hdl.Aggregate(doc)
				}
				return render.Stats(a.ui.Out, hdl.Get())
			}

			docID, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return err
			}
			doc, err := repo.Read(docID)
			if err != nil {
				return err
			}

			if c.NArg() > 1 {
				ids, err := intArgs(c, "DOC", "SENT")
				if err != nil {
					return err
				}
				if err := sentenceIndex(ids[1], len(doc.Sentences)); err != nil {
					return err
				}
				hdl.AggregateSentence(doc.Sentences[ids[1]])
				return render.Stats(a.ui.Out, hdl.Get())
			}

			hdl.Aggregate(doc)
			return render.Stats(a.ui.Out, hdl.Get())
		},
	}
}
