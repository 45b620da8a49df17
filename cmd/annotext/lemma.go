package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/config"
	"github.com/revelaction/annotext/render"
)

func (a *app) lemmaCommand() *cli.Command {
	return &cli.Command{
		Name:      "lemma",
		Usage:     "print the lemma of every word",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			doc, err := a.process(c, config.Tagger, config.Lemmatizer)
			if err != nil {
				return err
			}

			t := render.NewTable("", "word", "lemma", "pos")
			for _, tok := range doc.Tokens() {
				t.AddRow(tok.Text, tok.Lemma, tok.Pos)
			}
			return t.Write(a.ui.Out)
		},
	}
}
