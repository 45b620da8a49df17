package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/config"
	"github.com/revelaction/annotext/postag"
	"github.com/revelaction/annotext/render"
)

func (a *app) tagCommand() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "print the Penn Treebank and universal tag of every word",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "explain", Usage: "add the tag description"},
		},
		Action: func(c *cli.Context) error {
			doc, err := a.process(c, config.Tagger)
			if err != nil {
				return err
			}

			headers := []string{"word", "tag", "pos"}
			if c.Bool("explain") {
				headers = append(headers, "description")
			}

			t := render.NewTable("", headers...)
			for _, tok := range doc.Tokens() {
				row := []string{tok.Text, tok.Tag, tok.Pos}
				if c.Bool("explain") {
					row = append(row, postag.Explain(tok.Tag))
				}
				t.AddRow(row...)
			}
			return t.Write(a.ui.Out)
		},
	}
}
