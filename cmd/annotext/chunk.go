package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/chunk"
	"github.com/revelaction/annotext/config"
	"github.com/revelaction/annotext/render"
)

func (a *app) chunkCommand() *cli.Command {
	return &cli.Command{
		Name:      "chunk",
		Usage:     "print the chunk tree of every sentence",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "grammar", Usage: "regexp chunk grammar, noun chunks by default"},
		},
		Action: func(c *cli.Context) error {
			grammar := a.cfg.ChunkGrammar
			if c.IsSet("grammar") {
				grammar = c.String("grammar")
			}

			parser, err := chunk.NewParser(grammar)
			if err != nil {
				return err
			}

			doc, err := a.process(c, config.Tagger)
			if err != nil {
				return err
			}

			for _, s := range doc.Sentences {
				if err := render.ChunkTree(a.ui.Out, parser.ParseTokens(s.Tokens)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
