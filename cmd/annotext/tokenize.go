package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/tokenize"
)

func (a *app) tokenizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokenize",
		Usage:     "print the words, or the sentences, of a text one per line",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sentences", Aliases: []string{"s"}, Usage: "split sentences instead of words"},
		},
		Action: func(c *cli.Context) error {
			text, _, err := a.input(c)
			if err != nil {
				return err
			}

			tok, err := tokenize.New()
			if err != nil {
				return err
			}

			lines := tok.Words(text)
			if c.Bool("sentences") {
				lines = tok.Sentences(text)
			}

			for _, l := range lines {
				if _, err := fmt.Fprintln(a.ui.Out, l); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
