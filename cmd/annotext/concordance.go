package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/stat"
)

func (a *app) concordanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "concordance",
		Usage:     "print every occurrence of a word with its context",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "word", Aliases: []string{"w"}, Required: true, Usage: "word or phrase to look up"},
			&cli.IntFlag{Name: "width", Value: stat.DefaultWidth, Usage: "line width"},
			&cli.IntFlag{Name: "lines", Value: stat.DefaultLines, Usage: "maximum number of lines"},
		},
		Action: func(c *cli.Context) error {
			words, err := a.words(c)
			if err != nil {
				return err
			}

			lines, total := stat.Concordance(words, strings.ToLower(c.String("word")), c.Int("width"), c.Int("lines"))
			return render.Concordance(a.ui.Out, lines, total)
		},
	}
}
