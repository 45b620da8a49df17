package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/stat"
)

func (a *app) dispersionCommand() *cli.Command {
	return &cli.Command{
		Name:      "dispersion",
		Usage:     "print the word offsets of each target word",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "word", Aliases: []string{"w"}, Required: true, Usage: "target word (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			words, err := a.words(c)
			if err != nil {
				return err
			}

			targets := c.StringSlice("word")
			for i, t := range targets {
				targets[i] = strings.ToLower(t)
			}

			return render.Dispersion(a.ui.Out, targets, stat.Dispersion(words, targets))
		},
	}
}
