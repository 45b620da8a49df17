package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/pattern"
	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/stat"
)

func (a *app) collocationsCommand() *cli.Command {
	return &cli.Command{
		Name:      "collocations",
		Usage:     "print the bigrams that occur together more often than by chance",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Value: 20, Usage: "number of bigrams"},
			&cli.IntFlag{Name: "window", Value: 2, Usage: "bigram window size"},
			&cli.IntFlag{Name: "min-freq", Value: 2, Usage: "minimum bigram count"},
			&cli.StringFlag{Name: "measure", Value: string(stat.LikelihoodRatio), Usage: "likelihood or pmi"},
		},
		Action: func(c *cli.Context) error {
			measure := stat.Measure(c.String("measure"))
			if measure != stat.LikelihoodRatio && measure != stat.PMI {
				return fmt.Errorf("%w: unknown measure %q", pattern.ErrInvalid, measure)
			}

			words, err := a.words(c)
			if err != nil {
				return err
			}

			cs := stat.Collocations(words, stat.CollocationOptions{
				Window:  c.Int("window"),
				MinFreq: c.Int("min-freq"),
				Top:     c.Int("n"),
				Measure: measure,
			})
			return render.Collocations(a.ui.Out, cs)
		},
	}
}
