package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/stat"
	"github.com/revelaction/annotext/stopword"
)

func (a *app) freqCommand() *cli.Command {
	return &cli.Command{
		Name:      "freq",
		Usage:     "print the most common words of a text",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Value: 20, Usage: "number of words, 0 for all"},
			&cli.BoolFlag{Name: "no-stop", Usage: "drop stop words"},
			&cli.BoolFlag{Name: "hapaxes", Usage: "print the words seen once instead"},
		},
		Action: func(c *cli.Context) error {
			words, err := a.words(c)
			if err != nil {
				return err
			}

			if c.Bool("no-stop") {
				set, err := stopword.Load(a.cfg.StopLanguage)
				if err != nil {
					return err
				}
				set.Add(a.cfg.StopExtra...)
				words = set.Filter(words)
			}

			fd := stat.NewFreqDist(words...)
			if c.Bool("hapaxes") {
				var samples []stat.Sample
				for _, w := range fd.Hapaxes() {
					samples = append(samples, stat.Sample{Word: w, Count: 1})
				}
				return render.Freq(a.ui.Out, samples, fd.N())
			}

			return render.Freq(a.ui.Out, fd.MostCommon(c.Int("n")), fd.N())
		},
	}
}
