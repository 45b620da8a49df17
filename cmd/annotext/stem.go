package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/stem"
	"github.com/revelaction/annotext/tokenize"
)

func (a *app) stemCommand() *cli.Command {
	return &cli.Command{
		Name:      "stem",
		Usage:     "print the Snowball stem of every word",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "language", Usage: "one of " + strings.Join(stem.Languages(), ", ")},
		},
		Action: func(c *cli.Context) error {
			lang := a.cfg.StemLanguage
			if c.IsSet("language") {
				lang = c.String("language")
			}

			st, err := stem.NewSnowball(lang)
			if err != nil {
				return err
			}
			st.StemStopWords = a.cfg.StemStopWords

			text, _, err := a.input(c)
			if err != nil {
				return err
			}

			tok, err := tokenize.New()
			if err != nil {
				return err
			}

			words := tok.Words(text)
			stems := stem.StemAll(st, words)

			t := render.NewTable("", "word", "stem")
			for i, w := range words {
				t.AddRow(w, stems[i])
			}
			return t.Write(a.ui.Out)
		},
	}
}
