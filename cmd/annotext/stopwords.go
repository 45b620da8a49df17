package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/stopword"
	"github.com/revelaction/annotext/tokenize"
)

func (a *app) stopwordsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stopwords",
		Usage:     "print the sentences of a text without stop words",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "language", Usage: "stop word list, one of " + strings.Join(stopword.Languages(), ", ")},
			&cli.BoolFlag{Name: "list", Usage: "print the stop word list"},
		},
		Action: func(c *cli.Context) error {
			lang := a.cfg.StopLanguage
			if c.IsSet("language") {
				lang = c.String("language")
			}

			set, err := stopword.Load(lang)
			if err != nil {
				return err
			}
			set.Add(a.cfg.StopExtra...)

			if c.Bool("list") {
				_, err := fmt.Fprintln(a.ui.Out, strings.Join(set.Words(), "\n"))
				return err
			}

			text, _, err := a.input(c)
			if err != nil {
				return err
			}

			tok, err := tokenize.New()
			if err != nil {
				return err
			}

			for _, s := range tok.Sentences(text) {
				if _, err := fmt.Fprintln(a.ui.Out, strings.Join(set.Filter(tok.Words(s)), " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
