package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/match"
	"github.com/revelaction/annotext/pattern"
	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/search"
)

func (a *app) exprCommand() *cli.Command {
	flags := append(matchFlags(),
		&cli.IntFlag{Name: "doc", Usage: "search only this doc"},
		&cli.IntFlag{Name: "sent", Usage: "search only this sentence of --doc"},
		&cli.BoolFlag{Name: "json", Usage: "print the matches as JSON"},
	)

	return &cli.Command{
		Name:      "expr",
		Usage:     "print the stored sentences matching an expression",
		ArgsUsage: "EXPR...",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("missing EXPR argument")
			}
			if c.IsSet("sent") && !c.IsSet("doc") {
				return errors.New("--sent flag given but no --doc")
			}

			expr, err := pattern.Parse(c.Args().Slice())
			if err != nil {
				return err
			}

			repo, err := a.docs()
			if err != nil {
				return err
			}

			r, err := a.renderer(c)
			if err != nil {
				return err
			}

			s := search.New(pattern.Rule{}, repo).WithLabels(c.StringSlice("label"))
			if c.IsSet("doc") {
				s = s.WithDocID(c.Int("doc"))
			}

			results, err := s.All(expr)
			if err != nil {
				return err
			}

			if c.IsSet("sent") {
				doc, err := repo.Read(c.Int("doc"))
				if err != nil {
					return err
				}
				if err := sentenceIndex(c.Int("sent"), len(doc.Sentences)); err != nil {
					return err
				}
				results = sentenceResults(results, c.Int("sent"))
			}

			var mr render.MatchRenderer = r
			if c.Bool("json") {
				mr = render.NewJSONRenderer(a.ui.Out)
			} else if err := addDocNames(r, repo); err != nil {
				return err
			}

			return mr.Match(results)
		},
	}
}

func sentenceResults(results []*match.SentenceMatch, sentID int) []*match.SentenceMatch {
	var out []*match.SentenceMatch
	for _, sm := range results {
		if sm.Sentence.Id == sentID {
			out = append(out, sm)
		}
	}
	return out
}
