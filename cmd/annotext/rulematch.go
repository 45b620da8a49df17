package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/match"
	"github.com/revelaction/annotext/render"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
)

func (a *app) rulematchCommand() *cli.Command {
	return &cli.Command{
		Name:      "rulematch",
		Usage:     "print the rules matching a stored sentence",
		ArgsUsage: "DOC SENT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: render.Defaultformat, Usage: "one of " + strings.Join(render.SupportedFormats(), ", ")},
		},
		Action: func(c *cli.Context) error {
			ids, err := intArgs(c, "DOC", "SENT")
			if err != nil {
				return err
			}

			format := c.String("format")
			if !slices.Contains(render.SupportedFormats(), format) {
				return fmt.Errorf("unknown format %q", format)
			}

			docRepo, err := a.docs()
			if err != nil {
				return err
			}
			ruleRepo, err := a.rules()
			if err != nil {
				return err
			}

			doc, err := docRepo.Read(ids[0])
			if err != nil {
				return err
			}

			return a.renderRules(doc, ids[1], ruleRepo, format)
		},
	}
}

func (a *app) renderRules(doc sent.Doc, sentID int, ruleRepo storage.RuleReader, format string) error {
	if err := sentenceIndex(sentID, len(doc.Sentences)); err != nil {
		return err
	}

	s := doc.Sentences[sentID]

	r := render.NewRenderer(a.ui.Out)
	prefix := fmt.Sprintf("%54s", render.Yellow256+render.Off) + "✍  "
	if err := r.Sentence(s.Tokens, prefix); err != nil {
		return err
	}
	fmt.Fprintln(a.ui.Out)

	lib, err := ruleRepo.ReadAll()
	if err != nil {
		return err
	}

	r.HasColor = true
	r.HasPrefix = true
	r.PrefixDocFunc = render.PrefixFuncEmpty
	r.Format = format

	for _, rule := range lib {
		sm := match.NewSentenceMatcher(rule).MatchSentence(s)
		if sm == nil {
			continue
		}

		if err := r.Match([]*match.SentenceMatch{sm}); err != nil {
			return err
		}
	}

	return nil
}
