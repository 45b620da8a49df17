package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/file"
	"github.com/revelaction/annotext/match"
	"github.com/revelaction/annotext/pattern"
	"github.com/revelaction/annotext/render"
	sent "github.com/revelaction/annotext/sentence"
)

func (a *app) matchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "find token patterns or phrases in a text",
		ArgsUsage: "FILE [EXPR...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "patterns", Usage: "JSON `FILE` with an array of token patterns"},
			&cli.StringSliceFlag{Name: "phrase", Usage: "phrase to match (repeatable)"},
			&cli.StringFlag{Name: "attr", Value: string(match.Lower), Usage: "phrase token attribute: ORTH, LOWER or LEMMA"},
			&cli.StringFlag{Name: "greedy", Usage: "filter overlapping pattern matches: FIRST or LONGEST"},
		},
		Action: func(c *cli.Context) error {
			m := match.NewMatcher()
			greedy := match.Greedy(strings.ToUpper(c.String("greedy")))
			switch greedy {
			case match.All, match.First, match.Longest:
			default:
				return fmt.Errorf("%w: greedy must be FIRST or LONGEST", pattern.ErrInvalid)
			}

			if path := c.String("patterns"); path != "" {
				patterns, err := readPatterns(path)
				if err != nil {
					return err
				}
				if err := m.AddGreedy(file.Title(path), greedy, patterns...); err != nil {
					return err
				}
			}

			if c.NArg() > 1 {
				expr, err := pattern.Parse(c.Args().Tail())
				if err != nil {
					return err
				}
				if err := m.AddGreedy("expr", greedy, expr); err != nil {
					return err
				}
			}

			phrases := c.StringSlice("phrase")
			if m.Len() == 0 && len(phrases) == 0 {
				return errors.New("no patterns, expression or phrases given")
			}

			doc, err := a.process(c)
			if err != nil {
				return err
			}

			matches := m.MatchDoc(*doc)

			if len(phrases) > 0 {
				attr := match.Attr(strings.ToUpper(c.String("attr")))
				pm, err := match.NewPhraseMatcher(attr)
				if err != nil {
					return err
				}

				p, err := a.nlp()
				if err != nil {
					return err
				}
				for _, ph := range phrases {
					// ORTH and LOWER need no annotation
					phDoc := p.MakeDoc(ph)
					if attr == match.LemmaAttr {
						if phDoc, err = p.Process(c.Context, ph); err != nil {
							return err
						}
					}
					if err := pm.Add("phrase", phDoc.Tokens()); err != nil {
						return err
					}
				}
				matches = append(matches, pm.Match(doc.Tokens())...)
			}

			return writeMatches(a, doc, matches)
		},
	}
}

func readPatterns(path string) ([]pattern.Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var patterns []pattern.Pattern
	if err := json.Unmarshal(data, &patterns); err != nil {
		return nil, fmt.Errorf("patterns %s: %w", path, err)
	}

	for i, p := range patterns {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("patterns %s pattern %d: %w", path, i, err)
		}
	}
	return patterns, nil
}

// writeMatches prints every match with the root of its span, the head of
// that root and the token before the match.
func writeMatches(a *app, doc *sent.Doc, matches []match.Match) error {
	t := render.NewTable("", "key", "start", "end", "text", "root", "head", "prev")
	for _, m := range matches {
		root, err := doc.SpanRoot(m.Span())
		if err != nil {
			return err
		}

		head := root.Text
		if h, ok := doc.Token(root.Head); ok {
			head = h.Text
		}

		prev := ""
		if m.Start > 0 {
			if pt, ok := doc.Token(m.Start - 1); ok {
				prev = pt.Text + "/" + pt.Pos
			}
		}

		t.AddRow(m.Key, strconv.Itoa(m.Start), strconv.Itoa(m.End), doc.SpanText(m.Span()), root.Text, head, prev)
	}
	return t.Write(a.ui.Out)
}
