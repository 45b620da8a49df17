package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/config"
	"github.com/revelaction/annotext/ner"
	"github.com/revelaction/annotext/pipeline"
	"github.com/revelaction/annotext/render"
	sent "github.com/revelaction/annotext/sentence"
)

const wikipediaExt = "wikipedia_url"

func (a *app) nerCommand() *cli.Command {
	return &cli.Command{
		Name:      "ner",
		Usage:     "print the named entities of a text",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Usage: "print only the entity texts with this label"},
			&cli.BoolFlag{Name: "wikipedia", Usage: "add a wikipedia search link to people, organizations and places"},
		},
		Action: func(c *cli.Context) error {
			components := []string{config.Tagger, config.NER}
			if a.cfg.RulerPatterns != "" {
				components = append(components, config.EntityRuler)
			}

			p, err := a.nlp(components...)
			if err != nil {
				return err
			}
			if c.Bool("wikipedia") {
				if err := p.SetSpanExtension(wikipediaExt, ner.WikipediaURL); err != nil {
					return err
				}
			}

			doc, err := a.processWith(c, p)
			if err != nil {
				return err
			}

			if label := c.String("label"); label != "" {
				for _, text := range ner.Extract(doc, label) {
					if _, err := fmt.Fprintln(a.ui.Out, text); err != nil {
						return err
					}
				}
				return nil
			}

			return render.Ents(a.ui.Out, doc, spanColumns(p, doc)...)
		},
	}
}

// spanColumns turns the span extensions of p into entity table columns.
func spanColumns(p *pipeline.Pipeline, doc *sent.Doc) []render.SpanColumn {
	var cols []render.SpanColumn
	for _, name := range p.SpanExtensions() {
		get, _ := p.SpanExtension(name)
		cols = append(cols, render.SpanColumn{
			Name:  name,
			Value: func(s sent.Span) string { return get(doc, s) },
		})
	}
	return cols
}
