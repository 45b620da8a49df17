package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/storage"
)

// matchFlags are the flags of the commands printing sentence matches.
func matchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Value: render.Defaultformat, Usage: "one of " + strings.Join(render.SupportedFormats(), ", ")},
		&cli.BoolFlag{Name: "no-color", Usage: "do not highlight the matches"},
		&cli.BoolFlag{Name: "no-prefix", Usage: "do not print the doc and rule prefix"},
		&cli.IntFlag{Name: "nmatches", Usage: "print only sentences matching at least this many rule patterns"},
		&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "search only docs with this label (repeatable)"},
	}
}

func (a *app) renderer(c *cli.Context) (*render.Renderer, error) {
	format := c.String("format")
	if !slices.Contains(render.SupportedFormats(), format) {
		return nil, fmt.Errorf("unknown format %q, use one of %s", format, strings.Join(render.SupportedFormats(), ", "))
	}

	r := render.NewRenderer(a.ui.Out)
	r.HasColor = !c.Bool("no-color")
	r.HasPrefix = !c.Bool("no-prefix")
	r.PrefixRuleFunc = render.PrefixFuncEmpty
	r.Format = format
	r.NumMatches = c.Int("nmatches")
	return r, nil
}

// addDocNames registers the doc titles used by the match prefix.
func addDocNames(r *render.Renderer, repo storage.DocReader) error {
	docs, err := repo.List("")
	if err != nil {
		return err
	}
	for _, d := range docs {
		r.AddDocName(d.Id, d.Title)
	}
	return nil
}

// sentenceIndex checks a sentence index against the doc length.
func sentenceIndex(id, n int) error {
	if id < 0 || id >= n {
		return fmt.Errorf("sentence index %d out of range (doc has %d sentences)", id, n)
	}
	return nil
}
