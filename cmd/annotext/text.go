package main

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/file"
	"github.com/revelaction/annotext/lexattr"
	"github.com/revelaction/annotext/pipeline"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/tokenize"
)

var errNoFile = errors.New("missing FILE argument (- reads stdin)")

// input reads the FILE argument and returns its text and doc title.
func (a *app) input(c *cli.Context) (string, string, error) {
	if c.NArg() < 1 {
		return "", "", errNoFile
	}

	path := c.Args().First()
	text, err := file.ReadText(path, a.ui.In)
	if err != nil {
		return "", "", err
	}
	return text, file.Title(path), nil
}

// inputs reads every FILE argument, directories expanded to their files.
// It returns the texts and their doc titles.
func (a *app) inputs(c *cli.Context) ([]string, []string, error) {
	if c.NArg() < 1 {
		return nil, nil, errNoFile
	}

	paths, err := file.Expand(c.Args().Slice())
	if err != nil {
		return nil, nil, err
	}

	texts := make([]string, len(paths))
	titles := make([]string, len(paths))
	for i, path := range paths {
		if texts[i], err = file.ReadText(path, a.ui.In); err != nil {
			return nil, nil, err
		}
		titles[i] = file.Title(path)
	}
	return texts, titles, nil
}

// nlp builds a pipeline. Without components the configured ones are used.
// The --disable components that the pipeline has are skipped.
func (a *app) nlp(components ...string) (*pipeline.Pipeline, error) {
	cfg := a.cfg
	if components != nil {
		cfg.Components = components
	}

	p, err := pipeline.New(cfg, a.log)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, name := range a.disabled {
		if p.HasPipe(name) {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		if _, err := p.DisablePipes(names...); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// process annotates the FILE argument.
func (a *app) process(c *cli.Context, components ...string) (*sent.Doc, error) {
	p, err := a.nlp(components...)
	if err != nil {
		return nil, err
	}
	return a.processWith(c, p)
}

// processWith annotates the FILE argument with p.
func (a *app) processWith(c *cli.Context, p *pipeline.Pipeline) (*sent.Doc, error) {
	text, title, err := a.input(c)
	if err != nil {
		return nil, err
	}

	doc, err := p.Process(c.Context, text)
	if err != nil {
		return nil, err
	}
	doc.Title = title
	return doc, nil
}

// words returns the lowercased words of the FILE argument, without
// punctuation.
func (a *app) words(c *cli.Context) ([]string, error) {
	text, _, err := a.input(c)
	if err != nil {
		return nil, err
	}

	tok, err := tokenize.New()
	if err != nil {
		return nil, err
	}

	var words []string
	for _, w := range tok.Words(text) {
		if lexattr.IsPunct(w) {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	return words, nil
}
