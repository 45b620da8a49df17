package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/render"
)

// intArgs parses the first n arguments as integers.
func intArgs(c *cli.Context, names ...string) ([]int, error) {
	if c.NArg() < len(names) {
		return nil, fmt.Errorf("missing %s argument", names[c.NArg()])
	}

	out := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(c.Args().Get(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[i] = v
	}
	return out, nil
}

func (a *app) sentenceCommand() *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print a sentence and the annotations of its tokens",
		ArgsUsage: "DOC SENT",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "offset", Usage: "first token of the table"},
		},
		Action: func(c *cli.Context) error {
			ids, err := intArgs(c, "DOC", "SENT")
			if err != nil {
				return err
			}

			repo, err := a.docs()
			if err != nil {
				return err
			}

			doc, err := repo.Read(ids[0])
			if err != nil {
				return err
			}
			if err := sentenceIndex(ids[1], len(doc.Sentences)); err != nil {
				return err
			}

			s := doc.Sentences[ids[1]]
			r := render.NewRenderer(a.ui.Out)
			if err := r.Sentence(s.Tokens, fmt.Sprintf("✍  %d-%d ", ids[0], ids[1])); err != nil {
				return err
			}

			offset := c.Int("offset")
			if offset < 0 || offset > len(s.Tokens) {
				return fmt.Errorf("offset %d out of range (sentence has %d tokens)", offset, len(s.Tokens))
			}
			return render.Tokens(a.ui.Out, s.Tokens[offset:])
		},
	}
}
