package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/postag"
)

func (a *app) explainCommand() *cli.Command {
	return &cli.Command{
		Name:      "explain",
		Usage:     "describe a tag, universal POS or entity label",
		ArgsUsage: "LABEL",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("missing LABEL argument")
			}

			desc := postag.Explain(c.Args().First())
			if desc == "" {
				return fmt.Errorf("no description for %q", c.Args().First())
			}
			_, err := fmt.Fprintln(a.ui.Out, desc)
			return err
		},
	}
}
