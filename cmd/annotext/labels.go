package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func (a *app) labelsCommand() *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "list the doc labels",
		ArgsUsage: "[MATCH]",
		Action: func(c *cli.Context) error {
			repo, err := a.docs()
			if err != nil {
				return err
			}

			labels, err := repo.Labels(c.Args().First())
			if err != nil {
				return err
			}

			if len(labels) > 0 {
				_, err = fmt.Fprintln(a.ui.Out, strings.Join(labels, ", "))
			}
			return err
		},
	}
}
