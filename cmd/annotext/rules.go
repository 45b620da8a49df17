package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/render"
)

func (a *app) rulesCommand() *cli.Command {
	return &cli.Command{
		Name:      "rules",
		Usage:     "list the rules, or print the patterns of one",
		ArgsUsage: "[NAME]",
		Action: func(c *cli.Context) error {
			repo, err := a.rules()
			if err != nil {
				return err
			}

			name := c.Args().First()
			if name == "" {
				lib, err := repo.ReadAll()
				if err != nil {
					return err
				}

				for i, r := range lib {
					if _, err := fmt.Fprintf(a.ui.Out, "🔖 %d %s (%d)\n", i, r.Name, len(r.Patterns)); err != nil {
						return err
					}
				}
				return nil
			}

			r, err := repo.Read(name)
			if err != nil {
				return err
			}
			return render.Rule(a.ui.Out, r)
		},
	}
}
