package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/edit"
)

func (a *app) editCommand() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "add and remove rule patterns interactively",
		Action: func(c *cli.Context) error {
			repo, err := a.rules()
			if err != nil {
				return err
			}

			lib, err := repo.ReadAll()
			if err != nil {
				return err
			}

			return edit.NewHandler(lib, repo, a.ui.Out).Run()
		},
	}
}
