package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/storage/filesystem"
	"github.com/revelaction/annotext/storage/sqlite/zombiezen"
)

func (a *app) exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "copy the docs or rules of a SQLite file into a directory",
		ArgsUsage: "FROM_FILE TO_DIR",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "rules", Usage: "export rules instead of docs"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return errors.New("missing FROM_FILE and TO_DIR arguments")
			}
			from, to := c.Args().Get(0), c.Args().Get(1)

			if dir, err := isDir(from); err != nil || dir {
				return fmt.Errorf("export source %s must be a SQLite file", from)
			}

			if err := os.MkdirAll(to, 0755); err != nil {
				return fmt.Errorf("create target directory: %w", err)
			}

			pool, err := a.pool.Open(from)
			if err != nil {
				return err
			}

			if c.Bool("rules") {
				src, err := zombiezen.NewRuleStore(pool)
				if err != nil {
					return err
				}
				n, err := copyRules(src, filesystem.NewRuleStore(to))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.ui.Out, "Successfully exported %d rules from %s to %s\n", n, from, to)
				return err
			}

			src, err := zombiezen.NewDocStore(pool)
			if err != nil {
				return err
			}
			dst, err := filesystem.NewDocStore(to)
			if err != nil {
				return err
			}

			n, err := a.copyDocs(src, dst)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.ui.Out, "Successfully exported %d docs from %s to %s\n", n, from, to)
			return err
		},
	}
}
