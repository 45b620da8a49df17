package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/storage"
	"github.com/revelaction/annotext/storage/filesystem"
	"github.com/revelaction/annotext/storage/sqlite/zombiezen"
)

func (a *app) importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "copy a filesystem doc or rule store into a SQLite file",
		ArgsUsage: "FROM_DIR TO_FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "rules", Usage: "import rules instead of docs"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return errors.New("missing FROM_DIR and TO_FILE arguments")
			}
			from, to := c.Args().Get(0), c.Args().Get(1)

			if dir, err := isDir(from); err != nil || !dir {
				return fmt.Errorf("import source %s must be a directory", from)
			}

			pool, err := a.pool.Open(to)
			if err != nil {
				return err
			}

			if c.Bool("rules") {
				dst, err := zombiezen.NewRuleStore(pool)
				if err != nil {
					return err
				}
				n, err := copyRules(filesystem.NewRuleStore(from), dst)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.ui.Out, "Successfully imported %d rules from %s to %s\n", n, from, to)
				return err
			}

			src, err := filesystem.NewDocStore(from)
			if err != nil {
				return err
			}
			dst, err := zombiezen.NewDocStore(pool)
			if err != nil {
				return err
			}

			n, err := a.copyDocs(src, dst)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.ui.Out, "Successfully imported %d docs from %s to %s\n", n, from, to)
			return err
		},
	}
}

// copyDocs writes every doc of src to dst, showing a progress bar.
func (a *app) copyDocs(src storage.DocReader, dst storage.DocWriter) (int, error) {
	docs, err := src.List("")
	if err != nil {
		return 0, err
	}

	bar := newProgress(a, len(docs))
	defer bar.Stop()

	count := 0
	for _, meta := range docs {
		doc, err := src.Read(meta.Id)
		if err != nil {
			return count, fmt.Errorf("read doc %s: %w", meta.Title, err)
		}

		// ensure title is set
		doc.Title = meta.Title

		if _, err := dst.Write(doc); err != nil {
			return count, fmt.Errorf("write doc %s: %w", meta.Title, err)
		}
		count++
		bar.Incr(meta.Title)
	}

	a.log.Info().Int("docs", count).Msg("docs copied")
	return count, nil
}

func copyRules(src storage.RuleReader, dst storage.RuleWriter) (int, error) {
	lib, err := src.ReadAll()
	if err != nil {
		return 0, err
	}

	for _, r := range lib {
		if err := dst.Write(r); err != nil {
			return 0, fmt.Errorf("write rule %s: %w", r.Name, err)
		}
	}
	return len(lib), nil
}
