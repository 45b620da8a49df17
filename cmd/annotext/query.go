package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/query"
	"github.com/revelaction/annotext/storage"
	"github.com/revelaction/annotext/storage/filesystem"
)

func (a *app) queryCommand() *cli.Command {
	flags := append(matchFlags(),
		&cli.BoolFlag{Name: "watch", Usage: "reload the rules when a rule file changes"},
	)

	return &cli.Command{
		Name:  "query",
		Usage: "search the stored sentences interactively with rules and expressions",
		Flags: flags,
		Action: func(c *cli.Context) error {
			docRepo, err := a.docs()
			if err != nil {
				return err
			}
			ruleRepo, err := a.rules()
			if err != nil {
				return err
			}

			labels := c.StringSlice("label")
			if p, ok := docRepo.(storage.Preloader); ok {
				if err := a.preload(p, labels); err != nil {
					return err
				}
			}

			lib, err := ruleRepo.ReadAll()
			if err != nil {
				return err
			}

			r, err := a.renderer(c)
			if err != nil {
				return err
			}

			h := query.NewHandler(docRepo, ruleRepo, lib, r, a.ui.Out)
			h.Labels = labels
			h.Log = a.log

			if c.Bool("watch") {
				rs, ok := ruleRepo.(*filesystem.RuleStore)
				if !ok {
					a.log.Warn().Msg("--watch needs a rule directory, ignored")
				} else {
					ctx, cancel := context.WithCancel(c.Context)
					defer cancel()
					go func() {
						if err := h.Watch(ctx, rs.Root()); err != nil {
							a.log.Error().Err(err).Msg("watch rules")
						}
					}()
				}
			}

			return h.Run()
		},
	}
}

// preload loads the docs in memory, showing a progress bar.
func (a *app) preload(p storage.Preloader, labels []string) error {
	bar := newProgress(a, 1)
	defer bar.Stop()

	return p.Preload(labels, func(current, total int, name string) {
		bar.Set(current, total, name)
	})
}
