package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotext/config"
	"github.com/revelaction/annotext/logging"
)

// UI contains the input and output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// app holds what the commands share, set up in Before.
type app struct {
	ui   UI
	cfg  config.Config
	log  zerolog.Logger
	pool Pool

	// pipeline components skipped by every command
	disabled []string
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "annotext: %v\n", err)
}

func newApp(ui UI) *cli.App {
	a := &app{ui: ui, log: zerolog.Nop()}

	return &cli.App{
		Name:                 "annotext",
		Usage:                "annotate text and search the annotated sentences",
		Version:              BuildTag,
		HideVersion:          true,
		EnableBashCompletion: true,
		Reader:               ui.In,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML configuration `FILE`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (trace, debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "doc-path",
				Usage:   "doc store: a directory of JSON docs or a SQLite file",
				EnvVars: []string{"ANNOTEXT_DOC_PATH"},
			},
			&cli.StringFlag{
				Name:    "rule-path",
				Usage:   "rule store: a directory of JSON rules or a SQLite file",
				EnvVars: []string{"ANNOTEXT_RULE_PATH"},
			},
			&cli.StringSliceFlag{
				Name:  "disable",
				Usage: "pipeline component to skip (repeatable)",
			},
		},
		Before:   a.before,
		After:    a.after,
		Commands: a.commands(),
	}
}

func (a *app) before(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	// flags and environment override the file
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("doc-path") {
		cfg.DocPath = c.String("doc-path")
	}
	if c.IsSet("rule-path") {
		cfg.RulePath = c.String("rule-path")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	disabled := c.StringSlice("disable")
	for _, name := range disabled {
		if !config.IsComponent(name) {
			return fmt.Errorf("--disable: unknown pipeline component %q", name)
		}
	}

	a.cfg = cfg
	a.disabled = disabled
	a.log = logging.New(a.ui.Err, "annotext", cfg.LogLevel)
	return nil
}

func (a *app) after(c *cli.Context) error {
	return a.pool.Close()
}

func (a *app) commands() []*cli.Command {
	return []*cli.Command{
		a.annotateCommand(),
		a.tokenizeCommand(),
		a.stopwordsCommand(),
		a.stemCommand(),
		a.lemmaCommand(),
		a.tagCommand(),
		a.chunkCommand(),
		a.nerCommand(),
		a.matchCommand(),
		a.freqCommand(),
		a.collocationsCommand(),
		a.concordanceCommand(),
		a.dispersionCommand(),
		a.explainCommand(),
		a.docCommand(),
		a.sentenceCommand(),
		a.exprCommand(),
		a.rulesCommand(),
		a.rulematchCommand(),
		a.labelsCommand(),
		a.statCommand(),
		a.importCommand(),
		a.exportCommand(),
		a.migrateCommand(),
		a.queryCommand(),
		a.editCommand(),
		a.bashCommand(),
		a.versionCommand(),
	}
}
