// Command sailsite renders, serves and checks the Go-Sail documentation
// homepage.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/keepchen/go-sail-website/internal/config"
	"github.com/keepchen/go-sail-website/pkg/logging"
)

var version = "dev"

var (
	successPrinter = color.New(color.FgGreen)
	infoPrinter    = color.New(color.FgCyan)
	warnPrinter    = color.New(color.FgYellow)
	errorPrinter   = color.New(color.FgRed, color.Bold)
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		errorPrinter.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "sailsite",
		Usage:     "Render and serve the Go-Sail documentation homepage",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "content",
				Aliases: []string{"c"},
				Usage:   "content directory with site.yaml, locales/ and static/ (default: built-in content)",
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "default locale served at the site root",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "write logs as JSON",
			},
		},
		Commands: []*cli.Command{
			buildCommand(),
			serveCommand(),
			devCommand(),
			checkCommand(),
			initCommand(),
			versionCommand(),
		},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}
}

// setup reads SAILSITE_* settings, applies global flags on top and builds
// the logger.
func setup(c *cli.Context) (config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	if c.IsSet("content") {
		cfg.ContentDir = c.String("content")
	}
	if c.IsSet("locale") {
		cfg.DefaultLocale = c.String("locale")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-json") {
		cfg.LogJSON = c.Bool("log-json")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewSlogLogger(
		logging.WithLevel(logging.ParseLevel(cfg.LogLevel)),
		logging.WithJSON(cfg.LogJSON),
		logging.WithOutput(c.App.ErrWriter),
	)
	logging.SetDefault(logger)

	return cfg, logger, nil
}
