package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/keepchen/go-sail-website/internal/content"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "validate the content and print a per-locale summary",
		Action: func(c *cli.Context) error {
			cfg, _, err := setup(c)
			if err != nil {
				return err
			}
			w := c.App.Writer

			cat, err := content.Open(cfg.ContentDir, cfg.DefaultLocale)
			if err != nil {
				problems := flatten(err)
				errorPrinter.Fprintf(w, "✗ content has %d problem(s)\n", len(problems))
				for _, p := range problems {
					fmt.Fprintf(w, "  - %v\n", p)
				}
				return fmt.Errorf("content check failed")
			}

			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.AppendHeader(table.Row{"Locale", "Label", "Path", "Features", "Call to action", "Badges"})
			for _, locale := range cat.Locales() {
				lc, _ := cat.Lookup(locale)
				badges := 0
				if lc.Header.ShowBadges {
					badges = len(cat.Site.Badges)
				}
				t.AppendRow(table.Row{locale, lc.Label, cat.PathFor(locale), len(lc.Features), lc.Header.CallToAction, badges})
			}
			t.Render()

			infoPrinter.Fprintf(w, "icons: %s\n", strings.Join(cat.SharedIcons(), ", "))
			successPrinter.Fprintf(w, "✓ %d locales consistent, default %s\n", len(cat.Locales()), cat.DefaultLocale())
			return nil
		},
	}
}

// flatten expands joined errors so each violation prints on its own line.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
