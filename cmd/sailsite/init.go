package main

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/keepchen/go-sail-website/internal/assets"
	"github.com/keepchen/go-sail-website/internal/content"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "write the built-in content into a directory for editing",
		ArgsUsage: "<dir>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "overwrite existing files"},
		},
		Action: func(c *cli.Context) error {
			dir := c.Args().First()
			if dir == "" {
				return fmt.Errorf("directory required: sailsite init <dir>")
			}

			written, err := scaffold(afero.NewOsFs(), dir, c.Bool("force"))
			if err != nil {
				return err
			}

			w := c.App.Writer
			for _, name := range written {
				fmt.Fprintf(w, "  created %s\n", name)
			}
			successPrinter.Fprintf(w, "✓ content written to %s\n", dir)
			fmt.Fprintf(w, "\nNext steps:\n  sailsite --content %s check\n  sailsite --content %s dev\n", dir, dir)
			return nil
		},
	}
}

// scaffold copies the built-in content and static files into dir. Existing
// files are an error unless overwrite is set.
func scaffold(afs afero.Fs, dir string, overwrite bool) ([]string, error) {
	var written []string
	trees := []struct {
		src    fs.FS
		prefix string
	}{
		{content.Defaults(), ""},
		{assets.Embedded(), "static"},
	}

	for _, tree := range trees {
		err := fs.WalkDir(tree.src, ".", func(name string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			target := filepath.Join(dir, tree.prefix, filepath.FromSlash(name))
			if !overwrite {
				if exists, err := afero.Exists(afs, target); err != nil {
					return err
				} else if exists {
					return fmt.Errorf("%s already exists (use --force to overwrite)", target)
				}
			}

			data, err := fs.ReadFile(tree.src, name)
			if err != nil {
				return err
			}
			if err := afs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := afero.WriteFile(afs, target, data, 0o644); err != nil {
				return err
			}
			written = append(written, target)
			return nil
		})
		if err != nil {
			return written, fmt.Errorf("init %s: %w", dir, err)
		}
	}
	return written, nil
}
