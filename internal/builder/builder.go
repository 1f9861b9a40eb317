// Package builder renders every locale's homepage into a static output tree
// and copies the static assets next to it.
package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/keepchen/go-sail-website/internal/assets"
	"github.com/keepchen/go-sail-website/internal/content"
	"github.com/keepchen/go-sail-website/internal/website/components"
	"github.com/keepchen/go-sail-website/internal/website/landing"
	"github.com/keepchen/go-sail-website/pkg/logging"
)

// Options configures a Builder.
type Options struct {
	// OutDir is the output directory (default "public")
	OutDir string
	// Fs is the output filesystem (default: the OS filesystem)
	Fs afero.Fs
	// Assets are the static files copied into OutDir (default: embedded)
	Assets fs.FS
	// Logger receives progress messages
	Logger logging.Logger
	// Force rewrites pages even when the manifest says they are unchanged
	Force bool
	// Concurrency bounds parallel page renders (default: GOMAXPROCS)
	Concurrency int
}

// PageResult describes one rendered homepage.
type PageResult struct {
	Locale  string
	Path    string
	Bytes   int
	Written bool
}

// Result summarizes a build.
type Result struct {
	BuildID string
	Pages   []PageResult
	Written int
	Skipped int
	// Removed counts pages of locales no longer in the catalog
	Removed  int
	Assets   int
	Duration time.Duration
}

// Builder writes the static site for a catalog.
type Builder struct {
	catalog *content.Catalog
	opts    Options
	icons   *assets.Resolver
}

// New creates a Builder for cat.
func New(cat *content.Catalog, opts Options) *Builder {
	if opts.OutDir == "" {
		opts.OutDir = "public"
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Assets == nil {
		opts.Assets = assets.Embedded()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &Builder{
		catalog: cat,
		opts:    opts,
		icons:   assets.NewResolver(opts.Assets, "featureSvg"),
	}
}

// PagePath returns the output file of locale relative to the output
// directory: "index.html" for the default locale, "<locale>/index.html"
// otherwise.
func PagePath(cat *content.Catalog, locale string) string {
	return strings.TrimPrefix(cat.PathFor(locale), "/") + "index.html"
}

// Build renders all locales and writes changed pages, the static assets and
// the manifest.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	log := b.opts.Logger.With(logging.Component("builder"))
	afs := b.opts.Fs

	if err := afs.MkdirAll(b.opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	previous, err := ReadManifest(afs, b.opts.OutDir)
	if err != nil {
		log.Warn("ignoring unreadable manifest", logging.Err(err))
		previous = &Manifest{Pages: map[string]string{}}
	}

	locales := b.catalog.Locales()
	pages := make([]renderedPage, len(locales))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)
	for i, locale := range locales {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			page, err := b.render(locale)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render pages: %w", err)
	}

	result := &Result{BuildID: uuid.NewString()}
	next := &Manifest{
		Version:   ManifestVersion,
		BuildID:   result.BuildID,
		Generated: time.Now().UTC(),
		Pages:     make(map[string]string, len(pages)),
	}

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next.Pages[page.path] = page.hash

		written, err := b.writePage(previous, page)
		if err != nil {
			return nil, err
		}
		if written {
			result.Written++
			log.Info("page written", logging.String("locale", page.locale), logging.String("path", page.path))
		} else {
			result.Skipped++
			log.Debug("page unchanged", logging.String("locale", page.locale), logging.String("path", page.path))
		}
		result.Pages = append(result.Pages, PageResult{
			Locale:  page.locale,
			Path:    page.path,
			Bytes:   len(page.data),
			Written: written,
		})
	}
	slices.SortFunc(result.Pages, func(a, c PageResult) int {
		return strings.Compare(a.Path, c.Path)
	})

	removed, err := b.removeStale(previous, next)
	if err != nil {
		return nil, err
	}
	result.Removed = len(removed)
	for _, path := range removed {
		log.Info("stale page removed", logging.String("path", path))
	}

	copied, err := b.copyAssets(ctx)
	if err != nil {
		return nil, err
	}
	result.Assets = copied

	if err := WriteManifest(afs, b.opts.OutDir, next); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	log.Info("build finished",
		logging.String("build_id", result.BuildID),
		logging.Int("written", result.Written),
		logging.Int("skipped", result.Skipped),
		logging.Int("removed", result.Removed),
		logging.Int("assets", result.Assets),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

type renderedPage struct {
	locale string
	path   string
	data   []byte
	hash   string
}

func (b *Builder) render(locale string) (renderedPage, error) {
	html, ok := landing.RenderLocale(b.catalog, locale, landing.Options{
		Icons:    b.icons,
		Markdown: components.NewMarkdown(),
	})
	if !ok {
		return renderedPage{}, fmt.Errorf("locale %q: %w", locale, content.ErrUnknownLocale)
	}
	data := []byte(html)
	return renderedPage{
		locale: locale,
		path:   PagePath(b.catalog, locale),
		data:   data,
		hash:   hashOf(data),
	}, nil
}

func (b *Builder) writePage(previous *Manifest, page renderedPage) (bool, error) {
	target := filepath.Join(b.opts.OutDir, filepath.FromSlash(page.path))

	if !b.opts.Force && previous.Pages[page.path] == page.hash {
		if exists, err := afero.Exists(b.opts.Fs, target); err == nil && exists {
			return false, nil
		}
	}

	if err := b.opts.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(target), err)
	}
	if err := afero.WriteFile(b.opts.Fs, target, page.data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", target, err)
	}
	return true, nil
}

// removeStale deletes pages the previous build wrote that the current catalog
// no longer produces, then prunes their directories when left empty.
func (b *Builder) removeStale(previous, next *Manifest) ([]string, error) {
	var removed []string
	for _, path := range slices.Sorted(maps.Keys(previous.Pages)) {
		if _, ok := next.Pages[path]; ok {
			continue
		}
		rel := filepath.FromSlash(path)
		if !filepath.IsLocal(rel) {
			continue
		}
		target := filepath.Join(b.opts.OutDir, rel)
		if err := b.opts.Fs.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove stale page %s: %w", target, err)
		}
		removed = append(removed, path)

		for dir := filepath.Dir(target); dir != filepath.Clean(b.opts.OutDir); dir = filepath.Dir(dir) {
			empty, err := afero.IsEmpty(b.opts.Fs, dir)
			if err != nil || !empty {
				break
			}
			if err := b.opts.Fs.Remove(dir); err != nil {
				break
			}
		}
	}
	return removed, nil
}

// copyAssets mirrors the static files into the output directory, skipping
// files whose content is already identical.
func (b *Builder) copyAssets(ctx context.Context) (int, error) {
	copied := 0
	err := fs.WalkDir(b.opts.Assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(b.opts.Assets, name)
		if err != nil {
			return err
		}

		target := filepath.Join(b.opts.OutDir, filepath.FromSlash(name))
		if existing, err := afero.ReadFile(b.opts.Fs, target); err == nil && bytes.Equal(existing, data) {
			return nil
		}
		if err := b.opts.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := afero.WriteFile(b.opts.Fs, target, data, 0o644); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy assets: %w", err)
	}
	return copied, nil
}
