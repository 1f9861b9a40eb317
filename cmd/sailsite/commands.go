package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/keepchen/go-sail-website/internal/assets"
	"github.com/keepchen/go-sail-website/internal/builder"
	"github.com/keepchen/go-sail-website/internal/config"
	"github.com/keepchen/go-sail-website/internal/content"
	"github.com/keepchen/go-sail-website/internal/devserver"
	"github.com/keepchen/go-sail-website/internal/server"
	"github.com/keepchen/go-sail-website/pkg/logging"
	"github.com/keepchen/go-sail-website/pkg/shutdown"
)

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "render every locale's homepage into a static directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory (default: public)"},
			&cli.BoolFlag{Name: "force", Usage: "rewrite pages even when unchanged"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			if c.IsSet("out") {
				cfg.OutDir = c.String("out")
			}

			cat, err := content.Open(cfg.ContentDir, cfg.DefaultLocale)
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}

			res, err := builder.New(cat, builder.Options{
				OutDir: cfg.OutDir,
				Fs:     afero.NewOsFs(),
				Assets: assets.Open(cfg.ContentDir),
				Logger: logger,
				Force:  c.Bool("force"),
			}).Build(c.Context)
			if err != nil {
				return err
			}

			w := c.App.Writer
			var total uint64
			for _, p := range res.Pages {
				state := "unchanged"
				if p.Written {
					state = "written"
				}
				total += uint64(p.Bytes)
				fmt.Fprintf(w, "  %-6s %-20s %8s  %s\n", p.Locale, p.Path, humanize.Bytes(uint64(p.Bytes)), state)
			}
			if res.Removed > 0 {
				fmt.Fprintf(w, "  removed %d stale page(s)\n", res.Removed)
			}
			successPrinter.Fprintf(w, "✓ built %d pages (%d written, %d unchanged) and %d assets, %s of HTML into %s in %s\n",
				len(res.Pages), res.Written, res.Skipped, res.Assets, humanize.Bytes(total), cfg.OutDir, res.Duration.Round(time.Millisecond))
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the homepages over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (default :8080)"},
			&cli.BoolFlag{Name: "negotiate", Usage: "redirect / to the visitor's preferred locale"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			applyServeFlags(c, &cfg)

			cat, err := content.Open(cfg.ContentDir, cfg.DefaultLocale)
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}

			srv := server.New(cat, server.Options{
				Assets:        assets.Open(cfg.ContentDir),
				Logger:        logger,
				NegotiateRoot: cfg.NegotiateRoot,
				Version:       version,
			})

			sh := newShutdownHandler(cfg, logger)
			return listenAndServe(c.Context, c, cfg, logger, srv.Handler(), sh)
		},
	}
}

func devCommand() *cli.Command {
	return &cli.Command{
		Name:  "dev",
		Usage: "serve with live reload, watching the content directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (default :8080)"},
			&cli.BoolFlag{Name: "negotiate", Usage: "redirect / to the visitor's preferred locale"},
			&cli.DurationFlag{Name: "debounce", Value: 150 * time.Millisecond, Usage: "quiet period before reloading"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			applyServeFlags(c, &cfg)

			loader := func() (*content.Catalog, error) {
				return content.Open(cfg.ContentDir, cfg.DefaultLocale)
			}
			cat, err := loader()
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}

			srv := server.New(cat, server.Options{
				Assets:        assets.Open(cfg.ContentDir),
				Logger:        logger,
				NegotiateRoot: cfg.NegotiateRoot,
				Version:       version,
				HeadExtra:     devserver.ReloadScript(),
			})
			ds := devserver.New(devserver.Config{
				ContentDir: cfg.ContentDir,
				Loader:     loader,
				Target:     srv,
				Debounce:   c.Duration("debounce"),
				Logger:     logger,
				Metrics:    srv.Metrics(),
			})
			ds.Register(srv)
			srv.Health().AddCheck("live_reload", ds.HealthCheck(), time.Second)

			sh := newShutdownHandler(cfg, logger)
			sh.Register(shutdown.CloseableHook("devserver", shutdown.PriorityWatcher, ds))

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()
			if err := ds.Watch(ctx); err != nil {
				if !errors.Is(err, devserver.ErrNoContentDir) {
					return err
				}
				warnPrinter.Fprintln(c.App.Writer, "! no content directory given, live reload is limited to restarts (use --content)")
			}

			return listenAndServe(ctx, c, cfg, logger, srv.Handler(), sh)
		},
	}
}

func applyServeFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	if c.IsSet("negotiate") {
		cfg.NegotiateRoot = c.Bool("negotiate")
	}
}

func newShutdownHandler(cfg config.Config, logger logging.Logger) *shutdown.Handler {
	sc := shutdown.DefaultConfig()
	sc.Timeout = cfg.ShutdownTimeout
	sc.OnShutdown = func() {
		logger.Info("shutting down", logging.Duration("timeout", cfg.ShutdownTimeout))
	}
	sc.OnHookComplete = func(name string, err error, d time.Duration) {
		if err != nil {
			logger.Error("shutdown hook failed", logging.String("hook", name), logging.Err(err))
			return
		}
		logger.Debug("shutdown hook done", logging.String("hook", name), logging.Duration("duration", d))
	}
	return shutdown.NewHandler(sc)
}

// listenAndServe runs handler until a signal arrives, ctx is done or the
// listener fails.
func listenAndServe(ctx context.Context, c *cli.Context, cfg config.Config, logger logging.Logger, handler http.Handler, sh *shutdown.Handler) error {
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sh.Register(shutdown.HTTPServerHook("http", httpSrv.Shutdown))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpSrv.ListenAndServe()
	}()

	infoPrinter.Fprintf(c.App.Writer, "→ serving on %s\n", displayAddr(cfg.Addr))
	logger.Info("listening", logging.String("addr", cfg.Addr))

	done := make(chan error, 1)
	go func() {
		done <- sh.Wait(ctx)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return <-done
		}
		_ = sh.Shutdown()
		<-done
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	case err := <-done:
		return err
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
