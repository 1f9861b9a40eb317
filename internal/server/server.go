// Package server serves the localized homepages, the static assets and the
// health endpoints over HTTP.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/keepchen/go-sail-website/internal/assets"
	"github.com/keepchen/go-sail-website/internal/content"
	"github.com/keepchen/go-sail-website/internal/website/components"
	"github.com/keepchen/go-sail-website/internal/website/landing"
	"github.com/keepchen/go-sail-website/pkg/health"
	"github.com/keepchen/go-sail-website/pkg/i18n"
	"github.com/keepchen/go-sail-website/pkg/logging"
	"github.com/keepchen/go-sail-website/pkg/metrics"
	"github.com/keepchen/go-sail-website/pkg/middleware"
)

// LangParam is the query parameter selecting a locale at the site root.
const LangParam = "lang"

// Options configures a Server.
type Options struct {
	// Assets are the static files (default: embedded)
	Assets fs.FS
	// Logger receives request and lifecycle logs
	Logger logging.Logger
	// NegotiateRoot redirects "/" to the best locale from ?lang or
	// Accept-Language instead of always serving the default locale
	NegotiateRoot bool
	// Version is reported by the readiness endpoint
	Version string
	// HeadExtra is appended to the <head> of every page
	HeadExtra string
	// Metrics collects request and render metrics served at /metrics
	// (default: a fresh set)
	Metrics *metrics.Metrics
}

// Server renders homepages from the current catalog. The catalog can be
// replaced at any time; requests see either the old or the new one.
type Server struct {
	opts   Options
	static http.Handler
	health *health.Checker
	mux    *http.ServeMux
	snap   atomic.Pointer[snapshot]
}

type page struct {
	body []byte
	etag string
}

// snapshot is a catalog with every homepage pre-rendered.
type snapshot struct {
	catalog *content.Catalog
	pages   map[string]page
	loaded  time.Time
}

// New creates a server for cat.
func New(cat *content.Catalog, opts Options) *Server {
	if opts.Assets == nil {
		opts.Assets = assets.Embedded()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	s := &Server{
		opts:   opts,
		static: assets.Handler(opts.Assets),
		health: health.NewChecker(opts.Version),
		mux:    http.NewServeMux(),
	}
	s.SetCatalog(cat)

	s.health.AddCriticalCheck("catalog", health.ErrorCheck(func() error {
		return s.Catalog().Validate()
	}), time.Second)

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /{locale}/{$}", s.handleLocale)
	s.mux.Handle("GET /healthz", s.health.LivenessHandler())
	s.mux.Handle("GET /readyz", s.health.ReadinessHandler())
	s.mux.Handle("GET /metrics", opts.Metrics.Handler())
	s.mux.HandleFunc("GET /", s.handleAsset)

	return s
}

// SetCatalog renders every page of cat and makes it current. Icons are read
// again from the asset filesystem.
func (s *Server) SetCatalog(cat *content.Catalog) {
	icons := assets.NewResolver(s.opts.Assets, "featureSvg")
	snap := &snapshot{
		catalog: cat,
		pages:   make(map[string]page),
		loaded:  time.Now(),
	}
	md := components.NewMarkdown()
	for _, locale := range cat.Locales() {
		start := time.Now()
		html, ok := landing.RenderLocale(cat, locale, landing.Options{
			Icons:     icons,
			Markdown:  md,
			HeadExtra: s.opts.HeadExtra,
		})
		if !ok {
			continue
		}
		s.opts.Metrics.ObserveRender(time.Since(start), len(html))
		sum := sha256.Sum256([]byte(html))
		snap.pages[locale] = page{
			body: []byte(html),
			etag: `"` + hex.EncodeToString(sum[:8]) + `"`,
		}
	}
	s.snap.Store(snap)
	s.opts.Logger.Info("catalog loaded",
		logging.Strings("locales", cat.Locales()),
		logging.String("default", cat.DefaultLocale()),
	)
}

// Catalog returns the current catalog.
func (s *Server) Catalog() *content.Catalog {
	return s.snap.Load().catalog
}

// Metrics returns the metrics served at /metrics.
func (s *Server) Metrics() *metrics.Metrics {
	return s.opts.Metrics
}

// Health returns the checker behind /readyz so callers can add checks.
func (s *Server) Health() *health.Checker {
	return s.health
}

// Handle registers an additional route, such as the dev reload endpoint.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// Handler returns the HTTP handler wrapped with request logging, metrics,
// panic recovery, security headers and compression.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.mux,
		logging.RequestLogger(s.opts.Logger),
		s.opts.Metrics.Instrument(),
		middleware.Recover(func(any, *http.Request) {
			s.opts.Metrics.PanicsTotal.Inc()
		}),
		middleware.SecureHeaders(middleware.DefaultSecureHeadersConfig()),
		middleware.Compress(),
	)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	snap := s.snap.Load()
	cat := snap.catalog

	if s.opts.NegotiateRoot {
		w.Header().Add("Vary", "Accept-Language")
		locale := cat.Bundle().Match(r.URL.Query().Get(LangParam), r.Header.Get("Accept-Language"))
		if locale != cat.DefaultLocale() {
			http.Redirect(w, r, cat.PathFor(locale), http.StatusFound)
			return
		}
	}

	s.servePage(w, r, snap, cat.DefaultLocale())
}

func (s *Server) handleLocale(w http.ResponseWriter, r *http.Request) {
	snap := s.snap.Load()
	cat := snap.catalog
	raw := r.PathValue("locale")

	canonical, err := i18n.Canonical(raw)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, ok := cat.Lookup(canonical); !ok {
		http.NotFound(w, r)
		return
	}
	if canonical == cat.DefaultLocale() || canonical != raw {
		http.Redirect(w, r, cat.PathFor(canonical), http.StatusMovedPermanently)
		return
	}

	s.servePage(w, r, snap, canonical)
}

// handleAsset serves static files and redirects "/zh-CN" to "/zh-CN/".
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	segment := strings.Trim(r.URL.Path, "/")
	if segment != "" && !strings.Contains(segment, "/") && !strings.Contains(segment, ".") {
		cat := s.Catalog()
		if canonical, err := i18n.Canonical(segment); err == nil {
			if _, ok := cat.Lookup(canonical); ok {
				http.Redirect(w, r, cat.PathFor(canonical), http.StatusMovedPermanently)
				return
			}
		}
	}
	if strings.HasSuffix(r.URL.Path, "/") {
		// no directory listings
		http.NotFound(w, r)
		return
	}
	s.static.ServeHTTP(w, r)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, snap *snapshot, locale string) {
	p, ok := snap.pages[locale]
	if !ok {
		logging.L(r.Context()).Error("page missing from snapshot", logging.String("locale", locale))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Language", locale)
	h.Set("Cache-Control", "no-cache")
	h.Set("ETag", p.etag)
	h.Set("Last-Modified", snap.loaded.UTC().Format(http.TimeFormat))

	if etagMatch(r.Header.Get("If-None-Match"), p.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set("Content-Length", fmt.Sprint(len(p.body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(p.body)
	}
}

// etagMatch reports whether an If-None-Match header matches etag using the
// weak comparison. It accepts "*", comma-separated lists, W/ prefixes and the
// validator of the compressed representation.
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	want := opaqueTag(etag)
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if candidate != "" && opaqueTag(candidate) == want {
			return true
		}
	}
	return false
}

func opaqueTag(tag string) string {
	tag = strings.TrimPrefix(tag, "W/")
	tag = strings.TrimSuffix(tag, middleware.GzipETagSuffix)
	tag = strings.Trim(tag, `"`)
	return strings.TrimSuffix(tag, middleware.GzipETagSuffix)
}
