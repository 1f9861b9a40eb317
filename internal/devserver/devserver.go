// Package devserver adds live reload to the site server: it watches the
// content directory, reloads the catalog on change and tells open browsers
// to refresh over a websocket.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/keepchen/go-sail-website/internal/content"
	"github.com/keepchen/go-sail-website/pkg/health"
	"github.com/keepchen/go-sail-website/pkg/logging"
	"github.com/keepchen/go-sail-website/pkg/metrics"
)

// Route paths served in development mode.
const (
	ReloadPath = "/_dev/reload"
	ErrorPath  = "/_dev/error"
)

// Loader produces a fresh catalog, typically from the content directory.
type Loader func() (*content.Catalog, error)

// CatalogSetter receives reloaded catalogs. *server.Server implements it.
type CatalogSetter interface {
	SetCatalog(cat *content.Catalog)
}

// Config configures the development server.
type Config struct {
	// ContentDir is watched for changes; empty disables watching
	ContentDir string
	// Loader reloads the catalog
	Loader Loader
	// Target receives every successfully loaded catalog
	Target CatalogSetter
	// Debounce coalesces bursts of file events (default 150ms)
	Debounce time.Duration
	// MaxClients bounds live-reload connections (default 64)
	MaxClients int
	// Logger receives reload logs
	Logger logging.Logger
	// Metrics counts reloads and connected clients; may be nil
	Metrics *metrics.Metrics
}

// DevServer tracks reload state and live-reload clients.
type DevServer struct {
	cfg Config
	log logging.Logger

	mu      sync.RWMutex
	clients map[chan struct{}]struct{}
	loadErr error
	closed  chan struct{}
	once    sync.Once

	watchMu sync.Mutex
	watcher *watcher
}

// New creates a development server.
func New(cfg Config) *DevServer {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 150 * time.Millisecond
	}
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NopLogger{}
	}
	return &DevServer{
		cfg:     cfg,
		log:     cfg.Logger.With(logging.Component("devserver")),
		clients: make(map[chan struct{}]struct{}),
		closed:  make(chan struct{}),
	}
}

// Mux is where the development routes are registered.
type Mux interface {
	Handle(pattern string, h http.Handler)
}

// Register mounts the reload and error endpoints on mux.
func (ds *DevServer) Register(mux Mux) {
	mux.Handle("GET "+ReloadPath, http.HandlerFunc(ds.handleReload))
	mux.Handle("GET "+ErrorPath, http.HandlerFunc(ds.handleError))
}

// HealthCheck reports the live-reload pool as a readiness check.
func (ds *DevServer) HealthCheck() health.CheckFunc {
	return health.CapacityCheck("live reload clients", ds.ClientCount, ds.cfg.MaxClients)
}

// Reload loads the catalog again. On failure the previous catalog stays in
// place and the error is reported to browsers.
func (ds *DevServer) Reload() error {
	start := time.Now()
	cat, err := ds.cfg.Loader()

	ds.mu.Lock()
	ds.loadErr = err
	ds.mu.Unlock()
	ds.cfg.Metrics.ObserveReload(err)

	if err != nil {
		ds.log.Error("reload failed, keeping previous content", logging.Err(err))
	} else {
		ds.cfg.Target.SetCatalog(cat)
		ds.log.Info("content reloaded", logging.Duration("duration", time.Since(start)))
	}

	ds.notifyClients()
	return err
}

// LoadError returns the error of the last reload, if any.
func (ds *DevServer) LoadError() error {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.loadErr
}

// ClientCount returns the number of connected live-reload clients.
func (ds *DevServer) ClientCount() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.clients)
}

// Close stops the watcher and disconnects every live-reload client.
func (ds *DevServer) Close() error {
	ds.once.Do(func() { close(ds.closed) })

	ds.watchMu.Lock()
	w := ds.watcher
	ds.watcher = nil
	ds.watchMu.Unlock()

	if w != nil {
		return w.close()
	}
	return nil
}

func (ds *DevServer) notifyClients() {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	for ch := range ds.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (ds *DevServer) addClient() (chan struct{}, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if len(ds.clients) >= ds.cfg.MaxClients {
		return nil, false
	}
	ch := make(chan struct{}, 1)
	ds.clients[ch] = struct{}{}
	ds.cfg.Metrics.LiveReloadConnected()
	return ch, true
}

func (ds *DevServer) removeClient(ch chan struct{}) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.clients, ch)
	ds.cfg.Metrics.LiveReloadDisconnected()
}

func (ds *DevServer) handleReload(w http.ResponseWriter, r *http.Request) {
	ch, ok := ds.addClient()
	if !ok {
		http.Error(w, "too many live reload clients", http.StatusServiceUnavailable)
		return
	}
	defer ds.removeClient(ch)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		logging.L(r.Context()).Warn("live reload upgrade failed", logging.Err(err))
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())
	if err := write(ctx, conn, "connected"); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ds.closed:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case <-ch:
			if err := write(ctx, conn, "reload"); err != nil {
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, []byte(msg))
}

type errorResponse struct {
	Error string `json:"error"`
}

func (ds *DevServer) handleError(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	err := ds.LoadError()
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

// ErrNoContentDir is returned by Watch when there is nothing to watch.
var ErrNoContentDir = errors.New("no content directory to watch")
