// Package shutdown coordinates graceful shutdown of the site processes:
// hooks run in priority order under a shared timeout once a signal arrives.
package shutdown

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"
)

// Common shutdown errors.
var (
	ErrShutdownTimeout = errors.New("shutdown timed out")
	ErrAlreadyClosed   = errors.New("shutdown handler already closed")
)

// Hook represents a shutdown hook.
type Hook struct {
	// Name identifies the hook for logging.
	Name string

	// Priority determines execution order (lower = earlier).
	Priority int

	// Fn is the function to execute during shutdown.
	Fn func(ctx context.Context) error
}

// Config configures the shutdown handler.
type Config struct {
	// Timeout is the maximum time to wait for graceful shutdown.
	Timeout time.Duration

	// Signals are the OS signals to listen for.
	Signals []os.Signal

	// OnShutdown is called when shutdown begins.
	OnShutdown func()

	// OnHookComplete is called when a hook completes.
	OnHookComplete func(name string, err error, duration time.Duration)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// Handler manages graceful shutdown.
type Handler struct {
	config *Config
	hooks  []Hook
	done   chan struct{}
	closed bool
	mu     sync.Mutex
}

// NewHandler creates a new shutdown handler.
func NewHandler(config *Config) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}

	return &Handler{
		config: config,
		done:   make(chan struct{}),
	}
}

// Register adds a shutdown hook.
func (h *Handler) Register(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// RegisterFunc is a convenience method to register a function as a hook.
func (h *Handler) RegisterFunc(name string, priority int, fn func(ctx context.Context) error) {
	h.Register(Hook{
		Name:     name,
		Priority: priority,
		Fn:       fn,
	})
}

// Wait blocks until a shutdown signal is received or ctx is done, then runs
// the hooks. It returns nil without running hooks when Shutdown was already
// called elsewhere.
func (h *Handler) Wait(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	if len(h.config.Signals) > 0 {
		signal.Notify(sigCh, h.config.Signals...)
		defer signal.Stop(sigCh)
	}

	select {
	case <-sigCh:
	case <-ctx.Done():
	case <-h.done:
		return nil
	}

	return h.Shutdown()
}

// Shutdown runs every hook in priority order. Hooks with equal priority run
// in registration order. Errors are joined.
func (h *Handler) Shutdown() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrAlreadyClosed
	}
	h.closed = true
	close(h.done)

	hooks := slices.Clone(h.hooks)
	h.mu.Unlock()

	slices.SortStableFunc(hooks, func(a, b Hook) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	if h.config.OnShutdown != nil {
		h.config.OnShutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var errs []error
	for _, hook := range hooks {
		start := time.Now()
		err := hook.Fn(ctx)
		duration := time.Since(start)

		if h.config.OnHookComplete != nil {
			h.config.OnHookComplete(hook.Name, err, duration)
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", hook.Name, err))
		}

		select {
		case <-ctx.Done():
			return errors.Join(append(errs, ErrShutdownTimeout)...)
		default:
		}
	}

	return errors.Join(errs...)
}

// Done returns a channel that's closed when shutdown starts.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

// Hook priorities used by the site commands.
const (
	// PriorityWatcher stops the content watcher before connections drain
	PriorityWatcher = 50

	// PriorityHTTP for HTTP server shutdown
	PriorityHTTP = 100
)

// HTTPServerHook creates a hook for shutting down an HTTP server.
func HTTPServerHook(name string, shutdownFn func(ctx context.Context) error) Hook {
	return Hook{
		Name:     name,
		Priority: PriorityHTTP,
		Fn:       shutdownFn,
	}
}

// CloseableHook creates a hook for anything with a Close() method.
func CloseableHook(name string, priority int, closer interface{ Close() error }) Hook {
	return Hook{
		Name:     name,
		Priority: priority,
		Fn: func(ctx context.Context) error {
			return closer.Close()
		},
	}
}
