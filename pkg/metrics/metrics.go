// Package metrics exposes the site's counters in the Prometheus text format.
package metrics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Namespace prefixes every exported metric name.
const Namespace = "sailsite"

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP
	RequestsTotal   *CounterVec
	RequestDuration *Histogram

	// Rendering
	PagesRendered  *Counter
	RenderDuration *Histogram
	PageBytes      *Gauge

	// Live reload
	ReloadsTotal     *CounterVec
	LiveReloadActive *Gauge

	// Errors
	PanicsTotal *Counter
}

// New creates an empty metrics set.
func New() *Metrics {
	return &Metrics{
		RequestsTotal:   NewCounterVec("http_requests_total", "HTTP requests by status class", "code"),
		RequestDuration: NewHistogram("http_request_duration_seconds", "HTTP request latency"),

		PagesRendered:  NewCounter("pages_rendered_total", "Homepages rendered"),
		RenderDuration: NewHistogram("render_duration_seconds", "Time to render one homepage"),
		PageBytes:      NewGauge("page_bytes", "Size of the most recently rendered homepage"),

		ReloadsTotal:     NewCounterVec("content_reloads_total", "Content reloads by result", "result"),
		LiveReloadActive: NewGauge("livereload_clients", "Connected live reload clients"),

		PanicsTotal: NewCounter("panics_total", "Handler panics recovered"),
	}
}

// ObserveRender records one homepage render.
func (m *Metrics) ObserveRender(d time.Duration, size int) {
	if m == nil {
		return
	}
	m.PagesRendered.Inc()
	m.RenderDuration.ObserveDuration(d)
	m.PageBytes.Set(float64(size))
}

// ObserveReload records a content reload.
func (m *Metrics) ObserveReload(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.ReloadsTotal.Inc("error")
		return
	}
	m.ReloadsTotal.Inc("ok")
}

// LiveReloadConnected and LiveReloadDisconnected track open live reload
// sockets.
func (m *Metrics) LiveReloadConnected() {
	if m != nil {
		m.LiveReloadActive.Inc()
	}
}

func (m *Metrics) LiveReloadDisconnected() {
	if m != nil {
		m.LiveReloadActive.Dec()
	}
}

// WriteTo writes every metric in the Prometheus text format.
func (m *Metrics) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	m.RequestsTotal.write(cw)
	m.RequestDuration.write(cw)
	m.PagesRendered.write(cw)
	m.RenderDuration.write(cw)
	m.PageBytes.write(cw)
	m.ReloadsTotal.write(cw)
	m.LiveReloadActive.write(cw)
	m.PanicsTotal.write(cw)
	return cw.n, cw.err
}

// Handler returns an HTTP handler for metrics.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = m.WriteTo(w)
	})
}

// Instrument counts requests by status class and records their latency.
func (m *Metrics) Instrument() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			m.RequestsTotal.Inc(strconv.Itoa(sw.status/100) + "xx")
			m.RequestDuration.ObserveDuration(time.Since(start))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(status int) {
	if !sw.wroteHeader {
		sw.status = status
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := sw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	sw.status = http.StatusSwitchingProtocols
	sw.wroteHeader = true
	return hj.Hijack()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}

func (cw *countingWriter) header(name, help, kind string) {
	cw.printf("# HELP %s_%s %s\n# TYPE %s_%s %s\n", Namespace, name, help, Namespace, name, kind)
}

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	help  string
	value int64
}

// NewCounter creates a new counter.
func NewCounter(name, help string) *Counter {
	return &Counter{name: name, help: help}
}

// Inc increments the counter by 1.
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Add adds the given value to the counter.
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.value, delta)
}

// Value returns the current counter value.
func (c *Counter) Value() float64 {
	return float64(atomic.LoadInt64(&c.value))
}

func (c *Counter) write(cw *countingWriter) {
	cw.header(c.name, c.help, "counter")
	cw.printf("%s_%s %g\n", Namespace, c.name, c.Value())
}

// Gauge is a value that can go up and down.
type Gauge struct {
	name  string
	help  string
	value int64
}

// NewGauge creates a new gauge.
func NewGauge(name, help string) *Gauge {
	return &Gauge{name: name, help: help}
}

// Set sets the gauge to a value.
func (g *Gauge) Set(value float64) {
	atomic.StoreInt64(&g.value, int64(value))
}

// Inc increments the gauge by 1.
func (g *Gauge) Inc() {
	atomic.AddInt64(&g.value, 1)
}

// Dec decrements the gauge by 1.
func (g *Gauge) Dec() {
	atomic.AddInt64(&g.value, -1)
}

// Value returns the current gauge value.
func (g *Gauge) Value() float64 {
	return float64(atomic.LoadInt64(&g.value))
}

func (g *Gauge) write(cw *countingWriter) {
	cw.header(g.name, g.help, "gauge")
	cw.printf("%s_%s %g\n", Namespace, g.name, g.Value())
}

// CounterVec is a counter with one label.
type CounterVec struct {
	name   string
	help   string
	label  string
	values map[string]*Counter
	mu     sync.RWMutex
}

// NewCounterVec creates a new counter vector.
func NewCounterVec(name, help, label string) *CounterVec {
	return &CounterVec{
		name:   name,
		help:   help,
		label:  label,
		values: make(map[string]*Counter),
	}
}

// WithLabel returns the counter for a label value.
func (cv *CounterVec) WithLabel(value string) *Counter {
	cv.mu.RLock()
	c, ok := cv.values[value]
	cv.mu.RUnlock()
	if ok {
		return c
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()
	if c, ok := cv.values[value]; ok {
		return c
	}
	c = NewCounter(cv.name, cv.help)
	cv.values[value] = c
	return c
}

// Inc increments the counter for the given label.
func (cv *CounterVec) Inc(label string) {
	cv.WithLabel(label).Inc()
}

// Values returns all counter values.
func (cv *CounterVec) Values() map[string]float64 {
	cv.mu.RLock()
	defer cv.mu.RUnlock()

	result := make(map[string]float64, len(cv.values))
	for label, counter := range cv.values {
		result[label] = counter.Value()
	}
	return result
}

func (cv *CounterVec) write(cw *countingWriter) {
	values := cv.Values()
	labels := make([]string, 0, len(values))
	for label := range values {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	cw.header(cv.name, cv.help, "counter")
	for _, label := range labels {
		cw.printf("%s_%s{%s=%q} %g\n", Namespace, cv.name, cv.label, label, values[label])
	}
}

// Histogram tracks the count and sum of observations. It is exported as a
// summary without quantiles.
type Histogram struct {
	name  string
	help  string
	sum   float64
	count int64
	min   float64
	max   float64
	mu    sync.Mutex
}

// NewHistogram creates a new histogram.
func NewHistogram(name, help string) *Histogram {
	return &Histogram{name: name, help: help, min: -1}
}

// Observe records a value.
func (h *Histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sum += value
	h.count++
	if h.min < 0 || value < h.min {
		h.min = value
	}
	if value > h.max {
		h.max = value
	}
}

// ObserveDuration records a duration value.
func (h *Histogram) ObserveDuration(d time.Duration) {
	h.Observe(d.Seconds())
}

// Stats returns histogram statistics.
func (h *Histogram) Stats() HistogramStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := HistogramStats{
		Count: h.count,
		Sum:   h.sum,
		Min:   h.min,
		Max:   h.max,
	}
	if h.count > 0 {
		stats.Avg = h.sum / float64(h.count)
	}
	return stats
}

func (h *Histogram) write(cw *countingWriter) {
	stats := h.Stats()
	cw.header(h.name, h.help, "summary")
	cw.printf("%s_%s_sum %g\n", Namespace, h.name, stats.Sum)
	cw.printf("%s_%s_count %d\n", Namespace, h.name, stats.Count)
}

// HistogramStats contains histogram statistics.
type HistogramStats struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Avg   float64
}
