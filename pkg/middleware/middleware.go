// Package middleware provides the HTTP middleware wrapped around the site
// handler: panic recovery, security headers and response compression.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzhttp"

	"github.com/keepchen/go-sail-website/pkg/logging"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware so the first one listed is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recover turns a panicking handler into a 500 response and logs the stack
// with the request-scoped logger. onPanic may be nil.
func Recover(onPanic func(rec any, r *http.Request)) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if onPanic != nil {
					onPanic(rec, r)
				}
				logging.L(r.Context()).Error("handler panicked",
					logging.String("panic", fmt.Sprint(rec)),
					logging.String("stack", string(debug.Stack())),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeadersConfig configures security headers.
type SecureHeadersConfig struct {
	// FrameOptions controls X-Frame-Options.
	// Default: "DENY"
	FrameOptions string

	// ContentTypeNosniff enables X-Content-Type-Options: nosniff.
	ContentTypeNosniff bool

	// ReferrerPolicy sets the Referrer-Policy header.
	// Default: "strict-origin-when-cross-origin"
	ReferrerPolicy string

	// PermissionsPolicy sets the Permissions-Policy header.
	PermissionsPolicy string

	// HSTSMaxAge enables Strict-Transport-Security on HTTPS requests when
	// positive.
	HSTSMaxAge int

	// ContentSecurityPolicy sets the CSP header. Pages carry their
	// stylesheet inline, so the default allows inline styles.
	ContentSecurityPolicy string
}

// DefaultSecureHeadersConfig returns the headers sent with every response.
func DefaultSecureHeadersConfig() SecureHeadersConfig {
	return SecureHeadersConfig{
		FrameOptions:       "DENY",
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		PermissionsPolicy:  "geolocation=(), microphone=(), camera=()",
		HSTSMaxAge:         31536000,
		ContentSecurityPolicy: strings.Join([]string{
			"default-src 'self'",
			"img-src 'self' data: https:",
			"style-src 'self' 'unsafe-inline'",
			"script-src 'self' 'unsafe-inline'",
			"connect-src 'self' ws: wss:",
			"frame-ancestors 'none'",
			"base-uri 'self'",
		}, "; "),
	}
}

// SecureHeaders sets cfg's headers on every response.
func SecureHeaders(cfg SecureHeadersConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.ContentTypeNosniff {
				h.Set("X-Content-Type-Options", "nosniff")
			}
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", cfg.PermissionsPolicy)
			}
			if cfg.HSTSMaxAge > 0 && (r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https") {
				h.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(cfg.HSTSMaxAge)+"; includeSubDomains")
			}
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GzipETagSuffix is appended to the ETag of compressed responses so the
// gzip and identity representations never share a strong validator.
const GzipETagSuffix = "-gzip"

// Compress gzips responses for clients that accept it. Websocket upgrades
// pass through untouched.
func Compress() Middleware {
	wrap, err := gzhttp.NewWrapper(gzhttp.SuffixETag(GzipETagSuffix))
	if err != nil {
		// Options are constant; an error here is a programming bug.
		panic(err)
	}
	return func(next http.Handler) http.Handler {
		gz := wrap(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Upgrade") != "" {
				next.ServeHTTP(w, r)
				return
			}
			gz.ServeHTTP(w, r)
		})
	}
}
