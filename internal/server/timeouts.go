// internal/server/timeouts.go
//
// HTTP server helper with robust timeouts.
//
// Production hardening recommends:
//
//   - ReadTimeout   – abort slow-loris uploads (30 s, photo uploads included)
//   - WriteTimeout  – cap total response time (60 s, covers generator calls)
//   - IdleTimeout   – close keep-alives on idle clients (60 s)
//
// The write timeout is deliberately generous because the muse, quiz, and
// comic routes block on an upstream language-model call before responding.
//
// This helper centralises those defaults so cmd/web doesn't repeat
// boilerplate.

package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server with sensible defaults.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		// TLSConfig may be injected by callers (e.g., autocert).
	}
}
