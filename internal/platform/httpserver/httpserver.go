package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server the storefront auth endpoints are served from.
// Every handler is a short JSON exchange, so the timeouts are tight; slow
// header reads get cut off before they can pin a connection.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
