package controllers

import (
	"context"
	"net/http"
	"time"
)

type HTTPController struct {
	// Ping checks the record store; nil skips the check.
	Ping func(ctx context.Context) error
}

func NewHTTPController(ping func(ctx context.Context) error) *HTTPController {
	return &HTTPController{Ping: ping}
}

func (c *HTTPController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if c.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := c.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
