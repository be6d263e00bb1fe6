package web

import (
	"context"
	"net/http"
	"time"
)

// healthz reports whether the database answers a ping.
func (app *app) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, r, "GET")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.Database.PingContext(ctx); err != nil {
		app.logger.Warn("health check failed", "error", err)
		app.ClientError(w, r, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok")); err != nil {
		app.logger.Debug("write health response", "error", err)
	}
}
