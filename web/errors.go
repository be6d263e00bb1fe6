package web

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/kdgblogteam/blogapplication/internal/database"
)

// ServerError logs err and answers 500. Rejected input is logged as a
// warning without a stack, but the visitor still gets a 500.
func (app *app) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, database.ErrValidation) {
		app.logger.Warn("rejected input",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()))
	} else {
		app.logger.Error(err.Error(),
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()),
			"stack", string(debug.Stack()))
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// ClientError answers status with its standard text. Client errors are
// routine, so they are only logged at debug level.
func (app *app) ClientError(w http.ResponseWriter, r *http.Request, status int) {
	app.logger.Debug("client error",
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestIDFrom(r.Context()))
	http.Error(w, http.StatusText(status), status)
}

func (app *app) NotFound(w http.ResponseWriter, r *http.Request) {
	app.ClientError(w, r, http.StatusNotFound)
}

// MethodNotAllowed lists the accepted methods in the Allow header.
func (app *app) MethodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	app.ClientError(w, r, http.StatusMethodNotAllowed)
}
