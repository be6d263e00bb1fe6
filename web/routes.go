package web

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func (app *app) routes(serviceName string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static", http.FileServerFS(app.staticFS)))

	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/create", app.createPost)
	mux.HandleFunc("/post/", app.viewPost)
	mux.HandleFunc("/like/", app.likePost)
	mux.HandleFunc("/comment/", app.addComment)
	mux.HandleFunc("/healthz", app.healthz)

	var h http.Handler = mux
	h = app.recoverPanic(h)
	h = app.logRequest(h)
	h = app.requestID(h)

	return otelhttp.NewHandler(h, serviceName, otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
	}))
}
