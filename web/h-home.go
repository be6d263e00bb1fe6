package web

import (
	"net/http"
)

// home lists every post, newest first.
func (app *app) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		app.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, r, "GET")
		return
	}

	posts, err := app.PostService.ListPosts(r.Context())
	if err != nil {
		app.ServerError(w, r, err)
		return
	}

	data := &HTMLData{
		Title: "Posts",
		Posts: posts,
	}

	app.RenderHTML(w, r, "index.page.html", data)
}
