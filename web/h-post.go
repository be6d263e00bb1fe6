package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kdgblogteam/blogapplication/internal/database"
)

// createPost shows the form on GET and stores the post on POST.
func (app *app) createPost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		app.RenderHTML(w, r, "create.page.html", &HTMLData{Title: "New post"})
		return
	case http.MethodPost:
	default:
		app.MethodNotAllowed(w, r, "GET", "POST")
		return
	}

	title := r.PostFormValue("title")
	content := r.PostFormValue("content")

	// Missing fields end up here as a validation error and a 500, no form re-render.
	post, err := app.PostService.CreatePost(r.Context(), title, content)
	if err != nil {
		app.ServerError(w, r, err)
		return
	}

	app.logger.Info("post created", "id", post.ID, "title", post.Title)

	http.Redirect(w, r, "/", http.StatusFound)
}

// viewPost shows one post with its comments.
func (app *app) viewPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, r, "GET")
		return
	}

	id, ok := idFromPath(r.URL.Path, "/post/")
	if !ok {
		app.NotFound(w, r)
		return
	}

	post, err := app.PostService.GetPostWithComments(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w, r)
			return
		}
		app.ServerError(w, r, err)
		return
	}

	data := &HTMLData{
		Title: post.Title,
		Post:  post,
	}

	app.RenderHTML(w, r, "detail.page.html", data)
}

// likePost adds one like and sends the visitor back to the post.
func (app *app) likePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, r, "GET")
		return
	}

	id, ok := idFromPath(r.URL.Path, "/like/")
	if !ok {
		app.NotFound(w, r)
		return
	}

	post, err := app.PostService.IncrementLikes(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w, r)
			return
		}
		app.ServerError(w, r, err)
		return
	}

	app.logger.Debug("post liked", "id", post.ID, "likes", post.Likes)

	http.Redirect(w, r, postURL(id), http.StatusFound)
}

func postURL(id uint) string {
	return "/post/" + strconv.FormatUint(uint64(id), 10)
}
