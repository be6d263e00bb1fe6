package web

import (
	"errors"
	"net/http"

	"github.com/kdgblogteam/blogapplication/internal/database"
)

// addComment attaches the submitted body to the post in the path.
func (app *app) addComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, r, "POST")
		return
	}

	postID, ok := idFromPath(r.URL.Path, "/comment/")
	if !ok {
		app.NotFound(w, r)
		return
	}

	comment, err := app.CommentService.AddComment(r.Context(), postID, r.PostFormValue("body"))
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w, r)
			return
		}
		app.ServerError(w, r, err)
		return
	}

	app.logger.Info("comment added", "id", comment.ID, "post_id", comment.PostID)

	http.Redirect(w, r, postURL(postID), http.StatusFound)
}
