package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/kdgblogteam/blogapplication/internal/models"
)

//go:embed ui
var uiFS embed.FS

const layoutFile = "base.layout.html"

type HTMLData struct {
	Title string
	Path  string
	Post  *models.Post
	Posts []models.Post
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

// newTemplateCache parses the layout, the partials and one page per entry.
func newTemplateCache(fsys fs.FS) (map[string]*template.Template, error) {
	pages, err := fs.Glob(fsys, "*.page.html")
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no *.page.html templates found")
	}

	partials, err := fs.Glob(fsys, "*.partial.html")
	if err != nil {
		return nil, err
	}

	cache := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		files := append([]string{layoutFile, page}, partials...)

		ts, err := template.New(path.Base(page)).Funcs(functions).ParseFS(fsys, files...)
		if err != nil {
			return nil, err
		}

		cache[page] = ts
	}

	return cache, nil
}

func (app *app) RenderHTML(w http.ResponseWriter, r *http.Request, pageFile string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}

	data.Path = r.URL.Path

	ts, ok := app.templates[pageFile]
	if !ok {
		app.ServerError(w, r, fmt.Errorf("template %s does not exist", pageFile))
		return
	}

	// Render into a buffer first so a failing template never sends half a page.
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.ServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		app.logger.Debug("write response", "error", err, "page", pageFile)
	}
}
