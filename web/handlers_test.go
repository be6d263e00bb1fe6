package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdgblogteam/blogapplication/internal/database"
	"github.com/kdgblogteam/blogapplication/internal/models"
)

type testServer struct {
	handler http.Handler
	db      *database.Database
	posts   *database.PostService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.NewDatabase(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "web.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler, err := NewHandler(logger, db, Options{})
	require.NoError(t, err)

	return &testServer{
		handler: handler,
		db:      db,
		posts:   database.NewPostService(db),
	}
}

func (ts *testServer) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) createPost(t *testing.T, title, content string) *models.Post {
	t.Helper()
	post, err := ts.posts.CreatePost(t.Context(), title, content)
	require.NoError(t, err)
	return post
}

func (ts *testServer) commentCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, ts.db.DBConn.Model(&models.Comment{}).Count(&n).Error)
	return n
}

func TestHome(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No posts yet.")

	ts.createPost(t, "Hello", "First post")

	rec = ts.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Hello")
	assert.Contains(t, rec.Body.String(), "First post")
	assert.NotContains(t, rec.Body.String(), "No posts yet.")
}

func TestHome_UnknownPath(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHome_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/", url.Values{})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestCreatePost_Form(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/create", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/create"`)
}

func TestCreatePost_Submit(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/create", url.Values{
		"title":   {"Hello"},
		"content": {"World"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	posts, err := ts.posts.ListPosts(t.Context())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.Equal(t, "World", posts[0].Content)
	assert.Zero(t, posts[0].Likes)
}

func TestCreatePost_InvalidInputIsServerError(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing title", url.Values{"content": {"body"}}},
		{"empty content", url.Values{"title": {"t"}, "content": {""}}},
		{"long title", url.Values{"title": {strings.Repeat("a", 101)}, "content": {"body"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/create", tt.form)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}

	posts, err := ts.posts.ListPosts(t.Context())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestViewPost(t *testing.T) {
	ts := newTestServer(t)
	post := ts.createPost(t, "Hello", "World")

	rec := ts.do(t, http.MethodPost, postPath("/comment/", post.ID), url.Values{"body": {"Nice"}})
	require.Equal(t, http.StatusFound, rec.Code)

	rec = ts.do(t, http.MethodGet, postURL(post.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Hello")
	assert.Contains(t, body, "World")
	assert.Contains(t, body, "Nice")
	assert.Contains(t, body, "Comments (1)")
}

func TestViewPost_NotFound(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{"/post/999", "/post/abc", "/post/", "/post/0", "/post/1/extra"} {
		t.Run(target, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, target, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestViewPost_EscapesHTML(t *testing.T) {
	ts := newTestServer(t)
	post := ts.createPost(t, "<script>alert(1)</script>", "<b>bold</b>")

	rec := ts.do(t, http.MethodGet, postURL(post.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
	assert.Contains(t, rec.Body.String(), "&lt;b&gt;bold&lt;/b&gt;")
}

func TestLikePost(t *testing.T) {
	ts := newTestServer(t)
	post := ts.createPost(t, "Hello", "World")

	for i := 0; i < 2; i++ {
		rec := ts.do(t, http.MethodGet, postPath("/like/", post.ID), nil)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, postURL(post.ID), rec.Header().Get("Location"))
	}

	got, err := ts.posts.GetPost(t.Context(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Likes)
}

func TestLikePost_NotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/like/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddComment_UnknownPost(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/comment/42", url.Values{"body": {"hi"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, ts.commentCount(t))
}

func TestAddComment_InvalidBodyIsServerError(t *testing.T) {
	ts := newTestServer(t)
	post := ts.createPost(t, "Hello", "World")

	rec := ts.do(t, http.MethodPost, postPath("/comment/", post.ID), url.Values{"body": {""}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = ts.do(t, http.MethodPost, postPath("/comment/", post.ID), url.Values{"body": {strings.Repeat("x", 201)}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	assert.Zero(t, ts.commentCount(t))
}

func TestAddComment_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	post := ts.createPost(t, "Hello", "World")

	rec := ts.do(t, http.MethodGet, postPath("/comment/", post.ID), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHealthz_DatabaseClosed(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.db.Close())

	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStaticFiles(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/static/style.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	first := ts.do(t, http.MethodGet, "/healthz", nil).Header().Get("X-Request-ID")
	second := ts.do(t, http.MethodGet, "/healthz", nil).Header().Get("X-Request-ID")

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func postPath(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}

func TestPageTitles(t *testing.T) {
	ts := newTestServer(t)
	post := ts.createPost(t, "Hello", "World")

	tests := []struct {
		target string
		want   string
	}{
		{"/", "<title>Posts · Blog</title>"},
		{"/create", "<title>New post · Blog</title>"},
		{postURL(post.ID), "<title>Hello · Blog</title>"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestCreatePost_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodDelete, "/create", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	assert.Equal(t, "Method Not Allowed\n", rec.Body.String())
}
