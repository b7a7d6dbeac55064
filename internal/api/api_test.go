package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"starstream/internal/catalog"
	"starstream/internal/favorites"
	"starstream/internal/history"
	"starstream/internal/identity"
	"starstream/internal/kv"
	"starstream/internal/media"
	"starstream/internal/news"
	"starstream/internal/progress"
)

type fixture struct {
	router *gin.Engine
	mem    *kv.Memory
	ids    *identity.Context
}

func setupRouter(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := kv.NewMemory()
	repo := kv.NewRepository(mem)
	ids, err := identity.New(context.Background(), repo, identity.WithDelay(0), identity.WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)

	r := NewRouter(Deps{
		Catalog:   catalog.New(catalog.Default()),
		Identity:  ids,
		Progress:  progress.New(repo),
		History:   history.New(repo),
		Favorites: favorites.New(repo, favorites.ScopeIdentity, nil),
		News:      news.New(news.Default()),
	}, false)
	gin.SetMode(gin.TestMode)
	return &fixture{router: r, mem: mem, ids: ids}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) register(t *testing.T) {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "neo", Email: "neo@matrix.io", Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCatalogRoutes(t *testing.T) {
	f := setupRouter(t)

	w := f.do(t, http.MethodGet, "/api/titles", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]media.Title](t, w), 3)

	w = f.do(t, http.MethodGet, "/api/titles?kind=tv", nil)
	series := decode[[]media.Title](t, w)
	require.Len(t, series, 1)
	assert.Equal(t, "s1", series[0].ID)

	w = f.do(t, http.MethodGet, "/api/titles/m1", nil)
	assert.Equal(t, "Novocaine", decode[media.Title](t, w).OriginalTitle)

	w = f.do(t, http.MethodGet, "/api/titles/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = f.do(t, http.MethodGet, "/api/search?q=THRONES", nil)
	assert.Len(t, decode[[]media.Title](t, w), 1)

	w = f.do(t, http.MethodGet, "/api/search?q=", nil)
	assert.Equal(t, "[]", w.Body.String())

	w = f.do(t, http.MethodGet, "/api/titles?kind=podcast", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/rows/new", nil)
	rows := decode[[]media.Title](t, w)
	require.NotEmpty(t, rows)
	assert.Equal(t, "m1", rows[0].ID)
}

func TestAuthStatusCodes(t *testing.T) {
	f := setupRouter(t)

	w := f.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	f.register(t)

	w = f.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "neo", decode[media.Identity](t, w).Username)

	w = f.do(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "other", Email: "neo@matrix.io", Password: "secret2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/register", RegisterRequest{
		Username: "ab", Email: "x@y.io", Password: "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", decode[map[string]string](t, w)["redirect"])

	w = f.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "neo@matrix.io", Password: "wrong!!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: "neo@matrix.io", Password: "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
	res := decode[identity.Result](t, w)
	assert.Equal(t, "/", res.Redirect)
	assert.Equal(t, "neo", res.Identity.Username)
}

func TestAnonymousWritesAreNoOps(t *testing.T) {
	f := setupRouter(t)

	w := f.do(t, http.MethodPut, "/api/progress/m1", map[string]int{"progress": 40})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodPost, "/api/history/m1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodPost, "/api/favorites/m1/toggle", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/api/progress", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 0, f.mem.Len())

	w = f.do(t, http.MethodGet, "/api/progress", nil)
	assert.Equal(t, "[]", w.Body.String())
}

func TestProgressFlow(t *testing.T) {
	f := setupRouter(t)
	f.register(t)

	w := f.do(t, http.MethodPut, "/api/progress/m1", map[string]any{"progress": 45, "duration": 6600})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec := decode[media.ProgressRecord](t, w)
	assert.Equal(t, 45, rec.Progress)
	assert.Equal(t, 2970.0, rec.CurrentTime)
	assert.Equal(t, "نوفوكين", rec.Title)

	w = f.do(t, http.MethodPut, "/api/progress/m2", map[string]any{"progress": 99})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/progress/continue", nil)
	cont := decode[[]media.ProgressRecord](t, w)
	require.Len(t, cont, 1)
	assert.Equal(t, "m1", cont[0].TitleID)

	w = f.do(t, http.MethodPut, "/api/progress/m1", map[string]any{"progress": 140})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/api/progress/m1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodDelete, "/api/progress/m1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, "/api/progress/m1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/progress", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodGet, "/api/progress", nil)
	assert.Equal(t, "[]", w.Body.String())
}

func TestHistoryAndFavorites(t *testing.T) {
	f := setupRouter(t)
	f.register(t)

	for _, id := range []string{"m1", "s1", "m1"} {
		w := f.do(t, http.MethodPost, "/api/history/"+id, nil)
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	w := f.do(t, http.MethodPost, "/api/history/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/history?resolve=true", nil)
	titles := decode[[]media.Title](t, w)
	require.Len(t, titles, 2)
	assert.Equal(t, "m1", titles[0].ID)
	assert.Equal(t, "s1", titles[1].ID)

	w = f.do(t, http.MethodPost, "/api/favorites/s1/toggle", nil)
	assert.Equal(t, map[string]bool{"favorite": true}, decode[map[string]bool](t, w))

	w = f.do(t, http.MethodGet, "/api/favorites/s1", nil)
	assert.Equal(t, map[string]bool{"favorite": true}, decode[map[string]bool](t, w))

	w = f.do(t, http.MethodGet, "/api/favorites", nil)
	favs := decode[[]media.FavoriteRecord](t, w)
	require.Len(t, favs, 1)
	assert.Equal(t, "لعبة العروش", favs[0].Title)

	w = f.do(t, http.MethodPost, "/api/favorites/s1/toggle", nil)
	assert.Equal(t, map[string]bool{"favorite": false}, decode[map[string]bool](t, w))
}

func TestNewsRoutes(t *testing.T) {
	f := setupRouter(t)

	w := f.do(t, http.MethodGet, "/api/news", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]news.Item](t, w)
	require.Len(t, all, 5)
	assert.Equal(t, "n1", all[0].ID)

	w = f.do(t, http.MethodGet, "/api/news?q=IMDB", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]news.Item](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, "n2", found[0].ID)

	w = f.do(t, http.MethodGet, "/api/news?q=", nil)
	assert.Len(t, decode[[]news.Item](t, w), 5)

	w = f.do(t, http.MethodGet, "/api/news/n3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n3", decode[news.Item](t, w).ID)

	w = f.do(t, http.MethodGet, "/api/news/zzz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "news item not found", decode[map[string]string](t, w)["error"])
}
