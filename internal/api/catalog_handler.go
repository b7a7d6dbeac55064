package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"starstream/internal/catalog"
	"starstream/internal/media"
)

type CatalogHandler struct {
	catalog *catalog.Engine
}

func NewCatalogHandler(e *catalog.Engine) *CatalogHandler {
	return &CatalogHandler{catalog: e}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/titles", h.ListTitles)
	rg.GET("/titles/:id", h.GetTitle)
	rg.GET("/titles/:id/similar", h.Similar)
	rg.GET("/search", h.Search)
	rg.GET("/genres", h.Genres)
	rg.GET("/rows/trending", h.rows(h.catalog.Trending))
	rg.GET("/rows/new", h.rows(h.catalog.NewReleases))
	rg.GET("/rows/recommended", h.rows(h.catalog.Recommended))
}

// ListTitles filters by ?kind= and ?genre= when given.
func (h *CatalogHandler) ListTitles(c *gin.Context) {
	titles := h.catalog.All()

	if k := c.Query("kind"); k != "" {
		kind, err := media.ParseKind(k)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		titles = h.catalog.ByKind(kind)
	}
	if g := c.Query("genre"); g != "" {
		filtered := []media.Title{}
		for _, t := range titles {
			if t.HasGenre(g) {
				filtered = append(filtered, t)
			}
		}
		titles = filtered
	}

	c.JSON(http.StatusOK, titles)
}

func (h *CatalogHandler) GetTitle(c *gin.Context) {
	t, ok := h.catalog.ByID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, errors.New("title not found"))
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *CatalogHandler) Similar(c *gin.Context) {
	t, ok := h.catalog.ByID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, errors.New("title not found"))
		return
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			fail(c, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, h.catalog.SimilarTo(t, limit))
}

func (h *CatalogHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Search(c.Query("q")))
}

func (h *CatalogHandler) Genres(c *gin.Context) {
	var kind *media.Kind
	if k := c.Query("kind"); k != "" {
		parsed, err := media.ParseKind(k)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		kind = &parsed
	}
	c.JSON(http.StatusOK, h.catalog.Genres(kind))
}

func (h *CatalogHandler) rows(row func() []media.Title) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, row())
	}
}
