package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"starstream/internal/news"
)

type NewsHandler struct {
	feed *news.Feed
}

func NewNewsHandler(f *news.Feed) *NewsHandler {
	return &NewsHandler{feed: f}
}

func (h *NewsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

// List returns the whole feed, or the matches for ?q= when given.
func (h *NewsHandler) List(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok {
		c.JSON(http.StatusOK, h.feed.Search(q))
		return
	}
	c.JSON(http.StatusOK, h.feed.Latest())
}

func (h *NewsHandler) Get(c *gin.Context) {
	it, ok := h.feed.ByID(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, errors.New("news item not found"))
		return
	}
	c.JSON(http.StatusOK, it)
}
