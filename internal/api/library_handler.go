package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"starstream/internal/catalog"
	"starstream/internal/favorites"
	"starstream/internal/history"
	"starstream/internal/progress"
)

var errUnknownTitle = errors.New("title not found")

// UpdateProgressRequest is the body of PUT /api/progress/:titleId.
type UpdateProgressRequest struct {
	Progress    *int     `json:"progress" binding:"required"`
	CurrentTime *float64 `json:"currentTime"`
	Duration    float64  `json:"duration"`
}

type ProgressHandler struct {
	progress *progress.Store
	catalog  *catalog.Engine
}

func NewProgressHandler(s *progress.Store, e *catalog.Engine) *ProgressHandler {
	return &ProgressHandler{progress: s, catalog: e}
}

func (h *ProgressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetAllProgress)
	rg.GET("/continue", h.ContinueWatching)
	rg.GET("/:titleId", h.GetProgress)
	rg.PUT("/:titleId", h.UpdateProgress)
	rg.DELETE("/:titleId", h.ClearProgress)
	rg.DELETE("", h.ClearAllProgress)
}

func (h *ProgressHandler) GetAllProgress(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	records, err := h.progress.All(ctx, whoFrom(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// ContinueWatching accepts ?limit=, defaulting to the row size.
func (h *ProgressHandler) ContinueWatching(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	records, err := h.progress.All(ctx, whoFrom(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, progress.ContinueWatching(records, limit))
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rec, err := h.progress.Get(ctx, whoFrom(c), c.Param("titleId"))
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		fail(c, http.StatusNotFound, errors.New("no progress for title"))
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if *req.Progress < 0 || *req.Progress > 100 {
		fail(c, http.StatusBadRequest, errors.New("progress must be between 0 and 100"))
		return
	}

	who := whoFrom(c)
	if who == nil {
		c.Status(http.StatusNoContent)
		return
	}

	titleID := c.Param("titleId")
	u := progress.Update{
		TitleID:     titleID,
		Percent:     *req.Progress,
		CurrentTime: req.CurrentTime,
		Duration:    req.Duration,
	}
	if t, ok := h.catalog.ByID(titleID); ok {
		u.Title = t.Title
		u.PosterURL = t.PosterURL
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.progress.Update(ctx, who, u); err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	rec, err := h.progress.Get(ctx, who, titleID)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ProgressHandler) ClearProgress(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.progress.Clear(ctx, whoFrom(c), c.Param("titleId")); err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProgressHandler) ClearAllProgress(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.progress.ClearAll(ctx, whoFrom(c)); err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type HistoryHandler struct {
	history *history.Store
	catalog *catalog.Engine
}

func NewHistoryHandler(s *history.Store, e *catalog.Engine) *HistoryHandler {
	return &HistoryHandler{history: s, catalog: e}
}

func (h *HistoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetHistory)
	rg.POST("/:titleId", h.RecordView)
}

// GetHistory returns raw records, or catalog titles with ?resolve=true.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	entries, err := h.history.List(ctx, whoFrom(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	if c.Query("resolve") == "true" {
		c.JSON(http.StatusOK, history.Titles(entries, h.catalog.ByID))
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *HistoryHandler) RecordView(c *gin.Context) {
	titleID := c.Param("titleId")
	if _, ok := h.catalog.ByID(titleID); !ok {
		fail(c, http.StatusNotFound, errUnknownTitle)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.history.Record(ctx, whoFrom(c), titleID); err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type FavoritesHandler struct {
	favorites *favorites.Store
	catalog   *catalog.Engine
}

func NewFavoritesHandler(s *favorites.Store, e *catalog.Engine) *FavoritesHandler {
	return &FavoritesHandler{favorites: s, catalog: e}
}

func (h *FavoritesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListFavorites)
	rg.GET("/:titleId", h.IsFavorite)
	rg.POST("/:titleId/toggle", h.ToggleFavorite)
}

func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.favorites.List(ctx, whoFrom(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FavoritesHandler) IsFavorite(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	fav, err := h.favorites.IsFavorite(ctx, whoFrom(c), c.Param("titleId"))
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": fav})
}

func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	t, ok := h.catalog.ByID(c.Param("titleId"))
	if !ok {
		fail(c, http.StatusNotFound, errUnknownTitle)
		return
	}

	who := whoFrom(c)
	if who == nil {
		// Toggle still raises the sign-in notification.
		_, _ = h.favorites.Toggle(c.Request.Context(), nil, t.Favorite())
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	added, err := h.favorites.Toggle(ctx, who, t.Favorite())
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": added})
}
