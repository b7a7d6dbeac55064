// Package api serves the catalog, news, identity and per-user stores over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"starstream/internal/catalog"
	"starstream/internal/favorites"
	"starstream/internal/history"
	"starstream/internal/identity"
	"starstream/internal/media"
	"starstream/internal/news"
	"starstream/internal/progress"
)

const requestTimeout = 5 * time.Second

// Deps are the services the API exposes.
type Deps struct {
	Catalog   *catalog.Engine
	Identity  *identity.Context
	Progress  *progress.Store
	History   *history.Store
	Favorites *favorites.Store
	News      *news.Feed
}

// NewRouter builds the gin engine with every route under /api.
func NewRouter(d Deps, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if debug {
		r.Use(gin.Logger())
	}

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(currentIdentity(d.Identity))

	NewCatalogHandler(d.Catalog).RegisterRoutes(api)
	NewAuthHandler(d.Identity).RegisterRoutes(api.Group("/auth"))
	NewProgressHandler(d.Progress, d.Catalog).RegisterRoutes(api.Group("/progress"))
	NewHistoryHandler(d.History, d.Catalog).RegisterRoutes(api.Group("/history"))
	NewFavoritesHandler(d.Favorites, d.Catalog).RegisterRoutes(api.Group("/favorites"))
	NewNewsHandler(d.News).RegisterRoutes(api.Group("/news"))

	return r
}

// Serve runs the HTTP server until ctx is done.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

const identityKey = "identity"

// currentIdentity stores the signed-in user, if any, on the request.
func currentIdentity(ids *identity.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if who := ids.Current(); who != nil {
			c.Set(identityKey, who)
		}
		c.Next()
	}
}

// whoFrom returns the request's identity, or nil when anonymous.
func whoFrom(c *gin.Context) *media.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	who, _ := v.(*media.Identity)
	return who
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
