package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"starstream/internal/catalog"
	"starstream/internal/favorites"
	"starstream/internal/history"
	"starstream/internal/identity"
	"starstream/internal/kv"
	"starstream/internal/media"
	"starstream/internal/news"
	"starstream/internal/notify"
	"starstream/internal/progress"
)

// app wires the stores over the configured backend.
type app struct {
	repo      *kv.Repository
	catalog   *catalog.Engine
	identity  *identity.Context
	progress  *progress.Store
	history   *history.Store
	favorites *favorites.Store
	news      *news.Feed
	notifier  notify.Notifier
}

func openApp(ctx context.Context) (*app, error) {
	dir, err := cfg.ExpandDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}

	store, err := kv.Open(ctx, kv.Options{
		Backend:       strings.ToLower(cfg.Storage),
		Dir:           dir,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage, err)
	}
	debugf("storage: %s (%s)", cfg.Storage, dir)

	repo := kv.NewRepository(store, kv.WithDebug(debugf))
	n := notify.NewTerminal(os.Stderr)

	ids, err := identity.New(ctx, repo,
		identity.WithDelay(cfg.AuthDelay.Duration),
		identity.WithNotifier(n),
	)
	if err != nil {
		repo.Close()
		return nil, err
	}

	return &app{
		repo:      repo,
		catalog:   catalog.New(catalog.Default()),
		identity:  ids,
		progress:  progress.New(repo),
		history:   history.New(repo),
		favorites: favorites.New(repo, favorites.Scope(strings.ToLower(cfg.FavoritesScope)), n),
		news:      news.New(news.Default()),
		notifier:  n,
	}, nil
}

func (a *app) Close() error {
	return a.repo.Close()
}

// who is the signed-in user or nil.
func (a *app) who() *media.Identity {
	return a.identity.Current()
}

// withApp opens the app for the duration of fn.
func withApp(ctx context.Context, fn func(*app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			debugf("closing storage: %v", err)
		}
	}()
	return fn(a)
}
