// Package favorites keeps the set of titles a user saved to their list.
package favorites

import (
	"context"
	"fmt"
	"sync"

	"starstream/internal/kv"
	"starstream/internal/media"
	"starstream/internal/notify"
)

// Scope decides how favorites are namespaced in storage.
type Scope string

const (
	// ScopeIdentity keeps one list per user under favorites_<userID>.
	ScopeIdentity Scope = "identity"
	// ScopeProfile shares a single list under favorites across all users
	// of the profile. A signed-in user is still required to change it.
	ScopeProfile Scope = "profile"
)

// ProfileKey is the storage key used in ScopeProfile.
const ProfileKey = "favorites"

// Store reads and toggles favorites.
type Store struct {
	repo     *kv.Repository
	scope    Scope
	notifier notify.Notifier

	mu sync.Mutex
}

// New creates a favorites store. An empty scope means ScopeIdentity.
func New(repo *kv.Repository, scope Scope, n notify.Notifier) *Store {
	if scope == "" {
		scope = ScopeIdentity
	}
	if n == nil {
		n = notify.Discard
	}
	return &Store{repo: repo, scope: scope, notifier: n}
}

// Key returns the storage key for the user's favorites.
func (s *Store) Key(who *media.Identity) string {
	if s.scope == ScopeProfile {
		return ProfileKey
	}
	return ProfileKey + "_" + who.ID
}

// List returns the saved favorites in insertion order.
func (s *Store) List(ctx context.Context, who *media.Identity) ([]media.FavoriteRecord, error) {
	if who == nil {
		return []media.FavoriteRecord{}, nil
	}
	list, err := kv.Load[[]media.FavoriteRecord](ctx, s.repo, s.Key(who))
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}
	if list == nil {
		list = []media.FavoriteRecord{}
	}
	return list, nil
}

// IsFavorite reports whether titleID is saved.
func (s *Store) IsFavorite(ctx context.Context, who *media.Identity, titleID string) (bool, error) {
	list, err := s.List(ctx, who)
	if err != nil {
		return false, err
	}
	for _, f := range list {
		if f.ID == titleID {
			return true, nil
		}
	}
	return false, nil
}

// Toggle removes the title if saved, otherwise appends the snapshot.
// It returns true when the title was added. Without an identity nothing is
// written and the user is told to sign in.
func (s *Store) Toggle(ctx context.Context, who *media.Identity, snap media.FavoriteRecord) (bool, error) {
	if who == nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Sign-in required",
			Description: "Sign in to add titles to your favorites",
			Severity:    notify.Warning,
		})
		return false, nil
	}
	if snap.ID == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.List(ctx, who)
	if err != nil {
		return false, err
	}

	list, removed := kv.Remove(list, func(f media.FavoriteRecord) bool { return f.ID == snap.ID })
	if !removed {
		list = append(list, snap)
	}

	if err := kv.Save(ctx, s.repo, s.Key(who), list); err != nil {
		return false, fmt.Errorf("saving favorites: %w", err)
	}

	if removed {
		s.notifier.Notify(notify.Notification{
			Title:       "Removed from favorites",
			Description: snap.Title + " was removed from your list",
			Severity:    notify.Info,
		})
	} else {
		s.notifier.Notify(notify.Notification{
			Title:       "Added to favorites",
			Description: snap.Title + " was added to your list",
			Severity:    notify.Success,
		})
	}
	return !removed, nil
}

// Titles resolves favorites to catalog titles, skipping unknown ids.
func Titles(list []media.FavoriteRecord, lookup func(id string) (media.Title, bool)) []media.Title {
	titles := []media.Title{}
	for _, f := range list {
		if t, ok := lookup(f.ID); ok {
			titles = append(titles, t)
		}
	}
	return titles
}
