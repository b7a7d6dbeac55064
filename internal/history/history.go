// Package history records which titles a user opened, most recent first.
// Opening a title again moves it back to the front; only the latest Limit
// titles are kept.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"starstream/internal/kv"
	"starstream/internal/media"
)

// Limit is the maximum number of history entries per user.
const Limit = 20

// Key returns the storage key of a user's history list.
func Key(userID string) string {
	return "watch_history_" + userID
}

// Store reads and writes watch history.
type Store struct {
	repo *kv.Repository
	now  func() time.Time

	mu sync.Mutex
}

// New creates a history store over repo.
func New(repo *kv.Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// Record marks titleID as opened now. No-op without an identity.
func (s *Store) Record(ctx context.Context, who *media.Identity, titleID string) error {
	if who == nil || titleID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.List(ctx, who)
	if err != nil {
		return err
	}

	entry := media.HistoryRecord{TitleID: titleID, Timestamp: s.now().UTC()}
	entries = kv.PushFront(entries, entry, func(e media.HistoryRecord) bool {
		return e.TitleID == titleID
	}, Limit)

	if err := kv.Save(ctx, s.repo, Key(who.ID), entries); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// List returns the user's history, most recent first.
func (s *Store) List(ctx context.Context, who *media.Identity) ([]media.HistoryRecord, error) {
	if who == nil {
		return []media.HistoryRecord{}, nil
	}
	entries, err := kv.Load[[]media.HistoryRecord](ctx, s.repo, Key(who.ID))
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if entries == nil {
		entries = []media.HistoryRecord{}
	}
	return entries, nil
}

// Titles resolves history entries to catalog titles, skipping ids the
// catalog no longer has.
func Titles(entries []media.HistoryRecord, lookup func(id string) (media.Title, bool)) []media.Title {
	titles := []media.Title{}
	for _, e := range entries {
		if t, ok := lookup(e.TitleID); ok {
			titles = append(titles, t)
		}
	}
	return titles
}
