// Package progress stores per-user playback positions.
//
// Each user has one list of records under watch_progress_<userID>, most
// recently written first. A title appears at most once: writing it again
// replaces the old record and moves it to the front. The list holds at most
// Limit records; the oldest fall off.
//
// Every operation takes the acting identity explicitly. A nil identity makes
// writes silent no-ops and reads empty.
package progress

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"starstream/internal/kv"
	"starstream/internal/media"
)

// Limit is the maximum number of records kept per user.
const Limit = 50

// Thresholds in percent.
const (
	// FinishedAt and above counts as watched to the end.
	FinishedAt = 98
	// ResumeBelow is the upper bound for offering to resume.
	ResumeBelow = 95
)

// ContinueWatchingSize is the default length of the continue-watching row.
const ContinueWatchingSize = 10

// Key returns the storage key of a user's progress list.
func Key(userID string) string {
	return "watch_progress_" + userID
}

// Update describes one progress write.
type Update struct {
	TitleID string
	Percent int // 0-100, clamped by the caller
	// CurrentTime is the position in seconds. When nil it is derived from
	// Duration and Percent.
	CurrentTime *float64
	Duration    float64 // Seconds, 0 when unknown
	Title       string
	PosterURL   string
}

// Store reads and writes progress lists.
type Store struct {
	repo *kv.Repository
	now  func() time.Time

	mu sync.Mutex
}

// New creates a progress store over repo.
func New(repo *kv.Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// Get returns the record for titleID, or nil when there is none.
func (s *Store) Get(ctx context.Context, who *media.Identity, titleID string) (*media.ProgressRecord, error) {
	records, err := s.All(ctx, who)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.TitleID == titleID {
			return &r, nil
		}
	}
	return nil, nil
}

// All returns the user's records, most recent first.
func (s *Store) All(ctx context.Context, who *media.Identity) ([]media.ProgressRecord, error) {
	if who == nil {
		return []media.ProgressRecord{}, nil
	}
	records, err := kv.Load[[]media.ProgressRecord](ctx, s.repo, Key(who.ID))
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}
	if records == nil {
		records = []media.ProgressRecord{}
	}
	return records, nil
}

// Update writes a fresh record for u.TitleID at the front of the list.
func (s *Store) Update(ctx context.Context, who *media.Identity, u Update) error {
	if who == nil || u.TitleID == "" {
		return nil
	}

	now := s.now()
	rec := media.ProgressRecord{
		ID:        fmt.Sprintf("%s-%d", u.TitleID, now.UnixMilli()),
		TitleID:   u.TitleID,
		Progress:  u.Percent,
		Duration:  u.Duration,
		Timestamp: now.UTC(),
		Title:     u.Title,
		PosterURL: u.PosterURL,
	}
	if u.CurrentTime != nil {
		rec.CurrentTime = *u.CurrentTime
	} else {
		rec.CurrentTime = u.Duration * float64(u.Percent) / 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.All(ctx, who)
	if err != nil {
		return err
	}
	records = kv.PushFront(records, rec, func(r media.ProgressRecord) bool {
		return r.TitleID == u.TitleID
	}, Limit)

	if err := kv.Save(ctx, s.repo, Key(who.ID), records); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// Clear removes the record for titleID. Clearing a missing record is not an error.
func (s *Store) Clear(ctx context.Context, who *media.Identity, titleID string) error {
	if who == nil || titleID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.All(ctx, who)
	if err != nil {
		return err
	}
	records, removed := kv.Remove(records, func(r media.ProgressRecord) bool {
		return r.TitleID == titleID
	})
	if !removed {
		return nil
	}

	if err := kv.Save(ctx, s.repo, Key(who.ID), records); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// ClearAll drops every progress record of the user.
func (s *Store) ClearAll(ctx context.Context, who *media.Identity) error {
	if who == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, Key(who.ID)); err != nil {
		return fmt.Errorf("clearing progress: %w", err)
	}
	return nil
}

// Continuable reports whether a title was started but not finished.
func Continuable(percent int) bool {
	return percent > 0 && percent < FinishedAt
}

// Resumable reports whether playback should offer to resume.
func Resumable(percent int) bool {
	return percent > 0 && percent < ResumeBelow
}

// ContinueWatching keeps the continuable records, in order, up to limit.
// limit <= 0 means ContinueWatchingSize.
func ContinueWatching(records []media.ProgressRecord, limit int) []media.ProgressRecord {
	if limit <= 0 {
		limit = ContinueWatchingSize
	}
	out := []media.ProgressRecord{}
	for _, r := range records {
		if len(out) == limit {
			break
		}
		if Continuable(r.Progress) {
			out = append(out, r)
		}
	}
	return out
}

// ResumePosition returns where playback should restart, in seconds.
func ResumePosition(r media.ProgressRecord) float64 {
	if r.Duration > 0 {
		return math.Floor(r.Duration * float64(r.Progress) / 100)
	}
	return r.CurrentTime
}
