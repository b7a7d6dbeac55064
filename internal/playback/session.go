// Package playback drives one open title: play/pause state, the simulated
// progress ticker, position reports from a real player and resumption.
package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"starstream/internal/media"
	"starstream/internal/notify"
	"starstream/internal/progress"
)

// DefaultInterval is the time between simulated progress ticks.
const DefaultInterval = 3 * time.Second

// MaxSimulated is where the simulated ticker stops. Reaching 100 needs a
// real position report.
const MaxSimulated = 99

// IdentitySource yields the acting user, or nil when nobody is signed in.
type IdentitySource interface {
	Current() *media.Identity
}

// State is a snapshot of a session.
type State struct {
	TitleID     string
	Playing     bool
	Percent     int
	CurrentTime float64
	Duration    float64
	Ticking     bool
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler replaces the cron-backed scheduler.
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) { sess.sched = s }
}

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(sess *Session) {
		if d > 0 {
			sess.interval = d
		}
	}
}

// WithNotifier sets where play, pause and resume messages go.
func WithNotifier(n notify.Notifier) Option {
	return func(sess *Session) { sess.notifier = n }
}

// WithDuration sets the runtime in seconds when the title's display runtime
// cannot be parsed, e.g. for a series episode.
func WithDuration(seconds float64) Option {
	return func(sess *Session) { sess.duration = seconds }
}

// WithDebug sets a debug log hook.
func WithDebug(f func(format string, args ...any)) Option {
	return func(sess *Session) { sess.debugf = f }
}

// Session is the playback state of one open title.
type Session struct {
	ctx      context.Context
	store    *progress.Store
	ids      IdentitySource
	title    media.Title
	sched    Scheduler
	interval time.Duration
	notifier notify.Notifier
	debugf   func(format string, args ...any)

	mu          sync.Mutex
	playing     bool
	closed      bool
	percent     int
	currentTime float64
	duration    float64
	handle      Handle
	gen         uint64
}

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("playback session closed")

// Open starts a session for title and loads any saved progress.
func Open(ctx context.Context, store *progress.Store, ids IdentitySource, title media.Title, opts ...Option) (*Session, error) {
	s := &Session{
		ctx:      context.WithoutCancel(ctx),
		store:    store,
		ids:      ids,
		title:    title,
		sched:    CronScheduler{},
		interval: DefaultInterval,
		notifier: notify.Discard,
		debugf:   func(string, ...any) {},
		duration: media.ParseRuntime(title.Duration),
	}
	for _, o := range opts {
		o(s)
	}

	rec, err := store.Get(ctx, ids.Current(), title.ID)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", title.ID, err)
	}
	if rec != nil {
		s.percent = rec.Progress
		s.currentTime = rec.CurrentTime
		if rec.Duration > 0 {
			s.duration = rec.Duration
		}
	}
	return s, nil
}

// Title returns the open title.
func (s *Session) Title() media.Title {
	return s.title
}

// Play starts playback. The ticker only runs for a signed-in user.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.playing {
		return nil
	}
	s.playing = true
	s.notifier.Notify(notify.Notification{
		Title:       "Playing",
		Description: s.title.Title,
		Severity:    notify.Info,
	})
	return s.startLocked()
}

// Pause stops playback and the ticker.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return
	}
	s.playing = false
	s.stopLocked()
	s.notifier.Notify(notify.Notification{
		Title:       "Paused",
		Description: s.title.Title,
		Severity:    notify.Info,
	})
}

// Toggle flips between playing and paused.
func (s *Session) Toggle() error {
	s.mu.Lock()
	playing := s.playing
	s.mu.Unlock()

	if playing {
		s.Pause()
		return nil
	}
	return s.Play()
}

// Close stops the ticker. The session cannot be played again.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playing = false
	s.closed = true
	s.stopLocked()
}

// Report records a position from a real player. Progress is only written
// when the rounded percentage changes.
func (s *Session) Report(ctx context.Context, currentTime, duration float64) error {
	if duration <= 0 || currentTime < 0 {
		return nil
	}
	percent := int(math.Round(currentTime / duration * 100))
	percent = min(max(percent, 0), 100)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentTime = currentTime
	s.duration = duration
	if percent == s.percent {
		return nil
	}
	s.percent = percent
	return s.persistLocked(ctx)
}

// Resume returns the position to restart from when the title was started
// but not nearly finished.
func (s *Session) Resume() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !progress.Resumable(s.percent) {
		return 0, false
	}
	pos := progress.ResumePosition(media.ProgressRecord{
		Progress:    s.percent,
		CurrentTime: s.currentTime,
		Duration:    s.duration,
	})
	s.notifier.Notify(notify.Notification{
		Title:       "Resuming playback",
		Description: fmt.Sprintf("Continuing %s from %s (%d%%)", s.title.Title, media.FormatClock(pos), s.percent),
		Severity:    notify.Info,
	})
	return pos, true
}

// Clear removes saved progress for titleID, or for the open title when
// titleID is empty. The in-memory position resets when it is the open title.
func (s *Session) Clear(ctx context.Context, titleID string) error {
	if titleID == "" {
		titleID = s.title.ID
	}
	if err := s.store.Clear(ctx, s.ids.Current(), titleID); err != nil {
		return err
	}
	if titleID != s.title.ID {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.percent = 0
	s.currentTime = 0
	if s.playing && s.handle == nil {
		return s.startLocked()
	}
	return nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		TitleID:     s.title.ID,
		Playing:     s.playing,
		Percent:     s.percent,
		CurrentTime: s.currentTime,
		Duration:    s.duration,
		Ticking:     s.handle != nil,
	}
}

func (s *Session) startLocked() error {
	if s.handle != nil || s.ids.Current() == nil || s.percent >= MaxSimulated {
		return nil
	}
	s.gen++
	gen := s.gen
	h, err := s.sched.Every(s.interval, func() { s.tick(gen) })
	if err != nil {
		return fmt.Errorf("starting progress ticker: %w", err)
	}
	s.handle = h
	return nil
}

func (s *Session) stopLocked() {
	s.gen++
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || !s.playing {
		return
	}
	if s.ids.Current() == nil {
		s.stopLocked()
		return
	}

	s.percent = min(s.percent+1, MaxSimulated)
	s.currentTime += s.interval.Seconds()
	if err := s.persistLocked(s.ctx); err != nil {
		s.debugf("progress tick for %s: %v", s.title.ID, err)
	}
	if s.percent >= MaxSimulated {
		s.stopLocked()
	}
}

func (s *Session) persistLocked(ctx context.Context) error {
	ct := s.currentTime
	return s.store.Update(ctx, s.ids.Current(), progress.Update{
		TitleID:     s.title.ID,
		Percent:     s.percent,
		CurrentTime: &ct,
		Duration:    s.duration,
		Title:       s.title.Title,
		PosterURL:   s.title.PosterURL,
	})
}
