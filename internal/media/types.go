// Package media defines shared types for the starstream application.
package media

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind represents whether a title is a movie or a series.
type Kind int

const (
	Movie Kind = iota
	Series
)

func (k Kind) String() string {
	switch k {
	case Movie:
		return "movie"
	case Series:
		return "series"
	default:
		return "unknown"
	}
}

// ParseKind maps user input to a Kind. "tv" and "shows" are accepted for series.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies", "film":
		return Movie, nil
	case "series", "tv", "shows", "show":
		return Series, nil
	default:
		return Movie, fmt.Errorf("unknown kind %q (valid: movie, series)", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Title is a movie or series entry in the catalog.
type Title struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	OriginalTitle string    `json:"originalTitle,omitempty"`
	PosterURL     string    `json:"posterUrl"`
	BackdropURL   string    `json:"backdropUrl"`
	Year          string    `json:"year"`
	Duration      string    `json:"duration"` // Display runtime, e.g. "1h 47m" or "8 Seasons"
	Genre         []string  `json:"genre"`
	Description   string    `json:"description"`
	Rating        float64   `json:"rating"`
	Kind          Kind      `json:"type"`
	Quality       string    `json:"quality"`
	VideoURL      string    `json:"videoUrl,omitempty"`
	DownloadURL   string    `json:"downloadUrl,omitempty"`
	Episodes      []Episode `json:"episodes,omitempty"` // Series only
}

// YearNumber returns the release year as an integer, 0 when it does not parse.
func (t Title) YearNumber() int {
	n, err := strconv.Atoi(strings.TrimSpace(t.Year))
	if err != nil {
		return 0
	}
	return n
}

// HasGenre reports whether the exact tag is present.
func (t Title) HasGenre(genre string) bool {
	for _, g := range t.Genre {
		if g == genre {
			return true
		}
	}
	return false
}

// SortedEpisodes returns the episodes ordered by season, then episode number.
func (t Title) SortedEpisodes() []Episode {
	eps := make([]Episode, len(t.Episodes))
	copy(eps, t.Episodes)
	sort.SliceStable(eps, func(i, j int) bool {
		if eps[i].SeasonNumber != eps[j].SeasonNumber {
			return eps[i].SeasonNumber < eps[j].SeasonNumber
		}
		return eps[i].EpisodeNumber < eps[j].EpisodeNumber
	})
	return eps
}

// FirstEpisode returns the earliest episode of a series.
func (t Title) FirstEpisode() (Episode, bool) {
	if t.Kind != Series || len(t.Episodes) == 0 {
		return Episode{}, false
	}
	return t.SortedEpisodes()[0], true
}

// Episode is a single episode of a series.
type Episode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Duration      string `json:"duration"`
	VideoURL      string `json:"videoUrl,omitempty"`
	DownloadURL   string `json:"downloadUrl,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
}

// Label formats the episode as "S01E02 Title".
func (e Episode) Label() string {
	label := fmt.Sprintf("S%02dE%02d", e.SeasonNumber, e.EpisodeNumber)
	if e.Title != "" {
		label += " " + e.Title
	}
	return label
}

// Identity is the current authenticated demo user.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Account is a registered user as persisted under the users key.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Password     string    `json:"password,omitempty"` // Legacy plaintext, cleared on first login
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity returns the public part of the account.
func (a Account) Identity() Identity {
	return Identity{ID: a.ID, Username: a.Username, Email: a.Email}
}

// ProgressRecord is the saved playback position for one title.
type ProgressRecord struct {
	ID          string    `json:"id"` // <titleId>-<unix ms>
	TitleID     string    `json:"contentId"`
	Progress    int       `json:"progress"`    // Percent, 0-100
	CurrentTime float64   `json:"currentTime"` // Seconds
	Duration    float64   `json:"duration"`    // Seconds, 0 when unknown
	Timestamp   time.Time `json:"timestamp"`
	Title       string    `json:"title,omitempty"`
	PosterURL   string    `json:"posterUrl,omitempty"`
}

// HistoryRecord marks that a title was opened.
type HistoryRecord struct {
	TitleID   string    `json:"movieId"`
	Timestamp time.Time `json:"timestamp"`
}

// FavoriteRecord is the snapshot saved when a title is added to favorites.
type FavoriteRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"posterUrl"`
	Year      string `json:"year"`
}

// Favorite builds the favorites snapshot for a title.
func (t Title) Favorite() FavoriteRecord {
	return FavoriteRecord{ID: t.ID, Title: t.Title, PosterURL: t.PosterURL, Year: t.Year}
}
