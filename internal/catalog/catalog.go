// Package catalog holds the static title collection and the read-only
// queries the browsing surfaces are built from.
package catalog

import (
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"starstream/internal/media"
)

// rowSize is the number of titles in the trending/new/recommended rows.
const rowSize = 5

// Source provides the catalog titles in their canonical order.
// The returned slice must not be modified by callers.
type Source interface {
	Titles() []media.Title
}

// Static is a Source backed by a fixed slice.
type Static []media.Title

func (s Static) Titles() []media.Title { return s }

// Engine answers catalog queries over a Source. All methods are pure with
// respect to the catalog; Trending and SimilarTo draw from a random source.
type Engine struct {
	src Source

	mu  sync.Mutex
	rng *rand.Rand // nil uses the global source
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand makes the random picks reproducible.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// New creates a query engine over src.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{src: src}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// All returns every title in catalog order.
func (e *Engine) All() []media.Title {
	return clone(e.src.Titles())
}

// ByID returns the title with the exact id.
func (e *Engine) ByID(id string) (media.Title, bool) {
	for _, t := range e.src.Titles() {
		if t.ID == id {
			return t, true
		}
	}
	return media.Title{}, false
}

// ByKind returns all titles of the given kind in catalog order.
func (e *Engine) ByKind(kind media.Kind) []media.Title {
	return e.filter(func(t media.Title) bool { return t.Kind == kind })
}

// ByGenre returns all titles tagged with the exact genre string.
func (e *Engine) ByGenre(genre string) []media.Title {
	return e.filter(func(t media.Title) bool { return t.HasGenre(genre) })
}

// Search matches query case-insensitively against the title and original title.
// A blank query returns no results rather than the whole catalog. A
// non-blank query is matched as given, surrounding spaces included.
func (e *Engine) Search(query string) []media.Title {
	if strings.TrimSpace(query) == "" {
		return []media.Title{}
	}

	fold := cases.Fold()
	needle := fold.String(query)
	return e.filter(func(t media.Title) bool {
		if strings.Contains(fold.String(t.Title), needle) {
			return true
		}
		return t.OriginalTitle != "" && strings.Contains(fold.String(t.OriginalTitle), needle)
	})
}

// Genres returns the distinct genre tags in first-seen order. A nil kind
// covers the whole catalog.
func (e *Engine) Genres(kind *media.Kind) []string {
	seen := make(map[string]bool)
	genres := []string{}
	for _, t := range e.src.Titles() {
		if kind != nil && t.Kind != *kind {
			continue
		}
		for _, g := range t.Genre {
			if !seen[g] {
				seen[g] = true
				genres = append(genres, g)
			}
		}
	}
	return genres
}

// Trending returns a random sample of titles. The order differs between
// calls on purpose; there is no popularity data behind it.
func (e *Engine) Trending() []media.Title {
	titles := e.src.Titles()
	perm := e.perm(len(titles))

	n := min(rowSize, len(titles))
	out := make([]media.Title, 0, n)
	for _, i := range perm[:n] {
		out = append(out, titles[i])
	}
	return out
}

// NewReleases returns the newest titles by numeric year, catalog order on ties.
func (e *Engine) NewReleases() []media.Title {
	titles := e.All()
	sort.SliceStable(titles, func(i, j int) bool {
		return titles[i].YearNumber() > titles[j].YearNumber()
	})
	return titles[:min(rowSize, len(titles))]
}

// Recommended returns the fixed seed row: the first titles in catalog order.
func (e *Engine) Recommended() []media.Title {
	titles := e.src.Titles()
	return clone(titles[:min(rowSize, len(titles))])
}

// SimilarTo picks one of the title's genres at random and returns up to
// maxItems other titles sharing it. maxItems <= 0 means the default row size.
func (e *Engine) SimilarTo(title media.Title, maxItems int) []media.Title {
	if maxItems <= 0 {
		maxItems = rowSize
	}
	if len(title.Genre) == 0 {
		return []media.Title{}
	}

	genre := title.Genre[e.intN(len(title.Genre))]
	out := []media.Title{}
	for _, t := range e.src.Titles() {
		if len(out) == maxItems {
			break
		}
		if t.ID != title.ID && t.HasGenre(genre) {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) filter(keep func(media.Title) bool) []media.Title {
	out := []media.Title{}
	for _, t := range e.src.Titles() {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) perm(n int) []int {
	if e.rng == nil {
		return rand.Perm(n)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Perm(n)
}

func (e *Engine) intN(n int) int {
	if e.rng == nil {
		return rand.IntN(n)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.IntN(n)
}

func clone(titles []media.Title) []media.Title {
	out := make([]media.Title, len(titles))
	copy(out, titles)
	return out
}
