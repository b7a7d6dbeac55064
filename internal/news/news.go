// Package news serves the short film and series news feed shown next to the
// catalog.
package news

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// dateLayout is the day format items are dated with.
const dateLayout = "2006-01-02"

// Item is one news article.
type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Date    string `json:"date"` // YYYY-MM-DD
	Image   string `json:"image"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

// Source provides the feed, newest first.
type Source interface {
	Items() []Item
}

// Static is a Source backed by a fixed slice.
type Static []Item

func (s Static) Items() []Item { return s }

// Feed answers news queries over a Source.
type Feed struct {
	src Source
}

// New creates a feed over src.
func New(src Source) *Feed {
	return &Feed{src: src}
}

// Latest returns every item in feed order.
func (f *Feed) Latest() []Item {
	items := f.src.Items()
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Search returns the items whose title or content contains keyword, ignoring
// case. An empty keyword matches every item.
func (f *Feed) Search(keyword string) []Item {
	fold := cases.Fold()
	needle := fold.String(keyword)

	out := []Item{}
	for _, it := range f.src.Items() {
		if strings.Contains(fold.String(it.Title), needle) || strings.Contains(fold.String(it.Content), needle) {
			out = append(out, it)
		}
	}
	return out
}

// ByID returns the item with the exact id.
func (f *Feed) ByID(id string) (Item, bool) {
	for _, it := range f.src.Items() {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// day formats the UTC day that lies daysAgo before now.
func day(now time.Time, daysAgo int) string {
	return now.UTC().AddDate(0, 0, -daysAgo).Format(dateLayout)
}
