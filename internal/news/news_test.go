package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() Static {
	return Static{
		{ID: "a", Title: "Netflix Announces A Series", Content: "A new drama about a journalist."},
		{ID: "b", Title: "Box office record", Content: "Novocaine tops the charts."},
		{ID: "c", Title: "Festival lineup", Content: "The Cairo festival picks a NOVOCAINE rival."},
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestLatestKeepsOrderAndCopies(t *testing.T) {
	src := fixture()
	f := New(src)

	got := f.Latest()
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))

	got[0].Title = "changed"
	assert.Equal(t, "Netflix Announces A Series", src[0].Title)
}

func TestSearch(t *testing.T) {
	f := New(fixture())

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{"title", "netflix", []string{"a"}},
		{"content folded", "novocaine", []string{"b", "c"}},
		{"upper keyword", "FESTIVAL", []string{"c"}},
		{"empty matches all", "", []string{"a", "b", "c"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(f.Search(tt.keyword)))
		})
	}
}

func TestByID(t *testing.T) {
	f := New(fixture())

	got, ok := f.ByID("b")
	require.True(t, ok)
	assert.Equal(t, "Box office record", got.Title)

	_, ok = f.ByID("zzz")
	assert.False(t, ok)
}

func TestDemoDatesFollowClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	f := New(Demo{Now: func() time.Time { return now }})

	items := f.Latest()
	require.Len(t, items, 5)
	assert.Equal(t, []string{"n1", "n2", "n3", "n4", "n5"}, ids(items))
	assert.Equal(t, "2026-03-01", items[0].Date)
	assert.Equal(t, "2026-02-28", items[1].Date)
	assert.Equal(t, "2026-02-28", items[2].Date)
	assert.Equal(t, "2026-02-27", items[4].Date)
	assert.Equal(t, "نتفليكس", items[0].Source)
}

func TestDemoSearchArabic(t *testing.T) {
	f := New(Demo{Now: time.Now})
	assert.Equal(t, []string{"n2"}, ids(f.Search("نوفوكين")))

	got, ok := f.ByID("n4")
	require.True(t, ok)
	assert.Contains(t, got.Title, "فرسان التو")
}
