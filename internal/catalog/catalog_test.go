package catalog

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starstream/internal/media"
)

func fixture() Static {
	return Static{
		{ID: "a", Title: "Alpha", Year: "2019", Genre: []string{"Drama"}, Kind: media.Movie},
		{ID: "b", Title: "Bravo", OriginalTitle: "Original Bravo", Year: "2023", Genre: []string{"Action", "Drama"}, Kind: media.Movie},
		{ID: "c", Title: "Charlie", Year: "2021", Genre: []string{"Comedy"}, Kind: media.Series},
		{ID: "d", Title: "Delta", Year: "2023", Genre: []string{"Drama", "Comedy"}, Kind: media.Series},
		{ID: "e", Title: "Echo", Year: "unknown", Genre: []string{"Action"}, Kind: media.Movie},
		{ID: "f", Title: "Foxtrot", Year: "2024", Genre: []string{"drama"}, Kind: media.Movie},
		{ID: "g", Title: "Golf", Year: "2001", Genre: nil, Kind: media.Movie},
	}
}

func ids(titles []media.Title) []string {
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = t.ID
	}
	return out
}

func TestByID(t *testing.T) {
	e := New(fixture())

	got, ok := e.ByID("c")
	require.True(t, ok)
	assert.Equal(t, "Charlie", got.Title)

	_, ok = e.ByID("zzz")
	assert.False(t, ok)
}

func TestByKindPreservesOrder(t *testing.T) {
	e := New(fixture())
	assert.Equal(t, []string{"c", "d"}, ids(e.ByKind(media.Series)))
	assert.Equal(t, []string{"a", "b", "e", "f", "g"}, ids(e.ByKind(media.Movie)))
}

func TestByGenreIsCaseSensitive(t *testing.T) {
	e := New(fixture())
	assert.Equal(t, []string{"a", "b", "d"}, ids(e.ByGenre("Drama")))
	assert.Equal(t, []string{"f"}, ids(e.ByGenre("drama")))

	none := e.ByGenre("Horror")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSearch(t *testing.T) {
	e := New(fixture())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace", "   ", []string{}},
		{"title substring", "arl", []string{"c"}},
		{"case insensitive", "ALPHA", []string{"a"}},
		{"original title", "original", []string{"b"}},
		{"inner space kept", "l b", []string{"b"}},
		{"trailing space not trimmed", "alpha ", []string{}},
		{"leading space not trimmed", " bravo", []string{"b"}},
		{"no match", "zulu", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(e.Search(tt.query)))
		})
	}
}

func TestSearchDefaultCatalogByOriginalTitle(t *testing.T) {
	e := New(Default())

	got := e.Search("novocaine")
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)
	assert.NotEqual(t, "Novocaine", got[0].Title, "primary title is in another script")

	assert.Equal(t, []string{"m1"}, ids(e.Search("نوفو")))
}

func TestGenres(t *testing.T) {
	e := New(fixture())
	assert.Equal(t, []string{"Drama", "Action", "Comedy", "drama"}, e.Genres(nil))

	series := media.Series
	assert.Equal(t, []string{"Comedy", "Drama"}, e.Genres(&series))
}

func TestNewReleases(t *testing.T) {
	e := New(fixture())
	// 2024, then the two 2023 titles in catalog order, then 2021, 2019.
	assert.Equal(t, []string{"f", "b", "d", "c", "a"}, ids(e.NewReleases()))

	def := New(Default())
	assert.Equal(t, []string{"m1", "m2", "s1"}, ids(def.NewReleases()))
}

func TestRecommendedIsFirstFive(t *testing.T) {
	e := New(fixture())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(e.Recommended()))

	small := New(Static{{ID: "x"}})
	assert.Equal(t, []string{"x"}, ids(small.Recommended()))
}

func TestTrendingSamplesDistinctTitles(t *testing.T) {
	e := New(fixture(), WithRand(rand.New(rand.NewPCG(1, 2))))

	for range 20 {
		got := e.Trending()
		require.Len(t, got, 5)

		seen := map[string]bool{}
		for _, title := range got {
			assert.False(t, seen[title.ID], "duplicate %s", title.ID)
			seen[title.ID] = true
		}
	}

	assert.Len(t, New(Static{{ID: "x"}, {ID: "y"}}).Trending(), 2)
	assert.Empty(t, New(Static{}).Trending())
}

func TestSimilarToExcludesSelf(t *testing.T) {
	e := New(fixture(), WithRand(rand.New(rand.NewPCG(7, 7))))
	self, _ := e.ByID("b")

	for range 50 {
		got := e.SimilarTo(self, 0)
		assert.NotContains(t, ids(got), "b")
		for _, title := range got {
			shared := title.HasGenre("Action") || title.HasGenre("Drama")
			assert.True(t, shared, "%s shares no genre with b", title.ID)
		}
	}
}

func TestSimilarToLimitAndNoGenres(t *testing.T) {
	e := New(fixture(), WithRand(rand.New(rand.NewPCG(3, 4))))
	alpha, _ := e.ByID("a")

	got := e.SimilarTo(alpha, 1)
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	golf, _ := e.ByID("g")
	assert.Empty(t, e.SimilarTo(golf, 5))
}
