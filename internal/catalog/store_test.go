package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub/pkg/models"
)

func year(y int) *int { return &y }

func testStore() *Store {
	return NewStore([]models.Title{
		{ID: 0, Name: "Friends Reunion", Type: "TV Show", ReleaseYear: year(2021), Genres: "TV Comedies"},
		{ID: 1, Name: "Friends", Type: "TV Show", ReleaseYear: year(1994), Genres: "TV Comedies"},
		{ID: 2, Name: "Heat", Type: "Movie", ReleaseYear: year(1995), Genres: "Crime Movies, Thrillers",
			Cast: "Al Pacino, Robert De Niro", Director: "Michael Mann",
			Description: "A detective and a master thief circle each other across Los Angeles."},
		{ID: 3, Name: "Old Reel", Type: "Movie", Genres: "Documentaries"},
	})
}

func TestStoreGet(t *testing.T) {
	s := testStore()

	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Heat", got.Name)

	_, ok = s.Get(-1)
	assert.False(t, ok)
	_, ok = s.Get(s.Len())
	assert.False(t, ok)
}

func TestByType(t *testing.T) {
	s := testStore()

	assert.Equal(t, []int{0, 1, 2, 3}, s.ByType(models.ContentTypeAll))
	assert.Equal(t, []int{2, 3}, s.ByType(models.ContentTypeMovie))
	assert.Equal(t, []int{0, 1}, s.ByType(models.ContentTypeTVShow))
}

func TestByGenreSubstring(t *testing.T) {
	s := testStore()

	assert.Equal(t, []int{0, 1}, s.ByGenreSubstring("comed", models.ContentTypeAll))
	assert.Equal(t, []int{2}, s.ByGenreSubstring("THRILLER", models.ContentTypeAll))
	assert.Empty(t, s.ByGenreSubstring("thriller", models.ContentTypeTVShow))
	assert.Empty(t, s.ByGenreSubstring("", models.ContentTypeAll))
	assert.Empty(t, s.ByGenreSubstring("   ", models.ContentTypeAll))
}

func TestFindTitleExactBeatsEarlierSubstring(t *testing.T) {
	s := testStore()

	// "Friends Reunion" appears first in catalog order, but the exact
	// name match wins
	assert.Equal(t, 1, s.FindTitle("friends"))
	assert.Equal(t, 0, s.FindTitle("reunion"))
	assert.Equal(t, -1, s.FindTitle("seinfeld"))
	assert.Equal(t, -1, s.FindTitle("   "))
}

func TestSearchFields(t *testing.T) {
	s := testStore()

	assert.Equal(t, []int{2}, s.Search("pacino", 0))
	assert.Equal(t, []int{2}, s.Search("michael mann", 0))
	assert.Equal(t, []int{2}, s.Search("los angeles", 0))
	assert.Equal(t, []int{0, 1}, s.Search("friends", 0))
	assert.Equal(t, []int{0}, s.Search("friends", 1))
	assert.Empty(t, s.Search("", 5))
}

func TestSortByYearDesc(t *testing.T) {
	s := testStore()

	indices := []int{0, 1, 2, 3}
	s.SortByYearDesc(indices)

	// missing year sorts last
	assert.Equal(t, []int{0, 2, 1, 3}, indices)
}

func TestStats(t *testing.T) {
	s := testStore()

	stats := s.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Movies)
	assert.Equal(t, 2, stats.TVShows)
	assert.GreaterOrEqual(t, stats.Total, stats.Movies+stats.TVShows)
	assert.Equal(t, 4, stats.GenreCount)
	require.NotNil(t, stats.YearMin)
	require.NotNil(t, stats.YearMax)
	assert.Equal(t, 1994, *stats.YearMin)
	assert.Equal(t, 2021, *stats.YearMax)
	assert.Equal(t, "1994 - 2021", stats.YearRange)
}

func TestStatsEmpty(t *testing.T) {
	stats := NewStore(nil).Stats()
	assert.Zero(t, stats.Total)
	assert.Nil(t, stats.YearMin)
	assert.Empty(t, stats.YearRange)
}
