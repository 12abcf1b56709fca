package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub/internal/catalog"
	"streamhub/internal/textproc"
	"streamhub/pkg/models"
)

func year(y int) *int { return &y }

func testTitles() []models.Title {
	return []models.Title{
		{
			ID: 0, Name: "Inception", Type: "Movie", ReleaseYear: year(2010),
			Rating:      "PG-13",
			Genres:      "Sci-Fi & Fantasy, Thrillers",
			Description: "A thief who enters dreams must plant an idea deep inside a sleeping target's mind.",
			Cast:        "Leonardo DiCaprio, Elliot Page",
			Director:    "Christopher Nolan",
		},
		{
			ID: 1, Name: "The Matrix", Type: "Movie", ReleaseYear: year(1999),
			Rating:      "R",
			Genres:      "Sci-Fi & Fantasy, Action & Adventure",
			Description: "A hacker discovers reality is a simulation and joins a rebellion against the machines.",
			Cast:        "Keanu Reeves, Carrie-Anne Moss",
			Director:    "Lana Wachowski",
		},
		{
			ID: 2, Name: "Stranger Things", Type: "TV Show", ReleaseYear: year(2016),
			Rating:      "TV-14",
			Genres:      "Sci-Fi & Fantasy, TV Horror",
			Description: "Kids in a small town uncover supernatural forces and secret government experiments.",
			Cast:        "Millie Bobby Brown, Finn Wolfhard",
		},
		{
			ID: 3, Name: "Friends", Type: "TV Show", ReleaseYear: year(1994),
			Rating:      "TV-14",
			Genres:      "TV Comedies",
			Description: "Six close friends navigate careers, romance, and life in New York City.",
			Cast:        "Jennifer Aniston, Courteney Cox",
		},
		{
			ID: 4, Name: "The Notebook", Type: "Movie", ReleaseYear: year(2004),
			Rating:      "PG-13",
			Genres:      "Romantic Movies, Dramas",
			Description: "A summer romance between two young lovers endures across decades of separation.",
			Cast:        "Ryan Gosling, Rachel McAdams",
			Director:    "Nick Cassavetes",
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(catalog.NewStore(testTitles()), textproc.New())
	require.NoError(t, err)
	return eng
}

func TestNewEmptyCatalog(t *testing.T) {
	_, err := New(catalog.NewStore(nil), textproc.New())
	assert.ErrorIs(t, err, catalog.ErrDataUnavailable)

	_, err = New(nil, textproc.New())
	assert.ErrorIs(t, err, catalog.ErrDataUnavailable)
}

func TestRecommendByTitle(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.RecommendByTitle("inception", 3)
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 3)

	for _, r := range recs {
		assert.NotEqual(t, "Inception", r.Title, "query title must never recommend itself")
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score, "scores must be descending")
	}
}

func TestRecommendByTitleSharedGenresRankFirst(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.RecommendByTitle("The Matrix", 4)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	// the two other sci-fi titles share genre terms with the query and must
	// outrank the sitcom and the romance
	assert.Contains(t, []string{"Inception", "Stranger Things"}, recs[0].Title)
}

func TestRecommendByTitleNotFound(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.RecommendByTitle("No Such Show", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendByTitleDeterministic(t *testing.T) {
	a := newTestEngine(t)
	b := newTestEngine(t)

	ra, err := a.RecommendByTitle("Inception", 4)
	require.NoError(t, err)
	rb, err := b.RecommendByTitle("Inception", 4)
	require.NoError(t, err)

	require.Equal(t, len(ra), len(rb))
	for i := range ra {
		assert.Equal(t, ra[i].Title, rb[i].Title)
		assert.InDelta(t, ra[i].Score, rb[i].Score, 1e-9)
	}
}

func TestRecommendByDescription(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.RecommendByDescription("a thief stealing secrets inside dreams", models.ContentTypeAll, 3)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	assert.Equal(t, "Inception", recs[0].Title)
	for _, r := range recs {
		assert.Greater(t, r.Score, 0.0, "zero-similarity rows are dropped")
	}
}

func TestRecommendByDescriptionTypeFilter(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.RecommendByDescription("supernatural small town secrets", models.ContentTypeTVShow, 5)
	require.NoError(t, err)

	for _, r := range recs {
		assert.Equal(t, "TV Show", r.Type)
	}
}

func TestRecommendByDescriptionNoMatches(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.RecommendByDescription("xylophone zeppelin quasar", models.ContentTypeAll, 5)
	assert.ErrorIs(t, err, ErrNoMatches)
}

func TestRecommendByGenre(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.RecommendByGenre("sci-fi", models.ContentTypeAll, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// newest release first
	assert.Equal(t, "Stranger Things", recs[0].Title)
	assert.Equal(t, "Inception", recs[1].Title)
	assert.Equal(t, "The Matrix", recs[2].Title)
	for _, r := range recs {
		assert.Zero(t, r.Score, "filter results carry no similarity score")
	}
}

func TestRecommendByGenreTypeFilter(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.RecommendByGenre("sci-fi", models.ContentTypeMovie, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Inception", recs[0].Title)
	assert.Equal(t, "The Matrix", recs[1].Title)
}

func TestRecommendByGenreNotFound(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.RecommendByGenre("westerns", models.ContentTypeAll, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendByGenreEmptyQuery(t *testing.T) {
	eng := newTestEngine(t)

	// an empty genre must not match the whole catalog
	_, err := eng.RecommendByGenre("", models.ContentTypeAll, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = eng.RecommendByGenre("   ", models.ContentTypeMovie, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPopularTitles(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.PopularTitles(models.ContentTypeMovie, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Inception", recs[0].Title)
	assert.Equal(t, "The Notebook", recs[1].Title)
}

func TestSearch(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.Search("friends", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Friends", recs[0].Title)

	recs, err = eng.Search("keanu", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "The Matrix", recs[0].Title)

	_, err = eng.Search("zzzz", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	eng := newTestEngine(t)

	stats := eng.Stats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Movies)
	assert.Equal(t, 2, stats.TVShows)
	assert.Equal(t, 7, stats.GenreCount)
	assert.Equal(t, "1994 - 2016", stats.YearRange)
}

func TestLimitDefaults(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.RecommendByTitle("Inception", 0)
	require.NoError(t, err)
	// the default kicks in; with a 5-title catalog that means everything else
	assert.Len(t, recs, 4)
}

func TestComposeDocument(t *testing.T) {
	norm := textproc.New()
	doc := ComposeDocument(norm, models.Title{
		Genres:      "Thrillers",
		Description: "A detective hunts a killer.",
		Cast:        "Jane Doe",
		Director:    "John Smith",
	})

	assert.Contains(t, doc, "thriller")
	assert.Contains(t, doc, "detect")
	assert.Contains(t, doc, "jane")
	assert.Contains(t, doc, "smith")
}
