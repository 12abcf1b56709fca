package models

import "strings"

// ContentType is the closed set of catalog entry kinds. It is parsed once at
// the boundary (HTTP handler / CLI flag) and passed into the engine as a
// value, never as free text.
type ContentType int

const (
	ContentTypeAll ContentType = iota
	ContentTypeMovie
	ContentTypeTVShow
)

// ParseContentType maps user input ("movie", "tv show", "tv", "all", "")
// onto a ContentType. Unknown values are reported so shells can 400 instead
// of silently matching nothing.
func ParseContentType(s string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ContentTypeAll, true
	case "movie", "movies":
		return ContentTypeMovie, true
	case "tv show", "tv shows", "tvshow", "tv", "show", "shows":
		return ContentTypeTVShow, true
	default:
		return ContentTypeAll, false
	}
}

func (t ContentType) String() string {
	switch t {
	case ContentTypeMovie:
		return "Movie"
	case ContentTypeTVShow:
		return "TV Show"
	default:
		return "all"
	}
}

// Title is one catalog entry as stored in memory and in sqlite.
//
// Title is the only required field. The free-text fields (Description, Cast,
// Director, Genres, Country) are normalized to "" when the source is missing
// them, before anything downstream sees the record. ReleaseYear is nil when
// the source value was absent or not numeric.
type Title struct {
	ID          int    `json:"id"`
	Name        string `json:"title"`
	Type        string `json:"type"` // raw source value: "Movie" or "TV Show"
	ReleaseYear *int   `json:"release_year,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Genres      string `json:"genres,omitempty"` // comma-delimited, as in the source
	Description string `json:"description,omitempty"`
	Cast        string `json:"cast,omitempty"`
	Director    string `json:"director,omitempty"`
	Country     string `json:"country,omitempty"`
}

// GenreSet splits the comma-delimited genre string into trimmed entries.
func (t Title) GenreSet() []string {
	if strings.TrimSpace(t.Genres) == "" {
		return nil
	}
	parts := strings.Split(t.Genres, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsType reports whether the record matches a content type filter.
func (t Title) IsType(ct ContentType) bool {
	switch ct {
	case ContentTypeMovie:
		return t.Type == "Movie"
	case ContentTypeTVShow:
		return t.Type == "TV Show"
	default:
		return true
	}
}

// Recommendation is one scored result row returned to the shells. Score is
// the cosine similarity for the vector-based operations and zero for the
// plain filter/sort operations.
type Recommendation struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Rating      string  `json:"rating,omitempty"`
	Genres      string  `json:"genres,omitempty"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

// CatalogStats summarizes the loaded catalog.
type CatalogStats struct {
	Total      int    `json:"total"`
	Movies     int    `json:"movies"`
	TVShows    int    `json:"tv_shows"`
	GenreCount int    `json:"genre_count"`
	YearMin    *int   `json:"year_min,omitempty"`
	YearMax    *int   `json:"year_max,omitempty"`
	YearRange  string `json:"year_range,omitempty"`
}
