package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"streamhub/pkg/models"
)

// ErrDataUnavailable is returned when the catalog source is missing or
// malformed at load time. It halts engine construction; nothing downstream
// runs against an empty store.
var ErrDataUnavailable = errors.New("catalog data unavailable")

// Store holds every catalog title in memory, in source order. It is built
// once at startup and read-only afterward, so it is safe to share across
// concurrent request handlers without locking.
type Store struct {
	titles []models.Title
}

func NewStore(titles []models.Title) *Store {
	return &Store{titles: titles}
}

func (s *Store) Len() int { return len(s.titles) }

// All returns the backing slice. Callers must treat it as read-only.
func (s *Store) All() []models.Title { return s.titles }

func (s *Store) Get(id int) (models.Title, bool) {
	if id < 0 || id >= len(s.titles) {
		return models.Title{}, false
	}
	return s.titles[id], true
}

// ByType returns the indices of titles matching a content type filter, in
// catalog order.
func (s *Store) ByType(ct models.ContentType) []int {
	out := make([]int, 0, len(s.titles))
	for i, t := range s.titles {
		if t.IsType(ct) {
			out = append(out, i)
		}
	}
	return out
}

// ByGenreSubstring keeps titles whose raw comma-delimited genre string
// contains genre, case-insensitive. Substring containment (not exact token
// membership) mirrors the source dataset's loose genre labels.
// An empty or whitespace-only genre matches nothing.
func (s *Store) ByGenreSubstring(genre string, ct models.ContentType) []int {
	needle := strings.ToLower(strings.TrimSpace(genre))
	if needle == "" {
		return nil
	}
	out := make([]int, 0, 32)
	for i, t := range s.titles {
		if !t.IsType(ct) {
			continue
		}
		if strings.Contains(strings.ToLower(t.Genres), needle) {
			out = append(out, i)
		}
	}
	return out
}

// FindTitle returns the index of the first title whose name contains query,
// case-insensitive. An exact (case-insensitive) name match wins over an
// earlier substring match. Returns -1 when nothing matches.
func (s *Store) FindTitle(query string) int {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return -1
	}

	first := -1
	for i, t := range s.titles {
		name := strings.ToLower(t.Name)
		if name == needle {
			return i
		}
		if first < 0 && strings.Contains(name, needle) {
			first = i
		}
	}
	return first
}

// Search matches query as a case-insensitive substring of title, description,
// cast, or director and returns up to limit indices in catalog order.
func (s *Store) Search(query string, limit int) []int {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	out := make([]int, 0, limit)
	for i, t := range s.titles {
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) ||
			strings.Contains(strings.ToLower(t.Cast), needle) ||
			strings.Contains(strings.ToLower(t.Director), needle) {
			out = append(out, i)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// SortByYearDesc orders indices most-recent-first. Titles without a release
// year sort last. The sort is stable, so catalog order breaks ties.
func (s *Store) SortByYearDesc(indices []int) {
	sort.SliceStable(indices, func(a, b int) bool {
		ya := s.titles[indices[a]].ReleaseYear
		yb := s.titles[indices[b]].ReleaseYear
		switch {
		case ya == nil:
			return false
		case yb == nil:
			return true
		default:
			return *ya > *yb
		}
	})
}

// Stats aggregates catalog counts. Distinct genres are counted after
// splitting the comma-delimited strings and trimming whitespace.
func (s *Store) Stats() models.CatalogStats {
	stats := models.CatalogStats{Total: len(s.titles)}

	genres := make(map[string]struct{})
	for _, t := range s.titles {
		switch t.Type {
		case "Movie":
			stats.Movies++
		case "TV Show":
			stats.TVShows++
		}
		for _, g := range t.GenreSet() {
			genres[g] = struct{}{}
		}
		if y := t.ReleaseYear; y != nil {
			if stats.YearMin == nil || *y < *stats.YearMin {
				v := *y
				stats.YearMin = &v
			}
			if stats.YearMax == nil || *y > *stats.YearMax {
				v := *y
				stats.YearMax = &v
			}
		}
	}
	stats.GenreCount = len(genres)
	if stats.YearMin != nil && stats.YearMax != nil {
		stats.YearRange = fmt.Sprintf("%d - %d", *stats.YearMin, *stats.YearMax)
	}
	return stats
}
