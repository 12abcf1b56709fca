// Package engine is the content-based recommendation core: it composes one
// text document per catalog title, fits a TF-IDF vector space over the full
// corpus once at startup, and answers similarity and filter queries against
// the resulting read-only model.
package engine

import (
	"fmt"
	"log"
	"sort"

	"streamhub/internal/catalog"
	"streamhub/internal/textproc"
	"streamhub/pkg/models"
)

const defaultLimit = 10

// Engine holds the fitted vector space and the catalog it was fitted over.
// Everything inside is immutable after New returns, so a single Engine is
// safe for concurrent readers.
type Engine struct {
	store   *catalog.Store
	norm    *textproc.Normalizer
	vec     *Vectorizer
	vectors []Vector // one per title, catalog order
}

// New composes every title's document and fits the vector space. This is the
// one heavyweight step; it runs once per process.
func New(store *catalog.Store, norm *textproc.Normalizer) (*Engine, error) {
	if store == nil || store.Len() == 0 {
		return nil, fmt.Errorf("build engine: %w: empty catalog", catalog.ErrDataUnavailable)
	}

	titles := store.All()
	docs := make([]string, len(titles))
	for i, t := range titles {
		docs[i] = ComposeDocument(norm, t)
	}

	vec := NewVectorizer()
	vectors := vec.FitTransform(docs)
	log.Printf("[engine] fitted %d titles, vocabulary size %d", len(titles), vec.VocabSize())

	return &Engine{
		store:   store,
		norm:    norm,
		vec:     vec,
		vectors: vectors,
	}, nil
}

// Store exposes the underlying catalog for shells that render raw records.
func (e *Engine) Store() *catalog.Store { return e.store }

// RecommendByTitle finds the reference title by case-insensitive substring
// match (exact name wins, otherwise first match in catalog order) and returns
// the most similar other titles, best first.
func (e *Engine) RecommendByTitle(title string, limit int) ([]models.Recommendation, error) {
	limit = clampLimit(limit)

	idx := e.store.FindTitle(title)
	if idx < 0 {
		return nil, fmt.Errorf("title %q: %w", title, ErrNotFound)
	}

	ref := e.vectors[idx]
	scored := make([]scoredIndex, 0, e.store.Len()-1)
	for i, v := range e.vectors {
		if i == idx {
			continue // never recommend the query title to itself
		}
		scored = append(scored, scoredIndex{index: i, score: ref.Cosine(v)})
	}
	sortByScore(scored)
	return e.toRecommendations(truncate(scored, limit), true), nil
}

// RecommendByDescription vectorizes free text and ranks titles in the
// content-type subset by similarity. The subset is fixed before scoring;
// rows with zero similarity are dropped.
func (e *Engine) RecommendByDescription(text string, ct models.ContentType, limit int) ([]models.Recommendation, error) {
	limit = clampLimit(limit)

	subset := e.store.ByType(ct)
	if len(subset) == 0 {
		return nil, fmt.Errorf("no %s titles: %w", ct, ErrNoMatches)
	}

	query, err := e.vec.Transform(e.norm.Normalize(text))
	if err != nil {
		return nil, err
	}

	scored := make([]scoredIndex, 0, len(subset))
	for _, i := range subset {
		if s := query.Cosine(e.vectors[i]); s > 0 {
			scored = append(scored, scoredIndex{index: i, score: s})
		}
	}
	if len(scored) == 0 {
		return nil, fmt.Errorf("description %q: %w", text, ErrNoMatches)
	}
	sortByScore(scored)
	return e.toRecommendations(truncate(scored, limit), true), nil
}

// RecommendByGenre filters by content type and genre substring, newest
// releases first.
func (e *Engine) RecommendByGenre(genre string, ct models.ContentType, limit int) ([]models.Recommendation, error) {
	limit = clampLimit(limit)

	indices := e.store.ByGenreSubstring(genre, ct)
	if len(indices) == 0 {
		return nil, fmt.Errorf("genre %q (%s): %w", genre, ct, ErrNotFound)
	}
	e.store.SortByYearDesc(indices)
	if len(indices) > limit {
		indices = indices[:limit]
	}
	return e.plainRecommendations(indices), nil
}

// PopularTitles returns the newest releases for a content type.
func (e *Engine) PopularTitles(ct models.ContentType, limit int) ([]models.Recommendation, error) {
	limit = clampLimit(limit)

	indices := e.store.ByType(ct)
	if len(indices) == 0 {
		return nil, fmt.Errorf("no %s titles: %w", ct, ErrNotFound)
	}
	e.store.SortByYearDesc(indices)
	if len(indices) > limit {
		indices = indices[:limit]
	}
	return e.plainRecommendations(indices), nil
}

// Search matches query against title, description, cast, and director and
// returns up to limit rows in catalog order.
func (e *Engine) Search(query string, limit int) ([]models.Recommendation, error) {
	limit = clampLimit(limit)

	indices := e.store.Search(query, limit)
	if len(indices) == 0 {
		return nil, fmt.Errorf("query %q: %w", query, ErrNotFound)
	}
	return e.plainRecommendations(indices), nil
}

// Stats reports catalog aggregates.
func (e *Engine) Stats() models.CatalogStats { return e.store.Stats() }

type scoredIndex struct {
	index int
	score float64
}

// sortByScore orders descending by score; the stable sort keeps catalog
// order among equal scores.
func sortByScore(s []scoredIndex) {
	sort.SliceStable(s, func(a, b int) bool { return s[a].score > s[b].score })
}

func truncate(s []scoredIndex, limit int) []scoredIndex {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

func (e *Engine) toRecommendations(scored []scoredIndex, withScore bool) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(scored))
	for _, s := range scored {
		t, _ := e.store.Get(s.index)
		rec := recommendationFrom(t)
		if withScore {
			rec.Score = s.score
		}
		out = append(out, rec)
	}
	return out
}

func (e *Engine) plainRecommendations(indices []int) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(indices))
	for _, i := range indices {
		t, _ := e.store.Get(i)
		out = append(out, recommendationFrom(t))
	}
	return out
}

func recommendationFrom(t models.Title) models.Recommendation {
	return models.Recommendation{
		Title:       t.Name,
		Type:        t.Type,
		ReleaseYear: t.ReleaseYear,
		Rating:      t.Rating,
		Genres:      t.Genres,
		Description: t.Description,
	}
}
