package engine

import (
	"strings"

	"streamhub/internal/textproc"
	"streamhub/pkg/models"
)

// ComposeDocument builds the combined text document for one title: each of
// the four metadata fields normalized independently, then joined with single
// spaces in a fixed order (genres, description, cast, director). TF-IDF
// weighting is order-independent within a document, so the order only matters
// for reproducibility.
func ComposeDocument(norm *textproc.Normalizer, t models.Title) string {
	parts := []string{
		norm.Normalize(t.Genres),
		norm.Normalize(t.Description),
		norm.Normalize(t.Cast),
		norm.Normalize(t.Director),
	}
	return strings.Join(parts, " ")
}
