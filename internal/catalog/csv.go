package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"streamhub/pkg/models"
)

// LoadCSV reads the catalog from a header-mapped CSV file. The "title" column
// is required; every other column is optional and missing text values become
// empty strings before anything downstream sees them. Rows with an empty
// title are skipped.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDataUnavailable, path, err)
	}
	defer f.Close()

	titles, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, path, err)
	}
	return NewStore(titles), nil
}

func readCSV(r io.Reader) ([]models.Title, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if _, ok := header["title"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "title")
	}

	var titles []models.Title
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) == 0 {
			continue
		}

		name := valueAt(header, row, "title")
		if name == "" {
			continue
		}

		t := models.Title{
			ID:          len(titles),
			Name:        name,
			Type:        valueAt(header, row, "type"),
			Rating:      valueAt(header, row, "rating"),
			Genres:      valueAt(header, row, "listed_in"),
			Description: valueAt(header, row, "description"),
			Cast:        valueAt(header, row, "cast"),
			Director:    valueAt(header, row, "director"),
			Country:     valueAt(header, row, "country"),
		}
		t.ReleaseYear = parseYear(valueAt(header, row, "release_year"))

		titles = append(titles, t)
	}

	return titles, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseYear coerces the raw release_year value; anything non-numeric is
// treated as missing rather than an error.
func parseYear(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
