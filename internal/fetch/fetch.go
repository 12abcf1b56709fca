// Package fetch downloads the catalog CSV from remote mirrors. It is an
// external collaborator of the recommendation core: it only produces the
// file that catalog.LoadCSV or cmd/import-csv consume.
package fetch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source is implemented by each place the dataset can be fetched from.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPSource downloads the raw CSV from a URL.
type HTTPSource struct {
	Label  string
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Name() string { return s.Label }

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", s.URL, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Fetcher tries each source in order until one yields a CSV whose header
// contains the required title column.
type Fetcher struct {
	Sources []Source
}

func NewFetcher(sources ...Source) *Fetcher {
	return &Fetcher{Sources: sources}
}

// Download fetches the dataset and writes it to path.
func (f *Fetcher) Download(ctx context.Context, path string) error {
	var lastErr error
	for _, src := range f.Sources {
		log.Printf("[fetch] trying source %s", src.Name())

		data, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("[fetch] source %s failed: %v", src.Name(), err)
			lastErr = err
			continue
		}

		if err := validateHeader(data); err != nil {
			log.Printf("[fetch] source %s returned bad data: %v", src.Name(), err)
			lastErr = err
			continue
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Printf("[fetch] saved %d bytes to %s (source %s)", len(data), path, src.Name())
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("no sources configured")
	}
	return fmt.Errorf("all sources failed: %w", lastErr)
}

// validateHeader checks the first CSV row for the required title column.
func validateHeader(data []byte) error {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1

	row, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	for _, name := range row {
		if strings.TrimSpace(strings.ToLower(name)) == "title" {
			return nil
		}
	}
	return errors.New("header has no title column")
}
