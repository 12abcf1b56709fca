package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"streamhub/internal/catalog"
	"streamhub/pkg/database"
	"streamhub/pkg/models"
)

func main() {
	var (
		out     = flag.String("out", "data/titles.csv", "output CSV path")
		ctFlag  = flag.String("type", "all", "content type filter: movie, tv show, or all")
		genre   = flag.String("genre", "", "optional genre substring filter")
		timeout = flag.Duration("timeout", 30*time.Second, "export timeout")
	)
	flag.Parse()

	ct, ok := models.ParseContentType(*ctFlag)
	if !ok {
		log.Fatalf("invalid -type %q (want movie, tv show, or all)", *ctFlag)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	store, err := catalog.LoadDB(ctx, db)
	if err != nil {
		log.Fatalf("load catalog failed: %v", err)
	}

	var indices []int
	if *genre != "" {
		indices = store.ByGenreSubstring(*genre, ct)
	} else {
		indices = store.ByType(ct)
	}

	if err := exportTitles(store, indices, *out); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	log.Printf("exported %d titles to %s", len(indices), *out)
}

func exportTitles(store *catalog.Store, indices []int, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"title", "type", "release_year", "rating", "listed_in", "description", "cast", "director", "country"}); err != nil {
		return err
	}

	for _, i := range indices {
		t, ok := store.Get(i)
		if !ok {
			continue
		}

		year := ""
		if t.ReleaseYear != nil {
			year = strconv.Itoa(*t.ReleaseYear)
		}

		if err := w.Write([]string{
			t.Name, t.Type, year, t.Rating, t.Genres, t.Description, t.Cast, t.Director, t.Country,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
