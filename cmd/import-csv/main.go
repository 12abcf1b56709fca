package main

import (
	"context"
	"flag"
	"log"
	"time"

	"streamhub/internal/catalog"
	"streamhub/pkg/database"
)

func main() {
	var (
		in = flag.String("in", "netflix_titles.csv", "input CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, err := catalog.LoadCSV(*in)
	if err != nil {
		log.Fatalf("load csv failed: %v", err)
	}

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	n, err := catalog.SaveDB(ctx, db, store)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("imported %d titles from %s", n, *in)
}
