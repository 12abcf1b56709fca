package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"streamhub/internal/fetch"
)

// Known public mirrors of the Netflix titles dataset. The first one that
// responds with a well-formed CSV wins.
var defaultMirrors = []string{
	"https://raw.githubusercontent.com/allenkong221/netflix-titles/main/netflix_titles.csv",
	"https://raw.githubusercontent.com/garodisk/Netflix-recommendation-engine/main/netflix_titles.csv",
}

func main() {
	var (
		out     = flag.String("out", "netflix_titles.csv", "output path")
		mirrors = flag.String("mirrors", "", "comma-separated mirror URLs (overrides defaults)")
		timeout = flag.Duration("timeout", 2*time.Minute, "total download timeout")
	)
	flag.Parse()

	urls := defaultMirrors
	if *mirrors != "" {
		urls = strings.Split(*mirrors, ",")
	}

	sources := make([]fetch.Source, 0, len(urls))
	for i, u := range urls {
		sources = append(sources, &fetch.HTTPSource{
			Label: fmt.Sprintf("mirror-%d", i+1),
			URL:   strings.TrimSpace(u),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := fetch.NewFetcher(sources...).Download(ctx, *out); err != nil {
		log.Fatalf("download failed: %v", err)
	}

	log.Printf("dataset saved to %s", *out)
}
