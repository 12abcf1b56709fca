package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"streamhub/pkg/models"
)

// SaveDB upserts every title in the store into the titles table, keyed by the
// dense in-memory id. The watchlist and reviews tables reference titles(id),
// so any store the server answers queries from must be persisted through here
// before user writes are accepted.
func SaveDB(ctx context.Context, db *sql.DB, store *Store) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save titles: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO titles (id, title, type, release_year, rating, genres, description, cast_names, director, country)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  title = excluded.title,
		  type = excluded.type,
		  release_year = excluded.release_year,
		  rating = excluded.rating,
		  genres = excluded.genres,
		  description = excluded.description,
		  cast_names = excluded.cast_names,
		  director = excluded.director,
		  country = excluded.country
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare save titles: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, t := range store.All() {
		var year sql.NullInt64
		if t.ReleaseYear != nil {
			year = sql.NullInt64{Int64: int64(*t.ReleaseYear), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID,
			t.Name,
			nullString(t.Type),
			year,
			nullString(t.Rating),
			nullString(t.Genres),
			nullString(t.Description),
			nullString(t.Cast),
			nullString(t.Director),
			nullString(t.Country),
		); err != nil {
			return count, fmt.Errorf("save title %d: %w", t.ID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("commit save titles: %w", err)
	}
	return count, nil
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}

// LoadDB reads every row of the titles table (populated by cmd/import-csv)
// into an in-memory Store, in id order so catalog order is stable across
// restarts.
func LoadDB(ctx context.Context, db *sql.DB) (*Store, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, type, release_year, rating, genres, description, cast_names, director, country
		FROM titles
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query titles: %v", ErrDataUnavailable, err)
	}
	defer rows.Close()

	var titles []models.Title
	for rows.Next() {
		var (
			t           models.Title
			typ         sql.NullString
			year        sql.NullInt64
			rating      sql.NullString
			genres      sql.NullString
			description sql.NullString
			castNames   sql.NullString
			director    sql.NullString
			country     sql.NullString
		)

		if err := rows.Scan(
			&t.ID, &t.Name, &typ, &year, &rating, &genres, &description, &castNames, &director, &country,
		); err != nil {
			return nil, fmt.Errorf("%w: scan title: %v", ErrDataUnavailable, err)
		}

		t.Type = typ.String
		t.Rating = rating.String
		t.Genres = genres.String
		t.Description = description.String
		t.Cast = castNames.String
		t.Director = director.String
		t.Country = country.String
		if year.Valid {
			y := int(year.Int64)
			t.ReleaseYear = &y
		}

		// in-memory id is the row position, not the sqlite rowid, so every
		// loader produces the same dense index space
		t.ID = len(titles)
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrDataUnavailable, err)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: titles table is empty (run import-csv first)", ErrDataUnavailable)
	}

	return NewStore(titles), nil
}
