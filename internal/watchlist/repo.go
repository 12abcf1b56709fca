package watchlist

import (
	"context"
	"database/sql"
	"fmt"

	"streamhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Upsert inserts or updates one saved title for a user.
func (r *Repo) Upsert(ctx context.Context, item models.WatchlistItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO watchlist (user_id, title_id, status, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, title_id) DO UPDATE SET
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`, item.UserID, item.TitleID, item.Status)
	if err != nil {
		return fmt.Errorf("upsert watchlist item: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID string, titleID int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM watchlist
		WHERE user_id = ? AND title_id = ?
	`, userID, titleID)
	if err != nil {
		return false, fmt.Errorf("delete watchlist item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) List(ctx context.Context, userID string, status string, limit, offset int) ([]models.WatchlistItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		where += ` AND status = ?`
		args = append(args, status)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM watchlist `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count watchlist: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, title_id, status, updated_at
		FROM watchlist `+where+`
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	out := make([]models.WatchlistItem, 0, limit)
	for rows.Next() {
		var item models.WatchlistItem
		if err := rows.Scan(&item.UserID, &item.TitleID, &item.Status, &item.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan watchlist row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}
