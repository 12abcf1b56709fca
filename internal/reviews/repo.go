package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"streamhub/pkg/models"
)

const reviewColumns = `id, user_id, title_id, rating, text, timestamp`

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, userID string, titleID int, rating int, text string) (*models.Review, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO reviews (user_id, title_id, rating, text) VALUES (?, ?, ?, ?)`,
		userID, titleID, rating, text)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("review id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns nil without error when the review does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)

	review, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func (r *Repo) ListByTitle(ctx context.Context, titleID int, limit, offset int) ([]models.Review, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews
		 WHERE title_id = ?
		 ORDER BY timestamp DESC
		 LIMIT ? OFFSET ?`,
		titleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review rows: %w", err)
	}
	return out, nil
}

// Delete removes a review only when it belongs to userID.
func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*models.Review, error) {
	var (
		review models.Review
		text   sql.NullString
		ts     time.Time
	)
	if err := row.Scan(&review.ID, &review.UserID, &review.TitleID, &review.Rating, &text, &ts); err != nil {
		return nil, err
	}
	review.Text = text.String
	review.Timestamp = ts
	return &review, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
