package watchlist

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhub/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	// a second pooled connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)

	schema, err := os.ReadFile("../../docs/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ('u-1', 'alice', 'a@example.com', 'h')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO titles (id, title, type) VALUES (1, 'Inception', 'Movie'), (2, 'Friends', 'TV Show')`)
	require.NoError(t, err)
	return db
}

func TestUpsertAndList(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{UserID: "u-1", TitleID: 1, Status: "want_to_watch"}))
	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{UserID: "u-1", TitleID: 2, Status: "watching"}))

	items, total, err := repo.List(ctx, "u-1", "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)
}

func TestUpsertOverwritesStatus(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{UserID: "u-1", TitleID: 1, Status: "want_to_watch"}))
	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{UserID: "u-1", TitleID: 1, Status: "watched"}))

	items, total, err := repo.List(ctx, "u-1", "", 20, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "watched", items[0].Status)
}

func TestListStatusFilter(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{UserID: "u-1", TitleID: 1, Status: "watched"}))
	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{UserID: "u-1", TitleID: 2, Status: "watching"}))

	items, total, err := repo.List(ctx, "u-1", "watching", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].TitleID)
}

func TestDelete(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{UserID: "u-1", TitleID: 1, Status: "watched"}))

	removed, err := repo.Delete(ctx, "u-1", 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "u-1", 1)
	require.NoError(t, err)
	assert.False(t, removed)

	_, total, err := repo.List(ctx, "u-1", "", 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListOtherUserIsEmpty(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{UserID: "u-1", TitleID: 1, Status: "watched"}))

	items, total, err := repo.List(ctx, "someone-else", "", 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
