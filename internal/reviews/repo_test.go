package reviews

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
	_, err = db.Exec(`INSERT INTO titles (id, title, type) VALUES (1, 'Inception', 'Movie')`)
	require.NoError(t, err)
	return db
}

func TestCreateAndGet(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "u-1", 1, 9, "mind-bending")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "u-1", created.UserID)
	assert.Equal(t, 1, created.TitleID)
	assert.Equal(t, 9, created.Rating)
	assert.Equal(t, "mind-bending", created.Text)
	assert.False(t, created.Timestamp.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetMissing(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	got, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateRatingConstraint(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	_, err := repo.Create(context.Background(), "u-1", 1, 11, "too high")
	assert.Error(t, err)
}

func TestListByTitle(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := repo.Create(ctx, "u-1", 1, i+5, "")
		require.NoError(t, err)
	}

	reviews, err := repo.ListByTitle(ctx, 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)

	page, err := repo.ListByTitle(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	empty, err := repo.ListByTitle(ctx, 42, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteOwnership(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "u-1", 1, 7, "")
	require.NoError(t, err)

	// other users cannot delete someone else's review
	removed, err := repo.Delete(ctx, created.ID, "u-2")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.Delete(ctx, created.ID, "u-1")
	require.NoError(t, err)
	assert.True(t, removed)
}
