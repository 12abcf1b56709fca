package catalog

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
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	// a second pooled connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)

	schema, err := os.ReadFile("../../docs/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func TestSaveDBLoadDBRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	store := testStore()
	n, err := SaveDB(ctx, db, store)
	require.NoError(t, err)
	assert.Equal(t, store.Len(), n)

	loaded, err := LoadDB(ctx, db)
	require.NoError(t, err)
	require.Equal(t, store.Len(), loaded.Len())

	for i := 0; i < store.Len(); i++ {
		want, _ := store.Get(i)
		got, ok := loaded.Get(i)
		require.True(t, ok)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Genres, got.Genres)
		assert.Equal(t, want.ReleaseYear, got.ReleaseYear)
	}
}

func TestSaveDBIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	store := testStore()
	_, err := SaveDB(ctx, db, store)
	require.NoError(t, err)
	_, err = SaveDB(ctx, db, store)
	require.NoError(t, err)

	loaded, err := LoadDB(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, store.Len(), loaded.Len())
}

// User writes reference titles(id), so a catalog that only lives in memory
// breaks them. Persisting the store must make those inserts valid.
func TestSaveDBSatisfiesUserWriteForeignKeys(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ('u-1', 'alice', 'a@example.com', 'h')`)
	require.NoError(t, err)

	watchlistInsert := `INSERT INTO watchlist (user_id, title_id, status) VALUES ('u-1', 0, 'watching')`

	// empty titles table: the foreign key rejects the write
	_, err = db.Exec(watchlistInsert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY")

	_, err = SaveDB(ctx, db, testStore())
	require.NoError(t, err)

	_, err = db.Exec(watchlistInsert)
	assert.NoError(t, err)

	_, err = db.Exec(`INSERT INTO reviews (user_id, title_id, rating, text) VALUES ('u-1', 0, 8, '')`)
	assert.NoError(t, err)
}

func TestLoadDBEmptyTable(t *testing.T) {
	db := openTestDB(t)

	_, err := LoadDB(context.Background(), db)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestSaveDBNullableColumns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	store := NewStore([]models.Title{{ID: 0, Name: "Bare"}})
	_, err := SaveDB(ctx, db, store)
	require.NoError(t, err)

	loaded, err := LoadDB(ctx, db)
	require.NoError(t, err)

	got, ok := loaded.Get(0)
	require.True(t, ok)
	assert.Equal(t, "Bare", got.Name)
	assert.Empty(t, got.Type)
	assert.Nil(t, got.ReleaseYear)
}
