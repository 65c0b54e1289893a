package handle

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHandleDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE products (handle TEXT NOT NULL, deleted_at DATETIME)`).Error)
	return db
}

func insertHandle(t *testing.T, db *gorm.DB, h string) {
	t.Helper()
	require.NoError(t, db.Exec(`INSERT INTO products (handle) VALUES (?)`, h).Error)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "winter-jacket", Slugify("  Winter Jacket "))
	assert.Equal(t, "cafe-creme", Slugify("Café Crème"))
	assert.Equal(t, "", Slugify("   "))
}

func TestGenerateFirstFree(t *testing.T) {
	db := setupHandleDB(t)
	ctx := context.Background()

	h, err := Generate(ctx, db, "products", "Winter Jacket", 50)
	require.NoError(t, err)
	assert.Equal(t, "winter-jacket", h)
}

func TestGenerateSuffixesOnCollision(t *testing.T) {
	db := setupHandleDB(t)
	ctx := context.Background()

	insertHandle(t, db, "winter-jacket")
	insertHandle(t, db, "winter-jacket-1")

	h, err := Generate(ctx, db, "products", "Winter Jacket", 50)
	require.NoError(t, err)
	assert.Equal(t, "winter-jacket-2", h)
}

func TestGenerateIgnoresSoftDeletedRows(t *testing.T) {
	db := setupHandleDB(t)
	ctx := context.Background()

	require.NoError(t, db.Exec(`INSERT INTO products (handle, deleted_at) VALUES ('winter-jacket', CURRENT_TIMESTAMP)`).Error)

	h, err := Generate(ctx, db, "products", "Winter Jacket", 50)
	require.NoError(t, err)
	assert.Equal(t, "winter-jacket", h)
}

func TestGenerateExhausted(t *testing.T) {
	db := setupHandleDB(t)
	ctx := context.Background()

	insertHandle(t, db, "tee")
	insertHandle(t, db, "tee-1")

	_, err := Generate(ctx, db, "products", "Tee", 2)
	assert.ErrorIs(t, err, ErrExhausted)

	_, err = Generate(ctx, db, "products", "   ", 50)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestBatchGeneratesDistinctHandles(t *testing.T) {
	db := setupHandleDB(t)
	ctx := context.Background()

	insertHandle(t, db, "tee")

	batch, err := NewBatch(ctx, db, "products", []string{"Tee", "Tee", "Tee"}, 50)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		h, err := batch.Generate("Tee")
		require.NoError(t, err)
		assert.False(t, seen[h], "handle %q assigned twice", h)
		seen[h] = true
	}
	assert.False(t, seen["tee"], "existing row handle must not be reused")
}

func TestBatchFallsBackWhenSuffixesExhausted(t *testing.T) {
	db := setupHandleDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		h := "tee"
		if i > 0 {
			h = fmt.Sprintf("tee-%d", i)
		}
		insertHandle(t, db, h)
	}

	batch, err := NewBatch(ctx, db, "products", []string{"Tee"}, 3)
	require.NoError(t, err)

	h, err := batch.Generate("Tee")
	require.NoError(t, err)
	assert.NotEqual(t, "tee", h)
	assert.NotEqual(t, "tee-1", h)
	assert.NotEqual(t, "tee-2", h)
}
