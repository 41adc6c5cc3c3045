//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := Connect(context.Background(), dsn)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func TestIntegration_Sessions_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	id := "test-" + uuid.NewString()
	defer func() { _ = db.DeleteSession(ctx, id) }()

	t.Run("missing session loads as nil", func(t *testing.T) {
		data, err := db.LoadSession(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, db.SaveSession(ctx, id, []byte(`{"edits": {}}`)))
		data, err := db.LoadSession(ctx, id)
		require.NoError(t, err)
		assert.JSONEq(t, `{"edits": {}}`, string(data))
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, db.SaveSession(ctx, id, []byte(`{"edits": {"summary": null}}`)))
		data, err := db.LoadSession(ctx, id)
		require.NoError(t, err)
		assert.JSONEq(t, `{"edits": {"summary": null}}`, string(data))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, db.DeleteSession(ctx, id))
		data, err := db.LoadSession(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, data)
		assert.NoError(t, db.DeleteSession(ctx, id))
	})
}

func TestIntegration_DeleteSessionsBefore(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	id := "test-" + uuid.NewString()
	require.NoError(t, db.SaveSession(ctx, id, []byte(`{}`)))

	removed, err := db.DeleteSessionsBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))

	data, err := db.LoadSession(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, data)
}
