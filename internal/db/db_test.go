package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_DefinesSessionTable(t *testing.T) {
	assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS resume_sessions")
	assert.Contains(t, Schema, "snapshot   JSONB NOT NULL")
}

func TestConnect_InvalidURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := Connect(ctx, "not a url://")
	require.Error(t, err)
	assert.Nil(t, db)
}
