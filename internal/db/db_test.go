package db

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullTime(t *testing.T) {
	assert.Nil(t, nullTime(time.Time{}))

	now := time.Now()
	got := nullTime(now)
	require.NotNil(t, got)
	assert.True(t, now.Equal(*got))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		body, err := fs.ReadFile(migrations, "migrations/"+e.Name())
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", e.Name())
		assert.Contains(t, string(body), "-- +goose Down", e.Name())
	}

	docs, err := fs.ReadFile(migrations, "migrations/00002_documents.sql")
	require.NoError(t, err)
	for _, col := range []string{"user_id", "kind", "title", "template", "content", "version", "created_at", "updated_at"} {
		assert.True(t, strings.Contains(string(docs), col), col)
	}
}
