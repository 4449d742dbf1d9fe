//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgres(t *testing.T) *Postgres {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	s, err := NewPostgres(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestIntegration_PostgresAppendAndLoad(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	at := time.Date(1999, 12, 31, 23, 59, 58, 0, time.UTC)
	rec := record(t, at, "integration")
	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM feedback_records WHERE key = $1", rec.Key())
	})

	require.NoError(t, s.Append(ctx, rec.Key(), rec))

	got, err := FindByID(ctx, s, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Key(), got.Key)
	assert.Equal(t, "integration", got.Record.CreativeText)
	assert.Equal(t, rec.TransformScore, got.Record.TransformScore)

	// Same second: the second write replaces the first.
	again := record(t, at, "replaced")
	require.NoError(t, s.Append(ctx, again.Key(), again))

	got, err = FindByID(ctx, s, again.ID)
	require.NoError(t, err)
	assert.Equal(t, "replaced", got.Record.CreativeText)

	_, err = FindByID(ctx, s, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
