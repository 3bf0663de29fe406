package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func WithTestStorage(t *testing.T, fn func(ctx context.Context, s *Storage)) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	fn(ctx, s)
}

func WithTestDatabase(t *testing.T, fn func(ctx context.Context, db *Database)) {
	WithTestStorage(t, func(ctx context.Context, s *Storage) {
		db, err := s.CreateDatabase(ctx, "test")
		require.NoError(t, err)
		fn(ctx, db)
	})
}
