package memstore_test

import (
	"context"
	"testing"

	"github.com/0xsonu/mlms/storage"
	"github.com/0xsonu/mlms/storage/memstore"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	_, err := s.Get(ctx, storage.KeySession)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, storage.KeySession, "value"))
	got, err := s.Get(ctx, storage.KeySession)
	require.NoError(t, err)
	require.Equal(t, "value", got)

	require.NoError(t, s.Delete(ctx, storage.KeySession))
	_, err = s.Get(ctx, storage.KeySession)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, s.Delete(ctx, storage.KeySession))
}
