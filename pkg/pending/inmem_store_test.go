package pending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInMemStore(t *testing.T, ttl time.Duration) *InMemStore {
	t.Helper()
	store := NewInMemStore(ttl, 10*time.Millisecond)
	t.Cleanup(store.Close)
	return store
}

func TestInMemStore_PutGetClear(t *testing.T) {
	store := setupInMemStore(t, time.Hour)
	ctx := context.Background()

	reg := Registration{
		Username:  "maria42",
		FirstName: "Maria",
		LastName:  "Silva",
		Email:     "maria@example.com",
		Password:  "S3cret!pass",
	}

	require.NoError(t, store.Put(ctx, "sess-1", reg))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, reg, *got)

	require.NoError(t, store.Clear(ctx, "sess-1"))

	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemStore_PutOverwrites(t *testing.T) {
	store := setupInMemStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sess-1", Registration{Username: "first"}))
	require.NoError(t, store.Put(ctx, "sess-1", Registration{Username: "second"}))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Username)
}

func TestInMemStore_NoCrossSessionLookup(t *testing.T) {
	store := setupInMemStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sess-1", Registration{Username: "maria42"}))

	_, err := store.Get(ctx, "sess-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemStore_Expiry(t *testing.T) {
	store := setupInMemStore(t, 20*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sess-1", Registration{Username: "maria42"}))

	assert.Eventually(t, func() bool {
		_, err := store.Get(ctx, "sess-1")
		return err == ErrNotFound
	}, time.Second, 10*time.Millisecond)
}

func TestInMemStore_ClearMissingIsNoop(t *testing.T) {
	store := setupInMemStore(t, time.Hour)

	assert.NoError(t, store.Clear(context.Background(), "missing"))
}
