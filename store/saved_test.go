package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSavesAndUnsaves(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	dune := validListing("Dune")

	saved, err := mgr.Saved.Toggle(ctx, dune)
	require.NoError(t, err)
	assert.True(t, saved)

	ok, err := mgr.Saved.IsSaved(ctx, "Dune")
	require.NoError(t, err)
	assert.True(t, ok)

	saved, err = mgr.Saved.Toggle(ctx, dune)
	require.NoError(t, err)
	assert.False(t, saved)

	ok, err = mgr.Saved.IsSaved(ctx, "Dune")
	require.NoError(t, err)
	assert.False(t, ok)

	// Toggling twice lands back on the starting state.
	got, err := mgr.Saved.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestToggleKeepsOtherEntries(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.Saved.Toggle(ctx, validListing("Dune"))
	require.NoError(t, err)
	_, err = mgr.Saved.Toggle(ctx, validListing("Ringenes Herre"))
	require.NoError(t, err)

	_, err = mgr.Saved.Toggle(ctx, validListing("Dune"))
	require.NoError(t, err)

	got, err := mgr.Saved.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ringenes Herre", got[0].Title)
}

func TestSavedEntriesAreSnapshots(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	added, err := mgr.Books.Append(ctx, validListing("Dune"))
	require.NoError(t, err)

	_, err = mgr.Saved.Toggle(ctx, added)
	require.NoError(t, err)

	// Deleting the listing leaves the saved copy untouched.
	require.NoError(t, mgr.Books.RemoveByTitle(ctx, "Dune"))

	got, err := mgr.Saved.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, added, got[0])
}

func TestToggleStorageErrorLeavesSetUnchanged(t *testing.T) {
	kv := NewMemKV()
	mgr := NewManager(kv)
	ctx := context.Background()

	_, err := mgr.Saved.Toggle(ctx, validListing("Dune"))
	require.NoError(t, err)

	boom := errors.New("disk I/O error")
	kv.SetErr = boom
	_, err = mgr.Saved.Toggle(ctx, validListing("Ringenes Herre"))
	require.ErrorIs(t, err, boom)

	kv.SetErr = nil
	got, err := mgr.Saved.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)
}

func TestSavedRemove(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.Saved.Toggle(ctx, validListing("Dune"))
	require.NoError(t, err)

	require.NoError(t, mgr.Saved.Remove(ctx, "Dune"))

	got, err := mgr.Saved.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, mgr.Saved.Remove(ctx, "Dune"), ErrNotFound)
}
