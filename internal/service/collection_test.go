package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionCreateValidation(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user := s.mustRegister(t, "alice", "alice@example.com")

	_, err := s.collections.Create(ctx, 0, "Reading", nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.collections.Create(ctx, user.ID, "", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCollectionRoundTrip(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user := s.mustRegister(t, "alice", "alice@example.com")

	desc := "weekend queue"
	created, err := s.collections.Create(ctx, user.ID, "Reading", &desc)
	require.NoError(t, err)

	got, err := s.collections.ByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reading", got.Name)
	assert.Equal(t, "weekend queue", got.Description)

	name := "Archive"
	updated, err := s.collections.Update(ctx, created.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Archive", updated.Name)
	assert.Equal(t, "weekend queue", updated.Description)
}

func TestAttachBookmarkToCollection(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user := s.mustRegister(t, "alice", "alice@example.com")
	bookmark := s.mustBookmark(t, user.ID, "Ex", "https://example.com")
	collection := s.mustCollection(t, user.ID, "Reading")

	row, err := s.collections.AttachBookmark(ctx, collection.ID, bookmark.ID)
	require.NoError(t, err)
	assert.Equal(t, collection.ID, row.CollectionID)
	assert.Equal(t, bookmark.ID, row.BookmarkID)

	_, err = s.collections.AttachBookmark(ctx, collection.ID, bookmark.ID)
	assert.ErrorIs(t, err, ErrConstraint)

	_, err = s.collections.AttachBookmark(ctx, 9999, bookmark.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.collections.AttachBookmark(ctx, collection.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetachBookmarkIsIdempotent(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user := s.mustRegister(t, "alice", "alice@example.com")
	bookmark := s.mustBookmark(t, user.ID, "Ex", "https://example.com")
	collection := s.mustCollection(t, user.ID, "Reading")

	_, err := s.collections.AttachBookmark(ctx, collection.ID, bookmark.ID)
	require.NoError(t, err)

	require.NoError(t, s.collections.DetachBookmark(ctx, collection.ID, bookmark.ID))
	require.NoError(t, s.collections.DetachBookmark(ctx, collection.ID, bookmark.ID))

	bookmarks, err := s.collections.BookmarksIn(ctx, collection.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestBookmarksInCollection(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user := s.mustRegister(t, "alice", "alice@example.com")
	b1 := s.mustBookmark(t, user.ID, "One", "https://one.example.com")
	b2 := s.mustBookmark(t, user.ID, "Two", "https://two.example.com")
	collection := s.mustCollection(t, user.ID, "Reading")

	_, err := s.collections.AttachBookmark(ctx, collection.ID, b1.ID)
	require.NoError(t, err)
	_, err = s.collections.AttachBookmark(ctx, collection.ID, b2.ID)
	require.NoError(t, err)

	bookmarks, err := s.collections.BookmarksIn(ctx, collection.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 2)
	assert.Equal(t, "One", bookmarks[0].Title)
	assert.Equal(t, "Two", bookmarks[1].Title)

	collections, err := s.bookmarks.CollectionsFor(ctx, b1.ID)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, "Reading", collections[0].Name)

	_, err = s.collections.BookmarksIn(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionDeleteCascadesJoinRows(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user := s.mustRegister(t, "alice", "alice@example.com")
	bookmark := s.mustBookmark(t, user.ID, "Ex", "https://example.com")
	collection := s.mustCollection(t, user.ID, "Reading")

	_, err := s.collections.AttachBookmark(ctx, collection.ID, bookmark.ID)
	require.NoError(t, err)

	require.NoError(t, s.collections.Delete(ctx, collection.ID))

	// The bookmark survives; its collection memberships do not.
	collections, err := s.bookmarks.CollectionsFor(ctx, bookmark.ID)
	require.NoError(t, err)
	assert.Empty(t, collections)
}
