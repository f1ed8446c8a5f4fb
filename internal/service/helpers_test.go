package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/northpine-labs/linkvault-back/internal/auth"
	"github.com/northpine-labs/linkvault-back/internal/config"
	"github.com/northpine-labs/linkvault-back/internal/db"
)

type testServices struct {
	db          *gorm.DB
	users       *UserService
	bookmarks   *BookmarkService
	tags        *TagService
	collections *CollectionService
	health      *HealthService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	gormDB, err := db.NewSQLiteClient(":memory:")
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	authService := auth.NewService(&config.Config{
		JWTSecret:  "test-secret",
		BcryptCost: bcrypt.MinCost,
	}, gormDB, logger)

	return &testServices{
		db:          gormDB,
		users:       NewUserService(gormDB, authService, logger),
		bookmarks:   NewBookmarkService(gormDB, logger),
		tags:        NewTagService(gormDB, logger),
		collections: NewCollectionService(gormDB, logger),
		health:      NewHealthService(gormDB, logger),
	}
}

func (s *testServices) mustRegister(t *testing.T, username, email string) *db.User {
	t.Helper()
	user, err := s.users.Register(context.Background(), username, email, "pw123456")
	require.NoError(t, err)
	return user
}

func (s *testServices) mustBookmark(t *testing.T, userID uint64, title, link string) *db.Bookmark {
	t.Helper()
	bookmark, err := s.bookmarks.Create(context.Background(), userID, title, link, nil)
	require.NoError(t, err)
	return bookmark
}

func (s *testServices) mustTag(t *testing.T, userID uint64, name, slug string) *db.Tag {
	t.Helper()
	tag, err := s.tags.Create(context.Background(), userID, name, slug)
	require.NoError(t, err)
	return tag
}

func (s *testServices) mustCollection(t *testing.T, userID uint64, name string) *db.Collection {
	t.Helper()
	collection, err := s.collections.Create(context.Background(), userID, name, nil)
	require.NoError(t, err)
	return collection
}
