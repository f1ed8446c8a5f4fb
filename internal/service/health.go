package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/northpine-labs/linkvault-back/internal/db"
)

type HealthService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewHealthService(g *gorm.DB, l *zap.SugaredLogger) *HealthService {
	return &HealthService{
		db:     g,
		logger: l,
	}
}

// Dump returns the contents of every table. A liveness diagnostic, not part
// of the stable API surface.
func (s *HealthService) Dump(ctx context.Context) (map[string]interface{}, error) {
	g := s.db.WithContext(ctx)

	users := make([]db.User, 0)
	if res := g.Order("id ASC").Find(&users); res.Error != nil {
		return nil, res.Error
	}
	bookmarks := make([]db.Bookmark, 0)
	if res := g.Order("id ASC").Find(&bookmarks); res.Error != nil {
		return nil, res.Error
	}
	tags := make([]db.Tag, 0)
	if res := g.Order("id ASC").Find(&tags); res.Error != nil {
		return nil, res.Error
	}
	collections := make([]db.Collection, 0)
	if res := g.Order("id ASC").Find(&collections); res.Error != nil {
		return nil, res.Error
	}
	bookmarkTags := make([]db.BookmarkTag, 0)
	if res := g.Find(&bookmarkTags); res.Error != nil {
		return nil, res.Error
	}
	collectionBookmarks := make([]db.CollectionBookmark, 0)
	if res := g.Find(&collectionBookmarks); res.Error != nil {
		return nil, res.Error
	}

	return map[string]interface{}{
		"users":                users,
		"bookmarks":            bookmarks,
		"tags":                 tags,
		"collections":          collections,
		"bookmark_tags":        bookmarkTags,
		"collection_bookmarks": collectionBookmarks,
	}, nil
}
