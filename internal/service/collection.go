package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/northpine-labs/linkvault-back/internal/db"
)

type CollectionService struct {
	db     *gorm.DB
	repo   *Repository[db.Collection]
	logger *zap.SugaredLogger
}

func NewCollectionService(g *gorm.DB, l *zap.SugaredLogger) *CollectionService {
	return &CollectionService{
		db:     g,
		repo:   NewRepository[db.Collection](g, "collection", l),
		logger: l,
	}
}

func (s *CollectionService) All(ctx context.Context) ([]db.Collection, error) {
	return s.repo.All(ctx)
}

func (s *CollectionService) ByID(ctx context.Context, id uint64) (*db.Collection, error) {
	return s.repo.ByID(ctx, id)
}

func (s *CollectionService) Create(ctx context.Context, userID uint64, name string, description *string) (*db.Collection, error) {
	if userID == 0 || name == "" {
		return nil, invalid("user_id and name are required")
	}

	model := db.Collection{
		UserID: userID,
		Name:   name,
	}
	if description != nil {
		model.Description = *description
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (s *CollectionService) Update(ctx context.Context, id uint64, name, description *string) (*db.Collection, error) {
	fields := map[string]interface{}{}
	if name != nil {
		fields["name"] = *name
	}
	if description != nil {
		fields["description"] = *description
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *CollectionService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

func (s *CollectionService) AttachBookmark(ctx context.Context, collectionID, bookmarkID uint64) (*db.CollectionBookmark, error) {
	row := db.CollectionBookmark{
		CollectionID: collectionID,
		BookmarkID:   bookmarkID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[db.Collection](tx, "collection", collectionID); err != nil {
			return err
		}
		if err := exists[db.Bookmark](tx, "bookmark", bookmarkID); err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// DetachBookmark is idempotent, same as BookmarkService.DetachTag.
func (s *CollectionService) DetachBookmark(ctx context.Context, collectionID, bookmarkID uint64) error {
	res := s.db.WithContext(ctx).
		Where("collection_id = ? AND bookmark_id = ?", collectionID, bookmarkID).
		Delete(&db.CollectionBookmark{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "detach bookmark")
	}
	return nil
}

func (s *CollectionService) BookmarksIn(ctx context.Context, collectionID uint64) ([]db.Bookmark, error) {
	if err := exists[db.Collection](s.db.WithContext(ctx), "collection", collectionID); err != nil {
		return nil, err
	}

	sql, args, err := squirrel.
		Select("b.id", "b.user_id", "b.title", "b.url", "b.description", "b.created_at", "b.updated_at").
		From("bookmarks b").
		Join("collection_bookmarks cb ON cb.bookmark_id = b.id").
		Where(squirrel.Eq{"cb.collection_id": collectionID}).
		OrderBy("b.id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	bookmarks := make([]db.Bookmark, 0)
	res := s.db.WithContext(ctx).Raw(sql, args...).Scan(&bookmarks)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}
	return bookmarks, nil
}
