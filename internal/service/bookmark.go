package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/northpine-labs/linkvault-back/internal/db"
)

type BookmarkService struct {
	db     *gorm.DB
	repo   *Repository[db.Bookmark]
	logger *zap.SugaredLogger
}

func NewBookmarkService(g *gorm.DB, l *zap.SugaredLogger) *BookmarkService {
	return &BookmarkService{
		db:     g,
		repo:   NewRepository[db.Bookmark](g, "bookmark", l),
		logger: l,
	}
}

func (s *BookmarkService) All(ctx context.Context) ([]db.Bookmark, error) {
	return s.repo.All(ctx)
}

func (s *BookmarkService) ByID(ctx context.Context, id uint64) (*db.Bookmark, error) {
	return s.repo.ByID(ctx, id)
}

func (s *BookmarkService) Create(ctx context.Context, userID uint64, title, link string, description *string) (*db.Bookmark, error) {
	if userID == 0 || title == "" || link == "" {
		return nil, invalid("user_id, title, and url are required")
	}

	model := db.Bookmark{
		UserID: userID,
		Title:  title,
		Link:   link,
	}
	// Absent description persists as empty string, not NULL.
	if description != nil {
		model.Description = *description
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (s *BookmarkService) Update(ctx context.Context, id uint64, title, link, description *string, userID *uint64) (*db.Bookmark, error) {
	fields := map[string]interface{}{}
	if title != nil {
		fields["title"] = *title
	}
	if link != nil {
		fields["url"] = *link
	}
	if description != nil {
		fields["description"] = *description
	}
	if userID != nil {
		fields["user_id"] = *userID
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *BookmarkService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

// AttachTag links a tag to a bookmark. Both sides must exist; a pair that is
// already linked surfaces the composite-key violation instead of silently
// succeeding.
func (s *BookmarkService) AttachTag(ctx context.Context, bookmarkID, tagID uint64) (*db.BookmarkTag, error) {
	row := db.BookmarkTag{
		BookmarkID: bookmarkID,
		TagID:      tagID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[db.Bookmark](tx, "bookmark", bookmarkID); err != nil {
			return err
		}
		if err := exists[db.Tag](tx, "tag", tagID); err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// DetachTag removes the link if present. Removing an absent link is a no-op,
// matching DELETE semantics elsewhere in the API.
func (s *BookmarkService) DetachTag(ctx context.Context, bookmarkID, tagID uint64) error {
	res := s.db.WithContext(ctx).
		Where("bookmark_id = ? AND tag_id = ?", bookmarkID, tagID).
		Delete(&db.BookmarkTag{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "detach tag")
	}
	return nil
}

func (s *BookmarkService) TagsFor(ctx context.Context, bookmarkID uint64) ([]db.Tag, error) {
	if err := exists[db.Bookmark](s.db.WithContext(ctx), "bookmark", bookmarkID); err != nil {
		return nil, err
	}

	sql, args, err := squirrel.
		Select("t.id", "t.user_id", "t.name", "t.slug", "t.created_at", "t.updated_at").
		From("tags t").
		Join("bookmark_tags bt ON bt.tag_id = t.id").
		Where(squirrel.Eq{"bt.bookmark_id": bookmarkID}).
		OrderBy("t.id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	tags := make([]db.Tag, 0)
	res := s.db.WithContext(ctx).Raw(sql, args...).Scan(&tags)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}
	return tags, nil
}

func (s *BookmarkService) CollectionsFor(ctx context.Context, bookmarkID uint64) ([]db.Collection, error) {
	if err := exists[db.Bookmark](s.db.WithContext(ctx), "bookmark", bookmarkID); err != nil {
		return nil, err
	}

	sql, args, err := squirrel.
		Select("c.id", "c.user_id", "c.name", "c.description", "c.created_at", "c.updated_at").
		From("collections c").
		Join("collection_bookmarks cb ON cb.collection_id = c.id").
		Where(squirrel.Eq{"cb.bookmark_id": bookmarkID}).
		OrderBy("c.id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	collections := make([]db.Collection, 0)
	res := s.db.WithContext(ctx).Raw(sql, args...).Scan(&collections)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}
	return collections, nil
}

// exists is the existence check run before relationship reads and writes.
func exists[T any](tx *gorm.DB, entity string, id uint64) error {
	model := new(T)
	res := tx.First(model, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return notFound(entity, id)
		}
		return errors.Wrapf(res.Error, "get %s", entity)
	}
	return nil
}
