package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/northpine-labs/linkvault-back/internal/db"
)

type TagService struct {
	db     *gorm.DB
	repo   *Repository[db.Tag]
	logger *zap.SugaredLogger
}

func NewTagService(g *gorm.DB, l *zap.SugaredLogger) *TagService {
	return &TagService{
		db:     g,
		repo:   NewRepository[db.Tag](g, "tag", l),
		logger: l,
	}
}

func (s *TagService) All(ctx context.Context) ([]db.Tag, error) {
	return s.repo.All(ctx)
}

func (s *TagService) ByID(ctx context.Context, id uint64) (*db.Tag, error) {
	return s.repo.ByID(ctx, id)
}

func (s *TagService) Create(ctx context.Context, userID uint64, name, slug string) (*db.Tag, error) {
	if userID == 0 || name == "" || slug == "" {
		return nil, invalid("user_id, name and slug are required")
	}

	model := db.Tag{
		UserID: userID,
		Name:   name,
		Slug:   slug,
	}
	if err := s.repo.Create(ctx, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (s *TagService) Update(ctx context.Context, id uint64, name, slug *string) (*db.Tag, error) {
	fields := map[string]interface{}{}
	if name != nil {
		fields["name"] = *name
	}
	if slug != nil {
		fields["slug"] = *slug
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *TagService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TagService) BookmarksFor(ctx context.Context, tagID uint64) ([]db.Bookmark, error) {
	if err := exists[db.Tag](s.db.WithContext(ctx), "tag", tagID); err != nil {
		return nil, err
	}

	sql, args, err := squirrel.
		Select("b.id", "b.user_id", "b.title", "b.url", "b.description", "b.created_at", "b.updated_at").
		From("bookmarks b").
		Join("bookmark_tags bt ON bt.bookmark_id = b.id").
		Where(squirrel.Eq{"bt.tag_id": tagID}).
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
