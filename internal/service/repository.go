package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository implements the CRUD contract shared by every entity. The four
// entity services wrap one of these and add their own validation on top.
type Repository[T any] struct {
	db     *gorm.DB
	entity string
	logger *zap.SugaredLogger
}

func NewRepository[T any](db *gorm.DB, entity string, l *zap.SugaredLogger) *Repository[T] {
	return &Repository[T]{
		db:     db,
		entity: entity,
		logger: l,
	}
}

func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "list %ss", r.entity)
	}
	return out, nil
}

func (r *Repository[T]) ByID(ctx context.Context, id uint64) (*T, error) {
	out := new(T)
	res := r.db.WithContext(ctx).First(out, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, notFound(r.entity, id)
		}
		return nil, errors.Wrapf(res.Error, "get %s", r.entity)
	}
	return out, nil
}

func (r *Repository[T]) Create(ctx context.Context, model *T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

// Update applies the given column values to the row with the given id,
// leaving every other column alone, and returns the reloaded row.
// updated_at is refreshed unconditionally.
func (r *Repository[T]) Update(ctx context.Context, id uint64, fields map[string]interface{}) (*T, error) {
	out := new(T)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.First(out, id)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return notFound(r.entity, id)
			}
			return errors.Wrapf(res.Error, "get %s", r.entity)
		}

		// Copy so the caller's map does not pick up the timestamp.
		updates := make(map[string]interface{}, len(fields)+1)
		for k, v := range fields {
			updates[k] = v
		}
		updates["updated_at"] = time.Now()
		if err := tx.Model(out).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(out, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		out := new(T)
		res := tx.First(out, id)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return notFound(r.entity, id)
			}
			return errors.Wrapf(res.Error, "get %s", r.entity)
		}

		// Dependent rows go with the row via FK cascade.
		return tx.Delete(out).Error
	})
	return translate(err)
}
