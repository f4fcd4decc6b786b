package database

import (
	"context"
	"fmt"

	"netinv/pkg/models"

	"gorm.io/gorm"
)

// Repository defines the standard CRUD operations
type Repository[T any] interface {
	List(ctx context.Context) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id int64, columns map[string]any) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// GormRepository implements Repository using Gorm
type GormRepository[T any] struct {
	db *gorm.DB
}

var _ Repository[models.Device] = (*GormRepository[models.Device])(nil)

func NewGormRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

func (repository *GormRepository[T]) List(ctx context.Context) ([]*T, error) {
	entities := make([]*T, 0)
	result := repository.db.WithContext(ctx).Order("id").Find(&entities)
	return entities, result.Error
}

func (repository *GormRepository[T]) Get(ctx context.Context, id int64) (*T, error) {
	var entity T
	result := repository.db.WithContext(ctx).First(&entity, id)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("record %d", id))
	}
	return &entity, nil
}

func (repository *GormRepository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	result := repository.db.WithContext(ctx).Create(entity)
	if result.Error != nil {
		return nil, translate(result.Error, "create")
	}
	return entity, nil
}

// Update writes only the given columns and returns the reloaded row
func (repository *GormRepository[T]) Update(ctx context.Context, id int64, columns map[string]any) (*T, error) {
	// Check if exists
	var existing T
	if err := repository.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("record %d", id))
	}

	if len(columns) == 0 {
		return &existing, nil
	}

	result := repository.db.WithContext(ctx).Model(&existing).Updates(columns)
	if result.Error != nil {
		return nil, translate(result.Error, fmt.Sprintf("update %d", id))
	}

	// Reload into a fresh value so columns set to NULL read back as nil
	var reloaded T
	if err := repository.db.WithContext(ctx).First(&reloaded, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("record %d", id))
	}
	return &reloaded, nil
}

func (repository *GormRepository[T]) Delete(ctx context.Context, id int64) error {
	var entity T
	result := repository.db.WithContext(ctx).Delete(&entity, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("record %d: %w", id, models.ErrNotFound)
	}
	return nil
}
