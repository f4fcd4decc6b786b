package database

import (
	"context"
	"fmt"

	"netinv/pkg/models"

	"gorm.io/gorm"
)

// SiteRepository stores sites. Deleting a site unassigns its devices.
type SiteRepository struct {
	*GormRepository[models.Site]
}

var _ Repository[models.Site] = (*SiteRepository)(nil)

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{GormRepository: NewGormRepository[models.Site](db)}
}

// Delete removes the site and clears site_id on the devices assigned to it
func (r *SiteRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Device{}).
			Where("site_id = ?", id).
			Update("site_id", nil).Error; err != nil {
			return fmt.Errorf("failed to unassign devices: %w", err)
		}

		result := tx.Delete(&models.Site{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("site %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}
