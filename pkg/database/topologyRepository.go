package database

import (
	"context"

	"netinv/pkg/models"

	"gorm.io/gorm"
)

// TopologyRepository stores discovered links
type TopologyRepository struct {
	*GormRepository[models.TopologyLink]
}

func NewTopologyRepository(db *gorm.DB) *TopologyRepository {
	return &TopologyRepository{GormRepository: NewGormRepository[models.TopologyLink](db)}
}

// ForDevice returns the links where the device is either end
func (r *TopologyRepository) ForDevice(ctx context.Context, deviceID int64) ([]*models.TopologyLink, error) {
	links := make([]*models.TopologyLink, 0)
	err := r.db.WithContext(ctx).
		Where("src_device_id = ? OR dst_device_id = ?", deviceID, deviceID).
		Order("id").
		Find(&links).Error
	return links, err
}
