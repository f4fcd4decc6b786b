package database

import (
	"context"
	"fmt"

	"netinv/pkg/models"

	"gorm.io/gorm"
)

// DeviceRepository adds the device-scoped queries on top of the generic CRUD
type DeviceRepository struct {
	*GormRepository[models.Device]
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{GormRepository: NewGormRepository[models.Device](db)}
}

// Interfaces returns every interface that belongs to the device
func (r *DeviceRepository) Interfaces(ctx context.Context, deviceID int64) ([]*models.Interface, error) {
	interfaces := make([]*models.Interface, 0)
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("id").
		Find(&interfaces).Error
	return interfaces, err
}

// Stats returns the samples of every interface of the device in one query
func (r *DeviceRepository) Stats(ctx context.Context, deviceID int64) ([]*models.InterfaceStats, error) {
	stats := make([]*models.InterfaceStats, 0)
	err := r.db.WithContext(ctx).
		Model(&models.InterfaceStats{}).
		Select("interface_stats.*").
		Joins("JOIN interfaces ON interfaces.id = interface_stats.interface_id").
		Where("interfaces.device_id = ?", deviceID).
		Order("interface_stats.id").
		Find(&stats).Error
	return stats, err
}

// Hostnames resolves device ids to hostnames. Unknown ids are absent from the map.
func (r *DeviceRepository) Hostnames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID       int64
		Hostname string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Device{}).
		Select("id", "hostname").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ID] = row.Hostname
	}
	return names, nil
}

// SetStatusByIP updates the status of the device owning ip.
// It reports whether a row changed.
func (r *DeviceRepository) SetStatusByIP(ctx context.Context, ip, status string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Device{}).
		Where("ip_address = ? AND status <> ?", ip, status).
		Update("status", status)
	return result.RowsAffected > 0, result.Error
}

// DeleteCascade removes the device together with its interfaces, their stats
// and the links it sources. Links pointing at the device keep the neighbor
// hostname and lose the device reference.
func (r *DeviceRepository) DeleteCascade(ctx context.Context, device *models.Device) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		interfaceIDs := tx.Model(&models.Interface{}).Select("id").Where("device_id = ?", device.ID)
		if err := tx.Where("interface_id IN (?)", interfaceIDs).Delete(&models.InterfaceStats{}).Error; err != nil {
			return fmt.Errorf("failed to delete interface stats: %w", err)
		}

		if err := tx.Where("device_id = ?", device.ID).Delete(&models.Interface{}).Error; err != nil {
			return fmt.Errorf("failed to delete interfaces: %w", err)
		}

		if err := tx.Where("src_device_id = ?", device.ID).Delete(&models.TopologyLink{}).Error; err != nil {
			return fmt.Errorf("failed to delete sourced links: %w", err)
		}

		if err := tx.Model(&models.TopologyLink{}).
			Where("dst_device_id = ? AND (dst_hostname = '' OR dst_hostname IS NULL)", device.ID).
			Update("dst_hostname", device.Hostname).Error; err != nil {
			return fmt.Errorf("failed to keep neighbor hostname: %w", err)
		}

		if err := tx.Model(&models.TopologyLink{}).
			Where("dst_device_id = ?", device.ID).
			Update("dst_device_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach inbound links: %w", err)
		}

		result := tx.Delete(&models.Device{}, device.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("device %d: %w", device.ID, models.ErrNotFound)
		}
		return nil
	})
}

// InterfaceRepository serves single interface lookups and their samples
type InterfaceRepository struct {
	*GormRepository[models.Interface]
}

func NewInterfaceRepository(db *gorm.DB) *InterfaceRepository {
	return &InterfaceRepository{GormRepository: NewGormRepository[models.Interface](db)}
}

// Stats returns the samples recorded for one interface
func (r *InterfaceRepository) Stats(ctx context.Context, interfaceID int64) ([]*models.InterfaceStats, error) {
	stats := make([]*models.InterfaceStats, 0)
	err := r.db.WithContext(ctx).
		Where("interface_id = ?", interfaceID).
		Order("id").
		Find(&stats).Error
	return stats, err
}

// LatestStats returns the newest sample of every interface that has one
func (r *InterfaceRepository) LatestStats(ctx context.Context) ([]*models.InterfaceStats, error) {
	stats := make([]*models.InterfaceStats, 0)
	err := r.db.WithContext(ctx).
		Where(`id = (SELECT s.id FROM interface_stats s
			WHERE s.interface_id = interface_stats.interface_id
			ORDER BY s.timestamp DESC, s.id DESC LIMIT 1)`).
		Order("interface_id").
		Find(&stats).Error
	return stats, err
}
