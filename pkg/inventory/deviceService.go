package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"netinv/pkg/communication"
	"netinv/pkg/database"
	"netinv/pkg/models"

	"gorm.io/gorm"
)

// DeviceService handles device CRUD and the interface/stats lookups hanging off a device.
type DeviceService struct {
	devices    *database.DeviceRepository
	interfaces *database.InterfaceRepository
	sites      *database.SiteRepository

	secretKey    string
	deviceEvents chan<- models.Event
}

// NewDeviceService creates a device service. deviceEvents may be nil.
func NewDeviceService(db *gorm.DB, secretKey string, deviceEvents chan<- models.Event) *DeviceService {
	return &DeviceService{
		devices:      database.NewDeviceRepository(db),
		interfaces:   database.NewInterfaceRepository(db),
		sites:        database.NewSiteRepository(db),
		secretKey:    secretKey,
		deviceEvents: deviceEvents,
	}
}

// Repository exposes the device repository to collaborators such as the health monitor
func (s *DeviceService) Repository() *database.DeviceRepository {
	return s.devices
}

// Create stores a new device. A duplicate ip_address is ErrConflict.
func (s *DeviceService) Create(ctx context.Context, in models.DeviceCreate) (*models.Device, error) {
	if err := s.checkSite(ctx, in.SiteID); err != nil {
		return nil, err
	}
	device := in.ToDevice()

	sealed, err := database.SealSSHPassword(device.SSHPassword, s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt ssh password: %w", err)
	}
	device.SSHPassword = sealed

	created, err := s.devices.Create(ctx, &device)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.Conflict("Device with this IP already exists")
		}
		return nil, err
	}

	slog.Info("Device created", "component", "DeviceService", "device_id", created.ID, "ip_address", created.IPAddress)
	communication.SendEvent(s.deviceEvents, models.Event{Type: models.EventCreate, Payload: created}, "DeviceService")
	return created, nil
}

func (s *DeviceService) List(ctx context.Context) ([]*models.Device, error) {
	return s.devices.List(ctx)
}

func (s *DeviceService) Get(ctx context.Context, id int64) (*models.Device, error) {
	device, err := s.devices.Get(ctx, id)
	if err != nil {
		return nil, deviceNotFound(err)
	}
	return device, nil
}

// Update applies the fields present in the patch and returns the reloaded device
func (s *DeviceService) Update(ctx context.Context, id int64, patch models.DevicePatch) (*models.Device, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkSite(ctx, patch.SiteID.Value); err != nil {
		return nil, err
	}

	device, err := s.devices.Update(ctx, id, patch.Columns())
	if err != nil {
		return nil, deviceNotFound(err)
	}
	return device, nil
}

// Delete removes the device and everything that hangs off it. The deleted row is returned.
func (s *DeviceService) Delete(ctx context.Context, id int64) (*models.Device, error) {
	device, err := s.devices.Get(ctx, id)
	if err != nil {
		return nil, deviceNotFound(err)
	}

	if err := s.devices.DeleteCascade(ctx, device); err != nil {
		return nil, deviceNotFound(err)
	}

	slog.Info("Device deleted", "component", "DeviceService", "device_id", device.ID, "hostname", device.Hostname)
	communication.SendEvent(s.deviceEvents, models.Event{Type: models.EventDelete, Payload: device}, "DeviceService")
	return device, nil
}

func (s *DeviceService) Interfaces(ctx context.Context, deviceID int64) ([]*models.Interface, error) {
	if _, err := s.Get(ctx, deviceID); err != nil {
		return nil, err
	}
	return s.devices.Interfaces(ctx, deviceID)
}

func (s *DeviceService) Stats(ctx context.Context, deviceID int64) ([]*models.InterfaceStats, error) {
	if _, err := s.Get(ctx, deviceID); err != nil {
		return nil, err
	}
	return s.devices.Stats(ctx, deviceID)
}

func (s *DeviceService) Interface(ctx context.Context, id int64) (*models.Interface, error) {
	iface, err := s.interfaces.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("Interface not found")
		}
		return nil, err
	}
	return iface, nil
}

func (s *DeviceService) InterfaceStats(ctx context.Context, interfaceID int64) ([]*models.InterfaceStats, error) {
	if _, err := s.Interface(ctx, interfaceID); err != nil {
		return nil, err
	}
	return s.interfaces.Stats(ctx, interfaceID)
}

// LatestStats returns the newest sample of every interface
func (s *DeviceService) LatestStats(ctx context.Context) ([]*models.InterfaceStats, error) {
	return s.interfaces.LatestStats(ctx)
}

// checkSite rejects a site_id that names no site. nil means unassigned.
func (s *DeviceService) checkSite(ctx context.Context, siteID *int64) error {
	if siteID == nil {
		return nil
	}
	if _, err := s.sites.Get(ctx, *siteID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.BadRequest("Site not found")
		}
		return err
	}
	return nil
}

func deviceNotFound(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NotFound("Device not found")
	}
	return err
}
