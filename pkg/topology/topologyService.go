package topology

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"netinv/pkg/database"
	"netinv/pkg/models"

	"gorm.io/gorm"
)

// TopologyService serves discovered links and the graph built from them
type TopologyService struct {
	links   *database.TopologyRepository
	devices *database.DeviceRepository
}

func NewTopologyService(db *gorm.DB) *TopologyService {
	return &TopologyService{
		links:   database.NewTopologyRepository(db),
		devices: database.NewDeviceRepository(db),
	}
}

// ListLinks returns every link with both ends resolved to hostnames
func (s *TopologyService) ListLinks(ctx context.Context) ([]models.LinkView, error) {
	links, err := s.links.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, links)
}

// DeviceLinks returns the links where the device is source or destination
func (s *TopologyService) DeviceLinks(ctx context.Context, deviceID int64) ([]models.LinkView, error) {
	if _, err := s.devices.Get(ctx, deviceID); err != nil {
		return nil, notFound(err, "Device not found")
	}

	links, err := s.links.ForDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, links)
}

// Graph returns the node/edge view over all devices and links
func (s *TopologyService) Graph(ctx context.Context) (models.Graph, error) {
	devices, err := s.devices.List(ctx)
	if err != nil {
		return models.Graph{}, err
	}
	links, err := s.links.List(ctx)
	if err != nil {
		return models.Graph{}, err
	}
	return BuildGraph(devices, links), nil
}

// CreateLink records a discovered adjacency. Both referenced devices must exist.
func (s *TopologyService) CreateLink(ctx context.Context, in models.LinkCreate) (*models.TopologyLink, error) {
	if _, err := s.devices.Get(ctx, in.SrcDeviceID); err != nil {
		return nil, notFound(err, "Source device not found")
	}
	if in.DstDeviceID != nil {
		if _, err := s.devices.Get(ctx, *in.DstDeviceID); err != nil {
			return nil, notFound(err, "Destination device not found")
		}
	}

	link := models.TopologyLink{
		SrcDeviceID:  in.SrcDeviceID,
		SrcInterface: in.SrcInterface,
		DstDeviceID:  in.DstDeviceID,
		DstInterface: in.DstInterface,
		DstHostname:  in.DstHostname,
		LastSeen:     time.Now().UTC(),
	}
	if in.LastSeen != nil {
		link.LastSeen = in.LastSeen.UTC()
	}

	created, err := s.links.Create(ctx, &link)
	if err != nil {
		return nil, err
	}
	slog.Info("Topology link recorded", "component", "TopologyService", "link_id", created.ID, "src_device_id", created.SrcDeviceID)
	return created, nil
}

// DeleteLink removes one link
func (s *TopologyService) DeleteLink(ctx context.Context, id int64) error {
	if err := s.links.Delete(ctx, id); err != nil {
		return notFound(err, "Link not found")
	}
	return nil
}

// enrich resolves the device ids of all links with one query
func (s *TopologyService) enrich(ctx context.Context, links []*models.TopologyLink) ([]models.LinkView, error) {
	ids := make([]int64, 0, len(links)*2)
	seen := make(map[int64]struct{}, len(links)*2)
	add := func(id int64) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, link := range links {
		add(link.SrcDeviceID)
		if link.DstDeviceID != nil {
			add(*link.DstDeviceID)
		}
	}

	names, err := s.devices.Hostnames(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.LinkView, 0, len(links))
	for _, link := range links {
		view := models.LinkView{TopologyLink: *link}
		if name, ok := names[link.SrcDeviceID]; ok {
			view.SrcDeviceName = &name
		}
		if link.DstDeviceID != nil {
			if name, ok := names[*link.DstDeviceID]; ok {
				view.DstDeviceName = &name
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func notFound(err error, message string) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NotFound(message)
	}
	return err
}
