package health

import (
	"context"
	"log/slog"
	"time"

	"netinv/pkg/models"
)

// StatusWriter persists a device status keyed by ip address.
type StatusWriter interface {
	SetStatusByIP(ctx context.Context, ip, status string) (bool, error)
}

// FailureRecord tracks failure state for a single address.
type FailureRecord struct {
	LastTime time.Time
	Count    int
}

// HealthMonitor turns probe outcomes into device status.
// It only communicates via its event channel; the failures map is owned by Run.
type HealthMonitor struct {
	failures  map[string]FailureRecord
	events    <-chan models.Event
	devices   StatusWriter
	window    time.Duration
	threshold int
}

// NewHealthMonitor creates a new HealthMonitor instance.
func NewHealthMonitor(
	events <-chan models.Event,
	devices StatusWriter,
	windowMin int,
	threshold int,
) *HealthMonitor {
	if threshold < 1 {
		threshold = 1
	}
	return &HealthMonitor{
		failures:  make(map[string]FailureRecord),
		events:    events,
		devices:   devices,
		window:    time.Duration(windowMin) * time.Minute,
		threshold: threshold,
	}
}

// Run starts the health monitor's main loop.
func (hm *HealthMonitor) Run(ctx context.Context) {
	slog.Info("Starting health monitor", "component", "HealthMonitor", "window", hm.window.String(), "threshold", hm.threshold)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping health monitor", "component", "HealthMonitor")
			return
		case event, ok := <-hm.events:
			if !ok {
				return
			}
			hm.handleEvent(ctx, event)
		}
	}
}

func (hm *HealthMonitor) handleEvent(ctx context.Context, event models.Event) {
	switch event.Type {
	case models.EventProbeResult:
		if payload, ok := event.Payload.(*models.ProbeResultEvent); ok {
			hm.handleProbe(ctx, payload)
		}
	case models.EventCreate, models.EventDelete:
		// A registered or removed device starts from a clean failure window.
		if device, ok := event.Payload.(*models.Device); ok {
			delete(hm.failures, device.IPAddress)
		}
	}
}

// handleProbe processes a probe outcome and updates the failure count.
func (hm *HealthMonitor) handleProbe(ctx context.Context, event *models.ProbeResultEvent) {
	if event.Reachable {
		delete(hm.failures, event.IPAddress)
		hm.setStatus(ctx, event.IPAddress, models.StatusUp)
		return
	}

	record := hm.failures[event.IPAddress]

	if record.Count > 0 && event.Timestamp.Sub(record.LastTime) < hm.window {
		// Within window: increment count
		record.Count++
	} else {
		// Outside window: reset count to 1
		record.Count = 1
	}
	slog.Debug("Probe failure recorded",
		"component", "HealthMonitor",
		"ip_address", event.IPAddress,
		"probe", event.Probe,
		"count", record.Count,
		"threshold", hm.threshold,
	)

	if record.Count >= hm.threshold {
		slog.Warn("Device exceeded failure threshold, marking down",
			"component", "HealthMonitor",
			"ip_address", event.IPAddress,
			"count", record.Count,
		)
		hm.setStatus(ctx, event.IPAddress, models.StatusDown)
		delete(hm.failures, event.IPAddress) // Clean up after marking down
		return
	}

	record.LastTime = event.Timestamp
	hm.failures[event.IPAddress] = record
}

func (hm *HealthMonitor) setStatus(ctx context.Context, ip, status string) {
	changed, err := hm.devices.SetStatusByIP(ctx, ip, status)
	if err != nil {
		slog.Error("Failed to update device status",
			"component", "HealthMonitor",
			"ip_address", ip,
			"status", status,
			"error", err,
		)
		return
	}
	if changed {
		slog.Info("Device status changed", "component", "HealthMonitor", "ip_address", ip, "status", status)
	}
}
