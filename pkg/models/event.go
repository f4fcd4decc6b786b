package models

import "time"

// EventType defines the type of event.
type EventType string

const (
	EventCreate EventType = "create"
	EventDelete EventType = "delete"

	// Reachability probe outcome
	EventProbeResult EventType = "probe_result"
)

// Event carries a device change or probe outcome to the health monitor.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// ProbeResultEvent reports whether a probed address answered.
type ProbeResultEvent struct {
	IPAddress string
	Probe     string // connectivity, snmp, ssh
	Reachable bool
	Timestamp time.Time
}
