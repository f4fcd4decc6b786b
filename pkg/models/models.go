package models

import (
	"time"
)

// Device status values
const (
	StatusUnknown = "unknown"
	StatusUp      = "up"
	StatusDown    = "down"
)

// Device represents the devices table
type Device struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Hostname      string    `gorm:"not null" json:"hostname"`
	IPAddress     string    `gorm:"not null;uniqueIndex" json:"ip_address"`
	SiteID        *int64    `gorm:"index" json:"site_id"`
	DeviceType    string    `json:"device_type"`
	Vendor        string    `json:"vendor"`
	Model         string    `json:"model"`
	OSVersion     string    `json:"os_version"`
	Status        string    `gorm:"default:'unknown'" json:"status"`
	SNMPVersion   string    `gorm:"default:'v2c'" json:"snmp_version"`
	SNMPCommunity string    `gorm:"default:'public'" json:"snmp_community"`
	SSHEnabled    bool      `gorm:"default:false" json:"ssh_enabled"`
	SSHUsername   string    `json:"ssh_username"`
	SSHPassword   string    `json:"-"` // gocrypt ciphertext, see database.SealSSHPassword
	SSHPort       int       `gorm:"default:22" json:"ssh_port"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DeviceCreate is the request body accepted when adding a device.
type DeviceCreate struct {
	Hostname      string `json:"hostname" binding:"required"`
	IPAddress     string `json:"ip_address" binding:"required,ip"`
	SiteID        *int64 `json:"site_id"`
	DeviceType    string `json:"device_type"`
	Vendor        string `json:"vendor"`
	Model         string `json:"model"`
	OSVersion     string `json:"os_version"`
	SNMPVersion   string `json:"snmp_version" binding:"omitempty,snmpversion"`
	SNMPCommunity string `json:"snmp_community"`
	SSHEnabled    bool   `json:"ssh_enabled"`
	SSHUsername   string `json:"ssh_username"`
	SSHPassword   string `json:"ssh_password"`
	SSHPort       int    `json:"ssh_port" binding:"omitempty,min=1,max=65535"`
}

// Defaults applied to a created device when the payload leaves them empty.
const (
	DefaultSNMPVersion   = "v2c"
	DefaultSNMPCommunity = "public"
	DefaultSSHPort       = 22
)

// ToDevice converts the create payload into a Device row.
func (d DeviceCreate) ToDevice() Device {
	device := Device{
		Hostname:      d.Hostname,
		IPAddress:     d.IPAddress,
		SiteID:        d.SiteID,
		DeviceType:    d.DeviceType,
		Vendor:        d.Vendor,
		Model:         d.Model,
		OSVersion:     d.OSVersion,
		SNMPVersion:   d.SNMPVersion,
		SNMPCommunity: d.SNMPCommunity,
		SSHEnabled:    d.SSHEnabled,
		SSHUsername:   d.SSHUsername,
		SSHPassword:   d.SSHPassword,
		SSHPort:       d.SSHPort,
		Status:        StatusUnknown,
	}
	if device.SNMPVersion == "" {
		device.SNMPVersion = DefaultSNMPVersion
	}
	if device.SNMPCommunity == "" {
		device.SNMPCommunity = DefaultSNMPCommunity
	}
	if device.SSHPort == 0 {
		device.SSHPort = DefaultSSHPort
	}
	return device
}

// DevicePatch holds the updatable device columns. A nil field is left untouched;
// site_id also accepts null to unassign the device from its site.
type DevicePatch struct {
	SiteID        NullableID `json:"site_id"`
	Hostname      *string    `json:"hostname"`
	DeviceType    *string    `json:"device_type"`
	SNMPCommunity *string    `json:"snmp_community"`
	SSHEnabled    *bool      `json:"ssh_enabled"`
	SSHUsername   *string    `json:"ssh_username"`
}

// Columns returns the column -> value map of the fields present in the patch.
func (p DevicePatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.SiteID.Set {
		cols["site_id"] = p.SiteID.column()
	}
	if p.Hostname != nil {
		cols["hostname"] = *p.Hostname
	}
	if p.DeviceType != nil {
		cols["device_type"] = *p.DeviceType
	}
	if p.SNMPCommunity != nil {
		cols["snmp_community"] = *p.SNMPCommunity
	}
	if p.SSHEnabled != nil {
		cols["ssh_enabled"] = *p.SSHEnabled
	}
	if p.SSHUsername != nil {
		cols["ssh_username"] = *p.SSHUsername
	}
	return cols
}

// Interface represents the interfaces table
type Interface struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DeviceID      int64      `gorm:"not null;index" json:"device_id"`
	InterfaceName string     `gorm:"not null" json:"interface_name"`
	Description   string     `json:"description"`
	MACAddress    string     `json:"mac_address"`
	MTU           int        `json:"mtu"`
	SpeedBps      int64      `json:"speed_bps"`
	Status        string     `gorm:"default:'unknown'" json:"status"`
	InputErrors   int64      `json:"input_errors"`
	OutputErrors  int64      `json:"output_errors"`
	CRCErrors     int64      `json:"crc_errors"`
	LastUpdated   *time.Time `json:"last_updated"`
}

// InterfaceStats represents the interface_stats table
type InterfaceStats struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	InterfaceID int64     `gorm:"not null;index" json:"interface_id"`
	InOctets    int64     `json:"in_octets"`
	OutOctets   int64     `json:"out_octets"`
	InErrors    int64     `json:"in_errors"`
	OutErrors   int64     `json:"out_errors"`
	InDiscards  int64     `json:"in_discards"`
	OutDiscards int64     `json:"out_discards"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
}

// TopologyLink represents the topology_links table.
// A nil DstDeviceID marks a neighbor that is not in the inventory.
type TopologyLink struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SrcDeviceID  int64     `gorm:"not null;index" json:"src_device_id"`
	SrcInterface string    `json:"src_interface"`
	DstDeviceID  *int64    `gorm:"index" json:"dst_device_id"`
	DstInterface string    `json:"dst_interface"`
	DstHostname  string    `json:"dst_hostname"`
	LastSeen     time.Time `json:"last_seen"`
}

// LinkCreate is the request body for recording a discovered link.
type LinkCreate struct {
	SrcDeviceID  int64      `json:"src_device_id" binding:"required,min=1"`
	SrcInterface string     `json:"src_interface"`
	DstDeviceID  *int64     `json:"dst_device_id" binding:"omitempty,min=1"`
	DstInterface string     `json:"dst_interface"`
	DstHostname  string     `json:"dst_hostname"`
	LastSeen     *time.Time `json:"last_seen"`
}

// LinkView is a topology link enriched with the hostnames of both ends.
type LinkView struct {
	TopologyLink
	SrcDeviceName *string `json:"src_device_name"`
	DstDeviceName *string `json:"dst_device_name"`
}

// TableName overrides the default table name logic
func (Device) TableName() string         { return "devices" }
func (Interface) TableName() string      { return "interfaces" }
func (InterfaceStats) TableName() string { return "interface_stats" }
func (TopologyLink) TableName() string   { return "topology_links" }
