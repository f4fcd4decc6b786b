package inventory

import (
	"context"
	"testing"
	"time"

	"netinv/pkg/config"
	"netinv/pkg/database"
	"netinv/pkg/models"

	"github.com/firdasafridi/gocrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testKey = "1234567890123456789012345678901212345678901234567890123456789012"

func newTestService(t *testing.T) (*DeviceService, *gorm.DB, chan models.Event) {
	t.Helper()
	db, err := database.Connect(&config.Config{DBDriver: "sqlite", DBSQLitePath: ":memory:", DBLogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	events := make(chan models.Event, 16)
	return NewDeviceService(db, testKey, events), db, events
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, events := newTestService(t)

	device, err := svc.Create(context.Background(), models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	assert.NotZero(t, device.ID)
	assert.Equal(t, models.StatusUnknown, device.Status)
	assert.Equal(t, "v2c", device.SNMPVersion)
	assert.Equal(t, "public", device.SNMPCommunity)
	assert.Equal(t, 22, device.SSHPort)
	assert.False(t, device.SSHEnabled)

	require.Len(t, events, 1)
	assert.Equal(t, models.EventCreate, (<-events).Type)
}

func TestCreateDuplicateIPIsConflict(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, models.DeviceCreate{Hostname: "r1-again", IPAddress: "10.0.0.1"})
	require.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, "Device with this IP already exists", err.Error())

	var count int64
	require.NoError(t, db.Model(&models.Device{}).Where("ip_address = ?", "10.0.0.1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateEncryptsSSHPassword(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	device, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1", SSHPassword: "hunter2"})
	require.NoError(t, err)

	var stored models.Device
	require.NoError(t, db.First(&stored, device.ID).Error)
	assert.NotEqual(t, "hunter2", stored.SSHPassword)
	assert.NotEmpty(t, stored.SSHPassword)

	aesOpt, err := gocrypt.NewAESOpt(testKey)
	require.NoError(t, err)
	secrets := database.DeviceSecrets{SSHPassword: stored.SSHPassword}
	require.NoError(t, gocrypt.New(&gocrypt.Option{AESOpt: aesOpt}).Decrypt(&secrets))
	assert.Equal(t, "hunter2", secrets.SSHPassword)
}

func TestListOrderedByID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, ip := range []string{"10.0.0.3", "10.0.0.1", "10.0.0.2"} {
		_, err := svc.Create(ctx, models.DeviceCreate{Hostname: "h-" + ip, IPAddress: ip})
		require.NoError(t, err)
	}

	devices, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 3)
	assert.Less(t, devices[0].ID, devices[1].ID)
	assert.Less(t, devices[1].ID, devices[2].ID)
	assert.Equal(t, "10.0.0.3", devices[0].IPAddress)
}

func TestGetMissing(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 7)
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "Device not found", err.Error())
}

func TestUpdateWritesOnlyPresentFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.DeviceCreate{
		Hostname:    "r1",
		IPAddress:   "10.0.0.1",
		Vendor:      "juniper",
		SSHEnabled:  true,
		SSHUsername: "admin",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, models.DevicePatch{
		Hostname:   strPtr("r1-core"),
		SSHEnabled: boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "r1-core", updated.Hostname)
	assert.False(t, updated.SSHEnabled)
	assert.Equal(t, "juniper", updated.Vendor)
	assert.Equal(t, "admin", updated.SSHUsername)
	assert.Equal(t, "10.0.0.1", updated.IPAddress)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateEmptyPatchAndMissing(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	same, err := svc.Update(ctx, created.ID, models.DevicePatch{})
	require.NoError(t, err)
	assert.Equal(t, created.Hostname, same.Hostname)

	_, err = svc.Update(ctx, 999, models.DevicePatch{Hostname: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, events := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	<-events

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "r1", deleted.Hostname)

	require.Len(t, events, 1)
	ev := <-events
	assert.Equal(t, models.EventDelete, ev.Type)
	assert.Equal(t, "10.0.0.1", ev.Payload.(*models.Device).IPAddress)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteMissingLeavesTableUnchanged(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	devices, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestInterfacesAndStats(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	r1, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	r2, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r2", IPAddress: "10.0.0.2"})
	require.NoError(t, err)

	if1 := models.Interface{DeviceID: r1.ID, InterfaceName: "ge-0/0/0"}
	if2 := models.Interface{DeviceID: r2.ID, InterfaceName: "eth0"}
	require.NoError(t, db.Create(&if1).Error)
	require.NoError(t, db.Create(&if2).Error)
	require.NoError(t, db.Create(&models.InterfaceStats{InterfaceID: if1.ID, InOctets: 5, Timestamp: time.Now()}).Error)
	require.NoError(t, db.Create(&models.InterfaceStats{InterfaceID: if2.ID, InOctets: 9, Timestamp: time.Now()}).Error)

	interfaces, err := svc.Interfaces(ctx, r1.ID)
	require.NoError(t, err)
	require.Len(t, interfaces, 1)
	assert.Equal(t, "ge-0/0/0", interfaces[0].InterfaceName)

	stats, err := svc.Stats(ctx, r1.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(5), stats[0].InOctets)

	_, err = svc.Interfaces(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.Stats(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	iface, err := svc.Interface(ctx, if2.ID)
	require.NoError(t, err)
	assert.Equal(t, r2.ID, iface.DeviceID)

	ifStats, err := svc.InterfaceStats(ctx, if2.ID)
	require.NoError(t, err)
	require.Len(t, ifStats, 1)
	assert.Equal(t, int64(9), ifStats[0].InOctets)

	_, err = svc.Interface(ctx, 999)
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "Interface not found", err.Error())
	_, err = svc.InterfaceStats(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func seedSite(t *testing.T, db *gorm.DB, name string) *models.Site {
	t.Helper()
	site := models.SiteCreate{SiteName: name}.ToModel()
	require.NoError(t, db.Create(&site).Error)
	return &site
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateChecksSite(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	site := seedSite(t, db, "HQ")

	device, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1", SiteID: int64Ptr(site.ID)})
	require.NoError(t, err)
	require.NotNil(t, device.SiteID)
	assert.Equal(t, site.ID, *device.SiteID)

	_, err = svc.Create(ctx, models.DeviceCreate{Hostname: "r2", IPAddress: "10.0.0.2", SiteID: int64Ptr(999)})
	require.ErrorIs(t, err, models.ErrBadRequest)
	assert.Equal(t, "Site not found", err.Error())
}

func TestUpdateAssignsAndClearsSite(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()
	site := seedSite(t, db, "HQ")

	created, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	assert.Nil(t, created.SiteID)

	assigned, err := svc.Update(ctx, created.ID, models.DevicePatch{SiteID: models.SetID(site.ID)})
	require.NoError(t, err)
	require.NotNil(t, assigned.SiteID)
	assert.Equal(t, site.ID, *assigned.SiteID)

	// Absent site_id keeps the assignment.
	renamed, err := svc.Update(ctx, created.ID, models.DevicePatch{Hostname: strPtr("r1-core")})
	require.NoError(t, err)
	require.NotNil(t, renamed.SiteID)

	cleared, err := svc.Update(ctx, created.ID, models.DevicePatch{SiteID: models.ClearID()})
	require.NoError(t, err)
	assert.Nil(t, cleared.SiteID)
	assert.Equal(t, "r1-core", cleared.Hostname)

	_, err = svc.Update(ctx, created.ID, models.DevicePatch{SiteID: models.SetID(999)})
	require.ErrorIs(t, err, models.ErrBadRequest)
	assert.Equal(t, "Site not found", err.Error())
}

func TestLatestStats(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	r1, err := svc.Create(ctx, models.DeviceCreate{Hostname: "r1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	iface := models.Interface{DeviceID: r1.ID, InterfaceName: "ge-0/0/0"}
	require.NoError(t, db.Create(&iface).Error)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.InterfaceStats{InterfaceID: iface.ID, InOctets: 1, Timestamp: base}).Error)
	require.NoError(t, db.Create(&models.InterfaceStats{InterfaceID: iface.ID, InOctets: 2, Timestamp: base.Add(time.Minute)}).Error)

	latest, err := svc.LatestStats(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, int64(2), latest[0].InOctets)
}
