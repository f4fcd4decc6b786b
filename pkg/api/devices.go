package api

import (
	"fmt"
	"net/http"

	"netinv/pkg/inventory"
	"netinv/pkg/models"

	"github.com/gin-gonic/gin"
)

// RegisterDeviceRoutes mounts device CRUD and the per-device lookups
func RegisterDeviceRoutes(g *gin.RouterGroup, svc *inventory.DeviceService) {
	r := g.Group("/devices")
	r.GET("", listDevicesHandler(svc))
	r.GET("/", listDevicesHandler(svc))
	r.POST("", createDeviceHandler(svc))
	r.POST("/", createDeviceHandler(svc))
	r.GET("/:id", getDeviceHandler(svc))
	r.PUT("/:id", updateDeviceHandler(svc))
	r.DELETE("/:id", deleteDeviceHandler(svc))
	r.GET("/:id/interfaces", deviceInterfacesHandler(svc))
	r.GET("/:id/stats", deviceStatsHandler(svc))
}

// RegisterInterfaceRoutes mounts the single interface lookups
func RegisterInterfaceRoutes(g *gin.RouterGroup, svc *inventory.DeviceService) {
	r := g.Group("/interfaces")
	r.GET("/:id", getInterfaceHandler(svc))
	r.GET("/:id/stats", interfaceStatsHandler(svc))
}

// RegisterStatsRoutes mounts the inventory-wide stats reads
func RegisterStatsRoutes(g *gin.RouterGroup, svc *inventory.DeviceService) {
	r := g.Group("/stats")
	r.GET("/latest", latestStatsHandler(svc))
}

func listDevicesHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		devices, err := svc.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, devices)
	}
}

func createDeviceHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DeviceCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		device, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, device)
	}
}

func getDeviceHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		device, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, device)
	}
}

func updateDeviceHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		var patch models.DevicePatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		device, err := svc.Update(c.Request.Context(), id, patch)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, device)
	}
}

func deleteDeviceHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		device, err := svc.Delete(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Device %s deleted successfully", device.Hostname)})
	}
}

func deviceInterfacesHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		interfaces, err := svc.Interfaces(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, interfaces)
	}
}

func deviceStatsHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		stats, err := svc.Stats(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func getInterfaceHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		iface, err := svc.Interface(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, iface)
	}
}

func interfaceStatsHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		stats, err := svc.InterfaceStats(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func latestStatsHandler(svc *inventory.DeviceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.LatestStats(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
