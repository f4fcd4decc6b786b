package api

import (
	"context"
	"net/http"

	"netinv/pkg/models"

	"github.com/gin-gonic/gin"
)

// Prober runs the reachability checks behind the test endpoints
type Prober interface {
	Connectivity(ctx context.Context, ip string) models.ConnectivityResponse
	SSH(ctx context.Context, ip string, port int) models.SSHTestResponse
	SNMP(ctx context.Context, ip, community string, port int) (models.SNMPTestResponse, error)
}

// RegisterProbeRoutes mounts the reachability tests under /devices/test
func RegisterProbeRoutes(g *gin.RouterGroup, prober Prober) {
	r := g.Group("/devices/test")
	r.POST("/connectivity", connectivityHandler(prober))
	r.POST("/snmp", snmpTestHandler(prober))
	r.POST("/ssh", sshTestHandler(prober))
}

func connectivityHandler(prober Prober) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ConnectivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "IP address required")
			return
		}
		c.JSON(http.StatusOK, prober.Connectivity(c.Request.Context(), req.IPAddress))
	}
}

func snmpTestHandler(prober Prober) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SNMPTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		resp, err := prober.SNMP(c.Request.Context(), req.IPAddress, req.Community, req.Port)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func sshTestHandler(prober Prober) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SSHTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, prober.SSH(c.Request.Context(), req.IPAddress, req.Port))
	}
}
