package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"netinv/pkg/database"
	"netinv/pkg/inventory"
	"netinv/pkg/metrics"
	"netinv/pkg/models"
	"netinv/pkg/topology"

	"github.com/gin-gonic/gin"
)

// Pinger reports database liveness
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Dependencies are the services the router dispatches to
type Dependencies struct {
	Devices  *inventory.DeviceService
	Sites    database.Repository[models.Site]
	Topology *topology.TopologyService
	Prober   Prober
	Metrics  *metrics.Metrics // optional
	DB       Pinger           // optional
}

// NewRouter builds the gin engine with every route mounted under prefix.
// It fails when the custom binding rules cannot be installed.
func NewRouter(prefix string, deps Dependencies) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())

	if deps.Metrics != nil {
		router.Use(deps.Metrics.HTTPMiddleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.GET("/health", healthHandler(deps.DB))

	apiGroup := router.Group(prefix)
	{
		RegisterProbeRoutes(apiGroup, deps.Prober)
		RegisterDeviceRoutes(apiGroup, deps.Devices)
		RegisterInterfaceRoutes(apiGroup, deps.Devices)
		RegisterStatsRoutes(apiGroup, deps.Devices)
		RegisterTopologyRoutes(apiGroup, deps.Topology)
		NewCrudHandler[models.Site, models.SiteCreate, models.SitePatch](deps.Sites, "Site").
			RegisterRoutes(apiGroup, "/sites")
	}

	return router, nil
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "unknown"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			slog.Warn("Database ping failed", "component", "API", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
	}
}
