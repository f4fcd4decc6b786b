package api

import (
	"log/slog"
	"net/http"

	"netinv/pkg/models"
	"netinv/pkg/topology"

	"github.com/gin-gonic/gin"
)

// RegisterTopologyRoutes mounts link listing, link management and the graph view
func RegisterTopologyRoutes(g *gin.RouterGroup, svc *topology.TopologyService) {
	r := g.Group("/topology")
	r.GET("", listLinksHandler(svc))
	r.GET("/", listLinksHandler(svc))
	r.GET("/links", rawLinksHandler(svc))
	r.POST("/links", createLinkHandler(svc))
	r.DELETE("/links/:id", deleteLinkHandler(svc))
	r.GET("/graph", graphHandler(svc))
	r.GET("/device/:id", deviceLinksHandler(svc))
}

func listLinksHandler(svc *topology.TopologyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := svc.ListLinks(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, links)
	}
}

// rawLinksHandler serves the same data as listLinksHandler but logs failures first
func rawLinksHandler(svc *topology.TopologyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := svc.ListLinks(c.Request.Context())
		if err != nil {
			slog.Error("Failed to list topology links", "component", "TopologyHandler", "error", err)
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, links)
	}
}

func createLinkHandler(svc *topology.TopologyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LinkCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		link, err := svc.CreateLink(c.Request.Context(), req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, link)
	}
}

func deleteLinkHandler(svc *topology.TopologyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		if err := svc.DeleteLink(c.Request.Context(), id); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
	}
}

func graphHandler(svc *topology.TopologyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		graph, err := svc.Graph(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, graph)
	}
}

func deviceLinksHandler(svc *topology.TopologyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}

		links, err := svc.DeviceLinks(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, links)
	}
}
