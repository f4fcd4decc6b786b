package api

import (
	"errors"
	"fmt"
	"net/http"

	"netinv/pkg/database"
	"netinv/pkg/models"

	"github.com/gin-gonic/gin"
)

// Creator turns a create request body into a row
type Creator[T any] interface {
	ToModel() T
}

// Patcher turns an update request body into the columns to write
type Patcher interface {
	Columns() map[string]any
}

// CrudHandler handles CRUD requests for a generic type.
// C is the create body and U the partial update body.
type CrudHandler[T any, C Creator[T], U Patcher] struct {
	Repo database.Repository[T]
	Name string // shown in client messages, e.g. "Site not found"
}

// NewCrudHandler creates a new handler
func NewCrudHandler[T any, C Creator[T], U Patcher](repo database.Repository[T], name string) *CrudHandler[T, C, U] {
	return &CrudHandler[T, C, U]{Repo: repo, Name: name}
}

// RegisterRoutes registers the CRUD routes
func (h *CrudHandler[T, C, U]) RegisterRoutes(r *gin.RouterGroup, path string) {
	g := r.Group(path)
	{
		g.GET("", h.List)
		g.GET("/", h.List)
		g.GET("/:id", h.Get)
		g.POST("", h.Create)
		g.POST("/", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

// List returns all records
func (h *CrudHandler[T, C, U]) List(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns a single record
func (h *CrudHandler[T, C, U]) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	item, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create creates a new record
func (h *CrudHandler[T, C, U]) Create(c *gin.Context) {
	var body C
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entity := body.ToModel()
	created, err := h.Repo.Create(c.Request.Context(), &entity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update writes the fields present in the body
func (h *CrudHandler[T, C, U]) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var body U
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Repo.Update(c.Request.Context(), id, body.Columns())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a record
func (h *CrudHandler[T, C, U]) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s %d deleted successfully", h.Name, id)})
}

// respondError names the resource in not-found and duplicate messages
func (h *CrudHandler[T, C, U]) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		err = models.NotFound(h.Name + " not found")
	case errors.Is(err, models.ErrConflict):
		err = models.Conflict(h.Name + " already exists")
	}
	respondServiceError(c, err)
}
