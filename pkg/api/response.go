package api

import (
	"errors"
	"net/http"
	"strconv"

	"netinv/pkg/models"

	"github.com/gin-gonic/gin"
)

// respondError sends a structured JSON error response
func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"error": gin.H{
			"message": message,
			"status":  code,
		},
	})
	c.Abort()
}

// respondServiceError maps a service error kind onto its HTTP status
func respondServiceError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrBadRequest):
		code = http.StatusBadRequest
	}
	respondError(c, code, err.Error())
}

// paramID parses the :id path parameter, answering 400 when it is not an integer
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
