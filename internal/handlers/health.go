package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	databaseEnabled bool
}

func NewHealthHandler(databaseEnabled bool) *HealthHandler {
	return &HealthHandler{databaseEnabled: databaseEnabled}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"message":  "Cars info API is healthy",
		"database": h.databaseEnabled,
	})
}
