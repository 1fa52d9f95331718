package handlers

import (
	"net/http"

	"github.com/brendimo/spinwheel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles gift catalog HTTP requests
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GetWheel handles GET /catalog — the offerable pool the page renders,
// reserved tier already filtered out
func (h *CatalogHandler) GetWheel(c *gin.Context) {
	gifts, err := h.catalogService.WheelPool(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"gifts": gifts})
}

// UpdateWeightRequest is the admin payload for weight edits
type UpdateWeightRequest struct {
	Weight *float64 `json:"weight" binding:"required"`
}

// UpdateWeight handles PUT /catalog/:id/weight
func (h *CatalogHandler) UpdateWeight(c *gin.Context) {
	var request UpdateWeightRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.UpdateWeight(c.Request.Context(), c.Param("id"), *request.Weight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update weight: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
