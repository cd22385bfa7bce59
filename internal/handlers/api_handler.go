package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/xconsult/internal/dtos"
	"github.com/justsurfingit/xconsult/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// HealthCheck is GET /api/v1/health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListServices is GET /api/v1/services[?all=true]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	var req dtos.CatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"services":  h.Catalog.All(),
		"displayed": h.Catalog.Displayed(req.All),
		"has_more":  h.Catalog.HasMore(),
	})
}

// SearchServices is GET /api/v1/services/search?q=
func (h *CatalogHandler) SearchServices(c *gin.Context) {
	var req dtos.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":       req.Query,
		"suggestions": h.Catalog.Search(req.Query),
	})
}

// SelectService is GET /api/v1/services/select?service=
func (h *CatalogHandler) SelectService(c *gin.Context) {
	var req dtos.SelectRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service is required"})
		return
	}
	target, err := h.Catalog.Select(req.Service)
	if err != nil {
		c.JSON(selectStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": target})
}
