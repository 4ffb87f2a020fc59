package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rrinox/orcamentos/internal/service/catalog"
)

// CatalogHandler exposes the read-only product catalog.
type CatalogHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewCatalogHandler constructs the HTTP handler adapter.
func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// List returns every sellable product.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading product catalog", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load product catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
