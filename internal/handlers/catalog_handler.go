package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

// CatalogHandler handles the public browse endpoints and admin catalog writes
type CatalogHandler struct {
	catalog *services.CatalogService
	logger  *logrus.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *services.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// ListDestinations handles GET /api/v1/destinations
func (h *CatalogHandler) ListDestinations(c *gin.Context) {
	destinations, err := h.catalog.ListDestinations(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"destinations": destinations})
}

// GetDestination handles GET /api/v1/destinations/:slug
// Accepts either a destination slug or its id.
func (h *CatalogHandler) GetDestination(c *gin.Context) {
	id := c.Param("slug")

	destination, err := h.catalog.GetDestination(id)
	if err != nil {
		destination, err = h.catalog.GetDestinationBySlug(id)
	}
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"destination": destination})
}

// CreateDestination handles POST /api/v1/destinations (admin)
func (h *CatalogHandler) CreateDestination(c *gin.Context) {
	var input models.DestinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	destination, err := h.catalog.CreateDestination(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondCreated(c, gin.H{"destination": destination})
}

// UpdateDestination handles PUT /api/v1/destinations/:slug (admin, by id)
func (h *CatalogHandler) UpdateDestination(c *gin.Context) {
	var input models.DestinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	destination, err := h.catalog.UpdateDestination(c.Request.Context(), c.Param("slug"), &input)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"destination": destination})
}

// ListPackages handles GET /api/v1/destinations/:slug/packages (by id)
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.catalog.ListPackages(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"packages": packages})
}

// ListAllPackages handles GET /api/v1/packages
func (h *CatalogHandler) ListAllPackages(c *gin.Context) {
	packages, err := h.catalog.ListAllPackages()
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"packages": packages})
}

// GetPackage handles GET /api/v1/packages/:id
func (h *CatalogHandler) GetPackage(c *gin.Context) {
	pkg, err := h.catalog.GetPackage(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"package": pkg})
}

// CreatePackage handles POST /api/v1/packages (admin)
func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var input models.PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	pkg, err := h.catalog.CreatePackage(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondCreated(c, gin.H{"package": pkg})
}

// UpdatePackage handles PUT /api/v1/packages/:id (admin)
func (h *CatalogHandler) UpdatePackage(c *gin.Context) {
	var input models.PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	pkg, err := h.catalog.UpdatePackage(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"package": pkg})
}

// ListAddOns handles GET /api/v1/destinations/:slug/addons (by id)
func (h *CatalogHandler) ListAddOns(c *gin.Context) {
	addons, err := h.catalog.ListAddOns(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"addons": addons})
}

// ListAddOnsByQuery handles GET /api/v1/addons?destination=:id
func (h *CatalogHandler) ListAddOnsByQuery(c *gin.Context) {
	destinationID := c.Query("destination")
	if destinationID == "" {
		respondError(c, http.StatusBadRequest, "destination query parameter is required")
		return
	}

	addons, err := h.catalog.ListAddOns(c.Request.Context(), destinationID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"addons": addons})
}
