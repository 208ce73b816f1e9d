package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/middleware"
	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

// LeadHandler handles the public inquiry form and the admin lead pipeline
type LeadHandler struct {
	leads  *services.LeadService
	logger *logrus.Logger
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leads *services.LeadService, logger *logrus.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, logger: logger}
}

// Create handles POST /api/v1/leads. Open to anonymous callers; a logged-in
// user's identity is attached when present.
func (h *LeadHandler) Create(c *gin.Context) {
	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var userID *string
	if id := c.GetString(middleware.ContextUserID); id != "" {
		userID = &id
	}

	lead, err := h.leads.CreateLead(userID, &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondCreated(c, gin.H{"lead": lead})
}

// Get handles GET /api/v1/leads/:id (admin)
func (h *LeadHandler) Get(c *gin.Context) {
	lead, err := h.leads.GetLead(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"lead": lead})
}

// List handles GET /api/v1/leads (admin)
func (h *LeadHandler) List(c *gin.Context) {
	page, limit := parsePage(c)
	filter := models.LeadFilter{
		Status:        models.LeadStatus(c.Query("status")),
		DestinationID: c.Query("destination_id"),
		Page:          page,
		Limit:         limit,
	}

	leads, total, err := h.leads.ListLeads(filter)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondList(c, "leads", leads, models.NewPagination(page, limit, total))
}

// UpdateStatus handles PATCH /api/v1/leads/:id/status (admin)
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.leads.UpdateStatus(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"lead": lead})
}
