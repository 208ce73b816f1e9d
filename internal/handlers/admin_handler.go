package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

// AdminHandler handles the dashboard and user management endpoints
type AdminHandler struct {
	reports *services.ReportService
	logger  *logrus.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(reports *services.ReportService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{reports: reports, logger: logger}
}

// Dashboard handles GET /api/v1/admin/stats
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.reports.GetDashboard()
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"stats": stats})
}

// RevenueSeries handles GET /api/v1/admin/revenue-chart
func (h *AdminHandler) RevenueSeries(c *gin.Context) {
	days := queryInt(c, "days", 30)

	series, err := h.reports.GetRevenueSeries(days)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"series": series})
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := parsePage(c)
	filter := models.UserFilter{
		Role:   models.Role(c.Query("role")),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := h.reports.ListUsers(filter)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondList(c, "users", users, models.NewPagination(page, limit, total))
}

// GetUser handles GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.reports.GetUser(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"user": user})
}

// SetUserBlocked handles PATCH /api/v1/admin/users/:id/block
func (h *AdminHandler) SetUserBlocked(c *gin.Context) {
	var req struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.reports.SetUserBlocked(c.Param("id"), *req.Blocked)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"user": user})
}
