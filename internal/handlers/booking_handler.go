package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/middleware"
	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

// BookingHandler handles the booking and payment confirmation endpoints
type BookingHandler struct {
	bookings *services.BookingService
	logger   *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bookings.CreateBooking(c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondCreated(c, result)
}

// ConfirmPayment handles POST /api/v1/bookings/:id/verify-payment
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.ConfirmPayment(
		c.Param("id"),
		c.GetString(middleware.ContextUserID),
		middleware.IsAdminRequest(c),
		&req,
	)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"booking": booking})
}

// Get handles GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookings.GetBooking(
		c.Param("id"),
		c.GetString(middleware.ContextUserID),
		middleware.IsAdminRequest(c),
	)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"booking": booking})
}

// GetByReference handles GET /api/v1/bookings/ref/:ref
func (h *BookingHandler) GetByReference(c *gin.Context) {
	booking, err := h.bookings.GetBookingByReference(
		c.Param("ref"),
		c.GetString(middleware.ContextUserID),
		middleware.IsAdminRequest(c),
	)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"booking": booking})
}

// ListMine handles GET /api/v1/bookings/my
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.bookings.ListUserBookings(c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"bookings": bookings})
}

// ListAll handles GET /api/v1/bookings (admin)
func (h *BookingHandler) ListAll(c *gin.Context) {
	page, limit := parsePage(c)
	filter := models.BookingFilter{
		Status:        models.BookingStatus(c.Query("status")),
		PaymentStatus: models.PaymentStatus(c.Query("payment_status")),
		DestinationID: c.Query("destination_id"),
		Page:          page,
		Limit:         limit,
	}

	bookings, total, err := h.bookings.ListBookings(filter)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondList(c, "bookings", bookings, models.NewPagination(page, limit, total))
}

// UpdateStatus handles PATCH /api/v1/bookings/:id/status (admin)
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.UpdateStatus(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"booking": booking})
}
