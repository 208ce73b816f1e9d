package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/middleware"
	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

// PaymentHandler exposes the payment-centric routes the checkout UI uses
type PaymentHandler struct {
	bookings *services.BookingService
	logger   *logrus.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(bookings *services.BookingService, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{bookings: bookings, logger: logger}
}

// CreateOrder handles POST /api/v1/payments/create-order. Returns the
// gateway order for a pending booking so the client can reopen checkout.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bookings.GetPaymentOrder(
		req.BookingID,
		c.GetString(middleware.ContextUserID),
		middleware.IsAdminRequest(c),
	)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, result)
}

// Verify handles POST /api/v1/payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req struct {
		BookingID string `json:"booking_id" binding:"required"`
		models.VerifyPaymentRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookings.ConfirmPayment(
		req.BookingID,
		c.GetString(middleware.ContextUserID),
		middleware.IsAdminRequest(c),
		&req.VerifyPaymentRequest,
	)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"booking": booking})
}
