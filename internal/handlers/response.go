package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

// respondOK writes a 200 envelope
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondCreated writes a 201 envelope
func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// respondList writes a 200 envelope with a pagination block
func respondList(c *gin.Context, key string, items interface{}, pagination models.Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			key:          items,
			"pagination": pagination,
		},
	})
}

// respondError writes a failure envelope
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondServiceError maps service errors to HTTP statuses. Unrecognized
// errors are logged and surfaced as a generic 500.
func respondServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var gwErr *errs.GatewayError

	switch {
	case errs.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case errs.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		respondError(c, http.StatusForbidden, "you do not have access to this resource")
	case errors.Is(err, errs.ErrPaymentVerification):
		respondError(c, http.StatusBadRequest, "payment verification failed")
	case errors.As(err, &gwErr):
		respondError(c, http.StatusBadGateway, "payment gateway is unavailable, please try again")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrAccountBlocked):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
		respondError(c, http.StatusInternalServerError, "something went wrong")
	}
}

// parsePage reads page/limit query params with defaults
func parsePage(c *gin.Context) (int, int) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	return n
}
