package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/middleware"
	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	auth   *services.AuthService
	logger *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, tokens, err := h.auth.Register(&req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondCreated(c, gin.H{"user": user, "tokens": tokens})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, tokens, err := h.auth.Login(&req, describeDevice(c.GetHeader("User-Agent")))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"user": user, "tokens": tokens})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	respondOK(c, gin.H{"tokens": tokens})
}

// GetProfile handles GET /api/v1/user/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.auth.GetProfile(c.GetString(middleware.ContextUserID))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"user": user})
}

// UpdateProfile handles PUT /api/v1/user/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.UpdateProfile(c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"user": user})
}

// describeDevice condenses a User-Agent header into a short device label
func describeDevice(uaHeader string) string {
	if uaHeader == "" {
		return "unknown"
	}

	ua := user_agent.New(uaHeader)
	browser, version := ua.Browser()
	device := browser + " " + version + " on " + ua.OS()
	if ua.Mobile() {
		device += " (mobile)"
	}
	return device
}
