package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/pkg/jwt"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// UserLoader looks up accounts for the blocked check.
type UserLoader interface {
	GetByID(userID string) (*models.User, error)
}

// AuthMiddleware authenticates requests from the Authorization header
type AuthMiddleware struct {
	tokens *jwt.Manager
	users  UserLoader
	logger *logrus.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens *jwt.Manager, users UserLoader, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// RequireAuth rejects requests without a valid bearer token. Blocked
// accounts are rejected even when their token is still valid.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "authentication required",
			})
			return
		}

		user, err := m.users.GetByID(claims.UserID)
		if err != nil || user.IsBlocked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "account is not active",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present but lets
// anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.parseToken(c); ok {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserEmail, claims.Email)
			c.Set(ContextUserRole, claims.Role)
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role != string(models.RoleAdmin) && role != string(models.RoleSuperAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "admin access required",
			})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) parseToken(c *gin.Context) (*jwt.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	claims, err := m.tokens.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

// IsAdminRequest reports whether the current request carries an admin role.
func IsAdminRequest(c *gin.Context) bool {
	role := c.GetString(ContextUserRole)
	return role == string(models.RoleAdmin) || role == string(models.RoleSuperAdmin)
}
