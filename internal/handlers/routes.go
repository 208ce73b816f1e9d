package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gotravel/gotravel-backend/internal/middleware"
)

// Handlers bundles the route handlers for registration
type Handlers struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Lead    *LeadHandler
	Admin   *AdminHandler
}

// RegisterRoutes mounts all routes on the router
func RegisterRoutes(router *gin.Engine, h *Handlers, auth *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	requireAuth := auth.RequireAuth()
	requireAdmin := auth.RequireAdmin()

	// Auth
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)
	v1.GET("/user/profile", requireAuth, h.Auth.GetProfile)
	v1.PUT("/user/profile", requireAuth, h.Auth.UpdateProfile)

	// Catalog; :slug also accepts a destination id
	v1.GET("/destinations", h.Catalog.ListDestinations)
	v1.GET("/destinations/:slug", h.Catalog.GetDestination)
	v1.GET("/destinations/:slug/packages", h.Catalog.ListPackages)
	v1.GET("/destinations/:slug/addons", h.Catalog.ListAddOns)
	v1.POST("/destinations", requireAuth, requireAdmin, h.Catalog.CreateDestination)
	v1.PUT("/destinations/:slug", requireAuth, requireAdmin, h.Catalog.UpdateDestination)

	v1.GET("/packages", h.Catalog.ListAllPackages)
	v1.GET("/packages/:id", h.Catalog.GetPackage)
	v1.POST("/packages", requireAuth, requireAdmin, h.Catalog.CreatePackage)
	v1.PUT("/packages/:id", requireAuth, requireAdmin, h.Catalog.UpdatePackage)

	v1.GET("/addons", h.Catalog.ListAddOnsByQuery)

	// Bookings
	v1.POST("/bookings", requireAuth, h.Booking.Create)
	v1.GET("/bookings/my", requireAuth, h.Booking.ListMine)
	v1.GET("/bookings/ref/:ref", requireAuth, h.Booking.GetByReference)
	v1.GET("/bookings/:id", requireAuth, h.Booking.Get)
	v1.POST("/bookings/:id/verify-payment", requireAuth, h.Booking.ConfirmPayment)
	v1.GET("/bookings", requireAuth, requireAdmin, h.Booking.ListAll)
	v1.PATCH("/bookings/:id/status", requireAuth, requireAdmin, h.Booking.UpdateStatus)

	// Payments
	v1.POST("/payments/create-order", requireAuth, h.Payment.CreateOrder)
	v1.POST("/payments/verify", requireAuth, h.Payment.Verify)

	// Leads
	v1.POST("/leads", auth.OptionalAuth(), h.Lead.Create)
	v1.GET("/leads", requireAuth, requireAdmin, h.Lead.List)
	v1.GET("/leads/:id", requireAuth, requireAdmin, h.Lead.Get)
	v1.PATCH("/leads/:id/status", requireAuth, requireAdmin, h.Lead.UpdateStatus)

	// Admin reporting and user management
	admin := v1.Group("/admin", requireAuth, requireAdmin)
	{
		admin.GET("/stats", h.Admin.Dashboard)
		admin.GET("/revenue-chart", h.Admin.RevenueSeries)
		admin.GET("/users", h.Admin.ListUsers)
		admin.GET("/users/:id", h.Admin.GetUser)
		admin.PATCH("/users/:id/block", h.Admin.SetUserBlocked)
	}
}
