package routes

import (
	"hostel-shop-api/handlers"
	"hostel-shop-api/middleware"
	"hostel-shop-api/response"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/health", handlers.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/login", h.Login)

		// Catalog (guest browsing)
		public.GET("/products", h.ListProducts)
		public.GET("/products/categories", h.ProductCategories)
		public.GET("/products/:id", h.GetProduct)
		public.GET("/categories", h.ListCategories)
		public.GET("/categories/:id", h.GetCategory)

		// Guest checkout and interaction tracking
		public.POST("/orders", h.PlaceOrder)
		public.POST("/analytics/track", h.TrackEvent)

		public.GET("/settings", h.GetSettings)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(h.Identity), middleware.AdminRequired())
	{
		admin.GET("/auth/me", h.Me)

		// Product management
		admin.POST("/products", h.CreateProduct)
		admin.POST("/products/upload-image", h.UploadImage)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)

		// Category management
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)

		// Order management
		admin.GET("/orders", h.ListOrders)
		admin.GET("/orders/:id", h.GetOrder)
		admin.PUT("/orders/:id/status", h.UpdateOrderStatus)

		// Dashboard
		admin.GET("/analytics/products", h.ProductAnalytics)
		admin.GET("/analytics/summary", h.AnalyticsSummary)

		admin.PUT("/settings", h.UpdateSettings)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})
}
