package routes

import (
	"net/http"
	"time"

	"roamly/handlers"
	"roamly/middleware"
	"roamly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "deps": utils.GetHealthStatus()})
	})
}

// RegisterAdminRoutes sets up endpoints for the admin-processing side.
func RegisterAdminRoutes(r *gin.Engine, h *handlers.AdminCancellationHandler) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware())
		adminGroup.GET("/cancellation-requests", h.ListCancellationRequests)
		adminGroup.POST("/cancellation-requests/:id/process", h.ProcessCancellationRequest)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, cancellation *handlers.CancellationHandler, adminH *handlers.AdminCancellationHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCancellationRoutes(r, cancellation)
	RegisterAdminRoutes(r, adminH)
	RegisterHealthRoute(r)
}
