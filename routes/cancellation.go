package routes

import (
	"roamly/handlers"
	"roamly/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterCancellationRoutes registers the public cancellation endpoints.
// They are unauthenticated (the claim itself is the proof of ownership),
// so the group is rate limited.
func RegisterCancellationRoutes(r *gin.Engine, h *handlers.CancellationHandler) {
	group := r.Group("/api/cancellation-requests")
	{
		group.Use(middleware.RateLimitMiddleware())
		group.POST("", h.CreateCancellationRequest)
		group.GET("/:id", h.GetCancellationRequest)
	}
}
