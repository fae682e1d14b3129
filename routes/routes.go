package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"carenow/handlers"
)

// RegisterJobRoutes registers booking intake plus partner job queries and
// lifecycle actions.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle, partnerAuth, serviceAuth gin.HandlerFunc) {
	// Booking intake is called service-to-service when a booking is assigned;
	// the caller authenticates with the shared service secret.
	r.POST("/api/jobs", serviceAuth, hb.CreateJobHandler)

	api := r.Group("/api/partners/:id/jobs")
	{
		api.Use(partnerAuth)
		api.GET("/pending", hb.PendingJobsHandler)
		api.GET("/active", hb.ActiveJobsHandler)
		api.GET("/history", hb.JobHistoryHandler)
		api.GET("/:jobId", hb.GetJobHandler)
		api.POST("/:jobId/accept", hb.AcceptJobHandler)
		api.POST("/:jobId/reject", hb.RejectJobHandler)
		api.POST("/:jobId/start", hb.StartJobHandler)
		api.POST("/:jobId/complete", hb.CompleteJobHandler)
		api.POST("/:jobId/cancel", hb.CancelJobHandler)
	}
}

// RegisterDashboardRoutes registers the combined dashboard view and its
// WebSocket live stream.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle, partnerAuth gin.HandlerFunc) {
	api := r.Group("/api/partners/:id/dashboard")
	{
		api.Use(partnerAuth)
		api.GET("", hb.GetDashboardHandler)
		api.GET("/stream", hb.StreamDashboardHandler)
	}
}

// RegisterAvailabilityRoutes registers availability management endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle, partnerAuth gin.HandlerFunc) {
	api := r.Group("/api/partners/:id/availability")
	{
		api.Use(partnerAuth)
		api.GET("", hb.GetAvailabilityHandler)
		api.PUT("/status", hb.SetAvailableHandler)
		api.PUT("/online", hb.SetOnlineHandler)
		api.PUT("/working-hours", hb.SetWorkingHoursHandler)
		api.POST("/blocked-dates", hb.BlockDatesHandler)
		api.DELETE("/blocked-dates", hb.UnblockDatesHandler)
		api.PUT("/unavailable-until", hb.SetTemporaryUnavailabilityHandler)
		api.DELETE("/unavailable-until", hb.ClearTemporaryUnavailabilityHandler)
	}
}

// RegisterEarningsRoutes registers earnings endpoints.
func RegisterEarningsRoutes(r *gin.Engine, hb *handlers.HandlerBundle, partnerAuth gin.HandlerFunc) {
	api := r.Group("/api/partners/:id/earnings")
	{
		api.Use(partnerAuth)
		api.GET("", hb.GetEarningsHandler)
		api.POST("/recalculate", hb.RecalculateWindowTotalsHandler)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle, partnerAuth gin.HandlerFunc) {
	api := r.Group("/api/partners/:id/notifications")
	{
		api.Use(partnerAuth)
		api.GET("", hb.RecentNotificationsHandler)
		api.GET("/unread-count", hb.UnreadCountHandler)
		api.PUT("/:notificationId/read", hb.MarkReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CareNow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, partnerAuth, serviceAuth gin.HandlerFunc) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterJobRoutes(r, hb, partnerAuth, serviceAuth)
	RegisterDashboardRoutes(r, hb, partnerAuth)
	RegisterAvailabilityRoutes(r, hb, partnerAuth)
	RegisterEarningsRoutes(r, hb, partnerAuth)
	RegisterNotificationRoutes(r, hb, partnerAuth)
	RegisterHealthRoute(r)
}
