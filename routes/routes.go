package routes

import (
	"net/http"
	"time"

	"shotfolio/handlers"
	"shotfolio/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPhotographerRoutes registers account endpoints.
func RegisterPhotographerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/photographers")
	{
		api.POST("/register", hb.RegisterPhotographerHandler)
		api.POST("/login", hb.AuthenticatePhotographerHandler)

		// Protected routes (require authentication).
		api.Use(middleware.PhotographerAuthMiddleware(hb.PhotographerRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PATCH("/me/settings", hb.UpdateSettingsHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.PhotographerAuthMiddleware(hb.PhotographerRepo))
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/timeline", hb.ActivityTimelineHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PATCH("/:id/status", hb.UpdateBookingStatusHandler)
		api.PUT("/:id/contract", hb.SaveContractHandler)
		api.POST("/:id/contract/send", hb.SendContractHandler)
	}
}

// RegisterClientRoutes registers the client roster endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	{
		api.Use(middleware.PhotographerAuthMiddleware(hb.PhotographerRepo))
		api.POST("", hb.CreateClientHandler)
		api.GET("", hb.ListClientsHandler)
		api.GET("/:id", hb.GetClientHandler)
		api.PATCH("/:id", hb.UpdateClientHandler)
	}
}

// RegisterContractRoutes registers the AI drafting endpoint.
func RegisterContractRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contracts")
	{
		api.Use(middleware.PhotographerAuthMiddleware(hb.PhotographerRepo))
		api.POST("/draft", hb.DraftContractHandler)
	}
}

// RegisterPortalRoutes registers the unauthenticated client portal. The
// opaque token in the path is the only credential.
func RegisterPortalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/portal")
	{
		api.GET("/:token", hb.GetPortalHandler)
		api.POST("/:token/sign", hb.SignContractHandler)
		api.POST("/:token/checkout/:milestoneID", hb.CreateCheckoutHandler)
	}
}

// RegisterCronRoutes registers the scheduler-triggered sweep endpoints.
func RegisterCronRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cron")
	{
		api.Use(middleware.CronAuthMiddleware())
		api.POST("/payment-reminders", hb.PreDueSweepHandler)
		api.POST("/post-event-nudges", hb.PostEventSweepHandler)
	}
}

// RegisterWebhookRoutes registers payment processor callbacks. These verify
// their own signatures and must stay outside the auth middleware.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/webhooks")
	{
		api.POST("/stripe", hb.StripeWebhookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Shotfolio"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPhotographerRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterContractRoutes(r, hb)
	RegisterPortalRoutes(r, hb)
	RegisterCronRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
}
