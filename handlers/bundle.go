package handlers

import (
	photographerRepo "shotfolio/database/repository/photographer"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration stays declarative.
type HandlerBundle struct {
	PhotographerRepo photographerRepo.PhotographerRepository

	// Photographer account endpoints.
	RegisterPhotographerHandler     gin.HandlerFunc
	AuthenticatePhotographerHandler gin.HandlerFunc
	GetProfileHandler               gin.HandlerFunc
	UpdateSettingsHandler           gin.HandlerFunc

	// Booking endpoints.
	CreateBookingHandler       gin.HandlerFunc
	GetBookingHandler          gin.HandlerFunc
	ListBookingsHandler        gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc
	SaveContractHandler        gin.HandlerFunc
	SendContractHandler        gin.HandlerFunc
	ActivityTimelineHandler    gin.HandlerFunc

	// Client roster endpoints.
	CreateClientHandler gin.HandlerFunc
	ListClientsHandler  gin.HandlerFunc
	GetClientHandler    gin.HandlerFunc
	UpdateClientHandler gin.HandlerFunc

	// Contract drafting endpoints.
	DraftContractHandler gin.HandlerFunc

	// Client portal endpoints.
	GetPortalHandler      gin.HandlerFunc
	SignContractHandler   gin.HandlerFunc
	CreateCheckoutHandler gin.HandlerFunc

	// Cron trigger endpoints.
	PreDueSweepHandler    gin.HandlerFunc
	PostEventSweepHandler gin.HandlerFunc

	// Webhook endpoints.
	StripeWebhookHandler gin.HandlerFunc
}
