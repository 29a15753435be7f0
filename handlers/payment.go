package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"shotfolio/config"
	bookingRepo "shotfolio/database/repository/booking"
	"shotfolio/services/payment"
	"shotfolio/services/portal"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// maxWebhookBody caps the webhook payload read. Stripe events are small.
const maxWebhookBody = 64 * 1024

// WebhookHandler receives payment processor events and settles milestones.
type WebhookHandler struct {
	Checkout *payment.CheckoutService
	Portal   portal.PortalService
	Bookings bookingRepo.BookingRepository
}

func NewWebhookHandler(checkout *payment.CheckoutService, portalSvc portal.PortalService, bookings bookingRepo.BookingRepository) *WebhookHandler {
	return &WebhookHandler{Checkout: checkout, Portal: portalSvc, Bookings: bookings}
}

// StripeWebhookHandler verifies the event signature and dispatches
// checkout.session.completed events to settlement. Unknown event types are
// acknowledged so the processor stops retrying them.
func (h *WebhookHandler) StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn("Webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if event.Type != "checkout.session.completed" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		logger.Error("Failed to decode checkout session event", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
		return
	}

	if err := h.Checkout.HandleCheckoutCompleted(c.Request.Context(), &sess); err != nil {
		logger.Error("Failed to settle checkout session",
			zap.String("sessionID", sess.ID), zap.Error(err))
		// A non-2xx response makes the processor retry, which is what we
		// want for transient settlement failures.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Settlement failed"})
		return
	}

	// The portal view caches payment state; drop it so the client sees the
	// settled milestone immediately.
	if bookingID := sess.Metadata["booking_id"]; bookingID != "" {
		if b, err := h.Bookings.GetByID(bookingID); err == nil && b.PortalToken != "" {
			h.Portal.Invalidate(c.Request.Context(), b.PortalToken)
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
