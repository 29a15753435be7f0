package handlers

import (
	"errors"
	"net/http"

	"shotfolio/services/payment"
	"shotfolio/services/portal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PortalHandler serves the unauthenticated client portal. Authorization is
// the portal token itself.
type PortalHandler struct {
	Service portal.PortalService
}

func NewPortalHandler(svc portal.PortalService) *PortalHandler {
	return &PortalHandler{Service: svc}
}

func portalErrorStatus(err error) int {
	var perr *portal.PortalError
	if errors.As(err, &perr) {
		switch perr.Code {
		case portal.CodeNotFound:
			return http.StatusNotFound
		case portal.CodeConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// GetPortalHandler returns the client-facing booking view.
func (h *PortalHandler) GetPortalHandler(c *gin.Context) {
	logger := getLogger(c)

	view, err := h.Service.GetView(c.Request.Context(), c.Param("token"))
	if err != nil {
		status := portalErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to load portal view", zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to load booking"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// SignContractHandler records the client's contract acceptance.
func (h *PortalHandler) SignContractHandler(c *gin.Context) {
	logger := getLogger(c)

	view, err := h.Service.SignContract(c.Request.Context(), c.Param("token"))
	if err != nil {
		status := portalErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to sign contract", zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to sign contract"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateCheckoutHandler starts a payment for one milestone.
func (h *PortalHandler) CreateCheckoutHandler(c *gin.Context) {
	logger := getLogger(c)

	sess, err := h.Service.CreateCheckout(c.Request.Context(), c.Param("token"), c.Param("milestoneID"))
	if err != nil {
		var perr *payment.PaymentError
		if errors.As(err, &perr) {
			switch perr.Code {
			case payment.CodeNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": perr.Message})
			case payment.CodeInvalidInput:
				c.JSON(http.StatusBadRequest, gin.H{"error": perr.Message})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider is temporarily unavailable"})
			}
			return
		}
		status := portalErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create checkout", zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to start payment"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}
