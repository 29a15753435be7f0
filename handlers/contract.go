package handlers

import (
	"errors"
	"net/http"

	bookingRepo "shotfolio/database/repository/booking"
	clientRepo "shotfolio/database/repository/client"
	photographerRepo "shotfolio/database/repository/photographer"
	"shotfolio/models"
	"shotfolio/services/contract"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContractHandler serves AI contract drafting. The generated text is
// returned for review; the photographer saves and sends it through the
// booking endpoints.
type ContractHandler struct {
	Drafting      *contract.DraftingService
	Bookings      bookingRepo.BookingRepository
	Clients       clientRepo.ClientRepository
	Photographers photographerRepo.PhotographerRepository
}

func NewContractHandler(drafting *contract.DraftingService, bookings bookingRepo.BookingRepository, clients clientRepo.ClientRepository, photographers photographerRepo.PhotographerRepository) *ContractHandler {
	return &ContractHandler{
		Drafting:      drafting,
		Bookings:      bookings,
		Clients:       clients,
		Photographers: photographers,
	}
}

// DraftContractHandler generates contract text from the booking's facts.
func (h *ContractHandler) DraftContractHandler(c *gin.Context) {
	logger := getLogger(c)
	phID := photographerID(c)

	var req models.ContractDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.Bookings.GetByIDForOwner(req.BookingID, phID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		logger.Error("Failed to get booking for drafting", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}

	client, err := h.Clients.GetByIDForOwner(b.ClientID, phID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	photographer, err := h.Photographers.GetByID(phID)
	if err != nil {
		logger.Error("Failed to get photographer for drafting", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	text, err := h.Drafting.Draft(c.Request.Context(), b, client, photographer, req)
	if err != nil {
		var derr *contract.DraftingError
		if errors.As(err, &derr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Contract drafting is temporarily unavailable"})
			return
		}
		logger.Error("Contract drafting failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to draft contract"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_id":    b.ID,
		"contract_text": text,
	})
}
