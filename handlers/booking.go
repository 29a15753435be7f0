package handlers

import (
	"errors"
	"net/http"
	"time"

	"shotfolio/services/booking"
	"shotfolio/services/timeline"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves photographer-facing booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// bookingErrorStatus maps service error codes onto HTTP statuses.
func bookingErrorStatus(err error) int {
	var berr *booking.BookingError
	if errors.As(err, &berr) {
		switch berr.Code {
		case booking.CodeNotFound:
			return http.StatusNotFound
		case booking.CodeInvalidInput:
			return http.StatusBadRequest
		case booking.CodeConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// CreateBookingHandler opens a new booking with its installment plan.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)
	phID := photographerID(c)

	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.Service.Create(phID, input)
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create booking", zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to create booking"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler returns one booking with its reconciled balance.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	detail, err := h.Service.GetDetail(photographerID(c), c.Param("id"))
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to get booking", zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to retrieve booking"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListBookingsHandler returns all of the photographer's bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	logger := getLogger(c)

	bookings, err := h.Service.List(photographerID(c))
	if err != nil {
		logger.Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatusHandler moves a booking through its lifecycle.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.Service.UpdateStatus(photographerID(c), c.Param("id"), input.Status)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// SaveContractHandler stores contract text on a booking.
func (h *BookingHandler) SaveContractHandler(c *gin.Context) {
	var input struct {
		ContractText string `json:"contract_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.Service.SaveContract(photographerID(c), c.Param("id"), input.ContractText)
	if err != nil {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// SendContractHandler emails the client their portal link and marks the
// booking contract-sent.
func (h *BookingHandler) SendContractHandler(c *gin.Context) {
	logger := getLogger(c)

	b, err := h.Service.SendContract(c.Request.Context(), photographerID(c), c.Param("id"))
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to send contract", zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to send contract"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// ActivityTimelineHandler returns the photographer's recent activity feed,
// derived on the fly from booking state.
func (h *BookingHandler) ActivityTimelineHandler(c *gin.Context) {
	logger := getLogger(c)

	bookings, err := h.Service.List(photographerID(c))
	if err != nil {
		logger.Error("Failed to build activity timeline", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build activity timeline"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": timeline.Build(bookings, time.Now())})
}
