package handlers

import (
	"errors"
	"net/http"
	"time"

	clientRepo "shotfolio/database/repository/client"
	"shotfolio/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientHandler serves the photographer's client roster endpoints.
type ClientHandler struct {
	Repo clientRepo.ClientRepository
}

func NewClientHandler(repo clientRepo.ClientRepository) *ClientHandler {
	return &ClientHandler{Repo: repo}
}

// CreateClientHandler adds a client to the photographer's roster.
func (h *ClientHandler) CreateClientHandler(c *gin.Context) {
	logger := getLogger(c)

	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	now := time.Now()
	client := models.Client{
		ID:             uuid.New().String(),
		PhotographerID: photographerID(c),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.Repo.Create(&client); err != nil {
		logger.Error("Failed to create client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}
	c.JSON(http.StatusCreated, client)
}

// ListClientsHandler returns the photographer's clients.
func (h *ClientHandler) ListClientsHandler(c *gin.Context) {
	logger := getLogger(c)

	clients, err := h.Repo.ListByPhotographer(photographerID(c))
	if err != nil {
		logger.Error("Failed to list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientHandler returns one client, scoped to the owning photographer.
func (h *ClientHandler) GetClientHandler(c *gin.Context) {
	client, err := h.Repo.GetByIDForOwner(c.Param("id"), photographerID(c))
	if err != nil {
		if errors.Is(err, clientRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		getLogger(c).Error("Failed to get client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClientHandler updates a client's contact details.
func (h *ClientHandler) UpdateClientHandler(c *gin.Context) {
	logger := getLogger(c)

	client, err := h.Repo.GetByIDForOwner(c.Param("id"), photographerID(c))
	if err != nil {
		if errors.Is(err, clientRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to get client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		return
	}

	var input struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
		Notes *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	client.UpdatedAt = time.Now()

	if err := h.Repo.Update(client); err != nil {
		logger.Error("Failed to update client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}
	c.JSON(http.StatusOK, client)
}
