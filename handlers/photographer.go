package handlers

import (
	"net/http"

	photographerRepo "shotfolio/database/repository/photographer"
	"shotfolio/services/photographer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PhotographerHandler serves photographer account endpoints.
type PhotographerHandler struct {
	Service photographer.PhotographerService
	Repo    photographerRepo.PhotographerRepository
}

func NewPhotographerHandler(svc photographer.PhotographerService, repo photographerRepo.PhotographerRepository) *PhotographerHandler {
	return &PhotographerHandler{Service: svc, Repo: repo}
}

// RegisterHandler creates a new photographer account.
func (h *PhotographerHandler) RegisterHandler(c *gin.Context) {
	var input photographer.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateHandler signs a photographer in.
func (h *PhotographerHandler) AuthenticateHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.SignIn(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler returns the authenticated photographer's account.
func (h *PhotographerHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	id := photographerID(c)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	p, err := h.Repo.GetByID(id)
	if err != nil {
		logger.Error("Failed to get photographer profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateSettingsHandler applies partial account settings changes.
func (h *PhotographerHandler) UpdateSettingsHandler(c *gin.Context) {
	logger := getLogger(c)
	id := photographerID(c)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var upd photographer.SettingsUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Service.UpdateSettings(id, upd)
	if err != nil {
		logger.Error("Failed to update settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, p)
}
