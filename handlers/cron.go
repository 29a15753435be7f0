package handlers

import (
	"net/http"

	"shotfolio/services/reminder"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CronHandler exposes the reminder sweeps as HTTP triggers for an external
// scheduler. The sweeps are stateless, so a missed or duplicated trigger is
// harmless.
type CronHandler struct {
	Engine reminder.ReminderEngine
}

func NewCronHandler(engine reminder.ReminderEngine) *CronHandler {
	return &CronHandler{Engine: engine}
}

// PreDueSweepHandler runs the pre-due payment reminder sweep.
func (h *CronHandler) PreDueSweepHandler(c *gin.Context) {
	logger := getLogger(c)

	summary, err := h.Engine.RunPreDueSweep(c.Request.Context())
	if err != nil {
		logger.Error("Pre-due sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PostEventSweepHandler runs the day-after balance nudge sweep.
func (h *CronHandler) PostEventSweepHandler(c *gin.Context) {
	logger := getLogger(c)

	summary, err := h.Engine.RunPostEventSweep(c.Request.Context())
	if err != nil {
		logger.Error("Post-event sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
