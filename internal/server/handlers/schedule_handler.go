package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
	"github.com/Azahir21/track-pendapatan-bot/internal/scheduler"
)

// ScheduleController exposes the schedule registry operations the admin
// endpoints need.
type ScheduleController interface {
	Schedules() []models.ReportSchedule
	UpdateSchedule(kind models.ScheduleKind, enabled bool) (models.ReportSchedule, error)
}

// ScheduleHandler serves the schedule admin endpoints.
type ScheduleHandler struct {
	scheduler ScheduleController
	logger    *zap.Logger
}

// NewScheduleHandler constructs the schedule admin adapter.
func NewScheduleHandler(controller ScheduleController, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{scheduler: controller, logger: logger}
}

// List returns every registered schedule with its cron spec and state.
func (h *ScheduleHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"schedules": h.scheduler.Schedules()})
}

type updateScheduleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// Update enables or disables one schedule by kind.
func (h *ScheduleHandler) Update(c *gin.Context) {
	kind, ok := models.ParseScheduleKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown schedule kind"})
		return
	}

	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid schedule update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	schedule, err := h.scheduler.UpdateSchedule(kind, *req.Enabled)
	if errors.Is(err, scheduler.ErrUnknownSchedule) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown schedule kind"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update schedule"})
		return
	}

	h.logger.Info("schedule updated",
		zap.String("kind", string(schedule.Kind)),
		zap.Bool("enabled", schedule.Enabled))
	c.JSON(http.StatusOK, schedule)
}
