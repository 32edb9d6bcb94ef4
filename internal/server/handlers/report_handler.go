package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
)

const defaultTrendMonths = 3

// ReportSource exposes the on-demand report generation the read endpoints need.
type ReportSource interface {
	GeneratePeriodReportFromText(ctx context.Context, managerID, text string) (models.PeriodReport, error)
	GenerateTrendAnalysis(ctx context.Context, managerID string, months int) (models.TrendAnalysis, error)
}

// ReportHandler serves on-demand JSON reports.
type ReportHandler struct {
	reports ReportSource
	logger  *zap.Logger
}

// NewReportHandler constructs the report read adapter.
func NewReportHandler(reports ReportSource, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, logger: logger}
}

// Period returns a period report for one manager. The optional timeframe query
// accepts the same phrases as the /report chat command.
func (h *ReportHandler) Period(c *gin.Context) {
	managerID := c.Query("manager_id")
	if managerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manager_id is required"})
		return
	}

	report, err := h.reports.GeneratePeriodReportFromText(c.Request.Context(), managerID, c.Query("timeframe"))
	if err != nil {
		h.logger.Error("failed generating period report", zap.Error(err), zap.String("manager_id", managerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Trend returns a month-over-month trend analysis for one manager.
func (h *ReportHandler) Trend(c *gin.Context) {
	managerID := c.Query("manager_id")
	if managerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manager_id is required"})
		return
	}

	months := defaultTrendMonths
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = n
	}

	analysis, err := h.reports.GenerateTrendAnalysis(c.Request.Context(), managerID, months)
	if err != nil {
		h.logger.Error("failed generating trend analysis", zap.Error(err), zap.String("manager_id", managerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate trend"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
