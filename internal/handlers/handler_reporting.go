package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/middleware"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// RegisterReportingRoutes registers summary and export routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.summary)
		reports.GET("/summary/export", h.exportSummary)
		reports.GET("/debtors/export", h.exportDebtors)
	}
}

// referenceTime reads the optional RFC3339 ?now= parameter, defaulting to the wall clock.
func referenceTime(c *gin.Context) (time.Time, error) {
	raw := c.Query("now")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

// summary reports the ?window= period (today, this-week, this-month, this-year or all; default all).
func (h *reportingHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	now, err := referenceTime(c)
	if err != nil {
		respondBindError(c, logger, err, "summary")
		return
	}
	summary, err := h.reportingService.Summary(c.Request.Context(), domain.PeriodWindow(c.Query("window")), now)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) exportSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	now, err := referenceTime(c)
	if err != nil {
		respondBindError(c, logger, err, "summary export")
		return
	}
	rows, err := h.reportingService.ExportSummary(c.Request.Context(), domain.PeriodWindow(c.Query("window")), now)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export summary")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *reportingHandler) exportDebtors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	now, err := referenceTime(c)
	if err != nil {
		respondBindError(c, logger, err, "debtor export")
		return
	}
	rows, err := h.reportingService.ExportDebtors(c.Request.Context(), now)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export debtors")
		return
	}
	c.JSON(http.StatusOK, rows)
}
