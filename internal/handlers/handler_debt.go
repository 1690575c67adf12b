package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
)

// debtHandler handles HTTP requests related to debt accounts.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

// newDebtHandler creates a new debtHandler.
func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: ds}
}

// RegisterDebtRoutes registers routes related to debt accounts.
func RegisterDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debtors := rg.Group("/debtors")
	{
		debtors.POST("", h.createDebtor)
		debtors.GET("", h.listDebtors)
		debtors.GET("/overdue", h.listOverdue)
		debtors.POST("/reminders", h.dispatchOverdueReminders)
		debtors.GET("/:id", h.getDebtor)
		debtors.DELETE("/:id", h.deleteDebtor)
		debtors.POST("/:id/movements", h.recordMovement)
		debtors.POST("/:id/payoff", h.payOff)
		debtors.PUT("/:id/due-date", h.setDueDate)
		debtors.GET("/:id/history", h.runningBalanceHistory)
		debtors.GET("/:id/reminder", h.composeReminder)
		debtors.POST("/:id/reminder", h.sendReminder)
	}
}

func (h *debtHandler) createDebtor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDebtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "CreateDebtor")
		return
	}

	logger.Info("Received request to create debtor", slog.String("customer_name", req.CustomerName))
	account, err := h.debtService.CreateDebtor(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create debtor")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDebtAccountResponse(account, time.Now()))
}

func (h *debtHandler) listDebtors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.debtService.ListDebtors(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list debtors")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtAccountResponses(accounts, time.Now()))
}

func (h *debtHandler) listOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	now := time.Now()
	accounts, err := h.debtService.ListOverdue(c.Request.Context(), now)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list overdue debtors")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtAccountResponses(accounts, now))
}

func (h *debtHandler) getDebtor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	account, err := h.debtService.GetDebtor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve debtor")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtAccountResponse(account, time.Now()))
}

func (h *debtHandler) deleteDebtor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	if err := h.debtService.DeleteDebtor(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete debtor")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *debtHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "RecordMovement")
		return
	}

	movement, err := h.debtService.RecordMovement(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record movement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDebtMovementResponse(movement))
}

func (h *debtHandler) payOff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	movement, err := h.debtService.PayOff(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to pay off debtor")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDebtMovementResponse(movement))
}

func (h *debtHandler) setDueDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	var req dto.SetDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "SetDueDate")
		return
	}

	account, err := h.debtService.SetDueDate(c.Request.Context(), c.Param("id"), req.DueDate)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to set due date")
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtAccountResponse(account, time.Now()))
}

func (h *debtHandler) runningBalanceHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	history, err := h.debtService.RunningBalanceHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute balance history")
		return
	}
	c.JSON(http.StatusOK, dto.ToRunningBalanceResponses(history))
}

func (h *debtHandler) composeReminder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	reminder, err := h.debtService.ComposeReminder(c.Request.Context(), c.Param("id"), time.Now())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compose reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *debtHandler) sendReminder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))
	reminder, err := h.debtService.SendReminder(c.Request.Context(), c.Param("id"), time.Now())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to send reminder")
		return
	}
	c.JSON(http.StatusAccepted, reminder)
}

func (h *debtHandler) dispatchOverdueReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sent, err := h.debtService.DispatchOverdueReminders(c.Request.Context(), time.Now())
	if err != nil && sent == 0 {
		respondServiceError(c, logger, err, "Failed to dispatch reminders")
		return
	}
	if err != nil {
		logger.Warn("Some reminders failed to dispatch", slog.String("error", err.Error()), slog.Int("sent", sent))
	}
	c.JSON(http.StatusAccepted, gin.H{"sent": sent})
}
