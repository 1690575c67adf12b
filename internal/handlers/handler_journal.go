package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/SscSPs/shop_ledger/internal/utils/pagination"
)

// journalHandler handles HTTP requests for transactions, receipts and category templates.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// RegisterJournalRoutes registers transaction, receipt and category routes.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.recordTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/totals", h.totals)
		transactions.GET("/:id", h.getTransaction)
	}

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.recordReceipt)
		receipts.GET("", h.listReceipts)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.GET("/:id/prefill", h.applyCategoryTemplate)
	}
}

func (h *journalHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "RecordTransaction")
		return
	}

	txn, err := h.journalService.RecordTransaction(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record transaction")
		return
	}
	logger.Info("Transaction recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *journalHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "ListTransactions")
		return
	}

	txns, err := h.journalService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	page, next, err := pagination.Page(txns, params.Limit, params.NextToken, func(t domain.FinancialTransaction) (time.Time, string) {
		return t.CreatedAt, t.TransactionID
	})
	if err != nil {
		logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(page),
		NextToken:    next,
	})
}

func (h *journalHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", c.Param("id")))
	txn, err := h.journalService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *journalHandler) totals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	totals, err := h.journalService.Totals(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *journalHandler) recordReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "RecordReceipt")
		return
	}

	receipt, err := h.journalService.RecordReceipt(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record receipt")
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (h *journalHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receipts, err := h.journalService.ListReceipts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list receipts")
		return
	}
	c.JSON(http.StatusOK, receipts)
}

func (h *journalHandler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.journalService.ListCategoryTemplates(c.Request.Context()))
}

func (h *journalHandler) applyCategoryTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, h.journalService.ApplyCategoryTemplate(c.Request.Context(), c.Param("id")))
}
