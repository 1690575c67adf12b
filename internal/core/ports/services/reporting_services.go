package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// ReportingService defines the read-side financial reports.
type ReportingService interface {
	// Summary aggregates the journal and receipt log over window, resolved against now.
	Summary(ctx context.Context, window domain.PeriodWindow, now time.Time) (*domain.FinancialSummary, error)

	// ExportSummary returns the summary as metric/value rows for export collaborators.
	ExportSummary(ctx context.Context, window domain.PeriodWindow, now time.Time) ([]dto.SummaryExportRow, error)

	// ExportDebtors returns one row per debt account for export collaborators.
	ExportDebtors(ctx context.Context, now time.Time) ([]dto.DebtorExportRow, error)
}
