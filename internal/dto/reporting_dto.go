package dto

import (
	"strconv"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// DebtorExportRow is one tabular row of the debtor list handed to export collaborators.
type DebtorExportRow struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	TotalDebt     int64  `json:"totalDebt"`
	DueDate       string `json:"dueDate"` // YYYY-MM-DD or empty
	Status        string `json:"status"`
}

// SummaryExportRow is one metric of a financial summary.
type SummaryExportRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// ToDebtorExportRows flattens accounts into export rows, deriving status against now.
func ToDebtorExportRows(accounts []domain.DebtAccount, now time.Time) []DebtorExportRow {
	rows := make([]DebtorExportRow, len(accounts))
	for i := range accounts {
		acc := &accounts[i]
		due := ""
		if acc.DueDate != nil {
			due = acc.DueDate.Format("2006-01-02")
		}
		rows[i] = DebtorExportRow{
			CustomerName:  acc.CustomerName,
			CustomerPhone: acc.CustomerPhone,
			TotalDebt:     acc.TotalDebt,
			DueDate:       due,
			Status:        string(acc.Status(now)),
		}
	}
	return rows
}

// ToSummaryExportRows flattens the headline metrics of a summary.
func ToSummaryExportRows(s *domain.FinancialSummary) []SummaryExportRow {
	i64 := func(v int64) string { return strconv.FormatInt(v, 10) }
	return []SummaryExportRow{
		{Metric: "window", Value: string(s.Window)},
		{Metric: "totalRevenue", Value: i64(s.TotalRevenue)},
		{Metric: "totalExpenses", Value: i64(s.TotalExpenses)},
		{Metric: "totalCostOfGoods", Value: i64(s.TotalCostOfGoods)},
		{Metric: "grossProfit", Value: i64(s.GrossProfit)},
		{Metric: "netProfit", Value: i64(s.NetProfit)},
		{Metric: "profitMarginPercent", Value: s.ProfitMarginPercent.StringFixed(2)},
	}
}
