package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PeriodWindow selects a relative time range for reporting.
type PeriodWindow string

const (
	WindowToday     PeriodWindow = "today"
	WindowThisWeek  PeriodWindow = "this-week"
	WindowThisMonth PeriodWindow = "this-month"
	WindowThisYear  PeriodWindow = "this-year"
	WindowAll       PeriodWindow = "all"
)

// ParsePeriodWindow converts a raw string into a PeriodWindow. An empty string means WindowAll.
func ParsePeriodWindow(raw string) (PeriodWindow, error) {
	switch w := PeriodWindow(raw); w {
	case WindowToday, WindowThisWeek, WindowThisMonth, WindowThisYear, WindowAll:
		return w, nil
	case "":
		return WindowAll, nil
	default:
		return "", fmt.Errorf("unknown period window %q", raw)
	}
}

// DailyTotals is one bucket of the time series.
type DailyTotals struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// CategoryTotal is one row of the category breakdown.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Count    int    `json:"count"`
}

// FinancialSummary is the read-side report derived from the journal and receipt log.
type FinancialSummary struct {
	Window              PeriodWindow    `json:"window"`
	TotalRevenue        int64           `json:"totalRevenue"`
	TotalExpenses       int64           `json:"totalExpenses"`
	TotalCostOfGoods    int64           `json:"totalCostOfGoods"`
	NetProfit           int64           `json:"netProfit"`
	GrossProfit         int64           `json:"grossProfit"`
	ProfitMarginPercent decimal.Decimal `json:"profitMarginPercent"`
	TimeSeries          []DailyTotals   `json:"timeSeries"`
	CategoryBreakdown   []CategoryTotal `json:"categoryBreakdown"`
}

// LedgerTotals are whole-journal sums independent of any period window.
type LedgerTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Owed    int64 `json:"owed"`
}
