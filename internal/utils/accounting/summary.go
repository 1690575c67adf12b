package accounting

import (
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	maxCategoryRows = 5
	marginPrecision = 2
)

var hundred = decimal.NewFromInt(100)

// StartOfWeek returns midnight of the week's first day, where weeks start on
// Sunday (time.Weekday zero), in now's location.
func StartOfWeek(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(now.Weekday()))
}

// InWindow reports whether occurredAt falls inside window relative to now.
// Calendar comparisons are made in now's location.
func InWindow(occurredAt time.Time, window domain.PeriodWindow, now time.Time) bool {
	at := occurredAt.In(now.Location())
	switch window {
	case domain.WindowToday:
		y1, m1, d1 := at.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case domain.WindowThisWeek:
		return !at.Before(StartOfWeek(now))
	case domain.WindowThisMonth:
		return at.Year() == now.Year() && at.Month() == now.Month()
	case domain.WindowThisYear:
		return at.Year() == now.Year()
	default:
		return true
	}
}

// FilterTransactions returns the transactions inside window, in input order.
func FilterTransactions(transactions []domain.FinancialTransaction, window domain.PeriodWindow, now time.Time) []domain.FinancialTransaction {
	result := make([]domain.FinancialTransaction, 0, len(transactions))
	for _, t := range transactions {
		if InWindow(t.OccurredAt, window, now) {
			result = append(result, t)
		}
	}
	return result
}

// FilterReceipts returns the receipts inside window, in input order.
func FilterReceipts(receipts []domain.Receipt, window domain.PeriodWindow, now time.Time) []domain.Receipt {
	result := make([]domain.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if InWindow(r.OccurredAt, window, now) {
			result = append(result, r)
		}
	}
	return result
}

// ProfitMarginPercent returns grossProfit / revenue * 100 rounded to two
// places, or zero when there is no revenue.
func ProfitMarginPercent(grossProfit, revenue int64) decimal.Decimal {
	if revenue <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(grossProfit).
		Mul(hundred).
		Div(decimal.NewFromInt(revenue)).
		Round(marginPrecision)
}

// Summarize derives the financial summary for window. It never mutates its inputs.
func Summarize(transactions []domain.FinancialTransaction, receipts []domain.Receipt, window domain.PeriodWindow, now time.Time) domain.FinancialSummary {
	txns := FilterTransactions(transactions, window, now)
	rcpts := FilterReceipts(receipts, window, now)

	summary := domain.FinancialSummary{Window: window}
	for _, r := range rcpts {
		summary.TotalRevenue += r.Total
	}
	for _, t := range txns {
		switch t.Kind {
		case domain.Income:
			summary.TotalRevenue += t.GrossAmount
			summary.TotalCostOfGoods += t.Cost()
		case domain.Expense:
			summary.TotalExpenses += t.GrossAmount
		}
	}
	summary.NetProfit = summary.TotalRevenue - summary.TotalExpenses - summary.TotalCostOfGoods
	summary.GrossProfit = summary.TotalRevenue - summary.TotalCostOfGoods
	summary.ProfitMarginPercent = ProfitMarginPercent(summary.GrossProfit, summary.TotalRevenue)
	summary.TimeSeries = TimeSeries(txns, rcpts, now.Location())
	summary.CategoryBreakdown = CategoryBreakdown(txns)
	return summary
}

// TimeSeries buckets receipts and transactions by calendar date in loc.
// Dates without entries are omitted; buckets are sorted ascending.
func TimeSeries(transactions []domain.FinancialTransaction, receipts []domain.Receipt, loc *time.Location) []domain.DailyTotals {
	buckets := make(map[string]*domain.DailyTotals)
	bucket := func(at time.Time) *domain.DailyTotals {
		key := at.In(loc).Format(dateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &domain.DailyTotals{Date: key}
			buckets[key] = b
		}
		return b
	}

	for _, r := range receipts {
		bucket(r.OccurredAt).Income += r.Total
	}
	for _, t := range transactions {
		switch t.Kind {
		case domain.Income:
			bucket(t.OccurredAt).Income += t.GrossAmount
		case domain.Expense:
			bucket(t.OccurredAt).Expense += t.GrossAmount
		}
	}

	series := make([]domain.DailyTotals, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// CategoryBreakdown groups categorized income by category name and returns the
// top five by summed amount, ties kept in first-encountered order.
func CategoryBreakdown(transactions []domain.FinancialTransaction) []domain.CategoryTotal {
	index := make(map[string]int)
	rows := make([]domain.CategoryTotal, 0)
	for _, t := range transactions {
		if t.Kind != domain.Income || strings.TrimSpace(t.Category) == "" {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(rows)
			index[t.Category] = i
			rows = append(rows, domain.CategoryTotal{Category: t.Category})
		}
		rows[i].Amount += t.GrossAmount
		rows[i].Count++
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
	if len(rows) > maxCategoryRows {
		rows = rows[:maxCategoryRows]
	}
	return rows
}
