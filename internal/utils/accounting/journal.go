package accounting

import (
	"strings"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// TransactionFilter narrows a transaction list. Zero values disable a criterion.
type TransactionFilter struct {
	SearchText    string
	Kind          domain.TransactionKind
	PaymentStatus domain.PaymentStatus
}

// ListByFilter returns the transactions matching every set criterion, in input order.
// SearchText is a case-insensitive substring match on Note or CustomerName.
func ListByFilter(transactions []domain.FinancialTransaction, filter TransactionFilter) []domain.FinancialTransaction {
	needle := strings.ToLower(strings.TrimSpace(filter.SearchText))
	result := make([]domain.FinancialTransaction, 0, len(transactions))
	for _, t := range transactions {
		if filter.Kind != "" && t.Kind != filter.Kind {
			continue
		}
		if filter.PaymentStatus != "" && t.PaymentStatus != filter.PaymentStatus {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Note), needle) &&
			!strings.Contains(strings.ToLower(t.CustomerName), needle) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// TotalByKind sums GrossAmount over transactions of the given kind.
func TotalByKind(transactions []domain.FinancialTransaction, kind domain.TransactionKind) int64 {
	var total int64
	for _, t := range transactions {
		if t.Kind == kind {
			total += t.GrossAmount
		}
	}
	return total
}

// TotalOwed sums GrossAmount over transactions still marked as owed.
func TotalOwed(transactions []domain.FinancialTransaction) int64 {
	var total int64
	for _, t := range transactions {
		if t.PaymentStatus == domain.Owed {
			total += t.GrossAmount
		}
	}
	return total
}

// Totals computes the whole-journal income, expense and owed sums in one pass.
func Totals(transactions []domain.FinancialTransaction) domain.LedgerTotals {
	var totals domain.LedgerTotals
	for _, t := range transactions {
		switch t.Kind {
		case domain.Income:
			totals.Income += t.GrossAmount
		case domain.Expense:
			totals.Expense += t.GrossAmount
		}
		if t.PaymentStatus == domain.Owed {
			totals.Owed += t.GrossAmount
		}
	}
	return totals
}

// ApplyCategoryTemplate looks categoryID up in catalog and returns its default
// amounts. Unknown or empty ids yield a blank, unmatched prefill for manual entry.
func ApplyCategoryTemplate(categoryID string, catalog []domain.CategoryTemplate) domain.TransactionPrefill {
	if categoryID == "" {
		return domain.TransactionPrefill{}
	}
	for _, tpl := range catalog {
		if tpl.CategoryID == categoryID {
			name := tpl.Name
			if name == "" {
				name = tpl.CategoryID
			}
			return domain.TransactionPrefill{
				Category:    name,
				GrossAmount: tpl.GrossAmount,
				CostAmount:  tpl.CostAmount,
				Matched:     true,
			}
		}
	}
	return domain.TransactionPrefill{}
}
