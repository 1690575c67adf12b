package accounting

import (
	"sort"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// FoldBalance returns the signed sum of movements: +amount for give, -amount for receive.
// A DebtAccount's TotalDebt must always equal this fold.
func FoldBalance(movements []domain.DebtMovement) int64 {
	var total int64
	for _, m := range movements {
		total += m.SignedAmount()
	}
	return total
}

// chronological returns a copy of movements ordered by OccurredAt ascending,
// ties kept in insertion order.
func chronological(movements []domain.DebtMovement) []domain.DebtMovement {
	ordered := make([]domain.DebtMovement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OccurredAt.Before(ordered[j].OccurredAt)
	})
	return ordered
}

// RunningBalanceHistory pairs every movement, most recent first, with the
// balance as of that movement inclusive. Displayed balances are clamped to a
// minimum of zero; the account's stored TotalDebt is not affected.
//
// Chronological order is OccurredAt ascending with insertion order breaking
// ties, and the result is the exact reverse of it.
func RunningBalanceHistory(account domain.DebtAccount) []domain.RunningBalanceEntry {
	ordered := chronological(account.Movements)
	history := make([]domain.RunningBalanceEntry, len(ordered))

	var balance int64
	for i, m := range ordered {
		balance += m.SignedAmount()
		display := balance
		if display < 0 {
			display = 0
		}
		// Fill from the back so the newest movement lands first.
		history[len(ordered)-1-i] = domain.RunningBalanceEntry{Movement: m, Balance: display}
	}
	return history
}
